package service

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/shareit-service/shareit/internal/model"
	"github.com/Astemirdum/shareit-service/shareit/internal/repository"
)

type UserService struct {
	log  *zap.Logger
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository, log *zap.Logger) *UserService {
	return &UserService{
		log:  named(log, "user"),
		repo: repo,
	}
}

func (s *UserService) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	user.ID = 0
	user.Name = strings.TrimSpace(user.Name)
	user.Email = strings.TrimSpace(user.Email)
	if err := validateStruct(user); err != nil {
		return model.User{}, err
	}
	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return model.User{}, errors.Wrap(err, "create user")
	}
	s.log.Info("user created", zap.Int64("userID", created.ID))
	return created, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (model.User, error) {
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return model.User{}, wrapNotFound(err, "user %d", id)
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *UserService) UpdateUser(ctx context.Context, id int64, req model.UpdateUserRequest) (model.User, error) {
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return model.User{}, wrapNotFound(err, "user %d", id)
	}
	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		user.Email = strings.TrimSpace(*req.Email)
	}
	if err := validateStruct(user); err != nil {
		return model.User{}, err
	}
	updated, err := s.repo.UpdateUser(ctx, user)
	if err != nil {
		return model.User{}, errors.Wrap(err, "update user")
	}
	return updated, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return wrapNotFound(err, "user %d", id)
	}
	s.log.Info("user deleted", zap.Int64("userID", id))
	return nil
}
