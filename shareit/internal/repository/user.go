package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/Astemirdum/shareit-service/shareit/internal/errs"
	"github.com/Astemirdum/shareit-service/shareit/internal/model"
)

var userColumns = []string{"id", "name", "email"}

func (r *repository) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	var res model.User
	err := r.get(ctx, &res, qb.Insert(usersTableName).
		Columns("name", "email").
		Values(user.Name, user.Email).
		Suffix("returning id, name, email"))
	return res, err
}

func (r *repository) GetUser(ctx context.Context, id int64) (model.User, error) {
	var res model.User
	err := r.get(ctx, &res, qb.Select(userColumns...).
		From(usersTableName).
		Where(sq.Eq{"id": id}))
	return res, err
}

func (r *repository) ListUsers(ctx context.Context) ([]model.User, error) {
	users := make([]model.User, 0)
	err := r.selectAll(ctx, &users, qb.Select(userColumns...).
		From(usersTableName).
		OrderBy("id"))
	return users, err
}

func (r *repository) UpdateUser(ctx context.Context, user model.User) (model.User, error) {
	var res model.User
	err := r.get(ctx, &res, qb.Update(usersTableName).
		SetMap(map[string]interface{}{"name": user.Name, "email": user.Email}).
		Where(sq.Eq{"id": user.ID}).
		Suffix("returning id, name, email"))
	return res, err
}

func (r *repository) DeleteUser(ctx context.Context, id int64) error {
	n, err := r.exec(ctx, qb.Delete(usersTableName).Where(sq.Eq{"id": id}))
	if err != nil {
		return err
	}
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}
