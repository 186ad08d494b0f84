package handler

import (
	"context"

	"github.com/Astemirdum/shareit-service/shareit/internal/model"
	"github.com/Astemirdum/shareit-service/shareit/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type UserService interface {
	CreateUser(ctx context.Context, user model.User) (model.User, error)
	GetUser(ctx context.Context, id int64) (model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, id int64, req model.UpdateUserRequest) (model.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type ItemService interface {
	CreateItem(ctx context.Context, ownerID int64, req model.CreateItemRequest) (model.Item, error)
	UpdateItem(ctx context.Context, ownerID, itemID int64, req model.UpdateItemRequest) (model.Item, error)
	GetItem(ctx context.Context, userID, itemID int64) (model.ItemView, error)
	ListOwnerItems(ctx context.Context, ownerID int64) ([]model.ItemView, error)
	SearchItems(ctx context.Context, text string) ([]model.Item, error)
	AddComment(ctx context.Context, authorID, itemID int64, req model.CreateCommentRequest) (model.Comment, error)
}

type BookingService interface {
	Create(ctx context.Context, bookerID int64, req model.CreateBookingRequest) (model.Booking, error)
	ChangeStatus(ctx context.Context, bookingID, actorID int64, desired model.Status) (model.Booking, error)
	Get(ctx context.Context, bookingID, actorID int64) (model.Booking, error)
	ListForUser(ctx context.Context, userID int64, state string, role model.Role) ([]model.Booking, error)
}

type RequestService interface {
	CreateRequest(ctx context.Context, requesterID int64, req model.CreateItemRequestRequest) (model.ItemRequest, error)
	GetRequest(ctx context.Context, userID, requestID int64) (model.RequestView, error)
	ListAllRequestsExcludingOwn(ctx context.Context, userID int64, from, size int) ([]model.RequestView, error)
	ListOwnRequests(ctx context.Context, userID int64) ([]model.RequestView, error)
}

var (
	_ UserService    = (*service.UserService)(nil)
	_ ItemService    = (*service.ItemService)(nil)
	_ BookingService = (*service.BookingService)(nil)
	_ RequestService = (*service.RequestMatcher)(nil)
)
