package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Astemirdum/shareit-service/shareit/internal/model"
	"github.com/Astemirdum/shareit-service/shareit/internal/repository"
	"github.com/Astemirdum/shareit-service/shareit/internal/service"
)

var now = time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

func day(n int) time.Time {
	return now.Add(time.Duration(n) * 24 * time.Hour)
}

type fixture struct {
	t        *testing.T
	ctx      context.Context
	clock    time.Time
	repo     repository.Repository
	users    *service.UserService
	items    *service.ItemService
	bookings *service.BookingService
	requests *service.RequestMatcher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		t:     t,
		ctx:   context.Background(),
		clock: now,
		repo:  repository.NewMemory(),
	}
	log := zap.NewExample().Named("test")
	clock := service.WithClock(func() time.Time { return f.clock })

	f.users = service.NewUserService(f.repo, log)
	f.requests = service.NewRequestMatcher(f.repo, log, clock)
	f.items = service.NewItemService(f.repo, f.requests, log, clock)
	f.bookings = service.NewBookingService(f.repo, log, clock)
	return f
}

func (f *fixture) user(name string) model.User {
	f.t.Helper()
	u, err := f.users.CreateUser(f.ctx, model.User{Name: name, Email: fmt.Sprintf("%s@mail.com", name)})
	require.NoError(f.t, err)
	return u
}

func (f *fixture) item(ownerID int64, available bool) model.Item {
	f.t.Helper()
	it, err := f.items.CreateItem(f.ctx, ownerID, model.CreateItemRequest{
		Name:        "drill",
		Description: "cordless drill",
		Available:   &available,
	})
	require.NoError(f.t, err)
	return it
}

func (f *fixture) book(bookerID, itemID int64, start, end time.Time) model.Booking {
	f.t.Helper()
	b, err := f.bookings.Create(f.ctx, bookerID, model.CreateBookingRequest{ItemID: itemID, Start: start, End: end})
	require.NoError(f.t, err)
	return b
}
