package service_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Astemirdum/shareit-service/shareit/internal/errs"
	"github.com/Astemirdum/shareit-service/shareit/internal/model"
)

func TestBookingService_Scenario(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	u1, u2, u3 := f.user("owner"), f.user("booker"), f.user("other")
	item := f.item(u1.ID, true)

	first := f.book(u2.ID, item.ID, day(1), day(3))
	require.Equal(t, model.StatusWaiting, first.Status)

	first, err := f.bookings.ChangeStatus(f.ctx, first.ID, u1.ID, model.StatusApproved)
	require.NoError(t, err)
	require.Equal(t, model.StatusApproved, first.Status)

	second := f.book(u3.ID, item.ID, day(2), day(4))
	require.Equal(t, model.StatusWaiting, second.Status)

	_, err = f.bookings.ChangeStatus(f.ctx, second.ID, u1.ID, model.StatusApproved)
	require.ErrorIs(t, err, errs.ErrConflict)

	second, err = f.bookings.ChangeStatus(f.ctx, second.ID, u1.ID, model.StatusRejected)
	require.NoError(t, err)
	require.Equal(t, model.StatusRejected, second.Status)

	for _, tc := range []struct {
		actor  int64
		status model.Status
	}{
		{u1.ID, model.StatusApproved},
		{u1.ID, model.StatusRejected},
		{u3.ID, model.StatusCanceled},
		{u1.ID, model.StatusWaiting},
	} {
		_, err = f.bookings.ChangeStatus(f.ctx, second.ID, tc.actor, tc.status)
		require.ErrorIs(t, err, errs.ErrInvalidTransition, tc.status)
	}
}

func TestBookingService_ApproveAdjacent(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	owner, booker := f.user("owner"), f.user("booker")
	item := f.item(owner.ID, true)

	first := f.book(booker.ID, item.ID, day(1), day(2))
	second := f.book(booker.ID, item.ID, day(2), day(3))

	_, err := f.bookings.ChangeStatus(f.ctx, first.ID, owner.ID, model.StatusApproved)
	require.NoError(t, err)
	_, err = f.bookings.ChangeStatus(f.ctx, second.ID, owner.ID, model.StatusApproved)
	require.NoError(t, err)
}

func TestBookingService_Create(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	owner, booker := f.user("owner"), f.user("booker")
	item := f.item(owner.ID, true)
	unavailable := f.item(owner.ID, false)

	tests := []struct {
		name    string
		booker  int64
		req     model.CreateBookingRequest
		wantErr error
	}{
		{
			name:   "ok",
			booker: booker.ID,
			req:    model.CreateBookingRequest{ItemID: item.ID, Start: day(1), End: day(2)},
		},
		{
			name:   "start now",
			booker: booker.ID,
			req:    model.CreateBookingRequest{ItemID: item.ID, Start: now, End: day(1)},
		},
		{
			name:    "end before start",
			booker:  booker.ID,
			req:     model.CreateBookingRequest{ItemID: item.ID, Start: day(2), End: day(1)},
			wantErr: errs.ErrValidation,
		},
		{
			name:    "end equals start",
			booker:  booker.ID,
			req:     model.CreateBookingRequest{ItemID: item.ID, Start: day(1), End: day(1)},
			wantErr: errs.ErrValidation,
		},
		{
			name:    "start in the past",
			booker:  booker.ID,
			req:     model.CreateBookingRequest{ItemID: item.ID, Start: now.Add(-time.Minute), End: day(1)},
			wantErr: errs.ErrValidation,
		},
		{
			name:    "owner books own item",
			booker:  owner.ID,
			req:     model.CreateBookingRequest{ItemID: item.ID, Start: day(1), End: day(2)},
			wantErr: errs.ErrValidation,
		},
		{
			name:    "item unavailable",
			booker:  booker.ID,
			req:     model.CreateBookingRequest{ItemID: unavailable.ID, Start: day(1), End: day(2)},
			wantErr: errs.ErrValidation,
		},
		{
			name:    "missing item id",
			booker:  booker.ID,
			req:     model.CreateBookingRequest{Start: day(1), End: day(2)},
			wantErr: errs.ErrValidation,
		},
		{
			name:    "unknown item",
			booker:  booker.ID,
			req:     model.CreateBookingRequest{ItemID: 999, Start: day(1), End: day(2)},
			wantErr: errs.ErrNotFound,
		},
		{
			name:    "unknown booker",
			booker:  999,
			req:     model.CreateBookingRequest{ItemID: item.ID, Start: day(1), End: day(2)},
			wantErr: errs.ErrNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := f.bookings.Create(f.ctx, tt.booker, tt.req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, model.StatusWaiting, b.Status)
			require.Equal(t, tt.booker, b.BookerID)
		})
	}
}

func TestBookingService_ChangeStatusPermissions(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	owner, booker, stranger := f.user("owner"), f.user("booker"), f.user("stranger")
	item := f.item(owner.ID, true)

	b := f.book(booker.ID, item.ID, day(1), day(2))

	_, err := f.bookings.ChangeStatus(f.ctx, b.ID, booker.ID, model.StatusApproved)
	require.ErrorIs(t, err, errs.ErrForbidden)
	_, err = f.bookings.ChangeStatus(f.ctx, b.ID, stranger.ID, model.StatusRejected)
	require.ErrorIs(t, err, errs.ErrForbidden)
	_, err = f.bookings.ChangeStatus(f.ctx, b.ID, owner.ID, model.StatusCanceled)
	require.ErrorIs(t, err, errs.ErrForbidden)
	_, err = f.bookings.ChangeStatus(f.ctx, 999, owner.ID, model.StatusApproved)
	require.ErrorIs(t, err, errs.ErrNotFound)
	_, err = f.bookings.ChangeStatus(f.ctx, b.ID, 999, model.StatusApproved)
	require.ErrorIs(t, err, errs.ErrNotFound)

	approved, err := f.bookings.ChangeStatus(f.ctx, b.ID, owner.ID, model.StatusApproved)
	require.NoError(t, err)
	require.Equal(t, model.StatusApproved, approved.Status)

	_, err = f.bookings.ChangeStatus(f.ctx, b.ID, owner.ID, model.StatusRejected)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)

	canceled, err := f.bookings.ChangeStatus(f.ctx, b.ID, booker.ID, model.StatusCanceled)
	require.NoError(t, err)
	require.Equal(t, model.StatusCanceled, canceled.Status)

	_, err = f.bookings.ChangeStatus(f.ctx, b.ID, booker.ID, model.StatusCanceled)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestBookingService_CancelFreesSlot(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	owner, b1, b2 := f.user("owner"), f.user("b1"), f.user("b2")
	item := f.item(owner.ID, true)

	first := f.book(b1.ID, item.ID, day(1), day(3))
	second := f.book(b2.ID, item.ID, day(2), day(4))

	_, err := f.bookings.ChangeStatus(f.ctx, first.ID, owner.ID, model.StatusApproved)
	require.NoError(t, err)
	_, err = f.bookings.ChangeStatus(f.ctx, first.ID, b1.ID, model.StatusCanceled)
	require.NoError(t, err)
	_, err = f.bookings.ChangeStatus(f.ctx, second.ID, owner.ID, model.StatusApproved)
	require.NoError(t, err)
}

func TestBookingService_ConcurrentApprovals(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	owner := f.user("owner")
	item := f.item(owner.ID, true)

	const n = 16
	ids := make([]int64, n)
	for i := 0; i < n; i++ {
		booker := f.user("booker" + string(rune('a'+i)))
		ids[i] = f.book(booker.ID, item.ID, day(1), day(3)).ID
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		approved  int
		conflicts int
	)
	for _, id := range ids {
		id := id
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.bookings.ChangeStatus(f.ctx, id, owner.ID, model.StatusApproved)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				approved++
			case errors.Is(err, errs.ErrConflict):
				conflicts++
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 1, approved)
	require.Equal(t, n-1, conflicts)
}

func TestBookingService_Get(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	owner, booker, stranger := f.user("owner"), f.user("booker"), f.user("stranger")
	item := f.item(owner.ID, true)
	b := f.book(booker.ID, item.ID, day(1), day(2))

	got, err := f.bookings.Get(f.ctx, b.ID, booker.ID)
	require.NoError(t, err)
	require.Equal(t, b, got)

	got, err = f.bookings.Get(f.ctx, b.ID, owner.ID)
	require.NoError(t, err)
	require.Equal(t, b, got)

	_, err = f.bookings.Get(f.ctx, b.ID, stranger.ID)
	require.ErrorIs(t, err, errs.ErrForbidden)

	_, err = f.bookings.Get(f.ctx, 999, owner.ID)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestBookingService_ListForUser(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	owner, booker := f.user("owner"), f.user("booker")
	item := f.item(owner.ID, true)

	past := f.book(booker.ID, item.ID, day(1), day(2))
	current := f.book(booker.ID, item.ID, day(3), day(5))
	future := f.book(booker.ID, item.ID, day(6), day(7))
	rejected := f.book(booker.ID, item.ID, day(8), day(9))

	_, err := f.bookings.ChangeStatus(f.ctx, past.ID, owner.ID, model.StatusApproved)
	require.NoError(t, err)
	_, err = f.bookings.ChangeStatus(f.ctx, current.ID, owner.ID, model.StatusApproved)
	require.NoError(t, err)
	_, err = f.bookings.ChangeStatus(f.ctx, rejected.ID, owner.ID, model.StatusRejected)
	require.NoError(t, err)

	f.clock = day(4)

	ids := func(bs []model.Booking) []int64 {
		res := make([]int64, 0, len(bs))
		for _, b := range bs {
			res = append(res, b.ID)
		}
		return res
	}

	tests := []struct {
		state string
		want  []int64
	}{
		{state: "ALL", want: []int64{rejected.ID, future.ID, current.ID, past.ID}},
		{state: "", want: []int64{rejected.ID, future.ID, current.ID, past.ID}},
		{state: "current", want: []int64{current.ID}},
		{state: "PAST", want: []int64{past.ID}},
		{state: "future", want: []int64{rejected.ID, future.ID}},
		{state: "WAITING", want: []int64{future.ID}},
		{state: "rejected", want: []int64{rejected.ID}},
	}
	for _, role := range []model.Role{model.RoleBooker, model.RoleOwner} {
		userID := booker.ID
		if role == model.RoleOwner {
			userID = owner.ID
		}
		for _, tt := range tests {
			got, err := f.bookings.ListForUser(f.ctx, userID, tt.state, role)
			require.NoError(t, err)
			require.Equal(t, tt.want, ids(got), "%s %s", role, tt.state)
		}
	}

	none, err := f.bookings.ListForUser(f.ctx, owner.ID, "ALL", model.RoleBooker)
	require.NoError(t, err)
	require.Empty(t, none)

	_, err = f.bookings.ListForUser(f.ctx, booker.ID, "UNSUPPORTED_STATUS", model.RoleBooker)
	require.ErrorIs(t, err, errs.ErrValidation)

	_, err = f.bookings.ListForUser(f.ctx, 999, "ALL", model.RoleBooker)
	require.ErrorIs(t, err, errs.ErrNotFound)
}
