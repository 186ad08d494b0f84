package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/Astemirdum/shareit-service/shareit/internal/model"
)

var bookingColumns = []string{"b.id", "b.start_date", "b.end_date", "b.item_id", "b.booker_id", "b.status"}

const bookingReturning = "returning id, start_date, end_date, item_id, booker_id, status"

func (r *repository) CreateBooking(ctx context.Context, booking model.Booking) (model.Booking, error) {
	var res model.Booking
	err := r.get(ctx, &res, qb.Insert(bookingsTableName).
		Columns("start_date", "end_date", "item_id", "booker_id", "status").
		Values(booking.Start.UTC(), booking.End.UTC(), booking.ItemID, booking.BookerID, booking.Status).
		Suffix(bookingReturning))
	return res, err
}

func (r *repository) GetBooking(ctx context.Context, id int64) (model.Booking, error) {
	var res model.Booking
	err := r.get(ctx, &res, qb.Select(bookingColumns...).
		From(bookingsTableName+" b").
		Where(sq.Eq{"b.id": id}))
	return res, err
}

func (r *repository) UpdateBookingStatus(ctx context.Context, id int64, status model.Status) (model.Booking, error) {
	var res model.Booking
	err := r.get(ctx, &res, qb.Update(bookingsTableName).
		Set("status", status).
		Where(sq.Eq{"id": id}).
		Suffix(bookingReturning))
	return res, err
}

func (r *repository) ListBookingsByItem(ctx context.Context, itemID int64) ([]model.Booking, error) {
	bookings := make([]model.Booking, 0)
	err := r.selectAll(ctx, &bookings, qb.Select(bookingColumns...).
		From(bookingsTableName+" b").
		Where(sq.Eq{"b.item_id": itemID}).
		OrderBy("b.start_date"))
	return bookings, err
}

func (r *repository) ListBookingsByUser(ctx context.Context, userID int64, role model.Role) ([]model.Booking, error) {
	q := qb.Select(bookingColumns...).
		From(bookingsTableName + " b")
	if role == model.RoleOwner {
		q = q.Join(itemsTableName + " i on i.id = b.item_id").
			Where(sq.Eq{"i.owner_id": userID})
	} else {
		q = q.Where(sq.Eq{"b.booker_id": userID})
	}

	bookings := make([]model.Booking, 0)
	err := r.selectAll(ctx, &bookings, q.OrderBy("b.start_date desc", "b.id desc"))
	return bookings, err
}
