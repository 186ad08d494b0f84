package service

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/shareit-service/shareit/internal/errs"
	"github.com/Astemirdum/shareit-service/shareit/internal/model"
	"github.com/Astemirdum/shareit-service/shareit/internal/repository"
)

// AvailabilityChecker decides whether a time range is free for an item.
// Only APPROVED bookings reserve a slot.
type AvailabilityChecker struct {
	bookings repository.BookingRepository
	log      *zap.Logger
}

func NewAvailabilityChecker(bookings repository.BookingRepository, log *zap.Logger) *AvailabilityChecker {
	return &AvailabilityChecker{
		bookings: bookings,
		log:      named(log, "availability"),
	}
}

// IsAvailable reports whether candidate is free of approved bookings of the item.
// excludeBookingID (0 for none) is left out of the comparison.
//
// Two approved bookings of the item that overlap each other are reported as
// errs.ErrInvariant.
func (c *AvailabilityChecker) IsAvailable(ctx context.Context, itemID int64, candidate model.TimeRange, excludeBookingID int64) (bool, error) {
	bookings, err := c.bookings.ListBookingsByItem(ctx, itemID)
	if err != nil {
		return false, errors.Wrap(err, "list item bookings")
	}

	approved := make([]model.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.Status == model.StatusApproved && b.ID != excludeBookingID {
			approved = append(approved, b)
		}
	}

	if err := c.checkDisjoint(itemID, approved); err != nil {
		return false, err
	}

	for _, b := range approved {
		if b.Range().Overlaps(candidate) {
			c.log.Debug("slot taken",
				zap.Int64("itemID", itemID),
				zap.Int64("bookingID", b.ID),
				zap.Time("start", candidate.Start),
				zap.Time("end", candidate.End))
			return false, nil
		}
	}
	return true, nil
}

func (c *AvailabilityChecker) checkDisjoint(itemID int64, approved []model.Booking) error {
	if len(approved) < 2 {
		return nil
	}
	sorted := make([]model.Booking, len(approved))
	copy(sorted, approved)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	latest := sorted[0]
	for _, b := range sorted[1:] {
		if b.Start.Before(latest.End) {
			c.log.Error("overlapping approved bookings",
				zap.Int64("itemID", itemID),
				zap.Int64("first", latest.ID),
				zap.Int64("second", b.ID))
			return errors.Wrapf(errs.ErrInvariant, "approved bookings %d and %d of item %d overlap", latest.ID, b.ID, itemID)
		}
		if b.End.After(latest.End) {
			latest = b
		}
	}
	return nil
}
