package service

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/shareit-service/pkg/kafka"
	"github.com/Astemirdum/shareit-service/shareit/internal/errs"
	"github.com/Astemirdum/shareit-service/shareit/internal/model"
	"github.com/Astemirdum/shareit-service/shareit/internal/repository"
)

type BookingService struct {
	log  *zap.Logger
	repo repository.Repository
	opts options
}

func NewBookingService(repo repository.Repository, log *zap.Logger, opts ...Option) *BookingService {
	return &BookingService{
		log:  named(log, "booking"),
		repo: repo,
		opts: newOptions(opts),
	}
}

// Create books an item in WAITING. Overlaps are not checked here: several
// waiting requests may compete for a slot until the owner approves one.
func (s *BookingService) Create(ctx context.Context, bookerID int64, req model.CreateBookingRequest) (model.Booking, error) {
	if err := validateStruct(req); err != nil {
		return model.Booking{}, err
	}
	rng := model.NewTimeRange(req.Start, req.End)
	if !rng.Valid() {
		return model.Booking{}, errors.Wrap(errs.ErrValidation, "start must be before end")
	}
	now := s.opts.now()
	if rng.Start.Before(now) {
		return model.Booking{}, errors.Wrap(errs.ErrValidation, "start must not be in the past")
	}
	if !rng.End.After(now) {
		return model.Booking{}, errors.Wrap(errs.ErrValidation, "end must be in the future")
	}

	if _, err := s.repo.GetUser(ctx, bookerID); err != nil {
		return model.Booking{}, wrapNotFound(err, "user %d", bookerID)
	}
	item, err := s.repo.GetItem(ctx, req.ItemID)
	if err != nil {
		return model.Booking{}, wrapNotFound(err, "item %d", req.ItemID)
	}
	if !item.Available {
		return model.Booking{}, errors.Wrapf(errs.ErrValidation, "item %d is not available", item.ID)
	}
	if item.OwnerID == bookerID {
		return model.Booking{}, errors.Wrap(errs.ErrValidation, "owner cannot book own item")
	}

	booking, err := s.repo.CreateBooking(ctx, model.Booking{
		Start:    rng.Start,
		End:      rng.End,
		ItemID:   item.ID,
		BookerID: bookerID,
		Status:   model.StatusWaiting,
	})
	if err != nil {
		return model.Booking{}, errors.Wrap(err, "create booking")
	}
	s.log.Info("booking created",
		zap.Int64("bookingID", booking.ID),
		zap.Int64("itemID", booking.ItemID),
		zap.Int64("bookerID", bookerID))
	s.notify(ctx, kafka.EventBookingCreated, booking)
	return booking, nil
}

// ChangeStatus applies a status transition requested by actorID. The whole
// check-and-write runs in the item's exclusive scope, so two overlapping
// bookings of one item can never both be approved.
func (s *BookingService) ChangeStatus(ctx context.Context, bookingID, actorID int64, desired model.Status) (model.Booking, error) {
	if _, err := s.repo.GetUser(ctx, actorID); err != nil {
		return model.Booking{}, wrapNotFound(err, "user %d", actorID)
	}
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return model.Booking{}, wrapNotFound(err, "booking %d", bookingID)
	}

	var updated model.Booking
	err = s.repo.WithinItemLock(ctx, booking.ItemID, func(tx repository.Repository) error {
		current, err := tx.GetBooking(ctx, bookingID)
		if err != nil {
			return wrapNotFound(err, "booking %d", bookingID)
		}
		item, err := tx.GetItem(ctx, current.ItemID)
		if err != nil {
			return wrapNotFound(err, "item %d", current.ItemID)
		}
		if err := Transition(current.Status, desired, actorOf(actorID, item, current)); err != nil {
			return err
		}

		if desired == model.StatusApproved {
			ok, err := NewAvailabilityChecker(tx, s.log).IsAvailable(ctx, item.ID, current.Range(), current.ID)
			if err != nil {
				return err
			}
			if !ok {
				return errors.Wrapf(errs.ErrConflict, "booking %d overlaps an approved booking of item %d", current.ID, item.ID)
			}
		}

		updated, err = tx.UpdateBookingStatus(ctx, current.ID, desired)
		return err
	})
	if err != nil {
		return model.Booking{}, err
	}

	s.log.Info("booking status changed",
		zap.Int64("bookingID", updated.ID),
		zap.String("status", string(updated.Status)),
		zap.Int64("actorID", actorID))
	s.notify(ctx, kafka.EventBookingStatusChanged, updated)
	return updated, nil
}

// Get is visible to the booker and to the item owner only.
func (s *BookingService) Get(ctx context.Context, bookingID, actorID int64) (model.Booking, error) {
	if _, err := s.repo.GetUser(ctx, actorID); err != nil {
		return model.Booking{}, wrapNotFound(err, "user %d", actorID)
	}
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return model.Booking{}, wrapNotFound(err, "booking %d", bookingID)
	}
	item, err := s.repo.GetItem(ctx, booking.ItemID)
	if err != nil {
		return model.Booking{}, wrapNotFound(err, "item %d", booking.ItemID)
	}
	if actorOf(actorID, item, booking) == ActorStranger {
		return model.Booking{}, errors.Wrapf(errs.ErrForbidden, "booking %d", bookingID)
	}
	return booking, nil
}

// ListForUser lists bookings of userID as booker or as item owner, filtered by
// state and ordered by start descending.
func (s *BookingService) ListForUser(ctx context.Context, userID int64, state string, role model.Role) ([]model.Booking, error) {
	st, err := model.ParseState(state)
	if err != nil {
		return nil, err
	}
	if role != model.RoleBooker && role != model.RoleOwner {
		return nil, errors.Wrapf(errs.ErrValidation, "unknown role %s", role)
	}
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return nil, wrapNotFound(err, "user %d", userID)
	}

	bookings, err := s.repo.ListBookingsByUser(ctx, userID, role)
	if err != nil {
		return nil, errors.Wrap(err, "list bookings")
	}
	now := s.opts.now()
	res := make([]model.Booking, 0, len(bookings))
	for _, b := range bookings {
		if st.Match(b, now) {
			res = append(res, b)
		}
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].Start.After(res[j].Start) })
	return res, nil
}

func (s *BookingService) notify(ctx context.Context, typ kafka.EventType, b model.Booking) {
	s.opts.notifier.BookingChanged(ctx, kafka.NewBookingEvent(typ, b.ID, b.ItemID, b.BookerID, string(b.Status)))
}
