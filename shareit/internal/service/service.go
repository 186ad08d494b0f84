package service

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/shareit-service/pkg/kafka"
	"github.com/Astemirdum/shareit-service/pkg/validate"
	"github.com/Astemirdum/shareit-service/shareit/internal/errs"
)

// Notifier receives booking lifecycle events. Delivery is best effort.
type Notifier interface {
	BookingChanged(ctx context.Context, event kafka.BookingEvent)
}

type nopNotifier struct{}

func (nopNotifier) BookingChanged(context.Context, kafka.BookingEvent) {}

type options struct {
	now      func() time.Time
	notifier Notifier
}

type Option func(*options)

// WithClock overrides the source of "now" used by time checks and state filters.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func WithNotifier(n Notifier) Option {
	return func(o *options) {
		if n != nil {
			o.notifier = n
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		now:      time.Now,
		notifier: nopNotifier{},
	}
	for _, op := range opts {
		op(&o)
	}
	return o
}

var validator = validate.NewCustomValidator()

func validateStruct(v interface{}) error {
	if err := validator.Validate(v); err != nil {
		return errors.Wrap(errs.ErrValidation, err.Error())
	}
	return nil
}

func notBlank(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.Wrapf(errs.ErrValidation, "%s must not be blank", field)
	}
	return nil
}

func wrapNotFound(err error, format string, args ...interface{}) error {
	if errors.Is(err, errs.ErrNotFound) {
		return errors.Wrapf(errs.ErrNotFound, format, args...)
	}
	return err
}

func named(log *zap.Logger, name string) *zap.Logger {
	if log == nil {
		log = zap.NewNop()
	}
	return log.Named(name)
}
