package errs

import (
	"errors"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrConflict          = errors.New("conflict")
	// ErrInvariant reports persisted state that breaks a booking invariant.
	ErrInvariant = errors.New("invariant violated")
)
