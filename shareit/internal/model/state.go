package model

import (
	"strings"
	"time"

	"github.com/Astemirdum/shareit-service/shareit/internal/errs"
	"github.com/pkg/errors"
)

// State filters bookings by status or by their position relative to now.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

var states = []State{StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected}

// ParseState is case-insensitive. An empty string means ALL.
func ParseState(s string) (State, error) {
	if strings.TrimSpace(s) == "" {
		return StateAll, nil
	}
	for _, st := range states {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", errors.Wrapf(errs.ErrValidation, "Unknown state: %s", s)
}

func (s State) Match(b Booking, now time.Time) bool {
	switch s {
	case StateAll:
		return true
	case StateCurrent:
		return b.Range().Contains(now)
	case StatePast:
		return b.Range().EndsBefore(now)
	case StateFuture:
		return b.Range().StartsAfter(now)
	case StateWaiting:
		return b.Status == StatusWaiting
	case StateRejected:
		return b.Status == StatusRejected
	}
	return false
}

// Role selects which side of a booking the listing user is on.
type Role string

const (
	RoleBooker Role = "BOOKER"
	RoleOwner  Role = "OWNER"
)
