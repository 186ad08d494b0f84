package service

import (
	"github.com/pkg/errors"

	"github.com/Astemirdum/shareit-service/shareit/internal/errs"
	"github.com/Astemirdum/shareit-service/shareit/internal/model"
)

// Actor is the caller's relation to a booking.
type Actor uint8

const (
	ActorStranger Actor = iota
	ActorOwner
	ActorBooker
)

func (a Actor) String() string {
	switch a {
	case ActorOwner:
		return "owner"
	case ActorBooker:
		return "booker"
	}
	return "stranger"
}

func actorOf(userID int64, item model.Item, booking model.Booking) Actor {
	switch userID {
	case item.OwnerID:
		return ActorOwner
	case booking.BookerID:
		return ActorBooker
	}
	return ActorStranger
}

type transitionRule struct {
	actor Actor
	from  []model.Status
}

var transitions = map[model.Status]transitionRule{
	model.StatusApproved: {actor: ActorOwner, from: []model.Status{model.StatusWaiting}},
	model.StatusRejected: {actor: ActorOwner, from: []model.Status{model.StatusWaiting}},
	model.StatusCanceled: {actor: ActorBooker, from: []model.Status{model.StatusWaiting, model.StatusApproved}},
}

// Transition checks that actor may move a booking from one status to another.
// The wrong actor gets errs.ErrForbidden, any other illegal move errs.ErrInvalidTransition.
// Availability for APPROVED is checked separately.
func Transition(from, to model.Status, actor Actor) error {
	rule, ok := transitions[to]
	if !ok {
		return errors.Wrapf(errs.ErrInvalidTransition, "status %s cannot be set", to)
	}
	if actor != rule.actor {
		return errors.Wrapf(errs.ErrForbidden, "%s cannot set status %s", actor, to)
	}
	for _, st := range rule.from {
		if st == from {
			return nil
		}
	}
	return errors.Wrapf(errs.ErrInvalidTransition, "%s -> %s", from, to)
}
