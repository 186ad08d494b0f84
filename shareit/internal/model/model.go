package model

import (
	"time"
)

type User struct {
	ID    int64  `json:"id" db:"id"`
	Name  string `json:"name" db:"name" validate:"required"`
	Email string `json:"email" db:"email" validate:"required,email"`
}

type UpdateUserRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1"`
	Email *string `json:"email" validate:"omitempty,email"`
}

type Item struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	Available   bool   `json:"available" db:"available"`
	OwnerID     int64  `json:"ownerId" db:"owner_id"`
	RequestID   *int64 `json:"requestId,omitempty" db:"request_id"`
}

type CreateItemRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Available   *bool  `json:"available" validate:"required"`
	RequestID   *int64 `json:"requestId" validate:"omitempty,gt=0"`
}

type UpdateItemRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Description *string `json:"description" validate:"omitempty,min=1"`
	Available   *bool   `json:"available"`
}

type ItemView struct {
	Item        `json:",inline"`
	LastBooking *BookingShort `json:"lastBooking"`
	NextBooking *BookingShort `json:"nextBooking"`
	Comments    []Comment     `json:"comments"`
}

type BookingShort struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

type Comment struct {
	ID         int64     `json:"id" db:"id"`
	Text       string    `json:"text" db:"text"`
	ItemID     int64     `json:"itemId" db:"item_id"`
	AuthorID   int64     `json:"-" db:"author_id"`
	AuthorName string    `json:"authorName" db:"author_name"`
	Created    time.Time `json:"created" db:"created"`
}

type CreateCommentRequest struct {
	Text string `json:"text" validate:"required"`
}

type ItemRequest struct {
	ID          int64     `json:"id" db:"id"`
	Description string    `json:"description" db:"description"`
	RequesterID int64     `json:"requesterId" db:"requester_id"`
	Created     time.Time `json:"created" db:"created"`
}

type CreateItemRequestRequest struct {
	Description string `json:"description" validate:"required"`
}

// RequestView carries the items that currently reference the request.
type RequestView struct {
	ItemRequest `json:",inline"`
	Items       []Item `json:"items"`
}

type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	StatusCanceled Status = "CANCELED"
)

func (s Status) Terminal() bool {
	return s == StatusRejected || s == StatusCanceled
}

type Booking struct {
	ID       int64     `json:"id" db:"id"`
	Start    time.Time `json:"start" db:"start_date"`
	End      time.Time `json:"end" db:"end_date"`
	ItemID   int64     `json:"itemId" db:"item_id"`
	BookerID int64     `json:"bookerId" db:"booker_id"`
	Status   Status    `json:"status" db:"status"`
}

func (b Booking) Range() TimeRange {
	return TimeRange{Start: b.Start, End: b.End}
}

type CreateBookingRequest struct {
	ItemID int64     `json:"itemId" validate:"required,gt=0"`
	Start  time.Time `json:"start" validate:"required"`
	End    time.Time `json:"end" validate:"required"`
}
