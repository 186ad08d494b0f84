package service

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/shareit-service/shareit/internal/errs"
	"github.com/Astemirdum/shareit-service/shareit/internal/model"
	"github.com/Astemirdum/shareit-service/shareit/internal/repository"
)

type ItemService struct {
	log     *zap.Logger
	repo    repository.Repository
	matcher *RequestMatcher
	opts    options
}

func NewItemService(repo repository.Repository, matcher *RequestMatcher, log *zap.Logger, opts ...Option) *ItemService {
	return &ItemService{
		log:     named(log, "item"),
		repo:    repo,
		matcher: matcher,
		opts:    newOptions(opts),
	}
}

func (s *ItemService) CreateItem(ctx context.Context, ownerID int64, req model.CreateItemRequest) (model.Item, error) {
	item, err := s.matcher.CreateItemLinkedToRequest(ctx, ownerID, req)
	if err != nil {
		return model.Item{}, err
	}
	s.log.Info("item created", zap.Int64("itemID", item.ID), zap.Int64("ownerID", ownerID))
	return item, nil
}

// UpdateItem patches the fields that are set. Only the owner may update; the owner itself never changes.
func (s *ItemService) UpdateItem(ctx context.Context, ownerID, itemID int64, req model.UpdateItemRequest) (model.Item, error) {
	if err := validateStruct(req); err != nil {
		return model.Item{}, err
	}
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return model.Item{}, wrapNotFound(err, "item %d", itemID)
	}
	if item.OwnerID != ownerID {
		return model.Item{}, errors.Wrapf(errs.ErrForbidden, "item %d belongs to another user", itemID)
	}
	if req.Name != nil {
		if err := notBlank("name", *req.Name); err != nil {
			return model.Item{}, err
		}
		item.Name = *req.Name
	}
	if req.Description != nil {
		if err := notBlank("description", *req.Description); err != nil {
			return model.Item{}, err
		}
		item.Description = *req.Description
	}
	if req.Available != nil {
		item.Available = *req.Available
	}
	return s.repo.UpdateItem(ctx, item)
}

// GetItem returns the item with its comments; the owner also sees the last
// and the next approved booking.
func (s *ItemService) GetItem(ctx context.Context, userID, itemID int64) (model.ItemView, error) {
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return model.ItemView{}, wrapNotFound(err, "user %d", userID)
	}
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return model.ItemView{}, wrapNotFound(err, "item %d", itemID)
	}
	return s.view(ctx, item, item.OwnerID == userID)
}

func (s *ItemService) ListOwnerItems(ctx context.Context, ownerID int64) ([]model.ItemView, error) {
	if _, err := s.repo.GetUser(ctx, ownerID); err != nil {
		return nil, wrapNotFound(err, "user %d", ownerID)
	}
	items, err := s.repo.ListItemsByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "list owner items")
	}
	views := make([]model.ItemView, 0, len(items))
	for _, it := range items {
		v, err := s.view(ctx, it, true)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

func (s *ItemService) SearchItems(ctx context.Context, text string) ([]model.Item, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []model.Item{}, nil
	}
	return s.repo.SearchItems(ctx, text)
}

// AddComment lets a user who has finished an approved booking of the item leave a comment.
func (s *ItemService) AddComment(ctx context.Context, authorID, itemID int64, req model.CreateCommentRequest) (model.Comment, error) {
	if err := notBlank("text", req.Text); err != nil {
		return model.Comment{}, err
	}
	author, err := s.repo.GetUser(ctx, authorID)
	if err != nil {
		return model.Comment{}, wrapNotFound(err, "user %d", authorID)
	}
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return model.Comment{}, wrapNotFound(err, "item %d", itemID)
	}
	bookings, err := s.repo.ListBookingsByItem(ctx, item.ID)
	if err != nil {
		return model.Comment{}, errors.Wrap(err, "list item bookings")
	}
	now := s.opts.now()
	rented := false
	for _, b := range bookings {
		if b.BookerID == authorID && b.Status == model.StatusApproved && b.Range().EndsBefore(now) {
			rented = true
			break
		}
	}
	if !rented {
		return model.Comment{}, errors.Wrapf(errs.ErrValidation, "user %d has not completed a booking of item %d", authorID, itemID)
	}

	return s.repo.CreateComment(ctx, model.Comment{
		Text:       strings.TrimSpace(req.Text),
		ItemID:     item.ID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Created:    now.UTC(),
	})
}

func (s *ItemService) view(ctx context.Context, item model.Item, owner bool) (model.ItemView, error) {
	comments, err := s.repo.ListCommentsByItem(ctx, item.ID)
	if err != nil {
		return model.ItemView{}, errors.Wrap(err, "list comments")
	}
	if comments == nil {
		comments = []model.Comment{}
	}
	view := model.ItemView{Item: item, Comments: comments}
	if !owner {
		return view, nil
	}

	bookings, err := s.repo.ListBookingsByItem(ctx, item.ID)
	if err != nil {
		return model.ItemView{}, errors.Wrap(err, "list item bookings")
	}
	now := s.opts.now()
	var last, next *model.Booking
	for i := range bookings {
		b := &bookings[i]
		if b.Status != model.StatusApproved {
			continue
		}
		if b.Start.After(now) {
			if next == nil || b.Start.Before(next.Start) {
				next = b
			}
		} else if last == nil || b.Start.After(last.Start) {
			last = b
		}
	}
	if last != nil {
		view.LastBooking = &model.BookingShort{ID: last.ID, BookerID: last.BookerID}
	}
	if next != nil {
		view.NextBooking = &model.BookingShort{ID: next.ID, BookerID: next.BookerID}
	}
	return view, nil
}
