package service

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Astemirdum/shareit-service/shareit/internal/errs"
	"github.com/Astemirdum/shareit-service/shareit/internal/model"
	"github.com/Astemirdum/shareit-service/shareit/internal/repository"
)

const assembleConcurrency = 8

// RequestMatcher links items to the requests they fulfil and builds request views.
type RequestMatcher struct {
	log  *zap.Logger
	repo repository.Repository
	opts options
}

func NewRequestMatcher(repo repository.Repository, log *zap.Logger, opts ...Option) *RequestMatcher {
	return &RequestMatcher{
		log:  named(log, "request"),
		repo: repo,
		opts: newOptions(opts),
	}
}

func (m *RequestMatcher) CreateRequest(ctx context.Context, requesterID int64, req model.CreateItemRequestRequest) (model.ItemRequest, error) {
	if err := notBlank("description", req.Description); err != nil {
		return model.ItemRequest{}, err
	}
	if _, err := m.repo.GetUser(ctx, requesterID); err != nil {
		return model.ItemRequest{}, wrapNotFound(err, "user %d", requesterID)
	}
	created, err := m.repo.CreateRequest(ctx, model.ItemRequest{
		Description: strings.TrimSpace(req.Description),
		RequesterID: requesterID,
		Created:     m.opts.now().UTC(),
	})
	if err != nil {
		return model.ItemRequest{}, errors.Wrap(err, "create request")
	}
	m.log.Info("item request created", zap.Int64("requestID", created.ID), zap.Int64("requesterID", requesterID))
	return created, nil
}

// CreateItemLinkedToRequest creates an item owned by ownerID, attached to
// req.RequestID when it is set.
func (m *RequestMatcher) CreateItemLinkedToRequest(ctx context.Context, ownerID int64, req model.CreateItemRequest) (model.Item, error) {
	if err := validateStruct(req); err != nil {
		return model.Item{}, err
	}
	if err := notBlank("name", req.Name); err != nil {
		return model.Item{}, err
	}
	if err := notBlank("description", req.Description); err != nil {
		return model.Item{}, err
	}
	if _, err := m.repo.GetUser(ctx, ownerID); err != nil {
		return model.Item{}, wrapNotFound(err, "user %d", ownerID)
	}

	item := model.Item{
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
		OwnerID:     ownerID,
	}
	if req.RequestID != nil {
		itemReq, err := m.repo.GetRequest(ctx, *req.RequestID)
		if err != nil {
			return model.Item{}, wrapNotFound(err, "request %d", *req.RequestID)
		}
		item.RequestID = &itemReq.ID
	}

	created, err := m.repo.CreateItem(ctx, item)
	if err != nil {
		return model.Item{}, errors.Wrap(err, "create item")
	}
	return created, nil
}

// AssembleRequestView attaches the items currently referencing req, in creation order.
func (m *RequestMatcher) AssembleRequestView(ctx context.Context, req model.ItemRequest) (model.RequestView, error) {
	items, err := m.repo.ListItemsByRequest(ctx, req.ID)
	if err != nil {
		return model.RequestView{}, errors.Wrapf(err, "items of request %d", req.ID)
	}
	if items == nil {
		items = []model.Item{}
	}
	return model.RequestView{ItemRequest: req, Items: items}, nil
}

func (m *RequestMatcher) GetRequest(ctx context.Context, userID, requestID int64) (model.RequestView, error) {
	if _, err := m.repo.GetUser(ctx, userID); err != nil {
		return model.RequestView{}, wrapNotFound(err, "user %d", userID)
	}
	req, err := m.repo.GetRequest(ctx, requestID)
	if err != nil {
		return model.RequestView{}, wrapNotFound(err, "request %d", requestID)
	}
	return m.AssembleRequestView(ctx, req)
}

// ListAllRequestsExcludingOwn pages through other users' requests, newest first.
func (m *RequestMatcher) ListAllRequestsExcludingOwn(ctx context.Context, userID int64, from, size int) ([]model.RequestView, error) {
	if from < 0 {
		return nil, errors.Wrapf(errs.ErrValidation, "from must be >= 0, got %d", from)
	}
	if size <= 0 {
		return nil, errors.Wrapf(errs.ErrValidation, "size must be > 0, got %d", size)
	}
	if _, err := m.repo.GetUser(ctx, userID); err != nil {
		return nil, wrapNotFound(err, "user %d", userID)
	}
	reqs, err := m.repo.ListRequestsExcluding(ctx, userID, from, size)
	if err != nil {
		return nil, errors.Wrap(err, "list requests")
	}
	return m.assembleAll(ctx, reqs)
}

func (m *RequestMatcher) ListOwnRequests(ctx context.Context, userID int64) ([]model.RequestView, error) {
	if _, err := m.repo.GetUser(ctx, userID); err != nil {
		return nil, wrapNotFound(err, "user %d", userID)
	}
	reqs, err := m.repo.ListRequestsBy(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "list own requests")
	}
	return m.assembleAll(ctx, reqs)
}

func (m *RequestMatcher) assembleAll(ctx context.Context, reqs []model.ItemRequest) ([]model.RequestView, error) {
	views := make([]model.RequestView, len(reqs))
	gg, ctx := errgroup.WithContext(ctx)
	gg.SetLimit(assembleConcurrency)
	for i := range reqs {
		i := i
		gg.Go(func() error {
			view, err := m.AssembleRequestView(ctx, reqs[i])
			if err != nil {
				return err
			}
			views[i] = view
			return nil
		})
	}
	if err := gg.Wait(); err != nil {
		return nil, err
	}
	return views, nil
}
