package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/Astemirdum/shareit-service/shareit/internal/model"
)

var requestColumns = []string{"id", "description", "requester_id", "created"}

func (r *repository) CreateRequest(ctx context.Context, req model.ItemRequest) (model.ItemRequest, error) {
	var res model.ItemRequest
	err := r.get(ctx, &res, qb.Insert(requestsTableName).
		Columns("description", "requester_id", "created").
		Values(req.Description, req.RequesterID, req.Created.UTC()).
		Suffix("returning id, description, requester_id, created"))
	return res, err
}

func (r *repository) GetRequest(ctx context.Context, id int64) (model.ItemRequest, error) {
	var res model.ItemRequest
	err := r.get(ctx, &res, qb.Select(requestColumns...).
		From(requestsTableName).
		Where(sq.Eq{"id": id}))
	return res, err
}

func (r *repository) ListRequestsExcluding(ctx context.Context, userID int64, from, size int) ([]model.ItemRequest, error) {
	reqs := make([]model.ItemRequest, 0)
	err := r.selectAll(ctx, &reqs, qb.Select(requestColumns...).
		From(requestsTableName).
		Where(sq.NotEq{"requester_id": userID}).
		OrderBy("created desc", "id desc").
		Limit(uint64(size)).
		Offset(uint64(from)))
	return reqs, err
}

func (r *repository) ListRequestsBy(ctx context.Context, userID int64) ([]model.ItemRequest, error) {
	reqs := make([]model.ItemRequest, 0)
	err := r.selectAll(ctx, &reqs, qb.Select(requestColumns...).
		From(requestsTableName).
		Where(sq.Eq{"requester_id": userID}).
		OrderBy("created desc", "id desc"))
	return reqs, err
}
