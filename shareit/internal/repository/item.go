package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/Astemirdum/shareit-service/shareit/internal/model"
)

var itemColumns = []string{"id", "name", "description", "available", "owner_id", "request_id"}

const itemReturning = "returning id, name, description, available, owner_id, request_id"

func (r *repository) CreateItem(ctx context.Context, item model.Item) (model.Item, error) {
	var res model.Item
	err := r.get(ctx, &res, qb.Insert(itemsTableName).
		Columns("name", "description", "available", "owner_id", "request_id").
		Values(item.Name, item.Description, item.Available, item.OwnerID, item.RequestID).
		Suffix(itemReturning))
	return res, err
}

func (r *repository) GetItem(ctx context.Context, id int64) (model.Item, error) {
	var res model.Item
	err := r.get(ctx, &res, qb.Select(itemColumns...).
		From(itemsTableName).
		Where(sq.Eq{"id": id}))
	return res, err
}

func (r *repository) UpdateItem(ctx context.Context, item model.Item) (model.Item, error) {
	var res model.Item
	err := r.get(ctx, &res, qb.Update(itemsTableName).
		SetMap(map[string]interface{}{
			"name":        item.Name,
			"description": item.Description,
			"available":   item.Available,
		}).
		Where(sq.Eq{"id": item.ID}).
		Suffix(itemReturning))
	return res, err
}

func (r *repository) ListItemsByOwner(ctx context.Context, ownerID int64) ([]model.Item, error) {
	items := make([]model.Item, 0)
	err := r.selectAll(ctx, &items, qb.Select(itemColumns...).
		From(itemsTableName).
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("id"))
	return items, err
}

func (r *repository) SearchItems(ctx context.Context, text string) ([]model.Item, error) {
	pattern := "%" + text + "%"
	items := make([]model.Item, 0)
	err := r.selectAll(ctx, &items, qb.Select(itemColumns...).
		From(itemsTableName).
		Where(sq.Eq{"available": true}).
		Where(sq.Or{sq.ILike{"name": pattern}, sq.ILike{"description": pattern}}).
		OrderBy("id"))
	return items, err
}

func (r *repository) ListItemsByRequest(ctx context.Context, requestID int64) ([]model.Item, error) {
	items := make([]model.Item, 0)
	err := r.selectAll(ctx, &items, qb.Select(itemColumns...).
		From(itemsTableName).
		Where(sq.Eq{"request_id": requestID}).
		OrderBy("id"))
	return items, err
}

func (r *repository) CreateComment(ctx context.Context, comment model.Comment) (model.Comment, error) {
	var res model.Comment
	err := r.get(ctx, &res, qb.Insert(commentsTableName).
		Columns("text", "item_id", "author_id", "created").
		Values(comment.Text, comment.ItemID, comment.AuthorID, comment.Created).
		Suffix("returning id, text, item_id, author_id, created"))
	if err != nil {
		return model.Comment{}, err
	}
	res.AuthorName = comment.AuthorName
	return res, nil
}

func (r *repository) ListCommentsByItem(ctx context.Context, itemID int64) ([]model.Comment, error) {
	comments := make([]model.Comment, 0)
	err := r.selectAll(ctx, &comments, qb.Select("c.id", "c.text", "c.item_id", "c.author_id", "u.name as author_name", "c.created").
		From(commentsTableName+" c").
		Join(usersTableName+" u on u.id = c.author_id").
		Where(sq.Eq{"c.item_id": itemID}).
		OrderBy("c.created", "c.id"))
	return comments, err
}
