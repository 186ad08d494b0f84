package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/shareit-service/shareit/internal/errs"
	"github.com/Astemirdum/shareit-service/shareit/internal/model"
)

type Repository interface {
	UserRepository
	ItemRepository
	BookingRepository
	RequestRepository

	// WithinItemLock runs fn while holding an exclusive scope keyed by itemID.
	// Writes made through the Repository passed to fn are atomic with the scope.
	WithinItemLock(ctx context.Context, itemID int64, fn func(repo Repository) error) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, user model.User) (model.User, error)
	GetUser(ctx context.Context, id int64) (model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, user model.User) (model.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type ItemRepository interface {
	CreateItem(ctx context.Context, item model.Item) (model.Item, error)
	GetItem(ctx context.Context, id int64) (model.Item, error)
	UpdateItem(ctx context.Context, item model.Item) (model.Item, error)
	ListItemsByOwner(ctx context.Context, ownerID int64) ([]model.Item, error)
	SearchItems(ctx context.Context, text string) ([]model.Item, error)
	ListItemsByRequest(ctx context.Context, requestID int64) ([]model.Item, error)

	CreateComment(ctx context.Context, comment model.Comment) (model.Comment, error)
	ListCommentsByItem(ctx context.Context, itemID int64) ([]model.Comment, error)
}

type BookingRepository interface {
	CreateBooking(ctx context.Context, booking model.Booking) (model.Booking, error)
	GetBooking(ctx context.Context, id int64) (model.Booking, error)
	UpdateBookingStatus(ctx context.Context, id int64, status model.Status) (model.Booking, error)
	ListBookingsByItem(ctx context.Context, itemID int64) ([]model.Booking, error)
	// ListBookingsByUser returns bookings made by the user (RoleBooker) or of the
	// user's items (RoleOwner), latest start first.
	ListBookingsByUser(ctx context.Context, userID int64, role model.Role) ([]model.Booking, error)
}

type RequestRepository interface {
	CreateRequest(ctx context.Context, req model.ItemRequest) (model.ItemRequest, error)
	GetRequest(ctx context.Context, id int64) (model.ItemRequest, error)
	ListRequestsExcluding(ctx context.Context, userID int64, from, size int) ([]model.ItemRequest, error)
	ListRequestsBy(ctx context.Context, userID int64) ([]model.ItemRequest, error)
}

type repository struct {
	db  *sqlx.DB
	q   sqlx.ExtContext
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		q:   db,
		log: log.Named("repo"),
	}, nil
}

const (
	usersTableName    = `users`
	itemsTableName    = `items`
	bookingsTableName = `bookings`
	requestsTableName = `requests`
	commentsTableName = `comments`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func (r *repository) WithinItemLock(ctx context.Context, itemID int64, fn func(repo Repository) error) error {
	if r.db == nil {
		// already inside a transaction
		return fn(r)
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `select pg_advisory_xact_lock($1)`, itemID); err != nil {
		return errors.Wrap(err, "pg_advisory_xact_lock")
	}
	if err := fn(&repository{q: tx, log: r.log}); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *repository) get(ctx context.Context, dest interface{}, b sq.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return err
	}
	if err := sqlx.GetContext(ctx, r.q, dest, query, args...); err != nil {
		r.log.Debug("get", zap.String("q", query), zap.Any("args", args), zap.Error(err))
		return mapError(err)
	}
	return nil
}

func (r *repository) selectAll(ctx context.Context, dest interface{}, b sq.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return err
	}
	if err := sqlx.SelectContext(ctx, r.q, dest, query, args...); err != nil {
		r.log.Error("select", zap.String("q", query), zap.Any("args", args), zap.Error(err))
		return mapError(err)
	}
	return nil
}

func (r *repository) exec(ctx context.Context, b sq.Sqlizer) (int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}
	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, mapError(err)
	}
	return res.RowsAffected()
}

func mapError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return errs.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation, pgerrcode.ForeignKeyViolation:
			return errors.Wrap(errs.ErrConflict, pgErr.Detail)
		}
	}
	return err
}
