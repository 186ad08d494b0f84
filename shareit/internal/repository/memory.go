package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/Astemirdum/shareit-service/shareit/internal/errs"
	"github.com/Astemirdum/shareit-service/shareit/internal/model"
)

// memory keeps everything in process. Item scopes are per-item mutexes, so
// approvals of different items never wait on each other.
type memory struct {
	mu       sync.RWMutex
	seq      int64
	users    map[int64]model.User
	items    map[int64]model.Item
	bookings map[int64]model.Booking
	requests map[int64]model.ItemRequest
	comments map[int64]model.Comment

	locks *itemLocks
}

func NewMemory() *memory {
	return &memory{
		users:    make(map[int64]model.User),
		items:    make(map[int64]model.Item),
		bookings: make(map[int64]model.Booking),
		requests: make(map[int64]model.ItemRequest),
		comments: make(map[int64]model.Comment),
		locks:    &itemLocks{locks: make(map[int64]*itemLock)},
	}
}

var _ Repository = (*memory)(nil)
var _ Repository = (*repository)(nil)

func (m *memory) WithinItemLock(_ context.Context, itemID int64, fn func(repo Repository) error) error {
	unlock := m.locks.lock(itemID)
	defer unlock()
	return fn(m)
}

func (m *memory) nextID() int64 {
	m.seq++
	return m.seq
}

func (m *memory) CreateUser(_ context.Context, user model.User) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkEmail(user.Email, 0); err != nil {
		return model.User{}, err
	}
	user.ID = m.nextID()
	m.users[user.ID] = user
	return user, nil
}

func (m *memory) checkEmail(email string, selfID int64) error {
	for _, u := range m.users {
		if u.ID != selfID && strings.EqualFold(u.Email, email) {
			return errors.Wrapf(errs.ErrConflict, "email %s already registered", email)
		}
	}
	return nil
}

func (m *memory) GetUser(_ context.Context, id int64) (model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return model.User{}, errs.ErrNotFound
	}
	return u, nil
}

func (m *memory) ListUsers(_ context.Context) ([]model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	users := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m *memory) UpdateUser(_ context.Context, user model.User) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return model.User{}, errs.ErrNotFound
	}
	if err := m.checkEmail(user.Email, user.ID); err != nil {
		return model.User{}, err
	}
	m.users[user.ID] = user
	return user, nil
}

func (m *memory) DeleteUser(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return errs.ErrNotFound
	}
	for _, it := range m.items {
		if it.OwnerID == id {
			return errors.Wrapf(errs.ErrConflict, "user %d still owns items", id)
		}
	}
	delete(m.users, id)
	return nil
}

func (m *memory) CreateItem(_ context.Context, item model.Item) (model.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item.ID = m.nextID()
	m.items[item.ID] = item
	return item, nil
}

func (m *memory) GetItem(_ context.Context, id int64) (model.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	it, ok := m.items[id]
	if !ok {
		return model.Item{}, errs.ErrNotFound
	}
	return it, nil
}

func (m *memory) UpdateItem(_ context.Context, item model.Item) (model.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.items[item.ID]
	if !ok {
		return model.Item{}, errs.ErrNotFound
	}
	old.Name, old.Description, old.Available = item.Name, item.Description, item.Available
	m.items[item.ID] = old
	return old, nil
}

func (m *memory) filterItems(keep func(model.Item) bool) []model.Item {
	m.mu.RLock()
	defer m.mu.RUnlock()
	items := make([]model.Item, 0)
	for _, it := range m.items {
		if keep(it) {
			items = append(items, it)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

func (m *memory) ListItemsByOwner(_ context.Context, ownerID int64) ([]model.Item, error) {
	return m.filterItems(func(it model.Item) bool { return it.OwnerID == ownerID }), nil
}

func (m *memory) SearchItems(_ context.Context, text string) ([]model.Item, error) {
	text = strings.ToLower(text)
	return m.filterItems(func(it model.Item) bool {
		return it.Available &&
			(strings.Contains(strings.ToLower(it.Name), text) || strings.Contains(strings.ToLower(it.Description), text))
	}), nil
}

func (m *memory) ListItemsByRequest(_ context.Context, requestID int64) ([]model.Item, error) {
	return m.filterItems(func(it model.Item) bool {
		return it.RequestID != nil && *it.RequestID == requestID
	}), nil
}

func (m *memory) CreateComment(_ context.Context, comment model.Comment) (model.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	comment.ID = m.nextID()
	m.comments[comment.ID] = comment
	return comment, nil
}

func (m *memory) ListCommentsByItem(_ context.Context, itemID int64) ([]model.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	comments := make([]model.Comment, 0)
	for _, c := range m.comments {
		if c.ItemID == itemID {
			if u, ok := m.users[c.AuthorID]; ok {
				c.AuthorName = u.Name
			}
			comments = append(comments, c)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
	return comments, nil
}

func (m *memory) CreateBooking(_ context.Context, booking model.Booking) (model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	booking.ID = m.nextID()
	m.bookings[booking.ID] = booking
	return booking, nil
}

func (m *memory) GetBooking(_ context.Context, id int64) (model.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.bookings[id]
	if !ok {
		return model.Booking{}, errs.ErrNotFound
	}
	return b, nil
}

func (m *memory) UpdateBookingStatus(_ context.Context, id int64, status model.Status) (model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return model.Booking{}, errs.ErrNotFound
	}
	b.Status = status
	m.bookings[id] = b
	return b, nil
}

func (m *memory) ListBookingsByItem(_ context.Context, itemID int64) ([]model.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	bookings := make([]model.Booking, 0)
	for _, b := range m.bookings {
		if b.ItemID == itemID {
			bookings = append(bookings, b)
		}
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].Start.Before(bookings[j].Start) })
	return bookings, nil
}

func (m *memory) ListBookingsByUser(_ context.Context, userID int64, role model.Role) ([]model.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	bookings := make([]model.Booking, 0)
	for _, b := range m.bookings {
		switch role {
		case model.RoleOwner:
			if m.items[b.ItemID].OwnerID != userID {
				continue
			}
		default:
			if b.BookerID != userID {
				continue
			}
		}
		bookings = append(bookings, b)
	}
	sort.Slice(bookings, func(i, j int) bool {
		if bookings[i].Start.Equal(bookings[j].Start) {
			return bookings[i].ID > bookings[j].ID
		}
		return bookings[i].Start.After(bookings[j].Start)
	})
	return bookings, nil
}

func (m *memory) CreateRequest(_ context.Context, req model.ItemRequest) (model.ItemRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	req.ID = m.nextID()
	m.requests[req.ID] = req
	return req, nil
}

func (m *memory) GetRequest(_ context.Context, id int64) (model.ItemRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	req, ok := m.requests[id]
	if !ok {
		return model.ItemRequest{}, errs.ErrNotFound
	}
	return req, nil
}

func (m *memory) sortedRequests(keep func(model.ItemRequest) bool) []model.ItemRequest {
	m.mu.RLock()
	defer m.mu.RUnlock()
	reqs := make([]model.ItemRequest, 0)
	for _, r := range m.requests {
		if keep(r) {
			reqs = append(reqs, r)
		}
	}
	sort.Slice(reqs, func(i, j int) bool {
		if reqs[i].Created.Equal(reqs[j].Created) {
			return reqs[i].ID > reqs[j].ID
		}
		return reqs[i].Created.After(reqs[j].Created)
	})
	return reqs
}

func (m *memory) ListRequestsExcluding(_ context.Context, userID int64, from, size int) ([]model.ItemRequest, error) {
	reqs := m.sortedRequests(func(r model.ItemRequest) bool { return r.RequesterID != userID })
	if from >= len(reqs) {
		return []model.ItemRequest{}, nil
	}
	end := len(reqs)
	if size < end-from {
		end = from + size
	}
	return reqs[from:end], nil
}

func (m *memory) ListRequestsBy(_ context.Context, userID int64) ([]model.ItemRequest, error) {
	return m.sortedRequests(func(r model.ItemRequest) bool { return r.RequesterID == userID }), nil
}

type itemLocks struct {
	mu    sync.Mutex
	locks map[int64]*itemLock
}

type itemLock struct {
	sync.Mutex
	refs int
}

func (l *itemLocks) lock(itemID int64) func() {
	l.mu.Lock()
	lk, ok := l.locks[itemID]
	if !ok {
		lk = &itemLock{}
		l.locks[itemID] = lk
	}
	lk.refs++
	l.mu.Unlock()

	lk.Lock()
	return func() {
		lk.Unlock()
		l.mu.Lock()
		lk.refs--
		if lk.refs == 0 {
			delete(l.locks, itemID)
		}
		l.mu.Unlock()
	}
}
