package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"booksales/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// memBookRepo is an in-memory BookRepository used by the stock property tests.
type memBookRepo struct {
	MockBookRepository
	mu    sync.Mutex
	books map[string]model.Book
}

func newMemBookRepo(books ...model.Book) *memBookRepo {
	r := &memBookRepo{books: make(map[string]model.Book)}
	for _, b := range books {
		r.books[b.ID] = b
	}
	return r
}

func (r *memBookRepo) GetByID(_ context.Context, id string) (*model.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *memBookRepo) AdjustStock(_ context.Context, id string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[id]
	if !ok {
		return model.ErrBookNotFound
	}
	b.Stock += delta
	r.books[id] = b
	return nil
}

func (r *memBookRepo) stock(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.books[id].Stock
}

// memOrderRepo is an in-memory OrderRepository.
type memOrderRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]model.Order
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[uuid.UUID]model.Order)}
}

func (r *memOrderRepo) BeginTx(context.Context) (pgx.Tx, error) {
	tx := new(MockTx)
	tx.On("Commit", mock.Anything).Return(nil).Maybe()
	tx.On("Rollback", mock.Anything).Return(nil).Maybe()
	return tx, nil
}

func (r *memOrderRepo) CreateOrder(_ context.Context, _ pgx.Tx, order *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o := *order
	o.Items = nil
	r.orders[o.ID] = o
	return nil
}

func (r *memOrderRepo) CreateOrderItems(_ context.Context, _ pgx.Tx, items []model.OrderItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range items {
		o := r.orders[it.OrderID]
		o.Items = append(o.Items, it)
		r.orders[it.OrderID] = o
	}
	return nil
}

func (r *memOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r *memOrderRepo) ListAll(context.Context) ([]model.Order, error) {
	return r.list(func(model.Order) bool { return true }), nil
}

func (r *memOrderRepo) ListByEmail(_ context.Context, email string) ([]model.Order, error) {
	return r.list(func(o model.Order) bool { return o.CustomerEmail == email }), nil
}

func (r *memOrderRepo) list(keep func(model.Order) bool) []model.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Order{}
	for _, o := range r.orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *memOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status model.OrderStatus, updatedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return false, nil
	}
	o.Status = status
	o.UpdatedAt = updatedAt
	r.orders[id] = o
	return true, nil
}

func (r *memOrderRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return false, nil
	}
	delete(r.orders, id)
	return true, nil
}

// memUserRepo is an in-memory UserRepository holding carts.
type memUserRepo struct {
	MockUserRepository
	users map[string]*model.User
	carts map[uuid.UUID][]model.CartLine
	saves int
}

func newMemUserRepo(users ...*model.User) *memUserRepo {
	r := &memUserRepo{users: make(map[string]*model.User), carts: make(map[uuid.UUID][]model.CartLine)}
	for _, u := range users {
		r.users[u.Email] = u
	}
	return r
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetCart(_ context.Context, userID uuid.UUID) ([]model.CartLine, error) {
	return append([]model.CartLine{}, r.carts[userID]...), nil
}

func (r *memUserRepo) SaveCart(_ context.Context, userID uuid.UUID, lines []model.CartLine) error {
	r.saves++
	r.carts[userID] = append([]model.CartLine{}, lines...)
	return nil
}
