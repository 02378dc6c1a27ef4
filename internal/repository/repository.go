package repository

import (
	"context"
	"time"

	"booksales/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// BookRepository defines the catalogue data access operations.
type BookRepository interface {
	// GetAll retrieves every book ordered by title.
	GetAll(ctx context.Context) ([]model.Book, error)

	// GetByID retrieves a single book. Returns nil, nil when absent.
	GetByID(ctx context.Context, id string) (*model.Book, error)

	// GetBestsellers retrieves books flagged as bestsellers.
	GetBestsellers(ctx context.Context) ([]model.Book, error)

	// Search matches pattern case-insensitively as a regular expression against field.
	Search(ctx context.Context, field model.SearchField, pattern string) ([]model.Book, error)

	// SampleInStock returns up to limit distinct random books with stock above zero.
	SampleInStock(ctx context.Context, limit int) ([]model.Book, error)

	// AdjustStock adds delta to the stock counter in a single statement.
	// Returns model.ErrBookNotFound when no book has the given id.
	AdjustStock(ctx context.Context, id string, delta int) error

	// Upsert inserts books or replaces the existing rows with the same id.
	Upsert(ctx context.Context, books []model.Book) error
}

// UserRepository defines user profile and cart data access operations.
type UserRepository interface {
	// Create inserts a user. Returns model.ErrUserExists on a duplicate email or mobile.
	Create(ctx context.Context, user *model.User) error

	// GetByEmail retrieves a user without cart lines. Returns nil, nil when absent.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// Update applies a partial update and returns the new profile, or nil when absent.
	// A non-nil Password in upd must already be hashed.
	Update(ctx context.Context, email string, upd model.UserUpdate) (*model.User, error)

	// DeleteByEmail removes a user and its cart. Reports whether a row was deleted.
	DeleteByEmail(ctx context.Context, email string) (bool, error)

	// GetCart retrieves the user's cart lines in insertion order.
	GetCart(ctx context.Context, userID uuid.UUID) ([]model.CartLine, error)

	// SaveCart replaces the user's cart lines with lines.
	SaveCart(ctx context.Context, userID uuid.UUID, lines []model.CartLine) error
}

// WishlistRepository defines wishlist data access operations.
type WishlistRepository interface {
	// GetByEmail retrieves the wishlist for email. Returns nil, nil when absent.
	GetByEmail(ctx context.Context, email string) (*model.Wishlist, error)

	// Save inserts or updates the wishlist and replaces its items.
	Save(ctx context.Context, wishlist *model.Wishlist) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order with its items. Returns nil, nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// ListAll retrieves every order, newest first.
	ListAll(ctx context.Context) ([]model.Order, error)

	// ListByEmail retrieves the orders placed by email, newest first.
	ListByEmail(ctx context.Context, email string) ([]model.Order, error)

	// UpdateStatus overwrites the status and update timestamp. Reports whether a row matched.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus, updatedAt time.Time) (bool, error)

	// Delete removes the order and its items. Reports whether a row was deleted.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
