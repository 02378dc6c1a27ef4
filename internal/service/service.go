package service

import (
	"context"

	"booksales/internal/model"

	"github.com/google/uuid"
)

// BookService defines catalogue read operations.
type BookService interface {
	// List retrieves every book.
	List(ctx context.Context) ([]model.Book, error)

	// Bestsellers retrieves books flagged as bestsellers.
	Bestsellers(ctx context.Context) ([]model.Book, error)

	// GetByID retrieves a single book by its catalogue id.
	GetByID(ctx context.Context, id string) (*model.Book, error)

	// Search matches books whose field matches pattern case-insensitively.
	// Underscores in pattern stand for spaces.
	Search(ctx context.Context, field model.SearchField, pattern string) ([]model.Book, error)

	// Recommend returns a random selection of in-stock books. limit is the raw
	// query parameter and is parsed leniently.
	Recommend(ctx context.Context, limit string) ([]model.Book, error)
}

// CartService defines shopping cart operations.
type CartService interface {
	// Add increases the quantity of a book in the user's cart, enforcing stock.
	Add(ctx context.Context, email, bookID string, quantity int) ([]model.CartLine, error)

	// SetQuantity overwrites the quantity of an existing line. Zero or less removes it.
	SetQuantity(ctx context.Context, email, bookID string, quantity int) ([]model.CartLine, error)

	// Remove drops a line from the cart. Removing an absent line succeeds.
	Remove(ctx context.Context, email, bookID string) error

	// Get retrieves the user's cart lines.
	Get(ctx context.Context, email string) ([]model.CartLine, error)
}

// WishlistService defines wishlist operations.
type WishlistService interface {
	// Add appends a book to the wishlist for req.Email, creating the list if needed.
	Add(ctx context.Context, req *model.WishlistRequest) (*model.Wishlist, error)

	// Remove drops a book from the wishlist for email.
	Remove(ctx context.Context, email, bookID string) (*model.Wishlist, error)

	// Get retrieves the wishlist for email.
	Get(ctx context.Context, email string) (*model.Wishlist, error)
}

// OrderService defines operations for order management.
type OrderService interface {
	// PlaceOrder validates every line against stock, persists the order and decrements stock.
	PlaceOrder(ctx context.Context, req *model.OrderRequest) (*model.Order, error)

	// DeleteOrder restocks the order's lines on a best-effort basis and deletes it.
	DeleteOrder(ctx context.Context, id uuid.UUID) error

	// UpdateStatus sets the order status. An empty status keeps the current one.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Order, error)

	// GetByID retrieves an order with its items.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// List retrieves every order, newest first.
	List(ctx context.Context) ([]model.Order, error)

	// ListByEmail retrieves the orders for email, newest first.
	ListByEmail(ctx context.Context, email string) ([]model.Order, error)
}

// AuthService defines registration, login and profile operations.
type AuthService interface {
	// Register creates a user, storing only a hash of the password.
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error)

	// Login verifies credentials and issues a token.
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)

	// GetUser retrieves a profile with its cart.
	GetUser(ctx context.Context, email string) (*model.User, error)

	// UpdateUser applies a partial profile update, hashing a new password if present.
	UpdateUser(ctx context.Context, email string, upd *model.UserUpdate) (*model.User, error)

	// DeleteUser removes a user and its cart.
	DeleteUser(ctx context.Context, email string) error
}
