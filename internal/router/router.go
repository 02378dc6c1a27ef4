package router

import (
	"net/http"

	"booksales/internal/handler"
	"booksales/internal/middleware"
	"booksales/internal/model"

	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers mounted by New.
type Handlers struct {
	Books    *handler.BookHandler
	Cart     *handler.CartHandler
	Wishlist *handler.WishlistHandler
	Orders   *handler.OrderHandler
	Users    *handler.UserHandler
}

// New creates a new HTTP router with all routes and middleware configured.
// A nil authLimiter leaves /login and /register unthrottled.
func New(h Handlers, tokens middleware.TokenValidator, authLimiter *middleware.RateLimiter, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(tokens, logger)
	throttle := func(next http.HandlerFunc) http.Handler {
		if authLimiter == nil {
			return next
		}
		return authLimiter.Middleware(next)
	}

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Catalogue
	mux.HandleFunc("GET /books", h.Books.List)
	mux.HandleFunc("GET /books/{$}", h.Books.List)
	mux.HandleFunc("GET /books/bestsellers", h.Books.Bestsellers)
	mux.HandleFunc("GET /books/recommendations", h.Books.Recommend)
	mux.HandleFunc("GET /books/id/{id}", h.Books.GetByID)
	mux.HandleFunc("GET /books/title/{title}", h.Books.SearchBy(model.SearchByTitle, "title"))
	mux.HandleFunc("GET /books/author/{author}", h.Books.SearchBy(model.SearchByAuthor, "author"))
	mux.HandleFunc("GET /books/genre/{genre}", h.Books.SearchBy(model.SearchByCategory, "genre"))

	// Orders
	mux.HandleFunc("POST /orders", h.Orders.Create)
	mux.HandleFunc("POST /orders/{$}", h.Orders.Create)
	mux.HandleFunc("GET /orders", h.Orders.List)
	mux.HandleFunc("GET /orders/{$}", h.Orders.List)
	mux.HandleFunc("GET /orders/id/{id}", h.Orders.GetByID)
	mux.HandleFunc("GET /orders/email/{email}", h.Orders.ListByEmail)
	mux.HandleFunc("PUT /orders/{id}/status", h.Orders.UpdateStatus)
	mux.HandleFunc("DELETE /orders/{id}", h.Orders.Delete)

	// Accounts
	mux.Handle("POST /register", throttle(h.Users.Register))
	mux.Handle("POST /login", throttle(h.Users.Login))
	mux.Handle("GET /users/{email}", requireAuth(http.HandlerFunc(h.Users.Get)))
	mux.Handle("PUT /users/{email}", requireAuth(http.HandlerFunc(h.Users.Update)))
	mux.Handle("DELETE /users/{email}", requireAuth(http.HandlerFunc(h.Users.Delete)))

	// Cart
	mux.HandleFunc("POST /users/{email}/cart", h.Cart.Add)
	mux.HandleFunc("PUT /users/{email}/cart", h.Cart.Update)
	mux.HandleFunc("GET /users/{email}/cart", h.Cart.Get)
	mux.HandleFunc("DELETE /users/{email}/cart/{bookId}", h.Cart.Remove)

	// Wishlist
	mux.HandleFunc("POST /wishlist", h.Wishlist.Add)
	mux.HandleFunc("GET /wishlist/{email}", h.Wishlist.Get)
	mux.HandleFunc("DELETE /wishlist/{email}/{bookId}", h.Wishlist.Remove)

	// Apply middleware in order: Recovery -> Logging -> CORS
	var handler http.Handler = mux
	handler = middleware.CORS(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
