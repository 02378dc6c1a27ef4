package model

import (
	"time"

	"github.com/google/uuid"
)

// WishlistItem is a book saved for later, with its title cached at insert time.
type WishlistItem struct {
	BookID string `json:"bookId" db:"book_id"`
	Title  string `json:"title" db:"title"`
}

// Wishlist is the per-email list of saved books.
type Wishlist struct {
	ID        uuid.UUID      `json:"id" db:"id"`
	Email     string         `json:"email" db:"email"`
	Mobile    string         `json:"mobile" db:"mobile"`
	Items     []WishlistItem `json:"items"`
	CreatedAt time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time      `json:"updatedAt" db:"updated_at"`
}

// Contains reports whether bookID is already on the list.
func (w *Wishlist) Contains(bookID string) bool {
	for _, it := range w.Items {
		if it.BookID == bookID {
			return true
		}
	}
	return false
}

// WishlistRequest is the body of POST /wishlist.
type WishlistRequest struct {
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
	BookID string `json:"bookId"`
	Title  string `json:"title"`
}

// WishlistRemoveResponse is returned by DELETE /wishlist/{email}/{bookId}.
type WishlistRemoveResponse struct {
	Message  string    `json:"message"`
	Wishlist *Wishlist `json:"wishlist"`
}
