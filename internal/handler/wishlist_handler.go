package handler

import (
	"net/http"

	"booksales/internal/model"
	"booksales/internal/service"

	"github.com/rs/zerolog"
)

// WishlistHandler handles wishlist HTTP requests.
type WishlistHandler struct {
	service service.WishlistService
	logger  zerolog.Logger
}

// NewWishlistHandler creates a new wishlist handler.
func NewWishlistHandler(service service.WishlistService, logger zerolog.Logger) *WishlistHandler {
	return &WishlistHandler{
		service: service,
		logger:  logger.With().Str("handler", "wishlist").Logger(),
	}
}

// Add handles POST /wishlist.
func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req model.WishlistRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadBody(w, h.logger)
		return
	}

	wishlist, err := h.service.Add(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, wishlist)
}

// Remove handles DELETE /wishlist/{email}/{bookId}.
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	wishlist, err := h.service.Remove(r.Context(), r.PathValue("email"), r.PathValue("bookId"))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, model.WishlistRemoveResponse{
		Message:  "Item removed from wishlist",
		Wishlist: wishlist,
	})
}

// Get handles GET /wishlist/{email}.
func (h *WishlistHandler) Get(w http.ResponseWriter, r *http.Request) {
	wishlist, err := h.service.Get(r.Context(), r.PathValue("email"))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, wishlist)
}
