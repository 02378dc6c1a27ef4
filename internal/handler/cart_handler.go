package handler

import (
	"net/http"

	"booksales/internal/model"
	"booksales/internal/service"

	"github.com/rs/zerolog"
)

// CartHandler handles shopping cart HTTP requests.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// Add handles POST /users/{email}/cart.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req model.CartRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadBody(w, h.logger)
		return
	}

	lines, err := h.service.Add(r.Context(), r.PathValue("email"), req.BookID, req.Quantity)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, lines)
}

// Update handles PUT /users/{email}/cart.
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.CartRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadBody(w, h.logger)
		return
	}

	lines, err := h.service.SetQuantity(r.Context(), r.PathValue("email"), req.BookID, req.Quantity)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, lines)
}

// Remove handles DELETE /users/{email}/cart/{bookId}.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Remove(r.Context(), r.PathValue("email"), r.PathValue("bookId")); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "Item removed from cart"})
}

// Get handles GET /users/{email}/cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	lines, err := h.service.Get(r.Context(), r.PathValue("email"))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, model.CartResponse{Cart: lines})
}
