package handler

import (
	"net/http"

	"booksales/internal/model"
	"booksales/internal/service"

	"github.com/rs/zerolog"
)

// BookHandler handles catalogue HTTP requests.
type BookHandler struct {
	service service.BookService
	logger  zerolog.Logger
}

// NewBookHandler creates a new book handler.
func NewBookHandler(service service.BookService, logger zerolog.Logger) *BookHandler {
	return &BookHandler{
		service: service,
		logger:  logger.With().Str("handler", "book").Logger(),
	}
}

// List handles GET /books.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, books)
}

// Bestsellers handles GET /books/bestsellers.
func (h *BookHandler) Bestsellers(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.Bestsellers(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, books)
}

// Recommend handles GET /books/recommendations?limit=N.
func (h *BookHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.Recommend(r.Context(), r.URL.Query().Get("limit"))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, books)
}

// GetByID handles GET /books/id/{id}.
func (h *BookHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	book, err := h.service.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

// SearchBy returns a handler for GET /books/{field}/{term}. The term is read
// from the path wildcard named param.
func (h *BookHandler) SearchBy(field model.SearchField, param string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		books, err := h.service.Search(r.Context(), field, r.PathValue(param))
		if err != nil {
			writeServiceError(w, err, h.logger)
			return
		}
		writeJSON(w, http.StatusOK, books)
	}
}
