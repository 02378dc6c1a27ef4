package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"booksales/internal/model"
	"booksales/internal/repository"

	"github.com/rs/zerolog"
)

const (
	DefaultRecommendLimit = 8
	MaxRecommendLimit     = 20
)

// bookService implements BookService.
type bookService struct {
	bookRepo repository.BookRepository
	logger   zerolog.Logger
}

// NewBookService creates a new book service.
func NewBookService(bookRepo repository.BookRepository, logger zerolog.Logger) BookService {
	return &bookService{
		bookRepo: bookRepo,
		logger:   logger.With().Str("service", "book").Logger(),
	}
}

func (s *bookService) List(ctx context.Context) ([]model.Book, error) {
	books, err := s.bookRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list books")
		return nil, fmt.Errorf("failed to get books: %w", err)
	}
	return books, nil
}

func (s *bookService) Bestsellers(ctx context.Context) ([]model.Book, error) {
	books, err := s.bookRepo.GetBestsellers(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list bestsellers")
		return nil, fmt.Errorf("failed to get bestsellers: %w", err)
	}
	return books, nil
}

func (s *bookService) GetByID(ctx context.Context, id string) (*model.Book, error) {
	if id == "" {
		return nil, model.ErrBookNotFound
	}

	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("book_id", id).Msg("failed to get book by ID")
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	if book == nil {
		s.logger.Debug().Str("book_id", id).Msg("book not found")
		return nil, model.ErrBookNotFound
	}

	return book, nil
}

func (s *bookService) Search(ctx context.Context, field model.SearchField, pattern string) ([]model.Book, error) {
	if !field.Valid() {
		return nil, model.InvalidRequest("unsupported search field: %s", field)
	}

	pattern = SearchPattern(pattern)
	if pattern == "" {
		return nil, model.InvalidRequest("search term is required")
	}

	books, err := s.bookRepo.Search(ctx, field, pattern)
	if err != nil {
		s.logger.Error().Err(err).
			Str("field", string(field)).
			Str("pattern", pattern).
			Msg("failed to search books")
		return nil, fmt.Errorf("failed to search books: %w", err)
	}

	if len(books) == 0 {
		return nil, model.NoMatches(field)
	}

	return books, nil
}

// SearchPattern turns a path segment into a case-insensitive match pattern.
// Underscores become spaces. Input that does not compile as a regular
// expression is escaped and matched literally.
func SearchPattern(raw string) string {
	p := strings.ReplaceAll(raw, "_", " ")
	if _, err := regexp.Compile(p); err != nil {
		return regexp.QuoteMeta(p)
	}
	return p
}

func (s *bookService) Recommend(ctx context.Context, limit string) ([]model.Book, error) {
	n := RecommendLimit(limit)

	books, err := s.bookRepo.SampleInStock(ctx, n)
	if err != nil {
		s.logger.Error().Err(err).Int("limit", n).Msg("failed to sample books")
		return nil, fmt.Errorf("failed to fetch recommendations: %w", err)
	}

	s.logger.Debug().Int("count", len(books)).Int("limit", n).Msg("recommendations sampled")
	return books, nil
}

// RecommendLimit parses the leading digits of the limit query parameter. Missing,
// digitless and zero values fall back to the default; the result is clamped to
// [1, MaxRecommendLimit].
func RecommendLimit(raw string) int {
	s := strings.TrimLeft(raw, " \t\r\n")
	sign := 1
	if s != "" && (s[0] == '+' || s[0] == '-') {
		if s[0] == '-' {
			sign = -1
		}
		s = s[1:]
	}

	// Only the leading digits count, so "5abc" is 5.
	end := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	if end >= 0 {
		s = s[:end]
	}

	n, err := strconv.Atoi(s)
	if (err != nil && !errors.Is(err, strconv.ErrRange)) || n == 0 {
		return DefaultRecommendLimit
	}
	return max(1, min(sign*n, MaxRecommendLimit))
}
