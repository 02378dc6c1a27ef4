package catalog

import (
	"context"
	"fmt"

	"booksales/internal/model"

	"github.com/rs/zerolog"
)

// BookUpserter stores catalogue entries, replacing rows with the same id.
type BookUpserter interface {
	Upsert(ctx context.Context, books []model.Book) error
}

// Seeder loads a catalogue file and writes it to the book store.
type Seeder struct {
	loader Loader
	store  BookUpserter
	logger zerolog.Logger
}

// NewSeeder creates a catalogue seeder.
func NewSeeder(loader Loader, store BookUpserter, logger zerolog.Logger) *Seeder {
	return &Seeder{
		loader: loader,
		store:  store,
		logger: logger.With().Str("component", "catalog-seeder").Logger(),
	}
}

// Seed loads path and upserts every book in it. Returns the number of books written.
func (s *Seeder) Seed(ctx context.Context, path string) (int, error) {
	books, err := s.loader.Load(ctx, path)
	if err != nil {
		return 0, fmt.Errorf("failed to load catalogue: %w", err)
	}

	if len(books) == 0 {
		s.logger.Warn().Str("path", path).Msg("catalogue is empty, nothing to seed")
		return 0, nil
	}

	if err := s.store.Upsert(ctx, books); err != nil {
		return 0, fmt.Errorf("failed to store catalogue: %w", err)
	}

	s.logger.Info().Str("path", path).Int("books", len(books)).Msg("catalogue seeded")
	return len(books), nil
}
