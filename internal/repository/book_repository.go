package repository

import (
	"context"
	"fmt"
	"regexp"

	"booksales/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const bookColumns = `book_id, title, author, description, img, price, published_date,
	category, stock, pages, language, bestseller`

// bookRepository implements the BookRepository interface using PostgreSQL.
type bookRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewBookRepository creates a new PostgreSQL-backed book repository.
func NewBookRepository(pool *pgxpool.Pool, logger zerolog.Logger) BookRepository {
	return &bookRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "book").Logger(),
	}
}

// GetAll retrieves every book ordered by title.
func (r *bookRepository) GetAll(ctx context.Context) ([]model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books ORDER BY title`
	return r.queryBooks(ctx, "all", query)
}

// GetByID retrieves a single book by its ID.
func (r *bookRepository) GetByID(ctx context.Context, id string) (*model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE book_id = $1`

	b, err := scanBook(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("book_id", id).Msg("book not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("book_id", id).Msg("failed to query book")
		return nil, fmt.Errorf("failed to query book: %w", err)
	}

	return b, nil
}

// GetBestsellers retrieves books flagged as bestsellers.
func (r *bookRepository) GetBestsellers(ctx context.Context) ([]model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE bestseller ORDER BY title`
	return r.queryBooks(ctx, "bestsellers", query)
}

// Search matches pattern case-insensitively against field.
func (r *bookRepository) Search(ctx context.Context, field model.SearchField, pattern string) ([]model.Book, error) {
	if !field.Valid() {
		return nil, fmt.Errorf("unsupported search field %q", field)
	}

	// field is one of a fixed set of column names, so formatting it in is safe.
	query := fmt.Sprintf(`SELECT %s FROM books WHERE %s ~* $1 ORDER BY title`, bookColumns, field)
	books, err := r.queryBooks(ctx, "search:"+string(field), query, pattern)
	if isInvalidRegex(err) {
		// Go and PostgreSQL regex dialects differ; fall back to a literal match.
		r.logger.Debug().Str("pattern", pattern).Msg("pattern rejected by database, matching literally")
		return r.queryBooks(ctx, "search:"+string(field), query, regexp.QuoteMeta(pattern))
	}
	return books, err
}

// SampleInStock returns up to limit distinct random books with stock above zero.
func (r *bookRepository) SampleInStock(ctx context.Context, limit int) ([]model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE stock > 0 ORDER BY random() LIMIT $1`
	return r.queryBooks(ctx, "sample", query, limit)
}

// AdjustStock adds delta to the book's stock in one UPDATE so concurrent
// adjustments never lose each other's writes.
func (r *bookRepository) AdjustStock(ctx context.Context, id string, delta int) error {
	query := `UPDATE books SET stock = stock + $1 WHERE book_id = $2`

	tag, err := r.pool.Exec(ctx, query, delta, id)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("book_id", id).
			Int("delta", delta).
			Msg("failed to adjust stock")
		return fmt.Errorf("failed to adjust stock for %s: %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Warn().Str("book_id", id).Msg("stock adjustment matched no book")
		return model.ErrBookNotFound
	}

	r.logger.Debug().
		Str("book_id", id).
		Int("delta", delta).
		Msg("stock adjusted")

	return nil
}

// Upsert inserts books or replaces rows with the same id.
func (r *bookRepository) Upsert(ctx context.Context, books []model.Book) error {
	if len(books) == 0 {
		return nil
	}

	query := `
		INSERT INTO books (` + bookColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (book_id) DO UPDATE SET
			title = EXCLUDED.title,
			author = EXCLUDED.author,
			description = EXCLUDED.description,
			img = EXCLUDED.img,
			price = EXCLUDED.price,
			published_date = EXCLUDED.published_date,
			category = EXCLUDED.category,
			stock = EXCLUDED.stock,
			pages = EXCLUDED.pages,
			language = EXCLUDED.language,
			bestseller = EXCLUDED.bestseller
	`

	batch := &pgx.Batch{}
	for _, b := range books {
		batch.Queue(query, b.ID, b.Title, b.Author, b.Description, b.Img, b.Price,
			b.PublishedDate, b.Category, b.Stock, b.Pages, b.Language, b.Bestseller)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := range books {
		if _, err := results.Exec(); err != nil {
			r.logger.Error().
				Err(err).
				Str("book_id", books[i].ID).
				Msg("failed to upsert book")
			return fmt.Errorf("failed to upsert book %s: %w", books[i].ID, err)
		}
	}

	r.logger.Debug().Int("count", len(books)).Msg("books upserted")

	return nil
}

func (r *bookRepository) queryBooks(ctx context.Context, op, query string, args ...any) ([]model.Book, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Str("op", op).Msg("failed to query books")
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	books := []model.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan book row")
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, *b)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating book rows")
		return nil, fmt.Errorf("error iterating books: %w", err)
	}

	return books, nil
}

func scanBook(row pgx.Row) (*model.Book, error) {
	var b model.Book
	err := row.Scan(
		&b.ID,
		&b.Title,
		&b.Author,
		&b.Description,
		&b.Img,
		&b.Price,
		&b.PublishedDate,
		&b.Category,
		&b.Stock,
		&b.Pages,
		&b.Language,
		&b.Bestseller,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
