package repository

import (
	"context"
	"fmt"

	"booksales/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// wishlistRepository implements the WishlistRepository interface using PostgreSQL.
type wishlistRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewWishlistRepository creates a new PostgreSQL-backed wishlist repository.
func NewWishlistRepository(pool *pgxpool.Pool, logger zerolog.Logger) WishlistRepository {
	return &wishlistRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "wishlist").Logger(),
	}
}

// GetByEmail retrieves the wishlist for email along with its items.
func (r *wishlistRepository) GetByEmail(ctx context.Context, email string) (*model.Wishlist, error) {
	query := `
		SELECT id, email, mobile, created_at, updated_at
		FROM wishlists
		WHERE email = $1
	`

	var w model.Wishlist
	err := r.pool.QueryRow(ctx, query, email).Scan(&w.ID, &w.Email, &w.Mobile, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("email", email).Msg("wishlist not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("email", email).Msg("failed to query wishlist")
		return nil, fmt.Errorf("failed to query wishlist: %w", err)
	}

	itemsQuery := `
		SELECT book_id, title
		FROM wishlist_items
		WHERE wishlist_id = $1
		ORDER BY position
	`

	rows, err := r.pool.Query(ctx, itemsQuery, w.ID)
	if err != nil {
		r.logger.Error().Err(err).Str("wishlist_id", w.ID.String()).Msg("failed to query wishlist items")
		return nil, fmt.Errorf("failed to query wishlist items: %w", err)
	}
	defer rows.Close()

	w.Items = []model.WishlistItem{}
	for rows.Next() {
		var it model.WishlistItem
		if err := rows.Scan(&it.BookID, &it.Title); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan wishlist item row")
			return nil, fmt.Errorf("failed to scan wishlist item: %w", err)
		}
		w.Items = append(w.Items, it)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating wishlist item rows")
		return nil, fmt.Errorf("error iterating wishlist items: %w", err)
	}

	return &w, nil
}

// Save upserts the wishlist row and replaces its items.
func (r *wishlistRepository) Save(ctx context.Context, w *model.Wishlist) error {
	return withTx(ctx, r.pool, r.logger, func(tx pgx.Tx) error {
		upsert := `
			INSERT INTO wishlists (id, email, mobile, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO UPDATE SET
				mobile = EXCLUDED.mobile,
				updated_at = EXCLUDED.updated_at
		`
		if _, err := tx.Exec(ctx, upsert, w.ID, w.Email, w.Mobile, w.CreatedAt, w.UpdatedAt); err != nil {
			if isUniqueViolation(err) {
				return model.AlreadyExists("Wishlist already exists for %s", w.Email)
			}
			r.logger.Error().Err(err).Str("email", w.Email).Msg("failed to save wishlist")
			return fmt.Errorf("failed to save wishlist: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM wishlist_items WHERE wishlist_id = $1`, w.ID); err != nil {
			r.logger.Error().Err(err).Str("wishlist_id", w.ID.String()).Msg("failed to clear wishlist items")
			return fmt.Errorf("failed to clear wishlist items: %w", err)
		}

		if len(w.Items) == 0 {
			return nil
		}

		batch := &pgx.Batch{}
		for i, it := range w.Items {
			batch.Queue(
				`INSERT INTO wishlist_items (wishlist_id, book_id, title, position) VALUES ($1, $2, $3, $4)`,
				w.ID, it.BookID, it.Title, i,
			)
		}

		results := tx.SendBatch(ctx, batch)
		for i := range w.Items {
			if _, err := results.Exec(); err != nil {
				results.Close()
				r.logger.Error().
					Err(err).
					Str("wishlist_id", w.ID.String()).
					Str("book_id", w.Items[i].BookID).
					Msg("failed to save wishlist item")
				return fmt.Errorf("failed to save wishlist item: %w", err)
			}
		}
		return results.Close()
	})
}
