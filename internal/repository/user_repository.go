package repository

import (
	"context"
	"fmt"

	"booksales/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const userColumns = `id, first_name, last_name, mobile, email, password_hash, role, addresses`

// userRepository implements the UserRepository interface using PostgreSQL.
type userRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(pool *pgxpool.Pool, logger zerolog.Logger) UserRepository {
	return &userRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "user").Logger(),
	}
}

// Create inserts a user.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (` + userColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	addresses := user.Addresses
	if addresses == nil {
		addresses = []model.Address{}
	}

	_, err := r.pool.Exec(ctx, query,
		user.ID, user.FirstName, user.LastName, user.Mobile, user.Email,
		user.PasswordHash, user.Role, addresses)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Debug().Str("email", user.Email).Msg("duplicate user")
			return model.ErrUserExists
		}
		r.logger.Error().Err(err).Str("email", user.Email).Msg("failed to create user")
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.Debug().Str("user_id", user.ID.String()).Msg("user created successfully")

	return nil
}

// GetByEmail retrieves a user by email.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	u, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("email", email).Msg("user not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("email", email).Msg("failed to query user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return u, nil
}

// Update applies a partial update keyed by email.
func (r *userRepository) Update(ctx context.Context, email string, upd model.UserUpdate) (*model.User, error) {
	query := `
		UPDATE users SET
			first_name    = COALESCE($2, first_name),
			last_name     = COALESCE($3, last_name),
			mobile        = COALESCE($4, mobile),
			password_hash = COALESCE($5, password_hash),
			addresses     = COALESCE($6, addresses)
		WHERE email = $1
		RETURNING ` + userColumns

	var addresses any
	if upd.Addresses != nil {
		addresses = *upd.Addresses
	}

	u, err := scanUser(r.pool.QueryRow(ctx, query,
		email, upd.FirstName, upd.LastName, upd.Mobile, upd.Password, addresses))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		if isUniqueViolation(err) {
			return nil, model.AlreadyExists("Mobile number already registered")
		}
		r.logger.Error().Err(err).Str("email", email).Msg("failed to update user")
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return u, nil
}

// DeleteByEmail removes a user; cart lines cascade.
func (r *userRepository) DeleteByEmail(ctx context.Context, email string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE email = $1`, email)
	if err != nil {
		r.logger.Error().Err(err).Str("email", email).Msg("failed to delete user")
		return false, fmt.Errorf("failed to delete user: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// GetCart retrieves the user's cart lines in insertion order.
func (r *userRepository) GetCart(ctx context.Context, userID uuid.UUID) ([]model.CartLine, error) {
	query := `
		SELECT book_id, quantity
		FROM cart_lines
		WHERE user_id = $1
		ORDER BY position, book_id
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query cart")
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}
	defer rows.Close()

	lines := []model.CartLine{}
	for rows.Next() {
		var l model.CartLine
		if err := rows.Scan(&l.BookID, &l.Quantity); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan cart row")
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		lines = append(lines, l)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating cart rows")
		return nil, fmt.Errorf("error iterating cart: %w", err)
	}

	return lines, nil
}

// SaveCart replaces the user's cart lines in one transaction.
func (r *userRepository) SaveCart(ctx context.Context, userID uuid.UUID, lines []model.CartLine) error {
	return withTx(ctx, r.pool, r.logger, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM cart_lines WHERE user_id = $1`, userID); err != nil {
			r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to clear cart")
			return fmt.Errorf("failed to clear cart: %w", err)
		}

		if len(lines) == 0 {
			return nil
		}

		batch := &pgx.Batch{}
		for i, l := range lines {
			batch.Queue(
				`INSERT INTO cart_lines (user_id, book_id, quantity, position) VALUES ($1, $2, $3, $4)`,
				userID, l.BookID, l.Quantity, i,
			)
		}

		results := tx.SendBatch(ctx, batch)
		for i := range lines {
			if _, err := results.Exec(); err != nil {
				results.Close()
				r.logger.Error().
					Err(err).
					Str("user_id", userID.String()).
					Str("book_id", lines[i].BookID).
					Msg("failed to save cart line")
				return fmt.Errorf("failed to save cart line: %w", err)
			}
		}
		return results.Close()
	})
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.Mobile,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.Addresses,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
