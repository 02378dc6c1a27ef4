package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Schema is the full DDL for the store. Every statement is idempotent.
const Schema = `
	CREATE TABLE IF NOT EXISTS books (
		book_id        TEXT PRIMARY KEY,
		title          TEXT NOT NULL,
		author         TEXT NOT NULL,
		description    TEXT NOT NULL DEFAULT '',
		img            TEXT NOT NULL DEFAULT '',
		price          NUMERIC(10,2) NOT NULL CHECK (price >= 0),
		published_date TEXT NOT NULL DEFAULT '',
		category       TEXT NOT NULL DEFAULT '',
		stock          INTEGER NOT NULL DEFAULT 0,
		pages          INTEGER NOT NULL DEFAULT 0,
		language       TEXT NOT NULL DEFAULT '',
		bestseller     BOOLEAN NOT NULL DEFAULT FALSE
	);

	CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		first_name    TEXT NOT NULL,
		last_name     TEXT NOT NULL,
		mobile        TEXT NOT NULL UNIQUE,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL DEFAULT 'Customer',
		addresses     JSONB NOT NULL DEFAULT '[]'::jsonb
	);

	CREATE TABLE IF NOT EXISTS cart_lines (
		user_id    UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		book_id    TEXT NOT NULL,
		quantity   INTEGER NOT NULL CHECK (quantity > 0),
		position   INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (user_id, book_id)
	);

	CREATE TABLE IF NOT EXISTS wishlists (
		id         UUID PRIMARY KEY,
		email      TEXT NOT NULL UNIQUE,
		mobile     TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS wishlist_items (
		wishlist_id UUID NOT NULL REFERENCES wishlists(id) ON DELETE CASCADE,
		book_id     TEXT NOT NULL,
		title       TEXT NOT NULL DEFAULT '',
		position    INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (wishlist_id, book_id)
	);

	CREATE TABLE IF NOT EXISTS orders (
		id               UUID PRIMARY KEY,
		customer_email   TEXT NOT NULL,
		customer_name    TEXT NOT NULL DEFAULT '',
		shipping_address TEXT NOT NULL DEFAULT '',
		city             TEXT NOT NULL DEFAULT '',
		postal_code      TEXT NOT NULL DEFAULT '',
		phone_number     TEXT NOT NULL DEFAULT '',
		total_amount     NUMERIC(12,2) NOT NULL,
		status           TEXT NOT NULL DEFAULT 'Pending',
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS order_items (
		id       UUID PRIMARY KEY,
		order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		book_id  TEXT NOT NULL,
		title    TEXT NOT NULL DEFAULT '',
		quantity INTEGER NOT NULL,
		price    NUMERIC(10,2) NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_orders_customer_email ON orders(customer_email, created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id, position);
`

// Migrate applies Schema to the pool.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		logger.Error().Err(err).Msg("failed to apply schema")
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	logger.Info().Msg("database schema applied")
	return nil
}
