package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"booksales/internal/config"
	"booksales/internal/database"
	"booksales/internal/model"
	"booksales/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, a connection pool and the schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	dbConfig := config.DatabaseConfig{
		MaxConnections:  10,
		MinConnections:  2,
		MaxConnLifetime: 300,
	}

	logger := zerolog.Nop()
	pool, err := database.NewPoolFromURL(ctx, connStr, dbConfig, logger)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := database.Migrate(ctx, pool, logger); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// SeedBooks inserts the test catalogue.
func SeedBooks(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	books := []struct {
		id       string
		title    string
		author   string
		category string
		price    string
		stock    int
		best     bool
	}{
		{"B001", "Dune", "Frank Herbert", "Science Fiction", "9.99", 10, true},
		{"B002", "The Hobbit", "J.R.R. Tolkien", "Fantasy", "12.50", 2, true},
		{"B003", "Neuromancer", "William Gibson", "Science Fiction", "8.00", 0, false},
		{"B004", "Emma", "Jane Austen", "Romance", "6.75", 5, false},
		{"B005", "Foundation", "Isaac Asimov", "Science Fiction", "10.00", 3, false},
	}

	catalogue := make([]model.Book, 0, len(books))
	for _, b := range books {
		catalogue = append(catalogue, model.Book{
			ID:            b.id,
			Title:         b.title,
			Author:        b.author,
			Category:      b.category,
			Price:         decimal.RequireFromString(b.price),
			Stock:         b.stock,
			Bestseller:    b.best,
			PublishedDate: "1970-01-01",
			Language:      "English",
		})
	}

	repo := repository.NewBookRepository(pool, zerolog.Nop())
	if err := repo.Upsert(context.Background(), catalogue); err != nil {
		t.Fatalf("failed to seed books: %v", err)
	}
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"order_items", "orders", "wishlist_items", "wishlists", "cart_lines", "users", "books"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}

// Stock returns the current stock of a book.
func Stock(t *testing.T, pool *pgxpool.Pool, id string) int {
	t.Helper()

	var stock int
	if err := pool.QueryRow(context.Background(), "SELECT stock FROM books WHERE book_id = $1", id).Scan(&stock); err != nil {
		t.Fatalf("failed to read stock for %s: %v", id, err)
	}
	return stock
}
