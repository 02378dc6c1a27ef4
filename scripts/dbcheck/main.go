package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"booksales/internal/config"
	"booksales/internal/database"
)

// Connects with the DB_* settings used by the API and reports the schema state.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	var dbName string
	if err := pool.QueryRow(ctx, "SELECT current_database()").Scan(&dbName); err != nil {
		fmt.Fprintf(os.Stderr, "QueryRow failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Successfully connected to database: %s\n", dbName)

	var books int
	if err := pool.QueryRow(ctx, "SELECT count(*) FROM books").Scan(&books); err != nil {
		fmt.Println("Schema not applied yet (books table missing)")
		return
	}
	fmt.Printf("Catalogue holds %d books\n", books)
}
