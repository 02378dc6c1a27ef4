package main

import (
	"compress/gzip"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"booksales/internal/model"

	"github.com/shopspring/decimal"
)

// Writes a sample gzipped catalogue that CATALOG_SEED_FILE can point at.
func main() {
	out := flag.String("out", "data/catalog/books.json.gz", "output path")
	flag.Parse()

	if err := os.MkdirAll(filepath.Dir(*out), 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	books := []model.Book{
		sample("BK-0001", "Dune", "Frank Herbert", "Science Fiction", "9.99", 12, true),
		sample("BK-0002", "The Left Hand of Darkness", "Ursula K. Le Guin", "Science Fiction", "11.25", 4, false),
		sample("BK-0003", "The Hobbit", "J.R.R. Tolkien", "Fantasy", "12.50", 20, true),
		sample("BK-0004", "Pride and Prejudice", "Jane Austen", "Romance", "6.75", 0, false),
		sample("BK-0005", "The Name of the Rose", "Umberto Eco", "Mystery", "13.40", 3, false),
		sample("BK-0006", "Dracula", "Bram Stoker", "Horror", "7.25", 8, false),
		sample("BK-0007", "Sapiens", "Yuval Noah Harari", "History", "15.00", 6, true),
		sample("BK-0008", "The Pragmatic Programmer", "Andrew Hunt", "Technology", "39.95", 2, false),
	}

	if err := writeCatalogue(*out, books); err != nil {
		log.Fatalf("Failed to create %s: %v", *out, err)
	}

	fmt.Printf("Created %s with %d books\n", *out, len(books))
}

func sample(id, title, author, category, price string, stock int, bestseller bool) model.Book {
	return model.Book{
		ID:            id,
		Title:         title,
		Author:        author,
		Category:      category,
		Price:         decimal.RequireFromString(price),
		Stock:         stock,
		Bestseller:    bestseller,
		Language:      "English",
		PublishedDate: "2000-01-01",
		Img:           "https://covers.example.com/" + id + ".jpg",
	}
}

func writeCatalogue(path string, books []model.Book) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	enc := json.NewEncoder(gzipWriter)
	enc.SetIndent("", "  ")
	if err := enc.Encode(books); err != nil {
		gzipWriter.Close()
		return fmt.Errorf("failed to write catalogue: %w", err)
	}

	return gzipWriter.Close()
}
