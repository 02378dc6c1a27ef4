// Package catalog loads book catalogue seed files from disk or S3.
package catalog

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"booksales/internal/model"
)

// Loader reads a catalogue seed file. Files are JSON arrays of books,
// optionally gzip compressed.
type Loader interface {
	Load(ctx context.Context, path string) ([]model.Book, error)
}

var gzipMagic = []byte{0x1f, 0x8b}

// Decode reads a JSON array of books from r, transparently gunzipping
// when the stream starts with the gzip magic bytes.
func Decode(r io.Reader) ([]model.Book, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(len(gzipMagic))
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read catalogue header: %w", err)
	}

	var src io.Reader = br
	if bytes.Equal(head, gzipMagic) {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gz.Close()
		src = gz
	}

	var books []model.Book
	if err := json.NewDecoder(src).Decode(&books); err != nil {
		return nil, fmt.Errorf("failed to decode catalogue: %w", err)
	}

	if err := validate(books); err != nil {
		return nil, err
	}
	return books, nil
}

func validate(books []model.Book) error {
	seen := make(map[string]struct{}, len(books))
	for i, b := range books {
		if b.ID == "" {
			return fmt.Errorf("book %d: bookId is required", i)
		}
		if b.Stock < 0 {
			return fmt.Errorf("book %s: stock must not be negative", b.ID)
		}
		if b.Price.IsNegative() {
			return fmt.Errorf("book %s: price must not be negative", b.ID)
		}
		if _, dup := seen[b.ID]; dup {
			return fmt.Errorf("book %s: duplicate bookId", b.ID)
		}
		seen[b.ID] = struct{}{}
	}
	return nil
}
