package model

import "github.com/shopspring/decimal"

// Book represents a title in the catalogue.
type Book struct {
	ID            string          `json:"bookId" db:"book_id"`
	Title         string          `json:"title" db:"title"`
	Author        string          `json:"author" db:"author"`
	Description   string          `json:"description" db:"description"`
	Img           string          `json:"img" db:"img"`
	Price         decimal.Decimal `json:"price" db:"price"`
	PublishedDate string          `json:"publishedDate" db:"published_date"`
	Category      string          `json:"category" db:"category"`
	Stock         int             `json:"stock" db:"stock"`
	Pages         int             `json:"pages" db:"pages"`
	Language      string          `json:"language" db:"language"`
	Bestseller    bool            `json:"bestsellers" db:"bestseller"`
}

// InStock reports whether at least one unit can be sold.
func (b *Book) InStock() bool {
	return b.Stock > 0
}

// SearchField names a column that catalogue searches may match against.
type SearchField string

const (
	SearchByTitle    SearchField = "title"
	SearchByAuthor   SearchField = "author"
	SearchByCategory SearchField = "category"
)

// Valid reports whether f is one of the supported search fields.
func (f SearchField) Valid() bool {
	switch f {
	case SearchByTitle, SearchByAuthor, SearchByCategory:
		return true
	}
	return false
}
