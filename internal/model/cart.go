package model

import "sort"

// CartLine is a (book, quantity) pair in a user's cart.
type CartLine struct {
	BookID   string `json:"bookId" db:"book_id"`
	Quantity int    `json:"quantity" db:"quantity"`
}

// Cart holds a user's lines keyed by book id, so a book can appear at most once.
type Cart struct {
	lines map[string]int
	order []string
}

// NewCart builds a cart from persisted lines. Later duplicates overwrite earlier ones.
func NewCart(lines []CartLine) *Cart {
	c := &Cart{lines: make(map[string]int, len(lines))}
	for _, l := range lines {
		c.Set(l.BookID, l.Quantity)
	}
	return c
}

// Quantity returns the current quantity for bookID, or 0 when absent.
func (c *Cart) Quantity(bookID string) int {
	return c.lines[bookID]
}

// Has reports whether bookID has a line.
func (c *Cart) Has(bookID string) bool {
	_, ok := c.lines[bookID]
	return ok
}

// Set overwrites the quantity for bookID. A quantity of zero or less removes the line.
func (c *Cart) Set(bookID string, quantity int) {
	if quantity <= 0 {
		c.Remove(bookID)
		return
	}
	if _, ok := c.lines[bookID]; !ok {
		c.order = append(c.order, bookID)
	}
	c.lines[bookID] = quantity
}

// Remove drops the line for bookID. Removing an absent line is a no-op.
func (c *Cart) Remove(bookID string) {
	if _, ok := c.lines[bookID]; !ok {
		return
	}
	delete(c.lines, bookID)
	for i, id := range c.order {
		if id == bookID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Lines returns the lines in insertion order.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, CartLine{BookID: id, Quantity: c.lines[id]})
	}
	return out
}

// SortedLines returns the lines ordered by book id.
func (c *Cart) SortedLines() []CartLine {
	out := c.Lines()
	sort.Slice(out, func(i, j int) bool { return out[i].BookID < out[j].BookID })
	return out
}

// CartRequest is the body of POST and PUT /users/{email}/cart.
type CartRequest struct {
	BookID   string `json:"bookId"`
	Quantity int    `json:"quantity"`
}

// CartResponse wraps the lines returned by GET /users/{email}/cart.
type CartResponse struct {
	Cart []CartLine `json:"cart"`
}
