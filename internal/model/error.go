package model

import (
	"errors"
	"fmt"
)

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Available *int   `json:"available,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidRequest    = "INVALID_REQUEST"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeOutOfStock        = "OUT_OF_STOCK"
	ErrCodeInsufficientStock = "INSUFFICIENT_STOCK"
	ErrCodeAlreadyExists     = "ALREADY_EXISTS"
	ErrCodeUnauthorised      = "UNAUTHORIZED"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeRateLimited       = "RATE_LIMITED"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
	// Available is the stock on hand for OUT_OF_STOCK and INSUFFICIENT_STOCK errors.
	Available *int
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a domain error with the same code and message.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code && t.Message == e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// InvalidRequest returns an INVALID_REQUEST error with a formatted message.
func InvalidRequest(format string, args ...any) *DomainError {
	return NewDomainError(ErrCodeInvalidRequest, fmt.Sprintf(format, args...))
}

// NotFound returns a NOT_FOUND error with a formatted message.
func NotFound(format string, args ...any) *DomainError {
	return NewDomainError(ErrCodeNotFound, fmt.Sprintf(format, args...))
}

// AlreadyExists returns an ALREADY_EXISTS error with a formatted message.
func AlreadyExists(format string, args ...any) *DomainError {
	return NewDomainError(ErrCodeAlreadyExists, fmt.Sprintf(format, args...))
}

// OutOfStock reports that a book cannot be sold at all.
func OutOfStock(title string, available int) *DomainError {
	return &DomainError{
		Code:      ErrCodeOutOfStock,
		Message:   fmt.Sprintf("Book out of stock: %s", title),
		Available: &available,
	}
}

// InsufficientStock reports that the requested quantity exceeds what is on hand.
func InsufficientStock(title string, available int) *DomainError {
	return &DomainError{
		Code:      ErrCodeInsufficientStock,
		Message:   fmt.Sprintf("Insufficient stock for %s. Available: %d", title, available),
		Available: &available,
	}
}

// NoMatches reports an empty catalogue search on field.
func NoMatches(field SearchField) *DomainError {
	if field == SearchByCategory {
		return NotFound("No books found in the given genre")
	}
	return NotFound("No books found with the given %s", field)
}

// AsDomainError unwraps err into a DomainError if it is one.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// HasCode reports whether err is a domain error carrying code.
func HasCode(err error, code string) bool {
	de, ok := AsDomainError(err)
	return ok && de.Code == code
}

// Common domain errors
var (
	ErrBookNotFound       = NewDomainError(ErrCodeNotFound, "Book not found")
	ErrUserNotFound       = NewDomainError(ErrCodeNotFound, "User not found")
	ErrOrderNotFound      = NewDomainError(ErrCodeNotFound, "Order not found")
	ErrWishlistNotFound   = NewDomainError(ErrCodeNotFound, "Wishlist not found")
	ErrCartItemNotFound   = NewDomainError(ErrCodeNotFound, "Item not found in cart")
	ErrNoOrders           = NewDomainError(ErrCodeNotFound, "No orders found for the given email")
	ErrInvalidQuantity    = NewDomainError(ErrCodeInvalidRequest, "Quantity must be greater than zero")
	ErrUserExists         = NewDomainError(ErrCodeAlreadyExists, "User already exists")
	ErrAlreadyWishlisted  = NewDomainError(ErrCodeAlreadyExists, "Item already in wishlist")
	ErrInvalidCredentials = NewDomainError(ErrCodeInvalidRequest, "Invalid email or password")
)
