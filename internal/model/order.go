package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus labels the fulfilment stage of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDelivered OrderStatus = "Delivered"
)

// Valid reports whether s is a known status label.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusShipped, OrderStatusDelivered:
		return true
	}
	return false
}

// Order represents a customer order with a snapshot of its line items.
type Order struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	CustomerEmail   string          `json:"customerEmail" db:"customer_email"`
	CustomerName    string          `json:"customerName" db:"customer_name"`
	ShippingAddress string          `json:"shippingAddress" db:"shipping_address"`
	City            string          `json:"city" db:"city"`
	PostalCode      string          `json:"postalCode" db:"postal_code"`
	PhoneNumber     string          `json:"phoneNumber" db:"phone_number"`
	Items           []OrderItem     `json:"items"`
	TotalAmount     decimal.Decimal `json:"totalAmount" db:"total_amount"`
	Status          OrderStatus     `json:"status" db:"status"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" db:"updated_at"`
}

// OrderItem is a line item captured at order time. It does not follow later
// changes to the book it references.
type OrderItem struct {
	ID       uuid.UUID       `json:"-" db:"id"`
	OrderID  uuid.UUID       `json:"-" db:"order_id"`
	Position int             `json:"-" db:"position"`
	BookID   string          `json:"bookId" db:"book_id"`
	Title    string          `json:"title" db:"title"`
	Quantity int             `json:"quantity" db:"quantity"`
	Price    decimal.Decimal `json:"price" db:"price"`
}

// ShippingDetails is the customer contact block of a checkout request.
type ShippingDetails struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	City        string `json:"city"`
	PostalCode  string `json:"postalCode"`
	PhoneNumber string `json:"phoneNumber"`
}

// OrderRequest represents the request payload for placing an order.
// TotalAmount is kept raw so that both numbers and numeric strings are accepted.
type OrderRequest struct {
	ShippingDetails ShippingDetails    `json:"shippingDetails"`
	CheckoutItems   []OrderItemRequest `json:"checkoutItems"`
	TotalAmount     any                `json:"totalAmount"`
	CustomerEmail   string             `json:"customerEmail"`
}

// OrderItemRequest represents a single item in a checkout request.
type OrderItemRequest struct {
	BookID   string          `json:"bookId"`
	Title    string          `json:"title"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// StatusUpdateRequest is the body of PUT /orders/{id}/status.
type StatusUpdateRequest struct {
	Status string `json:"status"`
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}
