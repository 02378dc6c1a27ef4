// Package events publishes order lifecycle events to downstream consumers.
package events

import (
	"context"
	"time"

	"booksales/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type names an order lifecycle event.
type Type string

const (
	OrderPlaced  Type = "order.placed"
	OrderDeleted Type = "order.deleted"
)

// OrderEvent is the payload published for order lifecycle changes.
type OrderEvent struct {
	Type          Type              `json:"type"`
	OrderID       uuid.UUID         `json:"orderId"`
	CustomerEmail string            `json:"customerEmail"`
	TotalAmount   decimal.Decimal   `json:"totalAmount"`
	Items         []model.OrderItem `json:"items"`
	OccurredAt    time.Time         `json:"occurredAt"`
}

// NewOrderEvent builds an event of type t from order.
func NewOrderEvent(t Type, order *model.Order, at time.Time) OrderEvent {
	return OrderEvent{
		Type:          t,
		OrderID:       order.ID,
		CustomerEmail: order.CustomerEmail,
		TotalAmount:   order.TotalAmount,
		Items:         order.Items,
		OccurredAt:    at,
	}
}

// Publisher delivers order events.
type Publisher interface {
	Publish(ctx context.Context, event OrderEvent) error
	Close() error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, OrderEvent) error { return nil }
func (Nop) Close() error                              { return nil }
