package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"booksales/internal/events"
	"booksales/internal/model"
	"booksales/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo repository.OrderRepository
	bookRepo  repository.BookRepository
	locker    StockLocker
	publisher events.Publisher
	logger    zerolog.Logger
	now       func() time.Time
}

// NewOrderService creates a new order service. A nil locker leaves placement
// unguarded against concurrent orders and a nil publisher disables order events.
func NewOrderService(
	orderRepo repository.OrderRepository,
	bookRepo repository.BookRepository,
	locker StockLocker,
	publisher events.Publisher,
	logger zerolog.Logger,
) OrderService {
	if locker == nil {
		locker = noopLocker{}
	}
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &orderService{
		orderRepo: orderRepo,
		bookRepo:  bookRepo,
		locker:    locker,
		publisher: publisher,
		logger:    logger.With().Str("service", "order").Logger(),
		now:       time.Now,
	}
}

// PlaceOrder validates every item before any write. Stock decrements run
// after the order is committed and are not rolled back if one fails.
func (s *orderService) PlaceOrder(ctx context.Context, req *model.OrderRequest) (*model.Order, error) {
	if req == nil || req.CustomerEmail == "" {
		return nil, model.InvalidRequest("customerEmail is required")
	}
	if len(req.CheckoutItems) == 0 {
		return nil, model.InvalidRequest("checkoutItems is required")
	}

	total, err := ParseAmount(req.TotalAmount)
	if err != nil {
		return nil, model.InvalidRequest("totalAmount must be a number")
	}

	bookIDs := make([]string, len(req.CheckoutItems))
	for i, item := range req.CheckoutItems {
		bookIDs[i] = item.BookID
	}

	unlock, err := s.locker.Lock(ctx, bookIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to lock stock: %w", err)
	}
	defer unlock()

	if err := s.validateItems(ctx, req.CheckoutItems); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	order := &model.Order{
		ID:              uuid.New(),
		CustomerEmail:   req.CustomerEmail,
		CustomerName:    req.ShippingDetails.Name,
		ShippingAddress: req.ShippingDetails.Address,
		City:            req.ShippingDetails.City,
		PostalCode:      req.ShippingDetails.PostalCode,
		PhoneNumber:     req.ShippingDetails.PhoneNumber,
		TotalAmount:     total,
		Status:          model.OrderStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	order.Items = make([]model.OrderItem, len(req.CheckoutItems))
	for i, item := range req.CheckoutItems {
		order.Items[i] = model.OrderItem{
			ID:       uuid.New(),
			OrderID:  order.ID,
			Position: i,
			BookID:   item.BookID,
			Title:    item.Title,
			Quantity: item.Quantity,
			Price:    item.Price,
		}
	}

	if err := s.persist(ctx, order); err != nil {
		return nil, err
	}

	for _, item := range order.Items {
		if err := s.bookRepo.AdjustStock(ctx, item.BookID, -item.Quantity); err != nil {
			s.logger.Error().
				Err(err).
				Str("order_id", order.ID.String()).
				Str("book_id", item.BookID).
				Int("quantity", item.Quantity).
				Msg("order persisted but stock decrement failed")
			return nil, fmt.Errorf("failed to decrement stock for %s: %w", item.BookID, err)
		}
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Int("item_count", len(order.Items)).
		Msg("order created successfully")

	s.publish(ctx, events.OrderPlaced, order)

	return order, nil
}

func (s *orderService) validateItems(ctx context.Context, items []model.OrderItemRequest) error {
	for i, item := range items {
		if item.Quantity <= 0 {
			s.logger.Warn().
				Int("item_index", i).
				Str("book_id", item.BookID).
				Int("quantity", item.Quantity).
				Msg("invalid quantity")
			return model.ErrInvalidQuantity
		}

		book, err := s.bookRepo.GetByID(ctx, item.BookID)
		if err != nil {
			s.logger.Error().Err(err).Str("book_id", item.BookID).Msg("failed to get book")
			return fmt.Errorf("failed to get book: %w", err)
		}
		if book == nil {
			return model.NotFound("Book not found: %s", item.BookID)
		}
		if !book.InStock() {
			return model.OutOfStock(book.Title, book.Stock)
		}
		if item.Quantity > book.Stock {
			return model.InsufficientStock(book.Title, book.Stock)
		}
	}
	return nil
}

func (s *orderService) persist(ctx context.Context, order *model.Order) (err error) {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to create order: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, order.Items); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Int("item_count", len(order.Items)).
			Msg("failed to create order items")
		return fmt.Errorf("failed to create order items: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

// DeleteOrder restocks each line independently. A failed restock is logged
// and does not stop the remaining lines or the delete.
func (s *orderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	order, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	for _, item := range order.Items {
		if err := s.bookRepo.AdjustStock(ctx, item.BookID, item.Quantity); err != nil {
			s.logger.Error().
				Err(err).
				Str("order_id", id.String()).
				Str("book_id", item.BookID).
				Int("quantity", item.Quantity).
				Msg("failed to restock book")
		}
	}

	deleted, err := s.orderRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to delete order")
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if !deleted {
		return model.ErrOrderNotFound
	}

	s.logger.Info().Str("order_id", id.String()).Msg("order deleted")
	s.publish(ctx, events.OrderDeleted, order)

	return nil
}

func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Order, error) {
	order, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next := order.Status
	if status != "" {
		next = model.OrderStatus(status)
		if !next.Valid() {
			return nil, model.InvalidRequest("invalid status: %s", status)
		}
	}

	now := s.now().UTC()
	ok, err := s.orderRepo.UpdateStatus(ctx, id, next, now)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to update order status")
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	if !ok {
		return nil, model.ErrOrderNotFound
	}

	order.Status = next
	order.UpdatedAt = now
	return order, nil
}

func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		s.logger.Debug().Str("order_id", id.String()).Msg("order not found")
		return nil, model.ErrOrderNotFound
	}
	return order, nil
}

func (s *orderService) List(ctx context.Context) ([]model.Order, error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (s *orderService) ListByEmail(ctx context.Context, email string) ([]model.Order, error) {
	orders, err := s.orderRepo.ListByEmail(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("failed to list orders by email")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	if len(orders) == 0 {
		return nil, model.ErrNoOrders
	}
	return orders, nil
}

func (s *orderService) publish(ctx context.Context, t events.Type, order *model.Order) {
	if err := s.publisher.Publish(ctx, events.NewOrderEvent(t, order, s.now().UTC())); err != nil {
		s.logger.Warn().Err(err).Str("order_id", order.ID.String()).Str("type", string(t)).Msg("failed to publish order event")
	}
}

// ParseAmount accepts a JSON number or a numeric string.
func ParseAmount(v any) (decimal.Decimal, error) {
	switch t := v.(type) {
	case float64:
		return decimal.NewFromFloat(t), nil
	case int:
		return decimal.NewFromInt(int64(t)), nil
	case int64:
		return decimal.NewFromInt(t), nil
	case json.Number:
		return decimal.NewFromString(t.String())
	case string:
		return decimal.NewFromString(strings.TrimSpace(t))
	case decimal.Decimal:
		return t, nil
	default:
		return decimal.Zero, fmt.Errorf("unsupported amount type %T", v)
	}
}
