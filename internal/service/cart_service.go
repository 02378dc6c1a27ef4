package service

import (
	"context"
	"fmt"

	"booksales/internal/model"
	"booksales/internal/repository"

	"github.com/rs/zerolog"
)

// cartService implements CartService.
type cartService struct {
	userRepo repository.UserRepository
	bookRepo repository.BookRepository
	logger   zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(userRepo repository.UserRepository, bookRepo repository.BookRepository, logger zerolog.Logger) CartService {
	return &cartService{
		userRepo: userRepo,
		bookRepo: bookRepo,
		logger:   logger.With().Str("service", "cart").Logger(),
	}
}

func (s *cartService) Add(ctx context.Context, email, bookID string, quantity int) ([]model.CartLine, error) {
	if quantity <= 0 {
		return nil, model.ErrInvalidQuantity
	}

	user, err := s.getUser(ctx, email)
	if err != nil {
		return nil, err
	}

	book, err := s.getBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if !book.InStock() {
		return nil, model.OutOfStock(book.Title, book.Stock)
	}

	cart, err := s.loadCart(ctx, user)
	if err != nil {
		return nil, err
	}

	newQuantity := cart.Quantity(bookID) + quantity
	if newQuantity > book.Stock {
		s.logger.Debug().
			Str("book_id", bookID).
			Int("requested", newQuantity).
			Int("available", book.Stock).
			Msg("cart quantity exceeds stock")
		return nil, model.InsufficientStock(book.Title, book.Stock)
	}

	cart.Set(bookID, newQuantity)
	return s.saveCart(ctx, user, cart)
}

// SetQuantity has no out-of-stock check. A quantity of zero or less removes the line.
func (s *cartService) SetQuantity(ctx context.Context, email, bookID string, quantity int) ([]model.CartLine, error) {
	user, err := s.getUser(ctx, email)
	if err != nil {
		return nil, err
	}

	book, err := s.getBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if quantity > book.Stock {
		return nil, model.InsufficientStock(book.Title, book.Stock)
	}

	cart, err := s.loadCart(ctx, user)
	if err != nil {
		return nil, err
	}

	if !cart.Has(bookID) {
		return nil, model.ErrCartItemNotFound
	}

	cart.Set(bookID, quantity)
	return s.saveCart(ctx, user, cart)
}

func (s *cartService) Remove(ctx context.Context, email, bookID string) error {
	user, err := s.getUser(ctx, email)
	if err != nil {
		return err
	}

	cart, err := s.loadCart(ctx, user)
	if err != nil {
		return err
	}

	if !cart.Has(bookID) {
		return nil
	}

	cart.Remove(bookID)
	_, err = s.saveCart(ctx, user, cart)
	return err
}

func (s *cartService) Get(ctx context.Context, email string) ([]model.CartLine, error) {
	user, err := s.getUser(ctx, email)
	if err != nil {
		return nil, err
	}

	cart, err := s.loadCart(ctx, user)
	if err != nil {
		return nil, err
	}
	return cart.Lines(), nil
}

func (s *cartService) getUser(ctx context.Context, email string) (*model.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("failed to get user")
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (s *cartService) getBook(ctx context.Context, bookID string) (*model.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		s.logger.Error().Err(err).Str("book_id", bookID).Msg("failed to get book")
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	if book == nil {
		return nil, model.ErrBookNotFound
	}
	return book, nil
}

func (s *cartService) loadCart(ctx context.Context, user *model.User) (*model.Cart, error) {
	lines, err := s.userRepo.GetCart(ctx, user.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("email", user.Email).Msg("failed to load cart")
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return model.NewCart(lines), nil
}

func (s *cartService) saveCart(ctx context.Context, user *model.User, cart *model.Cart) ([]model.CartLine, error) {
	lines := cart.Lines()
	if err := s.userRepo.SaveCart(ctx, user.ID, lines); err != nil {
		s.logger.Error().Err(err).Str("email", user.Email).Msg("failed to save cart")
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return lines, nil
}
