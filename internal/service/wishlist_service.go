package service

import (
	"context"
	"fmt"
	"time"

	"booksales/internal/model"
	"booksales/internal/notify"
	"booksales/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// wishlistService implements WishlistService.
type wishlistService struct {
	wishlistRepo repository.WishlistRepository
	bookRepo     repository.BookRepository
	notifier     notify.Notifier
	logger       zerolog.Logger
	now          func() time.Time
}

// NewWishlistService creates a new wishlist service. A nil notifier disables restock messages.
func NewWishlistService(
	wishlistRepo repository.WishlistRepository,
	bookRepo repository.BookRepository,
	notifier notify.Notifier,
	logger zerolog.Logger,
) WishlistService {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &wishlistService{
		wishlistRepo: wishlistRepo,
		bookRepo:     bookRepo,
		notifier:     notifier,
		logger:       logger.With().Str("service", "wishlist").Logger(),
		now:          time.Now,
	}
}

func (s *wishlistService) Add(ctx context.Context, req *model.WishlistRequest) (*model.Wishlist, error) {
	if req == nil || req.Email == "" {
		return nil, model.InvalidRequest("email is required")
	}
	if req.BookID == "" {
		return nil, model.InvalidRequest("bookId is required")
	}

	wishlist, err := s.wishlistRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Error().Err(err).Str("email", req.Email).Msg("failed to get wishlist")
		return nil, fmt.Errorf("failed to get wishlist: %w", err)
	}

	now := s.now().UTC()
	item := model.WishlistItem{BookID: req.BookID, Title: req.Title}

	if wishlist == nil {
		wishlist = &model.Wishlist{
			ID:        uuid.New(),
			Email:     req.Email,
			Mobile:    req.Mobile,
			Items:     []model.WishlistItem{item},
			CreatedAt: now,
			UpdatedAt: now,
		}
	} else {
		if wishlist.Contains(req.BookID) {
			return nil, model.ErrAlreadyWishlisted
		}
		wishlist.Items = append(wishlist.Items, item)
		wishlist.UpdatedAt = now
	}

	if err := s.wishlistRepo.Save(ctx, wishlist); err != nil {
		s.logger.Error().Err(err).Str("email", req.Email).Msg("failed to save wishlist")
		return nil, fmt.Errorf("failed to save wishlist: %w", err)
	}

	s.notifyIfInStock(ctx, req.Mobile, req.BookID)

	return wishlist, nil
}

// notifyIfInStock never fails: the wishlist is already saved.
func (s *wishlistService) notifyIfInStock(ctx context.Context, mobile, bookID string) {
	if mobile == "" {
		return
	}

	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		s.logger.Warn().Err(err).Str("book_id", bookID).Msg("failed to look up book for restock notification")
		return
	}
	if book == nil || !book.InStock() {
		return
	}

	s.notifier.NotifyRestock(ctx, mobile, book)
}

func (s *wishlistService) Remove(ctx context.Context, email, bookID string) (*model.Wishlist, error) {
	wishlist, err := s.wishlistRepo.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("failed to get wishlist")
		return nil, fmt.Errorf("failed to get wishlist: %w", err)
	}
	if wishlist == nil {
		return nil, model.ErrWishlistNotFound
	}

	kept := make([]model.WishlistItem, 0, len(wishlist.Items))
	for _, it := range wishlist.Items {
		if it.BookID != bookID {
			kept = append(kept, it)
		}
	}
	wishlist.Items = kept
	wishlist.UpdatedAt = s.now().UTC()

	if err := s.wishlistRepo.Save(ctx, wishlist); err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("failed to save wishlist")
		return nil, fmt.Errorf("failed to save wishlist: %w", err)
	}

	return wishlist, nil
}

func (s *wishlistService) Get(ctx context.Context, email string) (*model.Wishlist, error) {
	wishlist, err := s.wishlistRepo.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("failed to get wishlist")
		return nil, fmt.Errorf("failed to get wishlist: %w", err)
	}
	if wishlist == nil {
		return nil, model.NotFound("No wishlist found for this email")
	}
	return wishlist, nil
}
