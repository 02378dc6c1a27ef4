package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"booksales/internal/auth"
	"booksales/internal/model"
	"booksales/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TokenIssuer signs identity tokens.
type TokenIssuer interface {
	GenerateToken(userID, email string) (string, time.Time, error)
}

// authService implements AuthService.
type authService struct {
	userRepo repository.UserRepository
	tokens   TokenIssuer
	logger   zerolog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(userRepo repository.UserRepository, tokens TokenIssuer, logger zerolog.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger.With().Str("service", "auth").Logger(),
	}
}

func (s *authService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if req == nil || req.Email == "" {
		return nil, model.InvalidRequest("Email is required")
	}
	if req.Password == "" {
		return nil, model.InvalidRequest("Password is required")
	}

	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Error().Err(err).Str("email", req.Email).Msg("failed to look up user")
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	if existing != nil {
		return nil, model.ErrUserExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Mobile:       req.Mobile,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         model.RoleCustomer,
		Addresses:    []model.Address{},
		Cart:         []model.CartLine{},
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, model.ErrUserExists) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("email", req.Email).Msg("failed to create user")
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("user registered")
	return user, nil
}

func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	if req == nil || req.Email == "" || req.Password == "" {
		return nil, model.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Error().Err(err).Str("email", req.Email).Msg("failed to look up user")
		return nil, fmt.Errorf("failed to log in: %w", err)
	}
	if user == nil || !auth.CheckPassword(req.Password, user.PasswordHash) {
		s.logger.Debug().Str("email", req.Email).Msg("login rejected")
		return nil, model.ErrInvalidCredentials
	}

	token, _, err := s.tokens.GenerateToken(user.ID.String(), user.Email)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to sign token")
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &model.LoginResponse{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Mobile:    user.Mobile,
		Token:     token,
	}, nil
}

func (s *authService) GetUser(ctx context.Context, email string) (*model.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("failed to get user")
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}

	cart, err := s.userRepo.GetCart(ctx, user.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("failed to load cart")
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	user.Cart = cart

	return user, nil
}

func (s *authService) UpdateUser(ctx context.Context, email string, upd *model.UserUpdate) (*model.User, error) {
	if upd == nil {
		upd = &model.UserUpdate{}
	}

	if upd.Password != nil {
		hash, err := auth.HashPassword(*upd.Password)
		if err != nil {
			return nil, model.InvalidRequest("Password must not be empty")
		}
		upd.Password = &hash
	}

	user, err := s.userRepo.Update(ctx, email, *upd)
	if err != nil {
		if model.HasCode(err, model.ErrCodeAlreadyExists) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("email", email).Msg("failed to update user")
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}

	return user, nil
}

func (s *authService) DeleteUser(ctx context.Context, email string) error {
	deleted, err := s.userRepo.DeleteByEmail(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("failed to delete user")
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if !deleted {
		return model.ErrUserNotFound
	}
	return nil
}
