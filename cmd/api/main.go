package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"booksales/internal/auth"
	"booksales/internal/catalog"
	"booksales/internal/config"
	"booksales/internal/database"
	"booksales/internal/events"
	"booksales/internal/handler"
	"booksales/internal/middleware"
	"booksales/internal/notify"
	"booksales/internal/repository"
	"booksales/internal/router"
	"booksales/internal/service"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting booksales API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	// Initialize repositories
	bookRepo := repository.NewBookRepository(pool, logger)
	userRepo := repository.NewUserRepository(pool, logger)
	wishlistRepo := repository.NewWishlistRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)

	if cfg.Catalog.SeedFile != "" {
		if err := seedCatalog(ctx, cfg, bookRepo, logger); err != nil {
			return err
		}
	}

	// Restock notifications
	var notifier notify.Notifier = notify.Nop{}
	if cfg.SMS.Enabled() {
		sender := notify.NewTwilioSender(cfg.SMS.AccountSID, cfg.SMS.AuthToken)
		notifier = notify.NewSMSNotifier(sender, cfg.SMS.From, cfg.SMS.MessagingServiceSID, logger)
	} else {
		logger.Info().Msg("SMS credentials not set, restock notifications disabled")
	}

	// Order event feed
	var publisher events.Publisher = events.Nop{}
	if cfg.Kafka.Enabled {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close event publisher")
		}
	}()

	var locker service.StockLocker
	if cfg.Orders.LockStock {
		if cfg.Redis.Addr != "" {
			rdb := redis.NewClient(&redis.Options{
				Addr:     cfg.Redis.Addr,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			defer rdb.Close()
			if err := rdb.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("failed to reach redis: %w", err)
			}
			locker = service.NewRedisStockLocker(rdb, time.Duration(cfg.Orders.LockTTLSecs)*time.Second, logger)
			logger.Info().Str("addr", cfg.Redis.Addr).Msg("order stock locks held in redis")
		} else {
			locker = service.NewMemoryStockLocker()
			logger.Info().Msg("order stock locks held in process memory")
		}
	}

	var authLimiter *middleware.RateLimiter
	if cfg.Auth.RatePerMinute > 0 {
		authLimiter = middleware.NewRateLimiter(cfg.Auth.RatePerMinute, cfg.Auth.RateBurst, logger)
	}

	jwtService := auth.NewJWTService(cfg.Auth.JWTSecret)

	// Initialize services
	bookService := service.NewBookService(bookRepo, logger)
	cartService := service.NewCartService(userRepo, bookRepo, logger)
	wishlistService := service.NewWishlistService(wishlistRepo, bookRepo, notifier, logger)
	orderService := service.NewOrderService(orderRepo, bookRepo, locker, publisher, logger)
	authService := service.NewAuthService(userRepo, jwtService, logger)

	// Initialize router
	mux := router.New(router.Handlers{
		Books:    handler.NewBookHandler(bookService, logger),
		Cart:     handler.NewCartHandler(cartService, logger),
		Wishlist: handler.NewWishlistHandler(wishlistService, logger),
		Orders:   handler.NewOrderHandler(orderService, logger),
		Users:    handler.NewUserHandler(authService, logger),
	}, jwtService, authLimiter, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// seedCatalog upserts the configured catalogue file, reading from S3 first
// when it is enabled and falling back to the local file system.
func seedCatalog(ctx context.Context, cfg *config.Config, books repository.BookRepository, logger zerolog.Logger) error {
	fileLoader := catalog.NewFileLoader(logger)
	loader := fileLoader

	if cfg.S3.Enabled {
		s3Loader, err := catalog.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			loader = catalog.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, true, logger)
		}
	} else {
		logger.Info().Msg("using local file system for catalogue seed (S3 disabled)")
	}

	if _, err := catalog.NewSeeder(loader, books, logger).Seed(ctx, cfg.Catalog.SeedFile); err != nil {
		return fmt.Errorf("failed to seed catalogue: %w", err)
	}
	return nil
}
