package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	// DefaultStockLockTTL bounds how long a crashed holder can block a book.
	DefaultStockLockTTL = 10 * time.Second
	stockLockRetry      = 25 * time.Millisecond
	stockLockPrefix     = "booksales:stock-lock:"
)

// releaseScript deletes KEYS[1] only while it still holds ARGV[1].
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisStockLocker is a StockLocker shared by every replica using the same Redis.
type RedisStockLocker struct {
	client redis.UniversalClient
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRedisStockLocker creates a locker on client. A ttl of zero uses DefaultStockLockTTL.
func NewRedisStockLocker(client redis.UniversalClient, ttl time.Duration, logger zerolog.Logger) *RedisStockLocker {
	if ttl <= 0 {
		ttl = DefaultStockLockTTL
	}
	return &RedisStockLocker{
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("component", "redis-stock-locker").Logger(),
	}
}

// Lock acquires one key per distinct book id in sorted order, polling until
// each is free or ctx is done.
func (l *RedisStockLocker) Lock(ctx context.Context, bookIDs []string) (func(), error) {
	ids := slices.Clone(bookIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	token := uuid.NewString()
	held := make([]string, 0, len(ids))
	release := func() {
		// Release must still run when the request context is already cancelled.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		for i := len(held) - 1; i >= 0; i-- {
			if err := releaseScript.Run(releaseCtx, l.client, []string{held[i]}, token).Err(); err != nil {
				l.logger.Error().Err(err).Str("key", held[i]).Msg("failed to release stock lock")
			}
		}
	}

	for _, id := range ids {
		key := stockLockPrefix + id
		for {
			ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
			if err != nil {
				release()
				return nil, fmt.Errorf("failed to acquire stock lock for %s: %w", id, err)
			}
			if ok {
				held = append(held, key)
				break
			}

			select {
			case <-ctx.Done():
				release()
				return nil, ctx.Err()
			case <-time.After(stockLockRetry):
			}
		}
	}

	return release, nil
}
