package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"shortly/internal/entities"
	"shortly/internal/logger"
	"shortly/internal/resilience"
)

// ErrMiss is returned when a key is not cached.
var ErrMiss = errors.New("cache miss")

// RedirectCache caches the redirect projection of short URLs by code.
type RedirectCache interface {
	Get(ctx context.Context, code string) (*entities.RedirectTarget, error)
	Set(ctx context.Context, code string, target *entities.RedirectTarget, ttl time.Duration) error
	Delete(ctx context.Context, code string) error
}

type redisCache struct {
	client redis.Cmdable
	prefix string
}

// NewRedisCache wraps an existing client.
func NewRedisCache(client redis.Cmdable) RedirectCache {
	return &redisCache{client: client, prefix: "url:"}
}

// NewRedisClient parses redisURL and pings the server under the retry
// policy. The client is returned even when the ping fails so callers can
// run degraded and let go-redis reconnect later.
func NewRedisClient(ctx context.Context, redisURL string, backoff resilience.Backoff) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		// If URL parsing fails, try as simple host:port
		opt = &redis.Options{Addr: redisURL}
	}

	client := redis.NewClient(opt)
	err = resilience.Retry(ctx, "redis connect", backoff, func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	})
	if err != nil {
		return client, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info().Str("addr", opt.Addr).Msg("connected to redis")
	return client, nil
}

type cachedTarget struct {
	ID          int64      `json:"id"`
	OriginalURL string     `json:"original_url"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

// Get retrieves a redirect target from cache
func (r *redisCache) Get(ctx context.Context, code string) (*entities.RedirectTarget, error) {
	data, err := r.client.Get(ctx, r.prefix+code).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}

	var c cachedTarget
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	return &entities.RedirectTarget{ID: c.ID, OriginalURL: c.OriginalURL, ExpiresAt: c.ExpiresAt}, nil
}

// Set stores a redirect target. The TTL is shortened so the entry never
// outlives the URL's expiry.
func (r *redisCache) Set(ctx context.Context, code string, target *entities.RedirectTarget, ttl time.Duration) error {
	if target.ExpiresAt != nil {
		remaining := time.Until(*target.ExpiresAt)
		if remaining <= 0 {
			return nil
		}
		if remaining < ttl {
			ttl = remaining
		}
	}

	data, err := json.Marshal(cachedTarget{ID: target.ID, OriginalURL: target.OriginalURL, ExpiresAt: target.ExpiresAt})
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return r.client.Set(ctx, r.prefix+code, data, ttl).Err()
}

// Delete removes a code from cache
func (r *redisCache) Delete(ctx context.Context, code string) error {
	return r.client.Del(ctx, r.prefix+code).Err()
}
