package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ratelimit:"

// RedisBackend counts requests in fixed windows shared by every instance.
type RedisBackend struct {
	client redis.Cmdable
	now    func() time.Time
}

// NewRedisBackend wraps client.
func NewRedisBackend(client redis.Cmdable) *RedisBackend {
	return &RedisBackend{client: client, now: time.Now}
}

// Allow increments the counter of the current window. The counter and its
// expiry are written in one round trip.
func (b *RedisBackend) Allow(ctx context.Context, key string, rule Rule) (Decision, error) {
	if rule.Unlimited() {
		return Decision{Allowed: true, Backend: "redis"}, nil
	}

	now := b.now()
	period := rule.Period.Milliseconds()
	if period < 1 {
		period = 1
	}
	window := now.UnixMilli() / period
	windowKey := fmt.Sprintf("%s%s:%d", redisKeyPrefix, key, window)

	var incr *redis.IntCmd
	_, err := b.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, windowKey)
		pipe.Expire(ctx, windowKey, rule.Period)
		return nil
	})
	if err != nil {
		return Decision{}, fmt.Errorf("rate limit counter %s: %w", windowKey, err)
	}

	if incr.Val() > int64(rule.Limit) {
		windowEnd := time.UnixMilli((window + 1) * period)
		return Decision{Allowed: false, RetryAfter: windowEnd.Sub(now), Backend: "redis"}, nil
	}
	return Decision{Allowed: true, Backend: "redis"}, nil
}

// Ping checks that redis answers.
func (b *RedisBackend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}
