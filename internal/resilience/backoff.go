package resilience

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/sethvargo/go-retry"

	"shortly/internal/logger"
)

// Backoff describes exponential backoff with jitter:
//
//	delay  = min(InitialDelay * 2^(attempt-1), MaxDelay)
//	actual = delay ± uniform(0, delay*JitterFactor)
type Backoff struct {
	InitialDelay time.Duration
	MaxDelay     time.Duration
	JitterFactor float64 // 0.0-1.0
	MaxAttempts  int     // total attempts including the first
}

// Policy builds the go-retry backoff for b.
func (b Backoff) Policy() retry.Backoff {
	policy := retry.NewExponential(b.InitialDelay)
	if b.MaxDelay > 0 {
		policy = retry.WithCappedDuration(b.MaxDelay, policy)
	}
	if jitter := uint64(math.Round(b.JitterFactor * 100)); jitter > 0 {
		policy = retry.WithJitterPercent(jitter, policy)
	}
	if b.MaxAttempts > 0 {
		policy = retry.WithMaxRetries(uint64(b.MaxAttempts-1), policy)
	}
	return policy
}

// Retry runs op until it succeeds, the attempts are exhausted or ctx ends.
// Every op error is retried; the last one is returned on exhaustion.
func Retry(ctx context.Context, name string, b Backoff, op func(ctx context.Context) error) error {
	attempt := 0
	err := retry.Do(ctx, b.Policy(), func(ctx context.Context) error {
		attempt++
		if err := op(ctx); err != nil {
			if b.MaxAttempts > 0 && attempt >= b.MaxAttempts {
				logger.Error().
					Err(err).
					Str("operation", name).
					Int("attempts", attempt).
					Msg("giving up after final attempt")
				return err
			}
			logger.Warn().
				Err(err).
				Str("operation", name).
				Int("attempt", attempt).
				Int("max_attempts", b.MaxAttempts).
				Msg("attempt failed, retrying")
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s failed after %d attempts: %w", name, attempt, err)
	}

	logger.Info().Str("operation", name).Int("attempt", attempt).Msg("succeeded")
	return nil
}
