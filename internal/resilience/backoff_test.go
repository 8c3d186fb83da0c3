package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackoff_PolicyWithoutJitter(t *testing.T) {
	policy := Backoff{
		InitialDelay: time.Second,
		MaxDelay:     5 * time.Second,
		MaxAttempts:  6,
	}.Policy()

	var delays []time.Duration
	for {
		d, stop := policy.Next()
		if stop {
			break
		}
		delays = append(delays, d)
	}

	assert.Equal(t, []time.Duration{
		1 * time.Second,
		2 * time.Second,
		4 * time.Second,
		5 * time.Second,
		5 * time.Second,
	}, delays)
}

func TestBackoff_PolicyJitterStaysInBounds(t *testing.T) {
	policy := Backoff{
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     time.Second,
		JitterFactor: 0.1,
	}.Policy()

	base := 100 * time.Millisecond
	for i := 0; i < 4; i++ {
		d, stop := policy.Next()
		require.False(t, stop)
		assert.GreaterOrEqual(t, d, base-base/10)
		assert.LessOrEqual(t, d, base+base/10)
		base *= 2
	}
}

func TestRetry_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), "connect", Backoff{
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		MaxAttempts:  5,
	}, func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("connection refused")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	errDown := errors.New("connection refused")
	calls := 0
	err := Retry(context.Background(), "connect", Backoff{
		InitialDelay: time.Millisecond,
		MaxDelay:     2 * time.Millisecond,
		JitterFactor: 0.1,
		MaxAttempts:  4,
	}, func(ctx context.Context) error {
		calls++
		return errDown
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, errDown)
	assert.Equal(t, 4, calls)
}

func TestRetry_StopsWhenContextEnds(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Retry(ctx, "connect", Backoff{InitialDelay: time.Hour, MaxAttempts: 10}, func(ctx context.Context) error {
		calls++
		cancel()
		return errors.New("down")
	})

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}
