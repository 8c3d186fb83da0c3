package resilience

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"shortly/internal/logger"
)

// State is the circuit breaker state.
type State string

const (
	StateClosed   State = "closed"    // normal operation
	StateOpen     State = "open"      // failing fast
	StateHalfOpen State = "half-open" // probing for recovery
)

// ErrOperationTimeout is reported when an operation exceeds the breaker's own timeout.
var ErrOperationTimeout = errors.New("operation timed out")

// CircuitOpenError is returned while the circuit is open. The wrapped
// operation is never invoked when this error is returned.
type CircuitOpenError struct {
	Remaining time.Duration
}

func (e *CircuitOpenError) Error() string {
	return fmt.Sprintf("circuit breaker is open, retry in %.1f seconds", e.Remaining.Seconds())
}

// BreakerSettings configures a CircuitBreaker.
type BreakerSettings struct {
	FailureThreshold int           // consecutive failures that open the circuit
	SuccessThreshold int           // consecutive half-open successes that close it
	RecoveryTime     time.Duration // open period measured from the last failure
	Timeout          time.Duration // per-operation timeout, 0 disables
}

// BreakerStats is a snapshot for health reporting.
type BreakerStats struct {
	State            State     `json:"state"`
	FailureCount     int       `json:"failure_count"`
	SuccessCount     int       `json:"success_count"`
	FailureThreshold int       `json:"failure_threshold"`
	SuccessThreshold int       `json:"success_threshold"`
	RecoveryTime     string    `json:"recovery_time"`
	LastFailureTime  time.Time `json:"last_failure_time,omitzero"`
	TotalFailures    int64     `json:"total_failures"`
	TotalSuccesses   int64     `json:"total_successes"`
	TotalBypassed    int64     `json:"total_bypassed"`
	TripCount        int64     `json:"circuit_trip_count"`
}

// CircuitBreaker guards calls to a flaky dependency. One instance is created
// by the composition root and shared by every store call.
type CircuitBreaker struct {
	mu       sync.Mutex
	settings BreakerSettings

	state       State
	failures    int
	successes   int
	lastFailure time.Time

	totalFailures  int64
	totalSuccesses int64
	totalBypassed  int64
	trips          int64

	now       func() time.Time
	isFailure func(error) bool
}

// BreakerOption customises a CircuitBreaker.
type BreakerOption func(*CircuitBreaker)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) BreakerOption {
	return func(cb *CircuitBreaker) { cb.now = now }
}

// WithFailurePredicate decides which operation errors count against the
// circuit. Errors for which it returns false are treated as successes.
func WithFailurePredicate(fn func(error) bool) BreakerOption {
	return func(cb *CircuitBreaker) { cb.isFailure = fn }
}

// NewCircuitBreaker creates a closed circuit breaker.
func NewCircuitBreaker(settings BreakerSettings, opts ...BreakerOption) *CircuitBreaker {
	if settings.FailureThreshold < 1 {
		settings.FailureThreshold = 1
	}
	if settings.SuccessThreshold < 1 {
		settings.SuccessThreshold = 1
	}

	cb := &CircuitBreaker{
		settings:  settings,
		state:     StateClosed,
		now:       time.Now,
		isFailure: func(err error) bool { return err != nil },
	}
	for _, opt := range opts {
		opt(cb)
	}

	logger.Info().
		Int("failure_threshold", settings.FailureThreshold).
		Dur("recovery_time", settings.RecoveryTime).
		Int("success_threshold", settings.SuccessThreshold).
		Msg("circuit breaker initialized")

	return cb
}

// Execute runs op under the breaker. While open it returns *CircuitOpenError
// without calling op. op receives a context bounded by the breaker timeout;
// hitting that timeout counts as a failure.
func (cb *CircuitBreaker) Execute(ctx context.Context, op func(ctx context.Context) error) error {
	if err := cb.before(); err != nil {
		return err
	}

	opCtx := ctx
	if cb.settings.Timeout > 0 {
		var cancel context.CancelFunc
		opCtx, cancel = context.WithTimeout(ctx, cb.settings.Timeout)
		defer cancel()
	}

	err := op(opCtx)

	switch {
	case err == nil:
		cb.onSuccess()
	case ctx.Err() != nil:
		// The caller gave up; that says nothing about the dependency.
	case errors.Is(opCtx.Err(), context.DeadlineExceeded):
		cb.onFailure(err)
		err = fmt.Errorf("%w after %s: %w", ErrOperationTimeout, cb.settings.Timeout, err)
	case cb.isFailure(err):
		cb.onFailure(err)
	default:
		cb.onSuccess()
	}
	return err
}

func (cb *CircuitBreaker) before() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state != StateOpen {
		return nil
	}

	elapsed := cb.now().Sub(cb.lastFailure)
	if elapsed >= cb.settings.RecoveryTime {
		logger.Info().Msg("circuit breaker transitioning from OPEN to HALF-OPEN")
		cb.state = StateHalfOpen
		cb.successes = 0
		return nil
	}

	cb.totalBypassed++
	return &CircuitOpenError{Remaining: cb.settings.RecoveryTime - elapsed}
}

func (cb *CircuitBreaker) onSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.totalSuccesses++
	switch cb.state {
	case StateHalfOpen:
		cb.successes++
		if cb.successes >= cb.settings.SuccessThreshold {
			logger.Info().
				Int("successes", cb.successes).
				Msg("circuit breaker transitioning from HALF-OPEN to CLOSED")
			cb.state = StateClosed
			cb.failures = 0
			cb.successes = 0
		}
	case StateClosed:
		cb.failures = 0
	}
}

func (cb *CircuitBreaker) onFailure(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.lastFailure = cb.now()
	cb.totalFailures++

	switch cb.state {
	case StateClosed:
		cb.failures++
		if cb.failures >= cb.settings.FailureThreshold {
			logger.Warn().
				Err(err).
				Int("failures", cb.failures).
				Msg("circuit breaker transitioning from CLOSED to OPEN")
			cb.state = StateOpen
			cb.trips++
		}
	case StateHalfOpen:
		logger.Warn().Err(err).Msg("circuit breaker transitioning from HALF-OPEN back to OPEN")
		cb.state = StateOpen
		cb.successes = 0
		cb.trips++
	}
}

// State returns the current state without advancing it.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Stats returns a snapshot of the breaker counters.
func (cb *CircuitBreaker) Stats() BreakerStats {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return BreakerStats{
		State:            cb.state,
		FailureCount:     cb.failures,
		SuccessCount:     cb.successes,
		FailureThreshold: cb.settings.FailureThreshold,
		SuccessThreshold: cb.settings.SuccessThreshold,
		RecoveryTime:     cb.settings.RecoveryTime.String(),
		LastFailureTime:  cb.lastFailure,
		TotalFailures:    cb.totalFailures,
		TotalSuccesses:   cb.totalSuccesses,
		TotalBypassed:    cb.totalBypassed,
		TripCount:        cb.trips,
	}
}

// Reset forces the circuit closed.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	logger.Warn().Msg("circuit breaker manually reset to CLOSED")
	cb.state = StateClosed
	cb.failures = 0
	cb.successes = 0
}
