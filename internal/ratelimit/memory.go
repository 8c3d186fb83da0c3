package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultIdleTTL       = 10 * time.Minute
	defaultSweepInterval = 5 * time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	rule     Rule
	lastSeen time.Time
}

// MemoryBackend keeps one token bucket per key. Buckets idle for longer
// than the idle TTL are evicted by a background sweeper.
type MemoryBackend struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	idleTTL  time.Duration
	now      func() time.Time

	stop      chan struct{}
	closeOnce sync.Once
}

// MemoryOption configures a MemoryBackend.
type MemoryOption func(*MemoryBackend)

// WithIdleTTL sets how long an unused bucket is kept.
func WithIdleTTL(ttl time.Duration) MemoryOption {
	return func(m *MemoryBackend) { m.idleTTL = ttl }
}

// WithMemoryClock replaces time.Now.
func WithMemoryClock(now func() time.Time) MemoryOption {
	return func(m *MemoryBackend) { m.now = now }
}

// NewMemoryBackend creates the backend and starts its sweeper.
func NewMemoryBackend(opts ...MemoryOption) *MemoryBackend {
	m := &MemoryBackend{
		visitors: make(map[string]*visitor),
		idleTTL:  defaultIdleTTL,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}

	go m.sweep(defaultSweepInterval)
	return m
}

// Allow takes a token from the bucket of key.
func (m *MemoryBackend) Allow(_ context.Context, key string, rule Rule) (Decision, error) {
	if rule.Unlimited() {
		return Decision{Allowed: true, Backend: "memory"}, nil
	}

	now := m.now()
	limiter := m.limiter(key, rule, now)

	r := limiter.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return Decision{Allowed: false, RetryAfter: delay, Backend: "memory"}, nil
	}
	return Decision{Allowed: true, Backend: "memory"}, nil
}

// limiter returns the bucket of key, creating one if needed. A bucket made
// for a different rule is replaced.
func (m *MemoryBackend) limiter(key string, rule Rule, now time.Time) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, exists := m.visitors[key]
	if !exists || v.rule != rule {
		every := rule.Period / time.Duration(rule.Limit)
		v = &visitor{
			limiter: rate.NewLimiter(rate.Every(every), rule.Limit),
			rule:    rule,
		}
		m.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter
}

// Evict removes buckets idle for longer than the idle TTL and returns how
// many were removed.
func (m *MemoryBackend) Evict() int {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for k, v := range m.visitors {
		if now.Sub(v.lastSeen) > m.idleTTL {
			delete(m.visitors, k)
			removed++
		}
	}
	return removed
}

// Len returns the number of live buckets.
func (m *MemoryBackend) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.visitors)
}

func (m *MemoryBackend) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Evict()
		case <-m.stop:
			return
		}
	}
}

// Close stops the sweeper.
func (m *MemoryBackend) Close() {
	m.closeOnce.Do(func() { close(m.stop) })
}
