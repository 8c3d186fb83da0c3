package ratelimit

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"shortly/internal/logger"
)

// ResilientConfig tunes failover between redis and memory.
type ResilientConfig struct {
	// CheckInterval is the minimum time between two redis health probes.
	CheckInterval time.Duration
	// MaxErrors is the number of consecutive redis failures that forces
	// a switch to memory before the next probe.
	MaxErrors int
	// OpTimeout bounds every redis call.
	OpTimeout time.Duration
}

// BackendStats is a snapshot for health reporting.
type BackendStats struct {
	Backend     string    `json:"backend"`
	RedisErrors int64     `json:"redis_errors"`
	LastCheck   time.Time `json:"last_check"`
	Switches    int64     `json:"switches"`
}

// ResilientBackend prefers a remote backend and falls back to memory when
// the remote one fails. Mode reads are lock free; switching is serialized
// and probes run at most once per CheckInterval.
type ResilientBackend struct {
	remote RemoteBackend
	memory *MemoryBackend
	cfg    ResilientConfig
	now    func() time.Time
	log    zerolog.Logger

	usingRemote atomic.Bool
	lastCheck   atomic.Int64
	errors      atomic.Int64
	switches    atomic.Int64
	mu          sync.Mutex

	stop      chan struct{}
	done      chan struct{}
	startOnce sync.Once
	closeOnce sync.Once
}

// ResilientOption configures a ResilientBackend.
type ResilientOption func(*ResilientBackend)

// WithClock replaces time.Now for probe scheduling.
func WithClock(now func() time.Time) ResilientOption {
	return func(b *ResilientBackend) { b.now = now }
}

// NewResilientBackend builds the failover backend. remote may be nil, in
// which case every request is counted in memory.
func NewResilientBackend(remote RemoteBackend, memory *MemoryBackend, cfg ResilientConfig, opts ...ResilientOption) *ResilientBackend {
	if cfg.CheckInterval <= 0 {
		cfg.CheckInterval = 10 * time.Second
	}
	if cfg.MaxErrors < 1 {
		cfg.MaxErrors = 3
	}
	if cfg.OpTimeout <= 0 {
		cfg.OpTimeout = 200 * time.Millisecond
	}
	if memory == nil {
		memory = NewMemoryBackend()
	}

	b := &ResilientBackend{
		remote: remote,
		memory: memory,
		cfg:    cfg,
		now:    time.Now,
		log:    logger.With("rate_limit"),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Init probes the remote backend once and picks the starting mode. It
// reports whether the remote backend is in use.
func (b *ResilientBackend) Init(ctx context.Context) bool {
	if b.remote == nil {
		b.log.Info().Msg("rate limiting uses memory backend")
		return false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.lastCheck.Store(b.now().UnixNano())
	if err := b.ping(ctx); err != nil {
		b.log.Warn().Err(err).Msg("redis unavailable, rate limiting uses memory backend")
		b.usingRemote.Store(false)
		return false
	}
	b.usingRemote.Store(true)
	b.errors.Store(0)
	b.log.Info().Msg("rate limiting uses redis backend")
	return true
}

// IsAllowed checks rule for identity within group. A remote failure is
// absorbed: the request is counted in memory instead.
func (b *ResilientBackend) IsAllowed(ctx context.Context, rule Rule, identity, group string) (Decision, error) {
	if rule.Unlimited() {
		return Decision{Allowed: true, Backend: b.Mode()}, nil
	}
	k := key(group, identity)

	b.CheckHealth(ctx)

	if b.usingRemote.Load() {
		opCtx, cancel := context.WithTimeout(ctx, b.cfg.OpTimeout)
		d, err := b.remote.Allow(opCtx, k, rule)
		cancel()
		if err == nil {
			b.errors.Store(0)
			b.logBlocked(d, identity, group)
			return d, nil
		}
		b.handleRemoteError(err)
	}

	d, err := b.memory.Allow(ctx, k, rule)
	if err == nil {
		b.logBlocked(d, identity, group)
	}
	return d, err
}

// CheckHealth probes the remote backend if the last probe is older than
// CheckInterval. Concurrent callers skip the probe while one is running.
func (b *ResilientBackend) CheckHealth(ctx context.Context) {
	if b.remote == nil {
		return
	}
	now := b.now()
	if now.Sub(time.Unix(0, b.lastCheck.Load())) < b.cfg.CheckInterval {
		return
	}
	if !b.mu.TryLock() {
		return
	}
	defer b.mu.Unlock()

	// Another caller may have probed between the read and the lock.
	if now.Sub(time.Unix(0, b.lastCheck.Load())) < b.cfg.CheckInterval {
		return
	}
	b.lastCheck.Store(now.UnixNano())

	err := b.ping(ctx)
	switch {
	case err != nil && b.usingRemote.Load():
		b.log.Warn().Err(err).Msg("redis connection lost, switching to memory backend")
		b.usingRemote.Store(false)
		b.switches.Add(1)
	case err != nil:
		b.log.Debug().Err(err).Msg("redis still unavailable")
	case !b.usingRemote.Load():
		b.log.Info().Msg("redis reachable again, switching back to redis backend")
		b.errors.Store(0)
		b.usingRemote.Store(true)
		b.switches.Add(1)
	}
}

func (b *ResilientBackend) handleRemoteError(err error) {
	n := b.errors.Add(1)
	if n < int64(b.cfg.MaxErrors) {
		b.log.Warn().Err(err).Int64("errors", n).Int("max_errors", b.cfg.MaxErrors).Msg("redis rate limit operation failed")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.usingRemote.Load() {
		b.log.Warn().Int64("errors", n).Msg("redis error threshold reached, switching to memory backend")
		b.usingRemote.Store(false)
		b.switches.Add(1)
		b.lastCheck.Store(b.now().UnixNano())
	}
}

func (b *ResilientBackend) ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, b.cfg.OpTimeout)
	defer cancel()
	return b.remote.Ping(ctx)
}

func (b *ResilientBackend) logBlocked(d Decision, identity, group string) {
	if d.Allowed {
		return
	}
	b.log.Info().
		Str("identity", identity).
		Str("group", group).
		Str("backend", d.Backend).
		Dur("retry_after", d.RetryAfter).
		Msg("rate limit exceeded")
}

// Mode returns "redis" or "memory".
func (b *ResilientBackend) Mode() string {
	if b.usingRemote.Load() {
		return "redis"
	}
	return "memory"
}

// Stats returns the failover counters.
func (b *ResilientBackend) Stats() BackendStats {
	var last time.Time
	if ns := b.lastCheck.Load(); ns != 0 {
		last = time.Unix(0, ns).UTC()
	}
	return BackendStats{
		Backend:     b.Mode(),
		RedisErrors: b.errors.Load(),
		LastCheck:   last,
		Switches:    b.switches.Load(),
	}
}

// Start runs the health probe loop until Close.
func (b *ResilientBackend) Start() {
	b.startOnce.Do(func() {
		go b.healthLoop()
	})
}

func (b *ResilientBackend) healthLoop() {
	defer close(b.done)

	ticker := time.NewTicker(b.cfg.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			b.CheckHealth(context.Background())
		case <-b.stop:
			return
		}
	}
}

// Close stops the health loop and the memory sweeper. The redis client is
// owned by the caller.
func (b *ResilientBackend) Close() {
	b.closeOnce.Do(func() {
		close(b.stop)
		started := true
		b.startOnce.Do(func() { started = false })
		if started {
			<-b.done
		}
		b.memory.Close()
		b.log.Info().Msg("rate limit backend closed")
	})
}
