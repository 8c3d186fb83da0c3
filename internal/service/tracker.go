package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"shortly/internal/logger"
)

// TrackerConfig sizes the click queue.
type TrackerConfig struct {
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
	FlushTimeout  time.Duration
}

// TrackerStats is a snapshot for health reporting.
type TrackerStats struct {
	Queued   int   `json:"queued"`
	Enqueued int64 `json:"enqueued"`
	Dropped  int64 `json:"dropped"`
	Recorded int64 `json:"recorded"`
	Failed   int64 `json:"failed"`
}

// ClickTracker hands clicks from the redirect path to a background worker
// that records them in batches. Tracking is best effort: a full queue
// drops clicks and batch failures are only logged.
type ClickTracker struct {
	stats StatsService
	cfg   TrackerConfig
	log   zerolog.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan ClickInput
	done   chan struct{}

	enqueued atomic.Int64
	dropped  atomic.Int64
	recorded atomic.Int64
	failed   atomic.Int64
}

// NewClickTracker starts the worker goroutine. Call Close to drain it.
func NewClickTracker(stats StatsService, cfg TrackerConfig) *ClickTracker {
	if cfg.QueueSize < 1 {
		cfg.QueueSize = 10000
	}
	if cfg.BatchSize < 1 {
		cfg.BatchSize = 100
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = time.Second
	}
	if cfg.FlushTimeout <= 0 {
		cfg.FlushTimeout = 10 * time.Second
	}

	t := &ClickTracker{
		stats: stats,
		cfg:   cfg,
		log:   logger.With("click_tracker"),
		queue: make(chan ClickInput, cfg.QueueSize),
		done:  make(chan struct{}),
	}
	go t.worker()
	return t
}

// Enqueue never blocks. It reports false when the click was dropped.
func (t *ClickTracker) Enqueue(click ClickInput) bool {
	if click.ClickedAt.IsZero() {
		click.ClickedAt = time.Now()
	}

	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.closed {
		t.dropped.Add(1)
		return false
	}

	select {
	case t.queue <- click:
		t.enqueued.Add(1)
		return true
	default:
		t.dropped.Add(1)
		t.log.Warn().Str("short_code", click.ShortCode).Msg("click queue full, dropping click")
		return false
	}
}

func (t *ClickTracker) worker() {
	defer close(t.done)

	ticker := time.NewTicker(t.cfg.FlushInterval)
	defer ticker.Stop()

	batch := make([]ClickInput, 0, t.cfg.BatchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), t.cfg.FlushTimeout)
		defer cancel()

		n, err := t.stats.TrackClicksBatch(ctx, batch)
		if err != nil {
			t.failed.Add(int64(len(batch)))
			t.log.Error().Err(err).Int("batch_size", len(batch)).Msg("failed to record click batch")
		} else {
			t.recorded.Add(int64(n))
			t.log.Debug().Int("batch_size", len(batch)).Int("recorded", n).Msg("click batch recorded")
		}
		batch = batch[:0]
	}

	for {
		select {
		case click, ok := <-t.queue:
			if !ok {
				// Queue closed: final flush and exit
				flush()
				return
			}
			batch = append(batch, click)
			if len(batch) >= t.cfg.BatchSize {
				flush()
			}

		case <-ticker.C:
			flush()
		}
	}
}

// Close stops accepting clicks and waits until the queue is drained or
// ctx ends.
func (t *ClickTracker) Close(ctx context.Context) error {
	t.mu.Lock()
	if !t.closed {
		t.closed = true
		close(t.queue)
	}
	t.mu.Unlock()

	select {
	case <-t.done:
		t.log.Info().
			Int64("recorded", t.recorded.Load()).
			Int64("dropped", t.dropped.Load()).
			Msg("click tracker drained")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stats returns the tracker counters.
func (t *ClickTracker) Stats() TrackerStats {
	return TrackerStats{
		Queued:   len(t.queue),
		Enqueued: t.enqueued.Load(),
		Dropped:  t.dropped.Load(),
		Recorded: t.recorded.Load(),
		Failed:   t.failed.Load(),
	}
}
