package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"shortly/internal/database"
	"shortly/internal/logger"
	"shortly/internal/repository"
)

// ExpiringSoonWindow is the horizon reported by GetCleanupStats.
const ExpiringSoonWindow = 24 * time.Hour

// CleanupConfig tunes the maintenance job.
type CleanupConfig struct {
	BatchSize     int
	AnalyticsDays int
}

// ExpiredCleanupResult reports one expired URL sweep.
type ExpiredCleanupResult struct {
	Deleted       int64         `json:"deleted"`
	Batches       int           `json:"batches"`
	ExecutionTime time.Duration `json:"execution_time_ns"`
}

// PruneResult reports one analytics pruning pass.
type PruneResult struct {
	Pruned        int64         `json:"pruned"`
	Batches       int           `json:"batches"`
	Cutoff        time.Time     `json:"cutoff"`
	ExecutionTime time.Duration `json:"execution_time_ns"`
}

// MaintenanceResult combines both passes.
type MaintenanceResult struct {
	ExpiredCleanup     *ExpiredCleanupResult `json:"expired_cleanup"`
	AnalyticsPruning   *PruneResult          `json:"analytics_pruning"`
	TotalExecutionTime time.Duration         `json:"total_execution_time_ns"`
	Timestamp          time.Time             `json:"timestamp"`
}

// CleanupStats counts URLs that are or will soon be eligible for cleanup.
type CleanupStats struct {
	ExpiredURLs      int64     `json:"expired_urls"`
	ExpiringSoonURLs int64     `json:"expiring_soon_urls"`
	Timestamp        time.Time `json:"timestamp"`
}

// CleanupService reclaims space held by expired URLs and old clicks.
type CleanupService interface {
	CleanupExpiredURLs(ctx context.Context) (*ExpiredCleanupResult, error)
	PruneOldAnalytics(ctx context.Context, daysToKeep int) (*PruneResult, error)
	RunMaintenance(ctx context.Context) (*MaintenanceResult, error)
	GetCleanupStats(ctx context.Context) (*CleanupStats, error)
}

type cleanupService struct {
	store  Transactor
	urls   repository.URLRepository
	clicks repository.ClickRepository
	cfg    CleanupConfig
	now    func() time.Time
	log    zerolog.Logger
}

// NewCleanupService creates the maintenance service.
func NewCleanupService(store Transactor, urls repository.URLRepository, clicks repository.ClickRepository, cfg CleanupConfig, opts ...Option) CleanupService {
	if cfg.BatchSize < 1 {
		cfg.BatchSize = 1000
	}
	o := buildOptions(opts)
	return &cleanupService{
		store:  store,
		urls:   urls,
		clicks: clicks,
		cfg:    cfg,
		now:    o.now,
		log:    logger.With("cleanup_service"),
	}
}

// CleanupExpiredURLs deletes expired URLs one batch per transaction until a
// batch comes back short.
func (s *cleanupService) CleanupExpiredURLs(ctx context.Context) (*ExpiredCleanupResult, error) {
	start := time.Now()
	now := s.now()
	result := &ExpiredCleanupResult{}

	deleted, batches, err := s.deleteInBatches(ctx, func(ctx context.Context, q database.DBTX) (int64, error) {
		return s.urls.DeleteExpired(ctx, q, now, s.cfg.BatchSize)
	})
	result.Deleted, result.Batches = deleted, batches
	result.ExecutionTime = time.Since(start)
	if err != nil {
		s.log.Error().Err(err).Int64("deleted", deleted).Msg("expired URL cleanup failed")
		return result, fromStore("clean up expired URLs", err)
	}

	s.log.Info().
		Int64("deleted", deleted).
		Int("batches", batches).
		Dur("execution_time", result.ExecutionTime).
		Msg("expired URL cleanup finished")
	return result, nil
}

// PruneOldAnalytics deletes clicks older than daysToKeep in batches.
func (s *cleanupService) PruneOldAnalytics(ctx context.Context, daysToKeep int) (*PruneResult, error) {
	if daysToKeep < 1 {
		return nil, validationError("days_to_keep", "days_to_keep must be at least 1")
	}

	start := time.Now()
	cutoff := s.now().UTC().AddDate(0, 0, -daysToKeep)
	result := &PruneResult{Cutoff: cutoff}

	pruned, batches, err := s.deleteInBatches(ctx, func(ctx context.Context, q database.DBTX) (int64, error) {
		return s.clicks.DeleteOlderThan(ctx, q, cutoff, s.cfg.BatchSize)
	})
	result.Pruned, result.Batches = pruned, batches
	result.ExecutionTime = time.Since(start)
	if err != nil {
		s.log.Error().Err(err).Int64("pruned", pruned).Msg("analytics pruning failed")
		return result, fromStore("prune analytics", err)
	}

	s.log.Info().
		Int64("pruned", pruned).
		Time("cutoff", cutoff).
		Dur("execution_time", result.ExecutionTime).
		Msg("analytics pruning finished")
	return result, nil
}

// RunMaintenance runs the expired URL sweep, then analytics pruning. A
// failure of the first pass does not skip the second.
func (s *cleanupService) RunMaintenance(ctx context.Context) (*MaintenanceResult, error) {
	start := time.Now()
	result := &MaintenanceResult{}

	expiredResult, expiredErr := s.CleanupExpiredURLs(ctx)
	result.ExpiredCleanup = expiredResult

	var pruneErr error
	if s.cfg.AnalyticsDays > 0 {
		result.AnalyticsPruning, pruneErr = s.PruneOldAnalytics(ctx, s.cfg.AnalyticsDays)
	}

	result.TotalExecutionTime = time.Since(start)
	result.Timestamp = s.now().UTC()

	if expiredErr != nil {
		return result, expiredErr
	}
	return result, pruneErr
}

// GetCleanupStats counts expired URLs and URLs expiring within a day.
func (s *cleanupService) GetCleanupStats(ctx context.Context) (*CleanupStats, error) {
	now := s.now()
	stats := &CleanupStats{Timestamp: now.UTC()}

	err := s.store.Read(ctx, func(ctx context.Context, q database.DBTX) error {
		var err error
		if stats.ExpiredURLs, err = s.urls.CountExpired(ctx, q, now); err != nil {
			return err
		}
		stats.ExpiringSoonURLs, err = s.urls.CountExpiringSoon(ctx, q, now, ExpiringSoonWindow)
		return err
	})
	if err != nil {
		return nil, fromStore("get cleanup stats", err)
	}
	return stats, nil
}

func (s *cleanupService) deleteInBatches(ctx context.Context, deleteBatch func(ctx context.Context, q database.DBTX) (int64, error)) (int64, int, error) {
	var total int64
	batches := 0
	for {
		if err := ctx.Err(); err != nil {
			return total, batches, err
		}

		var n int64
		err := s.store.InTx(ctx, func(ctx context.Context, q database.DBTX) error {
			var err error
			n, err = deleteBatch(ctx, q)
			return err
		})
		if err != nil {
			return total, batches, err
		}

		batches++
		total += n
		if n < int64(s.cfg.BatchSize) {
			return total, batches, nil
		}
	}
}
