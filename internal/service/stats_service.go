package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"shortly/internal/database"
	"shortly/internal/entities"
	"shortly/internal/logger"
	"shortly/internal/repository"
)

// Trailing windows reported by the stats endpoints, in days.
var metricWindows = []int{1, 7, 30, 365}

const (
	DefaultStatsDays   = 30
	MaxStatsDays       = 365
	RecentClicksLimit  = 10
	DefaultClicksLimit = 50
)

// ClickInput is one redirect to record.
type ClickInput struct {
	ShortCode string
	IPAddress *string
	UserAgent *string
	ClickedAt time.Time
}

// URLStats summarises the clicks of one URL.
type URLStats struct {
	URL                *entities.ShortURL
	TotalClicks        int64
	Clicks24h          int64
	Clicks7d           int64
	Clicks30d          int64
	Clicks365d         int64
	Timeframe          repository.Timeframe
	Timeline           []repository.TimelinePoint
	HourlyDistribution map[int]int64
	RecentClicks       []*entities.ClickEvent
}

// GlobalStats summarises clicks across every URL.
type GlobalStats struct {
	TotalURLs          int64
	TotalClicks        int64
	Clicks24h          int64
	Clicks7d           int64
	Clicks30d          int64
	Clicks365d         int64
	Timeframe          repository.Timeframe
	Timeline           []repository.TimelinePoint
	HourlyDistribution map[int]int64
	RecentClicks       []repository.RecentClick
}

// StatsService records clicks and aggregates them.
type StatsService interface {
	TrackClick(ctx context.Context, click ClickInput) error
	TrackClicksBatch(ctx context.Context, clicks []ClickInput) (int, error)
	GetURLStats(ctx context.Context, code string, timeframe repository.Timeframe, days int) (*URLStats, error)
	GetGlobalStats(ctx context.Context, timeframe repository.Timeframe, days int) (*GlobalStats, error)
	GetClicks(ctx context.Context, code string, limit int, cursor *repository.ClickCursor) ([]*entities.ClickEvent, error)
}

type statsService struct {
	store  Transactor
	urls   repository.URLRepository
	clicks repository.ClickRepository
	now    func() time.Time
	log    zerolog.Logger
}

// NewStatsService creates the analytics aggregator.
func NewStatsService(store Transactor, urls repository.URLRepository, clicks repository.ClickRepository, opts ...Option) StatsService {
	o := buildOptions(opts)
	return &statsService{
		store:  store,
		urls:   urls,
		clicks: clicks,
		now:    o.now,
		log:    logger.With("stats_service"),
	}
}

// TrackClick records a single click through the batch path.
func (s *statsService) TrackClick(ctx context.Context, click ClickInput) error {
	_, err := s.TrackClicksBatch(ctx, []ClickInput{click})
	return err
}

// TrackClicksBatch records clicks in one transaction: one lookup for all
// distinct codes, one increment per URL and one multi-row insert. Clicks
// on unknown codes are dropped. It returns the number of clicks recorded.
func (s *statsService) TrackClicksBatch(ctx context.Context, clicks []ClickInput) (int, error) {
	if len(clicks) == 0 {
		return 0, nil
	}

	codes := make([]string, 0, len(clicks))
	seen := make(map[string]struct{}, len(clicks))
	for _, c := range clicks {
		if _, ok := seen[c.ShortCode]; !ok {
			seen[c.ShortCode] = struct{}{}
			codes = append(codes, c.ShortCode)
		}
	}

	recorded := 0
	err := s.store.InTx(ctx, func(ctx context.Context, q database.DBTX) error {
		ids, err := s.urls.GetIDsByShortCodes(ctx, q, codes)
		if err != nil {
			return err
		}

		counts := make(map[int64]int64, len(ids))
		rows := make([]repository.NewClick, 0, len(clicks))
		for _, c := range clicks {
			id, ok := ids[c.ShortCode]
			if !ok {
				s.log.Debug().Str("short_code", c.ShortCode).Msg("dropping click for unknown code")
				continue
			}
			counts[id]++

			clickedAt := c.ClickedAt
			if clickedAt.IsZero() {
				clickedAt = s.now()
			}
			rows = append(rows, repository.NewClick{
				URLID:     id,
				ClickedAt: clickedAt,
				IPAddress: c.IPAddress,
				UserAgent: c.UserAgent,
			})
		}
		if len(rows) == 0 {
			return nil
		}

		// Fixed lock order so concurrent batches cannot deadlock.
		urlIDs := make([]int64, 0, len(counts))
		for id := range counts {
			urlIDs = append(urlIDs, id)
		}
		slices.Sort(urlIDs)
		for _, id := range urlIDs {
			if _, err := s.urls.IncrementClickCount(ctx, q, id, counts[id]); err != nil {
				return err
			}
		}

		if _, err := s.clicks.CreateBatch(ctx, q, rows); err != nil {
			return err
		}
		recorded = len(rows)
		return nil
	})
	if err != nil {
		return 0, newError(KindTracking, fmt.Sprintf("failed to track %d clicks", len(clicks)), err)
	}
	return recorded, nil
}

// GetURLStats gathers the stats of one URL. The metric, timeline, hourly
// and recent-click queries run concurrently, each in its own read scope.
func (s *statsService) GetURLStats(ctx context.Context, code string, timeframe repository.Timeframe, days int) (*URLStats, error) {
	timeframe, days, err := normalizeStatsParams(timeframe, days)
	if err != nil {
		return nil, err
	}

	var url *entities.ShortURL
	err = s.store.Read(ctx, func(ctx context.Context, q database.DBTX) error {
		var err error
		url, err = s.urls.GetByShortCode(ctx, q, code)
		return err
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound(code)
	}
	if err != nil {
		return nil, fromStore("get URL stats", err)
	}

	now := s.now()
	stats := &URLStats{URL: url, Timeframe: timeframe}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.store.Read(gctx, func(ctx context.Context, q database.DBTX) error {
			m, err := s.clicks.GetTimeBasedMetrics(ctx, q, &url.ID, metricWindows, now)
			if err != nil {
				return err
			}
			stats.TotalClicks = m.Total
			stats.Clicks24h, stats.Clicks7d, stats.Clicks30d, stats.Clicks365d =
				m.Windows[1], m.Windows[7], m.Windows[30], m.Windows[365]
			return nil
		})
	})
	g.Go(func() error {
		return s.store.Read(gctx, func(ctx context.Context, q database.DBTX) error {
			var err error
			stats.Timeline, err = s.clicks.GetClicksByTimeframe(ctx, q, &url.ID, timeframe, days, now)
			return err
		})
	})
	g.Go(func() error {
		return s.store.Read(gctx, func(ctx context.Context, q database.DBTX) error {
			var err error
			stats.HourlyDistribution, err = s.clicks.GetHourlyDistribution(ctx, q, &url.ID, days, now)
			return err
		})
	})
	g.Go(func() error {
		return s.store.Read(gctx, func(ctx context.Context, q database.DBTX) error {
			var err error
			stats.RecentClicks, err = s.clicks.GetClicksForURL(ctx, q, url.ID, RecentClicksLimit)
			return err
		})
	})

	if err := g.Wait(); err != nil {
		return nil, fromStore("get URL stats", err)
	}
	return stats, nil
}

// GetGlobalStats aggregates across every URL.
func (s *statsService) GetGlobalStats(ctx context.Context, timeframe repository.Timeframe, days int) (*GlobalStats, error) {
	timeframe, days, err := normalizeStatsParams(timeframe, days)
	if err != nil {
		return nil, err
	}

	now := s.now()
	stats := &GlobalStats{Timeframe: timeframe}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.store.Read(gctx, func(ctx context.Context, q database.DBTX) error {
			var err error
			stats.TotalURLs, err = s.urls.Count(ctx, q, nil)
			return err
		})
	})
	g.Go(func() error {
		return s.store.Read(gctx, func(ctx context.Context, q database.DBTX) error {
			m, err := s.clicks.GetTimeBasedMetrics(ctx, q, nil, metricWindows, now)
			if err != nil {
				return err
			}
			stats.TotalClicks = m.Total
			stats.Clicks24h, stats.Clicks7d, stats.Clicks30d, stats.Clicks365d =
				m.Windows[1], m.Windows[7], m.Windows[30], m.Windows[365]
			return nil
		})
	})
	g.Go(func() error {
		return s.store.Read(gctx, func(ctx context.Context, q database.DBTX) error {
			var err error
			stats.Timeline, err = s.clicks.GetClicksByTimeframe(ctx, q, nil, timeframe, days, now)
			return err
		})
	})
	g.Go(func() error {
		return s.store.Read(gctx, func(ctx context.Context, q database.DBTX) error {
			var err error
			stats.HourlyDistribution, err = s.clicks.GetHourlyDistribution(ctx, q, nil, days, now)
			return err
		})
	})
	g.Go(func() error {
		return s.store.Read(gctx, func(ctx context.Context, q database.DBTX) error {
			var err error
			stats.RecentClicks, err = s.clicks.GetRecentClicks(ctx, q, RecentClicksLimit)
			return err
		})
	})

	if err := g.Wait(); err != nil {
		return nil, fromStore("get global stats", err)
	}
	return stats, nil
}

// GetClicks pages through the raw clicks of a URL, newest first.
func (s *statsService) GetClicks(ctx context.Context, code string, limit int, cursor *repository.ClickCursor) ([]*entities.ClickEvent, error) {
	if limit <= 0 {
		limit = DefaultClicksLimit
	}

	var clicks []*entities.ClickEvent
	err := s.store.Read(ctx, func(ctx context.Context, q database.DBTX) error {
		url, err := s.urls.GetByShortCode(ctx, q, code)
		if err != nil {
			return err
		}
		clicks, err = s.clicks.GetClicksForURLKeyset(ctx, q, url.ID, limit, cursor)
		return err
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound(code)
	}
	if err != nil {
		return nil, fromStore("list clicks", err)
	}
	return clicks, nil
}

func normalizeStatsParams(timeframe repository.Timeframe, days int) (repository.Timeframe, int, error) {
	if timeframe == "" {
		timeframe = repository.TimeframeDaily
	}
	if !timeframe.Valid() {
		return "", 0, validationError("timeframe", "timeframe must be one of daily, weekly, monthly")
	}
	if days == 0 {
		days = DefaultStatsDays
	}
	if days < 1 || days > MaxStatsDays {
		return "", 0, validationError("days", fmt.Sprintf("days must be between 1 and %d", MaxStatsDays))
	}
	return timeframe, days, nil
}
