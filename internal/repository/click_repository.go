package repository

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"shortly/internal/database"
	"shortly/internal/entities"
)

// Timeframe is the bucket size of a click timeline.
type Timeframe string

const (
	TimeframeDaily   Timeframe = "daily"
	TimeframeWeekly  Timeframe = "weekly"
	TimeframeMonthly Timeframe = "monthly"
)

var truncUnits = map[Timeframe]string{
	TimeframeDaily:   "day",
	TimeframeWeekly:  "week",
	TimeframeMonthly: "month",
}

// Valid reports whether tf is a known timeframe.
func (tf Timeframe) Valid() bool {
	_, ok := truncUnits[tf]
	return ok
}

// NewClick is one row for CreateBatch.
type NewClick struct {
	URLID     int64
	ClickedAt time.Time
	IPAddress *string
	UserAgent *string
}

// ClickCursor is the last row of a page of clicks.
type ClickCursor struct {
	ClickedAt time.Time
	ID        int64
}

// TimelinePoint is one bucket of a click timeline.
type TimelinePoint struct {
	Period time.Time `json:"period"`
	Clicks int64     `json:"clicks"`
}

// RecentClick is a click joined with the code of its URL.
type RecentClick struct {
	entities.ClickEvent
	ShortCode string
}

// TimeMetrics holds counts for several trailing windows.
type TimeMetrics struct {
	Total   int64
	Windows map[int]int64 // days -> clicks
}

// ClickRepository defines the database operations on click events. Methods
// taking a *int64 url id aggregate over every URL when it is nil.
type ClickRepository interface {
	GetByID(ctx context.Context, q database.DBTX, id int64) (*entities.ClickEvent, error)
	Count(ctx context.Context, q database.DBTX, filter Filter) (int64, error)
	Exists(ctx context.Context, q database.DBTX, filter Filter) (bool, error)
	BulkDelete(ctx context.Context, q database.DBTX, filter Filter) (int64, error)

	CreateBatch(ctx context.Context, q database.DBTX, clicks []NewClick) ([]*entities.ClickEvent, error)
	GetClicksForURL(ctx context.Context, q database.DBTX, urlID int64, limit int) ([]*entities.ClickEvent, error)
	GetClicksForURLKeyset(ctx context.Context, q database.DBTX, urlID int64, limit int, cursor *ClickCursor) ([]*entities.ClickEvent, error)
	GetClicksByTimeframe(ctx context.Context, q database.DBTX, urlID *int64, timeframe Timeframe, days int, now time.Time) ([]TimelinePoint, error)
	GetHourlyDistribution(ctx context.Context, q database.DBTX, urlID *int64, days int, now time.Time) (map[int]int64, error)
	GetTimeBasedMetrics(ctx context.Context, q database.DBTX, urlID *int64, windows []int, now time.Time) (*TimeMetrics, error)
	GetRecentClicks(ctx context.Context, q database.DBTX, limit int) ([]RecentClick, error)
	DeleteOlderThan(ctx context.Context, q database.DBTX, cutoff time.Time, batchSize int) (int64, error)
}

var clickSchema = Schema[*entities.ClickEvent]{
	Table:    "click_events",
	Columns:  []string{"id", "url_id", "clicked_at", "ip_address", "user_agent"},
	Writable: []string{"url_id", "clicked_at", "ip_address", "user_agent"},
	Scan:     scanClick,
}

func scanClick(row RowScanner) (*entities.ClickEvent, error) {
	var click entities.ClickEvent
	if err := row.Scan(&click.ID, &click.URLID, &click.ClickedAt, &click.IPAddress, &click.UserAgent); err != nil {
		return nil, err
	}
	return &click, nil
}

type clickRepository struct {
	*Base[*entities.ClickEvent]
}

// NewClickRepository creates a new click event repository
func NewClickRepository() ClickRepository {
	return &clickRepository{Base: NewBase(clickSchema)}
}

// CreateBatch inserts all clicks in one statement. Over-long IP addresses
// and user agents are truncated to the column limits.
func (r *clickRepository) CreateBatch(ctx context.Context, q database.DBTX, clicks []NewClick) ([]*entities.ClickEvent, error) {
	rows := make([]Fields, len(clicks))
	for i, c := range clicks {
		clickedAt := c.ClickedAt
		if clickedAt.IsZero() {
			clickedAt = time.Now()
		}
		rows[i] = Fields{
			"url_id":     c.URLID,
			"clicked_at": clickedAt.UTC(),
			"ip_address": truncated(c.IPAddress, entities.MaxIPAddressLength),
			"user_agent": truncated(c.UserAgent, entities.MaxUserAgentLength),
		}
	}
	return r.BulkCreate(ctx, q, rows)
}

// GetClicksForURL returns the most recent clicks of a URL.
func (r *clickRepository) GetClicksForURL(ctx context.Context, q database.DBTX, urlID int64, limit int) ([]*entities.ClickEvent, error) {
	return r.GetClicksForURLKeyset(ctx, q, urlID, limit, nil)
}

// GetClicksForURLKeyset pages through a URL's clicks by (clicked_at, id) descending.
func (r *clickRepository) GetClicksForURLKeyset(ctx context.Context, q database.DBTX, urlID int64, limit int, cursor *ClickCursor) ([]*entities.ClickEvent, error) {
	args := []any{urlID}
	conds := []string{"url_id = $1"}
	if cursor != nil {
		args = append(args, cursor.ClickedAt.UTC(), cursor.ID)
		conds = append(conds, "(clicked_at < $2 OR (clicked_at = $2 AND id < $3))")
	}

	args = append(args, Page{Limit: limit}.normalized().Limit)
	query := fmt.Sprintf(`SELECT %s FROM click_events%s ORDER BY clicked_at DESC, id DESC LIMIT $%d`,
		r.SelectList(), whereAll(conds), len(args))

	return r.Query(ctx, q, "clicks keyset", query, args...)
}

// GetClicksByTimeframe buckets clicks of the trailing days window by the
// timeframe granularity, in UTC.
func (r *clickRepository) GetClicksByTimeframe(ctx context.Context, q database.DBTX, urlID *int64, timeframe Timeframe, days int, now time.Time) ([]TimelinePoint, error) {
	unit, ok := truncUnits[timeframe]
	if !ok {
		return nil, fmt.Errorf("%w: unknown timeframe %q", ErrInvalidFilter, timeframe)
	}

	where, args := windowConditions(urlID, days, now)
	query := fmt.Sprintf(`
		SELECT DATE_TRUNC('%s', clicked_at AT TIME ZONE 'UTC') AT TIME ZONE 'UTC' AS period,
			COUNT(*) AS clicks
		FROM click_events%s
		GROUP BY period
		ORDER BY period ASC`, unit, where)

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify("clicks by timeframe", err)
	}
	defer rows.Close()

	timeline := make([]TimelinePoint, 0)
	for rows.Next() {
		var p TimelinePoint
		if err := rows.Scan(&p.Period, &p.Clicks); err != nil {
			return nil, classify("clicks by timeframe", err)
		}
		p.Period = p.Period.UTC()
		timeline = append(timeline, p)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("clicks by timeframe", err)
	}
	return timeline, nil
}

// GetHourlyDistribution counts clicks per UTC hour of day over the trailing
// days window. Hours without clicks are absent.
func (r *clickRepository) GetHourlyDistribution(ctx context.Context, q database.DBTX, urlID *int64, days int, now time.Time) (map[int]int64, error) {
	where, args := windowConditions(urlID, days, now)
	query := fmt.Sprintf(`
		SELECT EXTRACT(HOUR FROM clicked_at AT TIME ZONE 'UTC')::int AS hour, COUNT(*)
		FROM click_events%s
		GROUP BY hour
		ORDER BY hour`, where)

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify("hourly distribution", err)
	}
	defer rows.Close()

	hours := make(map[int]int64)
	for rows.Next() {
		var hour int
		var clicks int64
		if err := rows.Scan(&hour, &clicks); err != nil {
			return nil, classify("hourly distribution", err)
		}
		hours[hour] = clicks
	}
	if err := rows.Err(); err != nil {
		return nil, classify("hourly distribution", err)
	}
	return hours, nil
}

// GetTimeBasedMetrics returns the all-time count and the count of every
// trailing window in one conditional aggregation query.
func (r *clickRepository) GetTimeBasedMetrics(ctx context.Context, q database.DBTX, urlID *int64, windows []int, now time.Time) (*TimeMetrics, error) {
	var (
		args  []any
		where string
	)
	if urlID != nil {
		args = append(args, *urlID)
		where = " WHERE url_id = $1"
	}

	selects := []string{"COUNT(*)"}
	for _, days := range windows {
		args = append(args, now.UTC().AddDate(0, 0, -days))
		selects = append(selects, fmt.Sprintf("COUNT(*) FILTER (WHERE clicked_at >= $%d)", len(args)))
	}
	query := fmt.Sprintf("SELECT %s FROM click_events%s", strings.Join(selects, ", "), where)

	counts := make([]int64, len(selects))
	dest := make([]any, len(selects))
	for i := range counts {
		dest[i] = &counts[i]
	}
	if err := q.QueryRowContext(ctx, query, args...).Scan(dest...); err != nil {
		return nil, classify("time based metrics", err)
	}

	metrics := &TimeMetrics{Total: counts[0], Windows: make(map[int]int64, len(windows))}
	for i, days := range windows {
		metrics.Windows[days] = counts[i+1]
	}
	return metrics, nil
}

// GetRecentClicks returns the latest clicks across all URLs.
func (r *clickRepository) GetRecentClicks(ctx context.Context, q database.DBTX, limit int) ([]RecentClick, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT c.id, c.url_id, c.clicked_at, c.ip_address, c.user_agent, u.short_code
		FROM click_events c
		JOIN short_urls u ON u.id = c.url_id
		ORDER BY c.clicked_at DESC, c.id DESC
		LIMIT $1`, Page{Limit: limit}.normalized().Limit)
	if err != nil {
		return nil, classify("recent clicks", err)
	}
	defer rows.Close()

	out := make([]RecentClick, 0)
	for rows.Next() {
		var c RecentClick
		if err := rows.Scan(&c.ID, &c.URLID, &c.ClickedAt, &c.IPAddress, &c.UserAgent, &c.ShortCode); err != nil {
			return nil, classify("recent clicks", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("recent clicks", err)
	}
	return out, nil
}

// DeleteOlderThan removes at most batchSize clicks recorded before cutoff.
func (r *clickRepository) DeleteOlderThan(ctx context.Context, q database.DBTX, cutoff time.Time, batchSize int) (int64, error) {
	return r.exec(ctx, q, "prune clicks", `
		DELETE FROM click_events
		WHERE id IN (
			SELECT id FROM click_events
			WHERE clicked_at < $1
			ORDER BY id
			LIMIT $2
		)`, cutoff.UTC(), batchSize)
}

func windowConditions(urlID *int64, days int, now time.Time) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if urlID != nil {
		args = append(args, *urlID)
		conds = append(conds, fmt.Sprintf("url_id = $%d", len(args)))
	}
	if days > 0 {
		args = append(args, now.UTC().AddDate(0, 0, -days))
		conds = append(conds, fmt.Sprintf("clicked_at >= $%d", len(args)))
	}
	return whereAll(conds), args
}

func truncated(s *string, max int) any {
	if s == nil {
		return nil
	}
	v := strings.ToValidUTF8(*s, "")
	if utf8.RuneCountInString(v) > max {
		v = string([]rune(v)[:max])
	}
	return v
}
