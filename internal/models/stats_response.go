package models

import (
	"strconv"
	"time"

	"shortly/internal/entities"
	"shortly/internal/repository"
	"shortly/internal/service"
)

// TimelinePoint is one bucket of a click timeline.
type TimelinePoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// ClickData is one recorded click.
type ClickData struct {
	ID        int64     `json:"id"`
	ClickedAt time.Time `json:"clicked_at"`
	IPAddress *string   `json:"ip_address"`
	UserAgent *string   `json:"user_agent"`
	ShortCode string    `json:"short_code,omitempty"`
}

// ClickWindows are the trailing window counts shared by both stats
// responses.
type ClickWindows struct {
	TotalClicks int64 `json:"total_clicks"`
	Clicks24h   int64 `json:"clicks_24h"`
	Clicks7d    int64 `json:"clicks_7d"`
	Clicks30d   int64 `json:"clicks_30d"`
	Clicks365d  int64 `json:"clicks_365d"`
}

// URLStatsResponse represents the response for URL statistics
type URLStatsResponse struct {
	URLID       int64      `json:"url_id"`
	ShortCode   string     `json:"short_code"`
	OriginalURL string     `json:"original_url"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   *time.Time `json:"expires_at"`
	ClickWindows
	Timeframe          string           `json:"timeframe"`
	Timeline           []TimelinePoint  `json:"timeline"`
	HourlyDistribution map[string]int64 `json:"hourly_distribution"`
	RecentClicks       []ClickData      `json:"recent_clicks"`
}

// GlobalStatsResponse aggregates every URL.
type GlobalStatsResponse struct {
	TotalURLs int64 `json:"total_urls"`
	ClickWindows
	Timeframe          string           `json:"timeframe"`
	Timeline           []TimelinePoint  `json:"timeline"`
	HourlyDistribution map[string]int64 `json:"hourly_distribution"`
	RecentClicks       []ClickData      `json:"recent_clicks"`
}

// ClickListResponse is one keyset page of clicks.
type ClickListResponse struct {
	Clicks     []ClickData    `json:"clicks"`
	NextCursor map[string]any `json:"next_cursor,omitempty"`
}

// NewURLStatsResponse converts service stats.
func NewURLStatsResponse(s *service.URLStats) URLStatsResponse {
	clicks := make([]ClickData, 0, len(s.RecentClicks))
	for _, c := range s.RecentClicks {
		clicks = append(clicks, NewClickData(c))
	}
	return URLStatsResponse{
		URLID:       s.URL.ID,
		ShortCode:   s.URL.ShortCode,
		OriginalURL: s.URL.OriginalURL,
		CreatedAt:   s.URL.CreatedAt,
		ExpiresAt:   s.URL.ExpiresAt,
		ClickWindows: ClickWindows{
			TotalClicks: s.TotalClicks,
			Clicks24h:   s.Clicks24h,
			Clicks7d:    s.Clicks7d,
			Clicks30d:   s.Clicks30d,
			Clicks365d:  s.Clicks365d,
		},
		Timeframe:          string(s.Timeframe),
		Timeline:           newTimeline(s.Timeline, s.Timeframe),
		HourlyDistribution: newHourly(s.HourlyDistribution),
		RecentClicks:       clicks,
	}
}

// NewGlobalStatsResponse converts service stats.
func NewGlobalStatsResponse(s *service.GlobalStats) GlobalStatsResponse {
	clicks := make([]ClickData, 0, len(s.RecentClicks))
	for _, c := range s.RecentClicks {
		d := NewClickData(&c.ClickEvent)
		d.ShortCode = c.ShortCode
		clicks = append(clicks, d)
	}
	return GlobalStatsResponse{
		TotalURLs: s.TotalURLs,
		ClickWindows: ClickWindows{
			TotalClicks: s.TotalClicks,
			Clicks24h:   s.Clicks24h,
			Clicks7d:    s.Clicks7d,
			Clicks30d:   s.Clicks30d,
			Clicks365d:  s.Clicks365d,
		},
		Timeframe:          string(s.Timeframe),
		Timeline:           newTimeline(s.Timeline, s.Timeframe),
		HourlyDistribution: newHourly(s.HourlyDistribution),
		RecentClicks:       clicks,
	}
}

// NewClickData converts one click.
func NewClickData(c *entities.ClickEvent) ClickData {
	return ClickData{
		ID:        c.ID,
		ClickedAt: c.ClickedAt,
		IPAddress: c.IPAddress,
		UserAgent: c.UserAgent,
	}
}

func newTimeline(points []repository.TimelinePoint, tf repository.Timeframe) []TimelinePoint {
	layout := "2006-01-02"
	if tf == repository.TimeframeMonthly {
		layout = "2006-01"
	}
	out := make([]TimelinePoint, 0, len(points))
	for _, p := range points {
		out = append(out, TimelinePoint{Date: p.Period.UTC().Format(layout), Count: p.Clicks})
	}
	return out
}

// newHourly reports all 24 hours, zero filled.
func newHourly(byHour map[int]int64) map[string]int64 {
	out := make(map[string]int64, 24)
	for h := 0; h < 24; h++ {
		out[strconv.Itoa(h)] = byHour[h]
	}
	return out
}
