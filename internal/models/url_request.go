package models

import "time"

// CreateURLRequest represents the request body for creating a short URL
type CreateURLRequest struct {
	OriginalURL    string  `json:"original_url" binding:"required,max=2048"`
	CustomCode     *string `json:"custom_code,omitempty"`
	ExpirationDays *int    `json:"expiration_days,omitempty" binding:"omitempty,min=1"`
}

// UpdateURLRequest changes the target or expiry of a URL. ClearExpiry makes
// the URL permanent and wins over ExpiresAt.
type UpdateURLRequest struct {
	OriginalURL *string    `json:"original_url,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	ClearExpiry bool       `json:"clear_expiry,omitempty"`
}

// ListURLsQuery is the offset pagination query of GET /urls.
type ListURLsQuery struct {
	Skip           int  `form:"skip" binding:"min=0"`
	Limit          int  `form:"limit,default=20" binding:"min=1,max=100"`
	IncludeExpired bool `form:"include_expired"`
}

// RecentURLsQuery is the keyset query of GET /urls/paginated. The cursor
// is the created_at and id of the last row of the previous page.
type RecentURLsQuery struct {
	Limit          int        `form:"limit,default=20" binding:"min=1,max=100"`
	LastCreatedAt  *time.Time `form:"last_created_at" binding:"required_with=LastID"`
	LastID         *int64     `form:"last_id" binding:"required_with=LastCreatedAt"`
	IncludeExpired bool       `form:"include_expired"`
}

// TopURLsQuery is the keyset query of GET /urls/top/paginated.
type TopURLsQuery struct {
	Limit          int    `form:"limit,default=10" binding:"min=1,max=100"`
	LastClickCount *int64 `form:"last_click_count" binding:"required_with=LastID"`
	LastID         *int64 `form:"last_id" binding:"required_with=LastClickCount"`
	IncludeExpired bool   `form:"include_expired"`
}

// StatsQuery selects the aggregation of the stats endpoints.
type StatsQuery struct {
	Timeframe string `form:"timeframe,default=daily" binding:"oneof=daily weekly monthly"`
	Days      int    `form:"days,default=30" binding:"min=1,max=365"`
}

// ClicksQuery is the keyset query of GET /urls/:short_code/clicks.
type ClicksQuery struct {
	Limit         int        `form:"limit,default=50" binding:"min=1,max=500"`
	LastClickedAt *time.Time `form:"last_clicked_at" binding:"required_with=LastID"`
	LastID        *int64     `form:"last_id" binding:"required_with=LastClickedAt"`
}

// MaintenanceRequest optionally overrides the analytics retention of one
// maintenance run.
type MaintenanceRequest struct {
	AnalyticsDays *int `json:"analytics_days,omitempty" binding:"omitempty,min=1"`
}
