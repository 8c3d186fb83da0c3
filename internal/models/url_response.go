package models

import (
	"time"

	"shortly/internal/entities"
)

// URLResponse represents a short URL in API responses
type URLResponse struct {
	ShortCode   string     `json:"short_code"`
	OriginalURL string     `json:"original_url"`
	ShortURL    string     `json:"short_url"` // Full short URL (base URL + short code)
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   *time.Time `json:"expires_at"`
	IsCustom    bool       `json:"is_custom"`
	ClickCount  int64      `json:"click_count"`
}

// NewURLResponse builds the response for u.
func NewURLResponse(u *entities.ShortURL, baseURL string) URLResponse {
	return URLResponse{
		ShortCode:   u.ShortCode,
		OriginalURL: u.OriginalURL,
		ShortURL:    baseURL + "/" + u.ShortCode,
		CreatedAt:   u.CreatedAt,
		ExpiresAt:   u.ExpiresAt,
		IsCustom:    u.IsCustom,
		ClickCount:  u.ClickCount,
	}
}

// URLListResponse is one page of URLs. NextCursor holds the query
// parameters of the next keyset page and is absent on the last page.
type URLListResponse struct {
	URLs       []URLResponse  `json:"urls"`
	PageCount  int            `json:"page_count"`
	NextCursor map[string]any `json:"next_cursor,omitempty"`
}

// NewURLListResponse builds a page from urls.
func NewURLListResponse(urls []*entities.ShortURL, baseURL string) URLListResponse {
	out := make([]URLResponse, 0, len(urls))
	for _, u := range urls {
		out = append(out, NewURLResponse(u, baseURL))
	}
	return URLListResponse{URLs: out, PageCount: len(out)}
}

// ErrorResponse is the body of every error.
type ErrorResponse struct {
	Error     string            `json:"error"`
	ErrorCode string            `json:"error_code"`
	Details   map[string]string `json:"details,omitempty"`
}
