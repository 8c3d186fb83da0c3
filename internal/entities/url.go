package entities

import "time"

// ShortURL represents a shortened URL row in short_urls
type ShortURL struct {
	ID          int64      `json:"id"`
	OriginalURL string     `json:"original_url"`
	ShortCode   string     `json:"short_code"`
	IsCustom    bool       `json:"is_custom"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"` // Pointer allows nil (no expiration)
	ClickCount  int64      `json:"click_count"`
}

// IsExpired reports whether the URL is expired at now. A URL is expired from
// the instant expires_at is reached, so expires_at == now counts as expired.
func (u *ShortURL) IsExpired(now time.Time) bool {
	return ExpiredAt(u.ExpiresAt, now)
}

// ExpiredAt is the expiry predicate shared by full rows and projections.
func ExpiredAt(expiresAt *time.Time, now time.Time) bool {
	return expiresAt != nil && !now.Before(*expiresAt)
}

// RedirectTarget is the narrow projection read on the redirect hot path.
type RedirectTarget struct {
	ID          int64      `json:"id"`
	OriginalURL string     `json:"original_url"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}
