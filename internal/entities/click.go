package entities

import "time"

// Column limits for click_events.
const (
	MaxIPAddressLength = 45 // fits a textual IPv6 address
	MaxUserAgentLength = 1024
)

// ClickEvent is one recorded visit of a short URL.
type ClickEvent struct {
	ID        int64     `json:"id"`
	URLID     int64     `json:"url_id"`
	ClickedAt time.Time `json:"clicked_at"`
	IPAddress *string   `json:"ip_address,omitempty"`
	UserAgent *string   `json:"user_agent,omitempty"`
}
