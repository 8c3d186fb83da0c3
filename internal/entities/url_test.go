package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShortURL_IsExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Second)
	future := now.Add(time.Second)

	tests := []struct {
		name      string
		expiresAt *time.Time
		want      bool
	}{
		{"never expires", nil, false},
		{"expired in the past", &past, true},
		{"expires exactly now", &now, true},
		{"expires in the future", &future, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &ShortURL{ExpiresAt: tt.expiresAt}
			assert.Equal(t, tt.want, u.IsExpired(now))
		})
	}
}
