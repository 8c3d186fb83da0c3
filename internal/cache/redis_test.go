package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shortly/internal/entities"
	"shortly/internal/testutil"
)

func TestRedisCache_RoundTrip(t *testing.T) {
	mr, client := testutil.SetupRedis(t)
	c := NewRedisCache(client)
	ctx := context.Background()

	_, err := c.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, c.Set(ctx, "abc", &entities.RedirectTarget{ID: 7, OriginalURL: "https://example.com"}, time.Hour))

	got, err := c.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, "https://example.com", got.OriginalURL)
	assert.Nil(t, got.ExpiresAt)
	assert.Equal(t, time.Hour, mr.TTL("url:abc"))

	require.NoError(t, c.Delete(ctx, "abc"))
	_, err = c.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestRedisCache_TTLNeverOutlivesExpiry(t *testing.T) {
	mr, client := testutil.SetupRedis(t)
	c := NewRedisCache(client)
	ctx := context.Background()

	soon := time.Now().Add(10 * time.Minute)
	require.NoError(t, c.Set(ctx, "soon", &entities.RedirectTarget{ID: 1, OriginalURL: "https://a.example", ExpiresAt: &soon}, time.Hour))
	assert.LessOrEqual(t, mr.TTL("url:soon"), 10*time.Minute)

	past := time.Now().Add(-time.Minute)
	require.NoError(t, c.Set(ctx, "gone", &entities.RedirectTarget{ID: 2, OriginalURL: "https://b.example", ExpiresAt: &past}, time.Hour))
	assert.False(t, mr.Exists("url:gone"))
}
