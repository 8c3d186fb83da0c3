package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shortly/internal/auth"
	"shortly/internal/ratelimit"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(r http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func newLimitedRouter(t *testing.T, adminIPs []string, tokens *auth.TokenService) *gin.Engine {
	t.Helper()
	backend := ratelimit.NewResilientBackend(nil, nil, ratelimit.ResilientConfig{})
	t.Cleanup(backend.Close)

	rl := NewRateLimiter(backend, ratelimit.Rules{
		ratelimit.PerMinute(ratelimit.GroupRedirect, 2),
		ratelimit.PerSecond(ratelimit.GroupAPI, 1),
		ratelimit.Unlimited(ratelimit.GroupAdmin),
	}, adminIPs, tokens)

	r := gin.New()
	r.GET("/public", rl.Limit(ratelimit.GroupRedirect), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api", rl.Limit(ratelimit.GroupAPI), func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestRateLimit_BlocksWithRetryAfter(t *testing.T) {
	r := newLimitedRouter(t, nil, nil)
	ip := map[string]string{"X-Forwarded-For": "203.0.113.7"}

	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/public", ip).Code)
	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/public", ip).Code)

	w := perform(r, http.MethodGet, "/public", ip)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "30", w.Header().Get("Retry-After"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "RATE_LIMITED", body["error_code"])
	assert.EqualValues(t, 30, body["retry_after"])

	// Another client and another group are unaffected.
	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/public", map[string]string{"X-Forwarded-For": "203.0.113.8"}).Code)
	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/api", ip).Code)
}

func TestRateLimit_AdminIPBypass(t *testing.T) {
	r := newLimitedRouter(t, []string{"198.51.100.1"}, nil)
	ip := map[string]string{"X-Forwarded-For": "198.51.100.1"}

	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/public", ip).Code)
	}
}

func TestRateLimit_AdminTokenBypass(t *testing.T) {
	tokens := auth.NewTokenService("secret", time.Hour)
	token, err := tokens.Issue("ops")
	require.NoError(t, err)

	r := newLimitedRouter(t, nil, tokens)
	headers := map[string]string{"X-Forwarded-For": "203.0.113.9", "Authorization": "Bearer " + token}
	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/public", headers).Code)
	}

	headers["Authorization"] = "Bearer not-a-token"
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, perform(r, http.MethodGet, "/public", headers).Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

type failingLimiter struct{}

func (failingLimiter) IsAllowed(context.Context, ratelimit.Rule, string, string) (ratelimit.Decision, error) {
	return ratelimit.Decision{}, errors.New("no backend")
}

func TestRateLimit_FailsOpen(t *testing.T) {
	rl := NewRateLimiter(failingLimiter{}, ratelimit.Rules{ratelimit.PerMinute(ratelimit.GroupRedirect, 1)}, nil, nil)
	r := gin.New()
	r.GET("/", rl.Limit(ratelimit.GroupRedirect), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/", nil).Code)
}

func TestGetIP(t *testing.T) {
	tests := []struct {
		name    string
		trusted []string
		headers map[string]string
		want    string
	}{
		{"first forwarded address", []string{"192.0.2.1"}, map[string]string{"X-Forwarded-For": "203.0.113.1"}, "203.0.113.1"},
		{"invalid forwarded address", []string{"192.0.2.0/24"}, map[string]string{"X-Forwarded-For": "garbage", "X-Real-IP": "203.0.113.2"}, "203.0.113.2"},
		{"untrusted remote ignores headers", nil, map[string]string{"X-Forwarded-For": "203.0.113.1", "X-Real-IP": "203.0.113.2"}, "192.0.2.1"},
		{"remote address", nil, nil, "192.0.2.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			require.NoError(t, r.SetTrustedProxies(tt.trusted))
			r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetIP(c)) })

			w := perform(r, http.MethodGet, "/", tt.headers)
			assert.Equal(t, tt.want, w.Body.String())
		})
	}
}

func TestRateLimit_IgnoresForwardedFromUntrustedRemote(t *testing.T) {
	r := newLimitedRouter(t, []string{"10.0.0.1"}, nil)
	require.NoError(t, r.SetTrustedProxies(nil))

	// Claiming the admin IP does not lift the limit
	spoofed := map[string]string{"X-Forwarded-For": "10.0.0.1"}
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, perform(r, http.MethodGet, "/public", spoofed).Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// Nor does a fresh forwarded address on every request
	for i := 0; i < 3; i++ {
		h := map[string]string{"X-Forwarded-For": fmt.Sprintf("203.0.113.%d", i+1)}
		assert.Equal(t, http.StatusTooManyRequests, perform(r, http.MethodGet, "/public", h).Code)
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Logging())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	w := perform(r, http.MethodGet, "/", nil)
	id := w.Header().Get(RequestIDHeader)
	assert.Len(t, id, 36)
	assert.Equal(t, id, w.Body.String())

	w = perform(r, http.MethodGet, "/", map[string]string{RequestIDHeader: "abc-123"})
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Recovery())
	r.GET("/", func(*gin.Context) { panic("boom") })

	w := perform(r, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "boom")
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
}

func TestRequireAdmin(t *testing.T) {
	tokens := auth.NewTokenService("secret", time.Hour)
	token, err := tokens.Issue("ops")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/admin", RequireAdmin(tokens), func(c *gin.Context) { c.String(http.StatusOK, GetAdminSubject(c)) })

	assert.Equal(t, http.StatusUnauthorized, perform(r, http.MethodGet, "/admin", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, perform(r, http.MethodGet, "/admin", map[string]string{"Authorization": "Token " + token}).Code)
	assert.Equal(t, http.StatusUnauthorized, perform(r, http.MethodGet, "/admin", map[string]string{"Authorization": "Bearer nope"}).Code)

	w := perform(r, http.MethodGet, "/admin", map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ops", w.Body.String())
}

func TestRequireAdmin_Disabled(t *testing.T) {
	r := gin.New()
	r.GET("/admin", RequireAdmin(auth.NewTokenService("", time.Hour)), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusServiceUnavailable, perform(r, http.MethodGet, "/admin", nil).Code)
}
