package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"shortly/internal/auth"
	"shortly/internal/logger"
	"shortly/internal/ratelimit"
)

// Limiter decides whether identity may make another request.
type Limiter interface {
	IsAllowed(ctx context.Context, rule ratelimit.Rule, identity, group string) (ratelimit.Decision, error)
}

// RateLimiter applies per-group rules to every client IP. Admin clients,
// recognised by IP or by a valid admin token, use the admin group.
type RateLimiter struct {
	limiter  Limiter
	rules    ratelimit.Rules
	adminIPs map[string]bool
	tokens   *auth.TokenService
}

// NewRateLimiter creates the middleware factory. tokens may be nil.
func NewRateLimiter(limiter Limiter, rules ratelimit.Rules, adminIPs []string, tokens *auth.TokenService) *RateLimiter {
	ips := make(map[string]bool, len(adminIPs))
	for _, ip := range adminIPs {
		ips[strings.TrimSpace(ip)] = true
	}
	return &RateLimiter{
		limiter:  limiter,
		rules:    rules,
		adminIPs: ips,
		tokens:   tokens,
	}
}

// Limit returns a Gin middleware that applies the rule of group.
func (rl *RateLimiter) Limit(group string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := GetIP(c)
		effective := group
		if rl.isAdmin(c, ip) {
			effective = ratelimit.GroupAdmin
		}

		decision, err := rl.limiter.IsAllowed(c.Request.Context(), rl.rules.For(effective), ip, effective)
		if err != nil {
			// Counting failed in every backend; let the request through.
			logger.Error().Err(err).Str("ip", ip).Msg("rate limit check failed")
			c.Next()
			return
		}

		if !decision.Allowed {
			retryAfter := int(math.Ceil(decision.RetryAfter.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			logger.Warn().
				Str("ip", ip).
				Str("path", c.Request.URL.Path).
				Str("method", c.Request.Method).
				Int("retry_after", retryAfter).
				Msg("rate limit exceeded")

			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded. Please try again in " + strconv.Itoa(retryAfter) + " seconds.",
				"error_code":  "RATE_LIMITED",
				"retry_after": retryAfter,
			})
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) isAdmin(c *gin.Context, ip string) bool {
	if rl.adminIPs[ip] {
		return true
	}
	if rl.tokens == nil || !rl.tokens.Enabled() {
		return false
	}
	token, ok := bearerToken(c)
	if !ok {
		return false
	}
	_, err := rl.tokens.Verify(token)
	return err == nil
}

// GetIP returns the client IP. Forwarded headers count only when the
// request comes from one of the engine's trusted proxies.
func GetIP(c *gin.Context) string {
	return c.ClientIP()
}
