package controllers

import (
	"github.com/gin-gonic/gin"

	"shortly/internal/auth"
	"shortly/internal/middleware"
	"shortly/internal/ratelimit"
)

// Handlers groups the controllers served by the router.
type Handlers struct {
	Shortener *ShortenerController
	Redirect  *RedirectController
	Stats     *StatsController
	Health    *HealthController
	Admin     *AdminController
	QRCode    *QRCodeController
	Auth      *AuthController
}

// RegisterRoutes mounts every route on router. A nil limiter disables rate
// limiting.
func RegisterRoutes(router *gin.Engine, h Handlers, limiter *middleware.RateLimiter, tokens *auth.TokenService) {
	limit := func(group string) gin.HandlerFunc {
		if limiter == nil {
			return func(c *gin.Context) { c.Next() }
		}
		return limiter.Limit(group)
	}

	// Health checks are never rate limited
	health := router.Group("/health")
	{
		health.GET("", h.Health.Health)
		health.GET("/ready", h.Health.Ready)
		health.GET("/live", h.Health.Live)
	}

	router.POST("/shorten", limit(ratelimit.GroupShorten), h.Shortener.CreateShortURL)
	router.POST("/auth/token", limit(ratelimit.GroupAuth), h.Auth.Login)

	urls := router.Group("/urls", limit(ratelimit.GroupAPI))
	{
		urls.GET("", h.Shortener.ListURLs)
		urls.GET("/paginated", h.Shortener.ListRecentURLs)
		urls.GET("/top/paginated", h.Shortener.ListTopURLs)
		urls.GET("/:short_code", h.Shortener.GetURL)
		urls.PATCH("/:short_code", h.Shortener.UpdateURL)
		urls.DELETE("/:short_code", h.Shortener.DeleteURL)
		urls.GET("/:short_code/stats", h.Stats.GetURLStats)
		urls.GET("/:short_code/clicks", h.Stats.GetClicks)
		urls.GET("/:short_code/qr", h.QRCode.GenerateQRCode)
	}
	router.GET("/stats", limit(ratelimit.GroupAPI), h.Stats.GetGlobalStats)

	admin := router.Group("/admin", middleware.RequireAdmin(tokens), limit(ratelimit.GroupAdmin))
	{
		admin.POST("/maintenance", h.Admin.RunMaintenance)
		admin.GET("/cleanup-stats", h.Admin.GetCleanupStats)
		admin.GET("/circuit-breaker", h.Admin.GetCircuitBreaker)
		admin.POST("/circuit-breaker/reset", h.Admin.ResetCircuitBreaker)
		admin.GET("/jobs", h.Admin.ListJobs)
		admin.POST("/jobs/:name/run", h.Admin.RunJob)
	}

	// Catch-all redirect, registered last
	router.GET("/:short_code", limit(ratelimit.GroupRedirect), h.Redirect.Redirect)
}
