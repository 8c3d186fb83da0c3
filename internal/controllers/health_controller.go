package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"shortly/internal/logger"
	"shortly/internal/ratelimit"
	"shortly/internal/resilience"
	"shortly/internal/scheduler"
	"shortly/internal/service"
)

const (
	statusHealthy   = "healthy"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"
	statusDisabled  = "disabled"
)

// Pinger probes a dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthDeps lists what the health endpoints report on. Everything except
// Database may be nil.
type HealthDeps struct {
	Version     string
	Environment string
	Database    Pinger
	Redis       Pinger
	Breaker     *resilience.CircuitBreaker
	RateLimit   interface{ Stats() ratelimit.BackendStats }
	Tracker     interface{ Stats() service.TrackerStats }
	Jobs        interface{ Status() []scheduler.JobStatus }
	Timeout     time.Duration
}

// ComponentHealth is the probe result of one dependency.
type ComponentHealth struct {
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status         string                     `json:"status"`
	Version        string                     `json:"version"`
	Environment    string                     `json:"environment"`
	Timestamp      time.Time                  `json:"timestamp"`
	Components     map[string]ComponentHealth `json:"components"`
	CircuitBreaker *resilience.BreakerStats   `json:"circuit_breaker,omitempty"`
	RateLimiter    *ratelimit.BackendStats    `json:"rate_limiter,omitempty"`
	ClickTracker   *service.TrackerStats      `json:"click_tracker,omitempty"`
	Jobs           []scheduler.JobStatus      `json:"jobs,omitempty"`
}

type HealthController struct {
	deps HealthDeps
}

func NewHealthController(deps HealthDeps) *HealthController {
	if deps.Timeout <= 0 {
		deps.Timeout = 2 * time.Second
	}
	return &HealthController{deps: deps}
}

// Health handles GET /health. It always answers 200; a failing dependency
// or an open circuit only degrades the reported status.
func (hc *HealthController) Health(c *gin.Context) {
	components := hc.probe(c.Request.Context())

	resp := HealthResponse{
		Status:      statusHealthy,
		Version:     hc.deps.Version,
		Environment: hc.deps.Environment,
		Timestamp:   time.Now().UTC(),
		Components:  components,
	}
	for _, comp := range components {
		if comp.Status == statusUnhealthy {
			resp.Status = statusDegraded
		}
	}
	if hc.deps.Breaker != nil {
		stats := hc.deps.Breaker.Stats()
		resp.CircuitBreaker = &stats
		if stats.State != resilience.StateClosed {
			resp.Status = statusDegraded
		}
	}
	if hc.deps.RateLimit != nil {
		stats := hc.deps.RateLimit.Stats()
		resp.RateLimiter = &stats
	}
	if hc.deps.Tracker != nil {
		stats := hc.deps.Tracker.Stats()
		resp.ClickTracker = &stats
	}
	if hc.deps.Jobs != nil {
		resp.Jobs = hc.deps.Jobs.Status()
	}

	c.JSON(http.StatusOK, resp)
}

// Ready handles GET /health/ready. The service is ready when the database
// answers and the circuit is not open.
func (hc *HealthController) Ready(c *gin.Context) {
	components := hc.probe(c.Request.Context())

	ready := components["database"].Status == statusHealthy
	if hc.deps.Breaker != nil && hc.deps.Breaker.State() == resilience.StateOpen {
		ready = false
	}

	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{
		"ready":      ready,
		"components": components,
	})
}

// Live handles GET /health/live
func (hc *HealthController) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"alive": true})
}

func (hc *HealthController) probe(ctx context.Context) map[string]ComponentHealth {
	var db, redis ComponentHealth

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		db = hc.check(gctx, "database", hc.deps.Database)
		return nil
	})
	g.Go(func() error {
		redis = hc.check(gctx, "redis", hc.deps.Redis)
		return nil
	})
	_ = g.Wait()

	return map[string]ComponentHealth{
		"database": db,
		"redis":    redis,
	}
}

// check pings one dependency. Failures are logged, never returned to the
// caller.
func (hc *HealthController) check(ctx context.Context, name string, p Pinger) ComponentHealth {
	if p == nil {
		return ComponentHealth{Status: statusDisabled}
	}

	ctx, cancel := context.WithTimeout(ctx, hc.deps.Timeout)
	defer cancel()

	start := time.Now()
	if err := p.Ping(ctx); err != nil {
		logger.Warn().Err(err).Str("component", name).Msg("health check failed")
		return ComponentHealth{Status: statusUnhealthy}
	}
	return ComponentHealth{Status: statusHealthy, LatencyMS: time.Since(start).Milliseconds()}
}
