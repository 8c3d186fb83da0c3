package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shortly/internal/logger"
	"shortly/internal/middleware"
	"shortly/internal/models"
	"shortly/internal/resilience"
	"shortly/internal/scheduler"
	"shortly/internal/service"
)

// JobRunner lists and triggers scheduled jobs.
type JobRunner interface {
	Trigger(ctx context.Context, name string) (bool, error)
	Status() []scheduler.JobStatus
}

type AdminController struct {
	cleanup service.CleanupService
	breaker *resilience.CircuitBreaker
	jobs    JobRunner
}

func NewAdminController(cleanup service.CleanupService, breaker *resilience.CircuitBreaker, jobs JobRunner) *AdminController {
	return &AdminController{
		cleanup: cleanup,
		breaker: breaker,
		jobs:    jobs,
	}
}

// RunMaintenance handles POST /admin/maintenance. analytics_days in the
// body overrides the configured retention for this run.
func (ac *AdminController) RunMaintenance(c *gin.Context) {
	var req models.MaintenanceRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
	}

	logger.Info().Str("admin", middleware.GetAdminSubject(c)).Msg("manual maintenance requested")

	ctx := c.Request.Context()
	if req.AnalyticsDays == nil {
		result, err := ac.cleanup.RunMaintenance(ctx)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
		return
	}

	start := time.Now()
	result := &service.MaintenanceResult{}
	var err error
	if result.ExpiredCleanup, err = ac.cleanup.CleanupExpiredURLs(ctx); err != nil {
		respondError(c, err)
		return
	}
	if result.AnalyticsPruning, err = ac.cleanup.PruneOldAnalytics(ctx, *req.AnalyticsDays); err != nil {
		respondError(c, err)
		return
	}
	result.TotalExecutionTime = time.Since(start)
	result.Timestamp = time.Now().UTC()
	c.JSON(http.StatusOK, result)
}

// GetCleanupStats handles GET /admin/cleanup-stats
func (ac *AdminController) GetCleanupStats(c *gin.Context) {
	stats, err := ac.cleanup.GetCleanupStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetCircuitBreaker handles GET /admin/circuit-breaker
func (ac *AdminController) GetCircuitBreaker(c *gin.Context) {
	if ac.breaker == nil {
		c.JSON(http.StatusOK, gin.H{"enabled": false})
		return
	}
	c.JSON(http.StatusOK, ac.breaker.Stats())
}

// ResetCircuitBreaker handles POST /admin/circuit-breaker/reset
func (ac *AdminController) ResetCircuitBreaker(c *gin.Context) {
	if ac.breaker == nil {
		c.JSON(http.StatusOK, gin.H{"enabled": false})
		return
	}
	ac.breaker.Reset()
	logger.Warn().Str("admin", middleware.GetAdminSubject(c)).Msg("circuit breaker reset")
	c.JSON(http.StatusOK, ac.breaker.Stats())
}

// ListJobs handles GET /admin/jobs
func (ac *AdminController) ListJobs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"jobs": ac.jobs.Status()})
}

// RunJob handles POST /admin/jobs/:name/run. A job that is already running
// is not started twice.
func (ac *AdminController) RunJob(c *gin.Context) {
	name := c.Param("name")
	started, err := ac.jobs.Trigger(c.Request.Context(), name)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: err.Error(), ErrorCode: string(service.KindNotFound)})
		return
	}
	if !started {
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: "job " + name + " is already running", ErrorCode: string(service.KindConflict)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": name, "started": true})
}
