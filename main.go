package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"shortly/internal/auth"
	"shortly/internal/cache"
	"shortly/internal/config"
	"shortly/internal/controllers"
	"shortly/internal/database"
	"shortly/internal/logger"
	"shortly/internal/middleware"
	"shortly/internal/ratelimit"
	"shortly/internal/repository"
	"shortly/internal/resilience"
	"shortly/internal/scheduler"
	"shortly/internal/service"
	"shortly/internal/shortcode"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

const shutdownTimeout = 30 * time.Second

func main() {
	// Load configuration
	cfg := config.Load()
	logger.Init(cfg.Environment, cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to database, retrying with backoff
	db, err := database.NewConnection(ctx, cfg.DatabaseURL, cfg.DB)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Run database migrations
	if err := database.RunMigrations(ctx, db); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	var breaker *resilience.CircuitBreaker
	if cfg.DB.BreakerEnabled {
		breaker = resilience.NewCircuitBreaker(resilience.BreakerSettings{
			FailureThreshold: cfg.DB.BreakerFailureThreshold,
			SuccessThreshold: cfg.DB.BreakerSuccessThreshold,
			RecoveryTime:     cfg.DB.BreakerRecoveryTime,
			Timeout:          cfg.DB.BreakerTimeout,
		}, resilience.WithFailurePredicate(repository.CountsAsFailure))
	}
	store := database.NewStore(db, breaker)

	// Redis is optional: without it the cache is off and rate limits are
	// counted in memory
	var redisClient *redis.Client
	if cfg.RedisURL != "" && (cfg.Cache.Enabled || cfg.RateLimit.Enabled) {
		redisClient, err = cache.NewRedisClient(ctx, cfg.RedisURL, resilience.Backoff{
			InitialDelay: 500 * time.Millisecond,
			MaxDelay:     5 * time.Second,
			JitterFactor: cfg.DB.ConnectRetryJitter,
			MaxAttempts:  3,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable at startup, continuing degraded")
		}
		defer redisClient.Close()
	}

	var redirectCache cache.RedirectCache
	if redisClient != nil && cfg.Cache.Enabled {
		redirectCache = cache.NewRedisCache(redisClient)
	}

	// Initialize repositories
	urlRepo := repository.NewURLRepository()
	clickRepo := repository.NewClickRepository()

	// Initialize services
	urlService := service.NewURLService(store, urlRepo, shortcode.NewGenerator(cfg.ShortCode.Alphabet), redirectCache, service.URLConfig{
		CodeLength:            cfg.ShortCode.Length,
		CustomCodeMaxLength:   cfg.ShortCode.CustomCodeMaxLength,
		DefaultExpirationDays: cfg.DefaultExpirationDays,
		CacheTTL:              cfg.Cache.TTL,
	})
	statsService := service.NewStatsService(store, urlRepo, clickRepo)
	cleanupService := service.NewCleanupService(store, urlRepo, clickRepo, service.CleanupConfig{
		BatchSize:     cfg.Cleanup.BatchSize,
		AnalyticsDays: cfg.Cleanup.AnalyticsDays,
	})
	tracker := service.NewClickTracker(statsService, service.TrackerConfig{
		QueueSize:     cfg.Tracking.QueueSize,
		BatchSize:     cfg.Tracking.BatchSize,
		FlushInterval: cfg.Tracking.FlushInterval,
	})

	tokens := auth.NewTokenService(cfg.AdminTokenSecret, cfg.AdminTokenTTL)
	if !tokens.Enabled() {
		logger.Warn().Msg("SECRET_KEY not set, admin API disabled")
	}
	authService := service.NewAuthService(tokens, cfg.AdminUsername, cfg.AdminPasswordHash)

	// Maintenance job
	jobs := scheduler.New()
	err = jobs.Add(scheduler.Job{
		Name:       "maintenance",
		Interval:   cfg.Cleanup.Interval,
		Timeout:    cfg.Cleanup.Interval / 2,
		RunOnStart: cfg.Cleanup.StartOnStartup,
		Run: func(ctx context.Context) error {
			_, err := cleanupService.RunMaintenance(ctx)
			return err
		},
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to schedule maintenance")
	}
	jobs.Start(ctx)

	// Initialize rate limiting
	var rateLimiter *middleware.RateLimiter
	var limitBackend *ratelimit.ResilientBackend
	if cfg.RateLimit.Enabled {
		var remote ratelimit.RemoteBackend
		if redisClient != nil {
			remote = ratelimit.NewRedisBackend(redisClient)
		}
		limitBackend = ratelimit.NewResilientBackend(remote, nil, ratelimit.ResilientConfig{
			CheckInterval: cfg.RateLimit.RedisCheckInterval,
			MaxErrors:     cfg.RateLimit.RedisMaxErrors,
			OpTimeout:     cfg.RateLimit.RedisOpTimeout,
		})
		limitBackend.Init(ctx)
		limitBackend.Start()
		defer limitBackend.Close()

		rateLimiter = middleware.NewRateLimiter(limitBackend, ratelimit.Rules{
			ratelimit.PerMinute(ratelimit.GroupShorten, cfg.RateLimit.ShortenPerMinute),
			ratelimit.PerMinute(ratelimit.GroupRedirect, cfg.RateLimit.RedirectPerMinute),
			ratelimit.PerSecond(ratelimit.GroupAPI, cfg.RateLimit.APIPerSecond),
			ratelimit.PerMinute(ratelimit.GroupAuth, cfg.RateLimit.AuthPerMinute),
			ratelimit.Unlimited(ratelimit.GroupAdmin),
		}, cfg.RateLimit.AdminIPs, tokens)
	}

	healthDeps := controllers.HealthDeps{
		Version:     version,
		Environment: cfg.Environment,
		Database:    store,
		Breaker:     breaker,
		Tracker:     tracker,
		Jobs:        jobs,
	}
	if redisClient != nil {
		healthDeps.Redis = controllers.PingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}
	if limitBackend != nil {
		healthDeps.RateLimit = limitBackend
	}

	if err := controllers.RegisterValidators(); err != nil {
		logger.Fatal().Err(err).Msg("failed to register validators")
	}

	// Create a Gin router
	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Fatal().Err(err).Strs("trusted_proxies", cfg.TrustedProxies).Msg("invalid TRUSTED_PROXIES")
	}
	router.Use(middleware.RequestID(), middleware.Logging(), middleware.Recovery())
	controllers.RegisterRoutes(router, controllers.Handlers{
		Shortener: controllers.NewShortenerController(urlService, cfg.BaseURL),
		Redirect:  controllers.NewRedirectController(urlService, tracker),
		Stats:     controllers.NewStatsController(statsService),
		Health:    controllers.NewHealthController(healthDeps),
		Admin:     controllers.NewAdminController(cleanupService, breaker, jobs),
		QRCode:    controllers.NewQRCodeController(urlService, cfg.BaseURL),
		Auth:      controllers.NewAuthController(authService),
	}, rateLimiter, tokens)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Str("version", version).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Stop accepting requests before draining the background workers
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
	}
	if err := jobs.Stop(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("scheduler did not stop in time")
	}
	if err := tracker.Close(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("click tracker did not drain in time")
	}
	logger.Info().Msg("shutdown complete")
}
