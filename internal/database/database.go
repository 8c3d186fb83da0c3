package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/pressly/goose/v3"

	"shortly/internal/config"
	"shortly/internal/logger"
	"shortly/internal/resilience"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// NewConnection opens the connection pool and pings it under the startup
// retry policy. Exhausting the retries is fatal for the caller.
func NewConnection(ctx context.Context, databaseURL string, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	backoff := resilience.Backoff{
		InitialDelay: cfg.ConnectRetryInitialDelay,
		MaxDelay:     cfg.ConnectRetryMaxDelay,
		JitterFactor: cfg.ConnectRetryJitter,
		MaxAttempts:  cfg.ConnectRetryAttempts,
	}
	err = resilience.Retry(ctx, "database connect", backoff, func(ctx context.Context) error {
		return db.PingContext(ctx)
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Info().
		Int("max_open_conns", cfg.MaxOpenConns).
		Int("max_idle_conns", cfg.MaxIdleConns).
		Msg("connected to database")
	return db, nil
}

// RunMigrations applies the embedded goose migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrationsFS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info().Msg("database migrations completed")
	return nil
}
