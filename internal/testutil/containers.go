// Package testutil starts the backing services used by integration tests.
//
// Postgres runs in a testcontainers container and is skipped when no
// container provider is available. Redis is served in-process by miniredis.
package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"shortly/internal/database"
)

// Postgres is a migrated database running in a container.
type Postgres struct {
	DB    *sql.DB
	Store *database.Store
	DSN   string
}

// SetupPostgres starts postgres, applies the migrations and registers
// cleanup. The test is skipped in -short mode or without Docker.
func SetupPostgres(t *testing.T) *Postgres {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("shortly"),
		tcpostgres.WithUsername("shortly"),
		tcpostgres.WithPassword("shortly"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.PingContext(ctx))

	require.NoError(t, database.RunMigrations(ctx, db))

	return &Postgres{DB: db, Store: database.NewStore(db, nil), DSN: dsn}
}

// Truncate empties every table between tests sharing one container.
func (p *Postgres) Truncate(t testing.TB) {
	t.Helper()
	_, err := p.DB.Exec("TRUNCATE TABLE click_events, short_urls RESTART IDENTITY CASCADE")
	require.NoError(t, err)
}

// SetupRedis starts an in-process redis server and a client for it.
func SetupRedis(t testing.TB) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}
