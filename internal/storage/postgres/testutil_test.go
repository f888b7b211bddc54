package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL container for testing and applies the
// schema. Returns a cleanup function that must be called after tests
// complete.
func setupTestDB(t *testing.T) (*Pool, func()) {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	pool, err := NewPool(ctx, dsn)
	require.NoError(t, err, "failed to create pool")

	// Same schema the embedded migration applies; duplicated here to
	// avoid an import cycle with the migrations package.
	schema := `
		CREATE TABLE IF NOT EXISTS created_tokens (
			seq          BIGSERIAL PRIMARY KEY,
			id           TEXT NOT NULL,
			name         TEXT NOT NULL,
			symbol       TEXT NOT NULL,
			mint_address TEXT NOT NULL UNIQUE,
			image_uri    TEXT NOT NULL DEFAULT '',
			created_at   BIGINT NOT NULL,
			supply       TEXT NOT NULL DEFAULT '',
			decimals     TEXT NOT NULL DEFAULT ''
		)
	`
	_, err = pool.Exec(ctx, schema)
	require.NoError(t, err, "failed to apply schema")

	cleanup := func() {
		pool.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return pool, cleanup
}
