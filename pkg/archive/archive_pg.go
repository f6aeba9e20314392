// Package archive persists simulation results to PostgreSQL for teams
// that keep a shared run history. The archive is optional; the local
// journal covers single-machine use.
package archive

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGArchive stores run results in PostgreSQL.
type PGArchive struct {
	pool *pgxpool.Pool
}

// NewPGArchive connects to the database, verifies connectivity and
// creates the schema if needed.
func NewPGArchive(ctx context.Context, databaseURL string) (*PGArchive, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Connection pooling configuration
	config.MaxConns = 25
	config.MinConns = 5
	config.MaxConnLifetime = 5 * time.Minute
	config.MaxConnIdleTime = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	a := &PGArchive{pool: pool}

	if err := a.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return a, nil
}

// Ping checks database connectivity.
func (a *PGArchive) Ping(ctx context.Context) error {
	return a.pool.Ping(ctx)
}

// Close closes the database connection pool.
func (a *PGArchive) Close() error {
	a.pool.Close()
	return nil
}
