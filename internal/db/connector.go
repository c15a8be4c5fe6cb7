// Package db builds connection pools for the CLI. The loader core never
// opens connections itself; it borrows a live session from here (or from
// whatever the embedding application provides).
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/avask-dev/pgdoc/internal/retry"
	"github.com/avask-dev/pgdoc/pkg/pgdoc"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Connection pool configuration constants
const (
	// DefaultMaxConns limits concurrent connections. A load run issues at
	// most two sequential round trips, so the pool stays small.
	DefaultMaxConns = 5

	// DefaultMinConns maintains at least one connection in the pool.
	DefaultMinConns = 1

	// DefaultMaxConnIdleTime keeps connections alive across a batch of
	// loads to avoid reconnection overhead.
	DefaultMaxConnIdleTime = 30 * time.Minute

	// DefaultConnectRetries bounds the transient-failure retries of the
	// initial ping.
	DefaultConnectRetries = 3
)

// Connect establishes a connection pool from a PostgreSQL connection string
// and verifies it with a ping. Transient failures (server still starting,
// connection refused) are retried with exponential backoff. The caller owns
// the returned pool and must Close it.
func Connect(ctx context.Context, connString string, logger pgdoc.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	poolConfig.MaxConns = DefaultMaxConns
	poolConfig.MinConns = DefaultMinConns
	poolConfig.MaxConnIdleTime = DefaultMaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, wrapConnectionError(err)
	}

	executor := retry.NewExecutor(retry.NewConnectClassifier(), retry.NewExponentialBackoff(DefaultConnectRetries)).
		WithOnRetry(func(attempt int, err error, delay time.Duration) {
			logger.Verbose("Connection attempt %d failed (%v); retrying in %v", attempt+1, err, delay)
		})

	if err := executor.Execute(ctx, pool.Ping); err != nil {
		pool.Close()
		return nil, wrapConnectionError(err)
	}

	return pool, nil
}

func wrapConnectionError(err error) error {
	return fmt.Errorf("%w: %v", pgdoc.ErrConnectionFailed, err)
}
