package pgdoc

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Querier is the borrowed database session a DocumentLoader runs against.
// It is satisfied by *pgx.Conn, *pgxpool.Pool, and *pgxpool.Conn.
//
// The loader never opens or closes the underlying connection; lifecycle
// belongs to the caller. Row sets returned by Query are always fully drained
// and closed before the surrounding load call returns, so no server-side
// cursors leak even when a row fails mid-iteration.
type Querier interface {
	// Query executes a parameterized query and returns the row set.
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)

	// QueryRow executes a query that is expected to return at most one row.
	// Always returns a non-nil row; errors are deferred until Scan.
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Row is the minimal row-scanning surface the loader needs. Both pgx.Row and
// pgx.Rows satisfy it.
type Row interface {
	// Scan reads the values from the row into dest values.
	Scan(dest ...any) error
}
