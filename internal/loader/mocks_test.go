package loader

import (
	"context"
	"fmt"
	"strings"

	"github.com/avask-dev/pgdoc/internal/extract"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeConn scripts query results for loader tests. It records every SQL
// statement it receives so tests can assert that validation failures reject
// before any query executes.
type fakeConn struct {
	identity    string
	identityErr error
	catalog     [][]any
	docs        [][]any
	docsErr     error
	queries     []string
}

func (c *fakeConn) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	c.queries = append(c.queries, sql)
	if strings.Contains(sql, "information_schema") {
		return &fakeRows{rows: c.catalog}, nil
	}
	if c.docsErr != nil {
		return nil, c.docsErr
	}
	return &fakeRows{rows: c.docs}, nil
}

func (c *fakeConn) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	c.queries = append(c.queries, sql)
	identity := c.identity
	if identity == "" {
		identity = "scott"
	}
	return &fakeRow{vals: []any{identity}, err: c.identityErr}
}

type fakeRow struct {
	vals []any
	err  error
}

func (r *fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		if err := assignValue(d, r.vals[i]); err != nil {
			return err
		}
	}
	return nil
}

// fakeRows implements pgx.Rows over scripted row values.
type fakeRows struct {
	rows    [][]any
	idx     int
	scanErr error
	rowsErr error
	closed  bool
}

func (r *fakeRows) Close()                                       { r.closed = true }
func (r *fakeRows) Err() error                                   { return r.rowsErr }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.idx < len(r.rows) {
		r.idx++
		return true
	}
	return false
}

func (r *fakeRows) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	row := r.rows[r.idx-1]
	if len(dest) != len(row) {
		return fmt.Errorf("scan arity mismatch: %d destinations, %d values", len(dest), len(row))
	}
	for i, d := range dest {
		if err := assignValue(d, row[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeRows) Values() ([]any, error) {
	return r.rows[r.idx-1], nil
}

func assignValue(dest, src any) error {
	switch d := dest.(type) {
	case **string:
		if src == nil {
			*d = nil
		} else {
			s := src.(string)
			*d = &s
		}
	case *string:
		*d = src.(string)
	case *any:
		*d = src
	default:
		return fmt.Errorf("unsupported scan destination %T", dest)
	}
	return nil
}

// fakeExtractor scripts file extraction results.
type fakeExtractor struct {
	res extract.Result
	err error
}

func (e *fakeExtractor) Extract(_ context.Context, _ []byte, _ string) (extract.Result, error) {
	return e.res, e.err
}
