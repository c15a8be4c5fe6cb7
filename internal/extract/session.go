package extract

import (
	"context"
	"fmt"

	"github.com/avask-dev/pgdoc/pkg/pgdoc"
)

var _ Extractor = (*SessionExtractor)(nil)

// SessionExtractor submits content as a binary payload to the database-side
// extraction function, the same capability the table load path invokes on
// column references. The function name must already have passed the
// identifier-safety check; SessionExtractor splices it into query text.
type SessionExtractor struct {
	conn pgdoc.Querier
	fn   string
}

// NewSessionExtractor creates a database-side extractor running against the
// borrowed session conn. fn is the extraction function name; empty means
// pgdoc.DefaultExtractorFunc.
//
// Panics if conn is nil or fn fails the identifier-safety check. Both
// indicate programmer error: the loader validates descriptors before
// constructing extractors.
func NewSessionExtractor(conn pgdoc.Querier, fn string) *SessionExtractor {
	if conn == nil {
		panic("conn cannot be nil")
	}
	if fn == "" {
		fn = pgdoc.DefaultExtractorFunc
	}
	if !pgdoc.IsSafeIdentifier(fn) {
		panic(fmt.Sprintf("unsafe extractor function name %q", fn))
	}
	return &SessionExtractor{conn: conn, fn: fn}
}

// Extract runs one round trip producing both rendering flavors.
func (e *SessionExtractor) Extract(ctx context.Context, content []byte, filename string) (Result, error) {
	query := fmt.Sprintf(
		`SELECT %[1]s($1, $2) AS mdata, %[1]s($1, $3) AS plain`,
		e.fn,
	)

	var mdata, plain *string
	row := e.conn.QueryRow(ctx, query, content, MetadataOptions, PlainOptions)
	if err := row.Scan(&mdata, &plain); err != nil {
		return Result{}, fmt.Errorf("extraction query failed for %q: %w", filename, err)
	}

	var out Result
	if mdata != nil {
		out.MetadataText = *mdata
	}
	if plain != nil {
		out.PlainText = *plain
	}
	return out, nil
}
