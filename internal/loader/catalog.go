package loader

import (
	"context"
	"fmt"
	"strings"

	"github.com/avask-dev/pgdoc/pkg/pgdoc"
)

// supportedColumnTypes is the allow-list of declared SQL types a metadata
// column may have. Anything else (bytea, json, arrays, ...) cannot be bound
// into a flat metadata map and is rejected before the main query is built.
var supportedColumnTypes = map[string]bool{
	"smallint":                    true,
	"integer":                     true,
	"bigint":                      true,
	"numeric":                     true,
	"real":                        true,
	"double precision":            true,
	"text":                        true,
	"character varying":           true,
	"character":                   true,
	"date":                        true,
	"timestamp without time zone": true,
	"timestamp with time zone":    true,
}

// checkMetadataColumns fetches the declared type of every requested metadata
// column in one catalog round trip and rejects columns that do not exist or
// have unsupported types. The catalog mapping is transient; it is never
// persisted past this check.
func (l *DocumentLoader) checkMetadataColumns(ctx context.Context, src pgdoc.TableSource) error {
	rows, err := l.conn.Query(ctx, queryColumnTypes, src.Owner, src.Table)
	if err != nil {
		return fmt.Errorf("column catalog query failed for %s.%s: %w", src.Owner, src.Table, err)
	}
	defer rows.Close()

	columnTypes := make(map[string]string)
	for rows.Next() {
		var name, dataType string
		if err := rows.Scan(&name, &dataType); err != nil {
			return fmt.Errorf("failed to scan column catalog row: %w", err)
		}
		columnTypes[strings.ToLower(name)] = dataType
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("column catalog query failed for %s.%s: %w", src.Owner, src.Table, err)
	}

	if len(columnTypes) == 0 {
		return fmt.Errorf("%w for %s.%s", pgdoc.ErrCatalogLookup, src.Owner, src.Table)
	}

	for _, col := range src.MetadataColumns {
		dataType, ok := columnTypes[strings.ToLower(col)]
		if !ok {
			return fmt.Errorf("metadata column %q does not exist in %s.%s: %w",
				col, src.Owner, src.Table, pgdoc.ErrColumnNotFound)
		}
		if !supportedColumnTypes[dataType] {
			return fmt.Errorf("metadata column %q has type %q: %w",
				col, dataType, pgdoc.ErrUnsupportedColumnType)
		}
	}

	return nil
}
