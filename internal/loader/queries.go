package loader

// SQL query constants for document loading.
// Centralizing queries here keeps SQL separate from Go code; the document
// query is the one exception since validated identifiers must be spliced
// into its text (identifiers cannot be bound as parameters).

const (
	// querySessionIdentity fetches the current session identity. Used only
	// as salt material for object-id generation, never surfaced in output
	// metadata.
	querySessionIdentity = `SELECT current_user`

	// queryColumnTypes retrieves declared column types for a table from the
	// catalog. One round trip per load, and only when extra metadata
	// columns were requested.
	// Parameter $1: schema name, $2: table name
	queryColumnTypes = `
		SELECT column_name, data_type
		FROM information_schema.columns
		WHERE table_schema = lower($1) AND table_name = lower($2)
	`

	// queryDocumentsTemplate is the per-row extraction query. Each row
	// yields the metadata-flavored and plain renderings of the content
	// column via the database-side extraction function, the row identifier,
	// and any validated extra columns.
	//
	// Substitutions (all identifier-safety checked before splicing):
	//   %[1]s owner, %[2]s table, %[3]s content column,
	//   %[4]s extractor function, %[5]s extra-columns fragment
	// Parameters:
	//   $1 metadata-flavor options JSON, $2 plain-flavor options JSON
	queryDocumentsTemplate = `
		SELECT %[4]s(t.%[3]s, $1) AS mdata,
		       %[4]s(t.%[3]s, $2) AS text,
		       t.ctid::text AS rowid%[5]s
		FROM %[1]s.%[2]s t
	`
)
