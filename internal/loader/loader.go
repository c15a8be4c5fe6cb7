// Package loader implements document loading from a borrowed PostgreSQL
// session.
//
// A DocumentLoader turns table rows (or single files) into Document records:
// it issues the extraction query, feeds HTML-shaped results through the
// metadata parser, and stamps every document with a generated object id.
// The database connection is borrowed, never owned: the loader opens no
// connections, closes none, and manages no transactions.
package loader

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/avask-dev/pgdoc/internal/extract"
	"github.com/avask-dev/pgdoc/internal/htmlmeta"
	"github.com/avask-dev/pgdoc/internal/oid"
	"github.com/avask-dev/pgdoc/pkg/pgdoc"
)

// seedSeparator joins the components of an object-id seed.
const seedSeparator = "$"

// DocumentLoader loads documents from one source descriptor.
// Each Load invocation owns its own accumulator; instances hold no shared
// mutable state beyond the borrowed connection.
type DocumentLoader struct {
	conn      pgdoc.Querier
	source    pgdoc.Source
	extractor extract.Extractor
	generator *oid.Generator
	logger    pgdoc.Logger
}

// New creates a DocumentLoader over a borrowed open session.
//
// extractor handles the file loading path; nil selects the database-side
// extraction function (the same capability the table path uses on column
// references).
//
// Panics if conn, source, or logger is nil. This is intentional fail-fast
// behavior: a nil dependency indicates incorrect injection setup.
func New(conn pgdoc.Querier, source pgdoc.Source, extractor extract.Extractor, logger pgdoc.Logger) *DocumentLoader {
	if conn == nil {
		panic("conn cannot be nil")
	}
	if source == nil {
		panic("source cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if extractor == nil {
		fn := pgdoc.DefaultExtractorFunc
		if table, ok := source.(pgdoc.TableSource); ok && table.ExtractorFunc != "" && pgdoc.IsSafeIdentifier(table.ExtractorFunc) {
			fn = table.ExtractorFunc
		}
		extractor = extract.NewSessionExtractor(conn, fn)
	}

	return &DocumentLoader{
		conn:      conn,
		source:    source,
		extractor: extractor,
		generator: oid.NewGenerator(),
		logger:    logger,
	}
}

// Load produces the document sequence for the loader's source descriptor.
//
// Only the table variant is dispatched. File and directory variants return
// an empty sequence: single files go through LoadFile explicitly, and
// recursive directory loading is not implemented.
func (l *DocumentLoader) Load(ctx context.Context) ([]pgdoc.Document, error) {
	switch src := l.source.(type) {
	case pgdoc.TableSource:
		return l.loadTable(ctx, src)
	case pgdoc.FileSource, pgdoc.DirSource:
		l.logger.Verbose("Source %T is not dispatched by Load; returning no documents", src)
		return []pgdoc.Document{}, nil
	default:
		return nil, fmt.Errorf("unsupported source type %T: %w", src, pgdoc.ErrInvalidConfig)
	}
}

// loadTable is the table ingestion path: validate fail-fast, check the
// column catalog if extra metadata columns were requested, then run the one
// extraction query and assemble a Document per row.
func (l *DocumentLoader) loadTable(ctx context.Context, src pgdoc.TableSource) ([]pgdoc.Document, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}

	if len(src.MetadataColumns) > 0 {
		if err := l.checkMetadataColumns(ctx, src); err != nil {
			return nil, err
		}
	}

	identity, err := l.sessionIdentity(ctx)
	if err != nil {
		return nil, err
	}

	query := buildDocumentQuery(src)
	l.logger.Verbose("Loading documents from %s.%s", src.Owner, src.Table)

	rows, err := l.conn.Query(ctx, query, extract.MetadataOptions, extract.PlainOptions)
	if err != nil {
		return nil, fmt.Errorf("document query failed for %s.%s: %w", src.Owner, src.Table, err)
	}
	defer rows.Close()

	docs := make([]pgdoc.Document, 0)
	for rows.Next() {
		doc, err := l.scanDocument(rows, src, identity)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("document query failed for %s.%s: %w", src.Owner, src.Table, err)
	}

	l.logger.Info("Loaded %d documents from %s.%s", len(docs), src.Owner, src.Table)
	return docs, nil
}

// scanDocument assembles one Document from the current row.
func (l *DocumentLoader) scanDocument(row pgdoc.Row, src pgdoc.TableSource, identity string) (pgdoc.Document, error) {
	var mdata, plain *string
	var rowID string
	extras := make([]any, len(src.MetadataColumns))

	dests := make([]any, 0, 3+len(extras))
	dests = append(dests, &mdata, &plain, &rowID)
	for i := range extras {
		dests = append(dests, &extras[i])
	}
	if err := row.Scan(dests...); err != nil {
		return pgdoc.Document{}, fmt.Errorf("failed to scan document row: %w", err)
	}

	metadata := l.parseHTMLMetadata(mdata)

	seed := strings.Join([]string{identity, src.Owner, src.Table, src.ContentColumn, rowID}, seedSeparator)
	metadata[pgdoc.ObjectIDKey] = l.generator.Generate(seed)
	metadata[pgdoc.RowIDKey] = rowID
	for i, col := range src.MetadataColumns {
		metadata[col] = extras[i]
	}

	text := ""
	if plain != nil {
		text = *plain
	}
	return pgdoc.Document{Text: text, Metadata: metadata}, nil
}

// LoadFile reads one file, submits its bytes to the content-to-text
// extraction capability, and assembles a Document tagged with the object id
// and the file path.
//
// Unlike the table path, failures here degrade rather than abort: any read
// or extraction error is logged and LoadFile returns nil so a surrounding
// batch keeps going.
func (l *DocumentLoader) LoadFile(ctx context.Context, path string) *pgdoc.Document {
	content, err := os.ReadFile(path)
	if err != nil {
		l.logger.Error("skipping file %s: %v", path, err)
		return nil
	}

	res, err := l.extractor.Extract(ctx, content, path)
	if err != nil {
		l.logger.Error("skipping file %s: extraction failed: %v", path, err)
		return nil
	}

	identity, err := l.sessionIdentity(ctx)
	if err != nil {
		l.logger.Error("skipping file %s: %v", path, err)
		return nil
	}

	var mdataPtr *string
	if res.MetadataText != "" {
		mdataPtr = &res.MetadataText
	}
	metadata := l.parseHTMLMetadata(mdataPtr)

	seed := identity + seedSeparator + path
	metadata[pgdoc.ObjectIDKey] = l.generator.Generate(seed)
	metadata[pgdoc.FileKey] = path

	return &pgdoc.Document{Text: res.PlainText, Metadata: metadata}
}

// LoadFiles runs LoadFile over paths, skipping failed files.
func (l *DocumentLoader) LoadFiles(ctx context.Context, paths []string) []pgdoc.Document {
	docs := make([]pgdoc.Document, 0, len(paths))
	for _, path := range paths {
		if doc := l.LoadFile(ctx, path); doc != nil {
			docs = append(docs, *doc)
		}
	}
	return docs
}

// sessionIdentity fetches the session identity used as object-id salt.
func (l *DocumentLoader) sessionIdentity(ctx context.Context) (string, error) {
	var identity string
	if err := l.conn.QueryRow(ctx, querySessionIdentity).Scan(&identity); err != nil {
		return "", fmt.Errorf("failed to fetch session identity: %w", err)
	}
	return identity, nil
}

// parseHTMLMetadata runs mdata through the streaming HTML metadata parser
// when it carries the HTML signature the extraction capability emits.
// A nil or non-HTML rendering yields an empty map.
func (l *DocumentLoader) parseHTMLMetadata(mdata *string) map[string]any {
	metadata := make(map[string]any)
	if mdata == nil || !looksLikeHTML(*mdata) {
		return metadata
	}

	parser := htmlmeta.NewParser()
	parser.Parse(*mdata)
	for k, v := range parser.Metadata() {
		metadata[k] = v
	}
	return metadata
}

// looksLikeHTML reports whether the metadata-flavored extraction carries the
// HTML signature. Case matches what the extraction capability emits.
func looksLikeHTML(s string) bool {
	return strings.HasPrefix(s, "<!DOCTYPE html") || strings.HasPrefix(s, "<HTML>")
}

// buildDocumentQuery splices the validated identifiers into the per-row
// extraction query. Callers must have run TableSource.Validate first.
func buildDocumentQuery(src pgdoc.TableSource) string {
	fn := src.ExtractorFunc
	if fn == "" {
		fn = pgdoc.DefaultExtractorFunc
	}

	var extraCols strings.Builder
	for _, col := range src.MetadataColumns {
		extraCols.WriteString(",\n\t\t       t.")
		extraCols.WriteString(col)
	}

	return fmt.Sprintf(queryDocumentsTemplate,
		src.Owner, src.Table, src.ContentColumn, fn, extraCols.String())
}
