package loader_test

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avask-dev/pgdoc/internal/loader"
	"github.com/avask-dev/pgdoc/internal/logging"
	testhelpers "github.com/avask-dev/pgdoc/internal/testing"
	"github.com/avask-dev/pgdoc/pkg/pgdoc"
)

const integrationHTML = `<!DOCTYPE html><html><head>` +
	`<title>Quarterly Report</title>` +
	`<meta name="author" content="d.okafor">` +
	`</head><body><p>Revenue grew.</p></body></html>`

var objectIDPattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

func TestIntegration_LoadTable(t *testing.T) {
	connString := testhelpers.RequireDatabase(t)
	pool := testhelpers.GetTestPool(t, connString)
	schema := testhelpers.CreateDocumentsSchema(t, pool)

	html := integrationHTML
	plain := "Just plain words, no markup."
	testhelpers.InsertDocument(t, pool, schema, &html, "finance", 12)
	testhelpers.InsertDocument(t, pool, schema, &plain, "memo", 1)
	testhelpers.InsertDocument(t, pool, schema, nil, "empty", 0)

	src := pgdoc.TableSource{
		Owner:           schema,
		Table:           "documents",
		ContentColumn:   "content",
		MetadataColumns: []string{"category", "pages"},
	}
	dl := loader.New(pool, src, nil, logging.NewNullLogger())

	docs, err := dl.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 3)

	byCategory := make(map[string]pgdoc.Document, len(docs))
	for _, doc := range docs {
		cat, ok := doc.Metadata["category"].(string)
		require.True(t, ok, "category metadata missing: %v", doc.Metadata)
		byCategory[cat] = doc
	}

	htmlDoc := byCategory["finance"]
	assert.Equal(t, "Quarterly Report", htmlDoc.Metadata[pgdoc.TitleKey])
	assert.Equal(t, "d.okafor", htmlDoc.Metadata["author"])
	assert.Contains(t, htmlDoc.Text, "Revenue grew.")
	assert.NotContains(t, htmlDoc.Text, "<p>")

	plainDoc := byCategory["memo"]
	assert.Equal(t, plain, plainDoc.Text)
	assert.NotContains(t, plainDoc.Metadata, pgdoc.TitleKey)

	nullDoc := byCategory["empty"]
	assert.Equal(t, "", nullDoc.Text)

	seen := make(map[string]bool)
	for _, doc := range docs {
		id, ok := doc.Metadata[pgdoc.ObjectIDKey].(string)
		require.True(t, ok)
		assert.Regexp(t, objectIDPattern, id)
		assert.False(t, seen[id], "duplicate object id %s", id)
		seen[id] = true

		rowID, ok := doc.Metadata[pgdoc.RowIDKey].(string)
		require.True(t, ok)
		assert.NotEmpty(t, rowID)
	}
}

func TestIntegration_LoadTable_UnknownMetadataColumn(t *testing.T) {
	connString := testhelpers.RequireDatabase(t)
	pool := testhelpers.GetTestPool(t, connString)
	schema := testhelpers.CreateDocumentsSchema(t, pool)

	src := pgdoc.TableSource{
		Owner:           schema,
		Table:           "documents",
		ContentColumn:   "content",
		MetadataColumns: []string{"no_such_column"},
	}
	dl := loader.New(pool, src, nil, logging.NewNullLogger())

	_, err := dl.Load(context.Background())
	require.ErrorIs(t, err, pgdoc.ErrColumnNotFound)
}

func TestIntegration_LoadTable_UnsupportedMetadataColumnType(t *testing.T) {
	connString := testhelpers.RequireDatabase(t)
	pool := testhelpers.GetTestPool(t, connString)
	schema := testhelpers.CreateDocumentsSchema(t, pool)

	src := pgdoc.TableSource{
		Owner:           schema,
		Table:           "documents",
		ContentColumn:   "content",
		MetadataColumns: []string{"payload"},
	}
	dl := loader.New(pool, src, nil, logging.NewNullLogger())

	_, err := dl.Load(context.Background())
	require.ErrorIs(t, err, pgdoc.ErrUnsupportedColumnType)
}

func TestIntegration_LoadFile_SessionExtractor(t *testing.T) {
	connString := testhelpers.RequireDatabase(t)
	pool := testhelpers.GetTestPool(t, connString)
	_ = testhelpers.CreateDocumentsSchema(t, pool)

	dir := t.TempDir()
	path := filepath.Join(dir, "report.html")
	require.NoError(t, os.WriteFile(path, []byte(integrationHTML), 0o644))

	src := pgdoc.FileSource{Path: path}
	dl := loader.New(pool, src, nil, logging.NewNullLogger())

	doc := dl.LoadFile(context.Background(), path)
	require.NotNil(t, doc)
	assert.Equal(t, "Quarterly Report", doc.Metadata[pgdoc.TitleKey])
	assert.Equal(t, "d.okafor", doc.Metadata["author"])
	assert.Equal(t, path, doc.Metadata[pgdoc.FileKey])
	assert.Contains(t, doc.Text, "Revenue grew.")

	id, ok := doc.Metadata[pgdoc.ObjectIDKey].(string)
	require.True(t, ok)
	assert.Regexp(t, objectIDPattern, id)
}
