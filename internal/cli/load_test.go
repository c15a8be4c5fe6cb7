package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/avask-dev/pgdoc/pkg/pgdoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveConnectionString_FlagWins(t *testing.T) {
	t.Setenv("PGDOC_CONNECTION_STRING", "postgresql://env@host/db")

	got, err := resolveConnectionString("postgresql://flag@host/db", "")
	require.NoError(t, err)
	assert.Equal(t, "postgresql://flag@host/db", got)
}

func TestResolveConnectionString_EnvFallback(t *testing.T) {
	t.Setenv("PGDOC_CONNECTION_STRING", "postgresql://env@host/db")
	t.Setenv("DATABASE_URL", "postgresql://url@host/db")

	got, err := resolveConnectionString("", "")
	require.NoError(t, err)
	assert.Equal(t, "postgresql://env@host/db", got)
}

func TestResolveConnectionString_DatabaseURLFallback(t *testing.T) {
	t.Setenv("PGDOC_CONNECTION_STRING", "")
	t.Setenv("DATABASE_URL", "postgresql://url@host/db")

	got, err := resolveConnectionString("", "")
	require.NoError(t, err)
	assert.Equal(t, "postgresql://url@host/db", got)
}

func TestResolveConnectionString_EnvFile(t *testing.T) {
	t.Setenv("PGDOC_CONNECTION_STRING", "")
	t.Setenv("DATABASE_URL", "")

	envFile := filepath.Join(t.TempDir(), "conn.env")
	require.NoError(t, os.WriteFile(envFile,
		[]byte("PGDOC_CONNECTION_STRING=postgresql://file@host/db\n"), 0o600))

	got, err := resolveConnectionString("", envFile)
	require.NoError(t, err)
	assert.Equal(t, "postgresql://file@host/db", got)
}

func TestResolveConnectionString_Missing(t *testing.T) {
	t.Setenv("PGDOC_CONNECTION_STRING", "")
	t.Setenv("DATABASE_URL", "")

	_, err := resolveConnectionString("", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, pgdoc.ErrInvalidConfig)
}

func TestRenderSummary(t *testing.T) {
	results := []loadResult{
		{
			name: "app.documents",
			docs: []pgdoc.Document{
				{Text: "body", Metadata: map[string]any{
					pgdoc.ObjectIDKey: "00ff00ff00ff00ff00ff00ff00ff00ff",
					pgdoc.TitleKey:    "Annual Summary",
				}},
			},
		},
		{name: "archive.reports", docs: nil},
	}

	out := renderSummary(results)
	for _, want := range []string{"app.documents", "1 documents", "Annual Summary", "archive.reports", "Total: 1 documents"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected summary to contain %q, got:\n%s", want, out)
		}
	}
}
