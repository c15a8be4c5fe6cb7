// Package testing provides database helpers for integration tests.
package testing

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avask-dev/pgdoc/internal/testinfra"
)

var (
	testContainerOnce sync.Once
	testContainerConn string
	testContainerErr  error
)

func getOrStartTestContainer() (string, error) {
	testContainerOnce.Do(func() {
		ctx := context.Background()
		container, err := testinfra.StartSimplePostgres(ctx)
		if err != nil {
			testContainerErr = err
			return
		}
		testContainerConn = container.ConnString
	})
	return testContainerConn, testContainerErr
}

// GetTestConnectionString returns the test database connection string.
// Priority: PGDOC_TEST_CONN env var > auto-started testcontainer > skip test.
func GetTestConnectionString(t *testing.T) string {
	t.Helper()

	if connString := os.Getenv("PGDOC_TEST_CONN"); connString != "" {
		return connString
	}

	connString, err := getOrStartTestContainer()
	if err != nil {
		t.Skipf("PGDOC_TEST_CONN not set and Docker unavailable: %v", err)
	}
	return connString
}

// SkipIfShort skips the test if running in short mode (-short flag).
func SkipIfShort(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
}

// RequireDatabase combines SkipIfShort and GetTestConnectionString for convenience.
// Returns the test connection string if available, otherwise skips the test.
func RequireDatabase(t *testing.T) string {
	t.Helper()

	SkipIfShort(t)
	return GetTestConnectionString(t)
}

// GetTestPool creates a connection pool for testing.
// The pool is automatically closed when the test completes.
func GetTestPool(t *testing.T, connString string) *pgxpool.Pool {
	t.Helper()

	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		t.Fatalf("Failed to create connection pool: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
	})

	return pool
}

// CreateDocumentsSchema creates a uniquely named scratch schema holding a
// documents table, and installs a doc_to_text extraction function standing
// in for the external content-to-text capability. The schema is dropped when
// the test completes.
//
// Returns the schema name, which doubles as the table owner in source
// descriptors.
func CreateDocumentsSchema(t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()

	ctx := context.Background()
	schema := "t_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	statements := []string{
		fmt.Sprintf("CREATE SCHEMA %s", schema),
		fmt.Sprintf(`CREATE TABLE %s.documents (
			id serial PRIMARY KEY,
			content text,
			category varchar(64),
			pages integer,
			payload bytea
		)`, schema),
		// Test stand-in for the extraction capability: metadata flavor
		// returns the raw content, plain flavor strips tags.
		`CREATE OR REPLACE FUNCTION doc_to_text(content text, options text)
		RETURNS text AS $$
		BEGIN
			IF content IS NULL THEN
				RETURN NULL;
			END IF;
			IF options::jsonb->>'plaintext' = 'false' THEN
				RETURN content;
			END IF;
			RETURN trim(regexp_replace(content, '<[^>]*>', '', 'g'));
		END;
		$$ LANGUAGE plpgsql`,
		`CREATE OR REPLACE FUNCTION doc_to_text(content bytea, options text)
		RETURNS text AS $$
		BEGIN
			RETURN doc_to_text(convert_from(content, 'UTF8'), options);
		END;
		$$ LANGUAGE plpgsql`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			t.Fatalf("Failed to prepare documents schema: %v", err)
		}
	}

	t.Cleanup(func() {
		if _, err := pool.Exec(ctx, fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", schema)); err != nil {
			t.Logf("Warning: failed to drop schema %s: %v", schema, err)
		}
	})

	return schema
}

// InsertDocument inserts one row into the scratch documents table.
func InsertDocument(t *testing.T, pool *pgxpool.Pool, schema string, content *string, category string, pages int) {
	t.Helper()

	query := fmt.Sprintf(
		"INSERT INTO %s.documents (content, category, pages) VALUES ($1, $2, $3)", schema)
	if _, err := pool.Exec(context.Background(), query, content, category, pages); err != nil {
		t.Fatalf("Failed to insert document: %v", err)
	}
}
