package pgdoc_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/avask-dev/pgdoc/pkg/pgdoc"
)

func TestTableSource_Validate(t *testing.T) {
	tests := []struct {
		name        string
		source      pgdoc.TableSource
		wantError   bool
		wantMessage string
	}{
		{
			name: "valid source",
			source: pgdoc.TableSource{
				Owner:         "app",
				Table:         "documents",
				ContentColumn: "content",
			},
			wantError: false,
		},
		{
			name: "valid source with metadata columns and extractor",
			source: pgdoc.TableSource{
				Owner:           "app",
				Table:           "documents",
				ContentColumn:   "content",
				MetadataColumns: []string{"category", "pages", "author"},
				ExtractorFunc:   "my_extractor",
			},
			wantError: false,
		},
		{
			name: "missing owner",
			source: pgdoc.TableSource{
				Table:         "documents",
				ContentColumn: "content",
			},
			wantError:   true,
			wantMessage: "owner is required",
		},
		{
			name: "missing table",
			source: pgdoc.TableSource{
				Owner:         "app",
				ContentColumn: "content",
			},
			wantError:   true,
			wantMessage: "table name is required",
		},
		{
			name: "missing content column",
			source: pgdoc.TableSource{
				Owner: "app",
				Table: "documents",
			},
			wantError:   true,
			wantMessage: "content column is required",
		},
		{
			name: "unsafe table name",
			source: pgdoc.TableSource{
				Owner:         "app",
				Table:         "documents; DROP TABLE users",
				ContentColumn: "content",
			},
			wantError:   true,
			wantMessage: "Invalid table name",
		},
		{
			name: "unsafe owner name",
			source: pgdoc.TableSource{
				Owner:         "app\"",
				Table:         "documents",
				ContentColumn: "content",
			},
			wantError:   true,
			wantMessage: "Invalid owner name",
		},
		{
			name: "unsafe metadata column",
			source: pgdoc.TableSource{
				Owner:           "app",
				Table:           "documents",
				ContentColumn:   "content",
				MetadataColumns: []string{"ok_col", "bad-col"},
			},
			wantError:   true,
			wantMessage: "Invalid metadata column name",
		},
		{
			name: "too many metadata columns",
			source: pgdoc.TableSource{
				Owner:           "app",
				Table:           "documents",
				ContentColumn:   "content",
				MetadataColumns: []string{"a", "b", "c", "d"},
			},
			wantError:   true,
			wantMessage: "at most 3 metadata columns",
		},
		{
			name: "unsafe extractor function",
			source: pgdoc.TableSource{
				Owner:         "app",
				Table:         "documents",
				ContentColumn: "content",
				ExtractorFunc: "fn(); DROP",
			},
			wantError:   true,
			wantMessage: "Invalid extractor function name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.source.Validate()
			if tt.wantError {
				if err == nil {
					t.Fatal("Expected validation error, got nil")
				}
				if !errors.Is(err, pgdoc.ErrInvalidConfig) {
					t.Errorf("Expected ErrInvalidConfig, got %v", err)
				}
				if !strings.Contains(err.Error(), tt.wantMessage) {
					t.Errorf("Expected message containing %q, got %q", tt.wantMessage, err.Error())
				}
			} else if err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestTableSource_Validate_MultipleFailures(t *testing.T) {
	src := pgdoc.TableSource{Table: "bad!table"}

	err := src.Validate()
	if err == nil {
		t.Fatal("Expected validation error")
	}
	for _, want := range []string{"owner is required", "Invalid table name", "content column is required"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Expected joined error to contain %q, got %q", want, err.Error())
		}
	}
}

func TestFileSource_Validate(t *testing.T) {
	if err := (pgdoc.FileSource{Path: "doc.html"}).Validate(); err != nil {
		t.Errorf("Expected valid FileSource, got %v", err)
	}
	if err := (pgdoc.FileSource{}).Validate(); !errors.Is(err, pgdoc.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for empty path, got %v", err)
	}
}

func TestDirSource_Validate(t *testing.T) {
	if err := (pgdoc.DirSource{Path: "docs"}).Validate(); err != nil {
		t.Errorf("Expected valid DirSource, got %v", err)
	}
	if err := (pgdoc.DirSource{}).Validate(); !errors.Is(err, pgdoc.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for empty path, got %v", err)
	}
}

func TestIsSafeIdentifier(t *testing.T) {
	tests := []struct {
		s    string
		want bool
	}{
		{"documents", true},
		{"_private", true},
		{"Col9", true},
		{"", false},
		{"9col", false},
		{"bad-name", false},
		{"bad name", false},
		{"bad!", false},
		{"schema.table", false},
		{`"quoted"`, false},
	}

	for _, tt := range tests {
		t.Run(tt.s, func(t *testing.T) {
			if got := pgdoc.IsSafeIdentifier(tt.s); got != tt.want {
				t.Errorf("IsSafeIdentifier(%q) = %v, want %v", tt.s, got, tt.want)
			}
		})
	}
}
