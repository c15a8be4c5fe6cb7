package pgdoc

import (
	"errors"
	"fmt"
	"regexp"
)

// identifierRegex is the identifier-safety check applied to every name that
// is spliced into generated SQL text (owner, table, column, extractor
// function). SQL identifiers cannot be bound as query parameters, so this
// pattern is the sole defense against injection through source descriptors.
var identifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// IsSafeIdentifier reports whether s can be safely embedded in generated
// query text as a SQL identifier.
func IsSafeIdentifier(s string) bool {
	return identifierRegex.MatchString(s)
}

// Document is a single loaded document: extracted text plus a flat metadata
// map. Text may be empty but is never absent. After a table load the metadata
// always contains ObjectIDKey and RowIDKey; after a file load it contains
// ObjectIDKey and FileKey. A Document is immutable once constructed.
type Document struct {
	// Text is the plain-text extraction of the document content.
	Text string

	// Metadata maps HTML meta names, requested table columns, and the
	// reserved keys ("title", "_oid", "_rowid", "_file") to their values.
	// Keys are unique; the last write for a key wins.
	Metadata map[string]any
}

// Source describes where documents are loaded from. Exactly one of the
// concrete variants (TableSource, FileSource, DirSource) is used per loader;
// each variant carries only the fields relevant to it.
type Source interface {
	// Validate checks the descriptor before any query runs.
	// It returns a multi-error if multiple validation failures occur.
	Validate() error

	source()
}

// TableSource loads one document per row of a database table. The content
// column is passed through the database-side content-to-text extraction
// function twice per row (metadata-flavored and plain renderings).
type TableSource struct {
	// Owner is the schema that owns the table.
	Owner string

	// Table is the table name.
	Table string

	// ContentColumn is the column holding the document content.
	ContentColumn string

	// MetadataColumns are up to MaxMetadataColumns additional column names
	// whose raw row values are copied verbatim into document metadata.
	MetadataColumns []string

	// ExtractorFunc is the database-side content-to-text extraction function.
	// Empty means DefaultExtractorFunc.
	ExtractorFunc string
}

// Validate checks the TableSource before any query is built. Every name that
// ends up in generated SQL must pass the identifier-safety check.
func (s TableSource) Validate() error {
	var errs []error

	if s.Owner == "" {
		errs = append(errs, fmt.Errorf("owner is required: %w", ErrInvalidConfig))
	} else if !IsSafeIdentifier(s.Owner) {
		errs = append(errs, fmt.Errorf("Invalid owner name %q: %w", s.Owner, ErrInvalidConfig))
	}

	if s.Table == "" {
		errs = append(errs, fmt.Errorf("table name is required: %w", ErrInvalidConfig))
	} else if !IsSafeIdentifier(s.Table) {
		errs = append(errs, fmt.Errorf("Invalid table name %q: %w", s.Table, ErrInvalidConfig))
	}

	if s.ContentColumn == "" {
		errs = append(errs, fmt.Errorf("content column is required: %w", ErrInvalidConfig))
	} else if !IsSafeIdentifier(s.ContentColumn) {
		errs = append(errs, fmt.Errorf("Invalid content column name %q: %w", s.ContentColumn, ErrInvalidConfig))
	}

	if len(s.MetadataColumns) > MaxMetadataColumns {
		errs = append(errs, fmt.Errorf("at most %d metadata columns are allowed, got %d: %w",
			MaxMetadataColumns, len(s.MetadataColumns), ErrInvalidConfig))
	}
	for _, col := range s.MetadataColumns {
		if !IsSafeIdentifier(col) {
			errs = append(errs, fmt.Errorf("Invalid metadata column name %q: %w", col, ErrInvalidConfig))
		}
	}

	if s.ExtractorFunc != "" && !IsSafeIdentifier(s.ExtractorFunc) {
		errs = append(errs, fmt.Errorf("Invalid extractor function name %q: %w", s.ExtractorFunc, ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

func (TableSource) source() {}

// FileSource loads a single file through the content-to-text extraction
// capability.
type FileSource struct {
	// Path is the file to load.
	Path string
}

// Validate checks the FileSource.
func (s FileSource) Validate() error {
	if s.Path == "" {
		return fmt.Errorf("file path is required: %w", ErrInvalidConfig)
	}
	return nil
}

func (FileSource) source() {}

// DirSource names a directory of files. Recursive directory loading is not
// implemented; Load on a DirSource returns an empty sequence.
type DirSource struct {
	// Path is the directory.
	Path string
}

// Validate checks the DirSource.
func (s DirSource) Validate() error {
	if s.Path == "" {
		return fmt.Errorf("directory path is required: %w", ErrInvalidConfig)
	}
	return nil
}

func (DirSource) source() {}
