package pgdoc

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	docs, err := loader.Load(ctx)
//	if errors.Is(err, pgdoc.ErrUnsupportedColumnType) {
//	    // Drop the offending metadata column and retry
//	}
var (
	// ErrInvalidConfig indicates the source descriptor is invalid
	// (missing owner/column, unsafe identifier, too many metadata columns).
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrColumnNotFound indicates a requested metadata column does not exist
	// in the target table.
	ErrColumnNotFound = errors.New("column not found")

	// ErrUnsupportedColumnType indicates a requested metadata column has a
	// declared SQL type outside the supported scalar allow-list.
	ErrUnsupportedColumnType = errors.New("unsupported column type")

	// ErrCatalogLookup indicates the column catalog query returned nothing
	// usable for the target table.
	ErrCatalogLookup = errors.New("could not retrieve column information")

	// ErrConnectionFailed indicates database connection failed.
	ErrConnectionFailed = errors.New("connection failed")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig),
		errors.Is(err, ErrColumnNotFound),
		errors.Is(err, ErrUnsupportedColumnType):
		return ExitConfigError
	case errors.Is(err, ErrCatalogLookup):
		return ExitQueryFailed
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	}

	errStr := err.Error()

	// Cobra surfaces usage errors as plain errors; classify by message.
	if strings.Contains(errStr, "unknown flag") ||
		strings.Contains(errStr, "unknown shorthand flag") ||
		strings.Contains(errStr, "required flag") ||
		strings.Contains(errStr, "invalid argument") ||
		(strings.Contains(errStr, "accepts") && strings.Contains(errStr, "arg(s)")) {
		return ExitUsageError
	}

	// Check for common connection error patterns
	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}
