package pgdoc

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Load completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid source descriptor or parameters
	ExitConnectionError = 11 // Failed to connect to database
	ExitQueryFailed     = 13 // Catalog lookup or main query failed
)

// Reserved metadata keys stamped onto loaded documents.
const (
	// ObjectIDKey holds the generated 32-hex object id. Present after every
	// table or file load.
	ObjectIDKey = "_oid"

	// RowIDKey holds the database row identifier. Table loads only.
	RowIDKey = "_rowid"

	// FileKey holds the source file path. File loads only.
	FileKey = "_file"

	// TitleKey holds the HTML <title> text when the content had one.
	TitleKey = "title"
)

const (
	// MaxMetadataColumns is the cap on extra metadata columns per
	// TableSource. Exceeding it is a caller error, rejected before any
	// query runs.
	MaxMetadataColumns = 3

	// DefaultExtractorFunc is the database-side content-to-text extraction
	// function used when TableSource.ExtractorFunc is empty. The function
	// must accept (content, options-json) and return text; the options
	// object selects the plain or metadata-flavored rendering.
	DefaultExtractorFunc = "doc_to_text"
)
