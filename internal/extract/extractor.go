// Package extract adapts content-to-text extraction capabilities.
//
// Extraction produces two flavors of text from one piece of content: a
// metadata-flavored rendering (HTML-ish, fed to the HTML metadata parser
// downstream) and a plain-text rendering (the document body). The capability
// itself is external; this package only selects between a database-side
// extraction function and a local docconv-based fallback.
package extract

import "context"

// Options JSON passed to the database-side extraction function. The option
// object selects the rendering flavor.
const (
	// MetadataOptions requests the HTML-flavored metadata rendering.
	MetadataOptions = `{"plaintext": "false"}`

	// PlainOptions requests the plain-text rendering.
	PlainOptions = `{"plaintext": "true"}`
)

// Result carries the two extraction flavors for one piece of content.
type Result struct {
	// MetadataText is the HTML-flavored rendering. Empty when the backend
	// produces none.
	MetadataText string

	// PlainText is the plain-text rendering.
	PlainText string
}

// Extractor converts raw content bytes into the two text flavors.
type Extractor interface {
	// Extract converts content. The filename hints at the content type
	// (extension-based detection); it is never opened.
	Extract(ctx context.Context, content []byte, filename string) (Result, error)
}
