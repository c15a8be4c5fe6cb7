package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"code.sajari.com/docconv"
)

var _ Extractor = (*DocconvExtractor)(nil)

// DocconvExtractor is the local extraction backend. It converts content with
// docconv based on the filename's content type, without any database round
// trip. For HTML content the raw markup doubles as the metadata-flavored
// rendering; other formats yield plain text only.
type DocconvExtractor struct{}

// NewDocconvExtractor creates a local docconv-backed extractor.
func NewDocconvExtractor() *DocconvExtractor {
	return &DocconvExtractor{}
}

// Extract converts content bytes using docconv.
func (e *DocconvExtractor) Extract(ctx context.Context, content []byte, filename string) (Result, error) {
	mimeType := docconv.MimeTypeByExtension(filename)

	res, err := docconv.Convert(bytes.NewReader(content), mimeType, true)
	if err != nil {
		return Result{}, fmt.Errorf("docconv extraction failed for %q (%s): %w", filename, mimeType, err)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	out := Result{PlainText: res.Body}
	if strings.Contains(mimeType, "html") {
		out.MetadataText = string(content)
	}
	return out, nil
}
