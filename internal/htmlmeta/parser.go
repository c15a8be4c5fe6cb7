// Package htmlmeta extracts flat key/value metadata from HTML documents.
//
// The parser consumes a stream of open-tag and text events from a tokenizer
// rather than building a DOM: the document is scanned once and only <title>
// and <meta> tags contribute to the result. Extraction is best-effort —
// malformed markup never produces an error, it just stops contributing.
package htmlmeta

import (
	"strings"

	"golang.org/x/net/html"
)

// missingContent is recorded for a <meta> tag that carries a name attribute
// but no content attribute.
const missingContent = "N/A"

// Parser accumulates metadata from HTML title and meta tags.
//
// Parser is a small state machine driven by tokenizer events: an open <title>
// tag arms a capture flag, and the first text event while armed records the
// title. Open tags between <title> and its text (malformed input) do not
// disarm the flag; only a text event does. A Parser is not safe for
// concurrent use; state is reset only by constructing a new Parser.
type Parser struct {
	capturingTitle bool
	metadata       map[string]string
}

// NewParser creates a Parser with an empty metadata map.
func NewParser() *Parser {
	return &Parser{metadata: make(map[string]string)}
}

// Parse feeds htmlText through a streaming tokenizer and accumulates
// metadata. It never fails: tokenizer errors (including plain EOF) end the
// scan and whatever was extracted up to that point stands.
func (p *Parser) Parse(htmlText string) {
	tokenizer := html.NewTokenizer(strings.NewReader(htmlText))

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			// EOF or malformed markup: best-effort extraction stops here.
			return
		case html.StartTagToken, html.SelfClosingTagToken:
			p.handleOpenTag(tokenizer.Token())
		case html.TextToken:
			p.handleText(string(tokenizer.Text()))
		}
	}
}

// Metadata returns the accumulated map. It reflects state as of the last
// Parse call and is callable at any time.
func (p *Parser) Metadata() map[string]string {
	return p.metadata
}

// handleOpenTag processes an open-tag event. Tag and attribute names arrive
// lower-cased from the tokenizer.
func (p *Parser) handleOpenTag(tok html.Token) {
	switch tok.Data {
	case "meta":
		name, content := "", ""
		hasName, hasContent := false, false
		for _, attr := range tok.Attr {
			switch attr.Key {
			case "name":
				name, hasName = attr.Val, true
			case "content":
				content, hasContent = attr.Val, true
			}
		}
		// A meta tag without a name attribute contributes nothing.
		if !hasName {
			return
		}
		if !hasContent {
			content = missingContent
		}
		p.metadata[name] = content
	case "title":
		p.capturingTitle = true
	}
}

// handleText records the title if a <title> open tag armed the capture flag.
// Only the first text chunk after <title> is captured.
func (p *Parser) handleText(text string) {
	if !p.capturingTitle {
		return
	}
	p.metadata["title"] = text
	p.capturingTitle = false
}
