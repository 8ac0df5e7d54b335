package markdown

import (
	"bytes"
	"fmt"
	"time"

	"github.com/adrg/frontmatter"
)

// Document is a Markdown file split into front matter and body.
type Document struct {
	Path         string
	Locale       string
	Meta         map[string]any
	Body         []byte
	Checksum     []byte
	LastModified time.Time
}

// ParseFrontMatter decodes the front matter of source into v and returns the
// Markdown body without delimiters. Files without front matter leave v
// untouched and return the whole source as body.
func ParseFrontMatter(source []byte, v any) ([]byte, error) {
	body, err := frontmatter.Parse(bytes.NewReader(source), v)
	if err != nil {
		return nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	return body, nil
}

// BuildDocument parses source into a Document.
func BuildDocument(path, locale string, source []byte, modified time.Time) (*Document, error) {
	meta := map[string]any{}
	body, err := ParseFrontMatter(source, &meta)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Document{
		Path:         path,
		Locale:       locale,
		Meta:         meta,
		Body:         body,
		LastModified: modified,
	}, nil
}
