// Package frontmatter renders and reads the YAML metadata block at the top of
// rendered documentation pages.
package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the content opened a front-matter block
// but never closed it.
var ErrMissingClosingDelimiter = errors.New("front matter start delimiter found but closing delimiter is missing")

// Document is a page split into its front-matter block and body.
type Document struct {
	FrontMatter    []byte // raw YAML without delimiters
	Body           []byte
	HasFrontMatter bool
}

// Split separates a `---` delimited front-matter block from the body. Content
// without an opening delimiter is returned whole as the body. Both LF and
// CRLF line endings are accepted.
func Split(content []byte) (Document, error) {
	nl := detectNewline(content)
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return Document{Body: content}, nil
	}

	rest := content[len(open):]
	if bytes.HasPrefix(rest, open) {
		return Document{FrontMatter: []byte{}, Body: rest[len(open):], HasFrontMatter: true}, nil
	}

	closing := []byte(nl + "---" + nl)
	idx := bytes.Index(rest, closing)
	if idx < 0 {
		return Document{}, ErrMissingClosingDelimiter
	}
	return Document{
		FrontMatter:    rest[:idx+len(nl)],
		Body:           rest[idx+len(closing):],
		HasFrontMatter: true,
	}, nil
}

// Fields decodes the front matter into a map. A document without front
// matter yields an empty map.
func (d Document) Fields() (map[string]any, error) {
	return ParseYAML(d.FrontMatter)
}

// ParseYAML parses raw YAML front matter (without delimiters) into a map.
func ParseYAML(frontmatter []byte) (map[string]any, error) {
	fields := map[string]any{}
	if len(bytes.TrimSpace(frontmatter)) == 0 {
		return fields, nil
	}
	if err := yaml.Unmarshal(frontmatter, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
