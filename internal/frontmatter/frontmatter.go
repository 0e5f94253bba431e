// Package frontmatter reads and writes YAML front matter blocks of content files.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// ErrMissingClosingDelimiter indicates the content started with a front matter
// delimiter but never closed it.
var ErrMissingClosingDelimiter = errors.New("front matter start delimiter found but closing delimiter is missing")

// Document is a content file split into its front matter fields and body.
type Document struct {
	Fields map[string]any
	Body   []byte
	// Had is false when the content carried no front matter block at all.
	Had bool
}

// Split separates a `---` delimited front matter block from the body.
//
// When content does not open with a delimiter line, had is false and body is the
// full input. Both LF and CRLF line endings are recognised.
func Split(content []byte) (raw []byte, body []byte, had bool, err error) {
	nl := []byte("\n")
	if bytes.HasPrefix(content, []byte(delimiter+"\r\n")) {
		nl = []byte("\r\n")
	}

	open := append([]byte(delimiter), nl...)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	rest := content[len(open):]
	if bytes.HasPrefix(rest, open) {
		return []byte{}, rest[len(open):], true, nil
	}

	closing := append(append(append([]byte{}, nl...), delimiter...), nl...)
	idx := bytes.Index(rest, closing)
	if idx < 0 {
		// A closing delimiter on the very last line has no trailing newline.
		tail := append(append([]byte{}, nl...), delimiter...)
		if bytes.HasSuffix(rest, tail) {
			return rest[:len(rest)-len(tail)+len(nl)], []byte{}, true, nil
		}
		return nil, nil, false, ErrMissingClosingDelimiter
	}

	return rest[:idx+len(nl)], rest[idx+len(closing):], true, nil
}

// ParseYAML decodes a raw front matter block (without delimiters) into a map.
// An empty block yields an empty, non-nil map.
func ParseYAML(raw []byte) (map[string]any, error) {
	fields := map[string]any{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return fields, nil
	}
	if err := yaml.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decode front matter: %w", err)
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// Parse splits content and decodes its front matter.
func Parse(content []byte) (Document, error) {
	raw, body, had, err := Split(content)
	if err != nil {
		return Document{}, err
	}
	fields, err := ParseYAML(raw)
	if err != nil {
		return Document{}, err
	}
	return Document{Fields: fields, Body: body, Had: had}, nil
}

// Render emits fields as a `---` delimited YAML block followed by body.
// An empty field map still produces the delimiters so the output is recognisable
// as a content document.
func Render(fields map[string]any, body []byte) ([]byte, error) {
	raw, err := SerializeYAML(fields)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(len(raw) + len(body) + 2*(len(delimiter)+1))
	buf.WriteString(delimiter + "\n")
	buf.Write(raw)
	buf.WriteString(delimiter + "\n")
	buf.Write(body)
	return buf.Bytes(), nil
}
