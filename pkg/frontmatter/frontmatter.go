package frontmatter

import (
	"bytes"
	"errors"
	"regexp"
	"strings"

	"github.com/hatappo/frontmatter-lint/pkg/value"
)

// ErrUnterminated is returned by Extract when a document opens a frontmatter
// block but never closes it.
var ErrUnterminated = errors.New("unterminated frontmatter block")

// Format identifies the syntax of a frontmatter block.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Directive is a parsed "# @schema <path> [<name>]" line. Name is empty when
// the directive names only a file, as JSON Schema references do.
type Directive struct {
	Path string
	Name string
}

// Document is an extracted frontmatter block.
type Document struct {
	// Format is the syntax selected by the opening delimiter.
	Format Format
	// Directive is the schema directive found inside the block, or nil.
	Directive *Directive
	// Content holds the data lines of the block, with directive lines
	// removed and the original line order preserved.
	Content string
}

// directivePattern matches a schema directive line, tolerating surrounding
// whitespace. Both formats use "#" comments, so one pattern serves both.
var directivePattern = regexp.MustCompile(`^\s*#\s*@schema\s+(\S+)(?:\s+(\S+))?\s*$`)

// Extract returns the frontmatter block opening the document, or nil if the
// document does not start with a delimiter line. The delimiter must sit at
// the very start of the content; "---" selects YAML, "+++" selects TOML.
// ErrUnterminated is returned when the opening delimiter is never closed.
func Extract(content []byte) (*Document, error) {
	format, delim := detect(content)
	if format == "" {
		return nil, nil
	}

	// Skip the opening delimiter line, tolerating CRLF.
	offset := len(delim)
	if offset < len(content) && content[offset] == '\r' {
		offset++
	}
	if offset < len(content) && content[offset] == '\n' {
		offset++
	}

	// The closing delimiter is the next line starting with the same marker.
	parts := bytes.SplitN(content[offset:], []byte("\n"+delim), 2)
	if len(parts) < 2 {
		parts = bytes.SplitN(content[offset:], []byte("\r\n"+delim), 2)
	}
	if len(parts) < 2 {
		return nil, ErrUnterminated
	}

	doc := &Document{Format: format}
	var data []string
	for _, line := range strings.Split(string(parts[0]), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if m := directivePattern.FindStringSubmatch(line); m != nil {
			doc.Directive = &Directive{Path: m[1], Name: m[2]}
			continue
		}
		data = append(data, line)
	}
	doc.Content = strings.Join(data, "\n")
	return doc, nil
}

func detect(content []byte) (Format, string) {
	for _, c := range []struct {
		format Format
		delim  string
	}{
		{FormatYAML, "---"},
		{FormatTOML, "+++"},
	} {
		if bytes.HasPrefix(content, []byte(c.delim+"\n")) || bytes.HasPrefix(content, []byte(c.delim+"\r\n")) {
			return c.format, c.delim
		}
	}
	return "", ""
}

// Parse runs the parser matching the block's format over its data lines.
// The parsers never fail; see ParseYAML and ParseTOML for subset limits.
func (d *Document) Parse() *value.Mapping {
	if d.Format == FormatTOML {
		return ParseTOML(d.Content)
	}
	return ParseYAML(d.Content)
}
