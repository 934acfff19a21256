package frontmatter

import (
	"math"
	"strconv"
	"strings"

	"github.com/hatappo/frontmatter-lint/pkg/value"
)

// ParseYAML parses the YAML subset used in frontmatter blocks into a
// mapping. The grammar is indentation driven: a line indented less than the
// current block closes it, and nesting is introduced by a key with no value
// followed by a deeper-indented block, or by a sequence opening at the key's
// own indentation. Comment and blank lines are skipped everywhere.
//
// The parser never fails. A line that carries no "key:" separator where a
// key is required, or indentation deeper than the enclosing block expects,
// silently ends that block; the rest of the input is ignored. Top-level
// documents that are not mappings are out of scope and parse to an empty
// mapping.
func ParseYAML(text string) *value.Mapping {
	p := &yamlParser{lines: scanLines(text)}
	if len(p.lines) == 0 {
		return value.NewMapping()
	}
	return p.parseMapping(p.lines[0].indent)
}

type yamlLine struct {
	text   string
	indent int
}

type yamlParser struct {
	lines []yamlLine
	pos   int
}

// scanLines splits the input into content lines, dropping blanks and
// full-line comments and recording each line's indentation.
func scanLines(text string) []yamlLine {
	var out []yamlLine
	for _, raw := range strings.Split(text, "\n") {
		raw = strings.TrimRight(raw, "\r")
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		out = append(out, yamlLine{
			text:   trimmed,
			indent: len(raw) - len(strings.TrimLeft(raw, " \t")),
		})
	}
	return out
}

// parseMapping consumes consecutive "key: value" lines at exactly the given
// indentation. Any other line ends the mapping.
func (p *yamlParser) parseMapping(indent int) *value.Mapping {
	m := value.NewMapping()
	for p.pos < len(p.lines) {
		ln := p.lines[p.pos]
		if ln.indent != indent {
			break
		}
		key, rest, ok := splitKeyValue(ln.text)
		if !ok {
			break
		}
		p.pos++
		if rest == "" {
			m.Set(key, p.parseKeyBlock(indent))
		} else {
			m.Set(key, yamlScalar(rest))
		}
	}
	return m
}

// parseKeyBlock parses the value of a key that had nothing after the colon.
// A sequence may open at the key's own indentation, the common frontmatter
// style, as well as deeper.
func (p *yamlParser) parseKeyBlock(indent int) value.Value {
	if p.pos < len(p.lines) {
		if next := p.lines[p.pos]; next.indent == indent && isSequenceItem(next.text) {
			return p.parseSequence(indent)
		}
	}
	return p.parseNested(indent)
}

// parseNested parses the block belonging to a key or sequence item whose own
// line carried no value. The block is whatever deeper-indented lines follow;
// if the next line is not deeper, the value is null.
func (p *yamlParser) parseNested(indent int) value.Value {
	if p.pos >= len(p.lines) || p.lines[p.pos].indent <= indent {
		return value.Null{}
	}
	next := p.lines[p.pos]
	if isSequenceItem(next.text) {
		return p.parseSequence(next.indent)
	}
	return p.parseMapping(next.indent)
}

// parseSequence consumes consecutive "- item" lines at exactly the given
// indentation.
func (p *yamlParser) parseSequence(indent int) value.Array {
	arr := value.Array{}
	for p.pos < len(p.lines) {
		ln := p.lines[p.pos]
		if ln.indent != indent || !isSequenceItem(ln.text) {
			break
		}
		rest := strings.TrimSpace(ln.text[1:])
		switch {
		case rest == "":
			// Bare dash: the item's value is the deeper block.
			p.pos++
			arr = append(arr, p.parseNested(indent))
		case rest[0] != '"' && rest[0] != '\'' && looksLikeKey(rest):
			// "- key: value" starts an object item. The inline pair
			// counts as the first line of a mapping indented past the
			// dash, so continuation keys line up beneath it.
			p.lines[p.pos] = yamlLine{text: rest, indent: indent + 2}
			arr = append(arr, p.parseMapping(indent+2))
		default:
			p.pos++
			arr = append(arr, yamlScalar(rest))
		}
	}
	return arr
}

func isSequenceItem(text string) bool {
	return text == "-" || strings.HasPrefix(text, "- ")
}

// looksLikeKey reports whether a sequence item's text opens an object, which
// needs a colon followed by a space or end of line. A plain ":" inside a
// scalar, as in a URL, does not count.
func looksLikeKey(text string) bool {
	return strings.Contains(text, ": ") || strings.HasSuffix(text, ":")
}

// splitKeyValue splits a line at the first colon. Lines without a colon are
// not key/value lines.
func splitKeyValue(text string) (key, rest string, ok bool) {
	i := strings.Index(text, ":")
	if i < 0 {
		return "", "", false
	}
	return strings.TrimSpace(text[:i]), strings.TrimSpace(text[i+1:]), true
}

// yamlScalar interprets a single scalar token. Quoted forms decode to
// strings; bare tokens are tried as booleans, null, and numbers before
// falling back to a string. Date-like tokens always stay strings.
func yamlScalar(s string) value.Value {
	if s == "" {
		return value.Null{}
	}
	if len(s) >= 2 {
		switch {
		case s[0] == '"' && s[len(s)-1] == '"':
			return value.String(unescape(s[1 : len(s)-1]))
		case s[0] == '\'' && s[len(s)-1] == '\'':
			return value.String(s[1 : len(s)-1])
		}
	}
	switch s {
	case "true", "True", "TRUE":
		return value.Bool(true)
	case "false", "False", "FALSE":
		return value.Bool(false)
	case "null", "~":
		return value.Null{}
	}
	if dateLike(s) {
		return value.String(s)
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(n, 0) && !math.IsNaN(n) {
		return value.Number(n)
	}
	return value.String(s)
}
