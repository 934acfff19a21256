package frontmatter

import (
	"strconv"
	"strings"

	"github.com/hatappo/frontmatter-lint/pkg/value"
)

// ParseTOML parses the TOML subset used in frontmatter blocks into a
// mapping. Supported are "key = value" pairs, table headers like "[a.b]"
// that descend into nested mappings, inline tables, arrays, quoted and bare
// scalars. Array-of-tables headers, multiline strings, and typed datetimes
// are not supported; date-like tokens stay strings.
//
// The parser never fails: lines it cannot interpret are skipped.
func ParseTOML(text string) *value.Mapping {
	root := value.NewMapping()
	current := root
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[[") {
			// Array-of-tables is outside the subset.
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			path := strings.TrimSpace(line[1 : len(line)-1])
			if path == "" {
				continue
			}
			current = descend(root, strings.Split(path, "."))
			continue
		}
		eq := strings.Index(line, "=")
		if eq < 0 {
			continue
		}
		key := unquoteKey(strings.TrimSpace(line[:eq]))
		val := strings.TrimSpace(line[eq+1:])
		if key == "" || val == "" {
			continue
		}
		current.Set(key, tomlValue(val))
	}
	return root
}

// descend walks the dotted table path from the root, creating intermediate
// tables as needed. A non-table value already stored under a path segment is
// replaced by a fresh table.
func descend(root *value.Mapping, path []string) *value.Mapping {
	current := root
	for _, part := range path {
		part = unquoteKey(strings.TrimSpace(part))
		if existing, ok := current.Get(part); ok {
			if m, ok := existing.(*value.Mapping); ok {
				current = m
				continue
			}
		}
		next := value.NewMapping()
		current.Set(part, next)
		current = next
	}
	return current
}

func unquoteKey(key string) string {
	if len(key) >= 2 {
		if (key[0] == '"' && key[len(key)-1] == '"') || (key[0] == '\'' && key[len(key)-1] == '\'') {
			return key[1 : len(key)-1]
		}
	}
	return key
}

// tomlValue interprets a single value token. Unlike YAML, booleans are
// lowercase only and a bare number needs a decimal point to become a float.
func tomlValue(s string) value.Value {
	switch {
	case s == "true":
		return value.Bool(true)
	case s == "false":
		return value.Bool(false)
	}
	if len(s) >= 2 {
		switch {
		case s[0] == '"' && s[len(s)-1] == '"':
			return value.String(unescape(s[1 : len(s)-1]))
		case s[0] == '\'' && s[len(s)-1] == '\'':
			return value.String(s[1 : len(s)-1])
		}
	}
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		arr := value.Array{}
		for _, part := range splitTop(s[1 : len(s)-1]) {
			arr = append(arr, tomlValue(part))
		}
		return arr
	}
	if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
		table := value.NewMapping()
		for _, part := range splitTop(s[1 : len(s)-1]) {
			eq := strings.Index(part, "=")
			if eq < 0 {
				continue
			}
			key := unquoteKey(strings.TrimSpace(part[:eq]))
			val := strings.TrimSpace(part[eq+1:])
			if key == "" || val == "" {
				continue
			}
			table.Set(key, tomlValue(val))
		}
		return table
	}
	if dateLike(s) {
		return value.String(s)
	}
	if !strings.Contains(s, ".") {
		if n, err := strconv.ParseInt(strings.ReplaceAll(s, "_", ""), 10, 64); err == nil {
			return value.Number(float64(n))
		}
	} else if n, err := strconv.ParseFloat(strings.ReplaceAll(s, "_", ""), 64); err == nil {
		return value.Number(n)
	}
	return value.String(s)
}

// splitTop splits s on commas at the top level, tracking bracket and brace
// depth and quoted strings so nested arrays, inline tables, and strings with
// commas stay intact. A naive comma split breaks on all of those.
func splitTop(s string) []string {
	var parts []string
	var buf strings.Builder
	depth := 0
	var inSingle, inDouble bool
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inDouble:
			if c == '\\' && i+1 < len(s) {
				buf.WriteByte(c)
				i++
				buf.WriteByte(s[i])
				continue
			}
			if c == '"' {
				inDouble = false
			}
			buf.WriteByte(c)
		case inSingle:
			if c == '\'' {
				inSingle = false
			}
			buf.WriteByte(c)
		case c == '"':
			inDouble = true
			buf.WriteByte(c)
		case c == '\'':
			inSingle = true
			buf.WriteByte(c)
		case c == '[' || c == '{':
			depth++
			buf.WriteByte(c)
		case c == ']' || c == '}':
			depth--
			buf.WriteByte(c)
		case c == ',' && depth == 0:
			parts = append(parts, strings.TrimSpace(buf.String()))
			buf.Reset()
		default:
			buf.WriteByte(c)
		}
	}
	if tail := strings.TrimSpace(buf.String()); tail != "" {
		parts = append(parts, tail)
	}
	return parts
}
