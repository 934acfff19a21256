package frontmatter

import (
	"strings"

	"github.com/hatappo/frontmatter-lint/pkg/value"
)

// EncodeYAML renders a mapping in the YAML subset ParseYAML accepts, so
// that parsing the output reproduces the input tree. Strings are left bare
// when the parser would read them back unchanged and double-quoted
// otherwise. Empty mappings and arrays have no representation in the subset
// and encode as null-valued keys.
func EncodeYAML(m *value.Mapping) string {
	var b strings.Builder
	encodeYAMLMapping(&b, m, 0)
	return b.String()
}

func encodeYAMLMapping(b *strings.Builder, m *value.Mapping, indent int) {
	prefix := strings.Repeat(" ", indent)
	for _, p := range m.Pairs() {
		switch v := p.Value.(type) {
		case *value.Mapping:
			if v.Len() == 0 {
				b.WriteString(prefix + p.Key + ":\n")
				continue
			}
			b.WriteString(prefix + p.Key + ":\n")
			encodeYAMLMapping(b, v, indent+2)
		case value.Array:
			b.WriteString(prefix + p.Key + ":\n")
			encodeYAMLSequence(b, v, indent+2)
		default:
			b.WriteString(prefix + p.Key + ": " + encodeYAMLScalar(p.Value) + "\n")
		}
	}
}

func encodeYAMLSequence(b *strings.Builder, arr value.Array, indent int) {
	prefix := strings.Repeat(" ", indent)
	for _, item := range arr {
		switch v := item.(type) {
		case *value.Mapping:
			if v.Len() == 0 {
				b.WriteString(prefix + "-\n")
				continue
			}
			b.WriteString(prefix + "-\n")
			encodeYAMLMapping(b, v, indent+2)
		case value.Array:
			b.WriteString(prefix + "-\n")
			encodeYAMLSequence(b, v, indent+2)
		default:
			b.WriteString(prefix + "- " + encodeYAMLScalar(item) + "\n")
		}
	}
}

func encodeYAMLScalar(v value.Value) string {
	switch s := v.(type) {
	case value.String:
		return encodeYAMLString(string(s))
	case value.Number:
		return s.String()
	case value.Bool:
		if s {
			return "true"
		}
		return "false"
	default:
		return "null"
	}
}

// encodeYAMLString leaves s bare when the parser reads it back as the same
// string, checked by running the scalar reader over it.
func encodeYAMLString(s string) string {
	if s != "" && s == strings.TrimSpace(s) && !strings.ContainsAny(s, "\n\r\t") {
		if parsed, ok := yamlScalar(s).(value.String); ok && string(parsed) == s {
			return s
		}
	}
	return quote(s)
}

// EncodeTOML renders a mapping in the TOML subset ParseTOML accepts.
// Mapping-valued keys at the tail of a table become "[path]" sections;
// mappings appearing before a scalar sibling are inlined so that re-parsing
// preserves key order. Null has no TOML form and is dropped.
func EncodeTOML(m *value.Mapping) string {
	var b strings.Builder
	encodeTOMLTable(&b, m, nil)
	return strings.TrimPrefix(b.String(), "\n")
}

func encodeTOMLTable(b *strings.Builder, m *value.Mapping, path []string) {
	pairs := m.Pairs()

	// Trailing run of table-valued keys renders as sections; everything
	// before it renders inline under the current header.
	sections := len(pairs)
	for sections > 0 {
		if _, ok := pairs[sections-1].Value.(*value.Mapping); !ok {
			break
		}
		sections--
	}

	if len(path) > 0 {
		b.WriteString("\n[" + strings.Join(path, ".") + "]\n")
	}
	for _, p := range pairs[:sections] {
		if p.Value.Kind() == value.KindNull {
			continue
		}
		b.WriteString(p.Key + " = " + encodeTOMLValue(p.Value) + "\n")
	}
	for _, p := range pairs[sections:] {
		encodeTOMLTable(b, p.Value.(*value.Mapping), append(path, p.Key))
	}
}

func encodeTOMLValue(v value.Value) string {
	switch t := v.(type) {
	case value.String:
		return quote(string(t))
	case value.Number:
		return t.String()
	case value.Bool:
		if t {
			return "true"
		}
		return "false"
	case value.Array:
		parts := make([]string, len(t))
		for i, item := range t {
			parts[i] = encodeTOMLValue(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *value.Mapping:
		if t.Len() == 0 {
			return "{}"
		}
		parts := make([]string, 0, t.Len())
		for _, p := range t.Pairs() {
			parts = append(parts, p.Key+" = "+encodeTOMLValue(p.Value))
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	default:
		return `""`
	}
}
