package frontmatter

import (
	"regexp"
	"strings"
)

// datePattern recognizes ISO-date-like tokens, with or without a time part.
// Both parsers keep these as strings rather than coercing to a date type.
var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}([T ].*)?$`)

func dateLike(s string) bool {
	return datePattern.MatchString(s)
}

// unescape decodes the escape sequences supported inside double-quoted
// strings. Unknown escapes keep the backslash verbatim.
func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// quote renders s as a double-quoted string using the same escape set
// unescape decodes.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
