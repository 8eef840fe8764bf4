package dot

import (
	"regexp"
	"strings"
)

// escaper handles backslashes before quotes so that escapes it introduces
// are never escaped again. A single-pass replacer gives the same result as
// applying the three replacements in that order.
var escaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

// Escape prepares s for use inside a double-quoted DOT string.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Unescape reverses [Escape]. Unknown escape sequences are kept as written.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i == len(s)-1 {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		case 'n':
			b.WriteByte('\n')
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func quote(s string) string {
	return `"` + Escape(s) + `"`
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// attr writes simple keyword values such as shapes and styles bare and
// quotes anything else.
func attr(s string) string {
	if identRe.MatchString(s) {
		return s
	}
	return quote(s)
}
