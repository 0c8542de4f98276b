// Package quote renders node values as quoted literals and as minimal
// discriminating regular expressions for use inside path-expressions.
package quote

import "strings"

// Quote wraps value in quotes for use inside a path-expression or as the
// value argument of a set command. Single quotes are preferred; double
// quotes are used when the value contains a single quote but no double
// quote. Quote characters, backslashes, newlines and tabs are
// backslash-escaped.
func Quote(value string) string {
	q := quoteChar(value)

	var b strings.Builder
	b.Grow(len(value) + 2)
	b.WriteByte(q)

	for i := 0; i < len(value); i++ {
		c := value[i]
		switch {
		case c == q:
			b.WriteByte('\\')
			b.WriteByte(q)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\t':
			b.WriteString(`\t`)
		case c == '\\':
			b.WriteString(`\\`)
		default:
			b.WriteByte(c)
		}
	}

	b.WriteByte(q)

	return b.String()
}

// Unquote reverses Quote. Input that is not wrapped in a matching pair of
// quotes is returned unchanged.
func Unquote(s string) string {
	if len(s) < 2 {
		return s
	}

	q := s[0]
	if (q != '\'' && q != '"') || s[len(s)-1] != q {
		return s
	}

	body := s[1 : len(s)-1]

	var b strings.Builder
	b.Grow(len(body))

	for i := 0; i < len(body); i++ {
		c := body[i]
		if c == '\\' && i+1 < len(body) {
			i++
			switch body[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '\\', '\'', '"':
				b.WriteByte(body[i])
			default:
				b.WriteByte('\\')
				b.WriteByte(body[i])
			}

			continue
		}

		b.WriteByte(c)
	}

	return b.String()
}

// quoteChar picks the quote character for value. A value containing both
// quote kinds keeps single quotes and escapes them; augeas accepts the
// escape on replay.
func quoteChar(value string) byte {
	hasSingle := strings.ContainsRune(value, '\'')
	hasDouble := strings.ContainsRune(value, '"')

	if hasSingle && !hasDouble {
		return '"'
	}

	return '\''
}
