package quote

import "strings"

// Regexp builds a quoted regular expression that matches value as a literal
// prefix followed by a ".*" wildcard once maxLen characters have been
// consumed. The wildcard is only appended when it would replace at least
// three characters, so short suffixes stay literal. ']' and '\' become '.'
// (a single-character wildcard) because a ']' can never appear unescaped
// inside a bracketed label; other regexp metacharacters are escaped.
func Regexp(value string, maxLen int) string {
	q := quoteChar(value)

	var b strings.Builder
	b.WriteByte(q)

	for i := 0; i < len(value); i++ {
		c := value[i]
		switch c {
		case q:
			b.WriteByte('\\')
			b.WriteByte(q)

			continue
		case '\n':
			b.WriteString(`\n`)

			continue
		case '\t':
			b.WriteString(`\t`)

			continue
		case '\\', ']':
			b.WriteByte('.')

			continue
		case '[':
			b.WriteByte('\\')
		case '*', '?', '.', '(', ')', '^', '$', '|':
			b.WriteString(`\\`)
		}

		b.WriteByte(c)

		if i >= maxLen && i+3 < len(value) {
			b.WriteString(".*")

			break
		}
	}

	b.WriteByte(q)

	return b.String()
}
