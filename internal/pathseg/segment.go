package pathseg

import "strings"

// NoPosition marks a segment without a position marker. Real positions are
// 1-based; 0 never occurs in a dump.
const NoPosition = 0

// Segment is one level of a path.
type Segment struct {
	// Head is the path up to this segment's position marker, excluding
	// the marker itself, or the whole remaining path when there is no
	// marker. Heads identify sibling groups by string equality.
	Head string
	// Text is the part of Head belonging to this level, printed verbatim
	// during emission. For a purely numeric marker it keeps the trailing
	// slash, which is how emission knows to print a sequence wildcard.
	Text string
	// Position is the 1-based sibling position, or NoPosition.
	Position int
	// SimpleTail is the rest of the path with every later position
	// marker removed or replaced by the sequence wildcard.
	SimpleTail string
}

// Split breaks path into its ordered chain of segments. seqWildcard is the
// token substituted for /N markers inside simplified tails ("seq::*", or
// "*" in legacy mode).
func Split(path, seqWildcard string) []Segment {
	var segs []Segment

	start := 0
	for start < len(path) {
		headEnd, segEnd, pos := nextPos(path, start)
		segs = append(segs, Segment{
			Head:       path[:headEnd],
			Text:       path[start:headEnd],
			Position:   pos,
			SimpleTail: simplifyTail(path[segEnd:], seqWildcard),
		})
		start = segEnd
	}

	return segs
}

// IsChildPath reports whether child lies strictly below parent, i.e. child
// is parent plus at least one more /-separated level.
func IsChildPath(parent, child string) bool {
	return strings.HasPrefix(child, parent) && len(child) > len(parent) && child[len(parent)] == '/'
}

// nextPos scans path from start for the next position marker, either
// label[N] or /N followed by a slash or the end of the path. It returns the
// end of the head (the index of '[', or just past the '/' for numeric
// markers), the index where the next segment starts (just past ']', or at
// the slash following the digits), and the position value. Without a marker
// both offsets are len(path) and the position is NoPosition. Text that
// merely looks like a marker, such as an unterminated '[12', is left alone.
func nextPos(path string, start int) (headEnd, segEnd, pos int) {
	for i := start; i < len(path); i++ {
		switch {
		case path[i] == '[' && i+1 < len(path) && isDigit(path[i+1]):
			n, end := scanNumber(path, i+1)
			if n > 0 && end < len(path) && path[end] == ']' {
				return i, end + 1, n
			}
		case path[i] == '/' && i+1 < len(path) && isDigit(path[i+1]):
			n, end := scanNumber(path, i+1)
			if n > 0 && (end == len(path) || path[end] == '/') {
				return i + 1, end, n
			}
		}
	}

	return len(path), len(path), NoPosition
}

// simplifyTail strips [N] markers and replaces /N markers with the sequence
// wildcard.
func simplifyTail(tail, seqWildcard string) string {
	var b strings.Builder
	b.Grow(len(tail))

	for i := 0; i < len(tail); {
		if tail[i] == '[' && i+1 < len(tail) && isDigit(tail[i+1]) {
			n, end := scanNumber(tail, i+1)
			if n > 0 && end < len(tail) && tail[end] == ']' {
				i = end + 1

				continue
			}
		}

		if tail[i] == '/' && i+1 < len(tail) && isDigit(tail[i+1]) {
			n, end := scanNumber(tail, i+1)
			if n > 0 && (end == len(tail) || tail[end] == '/') {
				b.WriteByte('/')
				b.WriteString(seqWildcard)
				i = end

				continue
			}
		}

		b.WriteByte(tail[i])
		i++
	}

	return b.String()
}

func scanNumber(s string, i int) (value, end int) {
	for ; i < len(s) && isDigit(s[i]); i++ {
		value = value*10 + int(s[i]-'0')
	}

	return value, i
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
