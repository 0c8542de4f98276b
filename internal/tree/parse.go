package tree

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"augrewrite/internal/quote"
)

// maxLineSize bounds a single dump line; values can hold whole embedded
// documents.
const maxLineSize = 1 << 20

// ParseDump reads an augtool print style listing: one node per line, either
//
//	/path/to/node = "value"
//	/path/to/node = (none)
//	/path/to/node
//
// Quoted values are unquoted; "(none)" and bare paths mean the node has no
// value. Blank lines and lines starting with '#' are skipped. Input order
// is preserved.
func ParseDump(r io.Reader) ([]Leaf, error) {
	var leaves []Leaf

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		leaves = append(leaves, parseLine(line))
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading dump: %w", err)
	}

	return leaves, nil
}

func parseLine(line string) Leaf {
	sep := strings.Index(line, " = ")
	if sep < 0 {
		return Leaf{Path: line, Value: NoValue()}
	}

	path := line[:sep]
	raw := line[sep+3:]

	if raw == "(none)" {
		return Leaf{Path: path, Value: NoValue()}
	}

	return Leaf{Path: path, Value: SomeValue(quote.Unquote(raw))}
}

// Reroot rewrites every leaf under /files<source> to live under
// /files<target> instead, mirroring a tree move before rewriting. Leaves
// outside the source subtree pass through unchanged.
func Reroot(leaves []Leaf, source, target string) []Leaf {
	from := "/files" + source
	to := "/files" + target

	out := make([]Leaf, len(leaves))
	for i, l := range leaves {
		if l.Path == from || strings.HasPrefix(l.Path, from+"/") {
			l.Path = to + strings.TrimPrefix(l.Path, from)
		}

		out[i] = l
	}

	return out
}
