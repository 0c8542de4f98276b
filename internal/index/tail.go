package index

import "augrewrite/internal/tree"

// Tail is a distinct (simplified tail, value) pair within one group. No two
// Tail records in a group share the same pair.
type Tail struct {
	SimpleTail string
	Value      tree.Value
	// Quoted is the value as a quoted literal, or "" when absent.
	Quoted string
	// Regexp is the value as a discriminating regular expression; filled
	// in by width selection when regexp predicates are enabled.
	Regexp string
	// Found counts, per position, how often the tail occurs regardless
	// of value. Counts are kept equal across Tails sharing a SimpleTail.
	Found []int
	// ValueFound counts, per position, occurrences of this exact pair.
	ValueFound []int
	// ValueTotal is the group-wide occurrence count of this exact pair.
	ValueTotal int
}

// Subgroup is the set of positions within a group whose first significant
// tail is the same Tail. Subgroups are computed lazily, at most once per
// distinct first tail, when the cheaper selection tiers fail.
type Subgroup struct {
	First *Tail
	// Positions lists the member positions in ascending order.
	Positions []int
}

// CompareValues reports whether two values are equal, and how many leading
// characters they share. Under regexp mode a literal ']' compares equal to
// any character, because ']' is rendered as a single-character wildcard in
// the generated patterns.
func CompareValues(a, b tree.Value, regexpMode bool) (equal bool, matched int) {
	if !a.Present && !b.Present {
		return true, 0
	}

	if !a.Present || !b.Present {
		return false, 0
	}

	s, t := a.Str, b.Str

	if regexpMode {
		n := min(len(s), len(t))
		for i := 0; i < n; i++ {
			if s[i] != t[i] && s[i] != ']' && t[i] != ']' {
				return false, i
			}
		}

		return len(s) == len(t), n
	}

	i := 0
	for i < len(s) && i < len(t) && s[i] == t[i] {
		i++
	}

	return i == len(s) && i == len(t), i
}
