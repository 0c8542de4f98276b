package index

import (
	"go.uber.org/zap"

	"augrewrite/internal/quote"
	"augrewrite/internal/tree"
)

// growStep is the increment for the per-position arrays; they widen in
// fixed steps rather than one slot at a time.
const growStep = 8

// Group collects every observation under one head. Its per-position arrays
// are indexed 1..MaxPosition; slot 0 is the reserved "no such position"
// slot and stays at its unset value.
type Group struct {
	Head        string
	MaxPosition int

	// AtPosition holds, per position, the tails observed there in leaf
	// order. A position may list the same Tail more than once.
	AtPosition [][]*Tail
	// Chosen and First are filled by selection: the predicate tail and
	// the first significant tail of each position.
	Chosen []*Tail
	First  []*Tail
	// State tracks selection outcome and emission progress per position.
	State []SelState
	// PrettyWidth is the padded value width per position (pretty mode).
	PrettyWidth []int
	// ReWidthChosen and ReWidthFirst are the minimal discriminating
	// literal lengths per position (regexp mode).
	ReWidthChosen []int
	ReWidthFirst  []int
	// SubgroupRank is the 1-based rank of the position within its
	// subgroup, set when the subgroup is computed.
	SubgroupRank []int

	// Tails owns every distinct (simplified tail, value) pair, in
	// insertion order.
	Tails []*Tail
	// Subgroups caches lazily computed subgroups.
	Subgroups []*Subgroup

	regexpMode bool
	log        *zap.SugaredLogger
}

// Register records one observation of (simpleTail, value) at position,
// growing the position arrays as needed. Found counts merge across values
// of the same tail; a stub referencing the matched or new Tail is appended
// to the position's list.
func (g *Group) Register(simpleTail string, position int, value tree.Value) *Tail {
	g.growTo(position)

	if position > g.MaxPosition {
		g.MaxPosition = position
	}

	foundThisPos := 1

	var exact, sameTail *Tail

	for _, t := range g.Tails {
		if t.SimpleTail != simpleTail {
			continue
		}

		t.Found[position]++
		foundThisPos = t.Found[position]

		if eq, _ := CompareValues(t.Value, value, g.regexpMode); eq {
			t.ValueFound[position]++
			t.ValueTotal++
			exact = t
		}

		sameTail = t
	}

	if exact == nil {
		exact = g.newTail(simpleTail, value, sameTail, position, foundThisPos)
	}

	g.AtPosition[position] = append(g.AtPosition[position], exact)
	g.log.Debugf("register %s[%d] tail=%q value=%q", g.Head, position, simpleTail, exact.Quoted)

	return exact
}

// newTail allocates the Tail for a pair seen for the first time. The found
// map is seeded from an existing Tail with the same simplified tail, if
// any, so bare-tail counts stay merged across values.
func (g *Group) newTail(simpleTail string, value tree.Value, sameTail *Tail, position, foundThisPos int) *Tail {
	t := &Tail{
		SimpleTail: simpleTail,
		Value:      value,
		Found:      make([]int, len(g.AtPosition)),
		ValueFound: make([]int, len(g.AtPosition)),
		ValueTotal: 1,
	}

	if value.Present {
		t.Quoted = quote.Quote(value.Str)
	}

	if sameTail != nil {
		copy(t.Found, sameTail.Found)
	}

	t.Found[position] = foundThisPos
	t.ValueFound[position] = 1

	g.Tails = append(g.Tails, t)

	return t
}

// RegexpMode reports whether values merge and render as regular
// expressions in this group.
func (g *Group) RegexpMode() bool { return g.regexpMode }

// ResolveSubgroup returns the subgroup of positions whose stub lists
// contain first, creating and caching it on first use. Creation records
// each member's 1-based rank for the positional fallback predicate.
func (g *Group) ResolveSubgroup(first *Tail) *Subgroup {
	for _, s := range g.Subgroups {
		if s.First == first {
			return s
		}
	}

	s := &Subgroup{First: first}

	for pos := 1; pos <= g.MaxPosition; pos++ {
		for _, t := range g.AtPosition[pos] {
			if t == first {
				s.Positions = append(s.Positions, pos)
				g.SubgroupRank[pos] = len(s.Positions)

				break
			}
		}
	}

	g.Subgroups = append(g.Subgroups, s)

	return s
}

// growTo widens every per-position array so position is a valid index. New
// slots start at their explicit unset values, and the per-position maps of
// every existing Tail widen with the group.
func (g *Group) growTo(position int) {
	if position < len(g.AtPosition) {
		return
	}

	size := (position+1)/growStep*growStep + growStep

	g.AtPosition = grown(g.AtPosition, size)
	g.Chosen = grown(g.Chosen, size)
	g.First = grown(g.First, size)
	g.State = grown(g.State, size)
	g.PrettyWidth = grown(g.PrettyWidth, size)
	g.ReWidthChosen = grown(g.ReWidthChosen, size)
	g.ReWidthFirst = grown(g.ReWidthFirst, size)
	g.SubgroupRank = grown(g.SubgroupRank, size)

	for _, t := range g.Tails {
		t.Found = grown(t.Found, size)
		t.ValueFound = grown(t.ValueFound, size)
	}
}

func grown[T any](s []T, size int) []T {
	out := make([]T, size)
	copy(out, s)

	return out
}
