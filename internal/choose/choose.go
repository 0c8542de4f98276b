package choose

import (
	"augrewrite/internal/config"
	"augrewrite/internal/diagnostic"
	"augrewrite/internal/index"
	"augrewrite/internal/pathseg"
)

// All selects the predicate tail and state for every position of every
// group, then fills in the regexp and pretty widths the run calls for.
func All(cfg config.Run, ix *index.Index, diags *diagnostic.Diagnostics) {
	for _, g := range ix.Groups {
		for pos := 1; pos <= g.MaxPosition; pos++ {
			g.Chosen[pos] = chooseTail(cfg, g, pos, diags)
		}

		if cfg.UseRegexp() {
			chooseReWidths(cfg, g)
		}

		if cfg.Pretty {
			choosePrettyWidths(g)
		}
	}
}

// chooseTail picks the predicate for one position, walking the four
// preferences in order, and records the selection state on the group.
func chooseTail(cfg config.Run, g *index.Group, pos int, diags *diagnostic.Diagnostics) *index.Tail {
	log := cfg.Logger()
	stubs := g.AtPosition[pos]

	if len(stubs) == 0 {
		// Positions inside a group always carry at least an empty tail,
		// so this only fires for gaps in the numbering.
		diags.AddWarning("no_child_nodes",
			"position has no child nodes, matching with an unconstrained wildcard",
			g.Head, pos)
		g.State[pos] = index.StateNoPredicate

		return nil
	}

	fi := firstSignificant(stubs)
	first := stubs[fi]
	g.First[pos] = first
	log.Debugf("choose %s[%d] first tail %q", g.Head, pos, first.SimpleTail)

	// First preference: the first tail's pair is unique in the group.
	if first.ValueTotal == 1 {
		g.State[pos] = index.StateFirstTail

		return first
	}

	// Second preference: a unique pair whose tail exists at every
	// position of the group.
	for i := fi; i < len(stubs); i++ {
		t := stubs[i]
		if t.ValueTotal != 1 {
			continue
		}

		if tailEverywhere(g, t) && !earlierStubShares(stubs, fi, i) {
			g.State[pos] = index.StateUniqueStart
			log.Debugf("choose %s[%d] unique tail %s=%s", g.Head, pos, t.SimpleTail, t.Quoted)

			return t
		}
	}

	// Third preference: a pair unique within the subgroup sharing the
	// first tail, to be combined with the first tail.
	sub := g.ResolveSubgroup(first)

	for i := fi + 1; i < len(stubs); i++ {
		t := stubs[i]

		if uniqueInSubgroup(sub, t, pos) && !earlierStubShares(stubs, fi, i) {
			g.State[pos] = index.StateComboStart
			log.Debugf("choose %s[%d] combo %s=%s with first %s", g.Head, pos, t.SimpleTail, t.Quoted, first.SimpleTail)

			return t
		}
	}

	// Fallback: first tail plus the position's rank in its subgroup.
	g.State[pos] = index.StateFirstPlusRank

	return first
}

// firstSignificant returns the offset of the first significant stub: the
// walk stops at the first tail carrying a non-empty value, or whose
// successor is not one of its own child paths.
func firstSignificant(stubs []*index.Tail) int {
	i := 0
	for i+1 < len(stubs) {
		t := stubs[i]
		if t.Value.Present && t.Value.Str != "" {
			break
		}

		if !pathseg.IsChildPath(t.SimpleTail, stubs[i+1].SimpleTail) {
			break
		}

		i++
	}

	return i
}

// tailEverywhere reports whether the tail occurs at every position of the
// group, regardless of value.
func tailEverywhere(g *index.Group, t *index.Tail) bool {
	for pos := 1; pos <= g.MaxPosition; pos++ {
		if t.Found[pos] == 0 {
			return false
		}
	}

	return true
}

// earlierStubShares reports whether a stub before offset i, at or after the
// first significant stub, carries the same simplified tail. The predicate
// addresses the first occurrence of a tail name, so a later occurrence
// cannot serve as the chosen tail.
func earlierStubShares(stubs []*index.Tail, fi, i int) bool {
	for j := fi; j < i; j++ {
		if stubs[j].SimpleTail == stubs[i].SimpleTail {
			return true
		}
	}

	return false
}

// uniqueInSubgroup reports whether the pair occurs at no other position of
// the subgroup while its tail occurs at every one.
func uniqueInSubgroup(sub *index.Subgroup, t *index.Tail, pos int) bool {
	for _, p := range sub.Positions {
		if p == pos {
			continue
		}

		if t.ValueFound[p] != 0 || t.Found[p] == 0 {
			return false
		}
	}

	return true
}
