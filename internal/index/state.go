package index

// SelState records how a position's predicate was selected and, during
// emission, whether the field the predicate references is known to exist
// yet. Selection assigns the initial states; only the emission pass moves
// them through their Pending/Done transitions.
type SelState int

const (
	// StateUnset is the explicit value for slots selection has not
	// touched.
	StateUnset SelState = iota
	// StateFirstTail selects the first significant tail, whose
	// (tail, value) pair is unique across the group.
	StateFirstTail
	// StateUniqueStart selects a group-wide unique tail present at every
	// position; no line for the position has been rendered yet.
	StateUniqueStart
	// StateUniquePending means lines are being rendered but the line
	// creating the chosen tail has not appeared, so predicates carry the
	// count()=0 escape clause.
	StateUniquePending
	// StateUniqueDone means the creating line has been rendered and the
	// escape clause is no longer needed.
	StateUniqueDone
	// StateComboStart, StateComboPending and StateComboDone are the
	// corresponding states for a first-tail plus chosen-tail pair.
	StateComboStart
	StateComboPending
	StateComboDone
	// StateFirstPlusRank means no discriminating tail exists; the first
	// tail is combined with the position's rank within its subgroup.
	StateFirstPlusRank
	// StateNoPredicate means the position has no tails at all and is
	// matched with an unconstrained wildcard.
	StateNoPredicate
)

// String returns the state name used in debug traces.
func (s SelState) String() string {
	switch s {
	case StateUnset:
		return "unset"
	case StateFirstTail:
		return "first-tail"
	case StateUniqueStart:
		return "unique-start"
	case StateUniquePending:
		return "unique-pending"
	case StateUniqueDone:
		return "unique-done"
	case StateComboStart:
		return "combo-start"
	case StateComboPending:
		return "combo-pending"
	case StateComboDone:
		return "combo-done"
	case StateFirstPlusRank:
		return "first-plus-rank"
	case StateNoPredicate:
		return "no-predicate"
	default:
		return "unknown"
	}
}
