// Package index accumulates, per sibling group, every (simplified tail,
// value) observation across the positions seen during segmentation.
//
// Key types:
//   - Index: all groups of a run, in insertion order
//   - Group: one parent head, with per-position arrays growing on demand
//   - Tail: a distinct (simplified tail, value) pair with per-position
//     found counters
//   - Subgroup: the positions sharing the same first significant tail
//
// Registration must complete for every leaf before selection reads the
// counters; selection must complete before emission reads the states.
package index
