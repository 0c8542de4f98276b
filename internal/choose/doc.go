// Package choose selects the path-expression predicate for every position
// of every sibling group, after registration and before emission.
//
// Selection tries four preferences in order:
//  1. the first significant tail when its (tail, value) pair is unique in
//     the group
//  2. any unique (tail, value) pair whose tail exists at every position
//  3. a unique (tail, value) pair within the subgroup of positions sharing
//     the first tail, combined with the first tail
//  4. the first tail combined with the position's rank in its subgroup
//
// It also computes the regexp literal widths and the pretty padding widths
// the emitter renders with.
package choose
