// Package suggest runs the whole rewrite pipeline: it indexes every leaf
// of the tree, selects a predicate for every position, and emits the
// position-free script.
package suggest
