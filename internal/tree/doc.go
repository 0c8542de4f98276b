// Package tree is the tree-provider boundary of the rewriter.
//
// It defines the leaf model consumed by the pipeline and the ways leaves
// enter it:
//   - ParseDump reads an augtool print style listing of (path, value) pairs
//   - Reroot rewrites leaves under a new target path
//   - Registry infers the lens applying to a target file from glob patterns
//
// Leaves must arrive in pre-order: parents before descendants, siblings in
// their original positional order. The rewriter does not re-sort them.
package tree
