// Package pathseg splits raw tree paths into positional segments.
//
// A path like /head/label_a[123]/middle/label_b[456]/tail breaks into one
// segment per position marker plus a trailing marker-free segment. Each
// segment records the head (group key), the printable segment text, the
// 1-based position, and a simplified tail in which every later position
// marker is removed ([N]) or replaced by a sequence wildcard (/N), so tails
// from different positions compare equal.
package pathseg
