// Package diagnostic provides structured warnings, errors, and infos for
// the rewrite pipeline.
//
// Key capabilities:
//   - Missing-predicate warnings for positions degraded to a wildcard match
//   - Ambiguous lens-inference reports
//   - Aggregation into a single run result instead of global state
package diagnostic
