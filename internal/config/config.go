// Package config holds the run configuration shared by every stage of the
// rewrite pipeline. One explicit Run value is passed to each component; no
// stage keeps package-level state.
package config

import "go.uber.org/zap"

// MaxPrettyWidth caps the padded column width used by pretty alignment.
const MaxPrettyWidth = 30

// DefaultRegexpLen is the minimum literal prefix length used when regexp
// predicates are requested without an explicit length.
const DefaultRegexpLen = 8

// Run is the configuration for one rewrite run. The zero value disables all
// optional behavior and logs nothing.
type Run struct {
	// Pretty pads predicate values for visual alignment and separates
	// sibling groups with blank lines.
	Pretty bool
	// RegexpLen is the minimum literal prefix length for regexp
	// predicates; 0 disables regexp predicates entirely.
	RegexpLen int
	// NoSeq emits "*" instead of "seq::*" for purely numeric positions,
	// for compatibility with augeas before 1.13.0.
	NoSeq bool
	// Verbose echoes each input leaf as a comment line in the output.
	Verbose bool
	// Debug enables diagnostic tracing. It has no effect on the emitted
	// script.
	Debug bool
	// Log receives debug traces. Nil means no logging.
	Log *zap.SugaredLogger
}

// UseRegexp reports whether regexp predicates are enabled.
func (r Run) UseRegexp() bool { return r.RegexpLen > 0 }

// SeqWildcard returns the wildcard token substituted for purely numeric
// position markers.
func (r Run) SeqWildcard() string {
	if r.NoSeq {
		return "*"
	}

	return "seq::*"
}

// Logger returns the configured logger, or a no-op logger if none is set.
func (r Run) Logger() *zap.SugaredLogger {
	if r.Log == nil {
		return zap.NewNop().Sugar()
	}

	return r.Log
}
