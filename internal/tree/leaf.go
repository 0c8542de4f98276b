package tree

// Value is a node value that may be absent. Non-terminal nodes and empty
// sequence entries have no value at all, which is distinct from an empty
// string.
type Value struct {
	Str     string
	Present bool
}

// SomeValue returns a present value.
func SomeValue(s string) Value { return Value{Str: s, Present: true} }

// NoValue returns an absent value.
func NoValue() Value { return Value{} }

// Empty reports whether the value is absent or the empty string. Empty
// values never act as discriminating predicates.
func (v Value) Empty() bool { return !v.Present || v.Str == "" }

// Equal reports exact equality, including presence.
func (v Value) Equal(o Value) bool { return v.Present == o.Present && v.Str == o.Str }

// Leaf is one (path, value) pair delivered by the tree provider.
type Leaf struct {
	Path  string
	Value Value
}
