package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"augrewrite/internal/config"
	"augrewrite/internal/tree"
)

func TestResolveCreatesOnce(t *testing.T) {
	ix := New(config.Run{})

	g := ix.Resolve("/files/etc/hosts/")
	assert.Same(t, g, ix.Resolve("/files/etc/hosts/"))
	assert.Same(t, g, ix.Lookup("/files/etc/hosts/"))
	assert.Nil(t, ix.Lookup("/files/etc/fstab/"))
	assert.Len(t, ix.Groups, 1)
}

func TestRegisterMergesFoundAcrossValues(t *testing.T) {
	ix := New(config.Run{})
	g := ix.Resolve("/files/etc/hosts/")

	t1 := g.Register("/ipaddr", 1, tree.SomeValue("127.0.0.1"))
	t2 := g.Register("/ipaddr", 2, tree.SomeValue("192.168.0.1"))

	require.NotSame(t, t1, t2)
	require.Len(t, g.Tails, 2)

	// Bare-tail counts are kept equal across both records.
	assert.Equal(t, 1, t1.Found[1])
	assert.Equal(t, 1, t1.Found[2])
	assert.Equal(t, 1, t2.Found[1])
	assert.Equal(t, 1, t2.Found[2])

	// Exact-pair counts stay per record.
	assert.Equal(t, 1, t1.ValueFound[1])
	assert.Equal(t, 0, t1.ValueFound[2])
	assert.Equal(t, 0, t2.ValueFound[1])
	assert.Equal(t, 1, t2.ValueFound[2])
	assert.Equal(t, 1, t1.ValueTotal)
	assert.Equal(t, 1, t2.ValueTotal)
}

func TestRegisterRepeatedPair(t *testing.T) {
	ix := New(config.Run{})
	g := ix.Resolve("/files/etc/exports/")

	t1 := g.Register("/client/ro", 1, tree.NoValue())
	t2 := g.Register("/client/ro", 2, tree.NoValue())

	assert.Same(t, t1, t2)
	assert.Equal(t, 2, t1.ValueTotal)
	assert.Equal(t, 1, t1.ValueFound[1])
	assert.Equal(t, 1, t1.ValueFound[2])
	assert.Len(t, g.AtPosition[1], 1)
	assert.Len(t, g.AtPosition[2], 1)
}

func TestRegisterQuotesPresentValues(t *testing.T) {
	ix := New(config.Run{})
	g := ix.Resolve("/h/")

	withVal := g.Register("/k", 1, tree.SomeValue("it's"))
	noVal := g.Register("/flag", 1, tree.NoValue())

	assert.Equal(t, `"it's"`, withVal.Quoted)
	assert.Equal(t, "", noVal.Quoted)
}

func TestGrowExtendsExistingTails(t *testing.T) {
	ix := New(config.Run{})
	g := ix.Resolve("/h/")

	t1 := g.Register("/k", 1, tree.SomeValue("x"))
	require.Len(t, g.AtPosition, 8)
	require.Len(t, t1.Found, 8)

	g.Register("/k", 9, tree.SomeValue("x"))

	assert.Equal(t, 9, g.MaxPosition)
	assert.Len(t, g.AtPosition, 16)
	assert.Len(t, t1.Found, 16)
	assert.Len(t, t1.ValueFound, 16)
	assert.Equal(t, 1, t1.Found[1])
	assert.Equal(t, 1, t1.Found[9])
	assert.Equal(t, 2, t1.ValueTotal)
}

func TestResolveSubgroup(t *testing.T) {
	ix := New(config.Run{})
	g := ix.Resolve("/h/")

	shared := g.Register("/name", 1, tree.SomeValue("a"))
	g.Register("/name", 2, tree.SomeValue("a"))
	other := g.Register("/name", 3, tree.SomeValue("b"))

	s := g.ResolveSubgroup(shared)
	require.Equal(t, []int{1, 2}, s.Positions)
	assert.Equal(t, 1, g.SubgroupRank[1])
	assert.Equal(t, 2, g.SubgroupRank[2])
	assert.Equal(t, 0, g.SubgroupRank[3])

	// Cached on repeat lookup.
	assert.Same(t, s, g.ResolveSubgroup(shared))
	assert.Len(t, g.Subgroups, 1)

	s2 := g.ResolveSubgroup(other)
	assert.Equal(t, []int{3}, s2.Positions)
	assert.Equal(t, 1, g.SubgroupRank[3])
}

func TestCompareValues(t *testing.T) {
	tests := []struct {
		name       string
		a, b       tree.Value
		regexpMode bool
		equal      bool
		matched    int
	}{
		{"both absent", tree.NoValue(), tree.NoValue(), false, true, 0},
		{"one absent", tree.SomeValue("x"), tree.NoValue(), false, false, 0},
		{"equal strings", tree.SomeValue("abc"), tree.SomeValue("abc"), false, true, 3},
		{"common prefix", tree.SomeValue("abcd"), tree.SomeValue("abxy"), false, false, 2},
		{"prefix of other", tree.SomeValue("ab"), tree.SomeValue("abc"), false, false, 2},
		{"bracket differs plain", tree.SomeValue("a]c"), tree.SomeValue("abc"), false, false, 1},
		{"bracket wildcard regexp", tree.SomeValue("a]c"), tree.SomeValue("abc"), true, true, 3},
		{"regexp length mismatch", tree.SomeValue("a]"), tree.SomeValue("abc"), true, false, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			equal, matched := CompareValues(tt.a, tt.b, tt.regexpMode)
			assert.Equal(t, tt.equal, equal)
			assert.Equal(t, tt.matched, matched)
		})
	}
}

func TestRegexpModeMergesBracketValues(t *testing.T) {
	ix := New(config.Run{RegexpLen: 8})
	g := ix.Resolve("/h/")

	t1 := g.Register("/k", 1, tree.SomeValue("a]c"))
	t2 := g.Register("/k", 2, tree.SomeValue("abc"))

	assert.Same(t, t1, t2)
	assert.Equal(t, 2, t1.ValueTotal)
}
