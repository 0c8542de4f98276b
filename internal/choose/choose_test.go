package choose

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"augrewrite/internal/config"
	"augrewrite/internal/diagnostic"
	"augrewrite/internal/index"
	"augrewrite/internal/pathseg"
	"augrewrite/internal/tree"
)

// register feeds one leaf through segmentation into the index, the way the
// run pipeline does.
func register(t *testing.T, ix *index.Index, path string, value tree.Value) {
	t.Helper()

	for _, seg := range pathseg.Split(path, "seq::*") {
		if seg.Position == pathseg.NoPosition {
			continue
		}

		ix.Resolve(seg.Head).Register(seg.SimpleTail, seg.Position, value)
	}
}

func TestChooseFirstTailUnique(t *testing.T) {
	cfg := config.Run{}
	ix := index.New(cfg)
	register(t, ix, "/files/etc/hosts/1/ipaddr", tree.SomeValue("127.0.0.1"))
	register(t, ix, "/files/etc/hosts/1/canonical", tree.SomeValue("localhost"))
	register(t, ix, "/files/etc/hosts/2/ipaddr", tree.SomeValue("192.168.0.1"))
	register(t, ix, "/files/etc/hosts/2/canonical", tree.SomeValue("host1"))

	var diags diagnostic.Diagnostics
	All(cfg, ix, &diags)

	g := ix.Lookup("/files/etc/hosts/")
	require.NotNil(t, g)

	for pos := 1; pos <= 2; pos++ {
		assert.Equal(t, index.StateFirstTail, g.State[pos])
		assert.Equal(t, "/ipaddr", g.Chosen[pos].SimpleTail)
		assert.Same(t, g.First[pos], g.Chosen[pos])
	}

	assert.Empty(t, diags.Warnings)
}

func TestChooseUniqueTailEverywhere(t *testing.T) {
	cfg := config.Run{}
	ix := index.New(cfg)
	register(t, ix, "/h/1/type", tree.SomeValue("a"))
	register(t, ix, "/h/1/name", tree.SomeValue("n1"))
	register(t, ix, "/h/2/type", tree.SomeValue("a"))
	register(t, ix, "/h/2/name", tree.SomeValue("n2"))

	var diags diagnostic.Diagnostics
	All(cfg, ix, &diags)

	g := ix.Lookup("/h/")
	require.NotNil(t, g)

	assert.Equal(t, index.StateUniqueStart, g.State[1])
	assert.Equal(t, "/name", g.Chosen[1].SimpleTail)
	assert.Equal(t, "'n1'", g.Chosen[1].Quoted)
	assert.Equal(t, "/type", g.First[1].SimpleTail)

	assert.Equal(t, index.StateUniqueStart, g.State[2])
	assert.Equal(t, "'n2'", g.Chosen[2].Quoted)
}

func TestChooseComboWithinSubgroup(t *testing.T) {
	cfg := config.Run{}
	ix := index.New(cfg)
	register(t, ix, "/h/1/k", tree.SomeValue("a"))
	register(t, ix, "/h/1/x", tree.SomeValue("p"))
	register(t, ix, "/h/2/k", tree.SomeValue("a"))
	register(t, ix, "/h/2/x", tree.SomeValue("q"))
	register(t, ix, "/h/3/k", tree.SomeValue("b"))
	register(t, ix, "/h/3/x", tree.SomeValue("p"))

	var diags diagnostic.Diagnostics
	All(cfg, ix, &diags)

	g := ix.Lookup("/h/")
	require.NotNil(t, g)

	// x='p' repeats at position 3, so position 1 must combine it with
	// k='a'.
	assert.Equal(t, index.StateComboStart, g.State[1])
	assert.Equal(t, "/x", g.Chosen[1].SimpleTail)
	assert.Equal(t, "'p'", g.Chosen[1].Quoted)
	assert.Equal(t, "/k", g.First[1].SimpleTail)

	// x='q' is unique in the whole group, so position 2 needs no
	// combination.
	assert.Equal(t, index.StateUniqueStart, g.State[2])
	assert.Equal(t, "'q'", g.Chosen[2].Quoted)

	// Position 3 is unique on k=b alone.
	assert.Equal(t, index.StateFirstTail, g.State[3])
	assert.Equal(t, "'b'", g.Chosen[3].Quoted)

	require.Len(t, g.Subgroups, 1)
	assert.Equal(t, []int{1, 2}, g.Subgroups[0].Positions)
	assert.Equal(t, 1, g.SubgroupRank[1])
	assert.Equal(t, 2, g.SubgroupRank[2])
}

func TestChooseFallbackRank(t *testing.T) {
	cfg := config.Run{}
	ix := index.New(cfg)
	register(t, ix, "/h/1/k", tree.SomeValue("a"))
	register(t, ix, "/h/1/x", tree.SomeValue("p"))
	register(t, ix, "/h/2/k", tree.SomeValue("a"))
	register(t, ix, "/h/2/x", tree.SomeValue("p"))

	var diags diagnostic.Diagnostics
	All(cfg, ix, &diags)

	g := ix.Lookup("/h/")
	require.NotNil(t, g)

	for pos := 1; pos <= 2; pos++ {
		assert.Equal(t, index.StateFirstPlusRank, g.State[pos])
		assert.Equal(t, "/k", g.Chosen[pos].SimpleTail)
		assert.Equal(t, pos, g.SubgroupRank[pos])
	}
}

func TestChooseRepeatedLabelFallsBack(t *testing.T) {
	cfg := config.Run{}
	ix := index.New(cfg)
	register(t, ix, "/h/1/alias[1]", tree.SomeValue("a"))
	register(t, ix, "/h/1/alias[2]", tree.SomeValue("b"))
	register(t, ix, "/h/2/alias[1]", tree.SomeValue("a"))
	register(t, ix, "/h/2/alias[2]", tree.SomeValue("c"))

	var diags diagnostic.Diagnostics
	All(cfg, ix, &diags)

	g := ix.Lookup("/h/")
	require.NotNil(t, g)

	// alias='b' is unique, but a predicate on alias would address the
	// first alias, so the unique pair cannot be used and the position
	// falls back to its rank.
	assert.Equal(t, index.StateFirstPlusRank, g.State[1])
	assert.Equal(t, "'a'", g.Chosen[1].Quoted)
	assert.Equal(t, 1, g.SubgroupRank[1])
	assert.Equal(t, index.StateFirstPlusRank, g.State[2])
	assert.Equal(t, 2, g.SubgroupRank[2])
}

func TestFirstSignificantSkipsNullIntermediates(t *testing.T) {
	cfg := config.Run{}
	ix := index.New(cfg)
	register(t, ix, "/h/1", tree.NoValue())
	register(t, ix, "/h/1/a", tree.NoValue())
	register(t, ix, "/h/1/a/b", tree.SomeValue("v"))

	var diags diagnostic.Diagnostics
	All(cfg, ix, &diags)

	g := ix.Lookup("/h/")
	require.NotNil(t, g)

	assert.Equal(t, index.StateFirstTail, g.State[1])
	assert.Equal(t, "/a/b", g.Chosen[1].SimpleTail)
}

func TestFirstSignificantStopsAtSibling(t *testing.T) {
	cfg := config.Run{}
	ix := index.New(cfg)
	register(t, ix, "/h/1", tree.NoValue())
	register(t, ix, "/h/1/a", tree.NoValue())
	register(t, ix, "/h/1/bc", tree.SomeValue("v"))

	var diags diagnostic.Diagnostics
	All(cfg, ix, &diags)

	g := ix.Lookup("/h/")
	require.NotNil(t, g)

	// /a has no value but /bc is not its child, so /a is significant.
	assert.Equal(t, index.StateFirstTail, g.State[1])
	assert.Equal(t, "/a", g.Chosen[1].SimpleTail)
	assert.False(t, g.Chosen[1].Value.Present)
}

func TestChooseGapPositionWarns(t *testing.T) {
	cfg := config.Run{}
	ix := index.New(cfg)
	register(t, ix, "/h/2/k", tree.SomeValue("v"))

	var diags diagnostic.Diagnostics
	All(cfg, ix, &diags)

	g := ix.Lookup("/h/")
	require.NotNil(t, g)

	assert.Equal(t, index.StateNoPredicate, g.State[1])
	assert.Nil(t, g.Chosen[1])
	assert.Equal(t, index.StateFirstTail, g.State[2])

	require.Len(t, diags.Warnings, 1)
	assert.Equal(t, "no_child_nodes", diags.Warnings[0].Code)
	assert.Equal(t, 1, diags.Warnings[0].Position)
}

func TestReWidthMinimum(t *testing.T) {
	cfg := config.Run{RegexpLen: 8}
	ix := index.New(cfg)
	register(t, ix, "/files/etc/hosts/1/ipaddr", tree.SomeValue("127.0.0.1"))
	register(t, ix, "/files/etc/hosts/2/ipaddr", tree.SomeValue("127.0.0.2"))

	var diags diagnostic.Diagnostics
	All(cfg, ix, &diags)

	g := ix.Lookup("/files/etc/hosts/")
	require.NotNil(t, g)

	assert.Equal(t, 8, g.ReWidthChosen[1])
	assert.Equal(t, `'127\\.0\\.0\\.1'`, g.Chosen[1].Regexp)
	assert.Equal(t, `'127\\.0\\.0\\.2'`, g.Chosen[2].Regexp)
}

func TestReWidthDiscriminates(t *testing.T) {
	cfg := config.Run{RegexpLen: 8}
	ix := index.New(cfg)
	register(t, ix, "/h/1/name", tree.SomeValue("production-db-host"))
	register(t, ix, "/h/2/name", tree.SomeValue("production-cache-host"))

	var diags diagnostic.Diagnostics
	All(cfg, ix, &diags)

	g := ix.Lookup("/h/")
	require.NotNil(t, g)

	// The values share an 11-character run, so 8 literal characters
	// would not tell them apart.
	assert.Equal(t, 11, g.ReWidthChosen[1])
	assert.Equal(t, `'production-d.*'`, g.Chosen[1].Regexp)
	assert.Equal(t, `'production-c.*'`, g.Chosen[2].Regexp)
}

func TestPrettyWidthsAlignColumn(t *testing.T) {
	cfg := config.Run{Pretty: true}
	ix := index.New(cfg)
	register(t, ix, "/files/etc/hosts/1/ipaddr", tree.SomeValue("127.0.0.1"))
	register(t, ix, "/files/etc/hosts/2/ipaddr", tree.SomeValue("192.168.0.1"))

	var diags diagnostic.Diagnostics
	All(cfg, ix, &diags)

	g := ix.Lookup("/files/etc/hosts/")
	require.NotNil(t, g)

	// Both positions pad to the longest rendered value, len("'192.168.0.1'").
	assert.Equal(t, 13, g.PrettyWidth[1])
	assert.Equal(t, 13, g.PrettyWidth[2])
}

func TestPrettyWidthOversizedValueDoesNotPad(t *testing.T) {
	cfg := config.Run{Pretty: true}
	ix := index.New(cfg)
	register(t, ix, "/h/1/k", tree.SomeValue(strings.Repeat("x", 40)))
	register(t, ix, "/h/2/k", tree.SomeValue("short"))

	var diags diagnostic.Diagnostics
	All(cfg, ix, &diags)

	g := ix.Lookup("/h/")
	require.NotNil(t, g)

	assert.Equal(t, 7, g.PrettyWidth[1])
	assert.Equal(t, 7, g.PrettyWidth[2])
}
