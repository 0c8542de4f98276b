package suggest

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"

	"augrewrite/internal/choose"
	"augrewrite/internal/config"
	"augrewrite/internal/diagnostic"
	"augrewrite/internal/emit"
	"augrewrite/internal/index"
	"augrewrite/internal/pathseg"
	"augrewrite/internal/tree"
)

// Run rewrites the leaves into a script on w and returns the diagnostics
// collected along the way. The leaves must be in tree order, the way a
// dump lists them, or the escape clauses come out wrong.
func Run(cfg config.Run, leaves []tree.Leaf, w io.Writer) (*diagnostic.Diagnostics, error) {
	diags := &diagnostic.Diagnostics{}

	ix := index.New(cfg)

	for _, leaf := range leaves {
		for _, seg := range pathseg.Split(leaf.Path, cfg.SeqWildcard()) {
			if seg.Position == pathseg.NoPosition {
				continue
			}

			ix.Resolve(seg.Head).Register(seg.SimpleTail, seg.Position, leaf.Value)
		}
	}

	choose.All(cfg, ix, diags)

	if cfg.Debug {
		cfg.Logger().Debugf("selected index:\n%s", spew.Sdump(ix.Groups))
	}

	if err := emit.New(cfg, ix).Script(w, leaves); err != nil {
		return diags, fmt.Errorf("writing script: %w", err)
	}

	return diags, nil
}
