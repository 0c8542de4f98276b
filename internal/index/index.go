package index

import (
	"go.uber.org/zap"

	"augrewrite/internal/config"
)

// Index holds the groups of one run, in the order their heads were first
// seen. Emission walks Groups directly to keep output order stable.
type Index struct {
	Groups []*Group

	byHead     map[string]*Group
	regexpMode bool
	log        *zap.SugaredLogger
}

// New returns an empty index configured for the run.
func New(cfg config.Run) *Index {
	return &Index{
		byHead:     make(map[string]*Group),
		regexpMode: cfg.UseRegexp(),
		log:        cfg.Logger(),
	}
}

// Resolve returns the group for head, creating it on first use.
func (ix *Index) Resolve(head string) *Group {
	if g, ok := ix.byHead[head]; ok {
		return g
	}

	g := &Group{Head: head, regexpMode: ix.regexpMode, log: ix.log}
	ix.Groups = append(ix.Groups, g)
	ix.byHead[head] = g

	return g
}

// Lookup returns the group for head, or nil when no leaf produced it.
func (ix *Index) Lookup(head string) *Group {
	return ix.byHead[head]
}
