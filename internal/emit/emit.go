package emit

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"augrewrite/internal/config"
	"augrewrite/internal/index"
	"augrewrite/internal/pathseg"
	"augrewrite/internal/quote"
	"augrewrite/internal/tree"
)

// Emitter writes the rewritten script for one run.
type Emitter struct {
	cfg config.Run
	ix  *index.Index
	log *zap.SugaredLogger
}

// New returns an emitter over a fully selected index.
func New(cfg config.Run, ix *index.Index) *Emitter {
	return &Emitter{cfg: cfg, ix: ix, log: cfg.Logger()}
}

// Script writes one set command per leaf, in input order. Intermediate
// leaves without a value are skipped, since setting their descendants
// creates them implicitly.
func (e *Emitter) Script(w io.Writer, leaves []tree.Leaf) error {
	bw := bufio.NewWriter(w)

	for i, leaf := range leaves {
		quoted := ""
		if leaf.Value.Present {
			quoted = quote.Quote(leaf.Value.Str)
		}

		noValue := !leaf.Value.Present || leaf.Value.Str == ""

		if e.cfg.Verbose {
			if noValue {
				fmt.Fprintf(bw, "#   %s\n", leaf.Path)
			} else {
				fmt.Fprintf(bw, "#   %s  %s\n", leaf.Path, quoted)
			}
		}

		if noValue && i+1 < len(leaves) && pathseg.IsChildPath(leaf.Path, leaves[i+1].Path) {
			e.log.Debugf("skip %s: no value and has child nodes", leaf.Path)

			continue
		}

		segs := pathseg.Split(leaf.Path, e.cfg.SeqWildcard())

		bw.WriteString("set ")

		for _, seg := range segs {
			e.segment(bw, seg, quoted)
		}

		if leaf.Value.Present {
			bw.WriteByte(' ')
			bw.WriteString(quoted)
		}

		bw.WriteByte('\n')

		if e.cfg.Pretty && i+1 < len(leaves) && e.groupChanges(segs[0], leaves[i+1]) {
			bw.WriteByte('\n')
		}
	}

	return bw.Flush()
}

// segment writes one path level: its verbatim text, the sequence wildcard
// when the level is purely numeric, and the predicate for its position.
func (e *Emitter) segment(bw *bufio.Writer, seg pathseg.Segment, leafQuoted string) {
	bw.WriteString(seg.Text)

	if seg.Text[len(seg.Text)-1] == '/' {
		bw.WriteString(e.cfg.SeqWildcard())
	}

	if seg.Position == pathseg.NoPosition {
		return
	}

	g := e.ix.Lookup(seg.Head)
	if g == nil {
		return
	}

	pos := seg.Position
	chosen := g.Chosen[pos]
	first := g.First[pos]
	state := g.State[pos]

	switch state {
	case index.StateUniqueStart, index.StateFirstTail, index.StateUniqueDone, index.StateFirstPlusRank:
		if state == index.StateUniqueStart {
			g.State[pos] = index.StateUniquePending
		}

		e.plainTerm(bw, g, pos, chosen)

		if state == index.StateFirstPlusRank {
			fmt.Fprintf(bw, "[%d]", g.SubgroupRank[pos])
		}
	case index.StateUniquePending:
		e.escapeTerm(bw, g, pos, chosen)

		if chosen.SimpleTail == seg.SimpleTail && chosen.Quoted == leafQuoted {
			g.State[pos] = index.StateUniqueDone
		}
	case index.StateComboStart:
		e.comboTerm(bw, g, pos, first, chosen, false)
		g.State[pos] = index.StateComboPending
	case index.StateComboPending:
		e.comboTerm(bw, g, pos, first, chosen, true)

		if chosen.SimpleTail == seg.SimpleTail && chosen.Quoted == leafQuoted {
			g.State[pos] = index.StateComboDone
		}
	case index.StateComboDone:
		e.comboTerm(bw, g, pos, first, chosen, false)
	case index.StateNoPredicate:
		if seg.Text[len(seg.Text)-1] != '/' {
			bw.WriteString("[*]")
		}
	default:
		e.log.Debugf("segment %s[%d]: unexpected state %v", g.Head, pos, state)
	}
}

// plainTerm writes a single-tail predicate.
func (e *Emitter) plainTerm(bw *bufio.Writer, g *index.Group, pos int, t *index.Tail) {
	expr := tailExpr(t.SimpleTail)

	switch {
	case !t.Value.Present:
		fmt.Fprintf(bw, "[%s]", expr)
	case e.cfg.UseRegexp():
		fmt.Fprintf(bw, "[%s=~regexp(%s)]", expr, pad(t.Regexp, g.PrettyWidth[pos]))
	default:
		fmt.Fprintf(bw, "[%s=%s]", expr, pad(t.Quoted, g.PrettyWidth[pos]))
	}
}

// escapeTerm writes a single-tail predicate with the count()=0 escape
// clause, for commands rendered before the one creating the tail.
func (e *Emitter) escapeTerm(bw *bufio.Writer, g *index.Group, pos int, t *index.Tail) {
	expr := tailExpr(t.SimpleTail)

	switch {
	case !t.Value.Present:
		fmt.Fprintf(bw, "[%s or count(%s)=0]", expr, expr)
	case e.cfg.UseRegexp():
		fmt.Fprintf(bw, "[%s=~regexp(%s) or count(%s)=0]", expr, pad(t.Regexp, g.PrettyWidth[pos]), expr)
	default:
		fmt.Fprintf(bw, "[%s=%s or count(%s)=0]", expr, pad(t.Quoted, g.PrettyWidth[pos]), expr)
	}
}

// comboTerm writes a first-tail-and-chosen-tail predicate. With pending
// set, the chosen half carries the count()=0 escape clause.
func (e *Emitter) comboTerm(bw *bufio.Writer, g *index.Group, pos int, first, chosen *index.Tail, pending bool) {
	fexpr := tailExpr(first.SimpleTail)
	cexpr := tailExpr(chosen.SimpleTail)

	cval := "=" + chosen.Quoted
	if e.cfg.UseRegexp() {
		cval = fmt.Sprintf("=~regexp(%s)", chosen.Regexp)
	}

	if !first.Value.Present {
		if pending {
			fmt.Fprintf(bw, "[%s and ( %s%s or count(%s)=0 )]", fexpr, cexpr, cval, cexpr)
		} else {
			fmt.Fprintf(bw, "[%s and %s%s]", fexpr, cexpr, cval)
		}

		return
	}

	fval := "=" + pad(first.Quoted, g.PrettyWidth[pos])
	if e.cfg.UseRegexp() {
		fval = fmt.Sprintf("=~regexp(%s)", pad(first.Regexp, g.PrettyWidth[pos]))
	}

	if pending {
		fmt.Fprintf(bw, "[%s%s and ( %s%s or count(%s)=0 ) ]", fexpr, fval, cexpr, cval, cexpr)
	} else {
		fmt.Fprintf(bw, "[%s%s and %s%s]", fexpr, fval, cexpr, cval)
	}
}

// groupChanges reports whether the next leaf starts a different group or
// position, which in pretty mode earns a separating blank line.
func (e *Emitter) groupChanges(seg pathseg.Segment, next tree.Leaf) bool {
	nseg := pathseg.Split(next.Path, e.cfg.SeqWildcard())[0]

	cur, nxt := e.group(seg), e.group(nseg)
	if cur != nxt {
		return true
	}

	return cur != nil && seg.Position != nseg.Position
}

func (e *Emitter) group(seg pathseg.Segment) *index.Group {
	if seg.Position == pathseg.NoPosition {
		return nil
	}

	return e.ix.Lookup(seg.Head)
}

// tailExpr converts a simplified tail into a path expression term: "/path"
// addresses the child path, "" addresses the node itself.
func tailExpr(simpleTail string) string {
	switch {
	case strings.HasPrefix(simpleTail, "/"):
		return simpleTail[1:]
	case simpleTail == "":
		return "."
	default:
		return simpleTail
	}
}

// pad left-justifies s in a field of the given width. Oversized values are
// kept whole.
func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}

	return s + strings.Repeat(" ", width-len(s))
}
