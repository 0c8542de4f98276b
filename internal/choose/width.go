package choose

import (
	"augrewrite/internal/config"
	"augrewrite/internal/index"
	"augrewrite/internal/quote"
)

// chooseReWidths computes, per position, the shortest literal prefix that
// still tells the chosen value apart from every other value sharing its
// tail, then renders the regexp forms at those widths. The combined
// preference needs a width for the first tail as well.
func chooseReWidths(cfg config.Run, g *index.Group) {
	for pos := 1; pos <= g.MaxPosition; pos++ {
		chosen := g.Chosen[pos]
		if chosen == nil {
			continue
		}

		first := g.First[pos]
		combo := g.State[pos] == index.StateComboStart

		widthChosen, widthFirst := 0, 0

		for _, t := range g.Tails {
			if t != chosen && t.SimpleTail == chosen.SimpleTail {
				if _, matched := index.CompareValues(t.Value, chosen.Value, true); matched > widthChosen {
					widthChosen = matched
				}
			}

			if combo && chosen != first && t != first && t.SimpleTail == first.SimpleTail {
				if _, matched := index.CompareValues(t.Value, first.Value, true); matched > widthFirst {
					widthFirst = matched
				}
			}
		}

		widthChosen = max(widthChosen, cfg.RegexpLen)
		widthFirst = max(widthFirst, cfg.RegexpLen)
		g.ReWidthChosen[pos] = widthChosen
		g.ReWidthFirst[pos] = widthFirst

		if chosen.Value.Present {
			chosen.Regexp = quote.Regexp(chosen.Value.Str, widthChosen)
		}

		if combo {
			if chosen == first {
				first.Regexp = chosen.Regexp
			} else if first.Value.Present {
				first.Regexp = quote.Regexp(first.Value.Str, widthFirst)
			}
		}
	}
}

// choosePrettyWidths computes the padded column width per position. For
// each distinct chosen tail name the width is the longest rendered value
// among the positions choosing it, capped so one oversized value does not
// pad the whole column out.
func choosePrettyWidths(g *index.Group) {
	for pos := 1; pos <= g.MaxPosition; pos++ {
		t := g.Chosen[pos]
		if g.State[pos] == index.StateComboStart {
			t = g.First[pos]
		}

		if t == nil {
			continue
		}

		if g.RegexpMode() {
			g.PrettyWidth[pos] = len(t.Regexp)
		} else {
			g.PrettyWidth[pos] = len(t.Quoted)
		}
	}

	for pos := 1; pos <= g.MaxPosition; pos++ {
		if g.Chosen[pos] == nil {
			continue
		}

		width := 0
		name := g.Chosen[pos].SimpleTail

		for ps := pos; ps <= g.MaxPosition; ps++ {
			if g.Chosen[ps] == nil || g.Chosen[ps].SimpleTail != name {
				continue
			}

			if g.PrettyWidth[ps] <= config.MaxPrettyWidth {
				width = max(width, g.PrettyWidth[ps])
			}

			g.PrettyWidth[ps] = width
		}

		g.PrettyWidth[pos] = min(width, config.MaxPrettyWidth)
	}
}
