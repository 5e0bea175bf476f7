package emit

import (
	"io"

	"github.com/coregx/derivlex/dfa"
)

// Dot writes d as a Graphviz digraph: one node per state, the start
// state pointed to by an unlabelled entry arrow, a doublecircle "end"
// sink for states with an own (entry/EOF) tag, and one edge per
// compressed transition group labelled with a compact character-class
// notation plus a "/name" on-entry-tag suffix (spec.md §6, "Dot
// emission"). names[i] must hold the pattern name for tag id i.
func Dot(w io.Writer, d *dfa.Dfa, names Names) error {
	b := newBuffer(w, 2)
	b.line("digraph dfa {")
	b.push()
	b.line("rankdir=LR")
	b.line(`"" [shape=none]`)
	b.line(`"" -> "%d"`, d.Start)
	b.line(`"end" [shape=doublecircle]`)

	d.IterStates(func(i int, s *dfa.State) bool {
		b.line(`"%d" [shape=circle fixedsize=shape]`, i)
		if s.Tag >= 0 {
			b.line(`"%d" -> "end" [label="EOF/%s"]`, i, names.nameOf(s.Tag))
		}
		return true
	})

	d.IterStates(func(i int, s *dfa.State) bool {
		for _, group := range groupByTargetAndTag(compressedTransitions(s)) {
			if group.target < 0 {
				continue
			}
			label := classLabel(group.bands)
			if group.tag >= 0 {
				label += "/" + names.nameOf(group.tag)
			}
			b.line(`"%d" -> "%d" [label=<[%s]>]`, i, group.target, label)
		}
		return true
	})

	b.pop()
	b.line("}")
	return b.flush()
}

type transitionGroup struct {
	target, tag int
	bands       []transition
}

// groupByTargetAndTag clusters a state's bands by (target, tag),
// preserving first-seen order, the way the original's defaultdict-keyed
// grouping does before it renders each group as one dot edge.
func groupByTargetAndTag(ts []transition) []transitionGroup {
	var groups []transitionGroup
	index := map[[2]int]int{}
	for _, t := range ts {
		key := [2]int{t.target, t.tag}
		if gi, ok := index[key]; ok {
			groups[gi].bands = append(groups[gi].bands, t)
			continue
		}
		index[key] = len(groups)
		groups = append(groups, transitionGroup{target: t.target, tag: t.tag, bands: []transition{t}})
	}
	return groups
}

// classLabel renders a set of (lo, hi) bands as dot's compact
// character-class notation: a lone code unit prints bare, a run of 2-3
// prints each one, and anything longer prints as "lo-hi".
func classLabel(bands []transition) string {
	out := ""
	for _, band := range bands {
		size := band.hi - band.lo + 1
		switch {
		case size == 1:
			out += escapeChar(band.lo)
		case size <= 3:
			for c := band.lo; c <= band.hi; c++ {
				out += escapeChar(c)
			}
		default:
			out += escapeChar(band.lo) + "-" + escapeChar(band.hi)
		}
	}
	return out
}
