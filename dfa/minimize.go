package dfa

import (
	"fmt"
	"strconv"
	"strings"
)

// Minimize applies Hopcroft-style partition refinement to an
// already-live-pruned Dfa, merging states that are behaviourally
// equivalent: same own tag, and for every code unit, transitions to
// equivalent states carrying the same edge tag. See spec.md §4.4 and
// DESIGN.md's Open Question resolution for why this build refines by a
// per-round recomputed signature (current block id, per-band (target
// block, edge tag)) to a fixpoint rather than a single-splitter
// worklist: the Python original's minimize_dfa mutated the very list it
// was iterating as a worklist, which this shape makes structurally
// impossible to reproduce.
func Minimize(d *Dfa) *Dfa {
	n := len(d.States)
	if n <= 1 {
		return d
	}

	cuts := commonCuts(d)
	targets, edgeTags := commonTransitions(d, cuts)

	blockOf := make([]int, n)
	initial := map[int]int{}
	for s := 0; s < n; s++ {
		tag := d.States[s].Tag
		bi, ok := initial[tag]
		if !ok {
			bi = len(initial)
			initial[tag] = bi
		}
		blockOf[s] = bi
	}
	blockCount := len(initial)

	for {
		sigToBlock := map[string]int{}
		next := make([]int, n)
		for s := 0; s < n; s++ {
			var sb strings.Builder
			sb.WriteString(strconv.Itoa(blockOf[s]))
			for band := range cuts {
				tb := -1
				if t := targets[s][band]; t >= 0 {
					tb = blockOf[t]
				}
				fmt.Fprintf(&sb, ";%d:%d", tb, edgeTags[s][band])
			}
			key := sb.String()
			bi, ok := sigToBlock[key]
			if !ok {
				bi = len(sigToBlock)
				sigToBlock[key] = bi
			}
			next[s] = bi
		}
		if len(sigToBlock) == blockCount {
			blockOf = next
			break
		}
		blockOf = next
		blockCount = len(sigToBlock)
	}

	return rebuild(d, blockOf, blockCount, cuts, targets, edgeTags)
}

// commonCuts returns the sorted, deduplicated union of every state's
// transition upper bounds — a refinement of the alphabet partition
// coarse enough that every state's transitions align to its boundaries.
func commonCuts(d *Dfa) []int {
	seen := map[int]struct{}{}
	for _, s := range d.States {
		for _, e := range s.Transitions {
			seen[e.Upper] = struct{}{}
		}
	}
	cuts := make([]int, 0, len(seen))
	for c := range seen {
		cuts = append(cuts, c)
	}
	for i := 1; i < len(cuts); i++ {
		for j := i; j > 0 && cuts[j-1] > cuts[j]; j-- {
			cuts[j-1], cuts[j] = cuts[j], cuts[j-1]
		}
	}
	return cuts
}

func commonTransitions(d *Dfa, cuts []int) (targets, edgeTags [][]int) {
	n := len(d.States)
	targets = make([][]int, n)
	edgeTags = make([][]int, n)
	for s := 0; s < n; s++ {
		targets[s] = make([]int, len(cuts))
		edgeTags[s] = make([]int, len(cuts))
		for k, cut := range cuts {
			e, found := findEdge(d.States[s].Transitions, cut-1)
			if !found {
				targets[s][k] = -1
				edgeTags[s][k] = -1
				continue
			}
			targets[s][k] = e.Target
			edgeTags[s][k] = e.Tag
		}
	}
	return targets, edgeTags
}

func rebuild(d *Dfa, blockOf []int, blockCount int, cuts []int, targets, edgeTags [][]int) *Dfa {
	// One representative raw state per block; renumber so the start
	// state's block is index 0.
	representative := make([]int, blockCount)
	found := make([]bool, blockCount)
	for s, b := range blockOf {
		if !found[b] {
			representative[b] = s
			found[b] = true
		}
	}

	newIndex := make([]int, blockCount)
	for i := range newIndex {
		newIndex[i] = -1
	}
	startBlock := blockOf[d.Start]
	newIndex[startBlock] = 0
	order := []int{startBlock}
	for b := 0; b < blockCount; b++ {
		if b != startBlock {
			newIndex[b] = len(order)
			order = append(order, b)
		}
	}

	states := make([]State, blockCount)
	for newIdx, block := range order {
		rawState := representative[block]
		edges := make([]Edge, 0, len(cuts))
		for k, cut := range cuts {
			target := -1
			if t := targets[rawState][k]; t >= 0 {
				target = newIndex[blockOf[t]]
			}
			edges = append(edges, Edge{Upper: cut, Target: target, Tag: edgeTags[rawState][k]})
		}
		edges = compressFinal(edges)
		lookahead := false
		for _, e := range edges {
			if e.Tag >= 0 {
				lookahead = true
				break
			}
		}
		states[newIdx] = State{Transitions: edges, Tag: d.States[rawState].Tag, Lookahead: lookahead}
	}

	return &Dfa{States: states, Start: 0, End: d.End}
}
