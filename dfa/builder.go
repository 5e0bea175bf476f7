package dfa

import (
	"github.com/coregx/derivlex/internal/idset"
	"github.com/coregx/derivlex/regex"
	"github.com/coregx/derivlex/vector"
)

type rawEdge struct {
	Upper  int
	Target int
	Tag    int
}

type rawState struct {
	vec   vector.Vector
	tag   int
	edges []rawEdge
}

// Build explores the joint derivative of initial breadth-first,
// resolving each reachable state's accepting tag set through resolve,
// then prunes unreachable-to-accept ("dead") states by liveness and
// compresses adjacent identical transitions. See spec.md §4.4.
func Build(cache *regex.Cache, initial vector.Vector, resolve Resolver) (*Dfa, error) {
	b := &builder{
		cache:   cache,
		resolve: resolve,
		index:   map[string]int{},
	}
	start, err := b.intern(initial)
	if err != nil {
		return nil, err
	}
	for i := 0; i < len(b.states); i++ {
		if err := b.expand(i); err != nil {
			return nil, err
		}
	}
	return b.finish(start)
}

type builder struct {
	cache   *regex.Cache
	resolve Resolver
	index   map[string]int
	states  []rawState
}

func (b *builder) intern(v vector.Vector) (int, error) {
	key := v.Key()
	if idx, ok := b.index[key]; ok {
		return idx, nil
	}
	idx := len(b.states)
	b.index[key] = idx

	tag := -1
	if tags := v.Tags(); len(tags) > 0 {
		resolved, err := b.resolve(tags)
		if err != nil {
			return 0, err
		}
		tag = resolved
	}
	b.states = append(b.states, rawState{vec: v, tag: tag})
	return idx, nil
}

func (b *builder) expand(i int) error {
	v := b.states[i].vec
	d, byKey := vector.Derivatives(b.cache, v)

	edges := make([]rawEdge, 0, len(d))
	for _, band := range d {
		targetIdx, err := b.intern(byKey[band.Value])
		if err != nil {
			return err
		}
		tag := b.states[targetIdx].tag
		edges = append(edges, rawEdge{Upper: band.Upper, Target: targetIdx, Tag: tag})
	}
	b.states[i].edges = compressRaw(edges)
	return nil
}

func compressRaw(edges []rawEdge) []rawEdge {
	out := make([]rawEdge, 0, len(edges))
	for _, e := range edges {
		if n := len(out); n > 0 && out[n-1].Target == e.Target && out[n-1].Tag == e.Tag {
			out[n-1].Upper = e.Upper
			continue
		}
		out = append(out, e)
	}
	return out
}

func (b *builder) finish(start int) (*Dfa, error) {
	n := len(b.states)
	reverse := make([][]int, n)
	directlyAccepting := idset.New(n)
	for i, s := range b.states {
		if s.tag >= 0 {
			directlyAccepting.Insert(i)
		}
		for _, e := range s.edges {
			reverse[e.Target] = append(reverse[e.Target], i)
			if e.Tag >= 0 {
				directlyAccepting.Insert(i)
			}
		}
	}

	live := idset.New(n)
	queue := make([]int, 0, n)
	live.Insert(start)
	queue = append(queue, start)
	for _, i := range directlyAccepting.Values() {
		if live.Insert(i) {
			queue = append(queue, i)
		}
	}
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		for _, p := range reverse[i] {
			if live.Insert(p) {
				queue = append(queue, p)
			}
		}
	}

	// Renumber: start first, then remaining live states in ascending
	// raw-index order, for a deterministic, dense 0..k-1 layout.
	newIndex := make([]int, n)
	for i := range newIndex {
		newIndex[i] = -1
	}
	newIndex[start] = 0
	order := []int{start}
	for _, i := range sortedInts(live.Values()) {
		if i != start {
			newIndex[i] = len(order)
			order = append(order, i)
		}
	}

	states := make([]State, len(order))
	for newIdx, rawIdx := range order {
		rs := b.states[rawIdx]
		edges := make([]Edge, 0, len(rs.edges))
		for _, e := range rs.edges {
			target := -1
			if e.Target >= 0 {
				target = newIndex[e.Target]
			}
			edges = append(edges, Edge{Upper: e.Upper, Target: target, Tag: e.Tag})
		}
		edges = compressFinal(edges)
		lookahead := false
		for _, e := range edges {
			if e.Tag >= 0 {
				lookahead = true
				break
			}
		}
		states[newIdx] = State{Transitions: edges, Tag: rs.tag, Lookahead: lookahead}
	}

	return &Dfa{States: states, Start: 0, End: b.cache.End()}, nil
}

func compressFinal(edges []Edge) []Edge {
	out := make([]Edge, 0, len(edges))
	for _, e := range edges {
		if n := len(out); n > 0 && out[n-1].Target == e.Target && out[n-1].Tag == e.Tag && out[n-1].AtExit == e.AtExit {
			out[n-1].Upper = e.Upper
			continue
		}
		out = append(out, e)
	}
	return out
}

func sortedInts(xs []int) []int {
	out := append([]int(nil), xs...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
