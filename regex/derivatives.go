package regex

import "github.com/coregx/derivlex/partition"

// Nullable reports whether r's language contains the empty string.
func Nullable(r *Regex) bool {
	switch r.kind {
	case KindEmpty, KindCharClass:
		return false
	case KindEpsilon, KindTag, KindRepeat:
		return true
	case KindSequence:
		return Nullable(r.children[0]) && Nullable(r.children[1])
	case KindUnion:
		for _, ch := range r.children {
			if Nullable(ch) {
				return true
			}
		}
		return false
	case KindUnionCharClass:
		return Nullable(r.children[0])
	case KindIntersect:
		for _, ch := range r.children {
			if !Nullable(ch) {
				return false
			}
		}
		return true
	case KindInvert:
		return !Nullable(r.children[0])
	default:
		panic("regex: Nullable: unhandled kind")
	}
}

// Tags collects the set of Tag markers reachable from r without consuming
// any input, as a sorted slice of distinct tag ids.
func Tags(r *Regex) []int {
	set := map[int]struct{}{}
	collectTags(r, set)
	out := make([]int, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sortInts(out)
	return out
}

func collectTags(r *Regex, out map[int]struct{}) {
	switch r.kind {
	case KindEmpty, KindCharClass, KindInvert:
		return
	case KindTag:
		out[r.tagID] = struct{}{}
	case KindSequence:
		collectTags(r.children[0], out)
		if Nullable(r.children[0]) {
			collectTags(r.children[1], out)
		}
	case KindUnion:
		for _, ch := range r.children {
			collectTags(ch, out)
		}
	case KindUnionCharClass:
		collectTags(r.children[0], out)
	case KindIntersect:
		// Intersection of tag sets: start from the first child's tags and
		// keep only those present in every other child.
		first := map[int]struct{}{}
		collectTags(r.children[0], first)
		for _, ch := range r.children[1:] {
			chTags := map[int]struct{}{}
			collectTags(ch, chTags)
			for id := range first {
				if _, ok := chTags[id]; !ok {
					delete(first, id)
				}
			}
		}
		for id := range first {
			out[id] = struct{}{}
		}
	case KindRepeat:
		collectTags(r.children[0], out)
	case KindEpsilon:
		return
	}
}

func sortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}

// Derivatives computes the joint derivative partition of r: a function
// from the next code unit to the regex matching the remainder of the
// input after that unit is consumed.
func (c *Cache) Derivatives(r *Regex) partition.Partition[*Regex] {
	switch r.kind {
	case KindEmpty, KindEpsilon, KindTag:
		return partition.Constant(c.end, c.Empty())
	case KindCharClass:
		return partition.Map(r.class, c.acceptOrEmpty)
	case KindSequence:
		d := partition.Update(c.Derivatives(r.children[0]), r.children[1], c.seqWith)
		if Nullable(r.children[0]) {
			d = partition.Merge(d, c.Derivatives(r.children[1]), c.orValues)
		}
		return d
	case KindUnion:
		return c.mergeAllDerivatives(r.children)
	case KindUnionCharClass:
		classDeriv := partition.Map(r.class, c.acceptOrEmpty)
		restDeriv := c.Derivatives(r.children[0])
		return partition.Merge(classDeriv, restDeriv, c.orValues)
	case KindIntersect:
		d := c.Derivatives(r.children[0])
		for _, ch := range r.children[1:] {
			d = partition.Merge(d, c.Derivatives(ch), c.andValues)
		}
		return d
	case KindRepeat:
		return partition.Update(c.Derivatives(r.children[0]), r, c.seqWith)
	case KindInvert:
		return partition.Map(c.Derivatives(r.children[0]), c.Not)
	default:
		panic("regex: Derivatives: unhandled kind")
	}
}

func (c *Cache) acceptOrEmpty(accept bool) *Regex {
	if accept {
		return c.Epsilon()
	}
	return c.Empty()
}

func (c *Cache) seqWith(u *Regex, y *Regex) *Regex { return c.Seq(u, y) }
func (c *Cache) orValues(x, y *Regex) *Regex       { return c.Or(x, y) }
func (c *Cache) andValues(x, y *Regex) *Regex      { return c.And(x, y) }

func (c *Cache) mergeAllDerivatives(children []*Regex) partition.Partition[*Regex] {
	d := c.Derivatives(children[0])
	for _, ch := range children[1:] {
		d = partition.Merge(d, c.Derivatives(ch), c.orValues)
	}
	return d
}
