// Package regex implements the closed algebra of regex terms described by
// spec.md §3–§4.2: Empty, Epsilon, CharClass, Sequence, Union,
// UnionCharClass, Intersect, Repeat, Invert, and Tag, built through smart
// constructors that keep semantically equal expressions physically
// identical.
//
// Following the teacher's nfa.State/StateKind idiom (a tagged struct, not
// an interface hierarchy), every Regex is a single struct carrying a Kind
// byte plus only the fields that kind actually uses. Construction always
// goes through a Cache, which both enforces the canonical-form invariants
// and hash-conses nodes so that structurally equal terms share one
// pointer (cheap == comparisons, cheap map keys for Vector interning).
package regex

import (
	"strconv"
	"strings"

	"github.com/coregx/derivlex/partition"
)

// Kind identifies which of the closed set of regex term shapes a Regex is.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindEpsilon
	KindCharClass
	KindSequence
	KindUnion
	KindUnionCharClass
	KindIntersect
	KindRepeat
	KindInvert
	KindTag
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "Empty"
	case KindEpsilon:
		return "Epsilon"
	case KindCharClass:
		return "CharClass"
	case KindSequence:
		return "Sequence"
	case KindUnion:
		return "Union"
	case KindUnionCharClass:
		return "UnionCharClass"
	case KindIntersect:
		return "Intersect"
	case KindRepeat:
		return "Repeat"
	case KindInvert:
		return "Invert"
	case KindTag:
		return "Tag"
	default:
		return "Unknown"
	}
}

// Regex is one immutable term in the algebra. Once constructed through a
// Cache, it is never mutated; it is safe to share across goroutines.
type Regex struct {
	kind Kind

	// class holds the CharClass/UnionCharClass boolean partition.
	class partition.Partition[bool]

	// children holds, depending on kind:
	//   Sequence: [first, second]
	//   Union, Intersect: sorted, unique, len >= 2
	//   UnionCharClass: [rest] (rest is never Empty/CharClass/UnionCharClass)
	//   Repeat, Invert: [inner]
	children []*Regex

	// tagID holds the Tag marker's identifier.
	tagID int

	// key is the canonical key, computed once at construction, used
	// both for hash-consing and as the Less/merge comparator.
	key string
}

// Kind returns the term's variant tag.
func (r *Regex) Kind() Kind { return r.kind }

// TagID returns the Tag marker's identifier. Only meaningful when
// Kind() == KindTag.
func (r *Regex) TagID() int { return r.tagID }

// Class returns the boolean partition for CharClass/UnionCharClass terms.
// Returns nil for every other kind.
func (r *Regex) Class() partition.Partition[bool] { return r.class }

// Children returns the term's child terms (see the Regex.children doc).
// Returns nil for Empty, Epsilon, CharClass, and Tag.
func (r *Regex) Children() []*Regex { return r.children }

// Key returns the term's canonical structural key. Two Regex values
// built from the same Cache compare == iff their Key is equal; Key also
// supplies the strict total order smart constructors use to keep
// Union/Intersect child lists sorted.
func (r *Regex) Key() string { return r.key }

// Less implements the total order spec.md §4.2 requires: variant kind
// first, then canonical children.
func Less(a, b *Regex) bool { return a.key < b.key }

// Cache owns the hash-consing table for one lexer build. Regex terms are
// only ever equal (==) if they came from the same Cache.
//
// Per DESIGN.md's Open Question decision: terms are short-lived (one
// Cache per make_lexer call), so the Cache recomputes each node's
// canonical key directly from its (already-canonical) children rather
// than maintaining a persistent cross-build arena; it still dedupes
// within a single build so Vector/DFA state interning gets pointer-cheap
// equality.
type Cache struct {
	end   int
	table map[string]*Regex
}

// NewCache creates a Cache for an alphabet [0, end).
func NewCache(end int) *Cache {
	if end <= 0 {
		panic("regex: NewCache requires end > 0")
	}
	return &Cache{end: end, table: make(map[string]*Regex)}
}

// End returns the alphabet size this Cache's terms are built over.
func (c *Cache) End() int { return c.end }

func (c *Cache) intern(r *Regex) *Regex {
	r.key = computeKey(r)
	if existing, ok := c.table[r.key]; ok {
		return existing
	}
	c.table[r.key] = r
	return r
}

// Empty returns the term for the language ∅.
func (c *Cache) Empty() *Regex {
	return c.intern(&Regex{kind: KindEmpty})
}

// Epsilon returns the term for the language {""}.
func (c *Cache) Epsilon() *Regex {
	return c.intern(&Regex{kind: KindEpsilon})
}

// Tag returns a zero-width marker carrying id.
func (c *Cache) Tag(id int) *Regex {
	return c.intern(&Regex{kind: KindTag, tagID: id})
}

// CharClass builds a CharClass term from a boolean partition over this
// Cache's alphabet. A partition that accepts nothing collapses to Empty,
// keeping Empty the sole representation of ∅.
func (c *Cache) CharClass(p partition.Partition[bool]) *Regex {
	if p.End() != c.end {
		panic("regex: CharClass partition End mismatch")
	}
	return c.internCharClass(p)
}

func (c *Cache) internCharClass(p partition.Partition[bool]) *Regex {
	if allFalse(p) {
		return c.Empty()
	}
	return c.intern(&Regex{kind: KindCharClass, class: p})
}

func allFalse(p partition.Partition[bool]) bool {
	for _, b := range p {
		if b.Value {
			return false
		}
	}
	return true
}

// Range builds the CharClass matching the single inclusive code-unit
// range [lo, hi].
func (c *Cache) Range(lo, hi int) *Regex {
	if lo < 0 || hi >= c.end || lo > hi {
		panic("regex: Range out of bounds")
	}
	p := make(partition.Partition[bool], 0, 3)
	if lo > 0 {
		p = append(p, partition.Band[bool]{Upper: lo, Value: false})
	}
	p = append(p, partition.Band[bool]{Upper: hi + 1, Value: true})
	if hi+1 < c.end {
		p = append(p, partition.Band[bool]{Upper: c.end, Value: false})
	}
	return c.internCharClass(p)
}

// Char builds the CharClass matching a single code unit.
func (c *Cache) Char(code int) *Regex { return c.Range(code, code) }

// AnyChar builds the CharClass matching every code unit in the alphabet.
func (c *Cache) AnyChar() *Regex { return c.Range(0, c.end-1) }

// Seq builds the concatenation of a and b, right-associating and
// absorbing Empty/Epsilon per spec.md §3.
func (c *Cache) Seq(a, b *Regex) *Regex {
	if a.kind == KindEmpty || b.kind == KindEmpty {
		return c.Empty()
	}
	if a.kind == KindEpsilon {
		return b
	}
	if b.kind == KindEpsilon {
		return a
	}
	if a.kind == KindSequence {
		return c.Seq(a.children[0], c.Seq(a.children[1], b))
	}
	return c.intern(&Regex{kind: KindSequence, children: []*Regex{a, b}})
}

// Concat folds Seq over parts left to right; Concat() with no parts
// returns Epsilon.
func (c *Cache) Concat(parts ...*Regex) *Regex {
	r := c.Epsilon()
	for _, p := range parts {
		r = c.Seq(r, p)
	}
	return r
}

// Or builds the union of a and b, flattening, sorting, deduplicating, and
// factoring out any CharClass component into a single merged partition
// per spec.md §3's UnionCharClass rule.
func (c *Cache) Or(a, b *Regex) *Regex {
	if a == b {
		return a
	}
	if a.kind == KindEmpty {
		return b
	}
	if b.kind == KindEmpty {
		return a
	}
	classA, hasA, othersA := c.decomposeUnion(a)
	classB, hasB, othersB := c.decomposeUnion(b)

	var class partition.Partition[bool]
	hasClass := hasA || hasB
	switch {
	case hasA && hasB:
		class = partition.Merge(classA, classB, orBool)
	case hasA:
		class = classA
	case hasB:
		class = classB
	}

	others := mergeSortedUnique(othersA, othersB)
	return c.buildUnion(class, hasClass, others)
}

func orBool(a, b bool) bool { return a || b }
func andBool(a, b bool) bool { return a && b }

func (c *Cache) decomposeUnion(r *Regex) (class partition.Partition[bool], hasClass bool, others []*Regex) {
	switch r.kind {
	case KindCharClass:
		return r.class, true, nil
	case KindUnion:
		return nil, false, r.children
	case KindUnionCharClass:
		return r.class, true, unionCharClassOthers(r)
	default:
		return nil, false, []*Regex{r}
	}
}

func unionCharClassOthers(r *Regex) []*Regex {
	rest := r.children[0]
	if rest.kind == KindUnion {
		return rest.children
	}
	return []*Regex{rest}
}

func (c *Cache) buildUnion(class partition.Partition[bool], hasClass bool, others []*Regex) *Regex {
	switch len(others) {
	case 0:
		if hasClass {
			return c.internCharClass(class)
		}
		return c.Empty()
	case 1:
		if hasClass {
			return c.intern(&Regex{kind: KindUnionCharClass, class: class, children: []*Regex{others[0]}})
		}
		return others[0]
	default:
		rest := c.intern(&Regex{kind: KindUnion, children: others})
		if hasClass {
			return c.intern(&Regex{kind: KindUnionCharClass, class: class, children: []*Regex{rest}})
		}
		return rest
	}
}

// And builds the intersection of a and b, flattening, sorting, and
// deduplicating per spec.md §3.
func (c *Cache) And(a, b *Regex) *Regex {
	if a == b {
		return a
	}
	if a.kind == KindEmpty {
		return a
	}
	if b.kind == KindEmpty {
		return b
	}
	itemsA := decomposeIntersect(a)
	itemsB := decomposeIntersect(b)
	merged := mergeSortedUnique(itemsA, itemsB)
	if len(merged) == 1 {
		return merged[0]
	}
	return c.intern(&Regex{kind: KindIntersect, children: merged})
}

func decomposeIntersect(r *Regex) []*Regex {
	if r.kind == KindIntersect {
		return r.children
	}
	return []*Regex{r}
}

// Sub builds a - b as a & ~b, per spec.md §6.
func (c *Cache) Sub(a, b *Regex) *Regex {
	if a == b {
		return c.Empty()
	}
	return c.And(a, c.Not(b))
}

// Not builds the complement of a with respect to the full alphabet,
// cancelling double complement.
func (c *Cache) Not(a *Regex) *Regex {
	if a.kind == KindInvert {
		return a.children[0]
	}
	return c.intern(&Regex{kind: KindInvert, children: []*Regex{a}})
}

// Star builds the Kleene star of a, collapsing Empty/Epsilon/Repeat(Repeat).
func (c *Cache) Star(a *Regex) *Regex {
	switch a.kind {
	case KindEmpty, KindEpsilon:
		return c.Epsilon()
	case KindRepeat:
		return a
	}
	return c.intern(&Regex{kind: KindRepeat, children: []*Regex{a}})
}

// Plus builds a · a*.
func (c *Cache) Plus(a *Regex) *Regex { return c.Seq(a, c.Star(a)) }

// Opt builds a | ε.
func (c *Cache) Opt(a *Regex) *Regex { return c.Or(a, c.Epsilon()) }

func mergeSortedUnique(a, b []*Regex) []*Regex {
	if len(a) == 0 {
		return append([]*Regex(nil), b...)
	}
	if len(b) == 0 {
		return append([]*Regex(nil), a...)
	}
	out := make([]*Regex, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i].key < b[j].key:
			out = append(out, a[i])
			i++
		default:
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

func computeKey(r *Regex) string {
	var sb strings.Builder
	switch r.kind {
	case KindEmpty:
		sb.WriteString("E")
	case KindEpsilon:
		sb.WriteString("e")
	case KindTag:
		sb.WriteString("T")
		sb.WriteString(strconv.Itoa(r.tagID))
	case KindCharClass:
		sb.WriteString("C")
		writeClassKey(&sb, r.class)
	case KindSequence:
		sb.WriteString("S(")
		sb.WriteString(r.children[0].key)
		sb.WriteByte(',')
		sb.WriteString(r.children[1].key)
		sb.WriteByte(')')
	case KindUnion:
		sb.WriteString("U[")
		writeChildKeys(&sb, r.children)
		sb.WriteByte(']')
	case KindUnionCharClass:
		sb.WriteString("UC(")
		writeClassKey(&sb, r.class)
		sb.WriteByte(',')
		sb.WriteString(r.children[0].key)
		sb.WriteByte(')')
	case KindIntersect:
		sb.WriteString("I[")
		writeChildKeys(&sb, r.children)
		sb.WriteByte(']')
	case KindRepeat:
		sb.WriteString("R(")
		sb.WriteString(r.children[0].key)
		sb.WriteByte(')')
	case KindInvert:
		sb.WriteString("N(")
		sb.WriteString(r.children[0].key)
		sb.WriteByte(')')
	}
	return sb.String()
}

func writeChildKeys(sb *strings.Builder, children []*Regex) {
	for i, ch := range children {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(ch.key)
	}
}

func writeClassKey(sb *strings.Builder, p partition.Partition[bool]) {
	for i, b := range p {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(b.Upper))
		sb.WriteByte(':')
		if b.Value {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
}
