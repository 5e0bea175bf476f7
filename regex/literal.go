package regex

import "github.com/coregx/derivlex/partition"

// IsLiteral reports whether r matches exactly one fixed sequence of code
// units and nothing else, returning that sequence. This is what the
// lexer package's Aho-Corasick acceleration strategy uses to decide
// whether a pattern is a plain string literal (SPEC_FULL.md's DOMAIN
// STACK section).
func IsLiteral(r *Regex) ([]int, bool) {
	var units []int
	cur := r
	for {
		switch cur.kind {
		case KindEpsilon:
			return units, true
		case KindCharClass:
			unit, ok := singleUnit(cur.class)
			if !ok {
				return nil, false
			}
			return append(units, unit), true
		case KindSequence:
			head := cur.children[0]
			if head.kind != KindCharClass {
				return nil, false
			}
			unit, ok := singleUnit(head.class)
			if !ok {
				return nil, false
			}
			units = append(units, unit)
			cur = cur.children[1]
		default:
			return nil, false
		}
	}
}

// singleUnit reports whether p accepts exactly one code unit, returning it.
func singleUnit(p partition.Partition[bool]) (int, bool) {
	lo := 0
	found := -1
	count := 0
	for _, b := range p {
		if b.Value {
			count++
			if b.Upper-lo != 1 {
				return 0, false
			}
			found = lo
		}
		lo = b.Upper
	}
	if count != 1 {
		return 0, false
	}
	return found, true
}
