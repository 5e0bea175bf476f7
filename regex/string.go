package regex

import (
	"fmt"
	"strings"
)

// String renders r in a compact, deterministic notation useful for test
// failures and debugging. It is not a parseable
// syntax — charsyntax.Parse covers the external character-class text
// grammar instead.
func (r *Regex) String() string {
	var sb strings.Builder
	writeRegex(&sb, r)
	return sb.String()
}

func writeRegex(sb *strings.Builder, r *Regex) {
	switch r.kind {
	case KindEmpty:
		sb.WriteString("∅")
	case KindEpsilon:
		sb.WriteString("ε")
	case KindTag:
		fmt.Fprintf(sb, "Tag(%d)", r.tagID)
	case KindCharClass:
		writeClass(sb, r)
	case KindSequence:
		writeRegex(sb, r.children[0])
		writeRegex(sb, r.children[1])
	case KindUnion:
		sb.WriteByte('(')
		for i, ch := range r.children {
			if i > 0 {
				sb.WriteByte('|')
			}
			writeRegex(sb, ch)
		}
		sb.WriteByte(')')
	case KindUnionCharClass:
		sb.WriteByte('(')
		writeClass(sb, &Regex{kind: KindCharClass, class: r.class})
		sb.WriteByte('|')
		writeRegex(sb, r.children[0])
		sb.WriteByte(')')
	case KindIntersect:
		sb.WriteByte('(')
		for i, ch := range r.children {
			if i > 0 {
				sb.WriteByte('&')
			}
			writeRegex(sb, ch)
		}
		sb.WriteByte(')')
	case KindRepeat:
		writeRegex(sb, r.children[0])
		sb.WriteByte('*')
	case KindInvert:
		sb.WriteByte('~')
		writeRegex(sb, r.children[0])
	}
}

func writeClass(sb *strings.Builder, r *Regex) {
	sb.WriteByte('[')
	lo := 0
	first := true
	for _, b := range r.class {
		if b.Value {
			if !first {
				sb.WriteByte(',')
			}
			first = false
			writeCodeUnit(sb, lo)
			if b.Upper-1 != lo {
				sb.WriteByte('-')
				writeCodeUnit(sb, b.Upper-1)
			}
		}
		lo = b.Upper
	}
	sb.WriteByte(']')
}

func writeCodeUnit(sb *strings.Builder, c int) {
	if c >= 0x20 && c < 0x7f {
		sb.WriteByte(byte(c))
		return
	}
	fmt.Fprintf(sb, "\\x%02x", c)
}
