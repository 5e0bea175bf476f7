package emit

import (
	"fmt"
	"io"
	"strings"

	"github.com/coregx/derivlex/dfa"
)

// tokenName is the C #define name for a tag's upper-cased pattern name.
func tokenName(name string) string {
	return "DFA_T_" + strings.ToUpper(name)
}

// C writes d as a self-contained header: DFA_INVALID_TOKEN plus one
// DFA_T_<NAME> per tag, struct DfaMatch, and an inline dfa_match using
// a labelled goto per state (spec.md §6, "C code emission"). names[i]
// must hold the pattern name for tag id i. When useLimit is true the
// generated scanner checks a caller-supplied limit pointer instead of
// relying on a NUL sentinel.
func C(w io.Writer, d *dfa.Dfa, names Names, useLimit bool) error {
	b := newBuffer(w, 4)

	b.line("#ifndef DERIVLEX_DFA_H")
	b.line("#define DERIVLEX_DFA_H")
	b.skip()
	b.line("#include <stdint.h>")
	b.skip()

	tags := d.GetTags()
	emitTokens(b, names, tags)
	b.skip()

	b.line("struct DfaMatch {")
	b.push()
	b.line("const char *begin;")
	b.line("const char *end;")
	b.line("unsigned int token;")
	b.pop()
	b.line("};")
	b.skip()

	emitMatch(b, d, names, useLimit)

	b.skip()
	b.line("#endif /* DERIVLEX_DFA_H */")
	return b.flush()
}

func emitTokens(b *buffer, names Names, tags []int) {
	b.line("#define DFA_INVALID_TOKEN 0")
	for i, tag := range tags {
		b.line("#define %s %d", tokenName(names.nameOf(tag)), i+1)
	}
	b.skip()

	b.line("static const char *dfa_token_name(int t) {")
	b.push()
	b.line("static const char *table[] = {")
	b.push()
	for _, tag := range tags {
		b.line("%q,", names.nameOf(tag))
	}
	b.pop()
	b.line("};")
	b.line("if (t < 1 || t > %d) { return (const char *)0; }", len(tags))
	b.line("return table[t - 1];")
	b.pop()
	b.line("}")
}

func emitMatch(b *buffer, d *dfa.Dfa, names Names, useLimit bool) {
	if useLimit {
		b.line("#ifdef DFA_USE_LIMIT")
		b.line("static inline void dfa_match(const char *s, const char *limit, struct DfaMatch *match) {")
	} else {
		b.line("static inline void dfa_match(const char *s, struct DfaMatch *match) {")
	}
	b.push()
	b.line("unsigned char c;")
	b.skip()
	b.line("match->begin = match->end = s;")
	b.line("match->token = DFA_INVALID_TOKEN;")
	if start := &d.States[d.Start]; start.Tag >= 0 {
		b.line("match->token = %s;", tokenName(names.nameOf(start.Tag)))
	}
	b.skip()

	d.IterStates(func(i int, s *dfa.State) bool {
		b.unindented("S%d:", i)
		if useLimit {
			b.line("if (s >= limit) { return; }")
		}
		b.line("c = *(s++);")
		for _, t := range compressedTransitions(s) {
			action := transitionAction(t, names)
			if t.hi == d.End-1 {
				b.line("%s", action)
			} else {
				b.line("if (c <= %d) { %s }", t.hi, action)
			}
		}
		return true
	})

	b.pop()
	b.line("}")
	if useLimit {
		b.line("#endif /* DFA_USE_LIMIT */")
	}
}

// transitionAction renders one band's consequence: a tag update
// followed by either a goto to the target state or a return when no
// live target remains. c has already been consumed and s advanced past
// it, so the on-entry case (the only one this build ever produces) sets
// match->end = s to include the deciding character; an at-exit tag
// would instead set match->end = s - 1, to exclude it.
func transitionAction(t transition, names Names) string {
	var parts []string
	if t.tag >= 0 {
		end := "s"
		if t.atExit {
			end = "s - 1"
		}
		parts = append(parts,
			fmt.Sprintf("match->end = %s;", end),
			fmt.Sprintf("match->token = %s;", tokenName(names.nameOf(t.tag))),
		)
	}
	if t.target < 0 {
		parts = append(parts, "return;")
	} else {
		parts = append(parts, fmt.Sprintf("goto S%d;", t.target))
	}
	return strings.Join(parts, " ")
}
