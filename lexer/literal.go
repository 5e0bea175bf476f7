package lexer

import (
	"github.com/coregx/ahocorasick"

	"github.com/coregx/derivlex/regex"
)

// literalPatterns reports whether every pattern is a plain literal
// string (regex.IsLiteral succeeds), and if so returns each one's byte
// encoding in pattern order.
func literalPatterns(patterns []NamedPattern) ([][]byte, bool) {
	out := make([][]byte, len(patterns))
	for i, p := range patterns {
		units, ok := regex.IsLiteral(p.Pattern)
		if !ok {
			return nil, false
		}
		buf := make([]byte, len(units))
		for j, u := range units {
			buf[j] = byte(u)
		}
		out[i] = buf
	}
	return out, true
}

// hasCrossTagPrefixOverlap reports whether any two distinctly-tagged
// literals are a prefix of one another. When true, an Aho-Corasick
// automaton's matched span alone can't disambiguate which pattern the
// maximal-munch/earliest-priority resolver would have picked, so the
// fast path is skipped in favour of the Dfa, which always resolves
// that ambiguity correctly.
func hasCrossTagPrefixOverlap(literals [][]byte) bool {
	for i, a := range literals {
		for j, b := range literals {
			if i == j {
				continue
			}
			if len(a) <= len(b) && string(b[:len(a)]) == string(a) {
				return true
			}
		}
	}
	return false
}

// buildLiteralAutomaton constructs an Aho-Corasick automaton over
// literals, plus the byte-string-to-tag-id lookup ScanOnce needs to
// translate a match back to a pattern without depending on the
// automaton exposing pattern identifiers of its own.
func buildLiteralAutomaton(literals [][]byte) (*ahocorasick.Automaton, map[string]int, error) {
	builder := ahocorasick.NewBuilder()
	byBytes := make(map[string]int, len(literals))
	for tag, lit := range literals {
		builder.AddPattern(lit)
		byBytes[string(lit)] = tag
	}
	automaton, err := builder.Build()
	if err != nil {
		return nil, nil, err
	}
	return automaton, byBytes, nil
}
