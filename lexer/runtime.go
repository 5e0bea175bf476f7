package lexer

import (
	"github.com/coregx/ahocorasick"

	"github.com/coregx/derivlex/dfa"
)

// Lexer is the compiled runtime make_lexer returns: a Dfa plus the
// tag-id-to-name mapping, and, when eligible, an Aho-Corasick fast path
// over an all-literal pattern set (spec.md §6, "Runtime").
type Lexer struct {
	dfa      *dfa.Dfa
	names    []string
	strategy Strategy

	automaton   *ahocorasick.Automaton
	literalTags map[string]int
}

// Strategy reports which matching path ScanOnce takes.
func (l *Lexer) Strategy() Strategy { return l.strategy }

// ScanOnce runs the maximal-munch scan over input, returning the
// accepted pattern's name and match length, or ok=false if nothing
// accepted (spec.md §4.5/§6).
func (l *Lexer) ScanOnce(input []byte) (name string, length int, ok bool) {
	if l.automaton != nil {
		if n, length, ok := l.scanLiteral(input); ok {
			return n, length, true
		}
	}
	m, matched := l.dfa.ScanOnce(unitsOf(input))
	if !matched {
		return "", 0, false
	}
	return l.names[m.Tag], m.Length, true
}

// scanLiteral tries the Aho-Corasick fast path: a match anchored at
// position 0 whose span is one of the known literals is authoritative
// because MakeLexer only enables this path when no literal is a prefix
// of a different-tag literal, so the automaton's match can't disagree
// with what the Dfa would have produced.
func (l *Lexer) scanLiteral(input []byte) (name string, length int, ok bool) {
	m := l.automaton.Find(input, 0)
	if m == nil || m.Start != 0 {
		return "", 0, false
	}
	tag, known := l.literalTags[string(input[m.Start:m.End])]
	if !known {
		return "", 0, false
	}
	return l.names[tag], m.End - m.Start, true
}

// GetTags returns, in ascending order, every distinct tag id reachable
// in the underlying Dfa.
func (l *Lexer) GetTags() []int { return l.dfa.GetTags() }

// Names returns the pattern names in tag-id order.
func (l *Lexer) Names() []string { return l.names }

// Dfa exposes the compiled automaton, e.g. for package emit.
func (l *Lexer) Dfa() *dfa.Dfa { return l.dfa }

// IterStates calls f for every Dfa state index, stopping early if f
// returns false.
func (l *Lexer) IterStates(f func(index int, s *dfa.State) bool) {
	l.dfa.IterStates(f)
}

// Scanner is a pull iterator over scan_all's token stream, yielding
// pattern names instead of raw tag ids.
type Scanner struct {
	lexer *Lexer
	inner *dfa.Scanner
}

// NewScanner creates a Scanner over the full input.
func NewScanner(l *Lexer, input []byte) *Scanner {
	return &Scanner{lexer: l, inner: dfa.NewScanner(l.dfa, unitsOf(input))}
}

// Next returns the next token's pattern name and byte span [start,
// start+len), or ok=false when the input is exhausted or a scan
// failed. After a failure, Err reports it.
func (s *Scanner) Next() (name string, start, length int, ok bool) {
	tag, start, length, ok := s.inner.Next()
	if !ok {
		return "", 0, 0, false
	}
	return s.lexer.names[tag], start, length, true
}

// Err returns the error that stopped iteration, if any.
func (s *Scanner) Err() error { return s.inner.Err() }

func unitsOf(b []byte) []int {
	out := make([]int, len(b))
	for i, c := range b {
		out[i] = int(c)
	}
	return out
}
