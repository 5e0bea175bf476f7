package dfa

// Match is one scan result: the resolved tag id and the match length in
// code units.
type Match struct {
	Tag    int
	Length int
}

// ScanOnce runs the maximal-munch scan described in spec.md §4.5 over
// input (a sequence of code units in the DFA's alphabet), returning the
// longest accepting prefix and its tag, or ok=false if nothing accepted.
func (d *Dfa) ScanOnce(input []int) (m Match, ok bool) {
	state := d.Start
	best := Match{Tag: -1}
	if t := d.States[state].Tag; t >= 0 {
		best = Match{Tag: t, Length: 0}
		ok = true
	}

	for pos, c := range input {
		e, found := findEdge(d.States[state].Transitions, c)
		if !found {
			return best, ok
		}
		if e.Tag >= 0 {
			length := pos + 1
			if e.AtExit {
				length = pos
			}
			best = Match{Tag: e.Tag, Length: length}
			ok = true
		}
		if e.Target < 0 {
			return best, ok
		}
		state = e.Target
	}

	if t := d.States[state].Tag; t >= 0 {
		best = Match{Tag: t, Length: len(input)}
		ok = true
	}
	return best, ok
}

func findEdge(transitions []Edge, c int) (Edge, bool) {
	for _, e := range transitions {
		if c < e.Upper {
			return e, true
		}
	}
	return Edge{}, false
}

// Scanner is a pull iterator over scan_all's token stream (spec.md §4.5).
type Scanner struct {
	dfa  *Dfa
	rest []int
	pos  int
	err  error
}

// NewScanner creates a Scanner over the full input.
func NewScanner(d *Dfa, input []int) *Scanner {
	return &Scanner{dfa: d, rest: input}
}

// Next returns the next token's tag and code-unit span [start, start+len),
// or ok=false when the input is exhausted or a scan failed. After a
// failure, Err reports it and Next keeps returning ok=false.
func (s *Scanner) Next() (tag int, start, length int, ok bool) {
	if s.err != nil || len(s.rest) == 0 {
		return 0, 0, 0, false
	}
	m, matched := s.dfa.ScanOnce(s.rest)
	if !matched {
		s.err = NewUnrecognisedInputError(s.pos)
		return 0, 0, 0, false
	}
	start = s.pos
	s.pos += m.Length
	s.rest = s.rest[m.Length:]
	if m.Length == 0 {
		// A zero-length accept can't make progress; stop here rather
		// than spin forever re-matching the same position.
		s.rest = nil
	}
	return m.Tag, start, m.Length, true
}

// Err returns the error that stopped iteration, if any.
func (s *Scanner) Err() error { return s.err }
