package dfa_test

import (
	"testing"

	"github.com/coregx/derivlex/dfa"
	"github.com/coregx/derivlex/regex"
	"github.com/coregx/derivlex/vector"
)

func units(s string) []int {
	out := make([]int, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = int(s[i])
	}
	return out
}

func buildTwoPattern(t *testing.T) *dfa.Dfa {
	t.Helper()
	c := regex.NewCache(256)
	// tag 0: "if" ; tag 1: [a-z]+
	ifPat := c.Concat(c.Char('i'), c.Char('f'))
	ident := c.Plus(c.Range('a', 'z'))
	v := vector.Vector{
		{Tag: 0, Pattern: ifPat},
		{Tag: 1, Pattern: ident},
	}
	d, err := dfa.Build(c, v, dfa.SelectFirst)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return d
}

func TestScanOnceSelectsFirstOnKeywordVsIdent(t *testing.T) {
	d := buildTwoPattern(t)

	m, ok := d.ScanOnce(units("iffy"))
	if !ok {
		t.Fatal("expected a match")
	}
	if m.Tag != 1 || m.Length != 4 {
		t.Errorf("scan(iffy) = %+v, want tag=1 length=4", m)
	}

	m, ok = d.ScanOnce(units("if"))
	if !ok {
		t.Fatal("expected a match")
	}
	if m.Tag != 0 || m.Length != 2 {
		t.Errorf("scan(if) = %+v, want tag=0 length=2 (select-first priority)", m)
	}
}

func TestScanOnceMaximalMunchOnAssignVsEq(t *testing.T) {
	c := regex.NewCache(256)
	assign := c.Char('=')
	eq := c.Concat(c.Char('='), c.Char('='))
	v := vector.Vector{
		{Tag: 0, Pattern: assign},
		{Tag: 1, Pattern: eq},
	}
	d, err := dfa.Build(c, v, dfa.SelectFirst)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if m, ok := d.ScanOnce(units("==")); !ok || m.Tag != 1 || m.Length != 2 {
		t.Errorf("scan(==) = %+v ok=%v, want tag=1 length=2", m, ok)
	}
	if m, ok := d.ScanOnce(units("=")); !ok || m.Tag != 0 || m.Length != 1 {
		t.Errorf("scan(=) = %+v ok=%v, want tag=0 length=1", m, ok)
	}
}

func TestRaiseOnConflictFailsBuild(t *testing.T) {
	c := regex.NewCache(256)
	a := c.Plus(c.Range('a', 'z'))
	b := c.Concat(c.Char('f'), c.Char('o'), c.Char('o'))
	v := vector.Vector{
		{Tag: 0, Pattern: a},
		{Tag: 1, Pattern: b},
	}
	_, err := dfa.Build(c, v, dfa.RaiseOnConflict)
	if err == nil {
		t.Fatal("expected a ConflictingPatterns error")
	}
	dfaErr, ok := err.(*dfa.Error)
	if !ok || dfaErr.Kind != dfa.ConflictingPatterns {
		t.Fatalf("got %v, want *dfa.Error{Kind: ConflictingPatterns}", err)
	}
}

func TestScanAllUnrecognisedInput(t *testing.T) {
	d := buildTwoPattern(t)
	s := dfa.NewScanner(d, units("if 9"))

	tag, start, length, ok := s.Next()
	if !ok || tag != 0 || start != 0 || length != 2 {
		t.Fatalf("first token = tag=%d start=%d len=%d ok=%v, want 0,0,2,true", tag, start, length, ok)
	}
	if _, _, _, ok := s.Next(); ok {
		t.Fatal("expected UnrecognisedInput on ' 9'")
	}
	if s.Err() == nil {
		t.Fatal("expected Scanner.Err() to report UnrecognisedInput")
	}
}

func TestLivenessNoDeadEndsWithoutTag(t *testing.T) {
	d := buildTwoPattern(t)
	for i, s := range d.States {
		allDeadNoTag := true
		for _, e := range s.Transitions {
			if e.Target >= 0 || e.Tag >= 0 {
				allDeadNoTag = false
				break
			}
		}
		if allDeadNoTag && len(s.Transitions) > 0 && s.Tag < 0 {
			t.Errorf("state %d has only dead, untagged transitions and no own tag", i)
		}
	}
}

func TestMinimizeIsIdempotent(t *testing.T) {
	d := buildTwoPattern(t)
	once := dfa.Minimize(d)
	twice := dfa.Minimize(once)
	if len(once.States) != len(twice.States) {
		t.Errorf("minimizing an already-minimal DFA changed state count: %d -> %d", len(once.States), len(twice.States))
	}
}

func TestMinimizePreservesBehaviour(t *testing.T) {
	d := buildTwoPattern(t)
	min := dfa.Minimize(d)
	for _, input := range []string{"if", "iffy", "z", "abcif"} {
		mOrig, okOrig := d.ScanOnce(units(input))
		mMin, okMin := min.ScanOnce(units(input))
		if okOrig != okMin || mOrig != mMin {
			t.Errorf("input %q: original=%+v(%v) minimized=%+v(%v)", input, mOrig, okOrig, mMin, okMin)
		}
	}
}
