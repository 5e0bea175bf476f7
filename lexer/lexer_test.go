package lexer

import (
	"testing"

	"github.com/coregx/derivlex/dfa"
)

func TestMakeLexerKeywordVsIdentifier(t *testing.T) {
	b := NewBuilder()
	ifPat := b.String("if")
	ident := b.Plus(b.CharRange('a', 'z'))

	l, err := MakeLexer(b, []NamedPattern{
		{Name: "IF", Pattern: ifPat},
		{Name: "IDENT", Pattern: ident},
	}, dfa.SelectFirst, DefaultConfig())
	if err != nil {
		t.Fatalf("MakeLexer: %v", err)
	}

	if name, length, ok := l.ScanOnce([]byte("iffy")); !ok || name != "IDENT" || length != 4 {
		t.Errorf("scan(iffy) = %q,%d,%v, want IDENT,4,true", name, length, ok)
	}
	if name, length, ok := l.ScanOnce([]byte("if")); !ok || name != "IF" || length != 2 {
		t.Errorf("scan(if) = %q,%d,%v, want IF,2,true", name, length, ok)
	}
}

func TestMakeLexerRejectsConflictWithoutResolver(t *testing.T) {
	b := NewBuilder()
	a := b.Plus(b.CharRange('a', 'z'))
	foo := b.String("foo")

	_, err := MakeLexer(b, []NamedPattern{
		{Name: "IDENT", Pattern: a},
		{Name: "FOO", Pattern: foo},
	}, nil, DefaultConfig())
	if err == nil {
		t.Fatal("expected a ConflictingPatterns error")
	}
	conflict, ok := err.(*ConflictingPatterns)
	if !ok {
		t.Fatalf("got %T, want *ConflictingPatterns", err)
	}
	if len(conflict.Names) != 2 {
		t.Errorf("got names %v, want both IDENT and FOO", conflict.Names)
	}
}

func TestLiteralFastPathSelectedForAllLiteralPatterns(t *testing.T) {
	b := NewBuilder()
	l, err := MakeLexer(b, []NamedPattern{
		{Name: "PLUS", Pattern: b.String("+")},
		{Name: "MINUS", Pattern: b.String("-")},
	}, dfa.SelectFirst, DefaultConfig())
	if err != nil {
		t.Fatalf("MakeLexer: %v", err)
	}
	if l.Strategy() != StrategyLiteralFastPath {
		t.Errorf("Strategy() = %v, want StrategyLiteralFastPath", l.Strategy())
	}
	if name, length, ok := l.ScanOnce([]byte("-")); !ok || name != "MINUS" || length != 1 {
		t.Errorf("scan(-) = %q,%d,%v, want MINUS,1,true", name, length, ok)
	}
}

func TestLiteralFastPathSkippedOnPrefixOverlap(t *testing.T) {
	b := NewBuilder()
	l, err := MakeLexer(b, []NamedPattern{
		{Name: "IF", Pattern: b.String("if")},
		{Name: "IFDEF", Pattern: b.String("ifdef")},
	}, dfa.SelectFirst, DefaultConfig())
	if err != nil {
		t.Fatalf("MakeLexer: %v", err)
	}
	if l.Strategy() != StrategyDFA {
		t.Errorf("Strategy() = %v, want StrategyDFA (prefix overlap must disable the fast path)", l.Strategy())
	}
	if name, length, ok := l.ScanOnce([]byte("ifdef")); !ok || name != "IFDEF" || length != 5 {
		t.Errorf("scan(ifdef) = %q,%d,%v, want IFDEF,5,true (maximal munch)", name, length, ok)
	}
}

func TestScannerYieldsNamesInOrder(t *testing.T) {
	b := NewBuilder()
	l, err := MakeLexer(b, []NamedPattern{
		{Name: "IF", Pattern: b.String("if")},
		{Name: "IDENT", Pattern: b.Plus(b.CharRange('a', 'z'))},
	}, dfa.SelectFirst, DefaultConfig())
	if err != nil {
		t.Fatalf("MakeLexer: %v", err)
	}

	s := NewScanner(l, []byte("if"))
	name, start, length, ok := s.Next()
	if !ok || name != "IF" || start != 0 || length != 2 {
		t.Fatalf("first token = %q,%d,%d,%v, want IF,0,2,true", name, start, length, ok)
	}
	if _, _, _, ok := s.Next(); ok {
		t.Fatal("expected iteration to end at input exhaustion")
	}
}
