package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/coregx/derivlex/lexer"
	"github.com/coregx/derivlex/regex"
)

// PatternFile is the on-disk YAML shape a front end reads: an ordered
// list of named terms, priority given by list order (spec.md §6's
// ordered_list<(name, Regex)>).
type PatternFile struct {
	Patterns []NamedTerm `yaml:"patterns"`
}

// NamedTerm pairs a pattern name with its term tree.
type NamedTerm struct {
	Name string `yaml:"name"`
	Term Term   `yaml:"term"`
}

// Term mirrors the Builder EDSL one field at a time; exactly one field
// should be set per node. It exists so a pattern set can be authored as
// data instead of Go code for the example CLI front end.
type Term struct {
	Literal   *string `yaml:"literal,omitempty"`
	AnyChar   bool    `yaml:"any_char,omitempty"`
	CharRange *[2]string `yaml:"char_range,omitempty"`
	CharSet   *string `yaml:"char_set,omitempty"`

	Seq []Term `yaml:"seq,omitempty"`
	Or  []Term `yaml:"or,omitempty"`
	And []Term `yaml:"and,omitempty"`
	Sub *[2]Term `yaml:"sub,omitempty"`
	Not *Term   `yaml:"not,omitempty"`

	Star *Term `yaml:"star,omitempty"`
	Plus *Term `yaml:"plus,omitempty"`
	Opt  *Term `yaml:"opt,omitempty"`

	AnyWith    *Term `yaml:"any_with,omitempty"`
	AnyWithout *Term `yaml:"any_without,omitempty"`
}

// LoadPatternFile reads and parses path as a PatternFile.
func LoadPatternFile(path string) (*PatternFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading pattern file: %w", err)
	}
	var pf PatternFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parsing pattern file: %w", err)
	}
	return &pf, nil
}

// Build compiles every NamedTerm in pf against a fresh Builder and
// returns the resulting lexer.NamedPattern list plus the Builder they
// share (MakeLexer requires every pattern come from the same Builder).
func (pf *PatternFile) Build() (*lexer.Builder, []lexer.NamedPattern, error) {
	b := lexer.NewBuilder()
	out := make([]lexer.NamedPattern, len(pf.Patterns))
	for i, np := range pf.Patterns {
		r, err := buildTerm(b, np.Term)
		if err != nil {
			return nil, nil, fmt.Errorf("pattern %q: %w", np.Name, err)
		}
		out[i] = lexer.NamedPattern{Name: np.Name, Pattern: r}
	}
	return b, out, nil
}

// buildTerm recursively turns t into a regex.Regex via b, dispatching
// on whichever single field of t is set.
func buildTerm(b *lexer.Builder, t Term) (*regex.Regex, error) {
	switch {
	case t.Literal != nil:
		return b.String(*t.Literal), nil

	case t.AnyChar:
		return b.AnyChar(), nil

	case t.CharRange != nil:
		lo := []rune((*t.CharRange)[0])
		hi := []rune((*t.CharRange)[1])
		if len(lo) != 1 || len(hi) != 1 {
			return nil, fmt.Errorf("char_range endpoints must be single characters, got %v", *t.CharRange)
		}
		return b.CharRange(lo[0], hi[0]), nil

	case t.CharSet != nil:
		r, err := b.CharSet(*t.CharSet)
		if err != nil {
			return nil, err
		}
		return r, nil

	case len(t.Seq) > 0:
		parts := make([]*regex.Regex, len(t.Seq))
		for i, sub := range t.Seq {
			r, err := buildTerm(b, sub)
			if err != nil {
				return nil, err
			}
			parts[i] = r
		}
		return b.Concat(parts...), nil

	case len(t.Or) > 0:
		return buildFold(b, t.Or, b.Or)

	case len(t.And) > 0:
		return buildFold(b, t.And, b.And)

	case t.Sub != nil:
		a, err := buildTerm(b, (*t.Sub)[0])
		if err != nil {
			return nil, err
		}
		c, err := buildTerm(b, (*t.Sub)[1])
		if err != nil {
			return nil, err
		}
		return b.Sub(a, c), nil

	case t.Not != nil:
		r, err := buildTerm(b, *t.Not)
		if err != nil {
			return nil, err
		}
		return b.Not(r), nil

	case t.Star != nil:
		r, err := buildTerm(b, *t.Star)
		if err != nil {
			return nil, err
		}
		return b.Star(r), nil

	case t.Plus != nil:
		r, err := buildTerm(b, *t.Plus)
		if err != nil {
			return nil, err
		}
		return b.Plus(r), nil

	case t.Opt != nil:
		r, err := buildTerm(b, *t.Opt)
		if err != nil {
			return nil, err
		}
		return b.Opt(r), nil

	case t.AnyWith != nil:
		r, err := buildTerm(b, *t.AnyWith)
		if err != nil {
			return nil, err
		}
		return b.AnyWith(r), nil

	case t.AnyWithout != nil:
		r, err := buildTerm(b, *t.AnyWithout)
		if err != nil {
			return nil, err
		}
		return b.AnyWithout(r), nil

	default:
		return nil, fmt.Errorf("empty term node")
	}
}

// buildFold builds every term in ts and folds them together with op
// (Or or And), both of which require at least two operands to be
// meaningful combinators; a single term is returned as-is.
func buildFold(b *lexer.Builder, ts []Term, op func(a, c *regex.Regex) *regex.Regex) (*regex.Regex, error) {
	result, err := buildTerm(b, ts[0])
	if err != nil {
		return nil, err
	}
	for _, sub := range ts[1:] {
		r, err := buildTerm(b, sub)
		if err != nil {
			return nil, err
		}
		result = op(result, r)
	}
	return result, nil
}
