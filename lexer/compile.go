package lexer

import (
	"github.com/coregx/derivlex/dfa"
	"github.com/coregx/derivlex/vector"
)

// MakeLexer compiles an ordered list of named patterns, all built
// through b, into a Lexer (spec.md §6, make_lexer). patterns[i]'s
// index is its tag id. resolve defaults to dfa.RaiseOnConflict when
// nil, per spec.md's stated default resolver.
func MakeLexer(b *Builder, patterns []NamedPattern, resolve dfa.Resolver, cfg Config) (*Lexer, error) {
	if resolve == nil {
		resolve = dfa.RaiseOnConflict
	}

	names := make([]string, len(patterns))
	v := make(vector.Vector, len(patterns))
	for i, p := range patterns {
		names[i] = p.Name
		v[i] = vector.Entry{Tag: i, Pattern: p.Pattern}
	}

	buildCfg := dfa.DefaultConfig().WithMinimization(cfg.UseMinimization)
	d, err := dfa.BuildWithConfig(b.Cache(), v, resolve, buildCfg)
	if err != nil {
		return nil, translateError(err, names)
	}

	l := &Lexer{dfa: d, names: names, strategy: StrategyDFA}

	if cfg.EnableLiteralAcceleration {
		if literals, ok := literalPatterns(patterns); ok && !hasCrossTagPrefixOverlap(literals) {
			if automaton, byBytes, err := buildLiteralAutomaton(literals); err == nil {
				l.automaton = automaton
				l.literalTags = byBytes
				l.strategy = StrategyLiteralFastPath
			}
		}
	}

	return l, nil
}
