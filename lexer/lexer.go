// Package lexer is the builder façade and runtime wrapper spec.md §6
// describes: a human-facing EDSL over package regex, a make_lexer that
// compiles an ordered list of named patterns into a dfa.Dfa, and a
// Lexer that carries the tag-id-to-name mapping the lower layers never
// see.
package lexer

import "github.com/coregx/derivlex/regex"

// Config controls optional make_lexer behaviour, mirroring the
// teacher's Config/DefaultConfig/With* shape (meta.Config); there is no
// Validate method.
type Config struct {
	// UseMinimization runs Hopcroft-style minimization on the built Dfa.
	//
	// Default: false.
	UseMinimization bool

	// EnableLiteralAcceleration builds an Aho-Corasick automaton
	// alongside the Dfa when every pattern's regex is a plain literal
	// string with no literal a prefix of another literal carrying a
	// different tag, and uses it as a ScanOnce fast path. See
	// literal.go.
	//
	// Default: true.
	EnableLiteralAcceleration bool
}

// DefaultConfig returns the recommended Config: liveness-pruned,
// unminimized Dfa with literal acceleration enabled.
func DefaultConfig() Config {
	return Config{
		UseMinimization:           false,
		EnableLiteralAcceleration: true,
	}
}

// WithMinimization returns a copy of c with UseMinimization set.
func (c Config) WithMinimization(enabled bool) Config {
	c.UseMinimization = enabled
	return c
}

// WithLiteralAcceleration returns a copy of c with
// EnableLiteralAcceleration set.
func (c Config) WithLiteralAcceleration(enabled bool) Config {
	c.EnableLiteralAcceleration = enabled
	return c
}

// NamedPattern pairs a human-readable pattern name with its compiled
// regex term, the ordered_list<(name, Regex)> make_lexer takes
// (spec.md §6).
type NamedPattern struct {
	Name    string
	Pattern *regex.Regex
}

// Strategy identifies which matching path a Lexer's ScanOnce actually
// takes for a given call.
type Strategy int

const (
	// StrategyDFA always walks the compiled Dfa.
	StrategyDFA Strategy = iota
	// StrategyLiteralFastPath tries the Aho-Corasick automaton first
	// and falls back to the Dfa only if it built successfully but
	// still somehow missed (defensive; see literal.go).
	StrategyLiteralFastPath
)

func (s Strategy) String() string {
	if s == StrategyLiteralFastPath {
		return "LiteralFastPath"
	}
	return "DFA"
}
