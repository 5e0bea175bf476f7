package dfa

import (
	"github.com/coregx/derivlex/regex"
	"github.com/coregx/derivlex/vector"
)

// Config controls optional DFA build behaviour. Liveness pruning always
// runs; minimization is the only knob, since it trades build time for a
// smaller state count and both paths produce a correct DFA (spec.md
// §4.4).
type Config struct {
	// UseMinimization runs Minimize on the freshly built, live-pruned
	// Dfa before returning it.
	//
	// Default: false.
	UseMinimization bool
}

// DefaultConfig returns the zero-value Config: liveness pruning only.
func DefaultConfig() Config {
	return Config{UseMinimization: false}
}

// WithMinimization returns a copy of c with UseMinimization set.
func (c Config) WithMinimization(enabled bool) Config {
	c.UseMinimization = enabled
	return c
}

// BuildWithConfig is Build followed by Minimize when cfg.UseMinimization
// is set.
func BuildWithConfig(cache *regex.Cache, initial vector.Vector, resolve Resolver, cfg Config) (*Dfa, error) {
	d, err := Build(cache, initial, resolve)
	if err != nil {
		return nil, err
	}
	if cfg.UseMinimization {
		d = Minimize(d)
	}
	return d, nil
}
