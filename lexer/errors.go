package lexer

import (
	"fmt"
	"strings"

	"github.com/coregx/derivlex/dfa"
)

// InvalidCharClassSyntax reports a malformed char_set text (spec.md
// §7). Wraps the underlying charsyntax.Error.
type InvalidCharClassSyntax struct {
	Text  string
	Cause error
}

func (e *InvalidCharClassSyntax) Error() string {
	return fmt.Sprintf("invalid char class %q: %v", e.Text, e.Cause)
}

func (e *InvalidCharClassSyntax) Unwrap() error { return e.Cause }

// ConflictingPatterns reports that two or more patterns are
// simultaneously accepted by a reachable state and the chosen resolver
// refused to pick (spec.md §7). Names holds the offending pattern
// names, translated from the dfa package's raw tag ids.
type ConflictingPatterns struct {
	Names []string
	Cause *dfa.Error
}

func (e *ConflictingPatterns) Error() string {
	return fmt.Sprintf("conflicting patterns: %s", strings.Join(e.Names, ", "))
}

func (e *ConflictingPatterns) Unwrap() error { return e.Cause }

// translateError maps a *dfa.Error's raw tag ids to pattern names,
// using names[i] as the name for tag id i.
func translateError(err error, names []string) error {
	dfaErr, ok := err.(*dfa.Error)
	if !ok || dfaErr.Kind != dfa.ConflictingPatterns {
		return err
	}
	resolved := make([]string, 0, len(dfaErr.TagIDs))
	for _, id := range dfaErr.TagIDs {
		if id >= 0 && id < len(names) {
			resolved = append(resolved, names[id])
		}
	}
	return &ConflictingPatterns{Names: resolved, Cause: dfaErr}
}
