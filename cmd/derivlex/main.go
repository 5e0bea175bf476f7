// Command derivlex is an example front end for package lexer: it reads
// a YAML-described, priority-ordered pattern list and either emits a
// C scanner header, emits a Graphviz dot graph, or tokenizes a file
// with the resulting lexer (spec.md §6, "Exit codes / persisted
// state").
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coregx/derivlex/dfa"
	"github.com/coregx/derivlex/lexer"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "derivlex:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "derivlex",
		Short: "Compile derivative-based lexers from a YAML pattern file",
	}
	root.AddCommand(newBuildCmd())
	root.AddCommand(newDotCmd())
	root.AddCommand(newScanCmd())
	return root
}

// compileFromFlags loads patternFile and compiles it with the given
// resolver and minimization setting, shared by every subcommand.
func compileFromFlags(patternFile string, raiseOnConflict, minimize bool) (*lexer.Lexer, []string, error) {
	pf, err := LoadPatternFile(patternFile)
	if err != nil {
		return nil, nil, err
	}
	b, patterns, err := pf.Build()
	if err != nil {
		return nil, nil, err
	}

	resolve := dfa.Resolver(dfa.SelectFirst)
	if raiseOnConflict {
		resolve = dfa.RaiseOnConflict
	}

	cfg := lexer.DefaultConfig().WithMinimization(minimize)
	l, err := lexer.MakeLexer(b, patterns, resolve, cfg)
	if err != nil {
		return nil, nil, err
	}

	names := make([]string, len(patterns))
	for i, p := range patterns {
		names[i] = p.Name
	}
	return l, names, nil
}
