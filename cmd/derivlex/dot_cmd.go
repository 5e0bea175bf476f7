package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coregx/derivlex/emit"
)

func newDotCmd() *cobra.Command {
	var output string
	var raiseOnConflict bool
	var minimize bool

	cmd := &cobra.Command{
		Use:   "dot <patterns.yaml>",
		Short: "Emit a Graphviz dot graph of the compiled DFA",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, names, err := compileFromFlags(args[0], raiseOnConflict, minimize)
			if err != nil {
				return err
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating output file: %w", err)
			}
			defer f.Close()

			if err := emit.Dot(f, l.Dfa(), emit.Names(names)); err != nil {
				return fmt.Errorf("emitting dot graph: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "dfa.dot", "output dot file path")
	cmd.Flags().BoolVar(&raiseOnConflict, "raise-on-conflict", false, "fail the build if any two patterns can both accept")
	cmd.Flags().BoolVar(&minimize, "minimize", false, "run Hopcroft-style minimization on the built DFA")
	return cmd
}
