package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coregx/derivlex/emit"
)

func newBuildCmd() *cobra.Command {
	var output string
	var raiseOnConflict bool
	var minimize bool
	var useLimit bool

	cmd := &cobra.Command{
		Use:   "build <patterns.yaml>",
		Short: "Emit a self-contained C scanner header",
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

			if err := emit.C(f, l.Dfa(), emit.Names(names), useLimit); err != nil {
				return fmt.Errorf("emitting C header: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "dfa.h", "output header path")
	cmd.Flags().BoolVar(&raiseOnConflict, "raise-on-conflict", false, "fail the build if any two patterns can both accept (default: select the earliest-priority pattern)")
	cmd.Flags().BoolVar(&minimize, "minimize", false, "run Hopcroft-style minimization on the built DFA")
	cmd.Flags().BoolVar(&useLimit, "use-limit", false, "generate a bounds-checked scanner instead of relying on a NUL sentinel")
	return cmd
}
