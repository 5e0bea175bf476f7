package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coregx/derivlex/lexer"
)

func newScanCmd() *cobra.Command {
	var raiseOnConflict bool
	var minimize bool

	cmd := &cobra.Command{
		Use:   "scan <patterns.yaml> <input-file>",
		Short: "Tokenize a file with the compiled lexer and print each token",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, _, err := compileFromFlags(args[0], raiseOnConflict, minimize)
			if err != nil {
				return err
			}

			input, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("reading input file: %w", err)
			}

			s := lexer.NewScanner(l, input)
			out := cmd.OutOrStdout()
			for {
				name, start, length, ok := s.Next()
				if !ok {
					break
				}
				fmt.Fprintf(out, "%s\t%d\t%q\n", name, start, input[start:start+length])
			}
			if err := s.Err(); err != nil {
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&raiseOnConflict, "raise-on-conflict", false, "fail the build if any two patterns can both accept")
	cmd.Flags().BoolVar(&minimize, "minimize", false, "run Hopcroft-style minimization on the built DFA")
	return cmd
}
