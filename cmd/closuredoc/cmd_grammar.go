package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/closuredoc/jsdoc/typeexpr"
)

func newGrammarCmd() *cobra.Command {
	var accepts string

	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Print the EBNF grammar of type annotations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := typeexpr.Grammar(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if accepts == "" {
				fmt.Fprint(out, typeexpr.GrammarText)
				return nil
			}
			ok, err := typeexpr.Accepts(typeexpr.StartProduction, accepts)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%q does not match %s", accepts, typeexpr.StartProduction)
			}
			fmt.Fprintf(out, "%q matches %s\n", accepts, typeexpr.StartProduction)
			return nil
		},
	}

	cmd.Flags().StringVar(&accepts, "accepts", "", "check whether a type annotation matches the grammar")

	return cmd
}
