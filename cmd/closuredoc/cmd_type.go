package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/closuredoc/diag"
	"github.com/dhamidi/closuredoc/diagfmt"
	"github.com/dhamidi/closuredoc/jsdoc"
	"github.com/dhamidi/closuredoc/jsdoc/typeexpr"
)

func newTypeCmd(opts *globalOptions) *cobra.Command {
	var param bool
	var tree bool

	cmd := &cobra.Command{
		Use:   "type <expr>",
		Short: "Parse a type expression and print its canonical form",
		Example: `  closuredoc type 'Array.<string>|null'
  closuredoc type --param '...number'
  closuredoc type --lang es3 --tree '[string, number]'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			text := strings.Join(args, " ")
			bag := diag.NewBag(0)
			r := diag.BagReporter{Bag: bag}

			var t typeexpr.Type
			if param {
				t = typeexpr.ParseParam(text, r, typeexpr.WithLegacyArrays(cfg.LanguageMode.LegacyArrays()))
			} else {
				t = jsdoc.ParseTypeString(text, r, jsdoc.WithConfig(cfg))
			}

			stderr := cmd.ErrOrStderr()
			if err := diagfmt.Pretty(stderr, bag, diagfmt.MapSources(map[string]string{"": text}), diagfmt.PrettyOpts{
				Color: opts.useColor(stderr),
			}); err != nil {
				return err
			}
			if t == nil {
				return errors.New("not a type expression")
			}

			out := cmd.OutOrStdout()
			if tree {
				fmt.Fprint(out, typeexpr.Dump(t))
				return nil
			}
			fmt.Fprintln(out, t.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&param, "param", false, "parse as a @param type, allowing ... and =")
	cmd.Flags().BoolVar(&tree, "tree", false, "print the syntax tree instead of the canonical form")

	return cmd
}
