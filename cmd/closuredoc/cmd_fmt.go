package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/closuredoc/format"
	"github.com/dhamidi/closuredoc/jsdoc"
)

func newFmtCmd(opts *globalOptions) *cobra.Command {
	var overwrite bool
	var showDiff bool

	cmd := &cobra.Command{
		Use:   "fmt [file.js]",
		Short: "Rewrite the type annotations of a file in canonical form",
		Long: `Rewrite every braced type annotation of a JavaScript file in its canonical
form and print the result to stdout. Code and comment text are left alone.

If no file is provided, reads JavaScript source from stdin.

Use -w to overwrite the file in place (requires a file argument) and --diff
to print the changes instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "-"
			if len(args) > 0 {
				name = args[0]
			}
			if overwrite && name == "-" {
				return fmt.Errorf("-w requires a file argument")
			}
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			text, err := readInput(cmd, name)
			if err != nil {
				return err
			}

			docs := jsdoc.ParseFile(displayName(name), text, nil, jsdoc.WithConfig(cfg))
			output := format.Apply(text, format.CanonicalTypeEdits(text, docs))

			switch {
			case showDiff:
				_, err = io.WriteString(cmd.OutOrStdout(), format.LineDiff(displayName(name), text, output, false))
				return err
			case overwrite:
				if output == text {
					return nil
				}
				info, err := os.Stat(name)
				if err != nil {
					return fmt.Errorf("stat: %w", err)
				}
				return os.WriteFile(name, []byte(output), info.Mode().Perm())
			}
			_, err = io.WriteString(cmd.OutOrStdout(), output)
			return err
		},
	}

	cmd.Flags().BoolVarP(&overwrite, "write", "w", false, "overwrite the file in place")
	cmd.Flags().BoolVarP(&showDiff, "diff", "d", false, "print a diff of the changes")

	return cmd
}
