package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/closuredoc/format"
)

func newDocCmd(opts *globalOptions) *cobra.Command {
	var html bool
	var all bool
	var jobs int

	cmd := &cobra.Command{
		Use:   "doc <paths...>",
		Short: "Generate API documentation from doc comments",
		Long: `Generate Markdown documentation for the documented declarations of the
given JavaScript files and directories. Private declarations are left out
unless --all is set.

Use --html to render the documentation to HTML.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := expandPaths(args)
			if err != nil {
				return err
			}
			files, err := parseAll(cmd, opts, paths, jobs)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, f := range files {
				file := format.File{Name: f.Path, Docs: f.Docs}
				var encoder format.Encoder
				if html {
					e := format.NewHTMLEncoder(out)
					e.SetAll(all)
					encoder = e
				} else {
					e := format.NewMarkdownEncoder(out)
					e.All = all
					encoder = e
				}
				if err := encoder.Encode(file); err != nil {
					return fmt.Errorf("encode %s: %w", f.Path, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&html, "html", false, "render HTML instead of Markdown")
	cmd.Flags().BoolVar(&all, "all", false, "include private declarations")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "number of files parsed in parallel (default: number of CPUs)")

	return cmd
}
