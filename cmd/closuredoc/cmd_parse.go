package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dhamidi/closuredoc/diag"
	"github.com/dhamidi/closuredoc/diagfmt"
	"github.com/dhamidi/closuredoc/format"
	"github.com/dhamidi/closuredoc/jsdoc"
)

func newEncoder(name string, w io.Writer) (format.Encoder, error) {
	switch name {
	case "json":
		return format.NewJSONEncoder(w), nil
	case "yaml":
		return format.NewYAMLEncoder(w), nil
	case "jsdoc":
		return format.NewJSDocEncoder(w), nil
	case "line":
		return format.NewLineEncoder(w), nil
	case "markdown":
		return format.NewMarkdownEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format: %s", name)
}

func newParseCmd(opts *globalOptions) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "parse <file.js|->",
		Short: "Parse every doc comment of a file and print the records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			encoder, err := newEncoder(outputFormat, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			text, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			name := displayName(args[0])
			bag := diag.NewBag(0)
			docs := jsdoc.ParseFile(name, text, diag.BagReporter{Bag: bag}, jsdoc.WithConfig(cfg))
			if err := encoder.Encode(format.File{Name: name, Docs: docs}); err != nil {
				return fmt.Errorf("encode: %w", err)
			}

			bag.Sort()
			stderr := cmd.ErrOrStderr()
			return diagfmt.Pretty(stderr, bag, diagfmt.MapSources(map[string]string{name: text}), diagfmt.PrettyOpts{
				Color:   opts.useColor(stderr),
				Context: true,
			})
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, yaml, jsdoc, line, markdown)")

	return cmd
}
