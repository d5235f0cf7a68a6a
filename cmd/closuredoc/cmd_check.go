package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/closuredoc/codebase"
	"github.com/dhamidi/closuredoc/diag"
	"github.com/dhamidi/closuredoc/diagfmt"
)

// diagnosticsError reports that check found problems. The diagnostics
// themselves were already printed.
type diagnosticsError struct {
	errors   int
	warnings int
}

func (e *diagnosticsError) Error() string {
	return fmt.Sprintf("%d errors, %d warnings", e.errors, e.warnings)
}

// expandPaths replaces directories by the JavaScript files below them.
func expandPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat: %w", err)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		found, err := codebase.Walk(arg)
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", arg, err)
		}
		paths = append(paths, found...)
	}
	return paths, nil
}

// parseAll parses files with up to jobs goroutines and returns them in the
// order of paths.
func parseAll(cmd *cobra.Command, opts *globalOptions, paths []string, jobs int) ([]*codebase.FileInfo, error) {
	cfg, err := opts.loadConfig()
	if err != nil {
		return nil, err
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	files := make([]*codebase.FileInfo, len(paths))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(jobs)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}
			files[i] = codebase.Parse(path, content, cfg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

func newCheckCmd(opts *globalOptions) *cobra.Command {
	var jobs int
	var outputFormat string
	var strict bool

	cmd := &cobra.Command{
		Use:   "check <paths...>",
		Short: "Report problems in the doc comments of JavaScript files",
		Long: `Parse the doc comments of every JavaScript file given or found below the
given directories and print the diagnostics sorted by file and position.

The command fails when an error was found, or any diagnostic with --strict.`,
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

			bag := diag.NewBag(0)
			sources := make(map[string]string, len(files))
			for _, f := range files {
				sources[f.Path] = string(f.Content)
				for _, d := range f.Diagnostics {
					bag.Add(d)
				}
			}
			bag.Sort()

			out := cmd.OutOrStdout()
			switch outputFormat {
			case "pretty":
				err = diagfmt.Pretty(out, bag, diagfmt.MapSources(sources), diagfmt.PrettyOpts{
					Color:   opts.useColor(out),
					Context: true,
				})
			case "json":
				err = diagfmt.JSON(out, bag, diagfmt.JSONOpts{})
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}
			if err != nil {
				return fmt.Errorf("write diagnostics: %w", err)
			}

			failed := bag.HasErrors() || (strict && bag.Len() > 0)
			stderr := cmd.ErrOrStderr()
			c := summaryColor(failed, opts.useColor(stderr))
			fmt.Fprintf(stderr, "%s in %d files\n", c.Sprint(diagfmt.Summary(bag)), len(files))
			if failed {
				return &diagnosticsError{errors: bag.Count(diag.SevError), warnings: bag.Count(diag.SevWarning)}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "number of files parsed in parallel (default: number of CPUs)")
	cmd.Flags().StringVar(&outputFormat, "format", "pretty", "output format (pretty, json)")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on warnings too")

	return cmd
}
