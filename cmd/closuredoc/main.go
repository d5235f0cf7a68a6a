package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	rootCmd := &cobra.Command{
		Use:           "closuredoc",
		Short:         "Parse and check Closure-style JSDoc comments",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	opts.register(rootCmd)

	rootCmd.AddCommand(newParseCmd(opts))
	rootCmd.AddCommand(newCheckCmd(opts))
	rootCmd.AddCommand(newTypeCmd(opts))
	rootCmd.AddCommand(newFmtCmd(opts))
	rootCmd.AddCommand(newDocCmd(opts))
	rootCmd.AddCommand(newGrammarCmd())
	rootCmd.AddCommand(newLSPCmd(opts))

	return rootCmd
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		var de *diagnosticsError
		if errors.As(err, &de) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
