package main

import (
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/closuredoc/codebase"
)

func newLSPCmd(opts *globalOptions) *cobra.Command {
	var verbose int
	var logFile string

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			var path *string
			if logFile != "" {
				path = &logFile
			}
			commonlog.Configure(verbose, path)

			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			server := codebase.NewLSPServer(version, cfg)
			return server.RunStdio()
		},
	}

	cmd.Flags().CountVarP(&verbose, "verbose", "v", "log more (repeat for more detail)")
	cmd.Flags().StringVar(&logFile, "log", "", "write the log to a file instead of stderr")

	return cmd
}
