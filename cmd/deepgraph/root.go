package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:           "deepgraph",
		Short:         "inspect and declare deep-clone semantics of Go types",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "if debug traces should be written to stderr")

	logger := func(cmd *cobra.Command) *slog.Logger {
		if !verbose {
			return slog.New(slog.DiscardHandler)
		}

		return newLogger(cmd.ErrOrStderr())
	}

	cmd.AddCommand(
		newScanCmd(logger),
		newCheckCmd(),
		newConfigCmd(),
	)

	return cmd
}

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
