// Command symdiff compares the symbol maps of two builds of a binary and
// reports which runs of symbols correspond between them.
package main

import (
	"fmt"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/grafana/symdiff/pkg/build"
	"github.com/spf13/cobra"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
		level.Error(logger).Log("msg", "symdiff failed", "err", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "symdiff",
		Short:   "Compare symbol maps of two builds of a binary",
		Version: build.Print(),

		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.SetVersionTemplate("{{ .Version }}\n")

	cmd.AddCommand(
		diffCmd(),
		checkCmd(),
		watchCmd(),
		versionCmd(),
	)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), build.Print())
		},
	}
}
