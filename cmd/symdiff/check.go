package main

import (
	"fmt"
	"strconv"

	"github.com/grafana/symdiff/pkg/symbols"
	"github.com/hashicorp/go-multierror"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [file...]",
		Short: "Validate symbol files and print their sections",
		Long: `check parses each given symbol file and prints one row per section with
its kind and symbol count. Every file is checked even if an earlier one fails.

If all files are valid the exit code will be 0. Otherwise, every problem is
reported and the exit code will be 1.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var errs error

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"File", "Section", "Kind", "Symbols", "Auto-generated"})
			table.SetAutoFormatHeaders(false)

			for _, path := range args {
				f, err := symbols.LoadFile(path)
				if err != nil {
					errs = multierror.Append(errs, err)
					continue
				}
				for _, s := range f.Sections {
					table.Append([]string{
						path,
						s.Name,
						s.Kind.String(),
						strconv.Itoa(len(s.Symbols)),
						strconv.Itoa(countAuto(s)),
					})
				}
			}

			if table.NumLines() > 0 {
				table.Render()
			}
			if errs != nil {
				return fmt.Errorf("checking symbol files: %w", errs)
			}
			return nil
		},
	}
}

func countAuto(s *symbols.Section) int {
	var n int
	for _, sym := range s.Symbols {
		if sym.IsAutoGenerated() {
			n++
		}
	}
	return n
}
