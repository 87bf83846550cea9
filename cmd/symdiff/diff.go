package main

import (
	"context"
	"io"
	"os/signal"
	"syscall"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/grafana/symdiff/pkg/config"
	"github.com/grafana/symdiff/pkg/differ"
	"github.com/grafana/symdiff/pkg/report"
	"github.com/grafana/symdiff/pkg/symbols"
	"github.com/hashicorp/go-multierror"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func diffCmd() *cobra.Command {
	f := newDiffFlags()

	cmd := &cobra.Command{
		Use:   "diff [file1] [file2]",
		Short: "Align the symbols of two symbol files",
		Long: `diff loads two symbol files and aligns every section they have in common.
Runs of matching symbols are reported together with the symbols found in only
one of the files. Sections present in only one file are listed first.

Settings are read from --config.file when given. Flags set on the command line
take precedence over the file.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.config(cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := f.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			reg := prometheus.NewRegistry()
			registerBuildInfo(reg)
			d := differ.New(logger, cfg.Diff, differ.NewMetrics(reg))

			r := &runner{
				logger: logger,
				differ: d,
				load:   symbols.LoadFile,
				cfg:    cfg,
				flags:  f,
				reg:    reg,
				stdout: cmd.OutOrStdout(),
				stderr: cmd.ErrOrStderr(),
			}
			return r.diff(ctx, args[0], args[1])
		},
	}

	f.register(cmd.Flags())
	return cmd
}

// runner performs one diff and writes its outputs.
type runner struct {
	logger log.Logger
	differ *differ.Differ
	load   func(path string) (*symbols.File, error)
	cfg    config.Config
	flags  *diffFlags
	reg    prometheus.Gatherer

	stdout, stderr io.Writer
}

func (r *runner) diff(ctx context.Context, path1, path2 string) error {
	f1, f2, err := loadPair(r.load, path1, path2)
	if err != nil {
		return err
	}
	level.Debug(r.logger).Log("msg", "loaded symbol files",
		"file1", path1, "sections1", len(f1.Sections), "symbols1", f1.NumSymbols(),
		"file2", path2, "sections2", len(f2.Sections), "symbols2", f2.NumSymbols())

	res, err := r.differ.Diff(ctx, f1, f2)
	if err != nil {
		return err
	}

	if err := report.Output(r.stdout, r.flags.output, res, report.Options{Color: r.cfg.Report.Color}); err != nil {
		return err
	}
	if r.cfg.Report.Summary {
		report.Summary(r.stderr, res)
	}
	if r.flags.metricsFile != "" {
		if err := writeMetrics(r.flags.metricsFile, r.reg); err != nil {
			return err
		}
	}

	level.Info(r.logger).Log("msg", "diff complete", "sections", len(res.Sections), "notices", len(res.Notices))
	return nil
}

// loadPair loads both files, reporting every failure.
func loadPair(load func(string) (*symbols.File, error), path1, path2 string) (*symbols.File, *symbols.File, error) {
	var errs error

	f1, err := load(path1)
	if err != nil {
		errs = multierror.Append(errs, err)
	}
	f2, err := load(path2)
	if err != nil {
		errs = multierror.Append(errs, err)
	}

	if errs != nil {
		return nil, nil, errs
	}
	return f1, f2, nil
}
