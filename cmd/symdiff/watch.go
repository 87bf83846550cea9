package main

import (
	"context"
	"errors"
	"syscall"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/grafana/symdiff/pkg/differ"
	"github.com/grafana/symdiff/pkg/symbols"
	"github.com/grafana/symdiff/pkg/watch"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// Parsed files kept by watch: the current and previous version of each input.
const watchCacheSize = 4

func watchCmd() *cobra.Command {
	f := newDiffFlags()

	cmd := &cobra.Command{
		Use:   "watch [file1] [file2]",
		Short: "Diff two symbol files again whenever either changes",
		Long: `watch runs diff once and then again every time one of the two files is
written or replaced, until interrupted. Unchanged files are not parsed again.
A failed diff is logged and watching continues.`,
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

			reg := prometheus.NewRegistry()
			registerBuildInfo(reg)

			cache, err := symbols.NewCache(watchCacheSize, symbols.NewCacheMetrics(reg))
			if err != nil {
				return err
			}

			r := &runner{
				logger: logger,
				differ: differ.New(logger, cfg.Diff, differ.NewMetrics(reg)),
				load:   cache.Load,
				cfg:    cfg,
				flags:  f,
				reg:    reg,
				stdout: cmd.OutOrStdout(),
				stderr: cmd.ErrOrStderr(),
			}
			return r.watch(cmd.Context(), args[0], args[1])
		},
	}

	f.register(cmd.Flags())
	return cmd
}

// watch diffs the two files each time one of them changes until ctx is
// canceled or the process is signaled.
func (r *runner) watch(ctx context.Context, path1, path2 string) error {
	updates := make(chan struct{}, 1)
	detector, err := watch.New(watch.Options{
		Logger:    log.With(r.logger, "component", "watch"),
		Filenames: []string{path1, path2},
		UpdateCh:  updates,
	})
	if err != nil {
		return err
	}

	var g run.Group
	{
		g.Add(run.SignalHandler(ctx, syscall.SIGINT, syscall.SIGTERM))
	}
	{
		ctx, cancel := context.WithCancel(ctx)
		g.Add(func() error {
			return detector.Run(ctx)
		}, func(error) {
			cancel()
			detector.Close()
		})
	}
	{
		ctx, cancel := context.WithCancel(ctx)
		g.Add(func() error {
			r.rediff(ctx, path1, path2)
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-updates:
					r.rediff(ctx, path1, path2)
				}
			}
		}, func(error) {
			cancel()
		})
	}

	err = g.Run()

	var sigErr run.SignalError
	if errors.As(err, &sigErr) {
		level.Info(r.logger).Log("msg", "stopping", "signal", sigErr.Signal)
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (r *runner) rediff(ctx context.Context, path1, path2 string) {
	if err := r.diff(ctx, path1, path2); err != nil && ctx.Err() == nil {
		level.Error(r.logger).Log("msg", "diff failed; waiting for the next change", "err", err)
	}
}
