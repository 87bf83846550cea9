package main

import (
	"io"

	"github.com/go-kit/log"
	"github.com/grafana/symdiff/pkg/config"
	"github.com/grafana/symdiff/pkg/logging"
	"github.com/spf13/pflag"
)

// diffFlags are the flags shared by the diff and watch commands. Flags
// explicitly set on the command line override the config file.
type diffFlags struct {
	configFile  string
	expandEnv   bool
	output      string
	metricsFile string

	log logging.Options

	// Overrides for config file settings.
	includeData      bool
	sizeThreshold    bool
	printSizeChanges bool
	maxIterations    int
	parallelism      int
	color            bool
	summary          bool
}

func newDiffFlags() *diffFlags {
	return &diffFlags{log: logging.DefaultOptions}
}

func (f *diffFlags) register(fs *pflag.FlagSet) {
	def := config.DefaultConfig

	fs.StringVar(&f.configFile, "config.file", "", "YAML file with diff and report settings")
	fs.BoolVar(&f.expandEnv, "config.expand-env", false, "expand ${var} references in the config file from the environment")
	fs.StringVarP(&f.output, "output", "o", "-", "file to write the report to, - for stdout")
	fs.StringVar(&f.metricsFile, "metrics.file", "", "file to write diff metrics to in the Prometheus text format")

	fs.Var(&f.log.Level, "log.level", "log level: debug, info, warn or error")
	fs.Var(&f.log.Format, "log.format", "log format: logfmt or json")

	fs.BoolVar(&f.includeData, "include-data", def.Diff.IncludeDataSymbols, "diff data sections as well as code sections")
	fs.BoolVar(&f.sizeThreshold, "size-threshold", def.Diff.UseSymbolSizeThreshold, "let auto-generated symbols with close sizes match deep into a run")
	fs.BoolVar(&f.printSizeChanges, "print-size-changes", def.Diff.PrintDifferentSizeSymbols, "list matched symbols whose size changed")
	fs.IntVar(&f.maxIterations, "max-iterations", def.Diff.MaxIterations, "maximum alignment steps per section, 0 for no limit")
	fs.IntVar(&f.parallelism, "parallelism", def.Diff.Parallelism, "number of sections aligned at once")
	fs.BoolVar(&f.color, "color", def.Report.Color, "color symbols found in only one file")
	fs.BoolVar(&f.summary, "summary", def.Report.Summary, "print a summary table to stderr")
}

// config loads the config file, if any, and applies flag overrides.
func (f *diffFlags) config(fs *pflag.FlagSet) (config.Config, error) {
	cfg := config.DefaultConfig
	if f.configFile != "" {
		if err := config.LoadFile(f.configFile, f.expandEnv, &cfg); err != nil {
			return cfg, err
		}
	}

	if fs.Changed("include-data") {
		cfg.Diff.IncludeDataSymbols = f.includeData
	}
	if fs.Changed("size-threshold") {
		cfg.Diff.UseSymbolSizeThreshold = f.sizeThreshold
	}
	if fs.Changed("print-size-changes") {
		cfg.Diff.PrintDifferentSizeSymbols = f.printSizeChanges
	}
	if fs.Changed("max-iterations") {
		cfg.Diff.MaxIterations = f.maxIterations
	}
	if fs.Changed("parallelism") {
		cfg.Diff.Parallelism = f.parallelism
	}
	if fs.Changed("color") {
		cfg.Report.Color = f.color
	}
	if fs.Changed("summary") {
		cfg.Report.Summary = f.summary
	}

	return cfg, cfg.Validate()
}

func (f *diffFlags) logger(w io.Writer) (log.Logger, error) {
	return logging.New(w, f.log)
}
