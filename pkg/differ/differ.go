// Package differ compares two symbol files section by section.
package differ

import (
	"context"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/grafana/symdiff/pkg/align"
	"github.com/grafana/symdiff/pkg/symbols"
	"golang.org/x/sync/errgroup"
)

// Differ aligns the sections two symbol files have in common.
type Differ struct {
	logger  log.Logger
	opts    Options
	metrics *Metrics
}

// New creates a Differ. A nil logger discards logs and nil metrics are not
// registered anywhere.
func New(logger log.Logger, opts Options, metrics *Metrics) *Differ {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	if opts.Parallelism < 1 {
		opts.Parallelism = 1
	}
	return &Differ{
		logger:  logger,
		opts:    opts,
		metrics: metrics,
	}
}

type sectionPair struct {
	s1, s2 *symbols.Section
}

// Diff compares f1 against f2. Sections of f1 missing from f2, and the other
// way around, are reported as notices. Each remaining section of f1 is
// aligned against the first section of f2 with the same name.
//
// Diff only fails if ctx is canceled.
func (d *Differ) Diff(ctx context.Context, f1, f2 *symbols.File) (*Result, error) {
	res := &Result{
		File1:   f1.Path,
		File2:   f2.Path,
		Options: d.opts,
	}

	var pairs []sectionPair
	for _, s1 := range f1.Sections {
		s2 := f2.Section(s1.Name)
		if s2 == nil {
			res.Notices = append(res.Notices, Notice{Kind: MissingInFile2, Section: s1.Name})
			continue
		}
		if !d.opts.IncludeDataSymbols && !s1.IsCode() {
			res.Skipped = append(res.Skipped, s1.Name)
			continue
		}
		pairs = append(pairs, sectionPair{s1: s1, s2: s2})
	}

	seen := make(map[string]struct{}, len(f2.Sections))
	for _, s2 := range f2.Sections {
		if _, ok := seen[s2.Name]; ok {
			continue
		}
		seen[s2.Name] = struct{}{}
		if !f1.HasSection(s2.Name) {
			res.Notices = append(res.Notices, Notice{Kind: MissingInFile1, Section: s2.Name})
		}
	}

	res.Sections = make([]*SectionResult, len(pairs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.opts.Parallelism)
	for i, p := range pairs {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res.Sections[i] = d.diffSection(p.s1, p.s2)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

func (d *Differ) diffSection(s1, s2 *symbols.Section) *SectionResult {
	sr := &SectionResult{
		Name:     s1.Name,
		Kind:     s1.Kind,
		Symbols1: s1.Symbols,
		Symbols2: s2.Symbols,
	}

	if s1.Fingerprint() == s2.Fingerprint() && symbols.Equivalent(s1, s2) {
		// The aligner accepts the whole section in its first step here.
		if n := len(s1.Symbols); n > 0 {
			sr.Matches = []align.Match{{Start1: 0, Start2: 0, Length: n}}
			sr.Stats = align.Stats{Iterations: 1, Accepted: 1}
		}
		sr.Identical = true
		d.metrics.SectionsIdentical.Inc()
		level.Debug(d.logger).Log("msg", "section unchanged", "section", s1.Name, "symbols", len(s1.Symbols))
		return sr
	}

	start := time.Now()
	res := align.Align(s1.Symbols, s2.Symbols, align.Options{
		Fuzzy:         d.opts.UseSymbolSizeThreshold,
		MaxIterations: d.opts.MaxIterations,
	})
	d.metrics.AlignDuration.Observe(time.Since(start).Seconds())

	sr.Matches = res.Matches
	sr.Stats = res.Stats

	d.metrics.SectionsAligned.Inc()
	d.metrics.MatchesAccepted.Add(float64(res.Stats.Accepted))
	d.metrics.CandidatesRejected.Add(float64(res.Stats.Rejected))
	d.metrics.WindowsDiscarded.Add(float64(res.Stats.Discarded))
	d.metrics.Iterations.Add(float64(res.Stats.Iterations))

	level.Debug(d.logger).Log(
		"msg", "aligned section",
		"section", s1.Name,
		"kind", s1.Kind,
		"symbols1", len(s1.Symbols),
		"symbols2", len(s2.Symbols),
		"matches", len(res.Matches),
		"iterations", res.Stats.Iterations,
		"duration", time.Since(start),
	)
	if res.Stats.Truncated {
		d.metrics.SectionsTruncated.Inc()
		level.Warn(d.logger).Log(
			"msg", "section alignment stopped at iteration limit",
			"section", s1.Name,
			"max_iterations", d.opts.MaxIterations,
			"remaining1", res.Stats.Remaining1,
			"remaining2", res.Stats.Remaining2,
		)
	}
	return sr
}
