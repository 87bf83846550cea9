// Package align finds corresponding runs of symbols between two versions of
// a section.
//
// Alignment is greedy: the longest run between the earliest unexplained
// windows of both sequences is accepted if it is consistent with the runs
// accepted before it. When no consistent run exists, the window which lags
// furthest behind the last accepted run is discarded, so every step explains
// at least one more symbol and the search always terminates.
package align

import (
	"sort"

	"github.com/grafana/symdiff/pkg/symbols"
)

// Options configures an alignment run.
type Options struct {
	// Fuzzy allows auto-generated symbols deep into a run to match when their
	// sizes are within 5% of each other.
	Fuzzy bool

	// MaxIterations stops alignment after this many steps. Zero means no
	// limit.
	MaxIterations int
}

// Stats describes the work done by one alignment run.
type Stats struct {
	Iterations int
	Accepted   int
	Rejected   int // candidates crossing an accepted match
	Empty      int // searches which found no run at all
	Discarded  int // windows given up without a match
	Truncated  bool

	// Remaining1 and Remaining2 count the symbols of each sequence that were
	// never examined. Only set when Truncated.
	Remaining1 int
	Remaining2 int
}

// Result is the outcome of aligning two sequences.
type Result struct {
	// Matches are ordered by Start1 and never cross each other.
	Matches []Match
	Stats   Stats
}

// Align aligns seq1 against seq2.
func Align(seq1, seq2 []symbols.Symbol, opts Options) Result {
	a := aligner{
		seq1:    seq1,
		seq2:    seq2,
		opts:    opts,
		tracker: NewTracker(len(seq1), len(seq2)),
	}
	a.run()
	return Result{Matches: a.matches, Stats: a.stats}
}

type aligner struct {
	seq1, seq2 []symbols.Symbol
	opts       Options
	tracker    *Tracker

	matches []Match
	stats   Stats
}

func (a *aligner) run() {
	for {
		w1 := a.tracker.NextUnexplained(First)
		w2 := a.tracker.NextUnexplained(Second)
		if w1.Done() || w2.Done() {
			return
		}

		if a.opts.MaxIterations > 0 && a.stats.Iterations >= a.opts.MaxIterations {
			a.stats.Truncated = true
			a.stats.Remaining1 = a.tracker.Remaining(First)
			a.stats.Remaining2 = a.tracker.Remaining(Second)
			return
		}
		a.stats.Iterations++

		m := FindBestMatch(a.seq1, a.seq2, w1, w2, a.opts.Fuzzy)
		switch {
		case m.Length == 0:
			a.stats.Empty++
			a.discard(w1, w2)
		case !a.consistent(m):
			a.stats.Rejected++
			a.discard(w1, w2)
		default:
			a.accept(m)
		}
	}
}

// consistent reports whether m crosses none of the accepted matches.
func (a *aligner) consistent(m Match) bool {
	for _, prev := range a.matches {
		if m.Crosses(prev) {
			return false
		}
	}
	return true
}

func (a *aligner) accept(m Match) {
	a.tracker.MarkExplained(First, m.Start1, m.Length)
	a.tracker.MarkExplained(Second, m.Start2, m.Length)

	i := sort.Search(len(a.matches), func(i int) bool {
		return a.matches[i].Start1 >= m.Start1
	})
	a.matches = append(a.matches, Match{})
	copy(a.matches[i+1:], a.matches[i:])
	a.matches[i] = m

	a.stats.Accepted++
}

// discard gives up on whichever window is further behind the last match that
// precedes both of them, or on both windows if they are level. The lagging
// side most likely holds symbols inserted or deleted between versions.
func (a *aligner) discard(w1, w2 Range) {
	var lastEnd1, lastEnd2 int
	for _, m := range a.matches {
		if m.End1() > w1.Start || m.End2() > w2.Start {
			break
		}
		lastEnd1, lastEnd2 = m.End1(), m.End2()
	}

	rel1 := w1.Start - lastEnd1
	rel2 := w2.Start - lastEnd2

	if rel1 <= rel2 {
		a.tracker.MarkExplained(First, w1.Start, w1.Len())
		a.stats.Discarded++
	}
	if rel2 <= rel1 {
		a.tracker.MarkExplained(Second, w2.Start, w2.Len())
		a.stats.Discarded++
	}
}
