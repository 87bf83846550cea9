package differ

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the counters updated by a Differ.
type Metrics struct {
	SectionsAligned    prometheus.Counter
	SectionsIdentical  prometheus.Counter
	SectionsTruncated  prometheus.Counter
	MatchesAccepted    prometheus.Counter
	CandidatesRejected prometheus.Counter
	WindowsDiscarded   prometheus.Counter
	Iterations         prometheus.Counter
	AlignDuration      prometheus.Histogram
}

// NewMetrics creates Metrics and registers them with reg, if reg is non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SectionsAligned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "symdiff_sections_aligned_total",
			Help: "Number of section pairs aligned.",
		}),
		SectionsIdentical: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "symdiff_sections_identical_total",
			Help: "Number of section pairs found identical without running the aligner.",
		}),
		SectionsTruncated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "symdiff_sections_truncated_total",
			Help: "Number of section alignments stopped by the iteration limit.",
		}),
		MatchesAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "symdiff_matches_accepted_total",
			Help: "Number of matching runs accepted.",
		}),
		CandidatesRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "symdiff_candidates_rejected_total",
			Help: "Number of candidate runs rejected for crossing an accepted run.",
		}),
		WindowsDiscarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "symdiff_windows_discarded_total",
			Help: "Number of unexplained windows given up without a match.",
		}),
		Iterations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "symdiff_align_iterations_total",
			Help: "Number of alignment steps taken.",
		}),
		AlignDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "symdiff_align_duration_seconds",
			Help:    "Time taken to align one section pair.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.SectionsAligned,
			m.SectionsIdentical,
			m.SectionsTruncated,
			m.MatchesAccepted,
			m.CandidatesRejected,
			m.WindowsDiscarded,
			m.Iterations,
			m.AlignDuration,
		)
	}

	return m
}
