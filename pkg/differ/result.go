package differ

import (
	"fmt"

	"github.com/grafana/symdiff/pkg/align"
	"github.com/grafana/symdiff/pkg/symbols"
)

// NoticeKind describes why a section was not compared.
type NoticeKind int

const (
	// MissingInFile2 is a section found only in the first file.
	MissingInFile2 NoticeKind = iota
	// MissingInFile1 is a section found only in the second file.
	MissingInFile1
)

// Notice reports a section which exists in only one of the files.
type Notice struct {
	Kind    NoticeKind
	Section string
}

func (n Notice) String() string {
	if n.Kind == MissingInFile1 {
		return fmt.Sprintf("file 1 missing section %s", n.Section)
	}
	return fmt.Sprintf("file 2 missing section %s", n.Section)
}

// Result is the outcome of diffing two symbol files. It is owned by the
// caller; a Differ keeps no reference to it.
type Result struct {
	File1, File2 string
	Options      Options

	// Notices lists sections missing from the second file in the order of
	// the first, followed by sections missing from the first file in the
	// order of the second.
	Notices []Notice

	// Sections holds one entry per compared section, in the order of the
	// first file.
	Sections []*SectionResult

	// Skipped lists data sections present in both files which were not
	// compared because IncludeDataSymbols is off.
	Skipped []string
}

// Section returns the first compared section called name, or nil.
func (r *Result) Section(name string) *SectionResult {
	for _, s := range r.Sections {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Missing returns the names of sections reported with the given kind.
func (r *Result) Missing(kind NoticeKind) []string {
	var names []string
	for _, n := range r.Notices {
		if n.Kind == kind {
			names = append(names, n.Section)
		}
	}
	return names
}

// SectionResult is the alignment of one section present in both files.
type SectionResult struct {
	Name     string
	Kind     symbols.Kind
	Symbols1 []symbols.Symbol
	Symbols2 []symbols.Symbol

	// Matches are ordered and never cross each other.
	Matches []align.Match
	Stats   align.Stats

	// Identical is set when both sections hold the same symbol names and
	// sizes, in which case Matches is one run covering everything.
	Identical bool
}

// SizeChange is a pair of matched symbols with the same name and different
// sizes.
type SizeChange struct {
	Old, New symbols.Symbol
}

// Matched returns the number of symbols covered by matches, per file.
func (s *SectionResult) Matched() int {
	var n int
	for _, m := range s.Matches {
		n += m.Length
	}
	return n
}

// Unmatched1 returns the spans of the first section not covered by any
// match, in order.
func (s *SectionResult) Unmatched1() []align.Range {
	return gaps(len(s.Symbols1), s.Matches, align.Match.Range1)
}

// Unmatched2 returns the spans of the second section not covered by any
// match, in order.
func (s *SectionResult) Unmatched2() []align.Range {
	return gaps(len(s.Symbols2), s.Matches, align.Match.Range2)
}

func gaps(n int, matches []align.Match, span func(align.Match) align.Range) []align.Range {
	var (
		out  []align.Range
		prev int
	)
	for _, m := range matches {
		r := span(m)
		if r.Start > prev {
			out = append(out, align.Range{Start: prev, End: r.Start})
		}
		prev = r.End
	}
	if prev < n {
		out = append(out, align.Range{Start: prev, End: n})
	}
	return out
}

// SizeChanges returns matched symbol pairs which share a name but differ in
// size.
func (s *SectionResult) SizeChanges() []SizeChange {
	var out []SizeChange
	for _, m := range s.Matches {
		for k := 0; k < m.Length; k++ {
			s1, s2 := s.Symbols1[m.Start1+k], s.Symbols2[m.Start2+k]
			if s1.Name() == s2.Name() && s1.Size() != s2.Size() {
				out = append(out, SizeChange{Old: s1, New: s2})
			}
		}
	}
	return out
}
