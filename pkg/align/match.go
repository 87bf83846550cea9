package align

import (
	"fmt"

	"github.com/grafana/symdiff/pkg/symbols"
)

const (
	// fuzzyMinRun is the run length a match must exceed before sizes are
	// compared by ratio instead of exactly.
	fuzzyMinRun = 10

	// fuzzyMinRatio is the exclusive lower bound on min(size)/max(size) for
	// two symbols to be considered the same under fuzzy matching.
	fuzzyMinRatio = 0.95
)

// Match pairs Length consecutive symbols of the first sequence, starting at
// Start1, with Length consecutive symbols of the second, starting at Start2.
type Match struct {
	Start1 int
	Start2 int
	Length int
}

// End1 returns the exclusive end of the match in the first sequence.
func (m Match) End1() int { return m.Start1 + m.Length }

// End2 returns the exclusive end of the match in the second sequence.
func (m Match) End2() int { return m.Start2 + m.Length }

// Range1 returns the span of the match in the first sequence.
func (m Match) Range1() Range { return Range{Start: m.Start1, End: m.End1()} }

// Range2 returns the span of the match in the second sequence.
func (m Match) Range2() Range { return Range{Start: m.Start2, End: m.End2()} }

// Crosses reports whether m and other order their ranges inconsistently,
// i.e. one lies before the other in one sequence but not in the other.
func (m Match) Crosses(other Match) bool {
	before1 := other.End1() <= m.Start1
	before2 := other.End2() <= m.Start2
	return before1 != before2
}

func (m Match) String() string {
	return fmt.Sprintf("%s~%s", m.Range1(), m.Range2())
}

// SymbolsMatch reports whether s1 and s2 should be treated as the same symbol
// when run symbols before them have already been matched.
//
// Named symbols match by name. Auto-generated symbols have meaningless names
// and match by size. With fuzzy set, a long enough run also tolerates a
// small size difference on auto-generated symbols.
func SymbolsMatch(s1, s2 symbols.Symbol, run int, fuzzy bool) bool {
	auto := s1.IsAutoGenerated() || s2.IsAutoGenerated()

	switch {
	case !auto && s1.Name() == s2.Name():
		return true
	case auto && s1.Size() == s2.Size():
		return true
	case fuzzy && auto && run > fuzzyMinRun:
		return sizeSimilarity(s1.Size(), s2.Size()) > fuzzyMinRatio
	}
	return false
}

func sizeSimilarity(a, b int) float64 {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	if hi <= 0 {
		return 0
	}
	return float64(lo) / float64(hi)
}

// FindBestMatch returns the longest run of matching symbols starting inside
// w1 in seq1 and inside w2 in seq2. Runs never extend past either window.
//
// Among runs of equal length the one whose start pair has the smallest
// midpoint (i+j)/2 wins; if that also ties, the one with the smaller i.
// A Match with Length 0 means no symbols matched.
func FindBestMatch(seq1, seq2 []symbols.Symbol, w1, w2 Range, fuzzy bool) Match {
	var best Match

	longest := len(seq1)
	if len(seq2) < longest {
		longest = len(seq2)
	}

	for i := w1.Start; i < w1.End; i++ {
		for j := w2.Start; j < w2.End; j++ {
			n := 0
			for i+n < w1.End && j+n < w2.End && SymbolsMatch(seq1[i+n], seq2[j+n], n, fuzzy) {
				n++
			}
			if n == 0 {
				continue
			}

			if n > best.Length || (n == best.Length && i+j < best.Start1+best.Start2) {
				best = Match{Start1: i, Start2: j, Length: n}
			}
			if n >= longest {
				return best
			}
		}
	}
	return best
}
