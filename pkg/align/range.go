package align

import "fmt"

// Seq selects one of the two sequences being aligned.
type Seq int

const (
	First Seq = iota
	Second
)

// Range is a half-open window [Start, End) into one sequence.
type Range struct {
	Start, End int
}

// NoRange is returned by Tracker.NextUnexplained once every index of a
// sequence has been explained.
var NoRange = Range{Start: -1, End: -1}

// Len returns the number of indices in r.
func (r Range) Len() int { return r.End - r.Start }

// Done reports whether r is the NoRange sentinel.
func (r Range) Done() bool { return r == NoRange }

func (r Range) String() string {
	if r.Done() {
		return "[none]"
	}
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// Tracker records which indices of both sequences are explained, either by
// an accepted match or by being discarded. Marks are never cleared.
type Tracker struct {
	explained [2][]bool
	remaining [2]int
}

// NewTracker creates a Tracker for sequences of length n1 and n2 with
// nothing explained yet.
func NewTracker(n1, n2 int) *Tracker {
	return &Tracker{
		explained: [2][]bool{make([]bool, n1), make([]bool, n2)},
		remaining: [2]int{n1, n2},
	}
}

// MarkExplained marks [start, start+length) of seq as explained.
func (t *Tracker) MarkExplained(seq Seq, start, length int) {
	marks := t.explained[seq]
	for i := start; i < start+length; i++ {
		if !marks[i] {
			marks[i] = true
			t.remaining[seq]--
		}
	}
}

// NextUnexplained returns the first maximal window of seq whose indices are
// all unexplained, or NoRange if none remain.
func (t *Tracker) NextUnexplained(seq Seq) Range {
	marks := t.explained[seq]

	start := -1
	for i, done := range marks {
		if !done {
			start = i
			break
		}
	}
	if start == -1 {
		return NoRange
	}

	end := start + 1
	for end < len(marks) && !marks[end] {
		end++
	}
	return Range{Start: start, End: end}
}

// Remaining returns the number of unexplained indices of seq.
func (t *Tracker) Remaining(seq Seq) int { return t.remaining[seq] }
