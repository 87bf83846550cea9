package report

import (
	"io"
	"strconv"

	"github.com/alecthomas/units"
	"github.com/grafana/symdiff/pkg/align"
	"github.com/grafana/symdiff/pkg/differ"
	"github.com/grafana/symdiff/pkg/symbols"
	"github.com/olekukonko/tablewriter"
)

// Summary writes a table with one row per compared section.
func Summary(w io.Writer, res *differ.Result) {
	table := tablewriter.NewWriter(w)
	defer table.Render()

	table.SetHeader([]string{"Section", "Kind", "File 1", "File 2", "Runs", "Matched", "Only in 1", "Only in 2", "Unmatched size"})
	table.SetAutoFormatHeaders(false)

	for _, s := range res.Sections {
		only1 := s.Unmatched1()
		only2 := s.Unmatched2()
		size := unmatchedBytes(s.Symbols1, only1) + unmatchedBytes(s.Symbols2, only2)

		table.Append([]string{
			s.Name,
			s.Kind.String(),
			strconv.Itoa(len(s.Symbols1)),
			strconv.Itoa(len(s.Symbols2)),
			strconv.Itoa(len(s.Matches)),
			strconv.Itoa(s.Matched()),
			strconv.Itoa(count(only1)),
			strconv.Itoa(count(only2)),
			units.Base2Bytes(size).String(),
		})
	}
}

func count(ranges []align.Range) int {
	var n int
	for _, r := range ranges {
		n += r.Len()
	}
	return n
}

func unmatchedBytes(syms []symbols.Symbol, ranges []align.Range) int64 {
	var n int64
	for _, r := range ranges {
		for _, s := range syms[r.Start:r.End] {
			if s.Size() > 0 {
				n += int64(s.Size())
			}
		}
	}
	return n
}
