// Package report renders diff results as text.
package report

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/google/renameio/v2"
	"github.com/grafana/symdiff/pkg/align"
	"github.com/grafana/symdiff/pkg/differ"
	"github.com/grafana/symdiff/pkg/symbols"
)

// Options controls report rendering.
type Options struct {
	// Color highlights symbols only found in one file.
	Color bool
}

type writer struct {
	w       *bufio.Writer
	removed *color.Color
	added   *color.Color
	header  *color.Color
}

func newWriter(w io.Writer, opts Options) *writer {
	rw := &writer{
		w:       bufio.NewWriter(w),
		removed: color.New(color.FgRed),
		added:   color.New(color.FgGreen),
		header:  color.New(color.Bold),
	}
	for _, c := range []*color.Color{rw.removed, rw.added, rw.header} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return rw
}

func (rw *writer) printf(c *color.Color, format string, args ...interface{}) {
	if c == nil {
		fmt.Fprintf(rw.w, format, args...)
		return
	}
	c.Fprintf(rw.w, format, args...)
}

// Write renders res to w. Sections found in only one file come first,
// followed by every compared section with its matched runs and the symbols
// found only in file 1 (prefixed with -) or file 2 (prefixed with +).
func Write(w io.Writer, res *differ.Result, opts Options) error {
	rw := newWriter(w, opts)

	rw.printf(nil, "--- %s\n+++ %s\n", res.File1, res.File2)

	if len(res.Notices) > 0 {
		rw.printf(nil, "\n")
		for _, n := range res.Notices {
			rw.printf(nil, "%s\n", n)
		}
	}

	for _, s := range res.Sections {
		rw.section(s, res.Options.PrintDifferentSizeSymbols)
	}

	if len(res.Skipped) > 0 {
		rw.printf(nil, "\nSkipped data sections:\n")
		for _, name := range res.Skipped {
			rw.printf(nil, "  %s\n", name)
		}
	}

	return rw.w.Flush()
}

func (rw *writer) section(s *differ.SectionResult, sizeChanges bool) {
	rw.printf(nil, "\n")
	rw.printf(rw.header, "Section %s (%s): %d symbols in file 1, %d in file 2, %d matched\n",
		s.Name, s.Kind, len(s.Symbols1), len(s.Symbols2), s.Matched())

	if s.Identical {
		rw.printf(nil, "Sections are identical\n")
		return
	}
	if s.Stats.Truncated {
		rw.printf(nil, "Alignment stopped after %d iterations; remaining symbols are reported unmatched\n", s.Stats.Iterations)
	}

	var prev1, prev2 int
	for _, m := range s.Matches {
		rw.unmatched("-", rw.removed, s.Symbols1[prev1:m.Start1])
		rw.unmatched("+", rw.added, s.Symbols2[prev2:m.Start2])
		rw.match(s, m)
		prev1, prev2 = m.End1(), m.End2()
	}
	rw.unmatched("-", rw.removed, s.Symbols1[prev1:])
	rw.unmatched("+", rw.added, s.Symbols2[prev2:])

	if sizeChanges {
		changes := s.SizeChanges()
		if len(changes) > 0 {
			rw.printf(nil, "Symbols with the same name but a different size:\n")
			for _, c := range changes {
				rw.printf(nil, "  %s: 0x%X -> 0x%X\n", c.Old.Name(), c.Old.Size(), c.New.Size())
			}
		}
	}
}

func (rw *writer) match(s *differ.SectionResult, m align.Match) {
	noun := "symbols"
	if m.Length == 1 {
		noun = "symbol"
	}
	rw.printf(nil, "Symbols %d-%d in file 1 match symbols %d-%d in file 2 (%d %s)\n",
		m.Start1+1, m.End1(), m.Start2+1, m.End2(), m.Length, noun)
	rw.printf(nil, "  first: %s / %s\n", s.Symbols1[m.Start1], s.Symbols2[m.Start2])
	if m.Length > 1 {
		rw.printf(nil, "  last:  %s / %s\n", s.Symbols1[m.End1()-1], s.Symbols2[m.End2()-1])
	}
}

func (rw *writer) unmatched(prefix string, c *color.Color, syms []symbols.Symbol) {
	for _, sym := range syms {
		rw.printf(c, "%s %s\n", prefix, sym)
	}
}

// WriteFile renders res into the file at path. The file is replaced
// atomically, so readers never observe a partial report.
func WriteFile(path string, res *differ.Result, opts Options) error {
	var buf bytes.Buffer
	if err := Write(&buf, res, opts); err != nil {
		return err
	}
	if err := renameio.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}

// Output writes res to the file at path, or to stdout when path is empty
// or "-".
func Output(stdout io.Writer, path string, res *differ.Result, opts Options) error {
	if path == "" || path == "-" {
		return Write(stdout, res, opts)
	}
	return WriteFile(path, res, opts)
}
