package align

import (
	"fmt"
	"testing"

	"github.com/grafana/symdiff/pkg/symbols"
	"github.com/stretchr/testify/require"
)

// seq builds a .text sequence from name/size pairs, giving each symbol an
// address after the previous one.
func seq(pairs ...interface{}) []symbols.Symbol {
	var (
		out  []symbols.Symbol
		addr uint32 = 0x80003100
	)
	for i := 0; i < len(pairs); i += 2 {
		name := pairs[i].(string)
		size := pairs[i+1].(int)
		out = append(out, symbols.NewSymbol(name, ".text", addr, size))
		addr += uint32(size)
	}
	return out
}

func full(s []symbols.Symbol) Range { return Range{Start: 0, End: len(s)} }

func TestSymbolsMatch(t *testing.T) {
	tt := []struct {
		name   string
		a, b   symbols.Symbol
		run    int
		fuzzy  bool
		expect bool
	}{
		{
			name:   "same name",
			a:      symbols.NewSymbol("foo", ".text", 0x80003100, 4),
			b:      symbols.NewSymbol("foo", ".text", 0x80004100, 8),
			expect: true,
		},
		{
			name:   "auto names match by size",
			a:      symbols.NewSymbol("lbl_1000", ".text", 0x1000, 0x20),
			b:      symbols.NewSymbol("lbl_2000", ".text", 0x2000, 0x20),
			expect: true,
		},
		{
			name:   "auto names with different sizes",
			a:      symbols.NewSymbol("lbl_1000", ".text", 0x1000, 0x20),
			b:      symbols.NewSymbol("lbl_2000", ".text", 0x2000, 0x24),
			expect: false,
		},
		{
			name:   "one auto name matches by size",
			a:      symbols.NewSymbol("fn_80003100", ".text", 0x80003100, 0x40),
			b:      symbols.NewSymbol("main", ".text", 0x80003100, 0x40),
			expect: true,
		},
		{
			name:   "named symbols never match by size",
			a:      symbols.NewSymbol("foo", ".text", 0x1000, 4),
			b:      symbols.NewSymbol("bar", ".text", 0x1000, 4),
			expect: false,
		},
		{
			name:   "same auto name with different size",
			a:      symbols.NewSymbol("fn_80003100", ".text", 0x80003100, 0x40),
			b:      symbols.NewSymbol("fn_80003100", ".text", 0x80003100, 0x44),
			expect: false,
		},
		{
			name:   "fuzzy within ratio",
			a:      symbols.NewSymbol("fn_1", ".text", 0, 100),
			b:      symbols.NewSymbol("fn_2", ".text", 0, 96),
			run:    11,
			fuzzy:  true,
			expect: true,
		},
		{
			name:   "fuzzy ratio is exclusive",
			a:      symbols.NewSymbol("fn_1", ".text", 0, 100),
			b:      symbols.NewSymbol("fn_2", ".text", 0, 95),
			run:    11,
			fuzzy:  true,
			expect: false,
		},
		{
			name:   "fuzzy needs a long run",
			a:      symbols.NewSymbol("fn_1", ".text", 0, 100),
			b:      symbols.NewSymbol("fn_2", ".text", 0, 96),
			run:    10,
			fuzzy:  true,
			expect: false,
		},
		{
			name:   "fuzzy disabled",
			a:      symbols.NewSymbol("fn_1", ".text", 0, 100),
			b:      symbols.NewSymbol("fn_2", ".text", 0, 96),
			run:    50,
			expect: false,
		},
		{
			name:   "fuzzy never applies to named symbols",
			a:      symbols.NewSymbol("foo", ".text", 0, 100),
			b:      symbols.NewSymbol("bar", ".text", 0, 99),
			run:    50,
			fuzzy:  true,
			expect: false,
		},
		{
			name:   "fuzzy with unknown sizes",
			a:      symbols.NewSymbol("fn_1", ".text", 0, 0),
			b:      symbols.NewSymbol("fn_2", ".text", 0, -4),
			run:    50,
			fuzzy:  true,
			expect: false,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expect, SymbolsMatch(tc.a, tc.b, tc.run, tc.fuzzy))
		})
	}
}

func TestFindBestMatch(t *testing.T) {
	t.Run("longest run wins", func(t *testing.T) {
		s1 := seq("a", 4, "b", 4, "c", 4, "d", 4)
		s2 := seq("x", 4, "a", 4, "y", 4, "b", 4, "c", 4, "d", 4)

		m := FindBestMatch(s1, s2, full(s1), full(s2), false)
		require.Equal(t, Match{Start1: 1, Start2: 3, Length: 3}, m)
	})

	t.Run("no match", func(t *testing.T) {
		s1 := seq("a", 4, "b", 4)
		s2 := seq("c", 4, "d", 4)

		m := FindBestMatch(s1, s2, full(s1), full(s2), false)
		require.Equal(t, 0, m.Length)
	})

	t.Run("runs stop at window ends", func(t *testing.T) {
		s1 := seq("a", 4, "b", 4, "c", 4)
		s2 := seq("a", 4, "b", 4, "c", 4)

		m := FindBestMatch(s1, s2, Range{0, 2}, Range{0, 3}, false)
		require.Equal(t, Match{Start1: 0, Start2: 0, Length: 2}, m)
	})

	t.Run("ties prefer the smallest midpoint", func(t *testing.T) {
		// (0,3) is scanned first but (1,0) has the smaller midpoint.
		s1 := seq("a", 4, "b", 4)
		s2 := seq("b", 4, "x", 4, "y", 4, "a", 4)

		m := FindBestMatch(s1, s2, full(s1), full(s2), false)
		require.Equal(t, Match{Start1: 1, Start2: 0, Length: 1}, m)
	})

	t.Run("equal midpoints prefer the earlier start", func(t *testing.T) {
		s1 := seq("a", 4, "b", 4)
		s2 := seq("b", 4, "a", 4)

		m := FindBestMatch(s1, s2, full(s1), full(s2), false)
		require.Equal(t, Match{Start1: 0, Start2: 1, Length: 1}, m)
	})

	t.Run("auto symbols match by size", func(t *testing.T) {
		s1 := seq("lbl_1000", 0x20)
		s2 := seq("lbl_2000", 0x20)

		m := FindBestMatch(s1, s2, full(s1), full(s2), false)
		require.Equal(t, Match{Start1: 0, Start2: 0, Length: 1}, m)
	})
}

func TestFindBestMatch_FuzzyThreshold(t *testing.T) {
	// 11 auto-generated pairs with equal sizes followed by a pair whose sizes
	// differ.
	build := func(size2 int) ([]symbols.Symbol, []symbols.Symbol) {
		var p1, p2 []interface{}
		for i := 0; i < 11; i++ {
			p1 = append(p1, fmt.Sprintf("fn_%d", i), 0x10+i)
			p2 = append(p2, fmt.Sprintf("fn_%d", 100+i), 0x10+i)
		}
		p1 = append(p1, "fn_last", 100)
		p2 = append(p2, "fn_other", size2)
		return seq(p1...), seq(p2...)
	}

	tt := []struct {
		size2  int
		fuzzy  bool
		expect int
	}{
		{size2: 96, fuzzy: true, expect: 12},
		{size2: 90, fuzzy: true, expect: 11},
		{size2: 95, fuzzy: true, expect: 11},
		{size2: 96, fuzzy: false, expect: 11},
	}

	for _, tc := range tt {
		t.Run(fmt.Sprintf("size %d fuzzy %v", tc.size2, tc.fuzzy), func(t *testing.T) {
			s1, s2 := build(tc.size2)
			m := FindBestMatch(s1, s2, full(s1), full(s2), tc.fuzzy)
			require.Equal(t, Match{Start1: 0, Start2: 0, Length: tc.expect}, m)
		})
	}
}

func TestMatch_Crosses(t *testing.T) {
	accepted := Match{Start1: 2, Start2: 2, Length: 2}

	require.False(t, Match{Start1: 4, Start2: 5, Length: 1}.Crosses(accepted), "after in both")
	require.False(t, Match{Start1: 0, Start2: 0, Length: 1}.Crosses(accepted), "before in both")
	require.True(t, Match{Start1: 4, Start2: 0, Length: 1}.Crosses(accepted), "after in first only")
	require.True(t, Match{Start1: 0, Start2: 4, Length: 1}.Crosses(accepted), "after in second only")
}
