package symbols

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAutoName(t *testing.T) {
	for _, name := range []string{"fn_80003100", "lbl_80003100", "jumptable_80400000", "gap_00_80003100_text", "pad_80003100"} {
		assert.True(t, IsAutoName(name), name)
	}
	for _, name := range []string{"main", "fn", "__fn_80003100", "label_1", "OSReport"} {
		assert.False(t, IsAutoName(name), name)
	}
}

func TestClassifySection(t *testing.T) {
	require.Equal(t, KindCode, ClassifySection(".init"))
	require.Equal(t, KindCode, ClassifySection(".text"))
	require.Equal(t, KindData, ClassifySection(".data"))
	require.Equal(t, KindData, ClassifySection(".ctors"))
	require.Equal(t, "code", KindCode.String())
	require.Equal(t, "data", KindData.String())
}

func TestGroupSections(t *testing.T) {
	syms := []Symbol{
		NewSymbol("a", ".init", 0x80003100, 4),
		NewSymbol("b", ".text", 0x80003200, 4),
		NewSymbol("c", ".text", 0x80003204, 4),
		NewSymbol("d", ".bss", 0x80500000, 4),
	}

	sections := GroupSections(syms)
	require.Len(t, sections, 3)
	require.Equal(t, ".init", sections[0].Name)
	require.Equal(t, ".text", sections[1].Name)
	require.Equal(t, []Symbol{syms[1], syms[2]}, sections[1].Symbols)
	require.True(t, sections[1].IsCode())
	require.False(t, sections[2].IsCode())

	require.Empty(t, GroupSections(nil))
}

func TestSection_Fingerprint(t *testing.T) {
	a := &Section{Name: ".text", Symbols: []Symbol{
		NewSymbol("main", ".text", 0x80003100, 0x20),
		NewSymbol("fn_80003120", ".text", 0x80003120, 0x8),
	}}
	// Same names and sizes at other addresses.
	b := &Section{Name: ".text", Symbols: []Symbol{
		NewSymbol("main", ".text", 0x80004100, 0x20),
		NewSymbol("fn_80003120", ".text", 0x80004120, 0x8),
	}}
	c := &Section{Name: ".text", Symbols: []Symbol{
		NewSymbol("main", ".text", 0x80003100, 0x24),
		NewSymbol("fn_80003120", ".text", 0x80003124, 0x8),
	}}

	require.Equal(t, a.Fingerprint(), b.Fingerprint())
	require.True(t, Equivalent(a, b))

	require.NotEqual(t, a.Fingerprint(), c.Fingerprint())
	require.False(t, Equivalent(a, c))
	require.False(t, Equivalent(a, &Section{Symbols: a.Symbols[:1]}))
}

func TestSymbol_String(t *testing.T) {
	s := NewSymbol("main", ".text", 0x80003100, 0x24)
	require.Equal(t, "main (0x80003100, size 0x24)", s.String())
	require.Equal(t, 12, s.WithSource("function", 12).Line())
}

func TestNewSymbol(t *testing.T) {
	s := NewSymbol("fn_80003100", ".text", 0x80003100, 0x24)
	assert.Equal(t, "fn_80003100", s.Name())
	assert.Equal(t, ".text", s.Section())
	assert.Equal(t, uint32(0x80003100), s.Address())
	assert.Equal(t, 0x24, s.Size())
	assert.Empty(t, s.Kind())
	assert.Zero(t, s.Line())
	assert.True(t, s.IsAutoGenerated())

	s = s.WithSource("function", 7)
	assert.Equal(t, "function", s.Kind())
	assert.Equal(t, 7, s.Line())
}
