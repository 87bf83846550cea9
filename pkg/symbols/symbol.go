// Package symbols holds the symbol records read from a decomp-toolkit style
// symbol map and the sections they are grouped into.
package symbols

import (
	"fmt"
	"strings"
)

// autoPrefixes are the name prefixes of symbols synthesized by tooling. Names
// with these prefixes carry no identity, so such symbols are compared by size.
var autoPrefixes = []string{
	"fn_",
	"lbl_",
	"jumptable_",
	"gap_",
	"pad_",
}

// IsAutoName reports whether name starts with one of the synthetic prefixes.
func IsAutoName(name string) bool {
	for _, p := range autoPrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// Symbol is a single line of a symbol map. Symbols are immutable once built.
type Symbol struct {
	name    string
	section string
	address uint32
	size    int
	kind    string
	line    int
	auto    bool
}

// NewSymbol builds a Symbol. The auto-generated flag is derived from name.
func NewSymbol(name, section string, address uint32, size int) Symbol {
	return Symbol{
		name:    name,
		section: section,
		address: address,
		size:    size,
		auto:    IsAutoName(name),
	}
}

// WithSource returns a copy of s annotated with the symbol type tag and the
// 1-based line it was read from.
func (s Symbol) WithSource(kind string, line int) Symbol {
	s.kind = kind
	s.line = line
	return s
}

// Name returns the symbol name.
func (s Symbol) Name() string { return s.name }

// Section returns the name of the section holding the symbol.
func (s Symbol) Section() string { return s.section }

// Address returns the load address of the symbol.
func (s Symbol) Address() uint32 { return s.address }

// Size returns the symbol size in bytes.
func (s Symbol) Size() int { return s.size }

// Kind returns the type tag from the symbol's comment, such as "function".
func (s Symbol) Kind() string { return s.kind }

// Line returns the 1-based line the symbol was read from, or 0.
func (s Symbol) Line() int { return s.line }

// IsAutoGenerated reports whether the name was synthesized by the map
// generator. See IsAutoName.
func (s Symbol) IsAutoGenerated() bool { return s.auto }

func (s Symbol) String() string {
	return fmt.Sprintf("%s (0x%08X, size 0x%X)", s.name, s.address, s.size)
}
