package symbols

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Kind classifies a section by the kind of content it holds.
type Kind int

const (
	KindData Kind = iota
	KindCode
)

func (k Kind) String() string {
	if k == KindCode {
		return "code"
	}
	return "data"
}

// codeSections lists the section names which hold executable code. Every
// other section is treated as data.
var codeSections = map[string]struct{}{
	".init": {},
	".text": {},
}

// ClassifySection returns the Kind of the section called name.
func ClassifySection(name string) Kind {
	if _, ok := codeSections[name]; ok {
		return KindCode
	}
	return KindData
}

// Section is a named run of symbols, in file order.
type Section struct {
	Name    string
	Kind    Kind
	Symbols []Symbol
}

// IsCode reports whether the section holds code.
func (s *Section) IsCode() bool { return s.Kind == KindCode }

// Fingerprint hashes the name and size of every symbol in the section.
// Sections with different fingerprints cannot compare equal under Equivalent.
func (s *Section) Fingerprint() uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, sym := range s.Symbols {
		_, _ = d.WriteString(sym.name)
		binary.LittleEndian.PutUint64(buf[:], uint64(sym.size))
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

// Equivalent reports whether a and b hold the same symbol names and sizes in
// the same order. Addresses are not compared.
func Equivalent(a, b *Section) bool {
	if len(a.Symbols) != len(b.Symbols) {
		return false
	}
	for i := range a.Symbols {
		if a.Symbols[i].name != b.Symbols[i].name || a.Symbols[i].size != b.Symbols[i].size {
			return false
		}
	}
	return true
}

// File is a parsed symbol map.
type File struct {
	Path     string
	Sections []*Section
}

// Section returns the first section called name, or nil.
func (f *File) Section(name string) *Section {
	for _, s := range f.Sections {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// HasSection reports whether f has a section called name.
func (f *File) HasSection(name string) bool {
	return f.Section(name) != nil
}

// NumSymbols returns the number of symbols across all sections.
func (f *File) NumSymbols() int {
	var n int
	for _, s := range f.Sections {
		n += len(s.Symbols)
	}
	return n
}

// GroupSections splits symbols into sections. A new section starts whenever
// the section name differs from that of the previous symbol, so file order is
// kept even if a section name appears more than once.
func GroupSections(symbols []Symbol) []*Section {
	var (
		sections []*Section
		cur      *Section
	)
	for _, sym := range symbols {
		if cur == nil || cur.Name != sym.section {
			cur = &Section{
				Name: sym.section,
				Kind: ClassifySection(sym.section),
			}
			sections = append(sections, cur)
		}
		cur.Symbols = append(cur.Symbols, sym)
	}
	return sections
}
