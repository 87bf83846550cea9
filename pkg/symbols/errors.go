package symbols

import (
	"errors"
	"fmt"
)

// ErrEmptySymbolList is returned when a symbol map holds no symbols.
var ErrEmptySymbolList = errors.New("symbol file has no symbols")

// FileNotFoundError is returned when a symbol map does not exist.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("could not find file %q", e.Path)
}

// ParseError reports a line which does not follow the symbol grammar.
type ParseError struct {
	Path string
	Line int // 1-based
	Text string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid line in file %q: line %d: %q", e.Path, e.Line, e.Text)
}
