package symbols

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/grafana/regexp"
	"github.com/pkg/errors"
)

// lineRegexp matches a single symbol line:
//
//	name = .section:0x80003100; // type:function size:0x24 scope:global
//
// The size attribute is optional; symbols without one have size 0.
var lineRegexp = regexp.MustCompile(`^(\S+) = ([.\w]+):0x([0-9A-Fa-f]{8});\s*//\s*type:(\S+)(?:.*?\bsize:0x([0-9A-Fa-f]+))?.*$`)

// LoadFile reads and parses the symbol map at path.
func LoadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, &FileNotFoundError{Path: path}
	} else if err != nil {
		return nil, errors.Wrapf(err, "opening symbol file %q", path)
	}
	defer f.Close()

	file, err := Parse(f, path)
	if err != nil {
		return nil, err
	}
	if file.NumSymbols() == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptySymbolList)
	}
	return file, nil
}

// Parse reads a symbol map from r. path is only used in errors and to name
// the returned File. Parse does not fail on a map with no symbols; LoadFile
// does.
func Parse(r io.Reader, path string) (*File, error) {
	var (
		symbols []Symbol
		lineNum int
	)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lineNum++

		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		sym, ok := parseLine(line, lineNum)
		if !ok {
			return nil, &ParseError{Path: path, Line: lineNum, Text: line}
		}
		symbols = append(symbols, sym)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading symbol file %q", path)
	}

	return &File{
		Path:     path,
		Sections: GroupSections(symbols),
	}, nil
}

func parseLine(line string, lineNum int) (Symbol, bool) {
	m := lineRegexp.FindStringSubmatch(line)
	if m == nil {
		return Symbol{}, false
	}

	addr, err := strconv.ParseUint(m[3], 16, 32)
	if err != nil {
		return Symbol{}, false
	}

	var size int64
	if m[5] != "" {
		size, err = strconv.ParseInt(m[5], 16, 64)
		if err != nil {
			return Symbol{}, false
		}
	}

	return NewSymbol(m[1], m[2], uint32(addr), int(size)).WithSource(m[4], lineNum), true
}
