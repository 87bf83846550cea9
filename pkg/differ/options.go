package differ

import (
	"bytes"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

// DefaultOptions holds the default settings for a Differ.
var DefaultOptions = Options{
	IncludeDataSymbols:        true,
	UseSymbolSizeThreshold:    false,
	PrintDifferentSizeSymbols: true,
	MaxIterations:             0,
	Parallelism:               1,
}

// Options controls which sections are diffed and how symbols are compared.
type Options struct {
	// IncludeDataSymbols diffs data sections as well as code sections.
	IncludeDataSymbols bool `yaml:"include_data_symbols"`

	// UseSymbolSizeThreshold lets auto-generated symbols deep into a run
	// match when their sizes are close but not equal.
	UseSymbolSizeThreshold bool `yaml:"use_symbol_size_threshold"`

	// PrintDifferentSizeSymbols is not used when diffing. It is carried in
	// the Result for reports, which list matched symbols whose names agree
	// but sizes do not.
	PrintDifferentSizeSymbols bool `yaml:"print_different_size_symbols"`

	// MaxIterations caps the alignment steps spent on one section. Zero
	// disables the cap.
	MaxIterations int `yaml:"max_iterations"`

	// Parallelism is the number of sections aligned at once.
	Parallelism int `yaml:"parallelism"`
}

// UnmarshalYAML implements yaml.Unmarshaler. Unknown fields are rejected.
func (o *Options) UnmarshalYAML(value *yaml.Node) error {
	*o = DefaultOptions

	// Node.Decode does not inherit KnownFields from the outer decoder.
	bb, err := yaml.Marshal(value)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(bb))
	dec.KnownFields(true)

	type plain Options
	return dec.Decode((*plain)(o))
}

// Validate returns an error describing every invalid setting.
func (o *Options) Validate() error {
	var err error
	if o.MaxIterations < 0 {
		err = multierror.Append(err, fmt.Errorf("max_iterations must not be negative, got %d", o.MaxIterations))
	}
	if o.Parallelism < 1 {
		err = multierror.Append(err, fmt.Errorf("parallelism must be at least 1, got %d", o.Parallelism))
	}
	return err
}
