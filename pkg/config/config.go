// Package config loads symdiff settings from a YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode"

	"github.com/drone/envsubst/v2"
	"github.com/grafana/symdiff/pkg/differ"
	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

// DefaultConfig holds the settings used when no file is given.
var DefaultConfig = Config{
	Diff: differ.DefaultOptions,
}

// Config is the root of a symdiff settings file.
type Config struct {
	Diff   differ.Options `yaml:"diff"`
	Report ReportConfig   `yaml:"report"`
}

// ReportConfig controls report output.
type ReportConfig struct {
	Color   bool `yaml:"color"`
	Summary bool `yaml:"summary"`
}

// Validate returns an error listing every invalid setting.
func (c *Config) Validate() error {
	var err error
	if derr := c.Diff.Validate(); derr != nil {
		err = multierror.Append(err, derr)
	}
	return err
}

// LoadFile reads a file and passes the contents to LoadBytes.
func LoadFile(filename string, expandEnvVars bool, c *Config) error {
	buf, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("error reading config file %w", err)
	}
	return LoadBytes(buf, expandEnvVars, c)
}

// LoadBytes unmarshals a config from a buffer over c. Fields missing from
// the buffer take their default values. Unknown fields are rejected and
// the result is validated.
func LoadBytes(buf []byte, expandEnvVars bool, c *Config) error {
	// (Optionally) expand with environment variables
	if expandEnvVars {
		s, err := envsubst.Eval(string(buf), getenv)
		if err != nil {
			return fmt.Errorf("unable to substitute config with environment variables: %w", err)
		}
		buf = []byte(s)
	}

	*c = DefaultConfig

	dec := yaml.NewDecoder(bytes.NewReader(buf))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return c.Validate()
}

// getenv is a wrapper around os.Getenv that ignores patterns that are numeric
// regex capture groups (ie "${1}").
func getenv(name string) string {
	numericName := true

	for _, r := range name {
		if !unicode.IsDigit(r) {
			numericName = false
			break
		}
	}

	if numericName {
		// We need to add ${} back in since envsubst removes it.
		return fmt.Sprintf("${%s}", name)
	}
	return os.Getenv(name)
}
