// Package logging builds the go-kit logger used by the symdiff CLI.
package logging

import (
	"encoding"
	"fmt"
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/pflag"
)

// Options is a set of options used to construct a Logger.
type Options struct {
	Level  Level
	Format Format

	// IncludeTimestamps adds a ts field to every line.
	IncludeTimestamps bool
}

// DefaultOptions holds defaults for creating a Logger.
var DefaultOptions = Options{
	Level:             LevelDefault,
	Format:            FormatDefault,
	IncludeTimestamps: true,
}

// New creates a logger writing to w. A nil w discards all output.
func New(w io.Writer, o Options) (log.Logger, error) {
	if w == nil {
		w = io.Discard
	}

	var l log.Logger
	switch o.Format {
	case FormatLogfmt, "":
		l = log.NewLogfmtLogger(log.NewSyncWriter(w))
	case FormatJSON:
		l = log.NewJSONLogger(log.NewSyncWriter(w))
	default:
		return nil, fmt.Errorf("unrecognized log format %q", o.Format)
	}

	l = level.NewFilter(l, o.Level.Filter())

	if o.IncludeTimestamps {
		l = log.With(l, "ts", log.DefaultTimestampUTC)
	}
	return log.With(l, "caller", log.DefaultCaller), nil
}

// Level represents how verbose logging should be.
type Level string

// Supported log levels
const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"

	LevelDefault = LevelInfo
)

var (
	_ encoding.TextMarshaler   = LevelDefault
	_ encoding.TextUnmarshaler = (*Level)(nil)
	_ pflag.Value              = (*Level)(nil)
)

// MarshalText implements encoding.TextMarshaler.
func (ll Level) MarshalText() (text []byte, err error) {
	return []byte(ll), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (ll *Level) UnmarshalText(text []byte) error {
	switch Level(text) {
	case "":
		*ll = LevelDefault
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		*ll = Level(text)
	default:
		return fmt.Errorf("unrecognized log level %q", string(text))
	}
	return nil
}

func (ll *Level) String() string { return string(*ll) }
func (ll *Level) Set(s string) error { return ll.UnmarshalText([]byte(s)) }
func (ll *Level) Type() string { return "level" }

// Filter returns a go-kit logging filter from the level.
func (ll Level) Filter() level.Option {
	switch ll {
	case LevelDebug:
		return level.AllowDebug()
	case LevelInfo, "":
		return level.AllowInfo()
	case LevelWarn:
		return level.AllowWarn()
	case LevelError:
		return level.AllowError()
	default:
		return level.AllowAll()
	}
}

// Format represents a text format to use when writing logs.
type Format string

// Supported log formats.
const (
	FormatLogfmt Format = "logfmt"
	FormatJSON   Format = "json"

	FormatDefault = FormatLogfmt
)

var (
	_ encoding.TextMarshaler   = FormatDefault
	_ encoding.TextUnmarshaler = (*Format)(nil)
	_ pflag.Value              = (*Format)(nil)
)

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() (text []byte, err error) {
	return []byte(f), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(text []byte) error {
	switch Format(text) {
	case "":
		*f = FormatDefault
	case FormatLogfmt, FormatJSON:
		*f = Format(text)
	default:
		return fmt.Errorf("unrecognized log format %q", string(text))
	}
	return nil
}

func (f *Format) String() string { return string(*f) }
func (f *Format) Set(s string) error { return f.UnmarshalText([]byte(s)) }
func (f *Format) Type() string { return "format" }
