package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/go-kit/log/level"
	"github.com/go-logfmt/logfmt"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestNew_Logfmt(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, Options{Level: LevelInfo, Format: FormatLogfmt})
	require.NoError(t, err)

	level.Debug(l).Log("msg", "hidden")
	level.Info(l).Log("msg", "shown", "section", ".text")

	require.NotContains(t, buf.String(), "hidden")

	fields := map[string]string{}
	dec := logfmt.NewDecoder(&buf)
	require.True(t, dec.ScanRecord())
	for dec.ScanKeyval() {
		fields[string(dec.Key())] = string(dec.Value())
	}
	require.NoError(t, dec.Err())
	require.False(t, dec.ScanRecord(), "expected a single line")

	require.Equal(t, "info", fields["level"])
	require.Equal(t, "shown", fields["msg"])
	require.Equal(t, ".text", fields["section"])
	require.Contains(t, fields["caller"], "logging_test.go:")
	require.NotContains(t, fields, "ts")
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, Options{Level: LevelDebug, Format: FormatJSON, IncludeTimestamps: true})
	require.NoError(t, err)

	level.Debug(l).Log("msg", "aligned section", "matches", 3)

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "debug", line["level"])
	require.Equal(t, "aligned section", line["msg"])
	require.Equal(t, float64(3), line["matches"])
	require.Contains(t, line, "ts")
}

func TestNew_InvalidFormat(t *testing.T) {
	_, err := New(nil, Options{Format: "xml"})
	require.Error(t, err)
}

func TestFlags(t *testing.T) {
	opts := DefaultOptions

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Var(&opts.Level, "log.level", "")
	fs.Var(&opts.Format, "log.format", "")

	require.NoError(t, fs.Parse([]string{"--log.level=warn", "--log.format=json"}))
	require.Equal(t, LevelWarn, opts.Level)
	require.Equal(t, FormatJSON, opts.Format)

	require.Error(t, fs.Parse([]string{"--log.level=verbose"}))
	require.Error(t, fs.Parse([]string{"--log.format=xml"}))
}
