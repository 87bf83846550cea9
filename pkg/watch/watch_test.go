package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/grafana/symdiff/pkg/util"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestDetector(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	watched := filepath.Join(dir, "symbols.txt")
	other := filepath.Join(dir, "other.txt")
	require.NoError(t, os.WriteFile(watched, []byte("a"), 0644))

	updates := make(chan struct{}, 1)
	d, err := New(Options{
		Logger:    util.TestLogger(t),
		Filenames: []string{watched},
		UpdateCh:  updates,
	})
	require.NoError(t, err)
	defer d.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	// Files nobody asked about are ignored.
	require.NoError(t, os.WriteFile(other, []byte("b"), 0644))
	select {
	case <-updates:
		t.Fatal("unexpected update for unwatched file")
	case <-time.After(200 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(watched, []byte("c"), 0644))
	select {
	case <-updates:
	case <-time.After(5 * time.Second):
		t.Fatal("no update after write")
	}

	// Replacing the file through a rename is still seen.
	tmp := filepath.Join(dir, "symbols.txt.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("d"), 0644))
	require.NoError(t, os.Rename(tmp, watched))
	select {
	case <-updates:
	case <-time.After(5 * time.Second):
		t.Fatal("no update after rename")
	}

	cancel()
	require.NoError(t, <-done)
}

func TestDetector_MissingDirectory(t *testing.T) {
	_, err := New(Options{
		Filenames: []string{filepath.Join(t.TempDir(), "missing", "symbols.txt")},
		UpdateCh:  make(chan struct{}, 1),
	})
	require.Error(t, err)
}
