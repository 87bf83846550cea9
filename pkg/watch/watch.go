// Package watch reports changes to a set of files using filesystem events.
package watch

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Options configures a Detector.
type Options struct {
	Logger    log.Logger
	Filenames []string
	UpdateCh  chan<- struct{} // Where to send detected updates to
}

// Detector watches the directories holding a set of files and sends on
// UpdateCh whenever one of the files is written, created, removed or
// renamed. Watching the directories keeps working when a file is replaced
// by a rename, which is how most tools rewrite their output.
type Detector struct {
	opts    Options
	watcher *fsnotify.Watcher
	files   map[string]struct{}
}

// New creates a Detector. Run must be called to start delivering updates.
func New(opts Options) (*Detector, error) {
	if opts.Logger == nil {
		opts.Logger = log.NewNopLogger()
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	d := &Detector{
		opts:    opts,
		watcher: w,
		files:   make(map[string]struct{}, len(opts.Filenames)),
	}

	dirs := make(map[string]struct{})
	for _, name := range opts.Filenames {
		abs, err := filepath.Abs(name)
		if err != nil {
			w.Close()
			return nil, err
		}
		d.files[abs] = struct{}{}

		dir := filepath.Dir(abs)
		if _, ok := dirs[dir]; ok {
			continue
		}
		dirs[dir] = struct{}{}
		if err := w.Add(dir); err != nil {
			w.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}
	return d, nil
}

// Run forwards events until ctx is canceled.
func (d *Detector) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-d.watcher.Errors:
			if !ok {
				return nil
			}
			if err != nil {
				level.Warn(d.opts.Logger).Log("msg", "got error from fsnotify watcher; treating as file updated event", "err", err)
				d.forwardNotification()
			}
		case ev, ok := <-d.watcher.Events:
			if !ok {
				return nil
			}
			// We only want events that actually change the file (e.g., ignore chmod)
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if _, ok := d.files[filepath.Clean(ev.Name)]; !ok {
				continue
			}
			level.Debug(d.opts.Logger).Log("msg", "got fsnotify event", "path", ev.Name, "op", ev.Op.String())
			d.forwardNotification()
		}
	}
}

func (d *Detector) forwardNotification() {
	select {
	case d.opts.UpdateCh <- struct{}{}:
	default:
		// Already queued; no need to queue another event.
	}
}

// Close stops watching. Run returns once Close is called.
func (d *Detector) Close() error {
	return d.watcher.Close()
}
