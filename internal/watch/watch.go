// Package watch re-runs an action when files under watched directories
// change. Bursts of filesystem events are debounced into a single run, so
// an editor save that touches a file several times triggers one re-lint.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"

	"github.com/hatappo/frontmatter-lint/internal/logging"
)

// Watcher triggers a callback after relevant file changes settle.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	log      *slog.Logger
	match    func(string) bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long changes must settle before a run triggers.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(w *Watcher) {
		w.log = log
	}
}

// WithFilter limits which changed paths trigger a run.
func WithFilter(match func(string) bool) Option {
	return func(w *Watcher) {
		w.match = match
	}
}

// New creates a Watcher. Call Close when done.
func New(opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "creating file watcher")
	}
	w := &Watcher{
		fsw:      fsw,
		debounce: 200 * time.Millisecond,
		log:      logging.NewDiscard(),
		match:    func(string) bool { return true },
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Add watches root and every directory below it. Hidden directories are
// skipped.
func (w *Watcher) Add(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return fs.SkipDir
		}
		return errors.Wrapf(w.fsw.Add(path), "watching %s", path)
	})
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Run blocks, invoking fn after each settled burst of changes, until ctx
// is canceled or the watcher is closed. Directories created under watched
// roots are picked up as they appear.
func (w *Watcher) Run(ctx context.Context, fn func(context.Context)) error {
	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if evt.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
					if err := w.Add(evt.Name); err != nil {
						w.log.Warn("cannot watch new directory", "path", evt.Name, "error", err)
					}
					continue
				}
			}
			if !w.match(evt.Name) {
				continue
			}
			w.log.Debug("change detected", "path", evt.Name, "op", evt.Op.String())
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "error", err)

		case <-timer.C:
			fn(ctx)
		}
	}
}
