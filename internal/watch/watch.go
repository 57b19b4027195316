// Package watch reloads a roster file whenever it changes on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/zarlcorp/zchrono/internal/roster"
)

// DefaultDebounce collapses the burst of events editors emit on save.
const DefaultDebounce = 100 * time.Millisecond

// Handler receives each reloaded roster, or the error from reading it.
type Handler func(roster.File, error)

// Watcher observes one roster file.
type Watcher struct {
	path     string
	debounce time.Duration
	log      *slog.Logger
}

// New creates a watcher for the roster at path.
func New(path string) *Watcher {
	return &Watcher{path: path, debounce: DefaultDebounce, log: slog.Default()}
}

// Run calls fn once with the current contents, then again after every
// change, until ctx is cancelled. The parent directory is watched so that
// editors that replace the file by rename are followed.
func (w *Watcher) Run(ctx context.Context, fn Handler) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer fw.Close()

	abs, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	fn(roster.ReadFile(abs))

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			fn(roster.ReadFile(abs))

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Error("watch", "path", abs, "err", err)
		}
	}
}
