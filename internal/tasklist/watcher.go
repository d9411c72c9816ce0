package tasklist

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"timelog/internal/errors"
)

// Watcher reloads a TaskList when its file changes on disk.
type Watcher struct {
	list        *TaskList
	debounceDur time.Duration
	log         zerolog.Logger
}

// NewWatcher creates a watcher for list. Bursts of file events closer
// together than debounce are handled as one.
func NewWatcher(list *TaskList, debounce time.Duration, log zerolog.Logger) *Watcher {
	return &Watcher{
		list:        list,
		debounceDur: debounce,
		log:         log.With().Str("component", "tasklist-watcher").Logger(),
	}
}

// Run watches the task file until ctx is done, calling onChange with the
// new groups after every reload. The file's directory is watched so that
// editors replacing the file are noticed.
func (w *Watcher) Run(ctx context.Context, onChange func([]Group)) error {
	path := filepath.Clean(w.list.Path())
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.NewStorageError("create task list directory", dir, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.NewStorageError("watch task list", path, err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(dir); err != nil {
		return errors.NewStorageError("watch task list", dir, err)
	}

	var (
		debounce *time.Timer
		settled  <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}

			w.log.Debug().
				Str("path", event.Name).
				Str("op", event.Op.String()).
				Msg("file system event")

			// Wait for changes to settle
			if debounce == nil {
				debounce = time.NewTimer(w.debounceDur)
			} else {
				if !debounce.Stop() {
					select {
					case <-debounce.C:
					default:
					}
				}
				debounce.Reset(w.debounceDur)
			}
			settled = debounce.C

		case <-settled:
			settled = nil
			if w.list.CheckReload() {
				onChange(w.list.Groups())
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Error().Err(err).Msg("watcher error")
		}
	}
}
