package fs

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/notes/pkg/core"
)

// watchWorker turns fsnotify events on the storage directory into
// core.Events for one key.
type watchWorker struct {
	storage *Storage
	key     string
	pattern string
	events  chan core.Event
	watcher *fsnotify.Watcher
}

// Watch emits an event whenever the file of key is created, replaced or
// removed, by this or any other process. The channel closes when ctx ends.
func (s *Storage) Watch(ctx context.Context, key string) (<-chan core.Event, error) {
	name, err := s.filename(key)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	// The directory is watched, not the file: atomic writes replace the inode.
	if err := watcher.Add(s.Path); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", s.Path, err)
	}

	w := &watchWorker{
		storage: s,
		key:     key,
		pattern: filepath.Base(name),
		events:  make(chan core.Event),
		watcher: watcher,
	}
	s.setWatcherActive(true)

	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		w.handleWatcherError(fmt.Errorf("watcher stopped: %w", err))
	}))
	return w.events, nil
}

// run is the main event loop of the worker.
func (w *watchWorker) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("watcher panic: %v", recovered)
			if logger := w.storage.config.Logger; logger != nil && logger.Enabled(ctx, slog.LevelDebug) {
				logger.Error("watcher panic", "error", err, "stack", string(debug.Stack()))
			}
		}
	}()
	defer w.storage.setWatcherActive(false)
	defer close(w.events)
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			e, keep := w.mapEvent(event)
			if !keep {
				continue
			}
			select {
			case w.events <- e:
			case <-ctx.Done():
				return nil
			}

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.handleWatcherError(wErr)
		}
	}
}

// mapEvent filters fsnotify noise (temp files, other keys, chmod) and maps
// the rest to core.Events.
func (w *watchWorker) mapEvent(event fsnotify.Event) (core.Event, bool) {
	base := filepath.Base(event.Name)
	if isTempFile(base) {
		return core.Event{}, false
	}
	if ok, _ := doublestar.Match(w.pattern, base); !ok {
		return core.Event{}, false
	}

	var eType core.EventType
	switch {
	case event.Has(fsnotify.Create):
		eType = core.EventCreate
	case event.Has(fsnotify.Write):
		eType = core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		eType = core.EventDelete
	default:
		return core.Event{}, false
	}

	if logger := w.storage.config.Logger; logger != nil {
		logger.Debug("storage event", "key", w.key, "type", eType)
	}
	return core.Event{Type: eType, Key: w.key, Timestamp: time.Now().Unix()}, true
}

func (w *watchWorker) handleWatcherError(err error) {
	if w.storage.config.ErrorHandler != nil {
		w.storage.config.ErrorHandler(err)
		return
	}
	if w.storage.config.Logger != nil {
		w.storage.config.Logger.Error("fsnotify error", "error", err)
	}
}
