// Package watcher implements file watching for live price reloads.
package watcher

import (
	"context"
	"iter"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.ridx.dev/ridx/internal/core/domain"
	"go.ridx.dev/ridx/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

const eventChannelBuffer = 16

// Watcher watches individual files using fsnotify. Editors often replace a
// file by writing a temporary and renaming it over the original, so the
// watch is placed on each file's parent directory and events are filtered
// down to the watched files. Bursts of events for the same file are
// coalesced by a debouncer before they reach Events.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	debounce  *Debouncer

	mu     sync.Mutex // guards files, and events against a late debounce fire
	files  map[string]struct{}
	closed bool
	events chan ports.WatchEvent
}

// NewWatcher creates a watcher. A zero window disables debouncing.
func NewWatcher(window ...DebounceOption) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrWatcherFailed.Error())
	}
	w := &Watcher{
		fsWatcher: fsw,
		files:     make(map[string]struct{}),
		events:    make(chan ports.WatchEvent, eventChannelBuffer),
	}
	w.debounce = NewDebouncer(resolveWindow(window), w.emit)
	return w, nil
}

// Start begins watching the given files.
func (w *Watcher) Start(ctx context.Context, paths ...string) error {
	dirs := make(map[string]struct{})
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrWatcherFailed.Error()), "file", path)
		}
		w.mu.Lock()
		w.files[abs] = struct{}{}
		w.mu.Unlock()
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	for dir := range dirs {
		if err := w.fsWatcher.Add(dir); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrWatcherFailed.Error()), "dir", dir)
		}
	}

	go w.processEvents(ctx)
	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	return w.fsWatcher.Close()
}

// Events returns an iterator of debounced change events. The iterator ends
// when the watcher stops or its context is canceled.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer w.closeEvents()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.debounce.Add(event.Name)
		case _, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	_, watched := w.files[event.Name]
	return watched
}

func (w *Watcher) emit(paths []string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	for _, path := range paths {
		select {
		case w.events <- ports.WatchEvent{Path: path}:
		default:
			// Consumer is behind; the pending events already cover the change.
		}
	}
}

func (w *Watcher) closeEvents() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.closed {
		w.closed = true
		close(w.events)
	}
}
