package watcher

import (
	"sync"
	"time"
)

// DefaultDebounceWindow is the default time window for coalescing file
// events.
const DefaultDebounceWindow = 50 * time.Millisecond

// DebounceOption overrides the debounce window.
type DebounceOption time.Duration

func resolveWindow(opts []DebounceOption) time.Duration {
	if len(opts) > 0 {
		return time.Duration(opts[len(opts)-1])
	}
	return DefaultDebounceWindow
}

// Debouncer coalesces rapid file events into batched callbacks. Saving a
// file typically produces several fsnotify events in quick succession; the
// callback fires once per burst with the deduplicated paths.
type Debouncer struct {
	mu       sync.Mutex
	pending  map[string]struct{}
	timer    *time.Timer
	window   time.Duration
	callback func(paths []string)
}

// NewDebouncer creates a debouncer with the given window and callback. A
// zero window fires the callback synchronously on every Add.
func NewDebouncer(window time.Duration, callback func(paths []string)) *Debouncer {
	return &Debouncer{
		pending:  make(map[string]struct{}),
		window:   window,
		callback: callback,
	}
}

// Add records a changed path and (re)starts the debounce window.
func (d *Debouncer) Add(path string) {
	if d.window <= 0 {
		d.callback([]string{path})
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[path] = struct{}{}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if len(d.pending) == 0 {
		d.timer = nil
		d.mu.Unlock()
		return
	}

	paths := make([]string, 0, len(d.pending))
	for path := range d.pending {
		paths = append(paths, path)
	}
	d.pending = make(map[string]struct{})
	d.timer = nil
	d.mu.Unlock()

	d.callback(paths)
}

// Flush immediately fires the callback with all pending paths, blocking
// until it completes. Used on shutdown so no change is lost.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		if !d.timer.Stop() {
			// Timer already fired; let that invocation deliver the batch.
			d.mu.Unlock()
			return
		}
		d.timer = nil
	}
	paths := make([]string, 0, len(d.pending))
	for path := range d.pending {
		paths = append(paths, path)
	}
	d.pending = make(map[string]struct{})
	d.mu.Unlock()

	if len(paths) > 0 {
		d.callback(paths)
	}
}
