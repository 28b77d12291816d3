// Package store implements the dependency-tracked state cache.
//
// Each cached state remembers exactly which market data addresses were read
// to produce it. Validity is checked lazily against the data source's
// changed-date registry on every read, and an eager order-based sweep
// (InvalidateFrom) removes everything at or after a changed date. The sweep
// is conservative on purpose: each state structurally depends on the state
// of the previous date, so a change at date X taints every later date even
// though a single hop's dependency set only names adjacent dates.
package store

import (
	"sync"

	"go.ridx.dev/ridx/internal/core/domain"
	"go.ridx.dev/ridx/internal/core/ports"
	"go.ridx.dev/ridx/internal/engine/locks"
)

type entry[S any] struct {
	state S
	deps  domain.DependencySet
}

// Store caches one state per date together with the dependency set recorded
// while producing it. S is opaque to the store.
//
// Locking layers: the internal mutex only keeps the maps themselves
// coherent. Protocol-level serialization (at most one in-flight computation
// per date) belongs to the lock Manager; Get and Put acquire the date lock
// when a manager is configured, while GetLocked and PutLocked are for
// callers that already hold it.
type Store[S any] struct {
	mu      sync.RWMutex
	entries map[domain.Date]entry[S]

	tracker ports.ChangeTracker
	locks   *locks.Manager // nil for single-threaded use
}

// New creates a Store that validates entries against tracker. A nil manager
// leaves protocol-level locking to the caller.
func New[S any](tracker ports.ChangeTracker, manager *locks.Manager) *Store[S] {
	return &Store[S]{
		entries: make(map[domain.Date]entry[S]),
		tracker: tracker,
		locks:   manager,
	}
}

// Get returns the cached state for d if present and valid, acquiring d's
// date lock when a lock manager is configured.
func (s *Store[S]) Get(d domain.Date) (S, bool) {
	if s.locks == nil {
		return s.GetLocked(d)
	}
	var state S
	var ok bool
	_ = s.locks.WithDateLock(d, func() error {
		state, ok = s.GetLocked(d)
		return nil
	})
	return state, ok
}

// GetLocked returns the cached state for d if present and valid. A present
// but invalid entry is evicted and reported as absent. The caller must hold
// d's date lock (or be single-threaded).
func (s *Store[S]) GetLocked(d domain.Date) (S, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[d]
	if !ok {
		var zero S
		return zero, false
	}
	if !s.validLocked(e) {
		delete(s.entries, d)
		var zero S
		return zero, false
	}
	return e.state, true
}

// validLocked reports whether no dependency date of e has changed since the
// registry was last cleared. The registry is monotonic, so an entry that
// depends on a changed date stays invalid, even after being recomputed and
// re-stored from fresh data, until the caller clears the registry.
func (s *Store[S]) validLocked(e entry[S]) bool {
	changed := s.tracker.ChangedDates()
	if len(changed) == 0 {
		return true
	}
	for addr := range e.deps {
		if _, hit := changed[addr.Date]; hit {
			return false
		}
	}
	return true
}

// Put stores state with an independent copy of deps, acquiring d's date lock
// when a lock manager is configured. Any prior entry for d is overwritten.
func (s *Store[S]) Put(d domain.Date, state S, deps domain.DependencySet) {
	if s.locks == nil {
		s.PutLocked(d, state, deps)
		return
	}
	_ = s.locks.WithDateLock(d, func() error {
		s.PutLocked(d, state, deps)
		return nil
	})
}

// PutLocked stores state with an independent copy of deps. The caller must
// hold d's date lock (or be single-threaded).
func (s *Store[S]) PutLocked(d domain.Date, state S, deps domain.DependencySet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[d] = entry[S]{state: state, deps: deps.Clone()}
}

// InvalidateFrom removes every entry whose date is >= d. The sweep runs
// under the global invalidation lock only; it deliberately does not take the
// per-date locks of the entries it removes, so a computation finishing
// concurrently can re-insert a fresh entry moments before or after the
// sweep covers its date. Invalidation never fails; a sweep matching nothing
// is a no-op.
func (s *Store[S]) InvalidateFrom(d domain.Date) {
	sweep := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for date := range s.entries {
			if !date.Before(d) {
				delete(s.entries, date)
			}
		}
	}
	if s.locks == nil {
		sweep()
		return
	}
	s.locks.WithInvalidationLock(sweep)
}

// Clear removes all entries unconditionally.
func (s *Store[S]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.entries)
}

// Len returns the number of entries currently cached, without validating
// them.
func (s *Store[S]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Dependencies returns a copy of the dependency set recorded for d, or nil
// if d is not cached. Intended for tests and diagnostics.
func (s *Store[S]) Dependencies(d domain.Date) domain.DependencySet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[d]
	if !ok {
		return nil
	}
	return e.deps.Clone()
}
