// Package locks provides per-date mutual exclusion for index computation.
//
// One exclusive lock exists per trading date, created lazily on first use
// and never destroyed. A separate global lock serializes cache invalidation
// sweeps. Computations for the same date are fully serialized while distinct
// dates proceed in parallel.
//
// Deadlock freedom: the chain engine acquires at most one date lock at a
// time, and any caller that nests acquisitions must do so in strictly
// decreasing date order (a date's lock before its predecessor's). The
// predecessor relation is a strict well-founded order, so no waiting cycle
// can form. Acquisition blocks indefinitely; there are no timeouts.
package locks

import (
	"sync"

	"go.ridx.dev/ridx/internal/core/domain"
)

// Manager allocates and serializes access to per-date locks plus the global
// invalidation lock. The zero value is not usable; call NewManager.
type Manager struct {
	mu        sync.Mutex // guards dates for the create-or-fetch step only
	dates     map[domain.Date]*sync.Mutex
	invalidMu sync.Mutex
}

// NewManager creates a Manager.
func NewManager() *Manager {
	return &Manager{
		dates: make(map[domain.Date]*sync.Mutex),
	}
}

// lockFor returns the lock for d, creating it if this is the first touch.
// Two goroutines racing to first-touch the same date get the same lock.
func (m *Manager) lockFor(d domain.Date) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.dates[d]
	if !ok {
		l = &sync.Mutex{}
		m.dates[d] = l
	}
	return l
}

// WithDateLock runs fn while holding the exclusive lock for d. The lock is
// released on every exit path, including when fn returns an error.
func (m *Manager) WithDateLock(d domain.Date, fn func() error) error {
	l := m.lockFor(d)
	l.Lock()
	defer l.Unlock()
	return fn()
}

// WithInvalidationLock runs fn while holding the global invalidation lock,
// serializing invalidation sweeps against each other.
func (m *Manager) WithInvalidationLock(fn func()) {
	m.invalidMu.Lock()
	defer m.invalidMu.Unlock()
	fn()
}

// LockCount reports how many per-date locks have been created. Locks are
// never destroyed, so this grows with the number of distinct dates touched.
func (m *Manager) LockCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.dates)
}
