package domain

// Address identifies one unit of market data: a close price for a ticker on
// a date.
type Address struct {
	Date   Date
	Ticker string
}

// DependencySet is the set of addresses read while producing a cached state.
type DependencySet map[Address]struct{}

// NewDependencySet creates an empty DependencySet.
func NewDependencySet() DependencySet {
	return make(DependencySet)
}

// Add records an address in the set.
func (s DependencySet) Add(addr Address) {
	s[addr] = struct{}{}
}

// Contains reports whether addr is in the set.
func (s DependencySet) Contains(addr Address) bool {
	_, ok := s[addr]
	return ok
}

// Clone returns an independent copy. Mutating the original after storing a
// clone does not affect the clone.
func (s DependencySet) Clone() DependencySet {
	c := make(DependencySet, len(s))
	for addr := range s {
		c[addr] = struct{}{}
	}
	return c
}

// Dates returns the set of distinct dates referenced by the addresses.
func (s DependencySet) Dates() map[Date]struct{} {
	dates := make(map[Date]struct{}, len(s))
	for addr := range s {
		dates[addr.Date] = struct{}{}
	}
	return dates
}
