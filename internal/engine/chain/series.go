package chain

import (
	"iter"

	"go.ridx.dev/ridx/internal/core/domain"
)

// Series is an ordered mapping from trading date to computed state, as
// returned by ComputeRange.
type Series[S any] struct {
	schedule domain.Schedule
	states   map[domain.Date]S
}

// Len returns the number of dates in the series.
func (s *Series[S]) Len() int { return s.schedule.Len() }

// Get returns the state for d.
func (s *Series[S]) Get(d domain.Date) (S, bool) {
	state, ok := s.states[d]
	return state, ok
}

// All iterates (date, state) pairs in ascending date order.
func (s *Series[S]) All() iter.Seq2[domain.Date, S] {
	return func(yield func(domain.Date, S) bool) {
		for d := range s.schedule.All() {
			if !yield(d, s.states[d]) {
				return
			}
		}
	}
}

// Dates returns the series dates in ascending order.
func (s *Series[S]) Dates() []domain.Date {
	return s.schedule.Dates()
}
