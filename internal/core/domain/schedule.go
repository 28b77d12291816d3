package domain

import (
	"fmt"
	"iter"
	"slices"

	"go.trai.ch/zerr"
)

// Schedule is an immutable, sorted, deduplicated sequence of trading dates.
// It answers predecessor/successor/range/period-boundary queries over the
// date domain the index chain is computed on.
type Schedule struct {
	dates []Date
}

// NewSchedule builds a Schedule from dates in any order, sorting and
// deduplicating them. The input slice is not retained.
func NewSchedule(dates []Date) Schedule {
	sorted := slices.Clone(dates)
	slices.SortFunc(sorted, Date.Compare)
	sorted = slices.CompactFunc(sorted, func(a, b Date) bool { return a == b })
	return Schedule{dates: sorted}
}

// Len returns the number of dates in the schedule.
func (s Schedule) Len() int { return len(s.dates) }

// Contains reports whether d is a member of the schedule.
func (s Schedule) Contains(d Date) bool {
	_, ok := slices.BinarySearchFunc(s.dates, d, Date.Compare)
	return ok
}

// First returns the earliest date in the schedule.
func (s Schedule) First() (Date, error) {
	if len(s.dates) == 0 {
		return Date{}, ErrEmptySchedule
	}
	return s.dates[0], nil
}

// Last returns the latest date in the schedule.
func (s Schedule) Last() (Date, error) {
	if len(s.dates) == 0 {
		return Date{}, ErrEmptySchedule
	}
	return s.dates[len(s.dates)-1], nil
}

// Prev returns the latest schedule date strictly before d. The reference
// date itself does not have to be a member.
func (s Schedule) Prev(d Date) (Date, error) {
	// Index of the first date >= d; everything before it is strictly earlier.
	i, _ := slices.BinarySearchFunc(s.dates, d, Date.Compare)
	if i == 0 {
		return Date{}, zerr.With(zerr.Wrap(ErrNoEarlierDate, "resolving predecessor"), "date", d.String())
	}
	return s.dates[i-1], nil
}

// Next returns the earliest schedule date strictly after d.
func (s Schedule) Next(d Date) (Date, error) {
	i, found := slices.BinarySearchFunc(s.dates, d, Date.Compare)
	if found {
		i++
	}
	if i >= len(s.dates) {
		return Date{}, zerr.With(zerr.Wrap(ErrNoLaterDate, "resolving successor"), "date", d.String())
	}
	return s.dates[i], nil
}

// Range returns the sub-schedule of dates in [from, to], inclusive on both
// ends. The result may be empty.
func (s Schedule) Range(from, to Date) Schedule {
	lo, _ := slices.BinarySearchFunc(s.dates, from, Date.Compare)
	hi, found := slices.BinarySearchFunc(s.dates, to, Date.Compare)
	if found {
		hi++
	}
	if lo >= hi {
		return Schedule{}
	}
	return Schedule{dates: s.dates[lo:hi]}
}

// IsMonthEnd reports whether d is the last date of its month within the
// schedule. The final schedule date is trivially the last date of its month.
func (s Schedule) IsMonthEnd(d Date) bool {
	next, err := s.Next(d)
	if err != nil {
		return true
	}
	return d.Month() != next.Month() || d.Year() != next.Year()
}

// All iterates the schedule dates in ascending order.
func (s Schedule) All() iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for _, d := range s.dates {
			if !yield(d) {
				return
			}
		}
	}
}

// Dates returns a copy of the schedule dates in ascending order.
func (s Schedule) Dates() []Date {
	return slices.Clone(s.dates)
}

// String describes the schedule span.
func (s Schedule) String() string {
	if len(s.dates) == 0 {
		return "Schedule(empty)"
	}
	return fmt.Sprintf("Schedule(%d dates: %s to %s)", len(s.dates), s.dates[0], s.dates[len(s.dates)-1])
}
