// Package ports defines the core interfaces for the application.
package ports

import "go.ridx.dev/ridx/internal/core/domain"

// PriceReader is the read-only view of market data handed to strategy step
// functions. Implementations may record which addresses were read.
type PriceReader interface {
	// Price returns the close price for a ticker on a date.
	// It returns domain.ErrDataUnavailable if no such price exists.
	Price(d domain.Date, ticker string) (float64, error)
}

// ChangeTracker exposes the registry of dates whose market data changed
// since the registry was last cleared. The cache consults it on every read;
// the registry only grows until ClearChangedDates is called.
type ChangeTracker interface {
	// ChangedDates returns a copy of the changed-date set.
	ChangedDates() map[domain.Date]struct{}
}

// MarketData is the external price data source.
//
//go:generate mockgen -source=marketdata.go -destination=mocks/mock_marketdata.go -package=mocks
type MarketData interface {
	PriceReader
	ChangeTracker

	// Update replaces the price for an existing (date, ticker) pair, records
	// the date in the changed-date registry and notifies OnUpdate handlers.
	// It returns domain.ErrDataUnavailable if the pair does not exist.
	Update(d domain.Date, ticker string, price float64) error

	// OnUpdate registers a handler invoked with the date of every Update.
	// Handlers run outside the data source's internal lock.
	OnUpdate(fn func(domain.Date))

	// ClearChangedDates resets the changed-date registry.
	ClearChangedDates()

	// Calendar returns the schedule of all dates present in the data set.
	Calendar() domain.Schedule
}
