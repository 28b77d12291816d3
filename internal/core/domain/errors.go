package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidDate is returned when a date string cannot be parsed.
	ErrInvalidDate = zerr.New("invalid date")

	// ErrNoEarlierDate is returned when a schedule has no date strictly before the requested one.
	ErrNoEarlierDate = zerr.New("no earlier date in schedule")

	// ErrNoLaterDate is returned when a schedule has no date strictly after the requested one.
	ErrNoLaterDate = zerr.New("no later date in schedule")

	// ErrEmptySchedule is returned when an operation requires a non-empty schedule.
	ErrEmptySchedule = zerr.New("schedule is empty")

	// ErrDataUnavailable is returned when no price exists for a (date, ticker) pair.
	ErrDataUnavailable = zerr.New("no market data for date and ticker")

	// ErrDataLoadFailed is returned when the price file cannot be read or parsed.
	ErrDataLoadFailed = zerr.New("failed to load market data")

	// ErrEmptyBasket is returned when a strategy is configured with no tickers.
	ErrEmptyBasket = zerr.New("strategy basket is empty")

	// ErrSeedNotInCalendar is returned when the seed date is not a trading date.
	ErrSeedNotInCalendar = zerr.New("seed date not in calendar")

	// ErrComputeFailed is returned when an index state computation fails.
	ErrComputeFailed = zerr.New("index computation failed")

	// ErrConfigNotFound is returned when no ridx.yaml can be found.
	ErrConfigNotFound = zerr.New("could not find ridx.yaml")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrUnknownStrategy is returned when the config names a strategy type that does not exist.
	ErrUnknownStrategy = zerr.New("unknown strategy type")

	// ErrUnknownSinkFormat is returned when the config names an output format that does not exist.
	ErrUnknownSinkFormat = zerr.New("unknown output format, expected 'csv' or 'sqlite'")

	// ErrSinkWriteFailed is returned when writing computed levels to the output sink fails.
	ErrSinkWriteFailed = zerr.New("failed to write output")

	// ErrWatcherFailed is returned when the price file watcher cannot be started.
	ErrWatcherFailed = zerr.New("failed to watch price file")
)
