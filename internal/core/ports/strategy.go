package ports

import "go.ridx.dev/ridx/internal/core/domain"

// Strategy defines one index rule: a seed state and a pure transition from
// the previous date's state to the current date's state. S is the
// strategy-specific state type; the engine and store treat it as opaque.
type Strategy[S any] interface {
	// SeedDate is the first date of the chain.
	SeedDate() domain.Date

	// SeedState is the state at the seed date. Producing it must not read
	// market data.
	SeedState() S

	// Step computes the state for day from the state at prev. All market
	// data must be read through prices so the engine can record the
	// addresses the result depends on.
	Step(prices PriceReader, day, prev domain.Date, prevState S) (S, error)
}
