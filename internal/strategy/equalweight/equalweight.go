// Package equalweight implements an equal-weight index rule with periodic
// rebalancing: every asset in the basket starts at weight 1/n, weights drift
// with returns between boundaries, and snap back to 1/n on each month-end
// trading date.
package equalweight

import (
	"go.ridx.dev/ridx/internal/core/domain"
	"go.ridx.dev/ridx/internal/core/ports"
	"go.trai.ch/zerr"
)

// Strategy computes equal-weight index states over a trading calendar.
type Strategy struct {
	basket       []string
	seed         domain.Date
	calendar     domain.Schedule
	initialLevel float64
}

// New validates the parameters and creates a Strategy. The seed date must be
// a member of the calendar.
func New(basket []string, seed domain.Date, calendar domain.Schedule, initialLevel float64) (*Strategy, error) {
	if len(basket) == 0 {
		return nil, domain.ErrEmptyBasket
	}
	if !calendar.Contains(seed) {
		return nil, zerr.With(zerr.Wrap(domain.ErrSeedNotInCalendar, "validating strategy parameters"), "seed", seed.String())
	}
	return &Strategy{
		basket:       basket,
		seed:         seed,
		calendar:     calendar,
		initialLevel: initialLevel,
	}, nil
}

// SeedDate returns the first date of the index chain.
func (s *Strategy) SeedDate() domain.Date { return s.seed }

// SeedState returns the initial state: zero returns, equal weights and the
// configured initial level. No market data is read.
func (s *Strategy) SeedState() State {
	returns := make(map[string]float64, len(s.basket))
	weights := make(map[string]float64, len(s.basket))
	for _, asset := range s.basket {
		returns[asset] = 0
		weights[asset] = 1 / float64(len(s.basket))
	}
	return State{
		Returns:    returns,
		IndexLevel: s.initialLevel,
		Weights:    weights,
	}
}

// Step computes the state for day from the state at prev:
//
//	r_a  = p_a(day)/p_a(prev) - 1        per asset
//	r_p  = Σ w_a(prev) · r_a             portfolio return
//	lvl  = lvl(prev) · (1 + r_p)
//
// Weights rebalance to 1/n when day is a month-end trading date, otherwise
// they drift with returns, renormalized by the portfolio return.
func (s *Strategy) Step(prices ports.PriceReader, day, prev domain.Date, prevState State) (State, error) {
	returns := make(map[string]float64, len(s.basket))
	for _, asset := range s.basket {
		today, err := prices.Price(day, asset)
		if err != nil {
			return State{}, err
		}
		yesterday, err := prices.Price(prev, asset)
		if err != nil {
			return State{}, err
		}
		returns[asset] = today/yesterday - 1
	}

	var portfolioReturn float64
	for asset, weight := range prevState.Weights {
		portfolioReturn += returns[asset] * weight
	}

	weights := make(map[string]float64, len(s.basket))
	if s.calendar.IsMonthEnd(day) {
		for _, asset := range s.basket {
			weights[asset] = 1 / float64(len(s.basket))
		}
	} else {
		for _, asset := range s.basket {
			weights[asset] = prevState.Weights[asset] * (1 + returns[asset]) / (1 + portfolioReturn)
		}
	}

	return State{
		Returns:         returns,
		PortfolioReturn: portfolioReturn,
		IndexLevel:      prevState.IndexLevel * (1 + portfolioReturn),
		Weights:         weights,
	}, nil
}
