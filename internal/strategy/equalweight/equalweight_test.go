package equalweight_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.ridx.dev/ridx/internal/adapters/marketdata"
	"go.ridx.dev/ridx/internal/core/domain"
	"go.ridx.dev/ridx/internal/strategy/equalweight"
)

const epsilon = 1e-12

func calendar(dates ...string) domain.Schedule {
	parsed := make([]domain.Date, 0, len(dates))
	for _, d := range dates {
		parsed = append(parsed, domain.MustParseDate(d))
	}
	return domain.NewSchedule(parsed)
}

func prices(rows map[string]map[string]float64) *marketdata.MarketData {
	var records []marketdata.Record
	for date, byTicker := range rows {
		for ticker, px := range byTicker {
			records = append(records, marketdata.Record{
				Date:   domain.MustParseDate(date),
				Ticker: ticker,
				Close:  px,
			})
		}
	}
	return marketdata.NewFromRecords(records)
}

func TestNew_Validation(t *testing.T) {
	cal := calendar("2024-01-31", "2024-02-29")

	t.Run("empty basket", func(t *testing.T) {
		_, err := equalweight.New(nil, domain.MustParseDate("2024-01-31"), cal, 100)
		assert.ErrorIs(t, err, domain.ErrEmptyBasket)
	})

	t.Run("seed outside calendar", func(t *testing.T) {
		_, err := equalweight.New([]string{"AAA"}, domain.MustParseDate("2024-01-15"), cal, 100)
		assert.ErrorIs(t, err, domain.ErrSeedNotInCalendar)
	})

	t.Run("valid", func(t *testing.T) {
		s, err := equalweight.New([]string{"AAA"}, domain.MustParseDate("2024-01-31"), cal, 100)
		require.NoError(t, err)
		assert.Equal(t, domain.MustParseDate("2024-01-31"), s.SeedDate())
	})
}

func TestSeedState(t *testing.T) {
	cal := calendar("2024-01-31", "2024-02-29")
	s, err := equalweight.New([]string{"AAA", "BBB", "CCC", "DDD"}, domain.MustParseDate("2024-01-31"), cal, 1000)
	require.NoError(t, err)

	state := s.SeedState()
	assert.Equal(t, 1000.0, state.IndexLevel)
	assert.Zero(t, state.PortfolioReturn)
	for _, asset := range []string{"AAA", "BBB", "CCC", "DDD"} {
		assert.InDelta(t, 0.25, state.Weights[asset], epsilon)
		assert.Zero(t, state.Returns[asset])
	}
}

func TestStep_ReturnsAndLevel(t *testing.T) {
	// Mid-month days so no rebalancing interferes.
	cal := calendar("2024-03-14", "2024-03-15", "2024-03-29")
	data := prices(map[string]map[string]float64{
		"2024-03-14": {"AAA": 100, "BBB": 200},
		"2024-03-15": {"AAA": 110, "BBB": 190},
		"2024-03-29": {"AAA": 110, "BBB": 190},
	})

	s, err := equalweight.New([]string{"AAA", "BBB"}, domain.MustParseDate("2024-03-14"), cal, 100)
	require.NoError(t, err)

	state, err := s.Step(data, domain.MustParseDate("2024-03-15"), domain.MustParseDate("2024-03-14"), s.SeedState())
	require.NoError(t, err)

	// AAA +10%, BBB -5%, equal weights: portfolio return +2.5%.
	assert.InDelta(t, 0.10, state.Returns["AAA"], epsilon)
	assert.InDelta(t, -0.05, state.Returns["BBB"], epsilon)
	assert.InDelta(t, 0.025, state.PortfolioReturn, epsilon)
	assert.InDelta(t, 102.5, state.IndexLevel, epsilon)

	// Weights drift toward the winner and still sum to one.
	assert.InDelta(t, 0.5*1.10/1.025, state.Weights["AAA"], epsilon)
	assert.InDelta(t, 0.5*0.95/1.025, state.Weights["BBB"], epsilon)
	assert.InDelta(t, 1.0, state.Weights["AAA"]+state.Weights["BBB"], epsilon)
}

func TestStep_RebalancesOnMonthEnd(t *testing.T) {
	// 2024-03-29 is the last March date in the calendar.
	cal := calendar("2024-03-15", "2024-03-29", "2024-04-30")
	data := prices(map[string]map[string]float64{
		"2024-03-15": {"AAA": 100, "BBB": 100},
		"2024-03-29": {"AAA": 150, "BBB": 100},
		"2024-04-30": {"AAA": 150, "BBB": 100},
	})

	s, err := equalweight.New([]string{"AAA", "BBB"}, domain.MustParseDate("2024-03-15"), cal, 100)
	require.NoError(t, err)

	state, err := s.Step(data, domain.MustParseDate("2024-03-29"), domain.MustParseDate("2024-03-15"), s.SeedState())
	require.NoError(t, err)

	// Despite AAA's outperformance the month-end weights snap back to 1/n.
	assert.InDelta(t, 0.5, state.Weights["AAA"], epsilon)
	assert.InDelta(t, 0.5, state.Weights["BBB"], epsilon)
	assert.InDelta(t, 0.25, state.PortfolioReturn, epsilon)
	assert.InDelta(t, 125, state.IndexLevel, epsilon)
}

func TestStep_LastCalendarDateCountsAsMonthEnd(t *testing.T) {
	cal := calendar("2024-03-14", "2024-03-15")
	data := prices(map[string]map[string]float64{
		"2024-03-14": {"AAA": 100, "BBB": 100},
		"2024-03-15": {"AAA": 120, "BBB": 100},
	})

	s, err := equalweight.New([]string{"AAA", "BBB"}, domain.MustParseDate("2024-03-14"), cal, 100)
	require.NoError(t, err)

	state, err := s.Step(data, domain.MustParseDate("2024-03-15"), domain.MustParseDate("2024-03-14"), s.SeedState())
	require.NoError(t, err)

	// No successor exists, so the final date rebalances.
	assert.InDelta(t, 0.5, state.Weights["AAA"], epsilon)
	assert.InDelta(t, 0.5, state.Weights["BBB"], epsilon)
}

func TestStep_MissingPrice(t *testing.T) {
	cal := calendar("2024-03-14", "2024-03-15")
	data := prices(map[string]map[string]float64{
		"2024-03-14": {"AAA": 100},
		"2024-03-15": {"AAA": 110},
	})

	s, err := equalweight.New([]string{"AAA", "BBB"}, domain.MustParseDate("2024-03-14"), cal, 100)
	require.NoError(t, err)

	_, err = s.Step(data, domain.MustParseDate("2024-03-15"), domain.MustParseDate("2024-03-14"), s.SeedState())
	assert.ErrorIs(t, err, domain.ErrDataUnavailable)
}

func TestState_Fingerprint(t *testing.T) {
	a := equalweight.State{
		Returns:         map[string]float64{"AAA": 0.1, "BBB": -0.05},
		PortfolioReturn: 0.025,
		IndexLevel:      102.5,
		Weights:         map[string]float64{"AAA": 0.53, "BBB": 0.47},
	}
	b := equalweight.State{
		Returns:         map[string]float64{"BBB": -0.05, "AAA": 0.1},
		PortfolioReturn: 0.025,
		IndexLevel:      102.5,
		Weights:         map[string]float64{"BBB": 0.47, "AAA": 0.53},
	}
	assert.Equal(t, a.Fingerprint(), b.Fingerprint(), "map iteration order must not matter")

	c := a
	c.IndexLevel = 102.5000001
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}
