package chain

import (
	"go.ridx.dev/ridx/internal/core/domain"
	"go.ridx.dev/ridx/internal/core/ports"
)

// recorder wraps a price reader and records every successful read as an
// address in a fresh dependency set. One recorder lives for the duration of
// a single step invocation.
type recorder struct {
	data ports.PriceReader
	deps domain.DependencySet
}

func newRecorder(data ports.PriceReader) *recorder {
	return &recorder{
		data: data,
		deps: domain.NewDependencySet(),
	}
}

// Price reads through to the data source. Failed reads are not recorded: a
// failing step stores no entry, so its dependency set is discarded anyway.
func (r *recorder) Price(d domain.Date, ticker string) (float64, error) {
	v, err := r.data.Price(d, ticker)
	if err != nil {
		return 0, err
	}
	r.deps.Add(domain.Address{Date: d, Ticker: ticker})
	return v, nil
}
