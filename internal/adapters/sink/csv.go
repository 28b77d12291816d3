// Package sink persists computed index series to CSV files or SQLite
// databases.
package sink

import (
	"encoding/csv"
	"os"
	"strconv"

	"go.ridx.dev/ridx/internal/core/domain"
	"go.ridx.dev/ridx/internal/core/ports"
	"go.trai.ch/zerr"
)

// Formats accepted by New.
const (
	FormatCSV    = "csv"
	FormatSQLite = "sqlite"
)

// New creates a sink for the given format writing to path.
func New(format, path string) (ports.ResultSink, error) {
	switch format {
	case FormatCSV:
		return NewCSV(path), nil
	case FormatSQLite:
		return NewSQLite(path)
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownSinkFormat, "creating result sink"), "format", format)
	}
}

// CSV writes the series as date,index_level,portfolio_return rows. Each
// Write replaces the file.
type CSV struct {
	path string
}

// NewCSV creates a CSV sink writing to path.
func NewCSV(path string) *CSV {
	return &CSV{path: path}
}

// Write replaces the file at the sink's path with the given samples.
func (c *CSV) Write(samples []domain.Sample) error {
	f, err := os.Create(c.path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrSinkWriteFailed.Error()), "file", c.path)
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{"date", "index_level", "portfolio_return"}); err != nil {
		_ = f.Close()
		return zerr.Wrap(err, domain.ErrSinkWriteFailed.Error())
	}
	for _, s := range samples {
		row := []string{
			s.Date.String(),
			strconv.FormatFloat(s.Level, 'f', 6, 64),
			strconv.FormatFloat(s.Return, 'f', 8, 64),
		}
		if err := w.Write(row); err != nil {
			_ = f.Close()
			return zerr.Wrap(err, domain.ErrSinkWriteFailed.Error())
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return zerr.Wrap(err, domain.ErrSinkWriteFailed.Error())
	}
	if err := f.Close(); err != nil {
		return zerr.Wrap(err, domain.ErrSinkWriteFailed.Error())
	}
	return nil
}

// Close implements ports.ResultSink; the CSV sink holds no resources
// between writes.
func (c *CSV) Close() error { return nil }
