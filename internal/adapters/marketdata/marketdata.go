// Package marketdata implements the price data source backed by a CSV file
// with date,ticker,close columns. The whole table is held in memory; updates
// mutate the table, register the date in the changed-date registry and
// notify subscribers so dependent caches can invalidate.
package marketdata

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.ridx.dev/ridx/internal/core/domain"
	"go.trai.ch/zerr"
)

// Record is one price row, used by the in-memory constructor.
type Record struct {
	Date   domain.Date
	Ticker string
	Close  float64
}

// MarketData is a thread-safe in-memory price table.
type MarketData struct {
	mu        sync.RWMutex
	prices    map[domain.Address]float64
	changed   map[domain.Date]struct{}
	callbacks []func(domain.Date)
	calendar  domain.Schedule
	checksum  uint64
}

// Load reads a CSV price file. The first row must be the header
// "date,ticker,close".
func Load(path string) (*MarketData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrDataLoadFailed.Error()), "file", path)
	}
	records, err := parseCSV(raw)
	if err != nil {
		return nil, zerr.With(err, "file", path)
	}
	md := NewFromRecords(records)
	md.checksum = xxhash.Sum64(raw)
	return md, nil
}

// NewFromRecords builds a MarketData from rows already in memory.
func NewFromRecords(records []Record) *MarketData {
	prices := make(map[domain.Address]float64, len(records))
	dates := make([]domain.Date, 0, len(records))
	for _, r := range records {
		prices[domain.Address{Date: r.Date, Ticker: r.Ticker}] = r.Close
		dates = append(dates, r.Date)
	}
	return &MarketData{
		prices:   prices,
		changed:  make(map[domain.Date]struct{}),
		calendar: domain.NewSchedule(dates),
	}
}

func parseCSV(raw []byte) ([]Record, error) {
	reader := csv.NewReader(bytes.NewReader(raw))
	header, err := reader.Read()
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrDataLoadFailed.Error())
	}
	if len(header) < 3 || header[0] != "date" || header[1] != "ticker" || header[2] != "close" {
		return nil, zerr.Wrap(domain.ErrDataLoadFailed, "expected header date,ticker,close")
	}

	var records []Record
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, zerr.Wrap(err, domain.ErrDataLoadFailed.Error())
		}
		d, err := domain.ParseDate(row[0])
		if err != nil {
			return nil, zerr.Wrap(err, "line "+strconv.Itoa(line))
		}
		px, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrDataLoadFailed.Error()), "line", strconv.Itoa(line))
		}
		records = append(records, Record{Date: d, Ticker: row[1], Close: px})
	}
	return records, nil
}

// Price returns the close price for (d, ticker).
func (m *MarketData) Price(d domain.Date, ticker string) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	px, ok := m.prices[domain.Address{Date: d, Ticker: ticker}]
	if !ok {
		err := zerr.Wrap(domain.ErrDataUnavailable, "looking up close price")
		err = zerr.With(err, "date", d.String())
		return 0, zerr.With(err, "ticker", ticker)
	}
	return px, nil
}

// Update replaces the price for an existing (d, ticker) pair, records d as
// changed and notifies subscribers. Callbacks run outside the internal lock;
// they may acquire cache and date locks of their own.
func (m *MarketData) Update(d domain.Date, ticker string, price float64) error {
	addr := domain.Address{Date: d, Ticker: ticker}

	m.mu.Lock()
	if _, ok := m.prices[addr]; !ok {
		m.mu.Unlock()
		err := zerr.Wrap(domain.ErrDataUnavailable, "updating close price")
		err = zerr.With(err, "date", d.String())
		return zerr.With(err, "ticker", ticker)
	}
	m.prices[addr] = price
	m.changed[d] = struct{}{}
	callbacks := make([]func(domain.Date), len(m.callbacks))
	copy(callbacks, m.callbacks)
	m.mu.Unlock()

	for _, cb := range callbacks {
		cb(d)
	}
	return nil
}

// OnUpdate registers a handler invoked with the date of every Update.
func (m *MarketData) OnUpdate(fn func(domain.Date)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, fn)
}

// ChangedDates returns a copy of the dates modified since the last clear.
func (m *MarketData) ChangedDates() map[domain.Date]struct{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[domain.Date]struct{}, len(m.changed))
	for d := range m.changed {
		out[d] = struct{}{}
	}
	return out
}

// ClearChangedDates resets the changed-date registry. Until this is called,
// every cached state that read data at a changed date keeps reading as
// invalid, even after recomputation from the fresh prices.
func (m *MarketData) ClearChangedDates() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.changed)
}

// Calendar returns the schedule of all dates in the table.
func (m *MarketData) Calendar() domain.Schedule {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calendar
}

// Checksum returns the xxhash of the raw file contents at load time, or 0
// for in-memory data.
func (m *MarketData) Checksum() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.checksum
}

// Reload re-reads the price file and applies every differing price through
// Update, so each change lands in the registry and fires notifications.
// Rows for (date, ticker) pairs absent from the original table are ignored:
// the calendar is fixed at load time. It returns the number of changed
// prices.
func (m *MarketData) Reload(path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrDataLoadFailed.Error()), "file", path)
	}
	records, err := parseCSV(raw)
	if err != nil {
		return 0, zerr.With(err, "file", path)
	}

	m.mu.Lock()
	m.checksum = xxhash.Sum64(raw)
	var dirty []Record
	for _, r := range records {
		addr := domain.Address{Date: r.Date, Ticker: r.Ticker}
		if old, ok := m.prices[addr]; ok && old != r.Close {
			dirty = append(dirty, r)
		}
	}
	m.mu.Unlock()

	for _, r := range dirty {
		if err := m.Update(r.Date, r.Ticker, r.Close); err != nil {
			return 0, err
		}
	}
	return len(dirty), nil
}
