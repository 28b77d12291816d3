package marketdata_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.ridx.dev/ridx/internal/adapters/marketdata"
	"go.ridx.dev/ridx/internal/core/domain"
)

const sampleCSV = `date,ticker,close
2024-01-31,AAA,100
2024-01-31,BBB,200
2024-02-29,AAA,110
2024-02-29,BBB,190
`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prices.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	md, err := marketdata.Load(writeFile(t, sampleCSV))
	require.NoError(t, err)

	px, err := md.Price(domain.MustParseDate("2024-01-31"), "AAA")
	require.NoError(t, err)
	assert.Equal(t, 100.0, px)

	assert.Equal(t, 2, md.Calendar().Len())
	assert.NotZero(t, md.Checksum())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		sentinel error
	}{
		{name: "wrong header", content: "day,symbol,price\n2024-01-31,AAA,100\n", sentinel: domain.ErrDataLoadFailed},
		{name: "bad date", content: "date,ticker,close\n31.01.2024,AAA,100\n", sentinel: domain.ErrInvalidDate},
		{name: "bad price", content: "date,ticker,close\n2024-01-31,AAA,abc\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := marketdata.Load(writeFile(t, tt.content))
			require.Error(t, err)
			if tt.sentinel != nil {
				assert.ErrorIs(t, err, tt.sentinel)
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := marketdata.Load(filepath.Join(t.TempDir(), "nope.csv"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load market data")
	})
}

func TestPrice_Unavailable(t *testing.T) {
	md, err := marketdata.Load(writeFile(t, sampleCSV))
	require.NoError(t, err)

	_, err = md.Price(domain.MustParseDate("2024-01-31"), "ZZZ")
	assert.ErrorIs(t, err, domain.ErrDataUnavailable)

	_, err = md.Price(domain.MustParseDate("2024-03-29"), "AAA")
	assert.ErrorIs(t, err, domain.ErrDataUnavailable)
}

func TestUpdate(t *testing.T) {
	md, err := marketdata.Load(writeFile(t, sampleCSV))
	require.NoError(t, err)
	d := domain.MustParseDate("2024-01-31")

	var notified []domain.Date
	md.OnUpdate(func(changed domain.Date) { notified = append(notified, changed) })

	require.NoError(t, md.Update(d, "AAA", 105))

	px, err := md.Price(d, "AAA")
	require.NoError(t, err)
	assert.Equal(t, 105.0, px)

	assert.Equal(t, []domain.Date{d}, notified)
	_, changed := md.ChangedDates()[d]
	assert.True(t, changed)
}

func TestUpdate_UnknownPairRejected(t *testing.T) {
	md, err := marketdata.Load(writeFile(t, sampleCSV))
	require.NoError(t, err)

	err = md.Update(domain.MustParseDate("2024-01-31"), "ZZZ", 1)
	assert.ErrorIs(t, err, domain.ErrDataUnavailable)
	assert.Empty(t, md.ChangedDates())
}

func TestChangedDates_GrowsUntilCleared(t *testing.T) {
	md, err := marketdata.Load(writeFile(t, sampleCSV))
	require.NoError(t, err)

	require.NoError(t, md.Update(domain.MustParseDate("2024-01-31"), "AAA", 101))
	require.NoError(t, md.Update(domain.MustParseDate("2024-02-29"), "BBB", 191))
	assert.Len(t, md.ChangedDates(), 2)

	// The returned map is a copy; mutating it leaves the registry intact.
	got := md.ChangedDates()
	delete(got, domain.MustParseDate("2024-01-31"))
	assert.Len(t, md.ChangedDates(), 2)

	md.ClearChangedDates()
	assert.Empty(t, md.ChangedDates())
}

func TestReload(t *testing.T) {
	path := writeFile(t, sampleCSV)
	md, err := marketdata.Load(path)
	require.NoError(t, err)
	before := md.Checksum()

	var notified []domain.Date
	md.OnUpdate(func(changed domain.Date) { notified = append(notified, changed) })

	// One changed price, one new pair (ignored), rest identical.
	updated := `date,ticker,close
2024-01-31,AAA,100
2024-01-31,BBB,200
2024-02-29,AAA,120
2024-02-29,BBB,190
2024-03-29,AAA,130
`
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o600))

	changed, err := md.Reload(path)
	require.NoError(t, err)
	assert.Equal(t, 1, changed)
	assert.Equal(t, []domain.Date{domain.MustParseDate("2024-02-29")}, notified)

	px, err := md.Price(domain.MustParseDate("2024-02-29"), "AAA")
	require.NoError(t, err)
	assert.Equal(t, 120.0, px)

	// The calendar is fixed at load time; the new March row is ignored.
	assert.Equal(t, 2, md.Calendar().Len())
	_, err = md.Price(domain.MustParseDate("2024-03-29"), "AAA")
	assert.ErrorIs(t, err, domain.ErrDataUnavailable)

	assert.NotEqual(t, before, md.Checksum())
}

func TestReload_NoChanges(t *testing.T) {
	path := writeFile(t, sampleCSV)
	md, err := marketdata.Load(path)
	require.NoError(t, err)

	changed, err := md.Reload(path)
	require.NoError(t, err)
	assert.Zero(t, changed)
	assert.Empty(t, md.ChangedDates())
}
