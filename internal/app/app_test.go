package app_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.ridx.dev/ridx/internal/app"
	"go.ridx.dev/ridx/internal/core/domain"
	"go.ridx.dev/ridx/internal/core/ports"
	"go.ridx.dev/ridx/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const testPrices = `date,ticker,close
2024-01-31,AAA,100.0
2024-01-31,BBB,200.0
2024-02-29,AAA,110.0
2024-02-29,BBB,190.0
2024-03-29,AAA,105.0
2024-03-29,BBB,195.0
`

// testConfig writes a price file into dir and returns a config computing a
// two-ticker equal-weight index into dir/index.csv.
func testConfig(t *testing.T, dir string) *ports.Config {
	t.Helper()

	pricesPath := filepath.Join(dir, "prices.csv")
	require.NoError(t, os.WriteFile(pricesPath, []byte(testPrices), 0o644))

	return &ports.Config{
		Root:         dir,
		PricesPath:   pricesPath,
		StrategyType: "equal-weight",
		Basket:       []string{"AAA", "BBB"},
		SeedDate:     domain.MustParseDate("2024-01-31"),
		InitialLevel: 100.0,
		OutputPath:   filepath.Join(dir, "index.csv"),
		OutputFormat: "csv",
		Parallelism:  2,
	}
}

// newMockLogger returns a logger mock that tolerates any informational
// output. Tests that care about errors add explicit Error expectations.
func newMockLogger(ctrl *gomock.Controller) *mocks.MockLogger {
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().SetJSON(gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()
	return log
}

func TestApp_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	cfg := testConfig(t, dir)

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLoader.EXPECT().Load(gomock.Any()).Return(cfg, nil)

	a := app.New(mockLoader, mocks.NewMockWatcher(ctrl), newMockLogger(ctrl))
	require.NoError(t, a.Run(t.Context(), app.RunOptions{}))

	out, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "date,index_level,portfolio_return", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2024-01-31,100.000000,"))
	assert.True(t, strings.HasPrefix(lines[2], "2024-02-29,"))
	assert.True(t, strings.HasPrefix(lines[3], "2024-03-29,"))
}

func TestApp_Run_RangeOverride(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	cfg := testConfig(t, dir)

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLoader.EXPECT().Load(gomock.Any()).Return(cfg, nil)

	a := app.New(mockLoader, mocks.NewMockWatcher(ctrl), newMockLogger(ctrl))
	opts := app.RunOptions{From: "2024-02-29", To: "2024-02-29"}
	require.NoError(t, a.Run(t.Context(), opts))

	out, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "2024-02-29,"))
}

func TestApp_Run_OutputOverride(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	cfg := testConfig(t, dir)

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLoader.EXPECT().Load(gomock.Any()).Return(cfg, nil)

	a := app.New(mockLoader, mocks.NewMockWatcher(ctrl), newMockLogger(ctrl))
	override := filepath.Join(dir, "custom.csv")
	require.NoError(t, a.Run(t.Context(), app.RunOptions{Output: override}))

	assert.NoFileExists(t, cfg.OutputPath)
	assert.FileExists(t, override)
}

func TestApp_Run_ConfigDirOverride(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	cfg := testConfig(t, dir)

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLoader.EXPECT().Load(dir).Return(cfg, nil)

	a := app.New(mockLoader, mocks.NewMockWatcher(ctrl), newMockLogger(ctrl))
	require.NoError(t, a.Run(t.Context(), app.RunOptions{Config: dir}))
}

func TestApp_Run_ConfigLoaderError(t *testing.T) {
	ctrl := gomock.NewController(t)

	loadErr := errors.New("no config here")
	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLoader.EXPECT().Load(gomock.Any()).Return(nil, loadErr)

	a := app.New(mockLoader, mocks.NewMockWatcher(ctrl), newMockLogger(ctrl))
	err := a.Run(t.Context(), app.RunOptions{})
	assert.ErrorIs(t, err, loadErr)
}

func TestApp_Run_UnknownStrategy(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	cfg := testConfig(t, dir)
	cfg.StrategyType = "momentum"

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLoader.EXPECT().Load(gomock.Any()).Return(cfg, nil)

	a := app.New(mockLoader, mocks.NewMockWatcher(ctrl), newMockLogger(ctrl))
	err := a.Run(t.Context(), app.RunOptions{})
	assert.ErrorIs(t, err, domain.ErrUnknownStrategy)
}

func TestApp_Run_UnknownFormat(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	cfg := testConfig(t, dir)

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLoader.EXPECT().Load(gomock.Any()).Return(cfg, nil)

	a := app.New(mockLoader, mocks.NewMockWatcher(ctrl), newMockLogger(ctrl))
	err := a.Run(t.Context(), app.RunOptions{Format: "parquet"})
	assert.ErrorIs(t, err, domain.ErrUnknownSinkFormat)
}

func TestApp_Run_EmptyRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	cfg := testConfig(t, dir)

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLoader.EXPECT().Load(gomock.Any()).Return(cfg, nil)

	// Mid-month window with no rebalance dates inside it.
	a := app.New(mockLoader, mocks.NewMockWatcher(ctrl), newMockLogger(ctrl))
	err := a.Run(t.Context(), app.RunOptions{From: "2024-02-01", To: "2024-02-15"})
	assert.ErrorIs(t, err, domain.ErrEmptySchedule)
}

func TestApp_Run_InvalidFromDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	cfg := testConfig(t, dir)

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLoader.EXPECT().Load(gomock.Any()).Return(cfg, nil)

	a := app.New(mockLoader, mocks.NewMockWatcher(ctrl), newMockLogger(ctrl))
	err := a.Run(t.Context(), app.RunOptions{From: "31-01-2024"})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestApp_Watch_RecomputesOnChange(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	cfg := testConfig(t, dir)

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLoader.EXPECT().Load(gomock.Any()).Return(cfg, nil)

	revised := strings.ReplaceAll(testPrices, "105.0", "120.0")

	mockWatcher := mocks.NewMockWatcher(ctrl)
	mockWatcher.EXPECT().Start(gomock.Any(), cfg.PricesPath).Return(nil)
	mockWatcher.EXPECT().Stop().Return(nil)
	mockWatcher.EXPECT().Events().Return(func(yield func(ports.WatchEvent) bool) {
		// The file changes on disk before the event is delivered.
		if err := os.WriteFile(cfg.PricesPath, []byte(revised), 0o644); err != nil {
			return
		}
		yield(ports.WatchEvent{Path: cfg.PricesPath})
	})

	a := app.New(mockLoader, mockWatcher, newMockLogger(ctrl))
	require.NoError(t, a.Watch(t.Context(), app.RunOptions{}))

	out, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)

	// 2024-03-29 reflects the revised AAA close of 120.0:
	// r = 0.5*(120/110) + 0.5*(195/190) - 1, on the 2024-02-29 level.
	assert.Contains(t, string(out), "2024-03-29,108.507775,")
}

func TestApp_Watch_TransientErrorKeepsWatching(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	cfg := testConfig(t, dir)

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLoader.EXPECT().Load(gomock.Any()).Return(cfg, nil)

	revised := strings.ReplaceAll(testPrices, "105.0", "120.0")

	mockWatcher := mocks.NewMockWatcher(ctrl)
	mockWatcher.EXPECT().Start(gomock.Any(), cfg.PricesPath).Return(nil)
	mockWatcher.EXPECT().Stop().Return(nil)
	mockWatcher.EXPECT().Events().Return(func(yield func(ports.WatchEvent) bool) {
		// First save is half-written, the second is complete.
		if err := os.WriteFile(cfg.PricesPath, []byte("date,ticker,close\ngarbage"), 0o644); err != nil {
			return
		}
		if !yield(ports.WatchEvent{Path: cfg.PricesPath}) {
			return
		}
		if err := os.WriteFile(cfg.PricesPath, []byte(revised), 0o644); err != nil {
			return
		}
		yield(ports.WatchEvent{Path: cfg.PricesPath})
	})

	log := newMockLogger(ctrl)
	log.EXPECT().Error(gomock.Any()).Times(1)

	a := app.New(mockLoader, mockWatcher, log)
	require.NoError(t, a.Watch(t.Context(), app.RunOptions{}))

	out, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)
	assert.Contains(t, string(out), "2024-03-29,108.507775,")
}
