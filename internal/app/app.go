// Package app implements the application layer for ridx.
package app

import (
	"context"
	"os"
	"time"

	"go.ridx.dev/ridx/internal/adapters/detector"
	"go.ridx.dev/ridx/internal/adapters/marketdata"
	"go.ridx.dev/ridx/internal/adapters/sink"
	"go.ridx.dev/ridx/internal/adapters/telemetry"
	"go.ridx.dev/ridx/internal/core/domain"
	"go.ridx.dev/ridx/internal/core/ports"
	"go.ridx.dev/ridx/internal/engine/chain"
	"go.ridx.dev/ridx/internal/engine/locks"
	"go.ridx.dev/ridx/internal/engine/store"
	"go.ridx.dev/ridx/internal/strategy/equalweight"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	watcher      ports.Watcher
	logger       ports.Logger
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, w ports.Watcher, log ports.Logger) *App {
	return &App{
		configLoader: loader,
		watcher:      w,
		logger:       log,
	}
}

// RunOptions configuration for the Run and Watch methods.
type RunOptions struct {
	// Config is the directory the ridx.yaml search starts from. Empty means
	// the working directory.
	Config string

	// From and To bound the computed date range (YYYY-MM-DD). An empty From
	// starts at the strategy's seed date, an empty To ends at the last
	// calendar date.
	From string
	To   string

	// Output and Format override the configured sink when non-empty.
	Output string
	Format string

	// Parallelism overrides the configured concurrency when positive.
	Parallelism int

	// Trace logs span names and durations.
	Trace bool

	// OutputMode selects log rendering: auto, styled, or json.
	OutputMode string
}

// Run computes the index series once and writes it to the configured sink.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	start := time.Now()

	session, err := a.setup(ctx, opts)
	if err != nil {
		return err
	}
	defer session.close(ctx)

	samples, err := session.computeSamples(ctx)
	if err != nil {
		return err
	}
	if err := session.writeSamples(samples); err != nil {
		return err
	}

	a.logger.Info("index computed",
		"dates", len(samples),
		"level", samples[len(samples)-1].Level,
		"output", session.outputPath,
		"cached", session.engine.CachedCount(),
		"duration", time.Since(start).Round(time.Millisecond).String(),
	)
	return nil
}

// Watch computes the index series, then recomputes and rewrites it whenever
// the price file changes on disk. It blocks until ctx is canceled.
func (a *App) Watch(ctx context.Context, opts RunOptions) error {
	session, err := a.setup(ctx, opts)
	if err != nil {
		return err
	}
	defer session.close(ctx)

	samples, err := session.computeSamples(ctx)
	if err != nil {
		return err
	}
	if err := session.writeSamples(samples); err != nil {
		return err
	}
	a.logger.Info("index computed, watching for changes",
		"dates", len(samples),
		"prices", session.cfg.PricesPath,
	)

	if err := a.watcher.Start(ctx, session.cfg.PricesPath); err != nil {
		return err
	}
	defer func() { _ = a.watcher.Stop() }()

	for event := range a.watcher.Events() {
		if err := a.recompute(ctx, session, event.Path); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			// Transient failures (a half-written file, a removed ticker that
			// reappears on the next save) must not end the watch session.
			a.logger.Error(err)
		}
	}
	return nil
}

// recompute reloads prices from path and recomputes everything the reload
// invalidated. The change registry is cleared only after a successful write,
// so a failed recompute leaves the affected dates marked stale.
func (a *App) recompute(ctx context.Context, s *session, path string) error {
	changed, err := s.data.Reload(path)
	if err != nil {
		return err
	}
	if changed == 0 {
		return nil
	}
	a.logger.Info("prices changed", "updates", changed)

	samples, err := s.computeSamples(ctx)
	if err != nil {
		return err
	}
	if err := s.writeSamples(samples); err != nil {
		return err
	}
	s.data.ClearChangedDates()

	a.logger.Info("index recomputed",
		"dates", len(samples),
		"level", samples[len(samples)-1].Level,
	)
	return nil
}

// session holds everything a single compute run or watch loop needs.
type session struct {
	cfg        *ports.Config
	data       *marketdata.MarketData
	engine     *chain.Engine[equalweight.State]
	sink       ports.ResultSink
	outputPath string
	from, to   domain.Date
	shutdown   func(context.Context) error
}

func (a *App) setup(ctx context.Context, opts RunOptions) (*session, error) {
	mode := detector.ResolveMode(detector.DetectEnvironment(), opts.OutputMode)
	a.logger.SetJSON(mode == detector.ModeJSON)

	cwd := opts.Config
	if cwd == "" {
		var err error
		if cwd, err = os.Getwd(); err != nil {
			return nil, zerr.Wrap(err, "resolving working directory")
		}
	}
	cfg, err := a.configLoader.Load(cwd)
	if err != nil {
		return nil, err
	}
	if opts.Parallelism > 0 {
		cfg.Parallelism = opts.Parallelism
	}

	data, err := marketdata.Load(cfg.PricesPath)
	if err != nil {
		return nil, err
	}

	from, to, err := resolveRange(opts, data.Calendar())
	if err != nil {
		return nil, err
	}

	shutdown := telemetry.Setup(a.logger, opts.Trace)
	engine, err := buildEngine(cfg, data)
	if err != nil {
		_ = shutdown(ctx)
		return nil, err
	}

	outputPath := cfg.OutputPath
	if opts.Output != "" {
		outputPath = opts.Output
	}
	format := cfg.OutputFormat
	if opts.Format != "" {
		format = opts.Format
	}
	snk, err := sink.New(format, outputPath)
	if err != nil {
		_ = shutdown(ctx)
		return nil, err
	}

	return &session{
		cfg:        cfg,
		data:       data,
		engine:     engine,
		sink:       snk,
		outputPath: outputPath,
		from:       from,
		to:         to,
		shutdown:   shutdown,
	}, nil
}

func (s *session) close(ctx context.Context) {
	_ = s.sink.Close()
	_ = s.shutdown(ctx)
}

func (s *session) computeSamples(ctx context.Context) ([]domain.Sample, error) {
	series, err := s.engine.ComputeRange(ctx, s.from, s.to)
	if err != nil {
		return nil, err
	}
	samples := make([]domain.Sample, 0, series.Len())
	for d, state := range series.All() {
		samples = append(samples, domain.Sample{
			Date:   d,
			Level:  state.IndexLevel,
			Return: state.PortfolioReturn,
		})
	}
	if len(samples) == 0 {
		err := zerr.Wrap(domain.ErrEmptySchedule, "no rebalance dates in range")
		err = zerr.With(err, "from", s.from.String())
		return nil, zerr.With(err, "to", s.to.String())
	}
	return samples, nil
}

func (s *session) writeSamples(samples []domain.Sample) error {
	return s.sink.Write(samples)
}

// buildEngine assembles the strategy, lock manager, store and chain engine
// for the configured strategy type.
func buildEngine(cfg *ports.Config, data *marketdata.MarketData) (*chain.Engine[equalweight.State], error) {
	if cfg.StrategyType != "equal-weight" {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownStrategy, "assembling engine"), "strategy", cfg.StrategyType)
	}

	strat, err := equalweight.New(cfg.Basket, cfg.SeedDate, data.Calendar(), cfg.InitialLevel)
	if err != nil {
		return nil, err
	}

	manager := locks.NewManager()
	st := store.New[equalweight.State](data, manager)
	return chain.New[equalweight.State](strat, data, st, manager,
		chain.WithTracer[equalweight.State](telemetry.NewOTelTracer("ridx")),
		chain.WithParallelism[equalweight.State](cfg.Parallelism),
	), nil
}

func resolveRange(opts RunOptions, calendar domain.Schedule) (domain.Date, domain.Date, error) {
	var from, to domain.Date
	var err error

	if opts.From != "" {
		if from, err = domain.ParseDate(opts.From); err != nil {
			return from, to, err
		}
	}
	if opts.To != "" {
		if to, err = domain.ParseDate(opts.To); err != nil {
			return from, to, err
		}
	} else {
		if to, err = calendar.Last(); err != nil {
			return from, to, err
		}
	}
	return from, to, nil
}
