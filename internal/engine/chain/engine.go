// Package chain drives the recursive base-case/inductive-case protocol over
// the trading calendar: the state for a date is the strategy's step function
// applied to the previous date's state and the market data at both dates,
// memoized in a dependency-tracked store.
package chain

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"go.ridx.dev/ridx/internal/core/domain"
	"go.ridx.dev/ridx/internal/core/ports"
	"go.ridx.dev/ridx/internal/engine/locks"
	"go.ridx.dev/ridx/internal/engine/store"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Engine computes index states along the calendar chain. S is the strategy
// state type; the engine never inspects it.
type Engine[S any] struct {
	strategy ports.Strategy[S]
	data     ports.MarketData
	store    *store.Store[S]
	locks    *locks.Manager // nil for single-threaded use
	calendar domain.Schedule
	tracer   ports.Tracer
	limit    int
}

// Option configures an Engine.
type Option[S any] func(*Engine[S])

// WithTracer sets the tracer used for compute spans.
func WithTracer[S any](t ports.Tracer) Option[S] {
	return func(e *Engine[S]) { e.tracer = t }
}

// WithParallelism caps the number of dates computed concurrently by
// ComputeRange. Values < 1 fall back to NumCPU.
func WithParallelism[S any](n int) Option[S] {
	return func(e *Engine[S]) { e.limit = n }
}

// New creates an Engine and subscribes the store's range invalidation to the
// data source's update notifications: a change at date X sweeps every cached
// entry at or after X. A nil lock manager disables synchronization for
// single-threaded use.
func New[S any](
	strategy ports.Strategy[S],
	data ports.MarketData,
	st *store.Store[S],
	manager *locks.Manager,
	opts ...Option[S],
) *Engine[S] {
	e := &Engine[S]{
		strategy: strategy,
		data:     data,
		store:    st,
		locks:    manager,
		calendar: data.Calendar(),
		tracer:   noopTracer{},
		limit:    runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.limit < 1 {
		e.limit = runtime.NumCPU()
	}
	data.OnUpdate(st.InvalidateFrom)
	return e
}

// Compute returns the index state for d, computing and caching every
// missing chain hop from the nearest cached date (or the seed) forward.
//
// Chains can span hundreds of dates, so the walk is an explicit worklist
// rather than call-stack recursion: walk backward collecting uncached dates,
// then fold forward one hop at a time. Each hop runs under that date's
// exclusive lock, so concurrent calls for the same date execute the step
// function at most once, and at most one date lock is held at any moment.
func (e *Engine[S]) Compute(ctx context.Context, d domain.Date) (S, error) {
	ctx, span := e.tracer.Start(ctx, "compute "+d.String())
	defer span.End()

	state, err := e.compute(ctx, d)
	if err != nil {
		span.RecordError(err)
		var zero S
		return zero, errors.Join(domain.ErrComputeFailed, zerr.Wrap(err, "computing "+d.String()))
	}
	return state, nil
}

func (e *Engine[S]) compute(ctx context.Context, target domain.Date) (S, error) {
	var zero S

	if state, ok := e.storeGet(target); ok {
		return state, nil
	}

	// Walk backward to the first cached date or the seed, collecting the
	// dates that still need computing (in descending order).
	seed := e.strategy.SeedDate()
	pending := []domain.Date{target}
	var prevState S
	var haveAnchor bool

	for cur := target; cur != seed; {
		prev, err := e.calendar.Prev(cur)
		if err != nil {
			// target precedes the start of the valid domain
			return zero, err
		}
		if state, ok := e.storeGet(prev); ok {
			prevState = state
			haveAnchor = true
			break
		}
		pending = append(pending, prev)
		cur = prev
	}

	// Fold forward. The first pending date is either the seed (base case)
	// or the successor of the cached anchor.
	for i := len(pending) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			// Cancellation is only observed between hops, never while a
			// date lock is held.
			return zero, err
		}

		d := pending[i]
		if d == seed && !haveAnchor {
			state, err := e.computeSeed()
			if err != nil {
				return zero, err
			}
			prevState = state
			continue
		}

		state, err := e.computeHop(d, prevState)
		if err != nil {
			return zero, err
		}
		prevState = state
	}

	return prevState, nil
}

// computeSeed synthesizes the seed state under the seed date's lock. It
// performs no market data reads and stores an empty dependency set.
func (e *Engine[S]) computeSeed() (S, error) {
	seed := e.strategy.SeedDate()
	var state S
	err := e.withDateLock(seed, func() error {
		if cached, ok := e.store.GetLocked(seed); ok {
			state = cached
			return nil
		}
		state = e.strategy.SeedState()
		e.store.PutLocked(seed, state, domain.NewDependencySet())
		return nil
	})
	return state, err
}

// computeHop computes the state for d from prevState under d's lock. A cache
// hit (another goroutine got there first) wins over recomputation. A failed
// step stores nothing.
func (e *Engine[S]) computeHop(d domain.Date, prevState S) (S, error) {
	var state S
	err := e.withDateLock(d, func() error {
		if cached, ok := e.store.GetLocked(d); ok {
			state = cached
			return nil
		}

		prev, err := e.calendar.Prev(d)
		if err != nil {
			return err
		}

		rec := newRecorder(e.data)
		next, err := e.strategy.Step(rec, d, prev, prevState)
		if err != nil {
			return err
		}

		e.store.PutLocked(d, next, rec.deps)
		state = next
		return nil
	})
	return state, err
}

// ComputeRange computes every calendar date in [from, to] and returns the
// ordered series. A zero from starts at the seed date. Dates are computed in
// parallel up to the configured limit; any single failure aborts the whole
// range.
func (e *Engine[S]) ComputeRange(ctx context.Context, from, to domain.Date) (*Series[S], error) {
	ctx, span := e.tracer.Start(ctx, "compute range")
	defer span.End()

	if from.IsZero() {
		from = e.strategy.SeedDate()
	}
	span.SetAttribute("from", from.String())
	span.SetAttribute("to", to.String())

	sched := e.calendar.Range(from, to)

	var mu sync.Mutex
	states := make(map[domain.Date]S, sched.Len())

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.limit)
	for d := range sched.All() {
		g.Go(func() error {
			state, err := e.compute(gctx, d)
			if err != nil {
				return errors.Join(domain.ErrComputeFailed, zerr.Wrap(err, "computing "+d.String()))
			}
			mu.Lock()
			states[d] = state
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	return &Series[S]{schedule: sched, states: states}, nil
}

// InvalidateFrom removes every cached entry at or after d. Normally driven
// by the data source's update notifications; exposed for callers that track
// changes out of band.
func (e *Engine[S]) InvalidateFrom(d domain.Date) {
	e.store.InvalidateFrom(d)
}

// Clear drops all cached states.
func (e *Engine[S]) Clear() {
	e.store.Clear()
}

// CachedCount reports how many states are currently cached.
func (e *Engine[S]) CachedCount() int {
	return e.store.Len()
}

// storeGet reads the cache under the date's lock when a manager is
// configured.
func (e *Engine[S]) storeGet(d domain.Date) (S, bool) {
	if e.locks == nil {
		return e.store.GetLocked(d)
	}
	var state S
	var ok bool
	_ = e.locks.WithDateLock(d, func() error {
		state, ok = e.store.GetLocked(d)
		return nil
	})
	return state, ok
}

func (e *Engine[S]) withDateLock(d domain.Date, fn func() error) error {
	if e.locks == nil {
		return fn()
	}
	return e.locks.WithDateLock(d, fn)
}

// noopTracer is the default tracer when none is configured.
type noopTracer struct{}

type noopSpan struct{}

func (noopTracer) Start(ctx context.Context, _ string) (context.Context, ports.Span) {
	return ctx, noopSpan{}
}

func (noopSpan) End()                    {}
func (noopSpan) RecordError(error)       {}
func (noopSpan) SetAttribute(string, any) {}
