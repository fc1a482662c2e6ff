package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kyswtn/linkprobe/internal/model"
)

// DefaultConcurrency is the number of simultaneously in-flight probes
// used when no limit is configured.
const DefaultConcurrency = 10

// Prober performs a single existence check against one address.
// Implementations must be safe for concurrent use and must return an
// Outcome for any input rather than failing.
type Prober interface {
	Probe(ctx context.Context, address string) model.Outcome
}

// Sink receives each outcome exactly once, in completion order.
// The engine serializes calls, so implementations need no locking of
// their own.
type Sink func(model.Outcome)

// Engine runs probes over a full address set with bounded concurrency.
type Engine struct {
	// prober performs the individual checks.
	prober Prober

	// concurrency bounds the number of in-flight probes.
	concurrency int

	// logger is used for run-level logging.
	logger *slog.Logger

	// mu serializes sink delivery and tally updates. This is the single
	// shared-mutation point of a run; probe tasks share no other state.
	mu sync.Mutex
}

// Option configures an Engine.
type Option func(*Engine)

// WithConcurrency sets the maximum number of in-flight probes.
// Non-positive values are ignored and the default is kept.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates an Engine that dispatches probes through the given prober.
func New(prober Prober, opts ...Option) *Engine {
	e := &Engine{
		prober:      prober,
		concurrency: DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = slog.Default()
	}

	return e
}

// Run probes every address and returns the final tally once each address
// has produced exactly one outcome. Outcomes are delivered to sink as
// they complete; sink may be nil when only the tally is wanted. An empty
// address set returns an empty tally without invoking the sink.
func (e *Engine) Run(ctx context.Context, addresses []string, sink Sink) model.Tally {
	var tally model.Tally
	if len(addresses) == 0 {
		return tally
	}

	e.logger.Info("starting run",
		"addresses", len(addresses),
		"concurrency", e.concurrency,
	)
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for _, address := range addresses {
		g.Go(func() error {
			outcome := e.probeOne(ctx, address)

			e.mu.Lock()
			if sink != nil {
				sink(outcome)
			}
			tally.Add(outcome.Status)
			e.mu.Unlock()

			// Probe failures are data, not errors. Returning nil keeps
			// the remaining tasks running.
			return nil
		})
	}

	// Tasks never return errors, so Wait only synchronizes completion.
	_ = g.Wait()

	e.logger.Info("run complete",
		"good", tally.Good,
		"bad", tally.Bad,
		"error", tally.Error,
		"elapsed", time.Since(start),
	)

	return tally
}

// probeOne runs a single probe, containing any panic from a faulty
// prober. A fault still yields exactly one outcome for the address, in
// the error bucket, so the run-level invariants hold.
func (e *Engine) probeOne(ctx context.Context, address string) (outcome model.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("probe task fault",
				"address", address,
				"fault", r,
			)
			outcome = model.Outcome{
				Address: address,
				Status:  model.StatusConnectionError,
				Code:    model.CodeConnectionError,
				Reason:  fmt.Sprintf("internal fault: %v", r),
			}
		}
	}()

	return e.prober.Probe(ctx, address)
}
