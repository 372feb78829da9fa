// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

// Package resolve derives the edge set of a world from its labels.
//
// A Resolver debounces node-set changes, asks an EdgeSource for a semantic
// edge proposal and turns it into live edges with graph.Resolve, which falls
// back to deterministic synthesis when the proposal is unusable. Every
// Schedule starts a new generation and cancels the previous request; results
// from a superseded generation are dropped and never reach the apply
// callback.
package resolve

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/horizon/internal/graph"
	"github.com/tomtom215/horizon/internal/logging"
	"github.com/tomtom215/horizon/internal/metrics"
)

// Defaults for interactive use.
const (
	DefaultDebounce        = 550 * time.Millisecond
	DefaultMaxEdgesPerNode = 2
)

// EdgeSource proposes label edges for a label set.
type EdgeSource interface {
	FetchEdges(ctx context.Context, labels []string, maxEdgesPerNode int) ([]graph.LabelEdge, error)
}

// EdgeSourceFunc adapts a function to EdgeSource.
type EdgeSourceFunc func(ctx context.Context, labels []string, maxEdgesPerNode int) ([]graph.LabelEdge, error)

// FetchEdges implements EdgeSource.
func (f EdgeSourceFunc) FetchEdges(ctx context.Context, labels []string, maxEdgesPerNode int) ([]graph.LabelEdge, error) {
	return f(ctx, labels, maxEdgesPerNode)
}

// Config controls debouncing and the per-node edge budget.
type Config struct {
	Debounce        time.Duration
	MaxEdgesPerNode int
}

// Result is the outcome of one resolution cycle.
type Result struct {
	Generation uint64
	Edges      []graph.Edge
	// Fallback is set when the edges were synthesized locally.
	Fallback bool
	// Stale is set when a newer generation superseded this one. Stale
	// results are only ever returned by ResolveNow, never applied.
	Stale bool
	// Err is the edge source failure that caused a fallback, if any.
	Err error
}

// Resolver runs debounced, generation-tokened edge resolution.
//
// apply runs on a timer goroutine without the resolver lock held. A consumer
// that guards its state with its own lock should confirm Current(res.Generation)
// under that lock before applying, since a Schedule may land in between.
type Resolver struct {
	src   EdgeSource
	cfg   Config
	apply func(Result)
	base  context.Context
	log   zerolog.Logger

	mu     sync.Mutex
	gen    uint64
	timer  *time.Timer
	cancel context.CancelFunc
	closed bool
	wg     sync.WaitGroup
}

// New creates a resolver. apply may be nil.
func New(src EdgeSource, cfg Config, apply func(Result)) *Resolver {
	if cfg.Debounce < 0 {
		cfg.Debounce = 0
	}
	if cfg.MaxEdgesPerNode <= 0 {
		cfg.MaxEdgesPerNode = DefaultMaxEdgesPerNode
	}
	cfg.MaxEdgesPerNode = max(graph.ClampEdgesPerNode(cfg.MaxEdgesPerNode), graph.MinPathEdgesPerNode)
	if apply == nil {
		apply = func(Result) {}
	}
	return &Resolver{
		src:   src,
		cfg:   cfg,
		apply: apply,
		base:  context.Background(),
		log:   logging.WithComponent("resolve"),
	}
}

// Generation returns the current generation.
func (r *Resolver) Generation() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gen
}

// Current reports whether gen is still the newest generation.
func (r *Resolver) Current(gen uint64) bool {
	return r.Generation() == gen
}

// Schedule starts a new generation for nodes and resolves it after the
// debounce period. Any pending or in-flight cycle is superseded. It returns
// the new generation, or 0 after Close.
func (r *Resolver) Schedule(nodes []graph.Node) uint64 {
	snapshot := append([]graph.Node(nil), nodes...)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return 0
	}
	ctx, gen := r.supersedeLocked(r.base)

	r.wg.Add(1)
	r.timer = time.AfterFunc(r.cfg.Debounce, func() {
		defer r.wg.Done()
		res := r.run(ctx, gen, snapshot)
		if !res.Stale {
			r.apply(res)
		}
	})
	return gen
}

// ResolveNow supersedes pending work and resolves nodes synchronously. The
// result is applied unless a newer generation started meanwhile.
func (r *Resolver) ResolveNow(ctx context.Context, nodes []graph.Node) Result {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return Result{Stale: true}
	}
	runCtx, gen := r.supersedeLocked(ctx)
	r.mu.Unlock()

	res := r.run(runCtx, gen, nodes)
	if !res.Stale {
		r.apply(res)
	}
	return res
}

// Cancel supersedes pending and in-flight work without starting a new cycle.
func (r *Resolver) Cancel() {
	r.mu.Lock()
	r.supersedeLocked(r.base)
	r.mu.Unlock()
}

// Close cancels everything and waits for running callbacks to return.
func (r *Resolver) Close() {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		r.supersedeLocked(r.base)
		r.cancel()
	}
	r.mu.Unlock()
	r.wg.Wait()
}

// supersedeLocked bumps the generation, stops the pending timer and cancels
// the in-flight request. It returns a context for the new generation derived
// from parent.
func (r *Resolver) supersedeLocked(parent context.Context) (context.Context, uint64) {
	r.gen++
	if r.timer != nil {
		if r.timer.Stop() {
			r.wg.Done()
		}
		r.timer = nil
	}
	if r.cancel != nil {
		r.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	r.cancel = cancel
	return ctx, r.gen
}

func (r *Resolver) run(ctx context.Context, gen uint64, nodes []graph.Node) Result {
	start := time.Now()
	ctx = logging.ContextWithNewCorrelationID(ctx)
	log := r.log.With().Uint64("generation", gen).Logger()

	labels := graph.Labels(nodes)
	res := Result{Generation: gen}

	var remote []graph.LabelEdge
	if len(labels) >= 2 {
		remote, res.Err = r.src.FetchEdges(ctx, labels, r.cfg.MaxEdgesPerNode)
	}

	if ctx.Err() != nil || !r.Current(gen) {
		res.Stale = true
		log.Debug().Msg("edge result superseded")
		metrics.RecordEdgeResolution("stale", 0, time.Since(start))
		return res
	}

	res.Edges, res.Fallback = graph.Resolve(remote, nodes, r.cfg.MaxEdgesPerNode)

	outcome := "remote"
	if res.Fallback {
		outcome = "fallback"
		if len(labels) >= 2 {
			ev := log.Info()
			if res.Err != nil {
				ev = log.Warn().Err(res.Err)
			}
			ev.Int("labels", len(labels)).Int("edges", len(res.Edges)).Msg("using fallback edges")
		}
	}
	metrics.RecordEdgeResolution(outcome, len(res.Edges), time.Since(start))
	return res
}
