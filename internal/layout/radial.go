// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

package layout

import (
	"math"
	"math/rand/v2"
	"sync"

	"github.com/tomtom215/horizon/internal/cache"
	"github.com/tomtom215/horizon/internal/graph"
)

// Placement tuning constants.
const (
	angleJitter    = 0.18 // radians, base angle perturbation
	positionJitter = 18.0 // world units, applied to x and y alike
	angleAdvance   = 0.35 // fraction of the angle step per failed attempt
	radiusGrowth   = 12.0 // world units per failed attempt
	overflowRadius = 40.0 // fallback distance beyond MaxRadius
)

// Config controls the ring the engine places labels on.
type Config struct {
	MinRadius     float64
	MaxRadius     float64
	MinSeparation float64
	Attempts      int
}

// DefaultConfig returns the default ring: radius 240..360, 110 apart, 12 tries.
func DefaultConfig() Config {
	return Config{
		MinRadius:     240,
		MaxRadius:     360,
		MinSeparation: 110,
		Attempts:      12,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MinRadius <= 0 {
		c.MinRadius = d.MinRadius
	}
	if c.MaxRadius < c.MinRadius {
		c.MaxRadius = c.MinRadius
	}
	if c.MinSeparation < 0 {
		c.MinSeparation = 0
	}
	if c.Attempts <= 0 {
		c.Attempts = d.Attempts
	}
	return c
}

// Request describes one batch insertion.
type Request struct {
	Labels    []string
	Center    graph.Point
	Obstacles []graph.Point

	// KnownIDs are ids already in use; generated ids never collide with them.
	KnownIDs []string
}

// Placement is a positioned label with its generated id.
type Placement struct {
	ID    string
	Label string
	X     float64
	Y     float64

	// Overflow is set when no attempt met the separation and the label was
	// put on the fallback ring.
	Overflow bool
}

// Node converts the placement into a graph node.
func (p Placement) Node() graph.Node {
	return graph.Node{ID: p.ID, Label: p.Label, X: p.X, Y: p.Y}
}

// Engine places new labels on a jittered ring around a center point while
// keeping them apart from each other and from existing nodes.
//
// Each label gets a bounded number of attempts; when all fail the label is
// put further out on its base angle. Every label always gets a position.
type Engine struct {
	cfg Config

	mu  sync.Mutex
	rng *rand.Rand
}

// NewEngine creates an engine. A nil rng uses a randomly seeded source.
func NewEngine(cfg Config, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Engine{cfg: cfg.withDefaults(), rng: rng}
}

// Config returns the effective configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

func (e *Engine) between(lo, hi float64) float64 {
	return lo + e.rng.Float64()*(hi-lo)
}

// Place computes one placement per distinct non-empty label in req.
func (e *Engine) Place(req Request) []Placement {
	e.mu.Lock()
	defer e.mu.Unlock()

	labels := graph.UniqueLabels(req.Labels)
	if len(labels) == 0 {
		return []Placement{}
	}

	cfg := e.cfg
	cellSize := cfg.MinSeparation
	if cellSize <= 0 {
		cellSize = cfg.MaxRadius
	}
	occupied := cache.NewPlaneGrid(cellSize)
	for _, p := range req.Obstacles {
		occupied.Insert("", p.X, p.Y)
	}

	taken := make(map[string]struct{}, len(req.KnownIDs)+len(labels))
	for _, id := range req.KnownIDs {
		taken[id] = struct{}{}
	}

	step := 2 * math.Pi / float64(len(labels))
	out := make([]Placement, 0, len(labels))

	for i, label := range labels {
		base := step*float64(i) + e.between(-angleJitter, angleJitter)
		angle := base
		radius := e.between(cfg.MinRadius, cfg.MaxRadius)

		x, y, ok := 0.0, 0.0, false
		for attempt := 0; attempt < cfg.Attempts; attempt++ {
			jitter := e.between(-positionJitter, positionJitter)
			x = req.Center.X + math.Cos(angle)*radius + jitter
			y = req.Center.Y + math.Sin(angle)*radius + jitter
			if !occupied.AnyWithin(x, y, cfg.MinSeparation) {
				ok = true
				break
			}
			angle += step * angleAdvance
			radius += radiusGrowth
		}
		if !ok {
			x = req.Center.X + math.Cos(base)*(cfg.MaxRadius+overflowRadius)
			y = req.Center.Y + math.Sin(base)*(cfg.MaxRadius+overflowRadius)
		}

		occupied.Insert("", x, y)
		out = append(out, Placement{
			ID:       UniqueID(label, taken),
			Label:    label,
			X:        x,
			Y:        y,
			Overflow: !ok,
		})
	}
	return out
}
