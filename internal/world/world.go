// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

// Package world owns the state of one interest canvas.
//
// A World is the only writer of the node list, the edge list, the viewport,
// the theme and the selection. Everything else (the CLI, a UI shell, tests)
// reads snapshots and sends mutations through World methods, which report
// validation failures as a Result instead of an error return.
//
// Every node-set change schedules a debounced edge resolution, and every
// state slice is written through to the store on change. Store failures are
// logged and never fail an operation.
package world

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tomtom215/horizon/internal/canvas"
	"github.com/tomtom215/horizon/internal/geometry"
	"github.com/tomtom215/horizon/internal/graph"
	"github.com/tomtom215/horizon/internal/layout"
	"github.com/tomtom215/horizon/internal/logging"
	"github.com/tomtom215/horizon/internal/models"
	"github.com/tomtom215/horizon/internal/resolve"
	"github.com/tomtom215/horizon/internal/store"
)

// ErrNoEdgeSource is reported when a world has no semantic edge service;
// resolution then always uses the deterministic fallback.
var ErrNoEdgeSource = errors.New("no edge source configured")

// Recommender suggests new interests and videos for a label set.
type Recommender interface {
	RecommendInterests(ctx context.Context, labels []string, limit int) ([]string, error)
	RecommendVideos(ctx context.Context, labels []string, limit int) (*models.VideosResponse, error)
}

// Options configures a World. Zero values select defaults.
type Options struct {
	Store       store.KV
	Edges       resolve.EdgeSource
	Recommender Recommender
	Layout      *layout.Engine

	Viewport        canvas.Config
	ViewportOptions []canvas.Option
	DragThreshold   float64
	Geometry        geometry.Options
	Resolve         resolve.Config

	// Theme is used when none is stored. Default Dark.
	Theme canvas.Theme
	// Seed replaces DefaultSeed for an empty store.
	Seed []graph.Node

	// OnEdges is called after a resolution result is applied.
	OnEdges func([]graph.Edge)
}

// World is the single owner of canvas state.
type World struct {
	mu       sync.Mutex
	nodes    []graph.Node
	edges    []graph.Edge
	theme    canvas.Theme
	selected string

	kv       store.KV
	rec      Recommender
	engine   *layout.Engine
	geo      geometry.Options
	vp       *canvas.Viewport
	input    *canvas.Interaction
	resolver *resolve.Resolver
	onEdges  func([]graph.Edge)
	log      zerolog.Logger
}

// DefaultSeed is the starter world shown when nothing is stored.
func DefaultSeed() []graph.Node {
	seed := []graph.Node{
		{ID: "tech", Label: "Технологии", X: -120, Y: -60},
		{ID: "design", Label: "Дизайн", X: 120, Y: -40},
		{ID: "philosophy", Label: "Философия", X: -60, Y: 120},
		{ID: "business", Label: "Бизнес", X: 180, Y: 140},
		{ID: "ai", Label: "AI", X: 20, Y: -160},
	}
	for i := range seed {
		seed[i].ColorIndex = canvas.HashColorIndex(seed[i].Label)
	}
	return seed
}

// Load builds a world from the store, seeding it when no nodes are stored.
// Stored edges are pruned against the loaded nodes; when none survive an
// edge resolution is scheduled.
func Load(ctx context.Context, opts Options) (*World, error) {
	if opts.Store == nil {
		opts.Store = store.NewMemoryStore()
	}
	if opts.Layout == nil {
		opts.Layout = layout.NewEngine(layout.DefaultConfig(), nil)
	}
	if opts.Geometry.NodeRadius <= 0 {
		opts.Geometry = geometry.DefaultOptions()
	}
	if opts.Theme == "" {
		opts.Theme = canvas.Dark
	}
	if opts.Resolve.Debounce == 0 {
		opts.Resolve.Debounce = resolve.DefaultDebounce
	}

	w := &World{
		kv:      opts.Store,
		rec:     opts.Recommender,
		engine:  opts.Layout,
		geo:     opts.Geometry,
		theme:   opts.Theme,
		onEdges: opts.OnEdges,
		log:     logging.WithComponent("world"),
	}

	if err := w.restore(ctx, opts.Seed); err != nil {
		return nil, err
	}

	vpOpts := append([]canvas.Option{}, opts.ViewportOptions...)
	w.vp = canvas.NewViewport(opts.Viewport, append(vpOpts, canvas.OnChange(w.saveView))...)
	if view, ok := w.loadView(ctx); ok {
		w.vp.SetTransform(view)
	}

	w.input = canvas.NewInteraction(w.vp, opts.DragThreshold, canvas.Handlers{
		OnMove: func(id string, pos graph.Point) { w.MoveNode(id, pos) },
		OnClick: func(id string) { w.SelectNode(id) },
	})

	src := opts.Edges
	if src == nil {
		src = resolve.EdgeSourceFunc(func(context.Context, []string, int) ([]graph.LabelEdge, error) {
			return nil, ErrNoEdgeSource
		})
	}
	w.resolver = resolve.New(src, opts.Resolve, w.applyEdges)

	w.mu.Lock()
	if len(w.edges) == 0 && len(w.nodes) >= 2 {
		w.resolver.Schedule(w.nodes)
	}
	w.mu.Unlock()
	return w, nil
}

// restore reads the persisted slices. Unreadable slices are logged and
// treated as absent.
func (w *World) restore(ctx context.Context, seed []graph.Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	nodes, ok, err := store.Load[[]graph.Node](ctx, w.kv, store.KeyNodes)
	if err != nil {
		w.log.Warn().Err(err).Msg("Stored nodes unreadable, using seed")
	}
	if !ok || err != nil || len(nodes) == 0 {
		if seed == nil {
			seed = DefaultSeed()
		}
		nodes = append([]graph.Node(nil), seed...)
		w.saveSlice(ctx, store.KeyNodes, nodes)
	}
	w.nodes = nodes

	edges, _, err := store.Load[[]graph.Edge](ctx, w.kv, store.KeyEdges)
	if err != nil {
		w.log.Warn().Err(err).Msg("Stored edges unreadable")
	}
	w.edges = graph.PruneEdges(edges, w.nodes)

	if raw, ok, err := store.Load[string](ctx, w.kv, store.KeyTheme); err == nil && ok {
		if theme, perr := canvas.ParseTheme(raw); perr == nil {
			w.theme = theme
		}
	}

	if id, ok, err := store.Load[string](ctx, w.kv, store.KeyLastSelected); err == nil && ok {
		if graph.FindNode(w.nodes, id) >= 0 {
			w.selected = id
		}
	}
	return nil
}

func (w *World) loadView(ctx context.Context) (canvas.Transform, bool) {
	view, ok, err := store.Load[canvas.Transform](ctx, w.kv, store.KeyView)
	if err != nil {
		w.log.Warn().Err(err).Msg("Stored view unreadable")
		return canvas.Identity, false
	}
	if !ok {
		return canvas.Identity, false
	}
	if view.Scale == 0 {
		view.Scale = 1
	}
	return view, true
}

func (w *World) saveView(t canvas.Transform) {
	w.saveSlice(context.Background(), store.KeyView, t)
}

func (w *World) saveSlice(ctx context.Context, key string, value any) {
	if err := store.Save(ctx, w.kv, key, value); err != nil {
		w.log.Warn().Err(err).Str("key", key).Msg("Failed to persist world state")
	}
}

// applyEdges installs a resolution result unless a newer generation began
// while it was in flight.
func (w *World) applyEdges(res resolve.Result) {
	w.mu.Lock()
	if !w.resolver.Current(res.Generation) {
		w.mu.Unlock()
		return
	}
	w.edges = graph.PruneEdges(res.Edges, w.nodes)
	edges := append([]graph.Edge(nil), w.edges...)
	w.mu.Unlock()

	w.saveSlice(context.Background(), store.KeyEdges, edges)
	if w.onEdges != nil {
		w.onEdges(edges)
	}
}

// Close stops pending edge resolution and inertia. The store is left open.
func (w *World) Close() {
	w.resolver.Close()
	w.vp.Close()
}

// Nodes returns a copy of the node list.
func (w *World) Nodes() []graph.Node {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]graph.Node(nil), w.nodes...)
}

// Edges returns a copy of the edge list.
func (w *World) Edges() []graph.Edge {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]graph.Edge(nil), w.edges...)
}

// Labels returns the node labels in order.
func (w *World) Labels() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return graph.Labels(w.nodes)
}

// Node returns the node with id.
func (w *World) Node(id string) (graph.Node, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if i := graph.FindNode(w.nodes, id); i >= 0 {
		return w.nodes[i], true
	}
	return graph.Node{}, false
}

// Selected returns the selected node, if any.
func (w *World) Selected() (graph.Node, bool) {
	w.mu.Lock()
	id := w.selected
	w.mu.Unlock()
	if id == "" {
		return graph.Node{}, false
	}
	return w.Node(id)
}

// Theme returns the active theme.
func (w *World) Theme() canvas.Theme {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.theme
}

// Viewport returns the world's viewport controller.
func (w *World) Viewport() *canvas.Viewport {
	return w.vp
}

// Visual renders node id under the active theme.
func (w *World) Visual(id string) (canvas.Visual, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	i := graph.FindNode(w.nodes, id)
	if i < 0 {
		return canvas.Visual{}, false
	}
	return canvas.VisualFor(w.nodes[i].ColorIndex, w.theme), true
}

// Overlay computes the drawable edge segments, or nil when there are none.
func (w *World) Overlay() *geometry.Overlay {
	w.mu.Lock()
	defer w.mu.Unlock()
	return geometry.Build(w.nodes, w.edges, w.geo)
}

// ResolveEdges resolves the current node set immediately, superseding any
// pending debounce.
func (w *World) ResolveEdges(ctx context.Context) resolve.Result {
	nodes := w.Nodes()
	return w.resolver.ResolveNow(ctx, nodes)
}

// scheduleLocked queues an edge resolution for the current nodes.
func (w *World) scheduleLocked() {
	w.resolver.Schedule(w.nodes)
}
