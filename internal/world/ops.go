// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

package world

import (
	"context"
	"errors"

	"github.com/tomtom215/horizon/internal/canvas"
	"github.com/tomtom215/horizon/internal/graph"
	"github.com/tomtom215/horizon/internal/layout"
	"github.com/tomtom215/horizon/internal/metrics"
	"github.com/tomtom215/horizon/internal/store"
)

// Validation errors. Their text is shown to the user as is.
var (
	ErrEmptyLabel     = errors.New("введите интерес")
	ErrDuplicateLabel = errors.New("уже добавлено")
	ErrNodeNotFound   = errors.New("интерес не найден")
)

// Result reports the outcome of a mutation.
type Result struct {
	Success bool     `json:"success"`
	Error   string   `json:"error,omitempty"`
	IDs     []string `json:"ids,omitempty"`

	err error
}

// Err returns the underlying error of a failed Result.
func (r Result) Err() error {
	return r.err
}

func ok(ids ...string) Result {
	return Result{Success: true, IDs: ids}
}

func fail(err error) Result {
	return Result{Error: err.Error(), err: err}
}

// AddNode adds one interest. With a nil pos the node is placed by the radial
// layout around the world point at the screen center.
func (w *World) AddNode(label string, pos *graph.Point) Result {
	label = graph.NormalizeLabel(label)
	if label == "" {
		return fail(ErrEmptyLabel)
	}

	if pos == nil {
		return w.AddInterests([]string{label})
	}

	w.mu.Lock()
	if graph.HasLabel(w.nodes, label) {
		w.mu.Unlock()
		return fail(ErrDuplicateLabel)
	}
	node := graph.Node{
		ID:         layout.UniqueID(label, w.takenLocked()),
		Label:      label,
		X:          pos.X,
		Y:          pos.Y,
		ColorIndex: canvas.HashColorIndex(label),
	}
	w.nodes = append(w.nodes, node)
	nodes := w.snapshotLocked()
	w.scheduleLocked()
	w.mu.Unlock()

	w.saveSlice(context.Background(), store.KeyNodes, nodes)
	return ok(node.ID)
}

// AddInterests batch-inserts labels around the world center, skipping blanks
// and labels already on the canvas (case-insensitively). A batch that only
// repeats existing labels succeeds with no ids; a batch with no usable label
// at all fails with ErrEmptyLabel.
func (w *World) AddInterests(labels []string) Result {
	center := w.vp.WorldCenter()

	w.mu.Lock()
	fresh := make([]string, 0, len(labels))
	seen := make(map[string]struct{}, len(labels))
	nonEmpty := false
	for _, raw := range labels {
		label := graph.NormalizeLabel(raw)
		if label == "" {
			continue
		}
		nonEmpty = true
		folded := graph.FoldLabel(label)
		if _, dup := seen[folded]; dup || graph.HasLabel(w.nodes, label) {
			continue
		}
		seen[folded] = struct{}{}
		fresh = append(fresh, label)
	}
	if !nonEmpty {
		w.mu.Unlock()
		return fail(ErrEmptyLabel)
	}
	if len(fresh) == 0 {
		w.mu.Unlock()
		if len(labels) == 1 {
			return fail(ErrDuplicateLabel)
		}
		return ok()
	}

	obstacles := make([]graph.Point, len(w.nodes))
	known := make([]string, len(w.nodes))
	for i, n := range w.nodes {
		obstacles[i] = n.Position()
		known[i] = n.ID
	}
	placements := w.engine.Place(layout.Request{
		Labels:    fresh,
		Center:    center,
		Obstacles: obstacles,
		KnownIDs:  known,
	})

	ids := make([]string, 0, len(placements))
	overflow := 0
	for _, p := range placements {
		node := p.Node()
		node.ColorIndex = canvas.HashColorIndex(node.Label)
		w.nodes = append(w.nodes, node)
		ids = append(ids, node.ID)
		if p.Overflow {
			overflow++
		}
	}
	nodes := w.snapshotLocked()
	w.scheduleLocked()
	w.mu.Unlock()

	metrics.RecordLayout(len(placements), overflow)
	if overflow > 0 {
		w.log.Debug().Int("overflow", overflow).Int("placed", len(placements)).Msg("Layout used overflow ring")
	}
	w.saveSlice(context.Background(), store.KeyNodes, nodes)
	return ok(ids...)
}

// RemoveNode deletes a node together with its edges. Removing the selected
// node clears the selection.
func (w *World) RemoveNode(id string) Result {
	w.mu.Lock()
	i := graph.FindNode(w.nodes, id)
	if i < 0 {
		w.mu.Unlock()
		return fail(ErrNodeNotFound)
	}
	w.nodes = append(w.nodes[:i:i], w.nodes[i+1:]...)
	w.edges = graph.PruneEdges(w.edges, w.nodes)
	clearSelection := w.selected == id
	if clearSelection {
		w.selected = ""
	}
	nodes := w.snapshotLocked()
	edges := append([]graph.Edge(nil), w.edges...)
	w.scheduleLocked()
	w.mu.Unlock()

	ctx := context.Background()
	w.saveSlice(ctx, store.KeyNodes, nodes)
	w.saveSlice(ctx, store.KeyEdges, edges)
	if clearSelection {
		if err := store.Remove(ctx, w.kv, store.KeyLastSelected); err != nil {
			w.log.Warn().Err(err).Msg("Failed to clear selection")
		}
	}
	return ok(id)
}

// MoveNode sets a node's world position. Edges are unaffected.
func (w *World) MoveNode(id string, pos graph.Point) Result {
	w.mu.Lock()
	i := graph.FindNode(w.nodes, id)
	if i < 0 {
		w.mu.Unlock()
		return fail(ErrNodeNotFound)
	}
	w.nodes[i].X, w.nodes[i].Y = pos.X, pos.Y
	nodes := w.snapshotLocked()
	w.mu.Unlock()

	w.saveSlice(context.Background(), store.KeyNodes, nodes)
	return ok(id)
}

// SelectNode selects a node. An empty id clears the selection.
func (w *World) SelectNode(id string) Result {
	w.mu.Lock()
	if id != "" && graph.FindNode(w.nodes, id) < 0 {
		w.mu.Unlock()
		return fail(ErrNodeNotFound)
	}
	w.selected = id
	w.mu.Unlock()

	ctx := context.Background()
	if id == "" {
		if err := store.Remove(ctx, w.kv, store.KeyLastSelected); err != nil {
			w.log.Warn().Err(err).Msg("Failed to clear selection")
		}
		return ok()
	}
	w.saveSlice(ctx, store.KeyLastSelected, id)
	return ok(id)
}

// SetTheme switches the rendering theme.
func (w *World) SetTheme(theme canvas.Theme) Result {
	theme, err := canvas.ParseTheme(string(theme))
	if err != nil {
		return fail(err)
	}
	w.mu.Lock()
	w.theme = theme
	w.mu.Unlock()
	w.saveSlice(context.Background(), store.KeyTheme, string(theme))
	return ok()
}

// ToggleTheme flips between dark and light and returns the new theme.
func (w *World) ToggleTheme() canvas.Theme {
	next := w.Theme().Toggle()
	w.SetTheme(next)
	return next
}

func (w *World) takenLocked() map[string]struct{} {
	taken := make(map[string]struct{}, len(w.nodes))
	for _, n := range w.nodes {
		taken[n.ID] = struct{}{}
	}
	return taken
}

func (w *World) snapshotLocked() []graph.Node {
	return append([]graph.Node(nil), w.nodes...)
}
