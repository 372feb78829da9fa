// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

package world

import (
	"math"

	"github.com/tomtom215/horizon/internal/graph"
)

// HitTest returns the topmost node whose disc contains the screen point.
// Later nodes are drawn above earlier ones.
func (w *World) HitTest(screenX, screenY float64) (graph.Node, bool) {
	p := w.vp.ScreenToWorld(screenX, screenY)

	w.mu.Lock()
	defer w.mu.Unlock()
	for i := len(w.nodes) - 1; i >= 0; i-- {
		n := w.nodes[i]
		if math.Hypot(p.X-n.X, p.Y-n.Y) <= w.geo.NodeRadius {
			return n, true
		}
	}
	return graph.Node{}, false
}

// PointerDown starts a node press when the point hits a node and a viewport
// pan otherwise.
func (w *World) PointerDown(screenX, screenY float64) {
	if n, hit := w.HitTest(screenX, screenY); hit {
		w.input.NodeDown(n.ID, screenX, screenY, n.Position())
		return
	}
	w.input.BackgroundDown(screenX, screenY)
}

// PointerMove continues the active gesture.
func (w *World) PointerMove(screenX, screenY float64) {
	w.input.Move(screenX, screenY)
}

// PointerUp ends the active gesture. A node press without movement selects
// the node.
func (w *World) PointerUp() {
	w.input.Up()
}

// PointerCancel drops the active gesture.
func (w *World) PointerCancel() {
	w.input.Cancel()
}

// Wheel zooms around the cursor. deltaY follows the browser convention where
// positive values scroll down, which zooms out.
func (w *World) Wheel(screenX, screenY, deltaY float64) {
	w.vp.ZoomAt(screenX, screenY, -deltaY)
}
