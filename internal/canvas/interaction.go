// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

package canvas

import (
	"math"
	"sync"

	"github.com/tomtom215/horizon/internal/graph"
)

// DefaultDragThreshold is the combined |dx|+|dy| screen movement, in pixels,
// at which a node press becomes a drag.
const DefaultDragThreshold = 2.0

// Handlers receive the outcome of node interaction. Either may be nil.
type Handlers struct {
	// OnMove receives the new world position of a dragged node.
	OnMove func(id string, pos graph.Point)
	// OnClick fires when a node press is released without dragging.
	OnClick func(id string)
}

type nodePress struct {
	id             string
	startX, startY float64
	origin         graph.Point
	dragging       bool
}

// Interaction routes pointer events to node drags or viewport panning.
type Interaction struct {
	mu        sync.Mutex
	vp        *Viewport
	threshold float64
	h         Handlers
	press     *nodePress
}

// NewInteraction binds pointer handling to a viewport. A non-positive
// threshold selects DefaultDragThreshold.
func NewInteraction(vp *Viewport, threshold float64, h Handlers) *Interaction {
	if threshold <= 0 {
		threshold = DefaultDragThreshold
	}
	return &Interaction{vp: vp, threshold: threshold, h: h}
}

// NodeDown captures the pointer for node id at its current world position.
// Any viewport inertia stops.
func (in *Interaction) NodeDown(id string, screenX, screenY float64, pos graph.Point) {
	in.vp.CancelInertia()
	in.mu.Lock()
	in.press = &nodePress{id: id, startX: screenX, startY: screenY, origin: pos}
	in.mu.Unlock()
}

// BackgroundDown starts panning the viewport.
func (in *Interaction) BackgroundDown(screenX, screenY float64) {
	in.mu.Lock()
	in.press = nil
	in.mu.Unlock()
	in.vp.BeginPan(screenX, screenY)
}

// Move handles pointer movement for whichever gesture is active.
func (in *Interaction) Move(screenX, screenY float64) {
	in.mu.Lock()
	p := in.press
	if p == nil {
		in.mu.Unlock()
		in.vp.MovePan(screenX, screenY)
		return
	}

	dx := screenX - p.startX
	dy := screenY - p.startY
	if !p.dragging && math.Abs(dx)+math.Abs(dy) >= in.threshold {
		p.dragging = true
	}
	if !p.dragging {
		in.mu.Unlock()
		return
	}

	scale := in.vp.Transform().Scale
	pos := graph.Point{X: p.origin.X + dx/scale, Y: p.origin.Y + dy/scale}
	id := p.id
	onMove := in.h.OnMove
	in.mu.Unlock()

	if onMove != nil {
		onMove(id, pos)
	}
}

// Up releases the pointer. A node press that never became a drag fires
// OnClick; a pan hands off to inertia.
func (in *Interaction) Up() {
	in.mu.Lock()
	p := in.press
	in.press = nil
	onClick := in.h.OnClick
	in.mu.Unlock()

	if p == nil {
		in.vp.EndPan()
		return
	}
	if !p.dragging && onClick != nil {
		onClick(p.id)
	}
}

// Cancel abandons the active gesture without a click or inertia.
func (in *Interaction) Cancel() {
	in.mu.Lock()
	in.press = nil
	in.mu.Unlock()
	in.vp.AbortPan()
}

// Dragging reports whether a node drag is in progress.
func (in *Interaction) Dragging() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.press != nil && in.press.dragging
}
