// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

// Package geometry turns node positions and abstract edges into drawable,
// boundary-clipped line segments on an overlay surface.
package geometry

import (
	"math"

	"github.com/tomtom215/horizon/internal/graph"
)

// Defaults used by the canvas overlay.
const (
	DefaultNodeRadius = 46.0
	DefaultPadding    = 6.0
	DefaultMargin     = 80.0
)

// Options controls segment clipping and overlay sizing.
type Options struct {
	// NodeRadius is how far from each center a segment starts or ends.
	NodeRadius float64
	// Padding is extra space left before the target node, e.g. for an arrowhead.
	Padding float64
	// Margin is added around the bounding box of all segment endpoints.
	Margin float64
}

// DefaultOptions returns the canvas defaults.
func DefaultOptions() Options {
	return Options{NodeRadius: DefaultNodeRadius, Padding: DefaultPadding, Margin: DefaultMargin}
}

// Segment is one clipped edge, in overlay-local coordinates.
type Segment struct {
	ID string  `json:"id"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Overlay is the drawing surface for edges. MinX and MinY place it in world
// space; segment coordinates are relative to that origin.
type Overlay struct {
	MinX     float64   `json:"minX"`
	MinY     float64   `json:"minY"`
	Width    float64   `json:"width"`
	Height   float64   `json:"height"`
	Segments []Segment `json:"segments"`
}

// Clip computes the segment for one edge in world coordinates. It reports
// false when the two centers coincide.
func Clip(from, to graph.Point, radius, padding float64) (Segment, bool) {
	dx := to.X - from.X
	dy := to.Y - from.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 || math.IsNaN(dist) {
		return Segment{}, false
	}
	ux, uy := dx/dist, dy/dist
	end := radius + padding
	return Segment{
		X1: from.X + ux*radius,
		Y1: from.Y + uy*radius,
		X2: to.X - ux*end,
		Y2: to.Y - uy*end,
	}, true
}

// Build clips every edge whose endpoints exist and differ, and fits an
// overlay around them. It returns nil when there is nothing to draw.
func Build(nodes []graph.Node, edges []graph.Edge, opts Options) *Overlay {
	if len(edges) == 0 {
		return nil
	}
	pos := make(map[string]graph.Point, len(nodes))
	for _, n := range nodes {
		pos[n.ID] = n.Position()
	}

	segments := make([]Segment, 0, len(edges))
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)

	for _, e := range edges {
		from, ok := pos[e.Source]
		if !ok {
			continue
		}
		to, ok := pos[e.Target]
		if !ok {
			continue
		}
		seg, ok := Clip(from, to, opts.NodeRadius, opts.Padding)
		if !ok {
			continue
		}
		seg.ID = e.ID
		if seg.ID == "" {
			seg.ID = graph.CanonicalKey(e.Source, e.Target)
		}
		segments = append(segments, seg)

		minX = math.Min(minX, math.Min(seg.X1, seg.X2))
		minY = math.Min(minY, math.Min(seg.Y1, seg.Y2))
		maxX = math.Max(maxX, math.Max(seg.X1, seg.X2))
		maxY = math.Max(maxY, math.Max(seg.Y1, seg.Y2))
	}

	if len(segments) == 0 {
		return nil
	}

	minX -= opts.Margin
	minY -= opts.Margin
	maxX += opts.Margin
	maxY += opts.Margin

	for i := range segments {
		segments[i].X1 -= minX
		segments[i].Y1 -= minY
		segments[i].X2 -= minX
		segments[i].Y2 -= minY
	}

	return &Overlay{
		MinX:     minX,
		MinY:     minY,
		Width:    math.Max(1, maxX-minX),
		Height:   math.Max(1, maxY-minY),
		Segments: segments,
	}
}

// World returns segment s translated back to world coordinates.
func (o *Overlay) World(s Segment) Segment {
	return Segment{
		ID: s.ID,
		X1: s.X1 + o.MinX,
		Y1: s.Y1 + o.MinY,
		X2: s.X2 + o.MinX,
		Y2: s.Y2 + o.MinY,
	}
}
