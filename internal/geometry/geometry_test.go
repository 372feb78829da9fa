// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

package geometry

import (
	"math"
	"testing"

	"github.com/tomtom215/horizon/internal/graph"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestClip_Horizontal(t *testing.T) {
	t.Parallel()

	seg, ok := Clip(graph.Point{X: 0, Y: 0}, graph.Point{X: 100, Y: 0}, 10, 2)
	if !ok {
		t.Fatal("Clip should succeed for distinct points")
	}
	if !near(seg.X1, 10) || !near(seg.X2, 88) {
		t.Errorf("segment x = %.3f..%.3f, want 10..88", seg.X1, seg.X2)
	}
	if !near(seg.Y1, 0) || !near(seg.Y2, 0) {
		t.Errorf("segment y = %.3f..%.3f, want 0..0", seg.Y1, seg.Y2)
	}
}

func TestClip_Diagonal(t *testing.T) {
	t.Parallel()

	seg, ok := Clip(graph.Point{X: 0, Y: 0}, graph.Point{X: 30, Y: 40}, 5, 0)
	if !ok {
		t.Fatal("Clip should succeed")
	}
	if !near(seg.X1, 3) || !near(seg.Y1, 4) || !near(seg.X2, 27) || !near(seg.Y2, 36) {
		t.Errorf("unexpected segment %+v", seg)
	}
}

func TestClip_Coincident(t *testing.T) {
	t.Parallel()

	if _, ok := Clip(graph.Point{X: 5, Y: 5}, graph.Point{X: 5, Y: 5}, 10, 2); ok {
		t.Error("Clip should reject coincident points")
	}
}

func TestBuild(t *testing.T) {
	t.Parallel()

	nodes := []graph.Node{
		{ID: "a", X: 0, Y: 0},
		{ID: "b", X: 100, Y: 0},
		{ID: "c", X: 100, Y: 0}, // same spot as b
	}
	edges := []graph.Edge{
		{ID: "a||b", Source: "a", Target: "b"},
		{ID: "b||c", Source: "b", Target: "c"},       // zero length
		{ID: "a||ghost", Source: "a", Target: "ghost"}, // missing node
	}

	o := Build(nodes, edges, Options{NodeRadius: 10, Padding: 2, Margin: 80})
	if o == nil {
		t.Fatal("Build returned nil for a drawable edge")
	}
	if len(o.Segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(o.Segments))
	}
	if !near(o.MinX, -70) || !near(o.MinY, -80) {
		t.Errorf("origin = (%.1f, %.1f), want (-70, -80)", o.MinX, o.MinY)
	}
	if !near(o.Width, 238) || !near(o.Height, 160) {
		t.Errorf("size = %.1fx%.1f, want 238x160", o.Width, o.Height)
	}

	s := o.Segments[0]
	if !near(s.X1, 80) || !near(s.X2, 158) || !near(s.Y1, 80) {
		t.Errorf("local segment = %+v", s)
	}
	w := o.World(s)
	if !near(w.X1, 10) || !near(w.X2, 88) {
		t.Errorf("world segment = %+v, want x 10..88", w)
	}
}

func TestBuild_NothingToDraw(t *testing.T) {
	t.Parallel()

	if Build(nil, nil, DefaultOptions()) != nil {
		t.Error("Build with no edges should return nil")
	}
	nodes := []graph.Node{{ID: "a"}, {ID: "b"}}
	edges := []graph.Edge{{ID: "a||b", Source: "a", Target: "b"}}
	if Build(nodes, edges, DefaultOptions()) != nil {
		t.Error("Build with only zero-length edges should return nil")
	}
}

func TestBuild_MinimumSize(t *testing.T) {
	t.Parallel()

	nodes := []graph.Node{{ID: "a", X: 0, Y: 0}, {ID: "b", X: 10, Y: 0}}
	edges := []graph.Edge{{Source: "a", Target: "b"}}
	o := Build(nodes, edges, Options{NodeRadius: 5, Padding: 0, Margin: 0})
	if o == nil {
		t.Fatal("expected an overlay")
	}
	if o.Height != 1 {
		t.Errorf("Height = %v, want at least 1 for a flat overlay", o.Height)
	}
	if o.Segments[0].ID != "a||b" {
		t.Errorf("segment id = %q, want canonical key", o.Segments[0].ID)
	}
}
