// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

package graph

import (
	"fmt"
	"testing"
)

func nodesFor(labels ...string) []Node {
	nodes := make([]Node, len(labels))
	for i, l := range labels {
		nodes[i] = Node{ID: l, Label: l}
	}
	return nodes
}

func TestCanonicalKey(t *testing.T) {
	t.Parallel()

	if got := CanonicalKey("B", "A"); got != "A||B" {
		t.Errorf("CanonicalKey(B, A) = %q, want A||B", got)
	}
	if CanonicalKey("x", "y") != CanonicalKey("y", "x") {
		t.Error("CanonicalKey should not depend on argument order")
	}
}

func TestClampEdgesPerNode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want int
	}{
		{0, DefaultEdgesPerNode},
		{-3, DefaultEdgesPerNode},
		{1, 1},
		{2, 2},
		{4, 4},
		{9, MaxEdgesPerNode},
	}
	for _, tt := range tests {
		if got := ClampEdgesPerNode(tt.in); got != tt.want {
			t.Errorf("ClampEdgesPerNode(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestValidateEdges(t *testing.T) {
	t.Parallel()

	labels := []string{"A", "B", "C"}
	in := []LabelEdge{
		{Source: "A", Target: "B"},
		{Source: " B ", Target: "A"}, // duplicate after trim
		{Source: "A", Target: "A"},   // self loop
		{Source: "A", Target: "Z"},   // unknown label
		{Source: "", Target: "C"},
		{Source: "C", Target: "B"},
	}

	got := ValidateEdges(in, labels)
	if len(got) != 2 {
		t.Fatalf("ValidateEdges returned %d edges, want 2: %+v", len(got), got)
	}
	if got[0].Key() != "A||B" || got[1].Key() != "B||C" {
		t.Errorf("unexpected edges: %+v", got)
	}
}

func TestFallbackEdges_ThreeLabels(t *testing.T) {
	t.Parallel()

	got := FallbackEdges([]string{"C", "A", "B"}, 2)
	want := []string{"A||B", "B||C"}
	if len(got) != len(want) {
		t.Fatalf("FallbackEdges returned %d edges, want %d: %+v", len(got), len(want), got)
	}
	for i, e := range got {
		if e.Key() != want[i] {
			t.Errorf("edge %d = %s, want %s", i, e.Key(), want[i])
		}
	}
}

func TestFallbackEdges_SkipEdge(t *testing.T) {
	t.Parallel()

	// With a budget of one edge per node the chain stops at A-B, so the
	// skip edge A-C cannot be added either: A is already saturated.
	got := FallbackEdges([]string{"A", "B", "C"}, 1)
	if len(got) != 1 || got[0].Key() != "A||B" {
		t.Errorf("FallbackEdges with budget 1 = %+v, want only A||B", got)
	}
}

func TestFallbackEdges_Small(t *testing.T) {
	t.Parallel()

	if got := FallbackEdges(nil, 2); len(got) != 0 {
		t.Errorf("FallbackEdges(nil) = %+v, want empty", got)
	}
	if got := FallbackEdges([]string{"solo", "solo", " "}, 2); len(got) != 0 {
		t.Errorf("FallbackEdges(single label) = %+v, want empty", got)
	}
	got := FallbackEdges([]string{"B", "A"}, 2)
	if len(got) != 1 || got[0].Key() != "A||B" {
		t.Errorf("FallbackEdges(A, B) = %+v, want A||B", got)
	}
}

func TestFallbackEdges_Connected(t *testing.T) {
	t.Parallel()

	for n := 2; n <= 40; n++ {
		labels := make([]string, n)
		for i := range labels {
			labels[i] = fmt.Sprintf("interest %02d", n-i)
		}
		edges := FallbackEdges(labels, 2)

		parent := make(map[string]string, n)
		var find func(string) string
		find = func(x string) string {
			if p, ok := parent[x]; ok && p != x {
				r := find(p)
				parent[x] = r
				return r
			}
			parent[x] = x
			return x
		}
		keys := make(map[string]bool)
		degree := make(map[string]int)
		for _, e := range edges {
			if keys[e.Key()] {
				t.Fatalf("n=%d: duplicate key %s", n, e.Key())
			}
			keys[e.Key()] = true
			degree[e.Source]++
			degree[e.Target]++
			parent[find(e.Source)] = find(e.Target)
		}
		root := find(labels[0])
		for _, l := range labels {
			if find(l) != root {
				t.Fatalf("n=%d: label %q not connected", n, l)
			}
			if degree[l] > 2 {
				t.Fatalf("n=%d: label %q has degree %d", n, l, degree[l])
			}
		}
	}
}

func TestFallbackEdges_CyrillicOrder(t *testing.T) {
	t.Parallel()

	got := FallbackEdges([]string{"Философия", "Бизнес", "Дизайн"}, 2)
	want := []string{CanonicalKey("Бизнес", "Дизайн"), CanonicalKey("Дизайн", "Философия")}
	if len(got) != 2 {
		t.Fatalf("got %d edges, want 2", len(got))
	}
	for i := range want {
		if got[i].Key() != want[i] {
			t.Errorf("edge %d = %s, want %s", i, got[i].Key(), want[i])
		}
	}
}

func TestResolve_RemoteEdge(t *testing.T) {
	t.Parallel()

	nodes := nodesFor("A", "B")
	edges, fallback := Resolve([]LabelEdge{{Source: "B", Target: "A"}}, nodes, 2)
	if fallback {
		t.Error("Resolve should not fall back when the remote edge is valid")
	}
	if len(edges) != 1 {
		t.Fatalf("Resolve returned %d edges, want 1", len(edges))
	}
	if edges[0].ID != "A||B" {
		t.Errorf("edge id = %q, want A||B", edges[0].ID)
	}
}

func TestResolve_EmptyRemoteFallsBack(t *testing.T) {
	t.Parallel()

	edges, fallback := Resolve(nil, nodesFor("A", "B", "C"), 2)
	if !fallback {
		t.Error("Resolve should report fallback for an empty remote set")
	}
	if len(edges) != 2 {
		t.Fatalf("Resolve returned %d edges, want 2", len(edges))
	}
	if edges[0].ID != "A||B" || edges[1].ID != "B||C" {
		t.Errorf("unexpected edges: %+v", edges)
	}
}

func TestResolveIDs_DropsUnresolved(t *testing.T) {
	t.Parallel()

	nodes := []Node{{ID: "n1", Label: "Go"}, {ID: "n2", Label: "Rust"}}
	edges := ResolveIDs([]LabelEdge{
		{Source: "Go", Target: "Rust"},
		{Source: "Go", Target: "Zig"},
		{Source: "Rust", Target: "Go"},
	}, nodes)
	if len(edges) != 1 {
		t.Fatalf("ResolveIDs returned %d edges, want 1: %+v", len(edges), edges)
	}
	if edges[0].ID != "n1||n2" {
		t.Errorf("edge id = %q, want n1||n2", edges[0].ID)
	}
}

func TestPruneEdges(t *testing.T) {
	t.Parallel()

	nodes := nodesFor("a", "b")
	edges := []Edge{
		{ID: "a||b", Source: "a", Target: "b"},
		{ID: "a||c", Source: "a", Target: "c"},
	}
	got := PruneEdges(edges, nodes)
	if len(got) != 1 || got[0].ID != "a||b" {
		t.Errorf("PruneEdges = %+v, want only a||b", got)
	}
}

func TestHasLabel(t *testing.T) {
	t.Parallel()

	nodes := []Node{{ID: "ai", Label: "AI"}}
	if !HasLabel(nodes, "  ai ") {
		t.Error("HasLabel should match case-insensitively after trimming")
	}
	if HasLabel(nodes, "ML") {
		t.Error("HasLabel(ML) should be false")
	}
}
