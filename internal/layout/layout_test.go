// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

package layout

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/tomtom215/horizon/internal/graph"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func TestStableID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		label string
		want  string
	}{
		{"Machine Learning", "machine-learning"},
		{"  Философия  ", "философия"},
		{"C++ & Go!", "c-go"},
		{"a -- b", "a-b"},
		{"AI", "ai"},
		{"Data\tScience", "data-science"},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			t.Parallel()
			if got := StableID(tt.label); got != tt.want {
				t.Errorf("StableID(%q) = %q, want %q", tt.label, got, tt.want)
			}
		})
	}
}

func TestStableID_EmptyFallsBackToRandom(t *testing.T) {
	t.Parallel()

	a := StableID("!!!")
	b := StableID("???")
	if !strings.HasPrefix(a, "interest-") {
		t.Errorf("StableID(!!!) = %q, want interest- prefix", a)
	}
	if a == b {
		t.Error("random ids should differ between calls")
	}
}

func TestUniqueID(t *testing.T) {
	t.Parallel()

	taken := map[string]struct{}{"go": {}, "go-1": {}}
	if got := UniqueID("Go", taken); got != "go-2" {
		t.Errorf("UniqueID(Go) = %q, want go-2", got)
	}
	if got := UniqueID("Go", taken); got != "go-3" {
		t.Errorf("second UniqueID(Go) = %q, want go-3", got)
	}
	if got := UniqueID("Rust", taken); got != "rust" {
		t.Errorf("UniqueID(Rust) = %q, want rust", got)
	}
}

func TestPlace_SeparationForSmallRings(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	for n := 1; n <= 5; n++ {
		for seed := uint64(1); seed <= 25; seed++ {
			labels := make([]string, n)
			for i := range labels {
				labels[i] = fmt.Sprintf("label %d", i)
			}
			got := NewEngine(cfg, seeded(seed)).Place(Request{Labels: labels})
			if len(got) != n {
				t.Fatalf("n=%d seed=%d: got %d placements", n, seed, len(got))
			}
			for i := range got {
				for j := i + 1; j < len(got); j++ {
					d := math.Hypot(got[i].X-got[j].X, got[i].Y-got[j].Y)
					if d < cfg.MinSeparation {
						t.Errorf("n=%d seed=%d: %s and %s are %.1f apart", n, seed, got[i].Label, got[j].Label, d)
					}
				}
			}
		}
	}
}

func TestPlace_RingBounds(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	center := graph.Point{X: 500, Y: -200}
	got := NewEngine(cfg, seeded(7)).Place(Request{
		Labels: []string{"a", "b", "c"},
		Center: center,
	})

	// First attempts land in [min, max] plus jitter.
	maxJitter := positionJitter * math.Sqrt2
	for _, p := range got {
		d := math.Hypot(p.X-center.X, p.Y-center.Y)
		if d < cfg.MinRadius-maxJitter || d > cfg.MaxRadius+overflowRadius+maxJitter+radiusGrowth*float64(cfg.Attempts) {
			t.Errorf("%s placed %.1f from center", p.Label, d)
		}
	}
}

func TestPlace_AlwaysReturnsEveryLabel(t *testing.T) {
	t.Parallel()

	labels := make([]string, 200)
	for i := range labels {
		labels[i] = fmt.Sprintf("topic-%03d", i)
	}
	got := NewEngine(DefaultConfig(), seeded(3)).Place(Request{Labels: labels})
	if len(got) != len(labels) {
		t.Fatalf("got %d placements, want %d", len(got), len(labels))
	}

	overflow := 0
	ids := make(map[string]bool)
	for _, p := range got {
		if p.Overflow {
			overflow++
		}
		if ids[p.ID] {
			t.Errorf("duplicate id %q", p.ID)
		}
		ids[p.ID] = true
	}
	if overflow == 0 {
		t.Error("expected some overflow placements for a dense batch")
	}
}

func TestPlace_AvoidsObstacles(t *testing.T) {
	t.Parallel()

	obstacles := make([]graph.Point, 0, 16)
	for i := 0; i < 16; i++ {
		a := float64(i) * 2 * math.Pi / 16
		obstacles = append(obstacles, graph.Point{X: math.Cos(a) * 300, Y: math.Sin(a) * 300})
	}

	cfg := Config{MinRadius: 240, MaxRadius: 360, MinSeparation: 60, Attempts: 12}
	got := NewEngine(cfg, seeded(11)).Place(Request{Labels: []string{"x", "y"}, Obstacles: obstacles})
	for _, p := range got {
		if p.Overflow {
			continue
		}
		for _, o := range obstacles {
			if d := math.Hypot(p.X-o.X, p.Y-o.Y); d < cfg.MinSeparation {
				t.Errorf("%s is %.1f from an obstacle", p.Label, d)
			}
		}
	}
}

func TestPlace_DedupAndKnownIDs(t *testing.T) {
	t.Parallel()

	got := NewEngine(DefaultConfig(), seeded(5)).Place(Request{
		Labels:   []string{"Go", " Go ", "", "Rust"},
		KnownIDs: []string{"go"},
	})
	if len(got) != 2 {
		t.Fatalf("got %d placements, want 2", len(got))
	}
	if got[0].ID != "go-1" {
		t.Errorf("Go id = %q, want go-1", got[0].ID)
	}
	if got[1].ID != "rust" {
		t.Errorf("Rust id = %q, want rust", got[1].ID)
	}
}

func TestPlace_Empty(t *testing.T) {
	t.Parallel()

	if got := NewEngine(DefaultConfig(), nil).Place(Request{}); len(got) != 0 {
		t.Errorf("Place(empty) = %v, want none", got)
	}
}
