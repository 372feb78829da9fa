// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

package world

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/tomtom215/horizon/internal/canvas"
	"github.com/tomtom215/horizon/internal/graph"
	"github.com/tomtom215/horizon/internal/layout"
	"github.com/tomtom215/horizon/internal/models"
	"github.com/tomtom215/horizon/internal/resolve"
	"github.com/tomtom215/horizon/internal/store"
)

type fakeRecommender struct {
	interests []string
	videos    *models.VideosResponse
	err       error

	labels []string
	limit  int
}

func (f *fakeRecommender) RecommendInterests(_ context.Context, labels []string, limit int) ([]string, error) {
	f.labels, f.limit = labels, limit
	return f.interests, f.err
}

func (f *fakeRecommender) RecommendVideos(_ context.Context, labels []string, limit int) (*models.VideosResponse, error) {
	f.labels, f.limit = labels, limit
	if f.err != nil {
		return nil, f.err
	}
	return f.videos, nil
}

func newTestWorld(t *testing.T, opts Options) *World {
	t.Helper()
	if opts.ViewportOptions == nil {
		opts.ViewportOptions = []canvas.Option{canvas.WithSize(800, 600)}
	}
	if opts.Resolve.Debounce == 0 {
		opts.Resolve.Debounce = time.Hour
	}
	if opts.Layout == nil {
		opts.Layout = layout.NewEngine(layout.DefaultConfig(), rand.New(rand.NewPCG(1, 2)))
	}
	w, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	t.Cleanup(w.Close)
	return w
}

func TestLoad_SeedsEmptyStore(t *testing.T) {
	t.Parallel()
	kv := store.NewMemoryStore()
	w := newTestWorld(t, Options{Store: kv})

	nodes := w.Nodes()
	if len(nodes) != 5 {
		t.Fatalf("seed has %d nodes, want 5", len(nodes))
	}
	if nodes[0].ID != "tech" || nodes[0].ColorIndex != canvas.HashColorIndex("Технологии") {
		t.Errorf("first seed node = %+v", nodes[0])
	}
	stored, ok, err := store.Load[[]graph.Node](context.Background(), kv, store.KeyNodes)
	if err != nil || !ok || len(stored) != 5 {
		t.Errorf("seed not persisted: %d nodes, ok %v, err %v", len(stored), ok, err)
	}
	if w.Theme() != canvas.Dark {
		t.Errorf("Theme = %q, want dark", w.Theme())
	}
}

func TestLoad_PrunesDanglingEdges(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := store.NewMemoryStore()
	_ = store.Save(ctx, kv, store.KeyNodes, []graph.Node{{ID: "a", Label: "A"}, {ID: "b", Label: "B", X: 200}})
	_ = store.Save(ctx, kv, store.KeyEdges, []graph.Edge{
		{ID: "a||b", Source: "a", Target: "b"},
		{ID: "a||gone", Source: "a", Target: "gone"},
	})
	_ = store.Save(ctx, kv, store.KeyLastSelected, "gone")

	w := newTestWorld(t, Options{Store: kv})
	if edges := w.Edges(); len(edges) != 1 || edges[0].ID != "a||b" {
		t.Errorf("Edges = %+v", edges)
	}
	if _, ok := w.Selected(); ok {
		t.Error("selection of a missing node survived load")
	}
}

func TestAddNode_Validation(t *testing.T) {
	t.Parallel()
	w := newTestWorld(t, Options{})

	tests := []struct {
		label string
		want  error
	}{
		{label: "   ", want: ErrEmptyLabel},
		{label: "ai", want: ErrDuplicateLabel},
		{label: " технологии ", want: ErrDuplicateLabel},
	}
	for _, tt := range tests {
		res := w.AddNode(tt.label, nil)
		if res.Success || !errors.Is(res.Err(), tt.want) {
			t.Errorf("AddNode(%q) = %+v, want %v", tt.label, res, tt.want)
		}
		if res.Error != tt.want.Error() {
			t.Errorf("AddNode(%q).Error = %q", tt.label, res.Error)
		}
	}
	if len(w.Nodes()) != 5 {
		t.Errorf("failed adds changed the node list")
	}
}

func TestAddNode_AtPosition(t *testing.T) {
	t.Parallel()
	kv := store.NewMemoryStore()
	w := newTestWorld(t, Options{Store: kv})

	res := w.AddNode("  Музыка ", &graph.Point{X: 10, Y: 20})
	if !res.Success || len(res.IDs) != 1 || res.IDs[0] != "музыка" {
		t.Fatalf("AddNode = %+v", res)
	}
	n, ok := w.Node("музыка")
	if !ok || n.Label != "Музыка" || n.X != 10 || n.Y != 20 {
		t.Errorf("node = %+v", n)
	}
	if n.ColorIndex != canvas.HashColorIndex("Музыка") {
		t.Errorf("ColorIndex = %d", n.ColorIndex)
	}

	stored, _, _ := store.Load[[]graph.Node](context.Background(), kv, store.KeyNodes)
	if len(stored) != 6 {
		t.Errorf("stored %d nodes, want 6", len(stored))
	}
}

func TestAddInterests(t *testing.T) {
	t.Parallel()
	w := newTestWorld(t, Options{})

	res := w.AddInterests([]string{"Музыка", "музыка", "AI", "", " Наука "})
	if !res.Success || len(res.IDs) != 2 {
		t.Fatalf("AddInterests = %+v", res)
	}
	if res.IDs[0] != "музыка" || res.IDs[1] != "наука" {
		t.Errorf("ids = %v", res.IDs)
	}
	if len(w.Nodes()) != 7 {
		t.Errorf("node count = %d, want 7", len(w.Nodes()))
	}

	again := w.AddInterests([]string{"МУЗЫКА", "наука"})
	if !again.Success || len(again.IDs) != 0 {
		t.Errorf("repeat batch = %+v", again)
	}
	if res := w.AddInterests([]string{" ", ""}); !errors.Is(res.Err(), ErrEmptyLabel) {
		t.Errorf("blank batch = %+v", res)
	}
}

func TestRemoveNode(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := store.NewMemoryStore()
	w := newTestWorld(t, Options{Store: kv})
	w.ResolveEdges(ctx)

	if res := w.SelectNode("ai"); !res.Success {
		t.Fatal(res.Error)
	}
	if res := w.RemoveNode("ai"); !res.Success {
		t.Fatalf("RemoveNode = %+v", res)
	}
	if _, ok := w.Node("ai"); ok {
		t.Error("node still present")
	}
	for _, e := range w.Edges() {
		if e.Source == "ai" || e.Target == "ai" {
			t.Errorf("edge %s survived removal", e.ID)
		}
	}
	if _, ok := w.Selected(); ok {
		t.Error("selection not cleared")
	}
	if _, ok, _ := store.Load[string](ctx, kv, store.KeyLastSelected); ok {
		t.Error("last selected key not removed")
	}

	if res := w.RemoveNode("ai"); !errors.Is(res.Err(), ErrNodeNotFound) {
		t.Errorf("second RemoveNode = %+v", res)
	}
}

func TestPersistence_RoundTrip(t *testing.T) {
	t.Parallel()
	kv := store.NewMemoryStore()

	w := newTestWorld(t, Options{Store: kv})
	w.AddNode("Музыка", &graph.Point{X: 1, Y: 2})
	w.MoveNode("tech", graph.Point{X: -5, Y: -6})
	w.SelectNode("design")
	w.SetTheme(canvas.Light)
	w.Viewport().Pan(10, 20)
	w.Close()

	w2 := newTestWorld(t, Options{Store: kv})
	if len(w2.Nodes()) != 6 {
		t.Errorf("nodes = %d", len(w2.Nodes()))
	}
	if n, _ := w2.Node("tech"); n.X != -5 || n.Y != -6 {
		t.Errorf("moved node = %+v", n)
	}
	if n, ok := w2.Selected(); !ok || n.ID != "design" {
		t.Errorf("selected = %+v, %v", n, ok)
	}
	if w2.Theme() != canvas.Light {
		t.Errorf("theme = %q", w2.Theme())
	}
	if tr := w2.Viewport().Transform(); tr.OffsetX != 10 || tr.OffsetY != 20 || tr.Scale != 1 {
		t.Errorf("view = %+v", tr)
	}
}

func TestLoad_ClampsStoredZoom(t *testing.T) {
	t.Parallel()
	kv := store.NewMemoryStore()
	_ = kv.Set(context.Background(), store.KeyView, []byte(`{"panX":3,"panY":4,"zoom":40}`))

	w := newTestWorld(t, Options{Store: kv})
	if got := w.Viewport().Transform().Scale; got != canvas.DefaultMaxScale {
		t.Errorf("zoom = %v, want %v", got, canvas.DefaultMaxScale)
	}
}

func TestResolveEdges_Remote(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := store.NewMemoryStore()
	src := resolve.EdgeSourceFunc(func(context.Context, []string, int) ([]graph.LabelEdge, error) {
		return []graph.LabelEdge{{Source: "Технологии", Target: "Дизайн"}, {Source: "Дизайн", Target: "Технологии"}}, nil
	})
	w := newTestWorld(t, Options{Store: kv, Edges: src})

	res := w.ResolveEdges(ctx)
	if res.Fallback || res.Stale {
		t.Fatalf("result = %+v", res)
	}
	edges := w.Edges()
	if len(edges) != 1 || edges[0].ID != "design||tech" || edges[0].Source != "tech" {
		t.Errorf("edges = %+v", edges)
	}
	stored, _, _ := store.Load[[]graph.Edge](ctx, kv, store.KeyEdges)
	if len(stored) != 1 {
		t.Errorf("stored edges = %+v", stored)
	}

	overlay := w.Overlay()
	if overlay == nil || len(overlay.Segments) != 1 {
		t.Errorf("overlay = %+v", overlay)
	}
}

func TestResolveEdges_FallbackWithoutSource(t *testing.T) {
	t.Parallel()
	w := newTestWorld(t, Options{})

	res := w.ResolveEdges(context.Background())
	if !res.Fallback || !errors.Is(res.Err, ErrNoEdgeSource) {
		t.Fatalf("result = %+v", res)
	}
	// Five labels, two edges per node: a four-edge path.
	if got := len(w.Edges()); got != 4 {
		t.Errorf("edges = %d, want 4", got)
	}
}

func TestNodeChange_SchedulesResolution(t *testing.T) {
	t.Parallel()
	applied := make(chan []graph.Edge, 8)
	w := newTestWorld(t, Options{
		Resolve: resolve.Config{Debounce: 5 * time.Millisecond},
		OnEdges: func(e []graph.Edge) { applied <- e },
	})

	w.AddNode("Музыка", &graph.Point{X: 400, Y: 400})

	deadline := time.After(2 * time.Second)
	for {
		select {
		case edges := <-applied:
			if len(edges) == 5 {
				return
			}
		case <-deadline:
			t.Fatal("six-node edge set never applied")
		}
	}
}

func TestPointer_ClickSelectsNode(t *testing.T) {
	t.Parallel()
	w := newTestWorld(t, Options{})

	w.PointerDown(-120, -60)
	w.PointerMove(-119, -60)
	w.PointerUp()

	n, ok := w.Selected()
	if !ok || n.ID != "tech" {
		t.Errorf("selected = %+v, %v", n, ok)
	}
	if n.X != -120 {
		t.Errorf("click moved the node to %v", n.X)
	}
}

func TestPointer_DragMovesNode(t *testing.T) {
	t.Parallel()
	w := newTestWorld(t, Options{})

	w.PointerDown(-120, -60)
	w.PointerMove(-90, -50)
	w.PointerUp()

	n, _ := w.Node("tech")
	if n.X != -90 || n.Y != -50 {
		t.Errorf("dragged node at (%v, %v)", n.X, n.Y)
	}
	if _, ok := w.Selected(); ok {
		t.Error("drag selected the node")
	}
}

func TestPointer_BackgroundPans(t *testing.T) {
	t.Parallel()
	w := newTestWorld(t, Options{})

	w.PointerDown(300, 300)
	w.PointerMove(350, 320)
	tr := w.Viewport().Transform()
	w.PointerCancel()

	if tr.OffsetX != 50 || tr.OffsetY != 20 {
		t.Errorf("transform after pan = %+v", tr)
	}
}

func TestWheel_ZoomsIn(t *testing.T) {
	t.Parallel()
	w := newTestWorld(t, Options{})
	w.Wheel(400, 300, -100)
	if got := w.Viewport().Transform().Scale; got < 1.0999 || got > 1.1001 {
		t.Errorf("scale = %v, want 1.1", got)
	}
}

func TestTheme(t *testing.T) {
	t.Parallel()
	kv := store.NewMemoryStore()
	w := newTestWorld(t, Options{Store: kv})

	if got := w.ToggleTheme(); got != canvas.Light {
		t.Errorf("ToggleTheme = %q", got)
	}
	v, ok := w.Visual("ai")
	if !ok || v.TextColor != "#0f172a" {
		t.Errorf("Visual = %+v, %v", v, ok)
	}
	if res := w.SetTheme("sepia"); res.Success {
		t.Error("unknown theme accepted")
	}
	stored, _, _ := store.Load[string](context.Background(), kv, store.KeyTheme)
	if stored != "light" {
		t.Errorf("stored theme = %q", stored)
	}
}

func TestRecommend(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	items := []string{"AI", "Музыка", "музыка", " ", "Наука"}
	for i := 0; i < 20; i++ {
		items = append(items, "Тема "+string(rune('А'+i)))
	}
	rec := &fakeRecommender{interests: items}
	w := newTestWorld(t, Options{Recommender: rec})

	got, res := w.Recommend(ctx)
	if !res.Success {
		t.Fatalf("Recommend = %+v", res)
	}
	if len(got) != MaxRecommendations || got[0] != "Музыка" || got[1] != "Наука" {
		t.Errorf("items = %v", got)
	}
	if len(rec.labels) != 5 {
		t.Errorf("sent labels = %v", rec.labels)
	}
	if rec.limit != MaxRecommendations {
		t.Errorf("requested limit = %d, want %d", rec.limit, MaxRecommendations)
	}

	rec.interests = []string{"ai", "Дизайн"}
	if got, res := w.Recommend(ctx); len(got) != 0 || !errors.Is(res.Err(), ErrNoRecommendations) {
		t.Errorf("all-present = %v, %+v", got, res)
	}

	rec.err = errors.New("boom")
	if got, res := w.Recommend(ctx); len(got) != 0 || !errors.Is(res.Err(), ErrLoadFailed) {
		t.Errorf("failure = %v, %+v", got, res)
	}
}

func TestRecommend_NoRecommender(t *testing.T) {
	t.Parallel()
	w := newTestWorld(t, Options{})
	if _, res := w.Recommend(context.Background()); !errors.Is(res.Err(), ErrNoRecommender) {
		t.Errorf("res = %+v", res)
	}
}

func TestVideos(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	rec := &fakeRecommender{videos: &models.VideosResponse{
		Queries: []string{"AI лекция"},
		Items:   []models.Video{{VideoID: "v1", Title: "T"}},
	}}
	w := newTestWorld(t, Options{Recommender: rec})

	resp, res := w.Videos(ctx, 0)
	if !res.Success || len(resp.Items) != 1 {
		t.Fatalf("Videos = %+v, %+v", resp, res)
	}
	if len(rec.labels) != 5 || rec.limit != DefaultVideoLimit {
		t.Errorf("sent %v limit %d", rec.labels, rec.limit)
	}

	w.SelectNode("ai")
	w.Videos(ctx, 3)
	if len(rec.labels) != 1 || rec.labels[0] != "AI" || rec.limit != 3 {
		t.Errorf("selected node request = %v limit %d", rec.labels, rec.limit)
	}

	rec.err = errors.New("quota")
	resp, res = w.Videos(ctx, 0)
	if res.Success || resp == nil || len(resp.Items) != 0 || len(resp.Queries) != 0 {
		t.Errorf("failure = %+v, %+v", resp, res)
	}
}
