// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

package main

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/horizon/internal/canvas"
	"github.com/tomtom215/horizon/internal/geometry"
	"github.com/tomtom215/horizon/internal/graph"
	"github.com/tomtom215/horizon/internal/layout"
)

func layoutCmd(opts *rootOptions) *cobra.Command {
	var (
		apply bool
		seed  uint64
	)

	cmd := &cobra.Command{
		Use:   "layout <label>...",
		Short: "Preview where new interests would be placed",
		Long: "Runs the radial layout for the given labels around the current view center,\n" +
			"avoiding existing interests. With --apply the previewed positions are added.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(ctx context.Context, s *session) error {
				var rng *rand.Rand
				if cmd.Flags().Changed("seed") {
					rng = rand.New(rand.NewPCG(seed, seed))
				}
				engine := layout.NewEngine(s.cfg.Layout.Engine(), rng)

				nodes := s.world.Nodes()
				obstacles := make([]graph.Point, len(nodes))
				known := make([]string, len(nodes))
				for i, n := range nodes {
					obstacles[i] = n.Position()
					known[i] = n.ID
				}

				labels := make([]string, 0, len(args))
				for _, l := range graph.UniqueLabels(args) {
					if graph.HasLabel(nodes, l) {
						_, _ = fmt.Fprintf(s.out, "  %s %s %s\n", warn.Sprint("•"), l, subtle.Sprint("already on the canvas"))
						continue
					}
					labels = append(labels, l)
				}
				if len(labels) == 0 {
					return nil
				}

				center := s.world.Viewport().WorldCenter()
				placements := engine.Place(layout.Request{
					Labels:    labels,
					Center:    center,
					Obstacles: obstacles,
					KnownIDs:  known,
				})

				rows := make([][]string, 0, len(placements))
				for _, p := range placements {
					dist := math.Hypot(p.X-center.X, p.Y-center.Y)
					note := ""
					if p.Overflow {
						note = "overflow"
					}
					rows = append(rows, []string{p.ID, p.Label, formatCoord(p.X), formatCoord(p.Y), formatCoord(dist), note})
				}
				table(s.out, []string{"ID", "LABEL", "X", "Y", "R", ""}, rows)

				if !apply {
					return nil
				}
				added := 0
				for _, p := range placements {
					pos := graph.Point{X: p.X, Y: p.Y}
					if res := s.world.AddNode(p.Label, &pos); res.Success {
						added++
					}
				}
				_, _ = fmt.Fprintf(s.out, "%s added %d\n", statusIcon(added > 0), added)
				if added > 0 {
					s.resolveEdges(ctx)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&apply, "apply", false, "add the previewed interests")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for reproducible placement")
	return cmd
}

func edgesCmd(opts *rootOptions) *cobra.Command {
	var cached bool

	cmd := &cobra.Command{
		Use:   "edges",
		Short: "Resolve and show the links between interests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, opts, func(ctx context.Context, s *session) error {
				if !cached {
					res := s.world.ResolveEdges(ctx)
					s.printResolution(res)
					if res.Err != nil && opts.verbose {
						_, _ = fmt.Fprintf(s.out, "  %s\n", subtle.Sprint(res.Err))
					}
				}

				labels := make(map[string]string)
				for _, n := range s.world.Nodes() {
					labels[n.ID] = n.Label
				}
				edges := s.world.Edges()
				rows := make([][]string, 0, len(edges))
				for _, e := range edges {
					rows = append(rows, []string{labels[e.Source], "↔", labels[e.Target]})
				}
				table(s.out, []string{"SOURCE", "", "TARGET"}, rows)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&cached, "cached", false, "show stored edges without resolving")
	return cmd
}

// sceneNode is a node as it would be drawn.
type sceneNode struct {
	graph.Node
	ScreenX  float64       `json:"screenX"`
	ScreenY  float64       `json:"screenY"`
	Visual   canvas.Visual `json:"visual"`
	Selected bool          `json:"selected,omitempty"`
}

// scene is everything a renderer needs for one frame.
type scene struct {
	Theme   canvas.Theme      `json:"theme"`
	View    canvas.Transform  `json:"view"`
	Width   float64           `json:"width"`
	Height  float64           `json:"height"`
	Nodes   []sceneNode       `json:"nodes"`
	Edges   []graph.Edge      `json:"edges"`
	Overlay *geometry.Overlay `json:"overlay"`
}

func (s *session) scene() scene {
	vp := s.world.Viewport()
	selected, _ := s.world.Selected()
	theme := s.world.Theme()

	nodes := s.world.Nodes()
	out := make([]sceneNode, 0, len(nodes))
	for _, n := range nodes {
		x, y := vp.WorldToScreen(n.Position())
		out = append(out, sceneNode{
			Node:     n,
			ScreenX:  x,
			ScreenY:  y,
			Visual:   canvas.VisualFor(n.ColorIndex, theme),
			Selected: n.ID == selected.ID,
		})
	}
	edges := s.world.Edges()
	if edges == nil {
		edges = []graph.Edge{}
	}
	return scene{
		Theme:   theme,
		View:    vp.Transform(),
		Width:   s.opts.width,
		Height:  s.opts.height,
		Nodes:   out,
		Edges:   edges,
		Overlay: s.world.Overlay(),
	}
}

func renderCmd(opts *rootOptions) *cobra.Command {
	var (
		format     string
		cols, rows int
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the canvas as JSON or a text map",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "json" && format != "map" {
				return fmt.Errorf("unknown format %q (json or map)", format)
			}
			return withSession(cmd, opts, func(_ context.Context, s *session) error {
				sc := s.scene()
				if format == "map" {
					_, _ = fmt.Fprint(s.out, textMap(sc, cols, rows))
					return nil
				}
				data, err := json.MarshalIndent(sc, "", "  ")
				if err != nil {
					return fmt.Errorf("encode scene: %w", err)
				}
				_, _ = fmt.Fprintln(s.out, string(data))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "json or map")
	cmd.Flags().IntVar(&cols, "cols", 80, "map width in characters")
	cmd.Flags().IntVar(&rows, "rows", 24, "map height in characters")
	return cmd
}

// textMap draws the visible part of the scene on a character grid: edges as
// dots, nodes as a marker followed by their label.
func textMap(sc scene, cols, rows int) string {
	if cols < 10 {
		cols = 10
	}
	if rows < 4 {
		rows = 4
	}
	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", cols))
	}

	cell := func(x, y float64) (int, int, bool) {
		c := int(math.Floor(x / sc.Width * float64(cols)))
		r := int(math.Floor(y / sc.Height * float64(rows)))
		return c, r, c >= 0 && c < cols && r >= 0 && r < rows
	}
	put := func(c, r int, ch rune) {
		if c >= 0 && c < cols && r >= 0 && r < rows {
			grid[r][c] = ch
		}
	}

	pos := make(map[string]sceneNode, len(sc.Nodes))
	for _, n := range sc.Nodes {
		pos[n.ID] = n
	}
	for _, e := range sc.Edges {
		a, okA := pos[e.Source]
		b, okB := pos[e.Target]
		if !okA || !okB {
			continue
		}
		c1, r1, _ := cell(a.ScreenX, a.ScreenY)
		c2, r2, _ := cell(b.ScreenX, b.ScreenY)
		steps := max(abs(c2-c1), abs(r2-r1))
		for i := 1; i < steps; i++ {
			t := float64(i) / float64(steps)
			put(c1+int(math.Round(t*float64(c2-c1))), r1+int(math.Round(t*float64(r2-r1))), '·')
		}
	}

	hidden := 0
	for _, n := range sc.Nodes {
		c, r, visible := cell(n.ScreenX, n.ScreenY)
		if !visible {
			hidden++
			continue
		}
		marker := '○'
		if n.Selected {
			marker = '●'
		}
		put(c, r, marker)
		for i, ch := range []rune(n.Label) {
			if c+2+i >= cols {
				break
			}
			put(c+2+i, r, ch)
		}
	}

	var b strings.Builder
	border := "+" + strings.Repeat("-", cols) + "+\n"
	b.WriteString(border)
	for _, line := range grid {
		b.WriteString("|")
		b.WriteString(string(line))
		b.WriteString("|\n")
	}
	b.WriteString(border)
	fmt.Fprintf(&b, "zoom %.2f  pan %.0f,%.0f  theme %s", sc.View.Scale, sc.View.OffsetX, sc.View.OffsetY, sc.Theme)
	if hidden > 0 {
		fmt.Fprintf(&b, "  (%d off screen)", hidden)
	}
	b.WriteString("\n")
	return b.String()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
