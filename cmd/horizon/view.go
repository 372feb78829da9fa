// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/horizon/internal/canvas"
)

func themeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [dark|light|toggle]",
		Short:     "Show or change the node theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"dark", "light", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(_ context.Context, s *session) error {
				switch {
				case len(args) == 0:
				case args[0] == "toggle":
					s.world.ToggleTheme()
				default:
					theme, err := canvas.ParseTheme(args[0])
					if err != nil {
						return err
					}
					if err := reportResult(s.out, "theme", s.world.SetTheme(theme)); err != nil {
						return err
					}
				}
				_, _ = fmt.Fprintf(s.out, "theme %s\n", info.Sprint(s.world.Theme()))
				return nil
			})
		},
	}
}

func viewCmd(opts *rootOptions) *cobra.Command {
	var (
		zoom   float64
		dx, dy float64
		reset  bool
	)

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Show or adjust the pan and zoom of the canvas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, opts, func(_ context.Context, s *session) error {
				vp := s.world.Viewport()
				if reset {
					vp.Reset()
				}
				if dx != 0 || dy != 0 {
					vp.Pan(dx, dy)
				}
				if cmd.Flags().Changed("zoom") {
					if zoom <= 0 {
						return fmt.Errorf("zoom factor must be positive, got %g", zoom)
					}
					vp.ZoomBy(zoom)
				}

				t := vp.Transform()
				c := vp.WorldCenter()
				_, _ = fmt.Fprintf(s.out, "zoom   %s\n", info.Sprintf("%.3f", t.Scale))
				_, _ = fmt.Fprintf(s.out, "pan    %.1f, %.1f\n", t.OffsetX, t.OffsetY)
				_, _ = fmt.Fprintf(s.out, "center %.1f, %.1f\n", c.X, c.Y)
				return nil
			})
		},
	}
	cmd.Flags().Float64Var(&zoom, "zoom", 1, "multiply the zoom by this factor")
	cmd.Flags().Float64Var(&dx, "dx", 0, "pan right by this many screen pixels")
	cmd.Flags().Float64Var(&dy, "dy", 0, "pan down by this many screen pixels")
	cmd.Flags().BoolVar(&reset, "reset", false, "return to the default view")
	return cmd
}
