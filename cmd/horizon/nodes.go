// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tomtom215/horizon/internal/graph"
	"github.com/tomtom215/horizon/internal/world"
)

func addCmd(opts *rootOptions) *cobra.Command {
	var at []float64

	cmd := &cobra.Command{
		Use:   "add <label>...",
		Short: "Add interests; several labels are placed around the view center",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(ctx context.Context, s *session) error {
				var pos *graph.Point
				if cmd.Flags().Changed("at") {
					if len(at) != 2 || len(args) != 1 {
						return fmt.Errorf("--at takes x,y and a single label")
					}
					pos = &graph.Point{X: at[0], Y: at[1]}
				}

				var res world.Result
				if len(args) == 1 {
					res = s.world.AddNode(args[0], pos)
				} else {
					res = s.world.AddInterests(args)
				}
				if err := reportResult(s.out, "add", res); err != nil {
					return err
				}
				if len(res.IDs) > 0 {
					s.resolveEdges(ctx)
				}
				return nil
			})
		},
	}
	cmd.Flags().Float64SliceVar(&at, "at", nil, "world position x,y (single label only)")
	return cmd
}

func removeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id|label>",
		Aliases: []string{"rm"},
		Short:   "Remove an interest and its edges",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(ctx context.Context, s *session) error {
				id, _ := s.lookupNode(args[0])
				if id == "" {
					id = args[0]
				}
				if err := reportResult(s.out, "remove", s.world.RemoveNode(id)); err != nil {
					return err
				}
				s.resolveEdges(ctx)
				return nil
			})
		},
	}
}

func listCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List interests",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, opts, func(_ context.Context, s *session) error {
				selected, _ := s.world.Selected()
				nodes := s.world.Nodes()

				rows := make([][]string, 0, len(nodes))
				for _, n := range nodes {
					mark := ""
					if n.ID == selected.ID {
						mark = "●"
					}
					rows = append(rows, []string{
						mark,
						n.ID,
						n.Label,
						strconv.FormatFloat(n.X, 'f', 1, 64),
						strconv.FormatFloat(n.Y, 'f', 1, 64),
						strconv.Itoa(n.ColorIndex),
					})
				}
				table(s.out, []string{"", "ID", "LABEL", "X", "Y", "COLOR"}, rows)
				_, _ = fmt.Fprintf(s.out, "\n  %d interests, %d edges\n", len(nodes), len(s.world.Edges()))
				return nil
			})
		},
	}
}

func moveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "move <id|label> <x> <y>",
		Short: "Move an interest to a world position",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("x: %w", err)
			}
			y, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("y: %w", err)
			}
			return withSession(cmd, opts, func(_ context.Context, s *session) error {
				id, found := s.lookupNode(args[0])
				if !found {
					id = args[0]
				}
				return reportResult(s.out, "move", s.world.MoveNode(id, graph.Point{X: x, Y: y}))
			})
		},
	}
}

func selectCmd(opts *rootOptions) *cobra.Command {
	var clearSel bool

	cmd := &cobra.Command{
		Use:   "select <id|label>",
		Short: "Select an interest; videos then focus on it",
		Args:  cobra.RangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if clearSel == (len(args) == 1) {
				return fmt.Errorf("pass either a node or --clear")
			}
			return withSession(cmd, opts, func(_ context.Context, s *session) error {
				if clearSel {
					return reportResult(s.out, "clear selection", s.world.SelectNode(""))
				}
				id, found := s.lookupNode(args[0])
				if !found {
					id = args[0]
				}
				return reportResult(s.out, "select", s.world.SelectNode(id))
			})
		},
	}
	cmd.Flags().BoolVar(&clearSel, "clear", false, "clear the selection")
	return cmd
}
