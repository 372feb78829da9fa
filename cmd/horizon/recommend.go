// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/horizon/internal/recommend"
)

func recommendCmd(opts *rootOptions) *cobra.Command {
	var add bool

	cmd := &cobra.Command{
		Use:     "recommend",
		Aliases: []string{"rec"},
		Short:   "Suggest new interests for the canvas",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, opts, func(ctx context.Context, s *session) error {
				items, res := s.world.Recommend(ctx)
				if !res.Success {
					return reportResult(s.out, "recommend", res)
				}
				for _, item := range items {
					_, _ = fmt.Fprintf(s.out, "  %s %s\n", info.Sprint("+"), item)
				}
				if !add {
					return nil
				}
				res = s.world.AddInterests(items)
				if err := reportResult(s.out, fmt.Sprintf("added %d", len(res.IDs)), res); err != nil {
					return err
				}
				if len(res.IDs) > 0 {
					s.resolveEdges(ctx)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&add, "add", false, "place the suggestions on the canvas")
	return cmd
}

func videosCmd(opts *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "videos",
		Short: "Find videos for the selected interest, or for all of them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, opts, func(ctx context.Context, s *session) error {
				resp, res := s.world.Videos(ctx, limit)
				if len(resp.Queries) > 0 {
					_, _ = fmt.Fprintf(s.out, "%s %s\n", subtle.Sprint("queries:"), strings.Join(resp.Queries, " | "))
				}
				if !res.Success {
					return reportResult(s.out, "videos", res)
				}
				rows := make([][]string, 0, len(resp.Items))
				for i, v := range resp.Items {
					rows = append(rows, []string{strconv.Itoa(i + 1), v.Title, v.ChannelTitle, v.URL})
				}
				table(s.out, []string{"#", "TITLE", "CHANNEL", "URL"}, rows)
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of videos (default 10)")
	return cmd
}

func profileCmd(opts *rootOptions) *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Describe the kind of person these interests suggest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, opts, func(_ context.Context, s *session) error {
				labels := s.world.Labels()
				p := recommend.DeriveProfile(labels)
				_, _ = fmt.Fprintf(s.out, "%s\n  %s\n", brand.Sprint(p.Name), p.Description)

				if top <= 0 {
					return nil
				}
				rows := make([][]string, 0, top)
				for _, ps := range recommend.RankProfiles(labels) {
					if len(rows) == top || ps.Score == 0 {
						break
					}
					rows = append(rows, []string{strconv.Itoa(ps.Score), ps.Profile.Name})
				}
				if len(rows) > 0 {
					_, _ = fmt.Fprintln(s.out)
					table(s.out, []string{"SCORE", "PROFILE"}, rows)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&top, "top", 3, "also list this many matching profiles")
	return cmd
}
