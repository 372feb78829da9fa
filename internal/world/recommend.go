// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

package world

import (
	"context"
	"errors"

	"github.com/tomtom215/horizon/internal/graph"
	"github.com/tomtom215/horizon/internal/models"
)

// MaxRecommendations caps the interest suggestions shown at once.
const MaxRecommendations = 12

// DefaultVideoLimit is the number of videos requested for the drawer.
const DefaultVideoLimit = 10

// Messages for empty or failed recommendation states.
var (
	ErrNoInterests       = errors.New("сначала добавьте интересы")
	ErrNoRecommendations = errors.New("пока нет новых рекомендаций")
	ErrNoVideos          = errors.New("пока нет видео по этим интересам")
	ErrLoadFailed        = errors.New("ошибка загрузки. попробуйте позже")
	ErrNoRecommender     = errors.New("рекомендации недоступны")
)

// Recommend fetches new interests for the current labels. Suggestions that
// are already on the canvas, blank or repeated are dropped. At most
// MaxRecommendations are requested and returned. Failures yield no items and
// a message.
func (w *World) Recommend(ctx context.Context) ([]string, Result) {
	labels := w.Labels()
	if len(labels) == 0 {
		return []string{}, fail(ErrNoInterests)
	}
	if w.rec == nil {
		return []string{}, fail(ErrNoRecommender)
	}

	items, err := w.rec.RecommendInterests(ctx, labels, MaxRecommendations)
	if err != nil {
		w.log.Warn().Err(err).Msg("Interest recommendations failed")
		return []string{}, fail(ErrLoadFailed)
	}

	present := make(map[string]struct{}, len(labels)+len(items))
	for _, l := range labels {
		present[graph.FoldLabel(l)] = struct{}{}
	}
	out := make([]string, 0, MaxRecommendations)
	for _, item := range items {
		item = graph.NormalizeLabel(item)
		key := graph.FoldLabel(item)
		if item == "" {
			continue
		}
		if _, dup := present[key]; dup {
			continue
		}
		present[key] = struct{}{}
		out = append(out, item)
		if len(out) == MaxRecommendations {
			break
		}
	}
	if len(out) == 0 {
		return out, fail(ErrNoRecommendations)
	}
	return out, ok()
}

// Videos fetches content for the selected node, or for every label when
// nothing is selected. limit <= 0 selects DefaultVideoLimit. Failures yield
// an empty response and a message.
func (w *World) Videos(ctx context.Context, limit int) (*models.VideosResponse, Result) {
	empty := &models.VideosResponse{Queries: []string{}, Items: []models.Video{}}

	var labels []string
	if n, selected := w.Selected(); selected {
		labels = []string{n.Label}
	} else {
		labels = w.Labels()
	}
	if len(labels) == 0 {
		return empty, fail(ErrNoInterests)
	}
	if w.rec == nil {
		return empty, fail(ErrNoRecommender)
	}
	if limit <= 0 {
		limit = DefaultVideoLimit
	}

	resp, err := w.rec.RecommendVideos(ctx, labels, limit)
	if err != nil {
		w.log.Warn().Err(err).Msg("Video recommendations failed")
		return empty, fail(ErrLoadFailed)
	}
	if resp.Queries == nil {
		resp.Queries = []string{}
	}
	if resp.Items == nil {
		resp.Items = []models.Video{}
	}
	if len(resp.Items) == 0 {
		return resp, fail(ErrNoVideos)
	}
	return resp, ok()
}
