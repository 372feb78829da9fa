// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/tomtom215/horizon/internal/graph"
	"github.com/tomtom215/horizon/internal/logging"
	"github.com/tomtom215/horizon/internal/models"
	"github.com/tomtom215/horizon/internal/recommend"
	"github.com/tomtom215/horizon/internal/validation"
)

type edgesParams struct {
	Interests       []string `validate:"max=40,dive,label"`
	MaxEdgesPerNode int      `validate:"gte=1,lte=4"`
}

type interestsParams struct {
	Interests []string `validate:"min=1,max=30,dive,label"`
	Limit     int      `validate:"gte=4,lte=30"`
}

type videosParams struct {
	Interests []string `validate:"min=1,max=25,dive,label"`
	Limit     int      `validate:"gte=1,lte=40"`
}

// rejectInvalid validates p and writes a 400 on failure. A failed interests
// rule reports the missing-interests message.
func rejectInvalid(w http.ResponseWriter, r *http.Request, p any) bool {
	err := validation.ValidateStruct(p)
	if err == nil {
		return false
	}
	rw := NewResponseWriter(w, r)
	var verr *validation.RequestValidationError
	if errors.As(err, &verr) {
		for _, fe := range verr.Errors() {
			if strings.Contains(fe.Field, ".Interests") {
				rw.BadRequest(msgNoInterests)
				return true
			}
		}
	}
	rw.ErrorWithDetails(http.StatusBadRequest, ErrCodeValidationFailed, err.Error(), nil)
	return true
}

// GraphEdges proposes semantic edges between interests. Fewer than two
// usable interests yield an empty edge list, not an error.
func (h *Handler) GraphEdges(w http.ResponseWriter, r *http.Request) {
	var req models.EdgesRequest
	if !decodeOrReject(w, r, &req) {
		return
	}

	p := edgesParams{
		Interests:       req.Interests.Sanitize(recommend.MaxEdgeInterests),
		MaxEdgesPerNode: req.MaxEdgesPerNode.Int(graph.DefaultEdgesPerNode, graph.MinEdgesPerNode, graph.MaxEdgesPerNode),
	}
	if rejectInvalid(w, r, &p) {
		return
	}

	edges := h.svc.Edges(r.Context(), p.Interests, p.MaxEdgesPerNode)
	if edges == nil {
		edges = []graph.LabelEdge{}
	}
	NewResponseWriter(w, r).JSON(http.StatusOK, models.EdgesResponse{Edges: edges})
}

// RecommendInterests suggests interests that are not yet on the graph.
func (h *Handler) RecommendInterests(w http.ResponseWriter, r *http.Request) {
	var req models.InterestsRequest
	if !decodeOrReject(w, r, &req) {
		return
	}

	p := interestsParams{
		Interests: graph.UniqueLabels(req.Interests.Sanitize(recommend.MaxSuggestInterests)),
		Limit:     req.Limit.Int(recommend.DefaultSuggestLimit, recommend.MinSuggestLimit, recommend.MaxSuggestLimit),
	}
	if rejectInvalid(w, r, &p) {
		return
	}

	items, err := h.svc.Interests(r.Context(), p.Interests, p.Limit)
	if err != nil {
		h.recommendFailed(w, r, "interests", err)
		return
	}
	if items == nil {
		items = []string{}
	}
	NewResponseWriter(w, r).JSON(http.StatusOK, models.InterestsResponse{Items: items})
}

// RecommendYouTube finds videos for the interests.
func (h *Handler) RecommendYouTube(w http.ResponseWriter, r *http.Request) {
	var req models.VideosRequest
	if !decodeOrReject(w, r, &req) {
		return
	}

	p := videosParams{
		Interests: req.Interests.Sanitize(recommend.MaxVideoInterests),
		Limit:     req.Limit.Int(recommend.DefaultVideoLimit, recommend.MinVideoLimit, recommend.MaxVideoLimit),
	}
	if rejectInvalid(w, r, &p) {
		return
	}

	resp, err := h.svc.Videos(r.Context(), p.Interests, p.Limit)
	if err != nil {
		h.recommendFailed(w, r, "youtube", err)
		return
	}
	out := models.VideosResponse{Queries: resp.Queries, Items: resp.Items}
	if out.Queries == nil {
		out.Queries = []string{}
	}
	if out.Items == nil {
		out.Items = []models.Video{}
	}
	NewResponseWriter(w, r).JSON(http.StatusOK, out)
}

func (h *Handler) recommendFailed(w http.ResponseWriter, r *http.Request, kind string, err error) {
	if errors.Is(err, recommend.ErrNoInterests) {
		NewResponseWriter(w, r).BadRequest(msgNoInterests)
		return
	}
	logging.Ctx(r.Context()).Error().Err(err).Str("kind", kind).Msg("Recommendation failed")
	NewResponseWriter(w, r).InternalError(msgRecommendFailed)
}
