// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/horizon/internal/graph"
	"github.com/tomtom215/horizon/internal/models"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Recommender answers the three collaborator requests. recommend.Service
// implements it.
type Recommender interface {
	Edges(ctx context.Context, interests []string, maxPerNode int) []graph.LabelEdge
	Interests(ctx context.Context, interests []string, limit int) ([]string, error)
	Videos(ctx context.Context, interests []string, limit int) (*models.VideosResponse, error)
}

// Dependency is an upstream reported by the health endpoint.
type Dependency interface {
	Enabled() bool
	BreakerState() string
}

// Handler holds the API handler dependencies.
type Handler struct {
	svc          Recommender
	dependencies map[string]Dependency
	version      string
	startTime    time.Time
}

// NewHandler creates a handler. dependencies are keyed by display name.
func NewHandler(svc Recommender, version string, dependencies map[string]Dependency) *Handler {
	if dependencies == nil {
		dependencies = map[string]Dependency{}
	}
	return &Handler{
		svc:          svc,
		dependencies: dependencies,
		version:      version,
		startTime:    time.Now(),
	}
}

var (
	errBodyTooLarge = errors.New("request body too large")
	errInvalidJSON  = errors.New("invalid json")
)

// decodeBody reads a JSON request body into v. Any syntactically valid JSON
// is accepted; a value other than an object leaves v untouched, so missing
// fields and non-object bodies are treated alike.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer func() { _ = body.Close() }()

	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errBodyTooLarge
		}
		return err
	}
	if !json.Valid(data) {
		return errInvalidJSON
	}
	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}
	return json.Unmarshal(data, v)
}

// decodeOrReject decodes the request body and writes the 400 itself on
// failure.
func decodeOrReject(w http.ResponseWriter, r *http.Request, v any) bool {
	err := decodeBody(w, r, v)
	if err == nil {
		return true
	}
	rw := NewResponseWriter(w, r)
	if errors.Is(err, errBodyTooLarge) {
		rw.Error(http.StatusRequestEntityTooLarge, ErrCodeBadRequest, msgRequestTooLarge)
		return false
	}
	rw.BadRequest(msgInvalidJSON)
	return false
}
