// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

// Package client talks to the Horizon API from the canvas side.
//
// Each endpoint has its own circuit breaker. Every failure mode (transport
// error, non-2xx status, malformed JSON, open breaker) is returned as an
// error wrapping ErrUnavailable; callers never see a panic and decide their
// own fallback. Client satisfies resolve.EdgeSource.
package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/horizon/internal/breaker"
	"github.com/tomtom215/horizon/internal/graph"
	"github.com/tomtom215/horizon/internal/logging"
	"github.com/tomtom215/horizon/internal/metrics"
	"github.com/tomtom215/horizon/internal/models"
)

// Endpoint paths.
const (
	EdgesPath     = "/api/graph/edges"
	InterestsPath = "/api/recommend/interests"
	VideosPath    = "/api/recommend/youtube"
)

// DefaultTimeout bounds a single request.
const DefaultTimeout = 20 * time.Second

// maxBody caps how much of a response is read.
const maxBody = 4 << 20

// ErrUnavailable wraps every request failure.
var ErrUnavailable = errors.New("horizon api unavailable")

// StatusError reports a non-2xx response.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("status %d", e.Code)
	}
	return fmt.Sprintf("status %d: %s", e.Code, e.Message)
}

// Client calls the three collaborator endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client

	edgesCB     *breaker.Breaker
	interestsCB *breaker.Breaker
	videosCB    *breaker.Breaker
}

// New creates a client for baseURL. A non-positive timeout selects
// DefaultTimeout.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: timeout})
}

// NewWithHTTPClient creates a client that sends requests through hc.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	// 4xx answers are the caller's fault and must not trip the breaker.
	// Neither does cancellation: superseded edge requests are canceled
	// routinely while the API is healthy.
	isSuccessful := func(err error) bool {
		var se *StatusError
		return err == nil || errors.Is(err, context.Canceled) || (errors.As(err, &se) && se.Code < 500)
	}
	settings := breaker.Settings{IsSuccessful: isSuccessful}

	return &Client{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		httpClient:  hc,
		edgesCB:     breaker.New("horizon-edges", settings),
		interestsCB: breaker.New("horizon-interests", settings),
		videosCB:    breaker.New("horizon-videos", settings),
	}
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchEdges asks the semantic edge service for label edges.
func (c *Client) FetchEdges(ctx context.Context, labels []string, maxEdgesPerNode int) ([]graph.LabelEdge, error) {
	req := models.EdgesRequest{
		Interests:       models.Strings(labels),
		MaxEdgesPerNode: models.Num(float64(maxEdgesPerNode)),
	}
	resp, err := breaker.Call(c.edgesCB, func() (*models.EdgesResponse, error) {
		var out models.EdgesResponse
		return &out, c.post(ctx, EdgesPath, req, &out)
	})
	if err != nil {
		return nil, c.fail(ctx, EdgesPath, err)
	}
	return resp.Edges, nil
}

// RecommendInterests asks for new interests. limit <= 0 lets the server pick.
func (c *Client) RecommendInterests(ctx context.Context, labels []string, limit int) ([]string, error) {
	req := models.InterestsRequest{Interests: models.Strings(labels)}
	if limit > 0 {
		req.Limit = models.Num(float64(limit))
	}
	resp, err := breaker.Call(c.interestsCB, func() (*models.InterestsResponse, error) {
		var out models.InterestsResponse
		return &out, c.post(ctx, InterestsPath, req, &out)
	})
	if err != nil {
		return nil, c.fail(ctx, InterestsPath, err)
	}
	return resp.Items, nil
}

// RecommendVideos asks for videos matching labels.
func (c *Client) RecommendVideos(ctx context.Context, labels []string, limit int) (*models.VideosResponse, error) {
	req := models.VideosRequest{Interests: models.Strings(labels)}
	if limit > 0 {
		req.Limit = models.Num(float64(limit))
	}
	resp, err := breaker.Call(c.videosCB, func() (*models.VideosResponse, error) {
		var out models.VideosResponse
		return &out, c.post(ctx, VideosPath, req, &out)
	})
	if err != nil {
		return nil, c.fail(ctx, VideosPath, err)
	}
	return resp, nil
}

func (c *Client) fail(ctx context.Context, path string, err error) error {
	logging.Ctx(ctx).Warn().Err(err).Str("path", path).Msg("horizon api request failed")
	return fmt.Errorf("%w: %s: %w", ErrUnavailable, path, err)
}

// post sends body as JSON and decodes a 2xx response into out.
func (c *Client) post(ctx context.Context, path string, body, out any) (err error) {
	start := time.Now()
	defer func() { metrics.RecordUpstream("horizon"+path, time.Since(start), err) }()

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if id := logging.RequestIDFromContext(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Message: errorMessage(data)}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorMessage extracts the message from an API error envelope, if any.
func errorMessage(data []byte) string {
	var env struct {
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(data, &env) != nil || env.Error == nil {
		return ""
	}
	return env.Error.Message
}
