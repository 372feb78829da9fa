// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

/*
Package youtube searches videos through the YouTube Data API v3.

Requests are paced by a token-bucket limiter and guarded by a circuit
breaker. SearchAll fans a query list out in parallel; a failed query
contributes no results instead of failing the batch.

API Reference: https://developers.google.com/youtube/v3/docs/search/list
*/
package youtube

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/tomtom215/horizon/internal/breaker"
	"github.com/tomtom215/horizon/internal/logging"
	"github.com/tomtom215/horizon/internal/metrics"
	"github.com/tomtom215/horizon/internal/models"
)

// Defaults.
const (
	DefaultBaseURL           = "https://www.googleapis.com/youtube/v3"
	DefaultTimeout           = 15 * time.Second
	DefaultRequestsPerSecond = 10
	DefaultRelevanceLanguage = "ru"
	DefaultResultsPerQuery   = 5
	DefaultConcurrency       = 6

	untitled     = "Без названия"
	unknownOwner = "Без канала"
	watchURL     = "https://www.youtube.com/watch?v="
)

// ErrMissingAPIKey is returned without a request when no key is set.
var ErrMissingAPIKey = errors.New("youtube: api key not configured")

// Config configures a Client.
type Config struct {
	BaseURL           string
	APIKey            string
	Timeout           time.Duration
	RequestsPerSecond float64
	RelevanceLanguage string
	Concurrency       int
}

// Client runs video searches.
type Client struct {
	baseURL     string
	apiKey      string
	language    string
	concurrency int
	httpClient  *http.Client
	limiter     *rate.Limiter
	cb          *breaker.Breaker
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet *struct {
			Title        *string `json:"title"`
			ChannelTitle *string `json:"channelTitle"`
			PublishedAt  *string `json:"publishedAt"`
		} `json:"snippet"`
	} `json:"items"`
}

// New creates a client. Empty fields take the defaults.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if cfg.RelevanceLanguage == "" {
		cfg.RelevanceLanguage = DefaultRelevanceLanguage
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	return &Client{
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		language:    cfg.RelevanceLanguage,
		concurrency: cfg.Concurrency,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		limiter:     rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Concurrency),
		cb:          breaker.New("youtube", breaker.Settings{}),
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// BreakerState reports the upstream circuit breaker state.
func (c *Client) BreakerState() string {
	return c.cb.State()
}

// Search returns up to maxResults videos for query. Results without a video
// id are dropped.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]models.Video, error) {
	if !c.Enabled() {
		return nil, ErrMissingAPIKey
	}
	if maxResults <= 0 {
		maxResults = DefaultResultsPerQuery
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("youtube rate limit wait: %w", err)
	}
	return breaker.Call(c.cb, func() ([]models.Video, error) {
		return c.search(ctx, query, maxResults)
	})
}

func (c *Client) search(ctx context.Context, query string, maxResults int) (videos []models.Video, err error) {
	start := time.Now()
	defer func() { metrics.RecordUpstream("youtube", time.Since(start), err) }()

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("q", query)
	params.Set("key", c.apiKey)
	params.Set("safeSearch", "strict")
	params.Set("relevanceLanguage", c.language)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create youtube request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("youtube search failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("youtube search returned status %d", resp.StatusCode)
	}

	var data searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode youtube response: %w", err)
	}

	videos = make([]models.Video, 0, len(data.Items))
	for _, item := range data.Items {
		id := item.ID.VideoID
		if id == "" {
			continue
		}
		v := models.Video{
			VideoID:      id,
			Title:        untitled,
			URL:          watchURL + id,
			ChannelTitle: unknownOwner,
		}
		if s := item.Snippet; s != nil {
			if s.Title != nil {
				v.Title = *s.Title
			}
			if s.ChannelTitle != nil {
				v.ChannelTitle = *s.ChannelTitle
			}
			if s.PublishedAt != nil {
				v.PublishedAt = *s.PublishedAt
			}
		}
		videos = append(videos, v)
	}
	return videos, nil
}

// SearchAll runs every query in parallel and returns one result list per
// query, in query order. A failed query yields an empty list.
func (c *Client) SearchAll(ctx context.Context, queries []string, perQuery int) [][]models.Video {
	results := make([][]models.Video, len(queries))
	var g errgroup.Group
	g.SetLimit(c.concurrency)
	for i, q := range queries {
		g.Go(func() error {
			videos, err := c.Search(ctx, q, perQuery)
			if err != nil {
				logging.Ctx(ctx).Debug().Err(err).Str("query", q).Msg("YouTube query failed")
				videos = []models.Video{}
			}
			results[i] = videos
			return nil
		})
	}
	// Workers record failures as empty lists and never return an error.
	_ = g.Wait()
	return results
}

// Merge flattens per-query results in order, keeping the first occurrence of
// each video id, and returns at most limit items.
func Merge(results [][]models.Video, limit int) []models.Video {
	if limit < 0 {
		limit = 0
	}
	seen := make(map[string]struct{})
	out := make([]models.Video, 0, limit)
	for _, list := range results {
		for _, v := range list {
			if len(out) >= limit {
				return out
			}
			if _, dup := seen[v.VideoID]; dup {
				continue
			}
			seen[v.VideoID] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}
