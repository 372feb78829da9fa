// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/horizon/internal/resolve"
)

var _ resolve.EdgeSource = (*Client)(nil)

func newServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchEdges(t *testing.T) {
	t.Parallel()

	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != EdgesPath {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["maxEdgesPerNode"] != float64(2) {
			t.Errorf("maxEdgesPerNode = %v", body["maxEdgesPerNode"])
		}
		if list, _ := body["interests"].([]any); len(list) != 2 {
			t.Errorf("interests = %v", body["interests"])
		}
		_, _ = io.WriteString(w, `{"edges":[{"source":"B","target":"A"}]}`)
	})

	c := New(srv.URL+"/", time.Second)
	edges, err := c.FetchEdges(context.Background(), []string{"A", "B"}, 2)
	if err != nil {
		t.Fatalf("FetchEdges: %v", err)
	}
	if len(edges) != 1 || edges[0].Source != "B" || edges[0].Target != "A" {
		t.Errorf("edges = %+v", edges)
	}
}

func TestFetchEdges_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
		status  int
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				_, _ = io.WriteString(w, `{"success":false,"error":{"code":"X","message":"upstream gone"}}`)
			},
			status: http.StatusBadGateway,
		},
		{
			name: "malformed json",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, `{"edges": [`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := newServer(t, tt.handler)
			_, err := New(srv.URL, time.Second).FetchEdges(context.Background(), []string{"A", "B"}, 2)
			if !errors.Is(err, ErrUnavailable) {
				t.Fatalf("err = %v, want ErrUnavailable", err)
			}
			if tt.status != 0 {
				var se *StatusError
				if !errors.As(err, &se) || se.Code != tt.status {
					t.Errorf("err = %v, want status %d", err, tt.status)
				}
				if !strings.Contains(err.Error(), "upstream gone") {
					t.Errorf("error message not extracted: %v", err)
				}
			}
		})
	}
}

func TestFetchEdges_Unreachable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, time.Second).FetchEdges(context.Background(), []string{"A", "B"}, 2)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}

func TestBreaker_OpensOnServerErrors(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	c := New(srv.URL, time.Second)
	for i := 0; i < 15; i++ {
		_, _ = c.FetchEdges(context.Background(), []string{"A", "B"}, 2)
	}
	if got := hits.Load(); got != 10 {
		t.Errorf("server hit %d times, want 10 before the breaker opened", got)
	}
}

func TestBreaker_IgnoresClientErrors(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	})

	c := New(srv.URL, time.Second)
	for i := 0; i < 15; i++ {
		_, _ = c.RecommendInterests(context.Background(), nil, 0)
	}
	if got := hits.Load(); got != 15 {
		t.Errorf("server hit %d times, want 15", got)
	}
}

func TestRecommendInterests(t *testing.T) {
	t.Parallel()

	var raw string
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		raw = string(b)
		_, _ = io.WriteString(w, `{"items":["Робототехника","Большие данные"]}`)
	})

	c := New(srv.URL, time.Second)
	items, err := c.RecommendInterests(context.Background(), []string{"AI"}, 0)
	if err != nil {
		t.Fatalf("RecommendInterests: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("items = %v", items)
	}
	if strings.Contains(raw, "limit") {
		t.Errorf("zero limit should be omitted, body %s", raw)
	}

	if _, err := c.RecommendInterests(context.Background(), []string{"AI"}, 5); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(raw, `"limit":5`) {
		t.Errorf("limit missing from body %s", raw)
	}
}

func TestRecommendVideos(t *testing.T) {
	t.Parallel()

	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != VideosPath {
			t.Errorf("path = %s", r.URL.Path)
		}
		_, _ = io.WriteString(w, `{"queries":["go лекция"],"items":[{"videoId":"abc","title":"T","url":"https://www.youtube.com/watch?v=abc","channelTitle":"C","publishedAt":"2024-01-01T00:00:00Z"}]}`)
	})

	resp, err := New(srv.URL, time.Second).RecommendVideos(context.Background(), []string{"go"}, 3)
	if err != nil {
		t.Fatalf("RecommendVideos: %v", err)
	}
	if len(resp.Queries) != 1 || len(resp.Items) != 1 || resp.Items[0].VideoID != "abc" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestBreaker_IgnoresCancellation(t *testing.T) {
	t.Parallel()

	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
			return
		case <-time.After(100 * time.Millisecond):
		}
		_, _ = io.WriteString(w, `{"edges":[{"source":"A","target":"B"}]}`)
	})

	c := New(srv.URL, 5*time.Second)
	for i := 0; i < 12; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		time.AfterFunc(5*time.Millisecond, cancel)
		_, err := c.FetchEdges(ctx, []string{"A", "B"}, 2)
		cancel()
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("request %d: err = %v, want context.Canceled", i, err)
		}
	}

	if state := c.edgesCB.State(); state != "closed" {
		t.Fatalf("breaker %s after canceled requests, want closed", state)
	}
	edges, err := c.FetchEdges(context.Background(), []string{"A", "B"}, 2)
	if err != nil || len(edges) != 1 {
		t.Errorf("healthy call after cancellations = %v, %v", edges, err)
	}
}

func TestContextCancelled(t *testing.T) {
	t.Parallel()

	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := New(srv.URL, 5*time.Second).FetchEdges(ctx, []string{"A", "B"}, 2)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want deadline exceeded", err)
	}
}
