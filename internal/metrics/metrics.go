// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "horizon_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "horizon_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "horizon_api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Edge Resolution Metrics
	EdgeResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "horizon_edge_resolutions_total",
			Help: "Edge resolution cycles by outcome",
		},
		[]string{"outcome"}, // remote, fallback, stale
	)

	EdgeResolutionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "horizon_edge_resolution_duration_seconds",
			Help:    "Time from request to applied edge set",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	EdgesResolved = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "horizon_edges_resolved",
			Help: "Number of edges in the most recently applied edge set",
		},
	)

	// Layout Metrics
	LayoutPlacements = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "horizon_layout_placements_total",
			Help: "Radial layout placements by result",
		},
		[]string{"result"}, // placed, overflow
	)

	// Upstream (LLM, YouTube, Horizon API) Metrics
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "horizon_upstream_requests_total",
			Help: "Outbound requests to collaborator services",
		},
		[]string{"service", "outcome"}, // outcome: ok, error
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "horizon_upstream_request_duration_seconds",
			Help:    "Outbound request duration in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"service"},
	)

	// Recommendation Metrics
	RecommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "horizon_recommendations_total",
			Help: "Recommendation responses by kind and source",
		},
		[]string{"kind", "source"}, // kind: edges, interests, videos; source: llm, fallback, empty
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "horizon_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "horizon_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache"},
	)

	// Store Metrics
	StoreOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "horizon_store_operations_total",
			Help: "World store operations by kind and result",
		},
		[]string{"op", "result"}, // op: get, set, delete, gc
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "horizon_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "horizon_circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // success, failure, rejected
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "horizon_circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "horizon_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordAPIRequest records one served API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest moves the in-flight gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordEdgeResolution records a finished resolution cycle. Stale cycles
// carry no edge count.
func RecordEdgeResolution(outcome string, edges int, duration time.Duration) {
	EdgeResolutions.WithLabelValues(outcome).Inc()
	if outcome == "stale" {
		return
	}
	EdgeResolutionDuration.Observe(duration.Seconds())
	EdgesResolved.Set(float64(edges))
}

// RecordLayout records the result of one radial layout batch.
func RecordLayout(placed, overflow int) {
	if placed > 0 {
		LayoutPlacements.WithLabelValues("placed").Add(float64(placed))
	}
	if overflow > 0 {
		LayoutPlacements.WithLabelValues("overflow").Add(float64(overflow))
	}
}

// RecordUpstream records one outbound call.
func RecordUpstream(service string, duration time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	UpstreamRequests.WithLabelValues(service, outcome).Inc()
	UpstreamDuration.WithLabelValues(service).Observe(duration.Seconds())
}

// RecordRecommendation records which source produced a response.
func RecordRecommendation(kind, source string) {
	RecommendationsServed.WithLabelValues(kind, source).Inc()
}

// RecordCacheLookup records a cache hit or miss.
func RecordCacheLookup(cache string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cache).Inc()
	} else {
		CacheMisses.WithLabelValues(cache).Inc()
	}
}

// RecordStoreOperation records one store operation.
func RecordStoreOperation(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	StoreOperations.WithLabelValues(op, result).Inc()
}
