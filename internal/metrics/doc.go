// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

/*
Package metrics holds the Prometheus collectors for Horizon.

Collectors are registered on the default registry through promauto and
served by the API at /metrics.

# Available Metrics

API:
  - horizon_api_requests_total{method,endpoint,status_code}
  - horizon_api_request_duration_seconds{method,endpoint}
  - horizon_api_active_requests

Edge resolution:
  - horizon_edge_resolutions_total{outcome}: remote, fallback or stale
  - horizon_edge_resolution_duration_seconds
  - horizon_edges_resolved: size of the last applied edge set

Layout:
  - horizon_layout_placements_total{result}: placed or overflow

Collaborators:
  - horizon_upstream_requests_total{service,outcome}
  - horizon_upstream_request_duration_seconds{service}
  - horizon_recommendations_total{kind,source}

Cache and store:
  - horizon_cache_hits_total{cache}, horizon_cache_misses_total{cache}
  - horizon_store_operations_total{op,result}

Circuit breakers:
  - horizon_circuit_breaker_state{name}: 0=closed, 1=half-open, 2=open
  - horizon_circuit_breaker_requests_total{name,result}
  - horizon_circuit_breaker_consecutive_failures{name}
  - horizon_circuit_breaker_state_transitions_total{name,from_state,to_state}

# Usage

	start := time.Now()
	resp, err := doCall(ctx)
	metrics.RecordUpstream("youtube", time.Since(start), err)

Label values are fixed vocabularies; never pass user input as a label.
*/
package metrics
