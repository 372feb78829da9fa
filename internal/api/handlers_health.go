// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

package api

import (
	"net/http"
	"time"
)

// HealthStatus is the /api/health payload.
type HealthStatus struct {
	// Status is "healthy", or "degraded" when any configured dependency has
	// an open breaker. Unconfigured dependencies use fallbacks and do not
	// degrade the service.
	Status       string                      `json:"status"`
	Version      string                      `json:"version"`
	Uptime       float64                     `json:"uptime_seconds"`
	Dependencies map[string]DependencyStatus `json:"dependencies"`
}

// DependencyStatus reports one upstream.
type DependencyStatus struct {
	Configured bool   `json:"configured"`
	Breaker    string `json:"breaker"`
}

// Health reports service status. It always answers 200 since every
// recommendation route has a local fallback.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:       "healthy",
		Version:      h.version,
		Uptime:       time.Since(h.startTime).Seconds(),
		Dependencies: make(map[string]DependencyStatus, len(h.dependencies)),
	}
	for name, dep := range h.dependencies {
		ds := DependencyStatus{Configured: dep.Enabled(), Breaker: dep.BreakerState()}
		if ds.Configured && ds.Breaker == "open" {
			status.Status = "degraded"
		}
		status.Dependencies[name] = ds
	}
	NewResponseWriter(w, r).Success(status)
}
