// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

/*
Package middleware provides the HTTP middleware shared by the Horizon API.

  - RequestID: accepts or generates an X-Request-ID and seeds the logging
    context with request and correlation ids
  - Prometheus: records request count, latency and in-flight gauge, labelled
    by the chi route pattern rather than the raw path
  - AccessLog: one structured zerolog line per request

The API router applies them in that order:

	r.Use(middleware.RequestID)
	r.Use(middleware.Prometheus)
	r.Use(middleware.AccessLog)
*/
package middleware
