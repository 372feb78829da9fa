// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

/*
Package api serves the Horizon collaborator endpoints over a chi router.

Routes:

	POST /api/graph/edges            {interests, maxEdgesPerNode?} -> {edges}
	POST /api/recommend/interests    {interests, limit?}           -> {items}
	POST /api/recommend/youtube      {interests, limit?}           -> {queries, items}
	GET  /api/health                 service and dependency status
	GET  /metrics                    Prometheus exposition

Successful recommendation responses are the bare wire objects the canvas
client decodes. Every error uses the APIResponse envelope with a
machine-readable code and a human-readable message.

Middleware stack, outermost first: request id, real IP, panic recovery, CORS,
access log. The /api group adds security headers, Prometheus metrics and
per-IP rate limiting; the recommendation routes share one limiter since each
call may fan out to the LLM and YouTube.
*/
package api
