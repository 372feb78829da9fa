// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

/*
Command server runs the Horizon collaborator API.

It serves the three endpoints the canvas calls when it needs semantic
edges, interest suggestions or videos:

	POST /api/graph/edges
	POST /api/recommend/interests
	POST /api/recommend/youtube

plus GET /api/health and GET /metrics. Every endpoint answers without an
LLM or YouTube key: the deterministic fallbacks take over.

# Process layout

	horizon
	├── maintenance-layer
	│   ├── recommend-cache-janitor
	│   └── store-gc (only with RECOMMEND_STORE_PATH)
	└── api-layer
	    └── http-server

# Configuration

Configuration is layered by koanf: built-in defaults, then config.yaml (or
the file named by CONFIG_PATH), then environment variables. The most used
variables:

	HTTP_PORT              listen port (3000)
	LOG_LEVEL, LOG_FORMAT  zerolog level and json|console output
	OPENAI_API_KEY         enables LLM answers
	OPENAI_BASE_URL        any OpenAI-compatible endpoint
	OPENAI_MODEL           chat model name
	YOUTUBE_API_KEY        enables video search
	RECOMMEND_STORE_PATH   badger directory keeping AI results across restarts
	CORS_ORIGINS           comma separated allowed origins
	DISABLE_RATE_LIMIT     turns off per-IP limits

The process stops gracefully on SIGINT or SIGTERM.
*/
package main
