// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

/*
Package config loads Horizon configuration with koanf v2.

# Sources

Layers are applied in order, later ones winning:

 1. Built-in defaults (defaultConfig)
 2. A YAML file: CONFIG_PATH, else the first of DefaultConfigPaths that exists
 3. Environment variables, through an explicit mapping

Unmapped environment variables are ignored.

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT, HTTP_TIMEOUT
  - CORS_ORIGINS: comma-separated list
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

Logging:
  - LOG_LEVEL, LOG_FORMAT (json, console), LOG_CALLER

Collaborators:
  - OPENAI_API_KEY, OPENAI_BASE_URL, OPENAI_MODEL, LLM_TIMEOUT
  - YOUTUBE_API_KEY, YOUTUBE_BASE_URL, YOUTUBE_TIMEOUT, YOUTUBE_RPS,
    YOUTUBE_RELEVANCE_LANGUAGE
  - RECOMMEND_CACHE_TTL, RECOMMEND_CACHE_SIZE

Canvas client:
  - HORIZON_API_URL, HORIZON_API_TIMEOUT
  - HORIZON_STORE_PATH, HORIZON_STORE_IN_MEMORY, HORIZON_STORE_GC_INTERVAL
  - EDGE_DEBOUNCE, MAX_EDGES_PER_NODE
  - CANVAS_MIN_SCALE, CANVAS_MAX_SCALE, CANVAS_ZOOM_SPEED, DRAG_THRESHOLD

Every key can also be set from YAML using the koanf paths, e.g.

	server:
	  port: 3000
	canvas:
	  max_scale: 3
	edges:
	  debounce: 550ms
*/
package config
