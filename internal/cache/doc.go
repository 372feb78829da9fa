// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

/*
Package cache provides the in-memory data structures Horizon keeps hot.

# LRU

LRU is a generic least recently used cache with a per-entry TTL. The
recommendation service holds one per endpoint so repeated requests for the
same interests skip the LLM:

	interests := cache.NewLRU[[]string](512, 15*time.Minute)
	interests.Set(key, items)
	if items, ok := interests.Get(key); ok {
		// served from memory
	}

Expired entries are dropped lazily on Get; CleanupExpired sweeps the rest and
is run periodically by the server's janitor service.

# PlaneGrid

PlaneGrid buckets points into square cells so the layout engine can ask
"is anything within r of (x, y)?" without scanning every node. Queries only
visit the cells overlapping the search radius.

All types are safe for concurrent use.
*/
package cache
