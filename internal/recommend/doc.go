// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

/*
Package recommend implements the three collaborator services behind the
Horizon API.

# Semantic edges

Edges asks the LLM to connect an interest list and keeps only edges between
two distinct listed interests, deduplicated by canonical key. When the LLM is
unavailable or proposes nothing usable, the same deterministic fallback the
canvas uses is returned, so the endpoint never answers with an error.

# Interest suggestions

Interests asks the LLM for short complementary interests and removes any
that are already present (case-insensitively). The fallback ranks a built-in
table of personality profiles by keyword overlap and suggests keywords of the
best-matching profiles followed by a fixed list of extras.

# Video suggestions

Videos turns interests into search queries (LLM first, then "<interest>
лекция" and "<interest> разбор"), runs up to MaxQueries of them against
YouTube in parallel and merges the results in query order without duplicate
video ids.

LLM-sourced interest and video responses are kept in a TTL LRU keyed by an
xxhash of the request.
*/
package recommend
