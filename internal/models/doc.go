// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

/*
Package models defines the wire types shared by the Horizon API server and
its client.

Three endpoints exist:

	POST /api/graph/edges          EdgesRequest     -> EdgesResponse
	POST /api/recommend/interests  InterestsRequest -> InterestsResponse
	POST /api/recommend/youtube    VideosRequest    -> VideosResponse

Success bodies are the bare response types, not wrapped in an envelope.

Requests are decoded leniently. Interests is a Strings value, which accepts
any JSON array and keeps only its string elements. Numeric knobs are *float64
so that an absent value, a fractional value and a non-number can be told
apart from zero; Int folds them into the handler's default.
*/
package models
