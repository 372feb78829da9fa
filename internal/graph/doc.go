// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

// Package graph holds the interest graph data model and the edge resolution
// rules shared by the canvas client and the semantic edge service.
//
// Nodes carry a stable id, a user-visible label and a world-space position.
// Edges are undirected and identified by their canonical key, the sorted
// endpoint pair joined with "||". Edges are derived from the label set and
// are never edited directly:
//
//	validated := graph.ValidateEdges(remote, labels)
//	if len(validated) == 0 {
//	    validated = graph.FallbackEdges(labels, maxPerNode)
//	}
//	edges := graph.ResolveIDs(validated, nodes)
//
// Resolve wraps those three steps.
package graph
