// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

package graph

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Edge budget bounds shared by the client and the semantic edge service.
const (
	MinEdgesPerNode     = 1
	MaxEdgesPerNode     = 4
	DefaultEdgesPerNode = 3
)

// MinPathEdgesPerNode is the smallest budget under which FallbackEdges still
// yields a connected path. Clients resolving a whole world never go below it.
const MinPathEdgesPerNode = 2

// SortLocale is the collation used to order labels for fallback synthesis.
var SortLocale = language.Russian

// ClampEdgesPerNode bounds a requested per-node edge budget. Zero or negative
// values select the default.
func ClampEdgesPerNode(n int) int {
	if n <= 0 {
		return DefaultEdgesPerNode
	}
	if n > MaxEdgesPerNode {
		return MaxEdgesPerNode
	}
	return n
}

// SortLabels returns a locale-aware ordered copy of labels.
func SortLabels(labels []string) []string {
	sorted := make([]string, len(labels))
	copy(sorted, labels)
	// A Collator keeps internal buffers, so one is built per call.
	collate.New(SortLocale).SortStrings(sorted)
	return sorted
}

// ValidateEdges keeps the edges whose trimmed endpoints are two distinct
// labels from the given set, dropping canonical-key duplicates. The first
// occurrence of a pair wins and keeps its direction.
func ValidateEdges(edges []LabelEdge, labels []string) []LabelEdge {
	present := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		if l = NormalizeLabel(l); l != "" {
			present[l] = struct{}{}
		}
	}

	seen := make(map[string]struct{}, len(edges))
	out := make([]LabelEdge, 0, len(edges))
	for _, e := range edges {
		src := NormalizeLabel(e.Source)
		dst := NormalizeLabel(e.Target)
		if src == "" || dst == "" || src == dst {
			continue
		}
		if _, ok := present[src]; !ok {
			continue
		}
		if _, ok := present[dst]; !ok {
			continue
		}
		key := CanonicalKey(src, dst)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, LabelEdge{Source: src, Target: dst})
	}
	return out
}

// FallbackEdges deterministically builds an edge set from labels alone.
//
// Unique labels are sorted with SortLocale and each one is linked to its
// successor, giving a connected path when maxPerNode >= 2. When that yields
// fewer than two edges and at least three labels exist, one skip edge
// sorted[0]-sorted[2] is added. No node exceeds maxPerNode edges.
func FallbackEdges(labels []string, maxPerNode int) []LabelEdge {
	if maxPerNode < MinEdgesPerNode {
		maxPerNode = MinEdgesPerNode
	}
	sorted := SortLabels(UniqueLabels(labels))
	if len(sorted) < 2 {
		return []LabelEdge{}
	}

	degree := make(map[string]int, len(sorted))
	seen := make(map[string]struct{}, len(sorted))
	edges := make([]LabelEdge, 0, len(sorted))

	add := func(src, dst string) {
		if src == dst {
			return
		}
		key := CanonicalKey(src, dst)
		if _, dup := seen[key]; dup {
			return
		}
		if degree[src] >= maxPerNode || degree[dst] >= maxPerNode {
			return
		}
		seen[key] = struct{}{}
		degree[src]++
		degree[dst]++
		edges = append(edges, LabelEdge{Source: src, Target: dst})
	}

	for i := 0; i+1 < len(sorted); i++ {
		add(sorted[i], sorted[i+1])
	}
	if len(edges) < 2 && len(sorted) >= 3 {
		add(sorted[0], sorted[2])
	}
	return edges
}

// ResolveIDs maps label edges onto node ids. Edges with an endpoint that is
// not a live node label, self-loops after mapping, and id-level duplicates
// are discarded. Edge ids are the canonical key of the id pair.
func ResolveIDs(edges []LabelEdge, nodes []Node) []Edge {
	byLabel := make(map[string]string, len(nodes))
	for _, n := range nodes {
		byLabel[NormalizeLabel(n.Label)] = n.ID
	}

	seen := make(map[string]struct{}, len(edges))
	out := make([]Edge, 0, len(edges))
	for _, e := range edges {
		src, ok := byLabel[NormalizeLabel(e.Source)]
		if !ok {
			continue
		}
		dst, ok := byLabel[NormalizeLabel(e.Target)]
		if !ok || src == dst {
			continue
		}
		key := CanonicalKey(src, dst)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, Edge{ID: key, Source: src, Target: dst})
	}
	return out
}

// Resolve turns a remote edge proposal into the live edge set for nodes.
// It reports whether the deterministic fallback was used.
func Resolve(remote []LabelEdge, nodes []Node, maxPerNode int) (edges []Edge, fallback bool) {
	labels := Labels(nodes)
	validated := ValidateEdges(remote, labels)
	if len(validated) == 0 {
		validated = FallbackEdges(labels, maxPerNode)
		fallback = true
	}
	return ResolveIDs(validated, nodes), fallback
}

// PruneEdges drops edges that reference ids not present in nodes.
func PruneEdges(edges []Edge, nodes []Node) []Edge {
	live := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		live[n.ID] = struct{}{}
	}
	out := make([]Edge, 0, len(edges))
	for _, e := range edges {
		_, okS := live[e.Source]
		_, okT := live[e.Target]
		if okS && okT && e.Source != e.Target {
			out = append(out, e)
		}
	}
	return out
}
