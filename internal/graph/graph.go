// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

package graph

import (
	"strings"
)

// KeySeparator joins the two endpoints of a canonical edge key.
const KeySeparator = "||"

// Point is a position in world space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is a single interest on the canvas.
type Node struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`

	// ColorIndex is the palette slot derived from the label. It is stored so
	// a node keeps its color even if the palette hashing changes.
	ColorIndex int `json:"colorIndex"`
}

// Position returns the node center.
func (n Node) Position() Point {
	return Point{X: n.X, Y: n.Y}
}

// Edge is an undirected connection between two node ids.
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// LabelEdge is an edge expressed in labels, as exchanged with the semantic
// edge service.
type LabelEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Key returns the canonical key of the label pair.
func (e LabelEdge) Key() string {
	return CanonicalKey(e.Source, e.Target)
}

// CanonicalKey returns the order-independent key of an undirected pair.
func CanonicalKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + KeySeparator + b
}

// NormalizeLabel trims surrounding whitespace from a label.
func NormalizeLabel(label string) string {
	return strings.TrimSpace(label)
}

// FoldLabel returns the comparison form of a label. Two labels that fold to
// the same string are considered duplicates within one graph.
func FoldLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// UniqueLabels trims labels and drops empty and exact duplicate entries,
// keeping first-seen order.
func UniqueLabels(labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	out := make([]string, 0, len(labels))
	for _, raw := range labels {
		label := NormalizeLabel(raw)
		if label == "" {
			continue
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	return out
}

// Labels returns the labels of nodes in order.
func Labels(nodes []Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Label
	}
	return out
}

// HasLabel reports whether a node with a case-insensitively equal label exists.
func HasLabel(nodes []Node, label string) bool {
	folded := FoldLabel(label)
	for _, n := range nodes {
		if FoldLabel(n.Label) == folded {
			return true
		}
	}
	return false
}

// FindNode returns the index of the node with the given id, or -1.
func FindNode(nodes []Node, id string) int {
	for i, n := range nodes {
		if n.ID == id {
			return i
		}
	}
	return -1
}
