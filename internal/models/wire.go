// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

package models

import (
	"bytes"
	"math"

	"github.com/goccy/go-json"

	"github.com/tomtom215/horizon/internal/graph"
)

// Strings is a lenient []string. Decoding keeps the string elements of a
// JSON array, replacing other elements with ""; any non-array value decodes
// to an empty list.
type Strings []string

// UnmarshalJSON implements json.Unmarshaler.
func (s *Strings) UnmarshalJSON(data []byte) error {
	*s = Strings{}
	if !bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	out := make(Strings, 0, len(raw))
	for _, item := range raw {
		var v string
		if err := json.Unmarshal(item, &v); err != nil {
			v = ""
		}
		out = append(out, v)
	}
	*s = out
	return nil
}

// Sanitize trims every entry, drops empty ones and keeps at most max
// (max <= 0 keeps all).
func (s Strings) Sanitize(max int) []string {
	out := make([]string, 0, len(s))
	for _, v := range s {
		if v = graph.NormalizeLabel(v); v == "" {
			continue
		}
		out = append(out, v)
		if max > 0 && len(out) == max {
			break
		}
	}
	return out
}

// Number is a lenient JSON number: strings, booleans and other non-numbers
// decode as absent.
type Number struct {
	Value float64
	Valid bool
}

// Num returns a valid Number.
func Num(v float64) *Number {
	return &Number{Value: v, Valid: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err != nil || math.IsNaN(v) {
		*n = Number{}
		return nil
	}
	*n = Number{Value: v, Valid: true}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// Int floors n and clamps it to [lo, hi]. An absent n yields def.
func (n *Number) Int(def, lo, hi int) int {
	if n == nil || !n.Valid {
		return def
	}
	v := math.Floor(n.Value)
	if v < float64(lo) {
		return lo
	}
	if v > float64(hi) {
		return hi
	}
	return int(v)
}

// EdgesRequest asks for a semantic edge set over interests.
type EdgesRequest struct {
	Interests       Strings `json:"interests"`
	MaxEdgesPerNode *Number `json:"maxEdgesPerNode,omitempty"`
}

// EdgesResponse carries label edges.
type EdgesResponse struct {
	Edges []graph.LabelEdge `json:"edges"`
}

// InterestsRequest asks for new interest suggestions.
type InterestsRequest struct {
	Interests Strings `json:"interests"`
	Limit     *Number `json:"limit,omitempty"`
}

// InterestsResponse carries suggested labels not present in the request.
type InterestsResponse struct {
	Items []string `json:"items"`
}

// VideosRequest asks for videos matching interests.
type VideosRequest struct {
	Interests Strings `json:"interests"`
	Limit     *Number `json:"limit,omitempty"`
}

// Video is one search result.
type Video struct {
	VideoID      string `json:"videoId"`
	Title        string `json:"title"`
	URL          string `json:"url"`
	ChannelTitle string `json:"channelTitle"`
	PublishedAt  string `json:"publishedAt"`
}

// VideosResponse carries the search queries used and the merged results.
type VideosResponse struct {
	Queries []string `json:"queries"`
	Items   []Video  `json:"items"`
}
