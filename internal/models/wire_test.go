// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

package models

import (
	"reflect"
	"testing"

	"github.com/goccy/go-json"
)

func TestEdgesRequest_LenientDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		want     []string
		wantMax  int
		maxValid bool
	}{
		{
			name:     "well formed",
			body:     `{"interests":[" Go ","Rust",""],"maxEdgesPerNode":2}`,
			want:     []string{"Go", "Rust"},
			wantMax:  2,
			maxValid: true,
		},
		{
			name:    "mixed array and string knob",
			body:    `{"interests":["A",7,null,{"x":1},"B"],"maxEdgesPerNode":"lots"}`,
			want:    []string{"A", "B"},
			wantMax: 3,
		},
		{
			name:    "interests not an array",
			body:    `{"interests":"Go, Rust"}`,
			want:    []string{},
			wantMax: 3,
		},
		{
			name:     "fractional and out of range",
			body:     `{"interests":[],"maxEdgesPerNode":9.7}`,
			want:     []string{},
			wantMax:  4,
			maxValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var req EdgesRequest
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if got := req.Interests.Sanitize(40); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("interests = %#v, want %#v", got, tt.want)
			}
			if got := req.MaxEdgesPerNode.Int(3, 1, 4); got != tt.wantMax {
				t.Errorf("max = %d, want %d", got, tt.wantMax)
			}
			if valid := req.MaxEdgesPerNode != nil && req.MaxEdgesPerNode.Valid; valid != tt.maxValid {
				t.Errorf("valid = %v, want %v", valid, tt.maxValid)
			}
		})
	}
}

func TestStrings_SanitizeLimit(t *testing.T) {
	t.Parallel()

	s := Strings{"a", " ", "b", "c", "d"}
	if got := s.Sanitize(2); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Sanitize(2) = %v", got)
	}
	if got := s.Sanitize(0); len(got) != 4 {
		t.Errorf("Sanitize(0) = %v", got)
	}
}

func TestNumber_Encode(t *testing.T) {
	t.Parallel()

	body, err := json.Marshal(VideosRequest{Interests: Strings{"Go"}, Limit: Num(10)})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(body) != `{"interests":["Go"],"limit":10}` {
		t.Errorf("body = %s", body)
	}

	body, _ = json.Marshal(InterestsRequest{Interests: Strings{"Go"}})
	if string(body) != `{"interests":["Go"]}` {
		t.Errorf("body without limit = %s", body)
	}
}

func TestNumber_IntDefaults(t *testing.T) {
	t.Parallel()

	var absent *Number
	if absent.Int(14, 4, 30) != 14 {
		t.Error("nil number should take the default")
	}
	if Num(1).Int(14, 4, 30) != 4 {
		t.Error("low value should clamp up")
	}
	if Num(-3.5).Int(15, 1, 40) != 1 {
		t.Error("negative value should clamp to the minimum")
	}
}
