// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

package canvas

import (
	"errors"
	"testing"
)

func TestHashColorIndex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		label string
		want  int
	}{
		{"AI", 4},
		{"ai", 4},
		{"  Ai ", 4},
		{"Технологии", 0},
		{"Дизайн", 3},
		{"Философия", 4},
		{"Бизнес", 1},
		{"😀", 7},
	}
	for _, tt := range tests {
		if got := HashColorIndex(tt.label); got != tt.want {
			t.Errorf("HashColorIndex(%q) = %d, want %d", tt.label, got, tt.want)
		}
	}
}

func TestVisualFor(t *testing.T) {
	t.Parallel()

	dark := VisualFor(0, Dark)
	want := Visual{
		Gradient:  "radial-gradient(circle at 30% 30%, #b595ff, #9b7bff 65%, #6dd7ff)",
		Glow:      "#9b7bff",
		TextColor: "#e9eef7",
	}
	if dark != want {
		t.Errorf("dark visual = %+v, want %+v", dark, want)
	}

	light := VisualFor(0, Light)
	want = Visual{
		Gradient:  "radial-gradient(circle at 30% 30%, #fff0ff, #c7b8ff 65%, #7bd5ff)",
		Glow:      "#7bd5ff",
		TextColor: "#0f172a",
	}
	if light != want {
		t.Errorf("light visual = %+v, want %+v", light, want)
	}

	if VisualFor(8, Dark) != VisualFor(0, Dark) {
		t.Error("index 8 should wrap to 0")
	}
	if VisualFor(-1, Light) != VisualFor(7, Light) {
		t.Error("index -1 should wrap to 7")
	}
	if VisualForLabel("Дизайн", Dark) != VisualFor(3, Dark) {
		t.Error("VisualForLabel disagrees with HashColorIndex")
	}
}

func TestParseTheme(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Theme{"dark": Dark, " Light ": Light, "DARK": Dark} {
		got, err := ParseTheme(in)
		if err != nil || got != want {
			t.Errorf("ParseTheme(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseTheme("sepia"); !errors.Is(err, ErrUnknownTheme) {
		t.Errorf("ParseTheme(sepia) error = %v", err)
	}
	if Dark.Toggle() != Light || Light.Toggle() != Dark {
		t.Error("Toggle should flip themes")
	}
}
