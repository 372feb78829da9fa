// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

package canvas

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"
)

// Theme selects the node rendering variant.
type Theme string

const (
	Dark  Theme = "dark"
	Light Theme = "light"
)

// ErrUnknownTheme is returned by ParseTheme.
var ErrUnknownTheme = errors.New("unknown theme")

// ParseTheme accepts "dark" or "light" in any case.
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case Dark:
		return Dark, nil
	case Light:
		return Light, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTheme, s)
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == Light {
		return Dark
	}
	return Light
}

// Visual is the rendered style of a node.
type Visual struct {
	Gradient  string `json:"gradient"`
	Glow      string `json:"glow"`
	TextColor string `json:"text"`
}

type paletteEntry struct {
	dark  [2]string
	light [2]string
}

var palette = [...]paletteEntry{
	{dark: [2]string{"#9b7bff", "#6dd7ff"}, light: [2]string{"#c7b8ff", "#7bd5ff"}},
	{dark: [2]string{"#ff9bd5", "#ff7b7b"}, light: [2]string{"#ffd1e9", "#ff9fb0"}},
	{dark: [2]string{"#6bd6ff", "#7ce7c5"}, light: [2]string{"#a8e8ff", "#a3f2da"}},
	{dark: [2]string{"#ffd166", "#ff7f50"}, light: [2]string{"#ffe6a8", "#ffb8a1"}},
	{dark: [2]string{"#8ce1ff", "#7f7cff"}, light: [2]string{"#b9ecff", "#b7b4ff"}},
	{dark: [2]string{"#7ce0c3", "#4ac7ff"}, light: [2]string{"#b7f0dc", "#90d8ff"}},
	{dark: [2]string{"#ffb3b8", "#ff6fb1"}, light: [2]string{"#ffd7dc", "#ff9acb"}},
	{dark: [2]string{"#7fb4ff", "#9f7bff"}, light: [2]string{"#b8d4ff", "#cdb5ff"}},
}

// PaletteSize is the number of color slots.
const PaletteSize = len(palette)

// HashColorIndex maps a label to a palette slot. The hash runs over the
// UTF-16 code units of the lowercased, trimmed label so the slot matches the
// browser client for any input.
func HashColorIndex(label string) int {
	units := utf16.Encode([]rune(strings.TrimSpace(strings.ToLower(label))))
	hash := 0
	for i, c := range units {
		hash = (hash + int(c)*7 + i*11) % 997
	}
	return hash % PaletteSize
}

// VisualFor renders palette slot index for theme. Out-of-range indices wrap.
func VisualFor(index int, theme Theme) Visual {
	entry := palette[((index%PaletteSize)+PaletteSize)%PaletteSize]
	stops, amount := entry.dark, 0.10
	if theme == Light {
		stops, amount = entry.light, 0.22
	}
	start, end := stops[0], stops[1]

	v := Visual{
		Gradient:  fmt.Sprintf("radial-gradient(circle at 30%% 30%%, %s, %s 65%%, %s)", lighten(start, amount), start, end),
		Glow:      start,
		TextColor: "#e9eef7",
	}
	if theme == Light {
		v.Glow = end
		v.TextColor = "#0f172a"
	}
	return v
}

// VisualForLabel is VisualFor(HashColorIndex(label), theme).
func VisualForLabel(label string, theme Theme) Visual {
	return VisualFor(HashColorIndex(label), theme)
}

// lighten adds 255*amount to each channel of a #rrggbb color.
func lighten(hex string, amount float64) string {
	n, err := strconv.ParseUint(strings.TrimPrefix(hex, "#"), 16, 32)
	if err != nil {
		return hex
	}
	ch := func(shift uint) uint64 {
		c := float64((n >> shift) & 0xff)
		return uint64(math.Min(255, math.Floor(c+255*amount+0.5)))
	}
	return fmt.Sprintf("#%02x%02x%02x", ch(16), ch(8), ch(0))
}
