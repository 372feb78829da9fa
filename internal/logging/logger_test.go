// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// capture points the global logger at a buffer for the rest of the test.
func capture(t *testing.T, level string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	Init(Config{Level: level, Format: "json", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })
	return &buf
}

func TestInit_JSON(t *testing.T) {
	buf := capture(t, "debug")

	Info().Int("nodes", 5).Msg("world loaded")

	out := buf.String()
	for _, want := range []string{`"level":"info"`, `"nodes":5`, `"message":"world loaded"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %s", out, want)
		}
	}
}

func TestInit_LevelFilters(t *testing.T) {
	buf := capture(t, "warn")

	Debug().Msg("hidden")
	Info().Msg("hidden")
	Warn().Msg("shown")
	Err(errors.New("boom")).Msg("failed")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("below-level events written: %s", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, `"error":"boom"`) {
		t.Errorf("expected warn and error events, got %s", out)
	}
}

func TestInit_Console(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Format: "console", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	Info().Msg("console line")
	if out := buf.String(); !strings.Contains(out, "console line") || strings.HasPrefix(out, "{") {
		t.Errorf("unexpected console output %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]zerolog.Level{
		"trace":    zerolog.TraceLevel,
		"DEBUG":    zerolog.DebugLevel,
		"info":     zerolog.InfoLevel,
		"warning":  zerolog.WarnLevel,
		" error ":  zerolog.ErrorLevel,
		"fatal":    zerolog.FatalLevel,
		"off":      zerolog.Disabled,
		"nonsense": zerolog.InfoLevel,
		"":         zerolog.InfoLevel,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestValidLevel(t *testing.T) {
	t.Parallel()

	if !ValidLevel("Warn") || !ValidLevel("disabled") {
		t.Error("known levels rejected")
	}
	if ValidLevel("verbose") || ValidLevel("") {
		t.Error("unknown levels accepted")
	}
}

func TestWithComponent(t *testing.T) {
	buf := capture(t, "info")

	l := WithComponent("resolve")
	l.Info().Msg("tagged")
	if !strings.Contains(buf.String(), `"component":"resolve"`) {
		t.Errorf("component missing: %s", buf.String())
	}
}

func TestMaskSecret(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":                       "",
		"short":                  "***",
		"sk-abcdefghijklmnop1234": "sk-a...1234",
	}
	for in, want := range tests {
		if got := MaskSecret(in); got != want {
			t.Errorf("MaskSecret(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	if got := Truncate("Философия", 4); got != "Фило..." {
		t.Errorf("Truncate = %q", got)
	}
	if got := Truncate("abc", 10); got != "abc" {
		t.Errorf("Truncate = %q", got)
	}
}
