// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

package main

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/tomtom215/horizon/internal/world"
)

var (
	brand  = color.New(color.FgHiMagenta, color.Bold)
	subtle = color.New(color.FgHiBlack)
	good   = color.New(color.FgGreen)
	bad    = color.New(color.FgRed)
	warn   = color.New(color.FgYellow)
	info   = color.New(color.FgCyan)
)

func statusIcon(ok bool) string {
	if ok {
		return good.Sprint("✓")
	}
	return bad.Sprint("✗")
}

// table prints rows aligned under headers. Widths count runes, so Cyrillic
// labels line up.
func table(w io.Writer, headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], utf8.RuneCountInString(cell))
			}
		}
	}

	line := func(cells []string) string {
		var b strings.Builder
		b.WriteString("  ")
		for i, cell := range cells {
			if i >= len(widths) {
				break
			}
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell)+2))
		}
		return strings.TrimRight(b.String(), " ")
	}

	sep := make([]string, len(headers))
	for i := range headers {
		sep[i] = strings.Repeat("─", widths[i])
	}
	_, _ = subtle.Fprintln(w, line(headers))
	_, _ = subtle.Fprintln(w, line(sep))
	for _, row := range rows {
		_, _ = fmt.Fprintln(w, line(row))
	}
}

// reportedError is an error already shown to the user.
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

// reportResult prints a mutation outcome and converts failures to an error
// so the command exits non-zero.
func reportResult(w io.Writer, action string, res world.Result) error {
	if !res.Success {
		_, _ = fmt.Fprintf(w, "%s %s: %s\n", statusIcon(false), action, res.Error)
		return reportedError{err: res.Err()}
	}
	detail := ""
	if len(res.IDs) > 0 {
		detail = " " + subtle.Sprint(strings.Join(res.IDs, ", "))
	}
	_, _ = fmt.Fprintf(w, "%s %s%s\n", statusIcon(true), action, detail)
	return nil
}
