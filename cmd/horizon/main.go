// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

// Command horizon edits a persisted interest canvas from the terminal.
//
// The world (nodes, edges, view, theme, selection) lives in a badger
// directory, by default under the user config dir. Mutating commands resolve
// semantic edges through the Horizon API right away; with --offline or when
// the API is down, the deterministic fallback edges are used instead.
//
//	horizon add "Музыка" "Кино"
//	horizon list
//	horizon edges
//	horizon recommend --add
//	horizon render --format map
package main

import (
	"errors"
	"fmt"
	"os"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var shown reportedError
		if !errors.As(err, &shown) {
			_, _ = fmt.Fprintf(os.Stderr, "%s %v\n", bad.Sprint("horizon:"), err)
		}
		os.Exit(1)
	}
}
