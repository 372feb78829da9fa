// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

package layout

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var (
	slugDisallowed = regexp.MustCompile(`[^a-zа-я0-9\s-]`)
	slugSpaces     = regexp.MustCompile(`\s+`)
	slugDashes     = regexp.MustCompile(`-+`)
)

// StableID derives a content-based id from a label: lowercased, trimmed,
// stripped to latin/cyrillic letters, digits, spaces and dashes, with
// whitespace runs turned into single dashes. Labels with no usable
// characters get a random "interest-" id.
func StableID(label string) string {
	base := strings.TrimSpace(strings.ToLower(label))
	base = slugDisallowed.ReplaceAllString(base, "")
	base = slugSpaces.ReplaceAllString(base, "-")
	base = slugDashes.ReplaceAllString(base, "-")
	if base == "" {
		return "interest-" + uuid.NewString()[:8]
	}
	return base
}

// UniqueID returns StableID(label), suffixed with -1, -2, ... until it does
// not collide with taken. The returned id is added to taken.
func UniqueID(label string, taken map[string]struct{}) string {
	base := StableID(label)
	id := base
	for n := 1; ; n++ {
		if _, ok := taken[id]; !ok {
			break
		}
		id = base + "-" + strconv.Itoa(n)
	}
	taken[id] = struct{}{}
	return id
}
