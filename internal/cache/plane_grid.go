// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

package cache

import (
	"math"
	"strconv"
	"sync"
)

// PlaneGrid buckets world-space points into square cells so proximity checks
// only visit the cells around the query point instead of every point.
//
// Time Complexity:
//   - Insert: O(1)
//   - AnyWithin / QueryNearby: O(k) where k = points in neighbouring cells
//   - Remove: O(cell size)
type PlaneGrid struct {
	mu       sync.RWMutex
	cells    map[CellKey][]*PlaneEntry
	cellSize float64
	entries  map[string]*PlaneEntry
	seq      int
}

// CellKey identifies a grid cell.
type CellKey struct {
	X, Y int
}

// PlaneEntry is a point stored in the grid.
type PlaneEntry struct {
	ID   string
	X, Y float64
	cell CellKey
}

// NewPlaneGrid creates a grid with square cells of the given side. A side
// equal to the usual query radius keeps lookups to a 3x3 block.
func NewPlaneGrid(cellSize float64) *PlaneGrid {
	if cellSize <= 0 || math.IsNaN(cellSize) || math.IsInf(cellSize, 0) {
		cellSize = 100
	}
	return &PlaneGrid{
		cells:    make(map[CellKey][]*PlaneEntry),
		cellSize: cellSize,
		entries:  make(map[string]*PlaneEntry),
	}
}

func (g *PlaneGrid) cellFor(x, y float64) CellKey {
	return CellKey{
		X: int(math.Floor(x / g.cellSize)),
		Y: int(math.Floor(y / g.cellSize)),
	}
}

// Insert adds or moves the point with the given id. An empty id stores an
// anonymous point that can't be removed individually.
func (g *PlaneGrid) Insert(id string, x, y float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if id == "" {
		g.seq++
		id = "\x00anon-" + strconv.Itoa(g.seq)
	}
	if existing, ok := g.entries[id]; ok {
		g.removeFromCellUnlocked(existing)
	}

	entry := &PlaneEntry{ID: id, X: x, Y: y, cell: g.cellFor(x, y)}
	g.cells[entry.cell] = append(g.cells[entry.cell], entry)
	g.entries[id] = entry
}

// Remove deletes a point by id.
func (g *PlaneGrid) Remove(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	entry, ok := g.entries[id]
	if !ok {
		return false
	}
	g.removeFromCellUnlocked(entry)
	delete(g.entries, id)
	return true
}

func (g *PlaneGrid) removeFromCellUnlocked(entry *PlaneEntry) {
	cell := g.cells[entry.cell]
	for i, e := range cell {
		if e.ID == entry.ID {
			cell[i] = cell[len(cell)-1]
			cell = cell[:len(cell)-1]
			break
		}
	}
	if len(cell) == 0 {
		delete(g.cells, entry.cell)
		return
	}
	g.cells[entry.cell] = cell
}

// span returns how many cells around the center must be visited for radius.
func (g *PlaneGrid) span(radius float64) int {
	return int(math.Ceil(radius/g.cellSize)) + 1
}

// AnyWithin reports whether some stored point lies strictly closer than
// radius to (x, y).
func (g *PlaneGrid) AnyWithin(x, y, radius float64) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n := g.span(radius)
	center := g.cellFor(x, y)
	for dx := -n; dx <= n; dx++ {
		for dy := -n; dy <= n; dy++ {
			for _, e := range g.cells[CellKey{X: center.X + dx, Y: center.Y + dy}] {
				if math.Hypot(e.X-x, e.Y-y) < radius {
					return true
				}
			}
		}
	}
	return false
}

// QueryNearby returns copies of all points within radius of (x, y).
func (g *PlaneGrid) QueryNearby(x, y, radius float64) []PlaneEntry {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var results []PlaneEntry
	n := g.span(radius)
	center := g.cellFor(x, y)
	for dx := -n; dx <= n; dx++ {
		for dy := -n; dy <= n; dy++ {
			for _, e := range g.cells[CellKey{X: center.X + dx, Y: center.Y + dy}] {
				if math.Hypot(e.X-x, e.Y-y) <= radius {
					results = append(results, *e)
				}
			}
		}
	}
	return results
}

// Size returns the number of stored points.
func (g *PlaneGrid) Size() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.entries)
}

// CellCount returns the number of non-empty cells.
func (g *PlaneGrid) CellCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.cells)
}
