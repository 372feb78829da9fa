// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

package store

// Config selects a backend.
type Config struct {
	// Path of the badger directory. Empty together with InMemory=false
	// selects the map-backed MemoryStore.
	Path     string
	InMemory bool
}

// Open returns the backend described by cfg:
//   - Path set: durable BadgerStore
//   - InMemory: in-memory BadgerStore
//   - neither: MemoryStore
func Open(cfg Config) (KV, error) {
	switch {
	case cfg.Path != "" && !cfg.InMemory:
		return OpenBadger(BadgerConfig{Path: cfg.Path})
	case cfg.InMemory:
		return OpenBadger(BadgerConfig{InMemory: true})
	default:
		return NewMemoryStore(), nil
	}
}

// GCRunner is implemented by backends that need periodic value-log GC.
type GCRunner interface {
	RunGC() error
}
