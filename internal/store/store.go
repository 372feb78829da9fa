// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

// Package store persists world state as independent key-value slices.
//
// Each slice (nodes, edges, view, theme, last selected node) lives under its
// own key and is read or written on its own; a missing key means "no state
// yet". Two backends exist: BadgerStore for durable storage and MemoryStore
// for tests and ephemeral runs.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/tomtom215/horizon/internal/metrics"
)

// Keys of the persisted slices.
const (
	KeyNodes        = "horizon_world_nodes"
	KeyEdges        = "horizon_world_edges"
	KeyView         = "horizon_world_view"
	KeyTheme        = "horizon_theme"
	KeyLastSelected = "horizon_last_selected_node"
)

// ErrNotFound is returned when a key has no value.
var ErrNotFound = errors.New("key not found")

// KV is a byte-oriented key-value store.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Load decodes the JSON value under key into a T. ok is false when the key
// is absent.
func Load[T any](ctx context.Context, kv KV, key string) (value T, ok bool, err error) {
	defer func() { metrics.RecordStoreOperation("load", err) }()

	data, err := kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return value, false, nil
	}
	if err != nil {
		return value, false, fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal(data, &value); err != nil {
		return value, false, fmt.Errorf("decode %s: %w", key, err)
	}
	return value, true, nil
}

// Save encodes value as JSON under key.
func Save[T any](ctx context.Context, kv KV, key string, value T) (err error) {
	defer func() { metrics.RecordStoreOperation("save", err) }()

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Remove deletes key. Removing an absent key is not an error.
func Remove(ctx context.Context, kv KV, key string) (err error) {
	defer func() { metrics.RecordStoreOperation("remove", err) }()

	if err := kv.Delete(ctx, key); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}
