// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

package recommend

import (
	"context"
	"time"

	"github.com/tomtom215/horizon/internal/store"
)

// persistPrefix keeps recommendation entries apart from world slices.
const persistPrefix = "horizon_recommend_"

type persisted[T any] struct {
	Value T         `json:"value"`
	Saved time.Time `json:"saved"`
}

// loadPersisted returns a stored result younger than the cache TTL.
func loadPersisted[T any](ctx context.Context, s *Service, key string) (T, bool) {
	var zero T
	if s.store == nil {
		return zero, false
	}
	entry, ok, err := store.Load[persisted[T]](ctx, s.store, persistPrefix+key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("Failed to read persisted recommendation")
		return zero, false
	}
	if !ok || time.Since(entry.Saved) > s.ttl {
		return zero, false
	}
	return entry.Value, true
}

func savePersisted[T any](ctx context.Context, s *Service, key string, value T) {
	if s.store == nil {
		return
	}
	entry := persisted[T]{Value: value, Saved: time.Now().UTC()}
	if err := store.Save(ctx, s.store, persistPrefix+key, entry); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("Failed to persist recommendation")
	}
}
