// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/horizon/internal/logging"
	"github.com/tomtom215/horizon/internal/store"
)

// DefaultTaskTimeout bounds one run of a periodic task.
const DefaultTaskTimeout = 5 * time.Minute

// Task is one housekeeping pass.
type Task func(ctx context.Context) error

// PeriodicService runs a Task every interval until canceled. A failing run
// is logged and retried on the next tick; it never stops the service.
type PeriodicService struct {
	name     string
	interval time.Duration
	timeout  time.Duration
	task     Task
	logger   zerolog.Logger
}

// NewPeriodicService creates a service named name.
func NewPeriodicService(name string, interval time.Duration, task Task) *PeriodicService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &PeriodicService{
		name:     name,
		interval: interval,
		timeout:  DefaultTaskTimeout,
		task:     task,
		logger:   logging.WithComponent("supervisor").With().Str("service", name).Logger(),
	}
}

// Serve implements suture.Service.
func (s *PeriodicService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Debug().Dur("interval", s.interval).Msg("Periodic service running")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.run(ctx)
		}
	}
}

func (s *PeriodicService) run(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	if err := s.task(runCtx); err != nil {
		s.logger.Warn().Err(err).Msg("Periodic task failed")
		return
	}
	s.logger.Debug().Dur("duration", time.Since(start)).Msg("Periodic task complete")
}

// String implements fmt.Stringer.
func (s *PeriodicService) String() string {
	return s.name
}

// StoreGC returns a task that runs value-log GC on gc.
func StoreGC(gc store.GCRunner) Task {
	return func(context.Context) error {
		return gc.RunGC()
	}
}

// CacheCleanup returns a task that drops expired entries from a cache.
func CacheCleanup(cleanup func() int) Task {
	logger := logging.WithComponent("supervisor")
	return func(context.Context) error {
		if n := cleanup(); n > 0 {
			logger.Debug().Int("removed", n).Msg("Dropped expired cache entries")
		}
		return nil
	}
}
