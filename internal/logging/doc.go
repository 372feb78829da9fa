// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

// Package logging provides the process-wide zerolog logger for Horizon.
//
// The pure canvas packages (graph, layout, geometry, canvas) never log. Every
// boundary package does: edge resolution logs fallbacks and dropped stale
// results, collaborator clients log breaker transitions and failures, the
// store logs persistence errors, and the API logs requests.
//
// # Usage
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Int("nodes", n).Msg("world loaded")
//	logging.Ctx(ctx).Warn().Err(err).Msg("edge service unavailable")
//
//	log := logging.WithComponent("resolve")
//	log.Debug().Uint64("generation", gen).Msg("stale edges dropped")
//
// Always terminate an event with Msg or Send; an unterminated event is
// never written.
//
// # Context
//
// HTTP middleware stores a request id in the request context. Ctx attaches
// request_id and correlation_id fields when they are present, so every line
// logged while serving one request can be joined.
//
// # slog
//
// NewSlogLogger returns a *slog.Logger that writes through zerolog. The
// supervisor tree uses it for sutureslog events.
//
// # Secrets
//
// MaskSecret shortens API keys before they reach a log line.
package logging
