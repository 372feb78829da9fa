// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

// Package services adapts Horizon components to suture.Service.
//
// HTTPServerService turns http.Server's blocking ListenAndServe into a
// context-aware Serve with graceful shutdown. PeriodicService runs a
// housekeeping task on a ticker; the server uses it for badger value-log GC
// and for dropping expired recommendation cache entries.
package services
