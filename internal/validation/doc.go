// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

// Package validation wraps go-playground/validator v10 behind a process-wide
// singleton with Horizon's custom tags:
//
//	theme     "dark" or "light", any case
//	loglevel  a zerolog level name
//	label     an interest label that is not blank after normalization
//
// Failures come back as *RequestValidationError, whose Error joins one
// readable message per field:
//
//	type serverConfig struct {
//	    Addr  string `validate:"required,hostname_port"`
//	    Theme string `validate:"omitempty,theme"`
//	}
//
//	if err := validation.ValidateStruct(&cfg); err != nil {
//	    return fmt.Errorf("invalid config: %w", err)
//	}
package validation
