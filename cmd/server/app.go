// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/horizon/internal/api"
	"github.com/tomtom215/horizon/internal/config"
	"github.com/tomtom215/horizon/internal/llm"
	"github.com/tomtom215/horizon/internal/logging"
	"github.com/tomtom215/horizon/internal/recommend"
	"github.com/tomtom215/horizon/internal/store"
	"github.com/tomtom215/horizon/internal/supervisor"
	"github.com/tomtom215/horizon/internal/supervisor/services"
	"github.com/tomtom215/horizon/internal/youtube"
)

// app is the wired server process.
type app struct {
	tree   *supervisor.SupervisorTree
	server *http.Server
	kv     store.KV
}

func newApp(cfg *config.Config) (*app, error) {
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return nil, fmt.Errorf("create supervisor tree: %w", err)
	}
	a := &app{tree: tree}

	recCfg := cfg.Recommend.Service()
	if cfg.Recommend.StorePath != "" {
		kv, err := store.OpenBadger(store.BadgerConfig{Path: cfg.Recommend.StorePath})
		if err != nil {
			return nil, fmt.Errorf("open recommendation store: %w", err)
		}
		a.kv = kv
		recCfg.Store = kv
		tree.AddMaintenanceService(services.NewPeriodicService("store-gc", cfg.Store.GCInterval, services.StoreGC(kv)))
		logging.Info().Str("path", cfg.Recommend.StorePath).Msg("Recommendation store opened")
	}

	llmClient := llm.New(cfg.LLM.Client())
	ytClient := youtube.New(cfg.YouTube.Client())
	svc := recommend.New(llmClient, ytClient, recCfg)
	tree.AddMaintenanceService(services.NewPeriodicService("recommend-cache-janitor", cfg.Recommend.CacheTTL, services.CacheCleanup(svc.CleanupExpired)))

	handler := api.NewHandler(svc, version, map[string]api.Dependency{
		"llm":     llmClient,
		"youtube": ytClient,
	})
	router := api.NewRouter(handler, api.NewChiMiddleware(middlewareConfig(cfg)))

	a.server = &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      writeTimeout(cfg),
		IdleTimeout:       60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(a.server, services.DefaultShutdownTimeout))

	return a, nil
}

// Close releases the store. The tree must have stopped.
func (a *app) Close() {
	if a.kv == nil {
		return
	}
	if err := a.kv.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing recommendation store")
	}
}

func middlewareConfig(cfg *config.Config) *api.ChiMiddlewareConfig {
	mw := api.DefaultChiMiddlewareConfig()
	if len(cfg.CORS.AllowedOrigins) > 0 {
		mw.CORSAllowedOrigins = cfg.CORS.AllowedOrigins
	}
	mw.RateLimitRequests = cfg.RateLimit.Requests
	mw.RateLimitWindow = cfg.RateLimit.Window
	mw.RateLimitDisabled = cfg.RateLimit.Disabled
	return mw
}

// writeTimeout leaves room for the slowest upstream chain: an LLM call
// followed by a video search.
func writeTimeout(cfg *config.Config) time.Duration {
	upstream := cfg.LLM.Timeout + cfg.YouTube.Timeout
	if upstream > cfg.Server.Timeout {
		return upstream + 5*time.Second
	}
	return cfg.Server.Timeout
}
