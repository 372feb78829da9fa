// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/horizon/internal/canvas"
	"github.com/tomtom215/horizon/internal/geometry"
	"github.com/tomtom215/horizon/internal/layout"
	"github.com/tomtom215/horizon/internal/llm"
	"github.com/tomtom215/horizon/internal/recommend"
	"github.com/tomtom215/horizon/internal/resolve"
	"github.com/tomtom215/horizon/internal/youtube"
)

// DefaultConfigPaths are searched in order when no path is given.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/horizon/config.yaml",
	"/etc/horizon/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	layoutDefaults := layout.DefaultConfig()
	return &Config{
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    3000,
			Timeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
		RateLimit: RateLimitConfig{
			Requests: 60,
			Window:   time.Minute,
		},
		LLM: LLMConfig{
			BaseURL: llm.DefaultBaseURL,
			Model:   llm.DefaultModel,
			Timeout: llm.DefaultTimeout,
		},
		YouTube: YouTubeConfig{
			BaseURL:           youtube.DefaultBaseURL,
			Timeout:           youtube.DefaultTimeout,
			RequestsPerSecond: youtube.DefaultRequestsPerSecond,
			RelevanceLanguage: youtube.DefaultRelevanceLanguage,
		},
		Recommend: RecommendConfig{
			CacheTTL:  recommend.DefaultCacheTTL,
			CacheSize: recommend.DefaultCacheCapacity,
		},
		Store: StoreConfig{
			Path:       "",
			GCInterval: 10 * time.Minute,
		},
		Client: ClientConfig{
			BaseURL: "http://localhost:3000",
			Timeout: 20 * time.Second,
		},
		Canvas: CanvasConfig{
			MinScale:      canvas.DefaultMinScale,
			MaxScale:      canvas.DefaultMaxScale,
			ZoomSpeed:     canvas.DefaultZoomSpeed,
			Friction:      canvas.DefaultFriction,
			MinSpeed:      canvas.DefaultMinSpeed,
			FrameInterval: canvas.DefaultFrameInterval,
			DragThreshold: canvas.DefaultDragThreshold,
			NodeRadius:    geometry.DefaultNodeRadius,
			EdgePadding:   geometry.DefaultPadding,
			EdgeMargin:    geometry.DefaultMargin,
		},
		Layout: LayoutConfig{
			MinRadius:     layoutDefaults.MinRadius,
			MaxRadius:     layoutDefaults.MaxRadius,
			MinSeparation: layoutDefaults.MinSeparation,
			Attempts:      layoutDefaults.Attempts,
		},
		Edges: EdgesConfig{
			Debounce:        resolve.DefaultDebounce,
			MaxEdgesPerNode: resolve.DefaultMaxEdgesPerNode,
		},
	}
}

// Default returns the built-in configuration without reading any source.
func Default() *Config {
	return defaultConfig()
}

// Load builds the configuration from defaults, the YAML file at path (or the
// first file found when path is empty) and the environment, then validates
// it. An explicit path that does not exist is an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are split on commas when they arrive as strings.
var sliceConfigPaths = []string{
	"cors.allowed_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

var envMappings = map[string]string{
	"http_host":    "server.host",
	"http_port":    "server.port",
	"http_timeout": "server.timeout",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	"cors_origins": "cors.allowed_origins",

	"rate_limit_requests": "rate_limit.requests",
	"rate_limit_window":   "rate_limit.window",
	"disable_rate_limit":  "rate_limit.disabled",

	"openai_api_key":  "llm.api_key",
	"openai_base_url": "llm.base_url",
	"openai_model":    "llm.model",
	"llm_timeout":     "llm.timeout",

	"youtube_api_key":            "youtube.api_key",
	"youtube_base_url":           "youtube.base_url",
	"youtube_timeout":            "youtube.timeout",
	"youtube_rps":                "youtube.requests_per_second",
	"youtube_relevance_language": "youtube.relevance_language",

	"recommend_cache_ttl":  "recommend.cache_ttl",
	"recommend_cache_size": "recommend.cache_size",
	"recommend_store_path": "recommend.store_path",

	"horizon_store_path":        "store.path",
	"horizon_store_in_memory":   "store.in_memory",
	"horizon_store_gc_interval": "store.gc_interval",

	"horizon_api_url":     "client.base_url",
	"horizon_api_timeout": "client.timeout",

	"canvas_min_scale":  "canvas.min_scale",
	"canvas_max_scale":  "canvas.max_scale",
	"canvas_zoom_speed": "canvas.zoom_speed",
	"drag_threshold":    "canvas.drag_threshold",

	"edge_debounce":      "edges.debounce",
	"max_edges_per_node": "edges.max_edges_per_node",
}

// envTransformFunc maps an environment variable to its koanf path. Unmapped
// variables return "" and are skipped.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
