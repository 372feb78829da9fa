// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

package config

import (
	"net"
	"strconv"
	"time"

	"github.com/tomtom215/horizon/internal/canvas"
	"github.com/tomtom215/horizon/internal/geometry"
	"github.com/tomtom215/horizon/internal/layout"
	"github.com/tomtom215/horizon/internal/llm"
	"github.com/tomtom215/horizon/internal/logging"
	"github.com/tomtom215/horizon/internal/recommend"
	"github.com/tomtom215/horizon/internal/resolve"
	"github.com/tomtom215/horizon/internal/store"
	"github.com/tomtom215/horizon/internal/youtube"
)

// Config is the complete Horizon configuration. The API server reads the
// server-side sections; the CLI reads client, store and the canvas knobs.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	CORS      CORSConfig      `koanf:"cors"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	LLM       LLMConfig       `koanf:"llm"`
	YouTube   YouTubeConfig   `koanf:"youtube"`
	Recommend RecommendConfig `koanf:"recommend"`
	Store     StoreConfig     `koanf:"store"`
	Client    ClientConfig    `koanf:"client"`
	Canvas    CanvasConfig    `koanf:"canvas"`
	Layout    LayoutConfig    `koanf:"layout"`
	Edges     EdgesConfig     `koanf:"edges"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port" validate:"gte=1,lte=65535"`
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`
}

// Addr is the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// LoggingConfig configures zerolog.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"loglevel"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// Logger converts to the logging package configuration.
func (l LoggingConfig) Logger() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = l.Level
	cfg.Format = l.Format
	cfg.Caller = l.Caller
	return cfg
}

// CORSConfig lists the browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// RateLimitConfig bounds per-IP request rates on the recommendation routes.
type RateLimitConfig struct {
	Requests int           `koanf:"requests" validate:"gte=1"`
	Window   time.Duration `koanf:"window" validate:"gt=0"`
	Disabled bool          `koanf:"disabled"`
}

// LLMConfig configures the chat completion backend.
type LLMConfig struct {
	BaseURL string        `koanf:"base_url" validate:"omitempty,http_url"`
	APIKey  string        `koanf:"api_key"`
	Model   string        `koanf:"model"`
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`
}

// Client converts to the llm package configuration.
func (c LLMConfig) Client() llm.Config {
	return llm.Config{BaseURL: c.BaseURL, APIKey: c.APIKey, Model: c.Model, Timeout: c.Timeout}
}

// YouTubeConfig configures video search.
type YouTubeConfig struct {
	BaseURL           string        `koanf:"base_url" validate:"omitempty,http_url"`
	APIKey            string        `koanf:"api_key"`
	Timeout           time.Duration `koanf:"timeout" validate:"gt=0"`
	RequestsPerSecond float64       `koanf:"requests_per_second" validate:"gt=0"`
	RelevanceLanguage string        `koanf:"relevance_language"`
}

// Client converts to the youtube package configuration.
func (c YouTubeConfig) Client() youtube.Config {
	return youtube.Config{
		BaseURL:           c.BaseURL,
		APIKey:            c.APIKey,
		Timeout:           c.Timeout,
		RequestsPerSecond: c.RequestsPerSecond,
		RelevanceLanguage: c.RelevanceLanguage,
	}
}

// RecommendConfig sizes the recommendation result caches. StorePath, when
// set, names a badger directory that keeps AI results across restarts.
type RecommendConfig struct {
	CacheTTL  time.Duration `koanf:"cache_ttl" validate:"gt=0"`
	CacheSize int           `koanf:"cache_size" validate:"gte=1"`
	StorePath string        `koanf:"store_path"`
}

// Service converts to the recommend package configuration.
func (c RecommendConfig) Service() recommend.Config {
	return recommend.Config{CacheTTL: c.CacheTTL, CacheCapacity: c.CacheSize}
}

// StoreConfig selects where the canvas world is persisted. An empty path
// keeps it in process memory.
type StoreConfig struct {
	Path       string        `koanf:"path"`
	InMemory   bool          `koanf:"in_memory"`
	GCInterval time.Duration `koanf:"gc_interval" validate:"gt=0"`
}

// Store converts to the store package configuration.
func (c StoreConfig) Store() store.Config {
	return store.Config{Path: c.Path, InMemory: c.InMemory}
}

// ClientConfig points the canvas at a Horizon API.
type ClientConfig struct {
	BaseURL string        `koanf:"base_url" validate:"required,http_url"`
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`
}

// CanvasConfig tunes the viewport, pointer handling and edge overlay.
type CanvasConfig struct {
	MinScale      float64       `koanf:"min_scale"`
	MaxScale      float64       `koanf:"max_scale"`
	ZoomSpeed     float64       `koanf:"zoom_speed" validate:"gt=0"`
	Friction      float64       `koanf:"friction"`
	MinSpeed      float64       `koanf:"min_speed" validate:"gt=0"`
	FrameInterval time.Duration `koanf:"frame_interval" validate:"gt=0"`
	DragThreshold float64       `koanf:"drag_threshold" validate:"gt=0"`
	NodeRadius    float64       `koanf:"node_radius" validate:"gte=0"`
	EdgePadding   float64       `koanf:"edge_padding" validate:"gte=0"`
	EdgeMargin    float64       `koanf:"edge_margin" validate:"gte=0"`
}

// Viewport converts to the canvas viewport configuration.
func (c CanvasConfig) Viewport() canvas.Config {
	return canvas.Config{
		MinScale:      c.MinScale,
		MaxScale:      c.MaxScale,
		ZoomSpeed:     c.ZoomSpeed,
		Friction:      c.Friction,
		MinSpeed:      c.MinSpeed,
		StartSpeed:    canvas.DefaultStartSpeed,
		FrameInterval: c.FrameInterval,
	}
}

// Geometry converts to the edge geometry options.
func (c CanvasConfig) Geometry() geometry.Options {
	return geometry.Options{NodeRadius: c.NodeRadius, Padding: c.EdgePadding, Margin: c.EdgeMargin}
}

// LayoutConfig tunes radial placement of new nodes.
type LayoutConfig struct {
	MinRadius     float64 `koanf:"min_radius" validate:"gt=0"`
	MaxRadius     float64 `koanf:"max_radius" validate:"gt=0"`
	MinSeparation float64 `koanf:"min_separation" validate:"gte=0"`
	Attempts      int     `koanf:"attempts" validate:"gte=1"`
}

// Engine converts to the layout configuration.
func (c LayoutConfig) Engine() layout.Config {
	return layout.Config{
		MinRadius:     c.MinRadius,
		MaxRadius:     c.MaxRadius,
		MinSeparation: c.MinSeparation,
		Attempts:      c.Attempts,
	}
}

// EdgesConfig tunes client-side edge resolution.
type EdgesConfig struct {
	Debounce        time.Duration `koanf:"debounce" validate:"gte=0"`
	MaxEdgesPerNode int           `koanf:"max_edges_per_node"`
}

// Resolver converts to the resolve configuration.
func (c EdgesConfig) Resolver() resolve.Config {
	return resolve.Config{Debounce: c.Debounce, MaxEdgesPerNode: c.MaxEdgesPerNode}
}
