// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

package recommend

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/horizon/internal/cache"
	"github.com/tomtom215/horizon/internal/graph"
	"github.com/tomtom215/horizon/internal/llm"
	"github.com/tomtom215/horizon/internal/logging"
	"github.com/tomtom215/horizon/internal/metrics"
	"github.com/tomtom215/horizon/internal/models"
	"github.com/tomtom215/horizon/internal/store"
	"github.com/tomtom215/horizon/internal/youtube"
)

// Request bounds.
const (
	MaxEdgeInterests = 40

	MaxSuggestInterests  = 30
	DefaultSuggestLimit  = 14
	MinSuggestLimit      = 4
	MaxSuggestLimit      = 30
	MaxVideoInterests    = 25
	DefaultVideoLimit    = 15
	MinVideoLimit        = 1
	MaxVideoLimit        = 40
	MaxQueries           = 12
	ResultsPerQuery      = 5
	DefaultCacheTTL      = 10 * time.Minute
	DefaultCacheCapacity = 512
)

// ErrNoInterests is returned when a request carries no usable interest.
var ErrNoInterests = errors.New("нужно передать интересы")

// Completer runs a single chat completion.
type Completer interface {
	Complete(ctx context.Context, p llm.Prompt) (string, error)
}

// VideoSearcher runs video queries in parallel, one result list per query.
type VideoSearcher interface {
	SearchAll(ctx context.Context, queries []string, perQuery int) [][]models.Video
}

// Config configures a Service.
type Config struct {
	CacheTTL      time.Duration
	CacheCapacity int
	// Store, when set, keeps AI results across restarts. Entries older than
	// CacheTTL are ignored.
	Store store.KV
}

// Service answers edge, interest and video requests.
type Service struct {
	llm Completer
	yt  VideoSearcher

	interests *cache.LRU[[]string]
	videos    *cache.LRU[*models.VideosResponse]
	store     store.KV
	ttl       time.Duration
	log       zerolog.Logger
}

// New creates a service. Either collaborator may be nil, in which case the
// corresponding fallback is always used.
func New(completer Completer, yt VideoSearcher, cfg Config) *Service {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	if cfg.CacheCapacity <= 0 {
		cfg.CacheCapacity = DefaultCacheCapacity
	}
	return &Service{
		llm:       completer,
		yt:        yt,
		interests: cache.NewLRU[[]string](cfg.CacheCapacity, cfg.CacheTTL),
		videos:    cache.NewLRU[*models.VideosResponse](cfg.CacheCapacity, cfg.CacheTTL),
		store:     cfg.Store,
		ttl:       cfg.CacheTTL,
		log:       logging.WithComponent("recommend"),
	}
}

// CleanupExpired drops expired cache entries and returns how many went.
func (s *Service) CleanupExpired() int {
	return s.interests.CleanupExpired() + s.videos.CleanupExpired()
}

func (s *Service) complete(ctx context.Context, p llm.Prompt) (string, error) {
	if s.llm == nil {
		return "", llm.ErrMissingAPIKey
	}
	return s.llm.Complete(ctx, p)
}

// Edges proposes label edges for interests with at most maxPerNode per
// label. Fewer than two interests yield no edges.
func (s *Service) Edges(ctx context.Context, interests []string, maxPerNode int) []graph.LabelEdge {
	if len(interests) < 2 {
		return []graph.LabelEdge{}
	}
	maxPerNode = graph.ClampEdgesPerNode(maxPerNode)

	content, err := s.complete(ctx, edgesPrompt(interests, maxPerNode))
	if err == nil {
		if edges := graph.ValidateEdges(parseEdges(content), interests); len(edges) > 0 {
			metrics.RecordRecommendation("edges", "ai")
			return edges
		}
	}
	s.logFallback(ctx, "edges", err)
	metrics.RecordRecommendation("edges", "fallback")
	return graph.FallbackEdges(interests, maxPerNode)
}

// Interests suggests up to limit new interests.
func (s *Service) Interests(ctx context.Context, interests []string, limit int) ([]string, error) {
	unique := graph.UniqueLabels(interests)
	if len(unique) == 0 {
		return nil, ErrNoInterests
	}
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}

	key := cacheKey("interests", unique, limit)
	if items, ok := s.interests.Get(key); ok {
		metrics.RecordCacheLookup("interests", true)
		metrics.RecordRecommendation("interests", "cache")
		return items, nil
	}
	if items, ok := loadPersisted[[]string](ctx, s, key); ok {
		s.interests.Set(key, items)
		metrics.RecordCacheLookup("interests", true)
		metrics.RecordRecommendation("interests", "cache")
		return items, nil
	}
	metrics.RecordCacheLookup("interests", false)

	content, err := s.complete(ctx, interestsPrompt(unique, limit))
	if err == nil {
		if items := cleanSuggestions(llm.StringList(content), unique, limit); len(items) > 0 {
			s.interests.Set(key, items)
			savePersisted(ctx, s, key, items)
			metrics.RecordRecommendation("interests", "ai")
			return items, nil
		}
	}
	s.logFallback(ctx, "interests", err)
	metrics.RecordRecommendation("interests", "fallback")
	return FallbackInterests(unique, limit), nil
}

// Videos suggests up to limit videos for interests.
func (s *Service) Videos(ctx context.Context, interests []string, limit int) (*models.VideosResponse, error) {
	if len(interests) == 0 {
		return nil, ErrNoInterests
	}
	if limit <= 0 {
		limit = DefaultVideoLimit
	}

	key := cacheKey("videos", interests, limit)
	if resp, ok := s.videos.Get(key); ok {
		metrics.RecordCacheLookup("videos", true)
		metrics.RecordRecommendation("videos", "cache")
		return resp, nil
	}
	if resp, ok := loadPersisted[*models.VideosResponse](ctx, s, key); ok && resp != nil {
		s.videos.Set(key, resp)
		metrics.RecordCacheLookup("videos", true)
		metrics.RecordRecommendation("videos", "cache")
		return resp, nil
	}
	metrics.RecordCacheLookup("videos", false)

	source := "ai"
	content, err := s.complete(ctx, videosPrompt(interests))
	var queries []string
	if err == nil {
		queries = llm.StringList(content)
	}
	if len(queries) == 0 {
		s.logFallback(ctx, "videos", err)
		source = "fallback"
		queries = FallbackQueries(interests)
	}
	queries = uniqueQueries(queries)

	var results [][]models.Video
	if s.yt != nil {
		results = s.yt.SearchAll(ctx, queries, ResultsPerQuery)
	}
	resp := &models.VideosResponse{Queries: queries, Items: youtube.Merge(results, limit)}

	if source == "ai" && len(resp.Items) > 0 {
		s.videos.Set(key, resp)
		savePersisted(ctx, s, key, resp)
	}
	metrics.RecordRecommendation("videos", source)
	return resp, nil
}

func (s *Service) logFallback(ctx context.Context, kind string, err error) {
	ev := logging.Ctx(ctx).Debug()
	if err != nil && !errors.Is(err, llm.ErrMissingAPIKey) {
		ev = logging.Ctx(ctx).Warn().Err(err)
	}
	ev.Str("component", "recommend").Str("kind", kind).Msg("Using fallback recommendations")
}

// FallbackQueries builds "<interest> лекция" and "<interest> разбор" queries,
// at most MaxQueries of them.
func FallbackQueries(interests []string) []string {
	out := make([]string, 0, MaxQueries)
	for _, i := range interests {
		if len(out) >= MaxQueries {
			break
		}
		out = append(out, i+" лекция", i+" разбор")
	}
	if len(out) > MaxQueries {
		out = out[:MaxQueries]
	}
	return out
}

func uniqueQueries(queries []string) []string {
	seen := make(map[string]struct{}, len(queries))
	out := make([]string, 0, len(queries))
	for _, q := range queries {
		if _, ok := seen[q]; ok {
			continue
		}
		seen[q] = struct{}{}
		out = append(out, q)
		if len(out) == MaxQueries {
			break
		}
	}
	return out
}

// cleanSuggestions dedupes LLM suggestions, drops present labels ignoring
// case, and caps the list at limit.
func cleanSuggestions(items, present []string, limit int) []string {
	have := make(map[string]struct{}, len(present))
	for _, p := range present {
		have[strings.ToLower(p)] = struct{}{}
	}
	out := make([]string, 0, limit)
	for _, item := range graph.UniqueLabels(items) {
		if _, ok := have[strings.ToLower(item)]; ok {
			continue
		}
		out = append(out, item)
		if len(out) == limit {
			break
		}
	}
	return out
}

// parseEdges reads {"edges":[{"source":..,"target":..}]} leniently: entries
// whose endpoints are not strings are skipped.
func parseEdges(content string) []graph.LabelEdge {
	var doc struct {
		Edges []map[string]any `json:"edges"`
	}
	if err := json.Unmarshal([]byte(llm.ExtractJSON(content)), &doc); err != nil {
		return nil
	}
	out := make([]graph.LabelEdge, 0, len(doc.Edges))
	for _, e := range doc.Edges {
		src, ok1 := e["source"].(string)
		dst, ok2 := e["target"].(string)
		if ok1 && ok2 {
			out = append(out, graph.LabelEdge{Source: src, Target: dst})
		}
	}
	return out
}

func cacheKey(kind string, labels []string, limit int) string {
	h := xxhash.New()
	_, _ = h.WriteString(kind)
	for _, l := range labels {
		_, _ = h.WriteString("\x00")
		_, _ = h.WriteString(l)
	}
	_, _ = h.WriteString("\x00" + strconv.Itoa(limit))
	return fmt.Sprintf("%s:%016x", kind, h.Sum64())
}
