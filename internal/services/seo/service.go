package seo

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/inkwell-labs/inkwell/internal/infrastructure/redis"
	"github.com/inkwell-labs/inkwell/internal/metrics"
	"github.com/rs/zerolog/log"
)

// Searcher performs a keyword lookup against the search results provider
type Searcher interface {
	Search(ctx context.Context, query string) (json.RawMessage, error)
}

// Report is the response body of an SEO lookup
type Report struct {
	Type    string          `json:"type"`
	Data    json.RawMessage `json:"data,omitempty"`
	URL     string          `json:"url,omitempty"`
	Message string          `json:"message,omitempty"`
}

// ReportCache stores keyword lookups
type ReportCache interface {
	Get(ctx context.Context, keyword string) (json.RawMessage, bool)
	Set(ctx context.Context, keyword string, data json.RawMessage)
}

// ErrUnconfigured is returned when no search provider is configured
var ErrUnconfigured = errors.New("SERPSTACK API key not configured")

type Service struct {
	searcher Searcher
	cache    ReportCache
}

// NewService uses Redis for the cache when available, memory otherwise
func NewService(searcher Searcher, redisService *redis.Service, ttl time.Duration) *Service {
	var cache ReportCache
	if redisService != nil {
		cache = &RedisCache{redisService: redisService, ttl: ttl}
	} else {
		cache = NewMemoryCache(ttl)
	}
	return NewServiceWithCache(searcher, cache)
}

func NewServiceWithCache(searcher Searcher, cache ReportCache) *Service {
	return &Service{searcher: searcher, cache: cache}
}

// Configured reports whether keyword lookups can be served
func (s *Service) Configured() bool {
	return s.searcher != nil
}

// KeywordReport returns SERP data for keyword, from cache when possible
func (s *Service) KeywordReport(ctx context.Context, keyword string) (*Report, error) {
	if s.searcher == nil {
		return nil, ErrUnconfigured
	}

	keyword = strings.TrimSpace(keyword)
	if data, ok := s.cache.Get(ctx, keyword); ok {
		metrics.SEOLookups.WithLabelValues("hit").Inc()
		return &Report{Type: "serp", Data: data}, nil
	}

	metrics.SEOLookups.WithLabelValues("miss").Inc()
	data, err := s.searcher.Search(ctx, keyword)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, keyword, data)
	return &Report{Type: "serp", Data: data}, nil
}

// URLReport describes a URL-only request; no provider analyses URLs yet
func (s *Service) URLReport(url string) *Report {
	return &Report{
		Type:    "url_analysis",
		URL:     strings.TrimSpace(url),
		Message: "URL analysis is not available yet; search by keyword for SERP data",
	}
}

func cacheKey(keyword string) string {
	return "seo:serp:" + strings.ToLower(keyword)
}

// RedisCache keeps reports in Redis with a TTL
type RedisCache struct {
	redisService *redis.Service
	ttl          time.Duration
}

func (rc *RedisCache) Get(ctx context.Context, keyword string) (json.RawMessage, bool) {
	val, err := rc.redisService.Get(ctx, cacheKey(keyword))
	if err != nil {
		return nil, false
	}
	return json.RawMessage(val), true
}

func (rc *RedisCache) Set(ctx context.Context, keyword string, data json.RawMessage) {
	if err := rc.redisService.Set(ctx, cacheKey(keyword), string(data), rc.ttl); err != nil {
		log.Warn().Err(err).Str("keyword", keyword).Msg("Failed to cache SEO report")
	}
}

type memoryEntry struct {
	data    json.RawMessage
	expires time.Time
}

// sweepEvery is the number of writes between sweeps of expired entries
const sweepEvery = 256

// MemoryCache keeps reports in process memory with a TTL
type MemoryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
	writes  int
	now     func() time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{ttl: ttl, entries: make(map[string]memoryEntry), now: time.Now}
}

func (mc *MemoryCache) Get(_ context.Context, keyword string) (json.RawMessage, bool) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	key := cacheKey(keyword)
	entry, ok := mc.entries[key]
	if !ok {
		return nil, false
	}
	if mc.now().After(entry.expires) {
		delete(mc.entries, key)
		return nil, false
	}
	return entry.data, true
}

func (mc *MemoryCache) Set(_ context.Context, keyword string, data json.RawMessage) {
	if mc.ttl <= 0 {
		return
	}
	mc.mu.Lock()
	defer mc.mu.Unlock()

	now := mc.now()
	mc.writes++
	if mc.writes%sweepEvery == 0 {
		mc.sweep(now)
	}
	mc.entries[cacheKey(keyword)] = memoryEntry{data: data, expires: now.Add(mc.ttl)}
}

// sweep drops expired entries; callers hold mu
func (mc *MemoryCache) sweep(now time.Time) {
	for key, entry := range mc.entries {
		if now.After(entry.expires) {
			delete(mc.entries, key)
		}
	}
}
