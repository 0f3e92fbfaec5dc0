// backend-go/internal/cache/analysis_cache.go
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/andresuchdata/warehouse-optimizer/backend-go/internal/config"
	"github.com/andresuchdata/warehouse-optimizer/backend-go/internal/domain"
)

const (
	analysisKeyPrefix    = "analysis:result"
	analysisScanBatchLen = 100
)

// AnalysisCache stores full pipeline results keyed by an explicit content
// digest of the inputs plus scenario parameters. Invalidation is manual; a
// changed input produces a different key by construction.
type AnalysisCache interface {
	Get(ctx context.Context, key string) (*domain.AnalysisResult, bool, error)
	Set(ctx context.Context, key string, result *domain.AnalysisResult) error
	InvalidateAll(ctx context.Context) error
}

type redisAnalysisCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopAnalysisCache struct{}

// NewAnalysisCache returns a redis-backed cache, or a noop cache when caching
// is disabled in config.
func NewAnalysisCache(cfg config.CacheConfig) (AnalysisCache, error) {
	if !cfg.Enabled {
		return &noopAnalysisCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}
	return &redisAnalysisCache{client: client, ttl: ttl}, nil
}

// NewNoopAnalysisCache returns a cache that stores nothing.
func NewNoopAnalysisCache() AnalysisCache {
	return &noopAnalysisCache{}
}

// ResultKey derives the cache key for a run: sha1 over the serialized input
// tables and scenario parameters.
func ResultKey(warehouse []domain.WarehouseRecord, orders []domain.OrderRecord, params domain.ScenarioParams) string {
	h := sha1.New()
	enc := json.NewEncoder(h)
	// Encoding cannot fail for these concrete types.
	_ = enc.Encode(warehouse)
	_ = enc.Encode(orders)
	_ = enc.Encode(params)
	return fmt.Sprintf("%s:%s", analysisKeyPrefix, hex.EncodeToString(h.Sum(nil)))
}

func (c *redisAnalysisCache) Get(ctx context.Context, key string) (*domain.AnalysisResult, bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var result domain.AnalysisResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, false, fmt.Errorf("decode analysis cache: %w", err)
	}
	return &result, true, nil
}

func (c *redisAnalysisCache) Set(ctx context.Context, key string, result *domain.AnalysisResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode analysis cache: %w", err)
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisAnalysisCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, analysisKeyPrefix, analysisScanBatchLen)
}

func (n *noopAnalysisCache) Get(ctx context.Context, key string) (*domain.AnalysisResult, bool, error) {
	return nil, false, nil
}

func (n *noopAnalysisCache) Set(ctx context.Context, key string, result *domain.AnalysisResult) error {
	return nil
}

func (n *noopAnalysisCache) InvalidateAll(ctx context.Context) error {
	return nil
}
