package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/andresuchdata/replenish-engine/internal/config"
	"github.com/andresuchdata/replenish-engine/internal/domain"
	"github.com/andresuchdata/replenish-engine/internal/engine"
)

const (
	reportKeyPrefix     = "replenishment:report"
	reportScanBatchSize = 100
)

// ReportCache stores computed batch results keyed by the filter that
// produced them. Results are snapshots for decision support; serving a
// slightly stale batch is acceptable by design.
type ReportCache interface {
	Get(ctx context.Context, view string, filter domain.AnalysisFilter) (*engine.BatchResult, bool, error)
	Set(ctx context.Context, view string, filter domain.AnalysisFilter, result *engine.BatchResult) error
	InvalidateAll(ctx context.Context) error
}

type redisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopReportCache struct{}

func NewReportCache(cfg config.CacheConfig) (ReportCache, error) {
	if !cfg.Enabled {
		return &noopReportCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisReportCache{client: client, ttl: ttl}, nil
}

func NewNoopReportCache() ReportCache {
	return &noopReportCache{}
}

func (c *redisReportCache) Get(ctx context.Context, view string, filter domain.AnalysisFilter) (*engine.BatchResult, bool, error) {
	key := buildReportKey(view, filter)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var result engine.BatchResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, false, fmt.Errorf("decode replenishment report cache: %w", err)
	}

	return &result, true, nil
}

func (c *redisReportCache) Set(ctx context.Context, view string, filter domain.AnalysisFilter, result *engine.BatchResult) error {
	key := buildReportKey(view, filter)
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode replenishment report cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisReportCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, reportKeyPrefix, reportScanBatchSize)
}

func (c *noopReportCache) Get(context.Context, string, domain.AnalysisFilter) (*engine.BatchResult, bool, error) {
	return nil, false, nil
}

func (c *noopReportCache) Set(context.Context, string, domain.AnalysisFilter, *engine.BatchResult) error {
	return nil
}

func (c *noopReportCache) InvalidateAll(context.Context) error {
	return nil
}

func buildReportKey(view string, filter domain.AnalysisFilter) string {
	ids := make([]string, 0, len(filter.ProductIDs))
	for _, id := range filter.ProductIDs {
		ids = append(ids, strconv.FormatInt(id, 10))
	}
	sort.Strings(ids)

	skus := append([]string(nil), filter.SKUs...)
	sort.Strings(skus)

	parts := []string{
		view,
		strings.Join(ids, ","),
		strings.Join(skus, ","),
		strconv.FormatBool(filter.OnlyWithStock),
		filter.Urgency,
		strconv.Itoa(filter.Limit),
	}

	sum := sha1.Sum([]byte(strings.Join(parts, "|")))
	return fmt.Sprintf("%s:%s", reportKeyPrefix, hex.EncodeToString(sum[:]))
}
