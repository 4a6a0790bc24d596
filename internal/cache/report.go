// Package cache stores the country report in redis so that it is built off
// the request path and shared between server instances.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/goccy/go-json"

	"github.com/hitchlog/backend/internal/domain"
)

// ReportKey is the redis key holding the JSON-encoded country report.
const ReportKey = "hitchlog:country_report"

// ReportCache is a redis-backed store for a single country report.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReportCache returns a cache that expires the report after ttl.
// A ttl of zero keeps the report until it is overwritten or invalidated.
func NewReportCache(client *redis.Client, ttl time.Duration) *ReportCache {
	return &ReportCache{client: client, ttl: ttl}
}

// Connect parses a redis URL such as redis://:password@localhost:6379/0 and
// verifies the server is reachable.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("cache.Connect: parse url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("cache.Connect: ping: %w", err)
	}
	return client, nil
}

// Get returns the cached report. found is false when nothing is cached.
func (c *ReportCache) Get(ctx context.Context) (report domain.CountryReport, found bool, err error) {
	raw, err := c.client.Get(ctx, ReportKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache.ReportCache.Get: %w", err)
	}
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, false, fmt.Errorf("cache.ReportCache.Get: decode: %w", err)
	}
	return report, true, nil
}

// Set replaces the cached report.
func (c *ReportCache) Set(ctx context.Context, report domain.CountryReport) error {
	raw, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("cache.ReportCache.Set: encode: %w", err)
	}
	if err := c.client.Set(ctx, ReportKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache.ReportCache.Set: %w", err)
	}
	return nil
}

// Invalidate removes the cached report, if any.
func (c *ReportCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, ReportKey).Err(); err != nil {
		return fmt.Errorf("cache.ReportCache.Invalidate: %w", err)
	}
	return nil
}
