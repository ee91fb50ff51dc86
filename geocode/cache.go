package geocode

import (
	"context"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	json "github.com/goccy/go-json"
	"github.com/pfas-tracker/api/metrics"
	"go.uber.org/zap"
)

const cacheKeyPrefix = "pfas:geocode:"

// RedisCache remembers suggestions per normalized query. Cache failures
// degrade to a live lookup.
type RedisCache struct {
	next   Geocoder
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(next Geocoder, client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{next: next, client: client, ttl: ttl}
}

func cacheKey(query string) string {
	return cacheKeyPrefix + strings.ToLower(normalize(query))
}

func (c *RedisCache) Search(ctx context.Context, query string) ([]Suggestion, error) {
	key := cacheKey(query)

	b, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached []Suggestion
		if err := json.Unmarshal(b, &cached); err == nil {
			metrics.GeocodeCacheHits.Inc()
			return cached, nil
		}
		zap.L().Warn("dropping unreadable geocode cache entry", zap.String("key", key))
	case err != redis.Nil:
		zap.L().Warn("geocode cache read failed", zap.Error(err))
	}
	metrics.GeocodeCacheMisses.Inc()

	res, err := c.next.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(res); err == nil {
		if err := c.client.Set(ctx, key, b, c.ttl).Err(); err != nil {
			zap.L().Warn("geocode cache write failed", zap.Error(err))
		}
	}
	return res, nil
}
