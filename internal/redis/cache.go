package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"naklos/internal/domain"
)

// CacheStore caches computed warning feeds in Redis.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// WarningCacheTTL bounds how stale the dashboard feed can get. Expiry
// warnings move once a day, so a short TTL only exists to pick up
// approvals that change an expiry date.
const WarningCacheTTL = 60 * time.Second

const warningCacheKey = "cache:warnings"

// GetWarnings retrieves the cached warning feed. Returns nil on a cache
// miss.
func (s *CacheStore) GetWarnings(ctx context.Context) ([]domain.Warning, error) {
	data, err := s.client.Get(ctx, warningCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var warnings []domain.Warning
	if err := json.Unmarshal(data, &warnings); err != nil {
		return nil, err
	}
	return warnings, nil
}

// SetWarnings stores the warning feed in cache.
func (s *CacheStore) SetWarnings(ctx context.Context, warnings []domain.Warning) error {
	data, err := json.Marshal(warnings)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, warningCacheKey, data, WarningCacheTTL).Err()
}

// InvalidateWarnings removes the cached feed, forcing the next read to
// recompute.
func (s *CacheStore) InvalidateWarnings(ctx context.Context) error {
	return s.client.Del(ctx, warningCacheKey).Err()
}
