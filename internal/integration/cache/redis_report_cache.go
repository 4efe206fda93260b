// Package cache implements the report cache on top of Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/brokerdash/backend/internal/application/adapter"
)

const (
	defaultScanBatchSize = 100
	// DefaultTTL is used when the cache is created without a TTL.
	DefaultTTL = 10 * time.Minute
)

// redisReportCache implements the adapter.ReportCache interface.
type redisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisReportCache creates a report cache on an existing Redis client.
// The caller keeps ownership of the client.
func NewRedisReportCache(client *redis.Client, ttl time.Duration) adapter.ReportCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &redisReportCache{
		client: client,
		ttl:    ttl,
	}
}

// Get loads a cached report into dest.
func (c *redisReportCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get report from cache: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		// Corrupted entries are dropped so the next request recomputes them.
		_ = c.client.Del(ctx, key)
		return false, fmt.Errorf("failed to unmarshal cached report: %w", err)
	}
	return true, nil
}

// Set stores a report under key for the configured TTL.
func (c *redisReportCache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set report in cache: %w", err)
	}
	return nil
}

// InvalidateTeam drops every cached report of a team.
func (c *redisReportCache) InvalidateTeam(ctx context.Context, teamID uuid.UUID) error {
	var (
		cursor  uint64
		deleted int64
	)
	pattern := adapter.TeamKeyPattern(teamID)

	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, defaultScanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("failed to scan cache keys: %w", err)
		}

		if len(keys) > 0 {
			n, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				return fmt.Errorf("failed to delete cache keys: %w", err)
			}
			deleted += n
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	slog.Info("Invalidated team reports", "team_id", teamID, "deleted", deleted)
	return nil
}
