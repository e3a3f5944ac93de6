package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/udyamlens/udyamlens/internal/models"
)

// Stats tracks cache performance counters.
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Sets   int64 `json:"sets"`
}

// DashboardCache keeps the read-side dashboard aggregations in Redis so
// repeated dashboard loads do not re-scan the analysis table. Entries
// are invalidated per user whenever a new analysis is persisted.
type DashboardCache struct {
	redis  *redis.Client
	ttl    time.Duration
	prefix string

	mu    sync.RWMutex
	stats Stats
}

func NewDashboardCache(redisClient *redis.Client, ttl time.Duration) *DashboardCache {
	return &DashboardCache{
		redis:  redisClient,
		ttl:    ttl,
		prefix: "dashboard:",
	}
}

func (c *DashboardCache) key(userID, view string) string {
	return c.prefix + userID + ":" + view
}

// GetOverview retrieves a cached cross-vertical overview.
func (c *DashboardCache) GetOverview(ctx context.Context, userID, view string) (*models.DashboardOverview, bool) {
	data, err := c.redis.Get(ctx, c.key(userID, view)).Result()
	if err == redis.Nil {
		c.miss()
		return nil, false
	}
	if err != nil {
		logrus.WithError(err).Warn("Redis error reading dashboard cache")
		c.miss()
		return nil, false
	}

	var overview models.DashboardOverview
	if err := json.Unmarshal([]byte(data), &overview); err != nil {
		logrus.WithError(err).Warn("Corrupt dashboard cache entry")
		c.miss()
		return nil, false
	}
	c.hit()
	return &overview, true
}

// SetOverview stores a cross-vertical overview.
func (c *DashboardCache) SetOverview(ctx context.Context, userID, view string, overview *models.DashboardOverview) error {
	data, err := json.Marshal(overview)
	if err != nil {
		return fmt.Errorf("failed to serialize dashboard overview: %w", err)
	}
	if err := c.redis.Set(ctx, c.key(userID, view), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache dashboard overview: %w", err)
	}
	c.mu.Lock()
	c.stats.Sets++
	c.mu.Unlock()
	return nil
}

// Invalidate drops every cached dashboard view for a user. Called after
// a new analysis is persisted.
func (c *DashboardCache) Invalidate(ctx context.Context, userID string) error {
	iter := c.redis.Scan(ctx, 0, c.prefix+userID+":*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan dashboard cache keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.redis.Del(ctx, keys...).Err()
}

// GetStats returns a snapshot of the cache counters.
func (c *DashboardCache) GetStats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

func (c *DashboardCache) hit() {
	c.mu.Lock()
	c.stats.Hits++
	c.mu.Unlock()
}

func (c *DashboardCache) miss() {
	c.mu.Lock()
	c.stats.Misses++
	c.mu.Unlock()
}
