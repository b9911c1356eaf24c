package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache TTLs
const (
	TTLProfile = 1 * time.Minute  // per-user profile stats (rank is expensive)
	TTLRank    = 1 * time.Minute  // standalone rank lookups
	TTLTop     = 5 * time.Minute  // top sender/receiver boards
	TTLDaily   = 30 * time.Second // today's counters (high churn)
	TTLDefault = 5 * time.Minute
)

// Cache key prefixes
const (
	PrefixProfile = "profile:"
	PrefixRank    = "rank:"
	PrefixTop     = "top:"
	PrefixDaily   = "daily:"
)

// Service is the redis cache service for relay read paths
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	// profile stats (messages/clicks/rank composite)
	GetProfile(ctx context.Context, userID int64, dest interface{}) error
	SetProfile(ctx context.Context, userID int64, data interface{}) error
	InvalidateProfile(ctx context.Context, userID int64) error

	// receiver popularity rank
	GetRank(ctx context.Context, userID int64) (int64, error)
	SetRank(ctx context.Context, userID int64, rank int64) error

	// top sender/receiver boards
	GetTop(ctx context.Context, kind string, limit int, dest interface{}) error
	SetTop(ctx context.Context, kind string, limit int, data interface{}) error

	// per-day counter snapshots
	GetDaily(ctx context.Context, date string, dest interface{}) error
	SetDaily(ctx context.Context, date string, data interface{}) error

	IsAvailable() bool
	Ping(ctx context.Context) error
}

// redisCache is the redis-backed implementation
type redisCache struct {
	client *redis.Client
}

// NewService creates a new cache service
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

// IsAvailable reports whether a redis connection is configured
func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

// Ping checks the redis connection
func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	return c.client.Ping(ctx).Err()
}

// Get reads a JSON value from the cache
func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return fmt.Errorf("redis not available")
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

// Set writes a JSON value to the cache
func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil // no redis, writes are silently skipped
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

// Delete removes keys from the cache
func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *redisCache) profileKey(userID int64) string {
	return fmt.Sprintf("%s%d", PrefixProfile, userID)
}

func (c *redisCache) GetProfile(ctx context.Context, userID int64, dest interface{}) error {
	return c.Get(ctx, c.profileKey(userID), dest)
}

func (c *redisCache) SetProfile(ctx context.Context, userID int64, data interface{}) error {
	return c.Set(ctx, c.profileKey(userID), data, TTLProfile)
}

func (c *redisCache) InvalidateProfile(ctx context.Context, userID int64) error {
	return c.Delete(ctx, c.profileKey(userID), fmt.Sprintf("%s%d", PrefixRank, userID))
}

func (c *redisCache) GetRank(ctx context.Context, userID int64) (int64, error) {
	if c.client == nil {
		return 0, fmt.Errorf("redis not available")
	}
	return c.client.Get(ctx, fmt.Sprintf("%s%d", PrefixRank, userID)).Int64()
}

func (c *redisCache) SetRank(ctx context.Context, userID int64, rank int64) error {
	if c.client == nil {
		return nil
	}
	return c.client.Set(ctx, fmt.Sprintf("%s%d", PrefixRank, userID), rank, TTLRank).Err()
}

func (c *redisCache) topKey(kind string, limit int) string {
	return fmt.Sprintf("%s%s:%d", PrefixTop, kind, limit)
}

func (c *redisCache) GetTop(ctx context.Context, kind string, limit int, dest interface{}) error {
	return c.Get(ctx, c.topKey(kind, limit), dest)
}

func (c *redisCache) SetTop(ctx context.Context, kind string, limit int, data interface{}) error {
	return c.Set(ctx, c.topKey(kind, limit), data, TTLTop)
}

func (c *redisCache) GetDaily(ctx context.Context, date string, dest interface{}) error {
	return c.Get(ctx, PrefixDaily+date, dest)
}

func (c *redisCache) SetDaily(ctx context.Context, date string, data interface{}) error {
	return c.Set(ctx, PrefixDaily+date, data, TTLDaily)
}
