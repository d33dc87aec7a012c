package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ChannelCacheTTL bounds how stale a cached channel response may get; the
// Postgres row stays the single source of truth.
const ChannelCacheTTL = 15 * time.Minute

// CacheService provides a Redis cache-aside layer for channel lookups.
type CacheService struct {
	rdb    *redis.Client
	onHit  func()
	onMiss func()
}

// SetHitHooks installs callbacks fired on cache hits and misses (metrics).
func (c *CacheService) SetHitHooks(onHit, onMiss func()) {
	c.onHit = onHit
	c.onMiss = onMiss
}

// NewCacheService creates a new CacheService. If redisURL is empty or the
// connection fails, it returns a CacheService with a nil client and cache
// operations become no-ops.
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Println("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, caching disabled: %v", redisURL, err)
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, caching disabled: %v", err)
		return &CacheService{}
	}

	log.Println("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetChannel retrieves a cached channel response. Returns nil when not
// cached or when caching is disabled.
func (c *CacheService) GetChannel(ctx context.Context, ownerUserID, channelID string) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, channelKey(ownerUserID, channelID)).Bytes()
	if err == redis.Nil {
		if c.onMiss != nil {
			c.onMiss()
		}
		return nil, nil
	}
	if err == nil && c.onHit != nil {
		c.onHit()
	}
	return data, err
}

// SetChannel stores a channel response.
func (c *CacheService) SetChannel(ctx context.Context, ownerUserID, channelID string, data interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, channelKey(ownerUserID, channelID), b, ChannelCacheTTL).Err()
}

// InvalidateChannel drops a cached channel after a write (refresh, delete).
func (c *CacheService) InvalidateChannel(ctx context.Context, ownerUserID, channelID string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, channelKey(ownerUserID, channelID)).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func channelKey(ownerUserID, channelID string) string {
	return fmt.Sprintf("channel:%s:%s", ownerUserID, channelID)
}
