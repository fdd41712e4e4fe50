package redisclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache keys for menu reads
const (
	KeyCategories = "menu:categories"
	KeyMenuItems  = "menu:items"
)

// ErrCacheMiss is returned when a key is absent
var ErrCacheMiss = errors.New("cache miss")

// DefaultTTL bounds staleness of cached menu reads. The menu only changes
// through the seed loader, which invalidates explicitly.
const DefaultTTL = 10 * time.Minute

type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis client
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// CategoryKey returns the cache key for a single category lookup
func CategoryKey(slug string) string {
	return fmt.Sprintf("menu:category:%s", slug)
}

// MenuItemKey returns the cache key for a single menu item lookup
func MenuItemKey(id int64) string {
	return fmt.Sprintf("menu:item:%d", id)
}

// GetJSON reads a cached value into dest. Returns ErrCacheMiss when the key
// is absent.
func (c *Client) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("redis get failed: %w", err)
	}
	return json.Unmarshal(data, dest)
}

// SetJSON caches a value under key with the default TTL
func (c *Client) SetJSON(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return c.rdb.Set(ctx, key, data, DefaultTTL).Err()
}

// InvalidateMenu drops every cached menu read. Called after seed writes.
func (c *Client) InvalidateMenu(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, "menu:*", 0).Iterator()
	keys := []string{}
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan failed: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}
