package invoice

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "invoice:view:"

// Cache stores computed invoice views in Redis.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache constructs a cache helper. A nil client disables caching.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get loads a cached view for the order. It reports whether the key existed.
func (c *Cache) Get(ctx context.Context, orderID string) (*View, bool, error) {
	if c == nil || c.client == nil || orderID == "" {
		return nil, false, nil
	}
	data, err := c.client.Get(ctx, cacheKeyPrefix+orderID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}
	var view View
	if err := json.Unmarshal(data, &view); err != nil {
		return nil, false, err
	}
	return &view, true, nil
}

// Set serialises the view and stores it with the configured TTL.
func (c *Cache) Set(ctx context.Context, orderID string, view *View) error {
	if c == nil || c.client == nil || orderID == "" || view == nil {
		return nil
	}
	data, err := json.Marshal(view)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKeyPrefix+orderID, data, c.ttl).Err()
}

// Invalidate removes the cached view for the order.
func (c *Cache) Invalidate(ctx context.Context, orderID string) error {
	if c == nil || c.client == nil || orderID == "" {
		return nil
	}
	return c.client.Del(ctx, cacheKeyPrefix+orderID).Err()
}
