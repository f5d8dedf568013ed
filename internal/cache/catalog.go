package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cashewtrade/marketplace/internal/models"
)

const activeCatalogKey = "catalog:active"

// CatalogCache keeps the buyer storefront listing in redis. It is a plain
// read-through cache: misses fall back to the database and writes to the
// products table invalidate the key.
type CatalogCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	return &CatalogCache{Client: client, TTL: ttl}
}

func (c *CatalogCache) GetActive(ctx context.Context) ([]models.Product, bool) {
	if c == nil || c.Client == nil {
		return nil, false
	}
	data, err := c.Client.Get(ctx, activeCatalogKey).Bytes()
	if err != nil {
		return nil, false
	}
	var items []models.Product
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false
	}
	return items, true
}

func (c *CatalogCache) SetActive(ctx context.Context, items []models.Product) {
	if c == nil || c.Client == nil {
		return
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return
	}
	_ = c.Client.Set(ctx, activeCatalogKey, payload, c.TTL).Err()
}

func (c *CatalogCache) Invalidate(ctx context.Context) {
	if c == nil || c.Client == nil {
		return
	}
	_ = c.Client.Del(ctx, activeCatalogKey).Err()
}
