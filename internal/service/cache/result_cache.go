package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"TAEngine/internal/domain/models"
	"TAEngine/internal/domain/repository"
	pkgcache "TAEngine/pkg/cache"
	"TAEngine/pkg/logger"
)

// ResultCache stores finished indicator results behind a pkg/cache backend.
// Entries are serialized to JSON strings so the memory, Redis and layered
// backends behave identically. Hit counts live on a sibling counter key to
// keep increments atomic without rewriting the entry blob.
type ResultCache struct {
	store   pkgcache.Service
	metrics repository.Metrics
	log     *logger.Logger
	now     func() time.Time
}

func NewResultCache(store pkgcache.Service, metrics repository.Metrics, log *logger.Logger) *ResultCache {
	return &ResultCache{
		store:   store,
		metrics: metrics,
		log:     log,
		now:     time.Now,
	}
}

// Get fetches an entry by key. A miss returns (nil, nil); backend failures
// return the error so the caller can decide to degrade.
func (c *ResultCache) Get(ctx context.Context, key string) (*models.CacheEntry, error) {
	var raw string
	if err := c.store.Get(ctx, key, &raw); err != nil {
		if errors.Is(err, pkgcache.ErrCacheMiss) {
			return nil, nil
		}
		c.metrics.RecordCacheError("get")
		return nil, err
	}

	var entry models.CacheEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		// Corrupt blob: drop it and treat as a miss.
		_ = c.store.Delete(ctx, key, hitsKey(key))
		c.log.Warn("dropping corrupt cache entry", logger.String("key", key), logger.Error(err))
		return nil, nil
	}

	// Backends expire on their own; the timestamp guard covers clock skew
	// between layered tiers.
	if entry.Expired(c.now()) {
		_ = c.store.Delete(ctx, key, hitsKey(key))
		return nil, nil
	}
	return &entry, nil
}

// Put stores an entry under the key for the given TTL.
func (c *ResultCache) Put(ctx context.Context, key string, entry *models.CacheEntry, ttl time.Duration) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	if err := c.store.Set(ctx, key, string(data), ttl); err != nil {
		c.metrics.RecordCacheError("set")
		return err
	}
	return nil
}

// Delete evicts all entries whose key matches the glob pattern.
func (c *ResultCache) Delete(ctx context.Context, pattern string) error {
	if err := c.store.DeleteByPattern(ctx, pattern); err != nil {
		c.metrics.RecordCacheError("delete")
		return err
	}
	return nil
}

// IncrementHits bumps and returns the hit counter for the key.
func (c *ResultCache) IncrementHits(ctx context.Context, key string) (int64, error) {
	n, err := c.store.Increment(ctx, hitsKey(key))
	if err != nil {
		c.metrics.RecordCacheError("increment")
		return 0, err
	}
	return n, nil
}

var _ repository.ResultStore = (*ResultCache)(nil)
