package redis

// Package redis provides the Redis-backed lookup cache.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/target/dirsearch/internal/domain/directory"
	"github.com/target/dirsearch/internal/ports"
)

// LookupCache stores directory lookup results as JSON with a TTL.
type LookupCache struct {
	client redis.UniversalClient
	prefix string
}

var _ ports.LookupCache = (*LookupCache)(nil)

// NewLookupCache creates a LookupCache with no extra key prefix.
func NewLookupCache(client redis.UniversalClient) *LookupCache {
	return &LookupCache{client: client}
}

// NewLookupCacheWithPrefix creates a LookupCache that prepends prefix to every key.
func NewLookupCacheWithPrefix(client redis.UniversalClient, prefix string) *LookupCache {
	return &LookupCache{client: client, prefix: prefix}
}

func (c *LookupCache) Get(ctx context.Context, key string) ([]directory.Record, bool, error) {
	if key == "" {
		return nil, false, nil
	}
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var recs []directory.Record
	if err := json.Unmarshal(data, &recs); err != nil {
		// Unreadable entries are dropped so the next lookup repopulates them.
		if delErr := c.client.Del(ctx, c.prefix+key).Err(); delErr != nil {
			return nil, false, fmt.Errorf("cleanup corrupt entry: %w", delErr)
		}
		return nil, false, fmt.Errorf("unmarshal records: %w", err)
	}
	return recs, true, nil
}

func (c *LookupCache) Set(ctx context.Context, key string, records []directory.Record, ttl time.Duration) error {
	if key == "" {
		return errors.New("cache key cannot be empty")
	}
	if ttl <= 0 {
		return errors.New("cache ttl must be positive")
	}
	if records == nil {
		records = []directory.Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}
	return c.client.Set(ctx, c.prefix+key, data, ttl).Err()
}

func (c *LookupCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, c.prefix+k)
	}
	return c.client.Del(ctx, full...).Err()
}
