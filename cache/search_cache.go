package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"itemshare/models"

	"github.com/redis/go-redis/v9"
)

const searchVersionKey = "items:search:ver"

// SearchCache keeps item search pages in redis for a short TTL. Writes to the
// catalog bump a version counter that is part of every key, so invalidation
// is a single INCR and stale pages just fall out through the TTL.
type SearchCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSearchCache(rdb *redis.Client, ttl time.Duration) *SearchCache {
	return &SearchCache{rdb: rdb, ttl: ttl}
}

func (s *SearchCache) key(ctx context.Context, text string, from, size int) (string, error) {
	ver, err := s.rdb.Get(ctx, searchVersionKey).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	return fmt.Sprintf("items:search:%d:%s:%d:%d", ver, strings.ToLower(text), from, size), nil
}

// Lookup returns the cached page and whether it was present. Redis trouble
// counts as a miss; the store is an accelerator, never an authority.
func (s *SearchCache) Lookup(ctx context.Context, text string, from, size int) ([]models.Item, bool) {
	key, err := s.key(ctx, text, from, size)
	if err != nil {
		return nil, false
	}
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var items []models.Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}

func (s *SearchCache) Store(ctx context.Context, text string, from, size int, items []models.Item) {
	key, err := s.key(ctx, text, from, size)
	if err != nil {
		return
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return
	}
	_ = s.rdb.Set(ctx, key, raw, s.ttl).Err()
}

// Invalidate retires every cached page by moving to a fresh key version.
func (s *SearchCache) Invalidate(ctx context.Context) {
	_ = s.rdb.Incr(ctx, searchVersionKey).Err()
}
