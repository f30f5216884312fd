// Package cache implements a stale-while-revalidate cache over Redis,
// the shared external key-value service the specification requires
// for C5/C6 results and for the token bucket's persisted state.
// Grounded on the teacher's pkg/cache Manager/RedisCache split: a
// thin facade in front of a go-redis client, JSON-encoded values.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Entry is what is actually stored in Redis: the payload plus the
// timestamps needed to classify fresh/stale/expired without a second
// round trip for TTL.
type Entry struct {
	Value     json.RawMessage `json:"value"`
	StoredAt  time.Time       `json:"stored_at"`
	FreshTTL  time.Duration   `json:"fresh_ttl"`
	HardTTL   time.Duration   `json:"hard_ttl"`
}

// State classifies a lookup per §4.6.
type State int

const (
	Miss State = iota
	Fresh
	Stale
	Expired
)

// SWRCache is a Redis-backed cache with fresh/stale windows and
// single-flight suppression of concurrent background refreshes
// (P6: "concurrent calls for the same cache key trigger at most one
// background refresh").
type SWRCache struct {
	rdb    *redis.Client
	prefix string

	mu        sync.Mutex
	inflight  map[string]bool
}

// New creates a cache bound to an existing Redis client. The client is
// shared process-wide (and, per §5, across horizontally-scaled worker
// processes pointed at the same Redis).
func New(rdb *redis.Client, prefix string) *SWRCache {
	return &SWRCache{rdb: rdb, prefix: prefix, inflight: make(map[string]bool)}
}

func (c *SWRCache) fullKey(key string) string {
	return fmt.Sprintf("%s:%s", c.prefix, key)
}

// Get returns the decoded value, its State, and whether anything was
// found at all. The caller decides what Stale means for its own
// refresh policy; Get never triggers work itself.
func (c *SWRCache) Get(ctx context.Context, key string, dest interface{}) (State, error) {
	raw, err := c.rdb.Get(ctx, c.fullKey(key)).Bytes()
	if err == redis.Nil {
		return Miss, nil
	}
	if err != nil {
		return Miss, err
	}

	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return Miss, err
	}
	if err := json.Unmarshal(entry.Value, dest); err != nil {
		return Miss, err
	}

	age := time.Since(entry.StoredAt)
	switch {
	case age <= entry.FreshTTL:
		return Fresh, nil
	case age <= entry.HardTTL:
		return Stale, nil
	default:
		return Expired, nil
	}
}

// Set overwrites the cache entry unconditionally — used on every
// successful upstream call per §4.6 ("on upstream success, the cache
// is overwritten").
func (c *SWRCache) Set(ctx context.Context, key string, value interface{}, freshTTL, hardTTL time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	entry := Entry{Value: payload, StoredAt: time.Now(), FreshTTL: freshTTL, HardTTL: hardTTL}
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.fullKey(key), raw, hardTTL).Err()
}

// TryBeginRefresh marks key as having a background refresh in flight,
// returning false if one is already running. The caller must call
// EndRefresh when done, even on error, so the marker is never stuck.
func (c *SWRCache) TryBeginRefresh(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inflight[key] {
		return false
	}
	c.inflight[key] = true
	return true
}

// EndRefresh clears the in-flight marker for key.
func (c *SWRCache) EndRefresh(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inflight, key)
}
