package pagecache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Entry is one cached response.
type Entry struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

// Cache is a Redis-backed full-response cache for listing pages, keyed by
// request URL. Entries expire after TTL; any write to the system clears
// the whole keyspace (wholesale invalidation).
type Cache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// New creates a page cache on top of an existing Redis client.
func New(client *redis.Client, prefix string, ttl time.Duration) *Cache {
	if prefix == "" {
		prefix = "pages"
	}
	return &Cache{client: client, prefix: prefix, ttl: ttl}
}

// TTL returns the configured entry lifetime.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

func (c *Cache) key(url string) string {
	return c.prefix + ":" + url
}

// Get returns the cached entry for a URL, if present.
func (c *Cache) Get(ctx context.Context, url string) (*Entry, bool) {
	data, err := c.client.Get(ctx, c.key(url)).Bytes()
	if err != nil {
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		// Corrupt entry; drop it so the next request repopulates
		_ = c.client.Del(ctx, c.key(url)).Err()
		return nil, false
	}
	return &entry, true
}

// Set stores a response for a URL with the configured TTL.
func (c *Cache) Set(ctx context.Context, url string, entry *Entry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	return c.client.Set(ctx, c.key(url), payload, c.ttl).Err()
}

// InvalidateAll removes every entry under the cache prefix.
func (c *Cache) InvalidateAll(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.prefix+":*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan page cache keys: %w", err)
	}
	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("failed to delete page cache keys: %w", err)
		}
	}
	return nil
}
