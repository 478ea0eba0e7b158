// Package cache keeps catalog responses per distinct request and collapses
// concurrent identical fetches into one.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// Kind groups cached entries that share a lifetime.
type Kind string

const (
	KindListing Kind = "listing"
	KindDetail  Kind = "detail"
	KindSimilar Kind = "similar"
	KindSuggest Kind = "suggest"
	KindGenres  Kind = "genres"
	KindPeople  Kind = "people"
	KindHome    Kind = "home"
)

type Config struct {
	// TTL is the lifetime of entries whose kind has no entry in TTLs.
	TTL  time.Duration
	TTLs map[Kind]time.Duration
	// CleanupInterval is the expired entry purge period. Zero disables
	// background purging; expired entries are then dropped on read.
	CleanupInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		TTL: time.Minute,
		TTLs: map[Kind]time.Duration{
			KindSuggest: 30 * time.Second,
			KindGenres:  time.Hour,
			KindHome:    5 * time.Minute,
		},
		CleanupInterval: 10 * time.Minute,
	}
}

type Cache struct {
	entries *gocache.Cache
	group   singleflight.Group
	cfg     Config
}

func New(cfg Config) *Cache {
	if cfg.TTL <= 0 {
		cfg.TTL = time.Minute
	}
	return &Cache{
		entries: gocache.New(cfg.TTL, cfg.CleanupInterval),
		cfg:     cfg,
	}
}

func (c *Cache) ttl(kind Kind) time.Duration {
	if d, ok := c.cfg.TTLs[kind]; ok && d > 0 {
		return d
	}
	return c.cfg.TTL
}

// Fetch returns the cached value for (kind, input) or calls fetch. Calls
// with the same key that overlap share one fetch. The fetch is detached from
// the caller's cancellation; each caller stops waiting when its own ctx is
// done. Errors are never cached.
func Fetch[T any](ctx context.Context, c *Cache, kind Kind, input any, fetch func(context.Context) (T, error)) (T, error) {
	var zero T

	key, err := Key(kind, input)
	if err != nil {
		return zero, err
	}

	if v, ok := c.entries.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}

	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		v, err := fetch(detached)
		if err != nil {
			return nil, err
		}
		c.entries.Set(key, v, c.ttl(kind))
		return v, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		typed, _ := res.Val.(T)
		return typed, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Peek returns a cached value without fetching.
func Peek[T any](c *Cache, kind Kind, input any) (T, bool) {
	var zero T
	key, err := Key(kind, input)
	if err != nil {
		return zero, false
	}
	v, ok := c.entries.Get(key)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	return typed, ok
}

// Forget drops one entry.
func (c *Cache) Forget(kind Kind, input any) {
	if key, err := Key(kind, input); err == nil {
		c.entries.Delete(key)
		c.group.Forget(key)
	}
}

func (c *Cache) Flush() {
	c.entries.Flush()
}

func (c *Cache) Len() int {
	return c.entries.ItemCount()
}

// Key renders the cache key of a request input. Inputs that encode to the
// same JSON share an entry.
func Key(kind Kind, input any) (string, error) {
	encoded, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("cache key for %s: %w", kind, err)
	}
	return string(kind) + ":" + string(encoded), nil
}
