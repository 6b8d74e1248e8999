package querycache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrijs2005/socconsole/internal/logging"
)

// ErrCleared is returned by a fetch whose result arrived after Clear.
var ErrCleared = errors.New("cache cleared while fetching")

type entry struct {
	value     any
	fetchedAt time.Time
	stale     bool
}

type Cache struct {
	staleTime time.Duration
	log       logging.Logger
	now       func() time.Time
	group     singleflight.Group

	mu      sync.Mutex
	entries map[string]*entry
	epoch   uint64
}

// New creates a cache whose entries stay fresh for staleTime. Zero means
// every Fetch goes to the server.
func New(staleTime time.Duration, log logging.Logger) *Cache {
	return &Cache{
		staleTime: staleTime,
		log:       log,
		now:       time.Now,
		entries:   map[string]*entry{},
	}
}

// Fetch returns the cached value of key while it is fresh and calls fn
// otherwise. Callers fetching the same key at the same time share one call.
func (c *Cache) Fetch(ctx context.Context, key string, fn func(ctx context.Context) (any, error)) (any, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && c.freshLocked(e) {
		v := e.value
		c.mu.Unlock()
		c.log.Debug(ctx, "cache hit", "key", key)
		return v, nil
	}
	epoch := c.epoch
	c.mu.Unlock()

	v, err, shared := c.group.Do(fmt.Sprintf("%d/%s", epoch, key), func() (any, error) {
		v, err := fn(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		if c.epoch != epoch {
			return nil, ErrCleared
		}
		c.entries[key] = &entry{value: v, fetchedAt: c.now()}
		return v, nil
	})
	if errors.Is(err, ErrCleared) {
		c.log.Debug(ctx, "discarding result fetched before clear", "key", key)
	}
	if err != nil {
		return nil, err
	}
	c.log.Debug(ctx, "cache miss", "key", key, "shared", shared)
	return v, nil
}

func (c *Cache) freshLocked(e *entry) bool {
	if e.stale || c.staleTime <= 0 {
		return false
	}
	return c.now().Sub(e.fetchedAt) < c.staleTime
}

// Invalidate marks entries stale so the next Fetch refetches them. With no
// prefixes every entry is marked.
func (c *Cache) Invalidate(prefixes ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.entries {
		if len(prefixes) == 0 || hasAnyPrefix(k, prefixes) {
			e.stale = true
		}
	}
}

// Clear drops every entry. Fetches started before Clear return ErrCleared
// and store nothing.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string]*entry{}
	c.epoch++
}

// Len reports how many entries are held, fresh or stale.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// Get is Fetch with a typed result.
func Get[T any](ctx context.Context, c *Cache, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	v, err := c.Fetch(ctx, key, func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("cache entry %q holds %T", key, v)
	}
	return t, nil
}
