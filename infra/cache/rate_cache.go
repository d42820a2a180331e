// Package cache implements the in-memory rate cache: TTL freshness, LRU
// capacity eviction, and single-flight coalescing of concurrent misses.
package cache

import (
	"container/list"
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/amirasaad/exchange/internal/metrics"
	"github.com/amirasaad/exchange/pkg/config"
	"golang.org/x/sync/singleflight"
)

// Loader fetches the value for a key on a cache miss. It is called at most
// once per key across all concurrent callers.
type Loader[V any] func(ctx context.Context) (V, error)

// Cache is a TTL + LRU cache with per-key fetch coalescing. Each instance
// is an independent namespace; keys are never shared between instances.
type Cache[V any] struct {
	name       string
	ttl        time.Duration
	maxEntries int
	logger     *slog.Logger
	stats      *metrics.CacheStats

	mu    sync.Mutex
	ll    *list.List
	items map[string]*list.Element

	group singleflight.Group

	now func() time.Time
}

type entry[V any] struct {
	key       string
	value     V
	fetchedAt time.Time
	expiresAt time.Time
}

// New creates a cache namespace. stats may be nil.
func New[V any](name string, cfg config.RateCache, logger *slog.Logger, stats *metrics.CacheStats) *Cache[V] {
	if logger == nil {
		logger = slog.Default()
	}
	capacity := cfg.InitialCapacity
	if capacity <= 0 {
		capacity = 16
	}
	return &Cache[V]{
		name:       name,
		ttl:        cfg.TTL,
		maxEntries: cfg.MaxEntries,
		logger:     logger.With("cache", name),
		stats:      stats,
		ll:         list.New(),
		items:      make(map[string]*list.Element, capacity),
		now:        time.Now,
	}
}

// Get returns the cached value for key, fetching it with load on a miss.
// Concurrent misses for the same key collapse into one load call; every
// caller receives the same value or the same error. Errors are never
// cached. Misses for different keys proceed independently.
func (c *Cache[V]) Get(ctx context.Context, key string, load Loader[V]) (V, error) {
	if value, ok := c.lookup(key); ok {
		c.hit()
		return value, nil
	}
	c.miss()

	result, err, shared := c.group.Do(key, func() (any, error) {
		// A flight that completed between our lookup and joining the
		// group already stored a fresh entry; serve it instead of
		// fetching again.
		if value, ok := c.lookup(key); ok {
			return value, nil
		}

		value, err := load(ctx)
		if err != nil {
			return nil, err
		}
		c.store(key, value)
		return value, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	if shared {
		c.logger.Debug("coalesced concurrent fetch", "key", key)
	}
	return result.(V), nil
}

// Len reports the number of stored entries, expired ones included.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

// lookup returns a valid entry and refreshes its LRU position. Expired
// entries are removed on sight.
func (c *Cache[V]) lookup(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}

	ent := elem.Value.(*entry[V])
	if !c.now().Before(ent.expiresAt) {
		c.ll.Remove(elem)
		delete(c.items, key)
		var zero V
		return zero, false
	}

	c.ll.MoveToFront(elem)
	return ent.value, true
}

// store replaces the whole entry for key and evicts the least-recently-used
// entry when over capacity. In-flight fetches are tracked by the
// singleflight group, not the entry table, so eviction never touches them.
func (c *Cache[V]) store(key string, value V) {
	now := c.now()
	ent := &entry[V]{
		key:       key,
		value:     value,
		fetchedAt: now,
		expiresAt: now.Add(c.ttl),
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		elem.Value = ent
		c.ll.MoveToFront(elem)
		return
	}

	c.items[key] = c.ll.PushFront(ent)

	if c.maxEntries > 0 && c.ll.Len() > c.maxEntries {
		oldest := c.ll.Back()
		if oldest != nil {
			evicted := oldest.Value.(*entry[V])
			c.ll.Remove(oldest)
			delete(c.items, evicted.key)
			c.logger.Debug("evicted least-recently-used entry", "key", evicted.key)
			if c.stats != nil {
				c.stats.Evictions.Inc()
			}
		}
	}
}

func (c *Cache[V]) hit() {
	if c.stats != nil {
		c.stats.Hits.Inc()
	}
}

func (c *Cache[V]) miss() {
	if c.stats != nil {
		c.stats.Misses.Inc()
	}
}
