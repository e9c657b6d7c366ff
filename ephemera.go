package ephemera

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Cache is a generic in-memory cache whose entries are removed by a
// background sweep once their TTL elapses.
//
// The value store and the expiry index share one lock: every insert and every
// sweep removal updates both under the write lock, so no reader can observe a
// key in one structure and not the other. Reads only touch the value store and
// take the read lock.
type Cache[V any] struct {
	mu      sync.RWMutex
	store   *valueStore[V]
	index   *expiryIndex
	cfg     config[V]
	stats   Stats
	sweeper *sweeper
}

// New creates a new Cache with the given options. The sweeper is not started;
// call Start to begin background eviction.
func New[V any](opts ...Option[V]) *Cache[V] {
	cfg := defaultConfig[V]()
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Cache[V]{
		store: newValueStore[V](),
		index: newExpiryIndex(),
		cfg:   cfg,
	}
	c.sweeper = newSweeper(cfg.sweepInterval, c.Sweep, cfg.logger)
	return c
}

// Set inserts a value using the default TTL.
func (c *Cache[V]) Set(key string, value V) error {
	return c.SetWithTTL(key, value, c.cfg.ttl)
}

// SetWithTTL inserts a value that expires after ttl.
//
// Existing live entries are never replaced: Set returns ErrKeyExists and the
// stored value is kept. An entry whose expiry instant has passed but which has
// not been swept yet is replaced.
func (c *Cache[V]) SetWithTTL(key string, value V, ttl time.Duration) error {
	if key == "" {
		return ErrEmptyKey
	}
	if ttl <= 0 {
		return ErrInvalidTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.cfg.clock.Now()
	if old, ok := c.store.get(key); ok {
		if old.live(now) {
			c.stats.rejected.Add(1)
			return ErrKeyExists
		}
		c.index.remove(old.expiresAt, key)
	}

	ent := &entry[V]{
		key:       key,
		value:     value,
		expiresAt: expiryInstant(now, ttl, c.cfg.granularity),
	}
	c.index.add(ent.expiresAt, key)
	c.store.put(ent)
	c.stats.sets.Add(1)
	return nil
}

// Get returns the value stored under key, or ErrNotFound.
// Reads never extend an entry's lifetime.
func (c *Cache[V]) Get(key string) (V, error) {
	var value V

	c.mu.RLock()
	ent, ok := c.store.get(key)
	if ok {
		ok = c.cfg.readPolicy.visible(ent.expiresAt, c.cfg.clock.Now())
		if ok {
			value = ent.value
		}
	}
	c.mu.RUnlock()

	if !ok {
		c.stats.misses.Add(1)
		if c.cfg.onMiss != nil {
			c.cfg.onMiss(key)
		}
		return value, ErrNotFound
	}

	c.stats.hits.Add(1)
	if c.cfg.onHit != nil {
		c.cfg.onHit(key, value)
	}
	return value, nil
}

// Has reports whether Get would find key. It does not count as a hit or miss.
func (c *Cache[V]) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ent, ok := c.store.get(key)
	return ok && c.cfg.readPolicy.visible(ent.expiresAt, c.cfg.clock.Now())
}

// ExpiresAt returns the instant at which key becomes eligible for sweeping.
func (c *Cache[V]) ExpiresAt(key string) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ent, ok := c.store.get(key)
	if !ok || !c.cfg.readPolicy.visible(ent.expiresAt, c.cfg.clock.Now()) {
		return time.Time{}, false
	}
	return ent.expiresAt, true
}

// Delete removes key from the cache ahead of its expiry.
// Returns false if the key was not stored.
func (c *Cache[V]) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.store.remove(key)
	if !ok {
		return false
	}
	c.index.remove(ent.expiresAt, key)
	c.stats.deletes.Add(1)
	return true
}

// Sweep removes every entry whose expiry instant is at or before now and
// returns how many were removed. The background sweeper calls it on every
// tick; it is also safe to call directly.
func (c *Cache[V]) Sweep() int {
	start := time.Now()

	c.mu.Lock()
	now := c.cfg.clock.Now()
	buckets := c.index.popExpired(now)

	var expired []*entry[V]
	n := 0
	for _, b := range buckets {
		for key := range b.keys {
			ent, ok := c.store.remove(key)
			if !ok {
				panic(fmt.Sprintf("ephemera: expiry index references missing key %q", key))
			}
			if !ent.expiresAt.Equal(b.at) {
				panic(fmt.Sprintf("ephemera: key %q indexed at %s but expires at %s", key, b.at, ent.expiresAt))
			}
			if c.cfg.onExpire != nil {
				expired = append(expired, ent)
			}
			n++
		}
	}
	c.mu.Unlock()

	c.stats.sweeps.Add(1)
	c.stats.expirations.Add(int64(n))

	for _, ent := range expired {
		c.cfg.onExpire(ent.key, ent.value)
	}

	if n > 0 {
		c.cfg.logger.Debug("sweep",
			"expired", n,
			"buckets", len(buckets),
			"elapsed", time.Since(start),
		)
	}
	return n
}

// Len returns the number of stored entries.
// May include expired entries that haven't been swept yet.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.store.len()
}

// Stats returns a snapshot of cache statistics.
func (c *Cache[V]) Stats() Snapshot {
	return c.stats.Snapshot()
}

// Start launches the background sweeper. It runs until Stop is called or ctx
// is canceled. A cache's sweeper can be started once.
func (c *Cache[V]) Start(ctx context.Context) error {
	return c.sweeper.start(ctx)
}

// Stop signals the sweeper to exit. A sweep already in progress completes.
// Stop does not wait; call Wait (or use Close) before relying on no further
// sweeps happening.
func (c *Cache[V]) Stop() {
	c.sweeper.stop()
}

// Wait blocks until the sweeper goroutine has exited.
func (c *Cache[V]) Wait() {
	c.sweeper.wait()
}

// Close stops the sweeper and waits for it to exit. Safe to call repeatedly.
func (c *Cache[V]) Close() {
	c.Stop()
	c.Wait()
}

// SweeperState reports the sweeper's lifecycle state.
func (c *Cache[V]) SweeperState() SweeperState {
	return c.sweeper.current()
}
