package ephemera

import (
	"log/slog"
	"time"
)

const (
	// DefaultTTL is used by Set when no TTL is given.
	DefaultTTL = 60 * time.Second

	// DefaultSweepInterval is how often the sweeper wakes up.
	DefaultSweepInterval = time.Second

	// DefaultGranularity is the width of an expiry bucket.
	DefaultGranularity = time.Second
)

type config[V any] struct {
	ttl           time.Duration
	sweepInterval time.Duration
	granularity   time.Duration
	readPolicy    ReadPolicy
	clock         Clock
	logger        *slog.Logger
	onHit         func(string, V)
	onMiss        func(string)
	onExpire      func(string, V)
}

func defaultConfig[V any]() config[V] {
	return config[V]{
		ttl:           DefaultTTL,
		sweepInterval: DefaultSweepInterval,
		granularity:   DefaultGranularity,
		readPolicy:    ReadStrict,
		clock:         realClock{},
		logger:        slog.New(slog.DiscardHandler),
	}
}

// Option configures a Cache.
type Option[V any] func(*config[V])

// WithDefaultTTL sets the TTL used by Set. Non-positive values are ignored.
func WithDefaultTTL[V any](d time.Duration) Option[V] {
	return func(c *config[V]) {
		if d > 0 {
			c.ttl = d
		}
	}
}

// WithSweepInterval sets how often the background sweeper runs.
// Non-positive values are ignored.
func WithSweepInterval[V any](d time.Duration) Option[V] {
	return func(c *config[V]) {
		if d > 0 {
			c.sweepInterval = d
		}
	}
}

// WithGranularity sets the width of expiry buckets. Entries whose instants
// fall in the same window share a bucket and are swept together.
// A non-positive granularity keeps exact instants.
func WithGranularity[V any](d time.Duration) Option[V] {
	return func(c *config[V]) {
		c.granularity = d
	}
}

// WithReadPolicy sets how reads treat expired entries that are not swept yet.
func WithReadPolicy[V any](p ReadPolicy) Option[V] {
	return func(c *config[V]) {
		c.readPolicy = p
	}
}

// WithClock sets a custom clock for time operations.
// Useful for testing TTL behavior.
func WithClock[V any](clk Clock) Option[V] {
	return func(c *config[V]) {
		if clk != nil {
			c.clock = clk
		}
	}
}

// WithLogger sets the logger used by the sweeper.
func WithLogger[V any](l *slog.Logger) Option[V] {
	return func(c *config[V]) {
		if l != nil {
			c.logger = l
		}
	}
}

// OnHit sets a callback invoked on cache hits.
func OnHit[V any](fn func(string, V)) Option[V] {
	return func(c *config[V]) {
		c.onHit = fn
	}
}

// OnMiss sets a callback invoked on cache misses.
func OnMiss[V any](fn func(string)) Option[V] {
	return func(c *config[V]) {
		c.onMiss = fn
	}
}

// OnExpire sets a callback invoked for every entry a sweep removes.
// Callbacks run after the sweep releases the lock, in ascending expiry order.
// Order within one bucket is unspecified.
func OnExpire[V any](fn func(string, V)) Option[V] {
	return func(c *config[V]) {
		c.onExpire = fn
	}
}
