// Package ephemera provides a generic in-memory cache whose entries expire
// after a fixed time-to-live and are evicted by a periodic background sweep.
//
// # Overview
//
// Every entry carries an absolute expiry instant. Entries are kept in two
// structures that always change together: a value store keyed by name, and an
// expiry index that groups keys into buckets by instant and keeps the buckets
// in ascending order. A sweep walks the index from the earliest bucket and
// stops at the first one still in the future, so its cost depends on how much
// has expired rather than on the size of the cache.
//
// # Basic Usage
//
//	cache := ephemera.New[string](
//		ephemera.WithDefaultTTL[string](time.Minute),
//		ephemera.WithSweepInterval[string](time.Second),
//	)
//	if err := cache.Start(ctx); err != nil {
//		return err
//	}
//	defer cache.Close()
//
//	if err := cache.SetWithTTL("session", "abc", 30*time.Second); err != nil {
//		return err
//	}
//
//	v, err := cache.Get("session")
//	if errors.Is(err, ephemera.ErrNotFound) {
//		// never set, or already expired
//	}
//
// # No Overwrite
//
// Set refuses to replace a live entry and returns ErrKeyExists; the stored
// value is unchanged. There is no update operation. Delete removes an entry
// early, after which the key can be set again.
//
// # Expiry and Reads
//
// Reads never extend an entry's lifetime. Only Sweep removes expired entries.
// With the default ReadStrict policy, Get also reports ErrNotFound for an entry
// whose instant has passed but which has not been swept yet; ReadPassive keeps
// such entries visible until the sweep removes them.
//
// Instants are truncated to a bucket granularity (one second by default), so
// keys set within the same second with the same TTL share a bucket and are
// swept together. An entry may therefore expire up to one granularity early,
// never late. TTLs shorter than the granularity keep their exact instant.
//
// # Lifecycle
//
// The sweeper is owned by the caller:
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//
//	cache.Start(ctx) // Idle -> Running
//	...
//	cache.Stop()     // Running -> Stopped
//	cache.Wait()     // no sweep runs after Wait returns
//
// Canceling the context passed to Start has the same effect as Stop. A stopped
// sweeper cannot be restarted; Sweep can still be called directly.
//
// # Thread Safety
//
// All Cache methods are safe for concurrent use. A single sync.RWMutex guards
// both the value store and the expiry index: inserts, deletes and sweeps hold
// it exclusively, reads share it.
package ephemera
