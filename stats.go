package ephemera

import "sync/atomic"

// Stats holds cache statistics using atomic counters for lock-free updates.
type Stats struct {
	hits        atomic.Int64
	misses      atomic.Int64
	sets        atomic.Int64
	rejected    atomic.Int64
	expirations atomic.Int64
	deletes     atomic.Int64
	sweeps      atomic.Int64
}

// Snapshot is a point-in-time copy of cache statistics.
type Snapshot struct {
	Hits        int64
	Misses      int64
	Sets        int64 // successful inserts
	Rejected    int64 // inserts refused with ErrKeyExists
	Expirations int64 // entries removed by sweeps
	Deletes     int64
	Sweeps      int64
}

// HitRate returns the cache hit rate as a value between 0 and 1.
// Returns 0 if there have been no accesses.
func (s Snapshot) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Snapshot returns a point-in-time copy of the stats.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		Hits:        s.hits.Load(),
		Misses:      s.misses.Load(),
		Sets:        s.sets.Load(),
		Rejected:    s.rejected.Load(),
		Expirations: s.expirations.Load(),
		Deletes:     s.deletes.Load(),
		Sweeps:      s.sweeps.Load(),
	}
}
