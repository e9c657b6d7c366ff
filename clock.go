package ephemera

import "time"

// Clock provides time operations for the cache.
// The default implementation uses time.Now().
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// expiryInstant computes the bucket instant for an entry set at now.
//
// Instants are truncated to granularity so that keys set within the same
// window share a bucket. Truncation only applies when ttl >= granularity,
// which keeps the result strictly after now.
func expiryInstant(now time.Time, ttl, granularity time.Duration) time.Time {
	at := now.Add(ttl)
	if granularity > 0 && ttl >= granularity {
		return at.Truncate(granularity)
	}
	return at.Round(0)
}
