package ephemera

import "time"

type entry[V any] struct {
	key       string
	value     V
	expiresAt time.Time
}

// live reports whether the entry's expiry instant is still in the future.
func (e *entry[V]) live(now time.Time) bool {
	return now.Before(e.expiresAt)
}
