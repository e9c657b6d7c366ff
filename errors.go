package ephemera

import "errors"

var (
	// ErrInvalidTTL is returned when a TTL is zero or negative.
	ErrInvalidTTL = errors.New("ephemera: ttl must be positive")

	// ErrKeyExists is returned by Set when the key holds a live entry.
	// Entries are never overwritten; the stored value is left untouched.
	ErrKeyExists = errors.New("ephemera: key already exists")

	// ErrNotFound is returned by Get when the key was never set, has been
	// swept, or (under ReadStrict) has reached its expiry instant.
	ErrNotFound = errors.New("ephemera: not found")

	// ErrEmptyKey is returned by Set for the empty string.
	ErrEmptyKey = errors.New("ephemera: empty key")

	ErrSweeperRunning = errors.New("ephemera: sweeper already running")
	ErrSweeperStopped = errors.New("ephemera: sweeper stopped")
)
