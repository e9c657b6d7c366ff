package ephemera

import "time"

// ReadPolicy decides what reads report for an entry whose expiry instant has
// passed but which the sweeper has not removed yet.
type ReadPolicy int

const (
	// ReadStrict reports such entries as not found. This is the default.
	ReadStrict ReadPolicy = iota
	// ReadPassive keeps such entries visible until a sweep removes them.
	ReadPassive
)

func (p ReadPolicy) String() string {
	switch p {
	case ReadStrict:
		return "strict"
	case ReadPassive:
		return "passive"
	default:
		return "unknown"
	}
}

// visible reports whether a stored entry expiring at expiresAt may be
// returned to a reader at now.
func (p ReadPolicy) visible(expiresAt, now time.Time) bool {
	return p == ReadPassive || now.Before(expiresAt)
}
