// Package age measures how long todos stay open.
package age

import "time"

// OpenDuration returns how long a todo has been open: to now while it is
// open, to its completion once it is done. It reports false when the start is
// unknown or still ahead.
func OpenDuration(createdAt time.Time, completedAt time.Time, complete bool, now time.Time) (time.Duration, bool) {
	if createdAt.IsZero() {
		return 0, false
	}

	end := now
	if complete {
		if completedAt.IsZero() {
			return 0, false
		}
		end = completedAt
	}

	if end.Before(createdAt) {
		return 0, false
	}
	return end.Sub(createdAt), true
}
