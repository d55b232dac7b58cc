package ui

import (
	"fmt"
	"time"
)

// FormatRelative returns a compact offset such as "2m ago" or "in 3h".
func FormatRelative(then time.Time, now time.Time) string {
	if then.IsZero() {
		return "-"
	}
	if then.After(now) {
		return "in " + FormatDurationShort(then.Sub(now))
	}
	return FormatDurationShort(now.Sub(then)) + " ago"
}

// FormatDurationShort formats a duration using short units (s/m/h/d).
func FormatDurationShort(duration time.Duration) string {
	if duration < 0 {
		duration = 0
	}

	duration = duration.Truncate(time.Second)
	seconds := int64(duration.Seconds())
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}

	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}

	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%dh", hours)
	}

	days := hours / 24
	return fmt.Sprintf("%dd", days)
}
