package ui

import (
	"fmt"
	"time"

	"github.com/amonks/lists/tasklist"
)

// FormatTimestampAge renders a task timestamp as a compact age like "2m ago".
// Timestamps that do not parse are returned unchanged.
func FormatTimestampAge(timestamp string, now time.Time) string {
	then, err := time.ParseInLocation(tasklist.TimestampLayout, timestamp, now.Location())
	if err != nil {
		return timestamp
	}
	return FormatTimeAgo(then, now)
}

// FormatTimeAgo returns a compact age string like "2m ago".
func FormatTimeAgo(then time.Time, now time.Time) string {
	if then.IsZero() {
		return "-"
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
