// Package format turns quote values into display strings.
package format

import (
	"fmt"
	"time"
)

// Elapsed returns the "Updated N ago" text for a quote observed at observedAt,
// evaluated at now. Clock skew that puts observedAt in the future reads as 0 sec.
func Elapsed(observedAt, now time.Time) string {
	secs := int64(now.Sub(observedAt) / time.Second)
	return ElapsedSeconds(secs)
}

// ElapsedSeconds formats a whole number of elapsed seconds. Each unit is used
// while the count stays below one of the next larger unit.
func ElapsedSeconds(secs int64) string {
	if secs < 0 {
		secs = 0
	}
	if secs < 60 {
		return fmt.Sprintf("Updated %d sec ago", secs)
	}
	mins := secs / 60
	if mins < 60 {
		return fmt.Sprintf("Updated %d min ago", mins)
	}
	hours := mins / 60
	if hours < 24 {
		return fmt.Sprintf("Updated %d hr ago", hours)
	}
	days := hours / 24
	if days == 1 {
		return "Updated 1 day ago"
	}
	return fmt.Sprintf("Updated %d days ago", days)
}
