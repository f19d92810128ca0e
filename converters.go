package main

import (
	"fmt"
	"strconv"
	"time"
)

// milesString renders a visibility in statute miles without trailing zeros
func milesString(miles float64) string {
	return strconv.FormatFloat(miles, 'f', -1, 64)
}

// Calculate the relative time string
func relativeTimeString(t, now time.Time) string {
	diff := now.Sub(t)

	// Convert to minutes for easier comparisons
	minutes := int(diff.Minutes())

	if minutes < 0 {
		// Issue times a little ahead of the local clock
		return "(in the future)"
	} else if minutes < 1 {
		return "(just now)"
	} else if minutes < 60 {
		return fmt.Sprintf("(%d minutes ago)", minutes)
	} else if minutes < 1440 { // less than 24 hours
		hours := minutes / 60
		mins := minutes % 60
		if mins == 0 {
			return fmt.Sprintf("(%d hours ago)", hours)
		}
		return fmt.Sprintf("(%d hours, %d minutes ago)", hours, mins)
	} else {
		days := minutes / 1440
		hours := (minutes % 1440) / 60
		if hours == 0 {
			return fmt.Sprintf("(%d days ago)", days)
		}
		return fmt.Sprintf("(%d days, %d hours ago)", days, hours)
	}
}
