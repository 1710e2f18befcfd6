package utils

import (
	"fmt"
	"time"
)

// Iso8601FromTime formats t in UTC as RFC3339.
func Iso8601FromTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// Iso8601FromUnixSeconds converts Unix timestamp to ISO8601 format
func Iso8601FromUnixSeconds(sec int64) string {
	return time.Unix(sec, 0).UTC().Format(time.RFC3339)
}

// ValidUntilFrom calculates the valid until timestamp
func ValidUntilFrom(base time.Time, validForMS int) string {
	if base.IsZero() || validForMS <= 0 {
		return ""
	}
	return Iso8601FromTime(base.Add(time.Duration(validForMS) * time.Millisecond))
}

// PresentableETA renders the time left until eta, relative to now.
func PresentableETA(now, eta time.Time, arrived bool) string {
	if arrived {
		return "Arrived"
	}
	if eta.IsZero() {
		return "Unknown"
	}
	left := eta.Sub(now)
	switch {
	case left < time.Minute:
		return "< 1 min"
	case left < time.Hour:
		return fmt.Sprintf("%d min", int(left.Minutes()))
	default:
		h := int(left.Hours())
		m := int(left.Minutes()) - h*60
		return fmt.Sprintf("%dh %02dm", h, m)
	}
}
