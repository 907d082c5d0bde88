package utils

import (
	"time"
)

// TimeNowUTC returns the current time in UTC, truncated to microseconds so it round-trips through postgres.
func TimeNowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// HoursSince returns the whole hours elapsed between t and now.
func HoursSince(t, now time.Time) int {
	if t.IsZero() || now.Before(t) {
		return 0
	}
	return int(now.Sub(t) / time.Hour)
}

// ParseTimeOrNow parses an RFC3339 timestamp, falling back to now.
func ParseTimeOrNow(value string, now time.Time) time.Time {
	if value == "" {
		return now
	}
	for _, layout := range []string{time.RFC3339, time.RFC3339Nano, "2006-01-02 15:04:05", time.RFC1123Z, time.RFC1123} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC()
		}
	}
	return now
}
