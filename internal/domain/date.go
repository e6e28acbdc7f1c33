package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateOf drops the time of day, keeping the calendar date in UTC
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate accepts an ISO calendar date ("2006-01-02") or an RFC 3339 timestamp
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// FormatDate renders the calendar date as "2006-01-02"
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}
