package utils

import (
	"strings"
	"time"
)

// ParseDate parses an ISO 8601 date (YYYY-MM-DD or RFC3339)
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// FormatDate formats a time as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatTimestamp formats a time as RFC3339
func FormatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339)
}
