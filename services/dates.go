package services

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// NormalizeDate drops the time of day, keeping the calendar date in UTC.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate accepts an ISO-8601 calendar date or an RFC 3339 timestamp. Timestamps
// are reduced to their calendar date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", ErrInvalidDateRange)
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a date", ErrInvalidDateRange, s)
	}
	return NormalizeDate(t), nil
}

// NightsBetween counts whole calendar days from checkIn to checkOut. The result
// is zero or negative when checkOut is not after checkIn.
func NightsBetween(checkIn, checkOut time.Time) int {
	return int((NormalizeDate(checkOut).Unix() - NormalizeDate(checkIn).Unix()) / 86400)
}

func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
