package utils

import (
	"regexp"
	"strings"
	"time"
)

// Reservation dates and times travel as plain strings: a calendar date
// independent of time-of-day and a 24-hour wall-clock time independent of
// date. Both are validated against fixed formats before persistence.
const (
	DateLayout = "2006-01-02" // YYYY-MM-DD
	TimeLayout = "15:04"      // HH:MM, 24-hour
)

var (
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// NormalizeDate truncates an ISO date-time ("2025-03-01T00:00:00") to its
// calendar-date part. Clients send full date-times; only the date matters.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		return s[:i]
	}
	return s
}

// NormalizeTime truncates an "HH:MM:SS" value to "HH:MM". Seconds are not
// part of the reservation slot.
func NormalizeTime(s string) string {
	s = strings.TrimSpace(s)
	if len(s) == 8 && s[2] == ':' && s[5] == ':' {
		return s[:5]
	}
	return s
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD calendar date.
// The shape check alone would accept "2024-13-40"; time.Parse rejects it.
func ValidDate(s string) bool {
	if !dateRe.MatchString(s) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ValidTime reports whether s is a well-formed HH:MM 24-hour time.
func ValidTime(s string) bool {
	if !timeRe.MatchString(s) {
		return false
	}
	_, err := time.Parse(TimeLayout, s)
	return err == nil
}
