package utils

import (
	"math"
	"strings"
	"time"
)

const (
	LayoutDate     = "2006-01-02"
	layoutDateTime = "2006-01-02 15:04:05"
)

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(LayoutDate, strings.TrimSpace(s), time.Local)
}

// FormatDate formats time to YYYY-MM-DD in local timezone.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(LayoutDate)
}

// FormatDateTime formats time to "YYYY-MM-DD HH:MM:SS" in local timezone.
func FormatDateTime(t time.Time) string {
	return t.In(time.Local).Format(layoutDateTime)
}

// DaysUntil counts whole calendar days from now to the given YYYY-MM-DD.
// Past dates are negative.
func DaysUntil(date string, now time.Time) (int, bool) {
	d, err := ParseDate(date)
	if err != nil {
		return 0, false
	}
	n := now.In(time.Local)
	today := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.Local)
	return int(math.Round(d.Sub(today).Hours() / 24)), true
}

// IsISODate reports whether s is exactly YYYY-MM-DD.
func IsISODate(s string) bool {
	if len(s) != len(LayoutDate) {
		return false
	}
	_, err := time.Parse(LayoutDate, s)
	return err == nil
}
