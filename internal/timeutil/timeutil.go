package timeutil

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	StampLayout = "20060102_150405"
)

var dateLayouts = []string{DateLayout, "2006/01/02", "20060102"}

func StartOfDay(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, value.Location())
}

func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// ParseDate accepts 2026-02-01, 2026/02/01 and 20260201 in the local zone.
func ParseDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if parsed, err := time.ParseInLocation(layout, trimmed, time.Local); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", value)
}

// Days lists every calendar day from start to end inclusive, at midnight.
// It is empty when end is before start.
func Days(start, end time.Time) []time.Time {
	first, last := StartOfDay(start), StartOfDay(end)
	var days []time.Time
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}
	return days
}

// Stamp formats value for use in file names.
func Stamp(value time.Time) string {
	return value.Format(StampLayout)
}
