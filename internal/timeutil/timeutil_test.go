package timeutil

import (
	"testing"
	"time"
)

func TestStartOfDay(t *testing.T) {
	t.Parallel()

	input := time.Date(2026, 3, 1, 14, 37, 9, 123, time.Local)
	got := StartOfDay(input)

	if got.Year() != 2026 || got.Month() != time.March || got.Day() != 1 {
		t.Fatalf("unexpected date: %v", got)
	}
	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 || got.Nanosecond() != 0 {
		t.Fatalf("expected midnight, got %v", got)
	}
}

func TestSameDay(t *testing.T) {
	t.Parallel()

	a := time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local)
	b := time.Date(2026, 3, 1, 18, 30, 0, 0, time.Local)
	c := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)

	if !SameDay(a, b) {
		t.Fatalf("expected same day for %v and %v", a, b)
	}
	if SameDay(a, c) {
		t.Fatalf("expected different days for %v and %v", a, c)
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"2026-02-01", "2026/02/01", "20260201", " 2026-02-01 "} {
		got, err := ParseDate(input)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", input, err)
		}
		if got.Year() != 2026 || got.Month() != time.February || got.Day() != 1 {
			t.Fatalf("ParseDate(%q) = %v", input, got)
		}
	}
	if _, err := ParseDate("02/01/2026"); err == nil {
		t.Fatalf("expected error for unsupported layout")
	}
}

func TestDays(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 2, 27, 15, 0, 0, 0, time.Local)
	end := time.Date(2026, 3, 2, 1, 0, 0, 0, time.Local)

	days := Days(start, end)
	if len(days) != 4 {
		t.Fatalf("expected 4 days across the month boundary, got %d", len(days))
	}
	if days[2].Month() != time.March || days[2].Day() != 1 {
		t.Fatalf("unexpected third day: %v", days[2])
	}
	if got := Days(end, start); len(got) != 0 {
		t.Fatalf("expected no days for reversed range, got %d", len(got))
	}
}

func TestStamp(t *testing.T) {
	t.Parallel()

	if got := Stamp(time.Date(2026, 2, 1, 9, 5, 7, 0, time.UTC)); got != "20260201_090507" {
		t.Fatalf("unexpected stamp %q", got)
	}
}
