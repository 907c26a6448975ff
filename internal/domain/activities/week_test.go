package activities

import (
	"testing"
	"time"
)

func TestMondayOf(t *testing.T) {
	// 2024-03-14 is a Thursday.
	thursday := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)
	monday := MondayOf(thursday)
	if monday != time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("expected 2024-03-11, got %v", monday)
	}

	// A Monday maps to itself.
	if got := MondayOf(monday); got != monday {
		t.Fatalf("expected Monday to map to itself, got %v", got)
	}

	// Sunday belongs to the week that started the previous Monday.
	sunday := time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC)
	if got := MondayOf(sunday); got != monday {
		t.Fatalf("expected 2024-03-11 for Sunday, got %v", got)
	}
}

func TestWeekWindow(t *testing.T) {
	thursday := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)
	monday, friday := WeekWindow(thursday)
	if monday != time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("unexpected Monday %v", monday)
	}
	if friday != time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("unexpected Friday %v", friday)
	}
}

func TestMonthWindow(t *testing.T) {
	first, last := MonthWindow(2024, time.February)
	if first != time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("unexpected first day %v", first)
	}
	if last != time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("expected leap-year Feb 29, got %v", last)
	}

	first, last = MonthWindow(2025, time.December)
	if last != time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("unexpected last day %v", last)
	}
	if first != time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("unexpected first day %v", first)
	}
}

func TestDayLetter(t *testing.T) {
	cases := []struct {
		date time.Time
		want string
	}{
		{time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), "L"},
		{time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC), "X"},
		{time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), "V"},
		{time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC), "D"},
	}
	for _, tc := range cases {
		if got := DayLetter(tc.date); got != tc.want {
			t.Fatalf("DayLetter(%v) = %q, want %q", tc.date, got, tc.want)
		}
	}
}

func TestFormatWeekRange(t *testing.T) {
	monday := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	friday := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if got := FormatWeekRange(monday, friday); got != "11/03 al 15/03/2024" {
		t.Fatalf("unexpected range %q", got)
	}
}
