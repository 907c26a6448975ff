package shared

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
		bad  bool
	}{
		{in: "2026-02-16", want: time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC)},
		{in: "16/02/2026", want: time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC)},
		{in: "2026-02-16T08:30:00Z", want: time.Date(2026, 2, 16, 8, 30, 0, 0, time.UTC)},
		{in: ""},
		{in: "16-02-2026", bad: true},
		{in: "not a date", bad: true},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.in)
		if tc.bad {
			if err == nil {
				t.Fatalf("ParseDate(%q): expected error, got %v", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", tc.in, err)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("ParseDate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
