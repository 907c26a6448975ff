package activities

import (
	"fmt"
	"time"
)

// Day letters follow the capture grid: L M X J V S D starting Monday.
var dayLetters = []string{"L", "M", "X", "J", "V", "S", "D"}

// MondayOf returns the Monday of the week containing d, at midnight in d's
// location.
func MondayOf(d time.Time) time.Time {
	weekday := int(d.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return time.Date(d.Year(), d.Month(), d.Day()-(weekday-1), 0, 0, 0, 0, d.Location())
}

// WeekWindow returns the Monday and Friday bounding the capture week of d.
func WeekWindow(d time.Time) (monday, friday time.Time) {
	monday = MondayOf(d)
	return monday, monday.AddDate(0, 0, 4)
}

// MonthWindow returns the first and last day of the month.
func MonthWindow(year int, month time.Month) (first, last time.Time) {
	first = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last = first.AddDate(0, 1, -1)
	return first, last
}

// DayLetter maps a date to its single-letter weekday code.
func DayLetter(d time.Time) string {
	weekday := int(d.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return dayLetters[weekday-1]
}

// FormatWeekRange renders the range the way reminder emails name it,
// e.g. "11/03 al 15/03/2024".
func FormatWeekRange(monday, friday time.Time) string {
	return fmt.Sprintf("%02d/%02d al %02d/%02d/%d",
		monday.Day(), int(monday.Month()),
		friday.Day(), int(friday.Month()), friday.Year())
}
