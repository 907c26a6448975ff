package jobs

import "time"

// Trigger yields the next wall-clock firing strictly after the given time.
// Keeping triggers as plain values lets tests compute fire times and invoke
// job handlers directly instead of waiting on timers.
type Trigger interface {
	Next(after time.Time) time.Time
}

// Weekly fires once a week on Weekday at Hour:Minute local time.
type Weekly struct {
	Weekday time.Weekday
	Hour    int
	Minute  int
}

func (t Weekly) Next(after time.Time) time.Time {
	candidate := time.Date(after.Year(), after.Month(), after.Day(), t.Hour, t.Minute, 0, 0, after.Location())
	offset := (int(t.Weekday) - int(after.Weekday()) + 7) % 7
	candidate = candidate.AddDate(0, 0, offset)
	if !candidate.After(after) {
		candidate = candidate.AddDate(0, 0, 7)
	}
	return candidate
}

// Annual fires once a year on Month/Day at Hour:Minute local time.
type Annual struct {
	Month  time.Month
	Day    int
	Hour   int
	Minute int
}

func (t Annual) Next(after time.Time) time.Time {
	candidate := time.Date(after.Year(), t.Month, t.Day, t.Hour, t.Minute, 0, 0, after.Location())
	if !candidate.After(after) {
		candidate = time.Date(after.Year()+1, t.Month, t.Day, t.Hour, t.Minute, 0, 0, after.Location())
	}
	return candidate
}
