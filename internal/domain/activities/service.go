package activities

import (
	"context"
	"fmt"
	"time"
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

// Week returns the Monday–Friday capture rows for the week containing date.
func (s *Service) Week(ctx context.Context, employeeID string, date time.Time) ([]Activity, error) {
	monday, friday := WeekWindow(date)
	return s.store.ListRange(ctx, employeeID, monday, friday)
}

// SaveWeek upserts every submitted day, keyed on (employee, date). Returns
// the number of days written.
func (s *Service) SaveWeek(ctx context.Context, employeeID string, entries []DayEntry) (int, error) {
	saved := 0
	for _, entry := range entries {
		if entry.Date.IsZero() {
			return saved, fmt.Errorf("activities: entry %d has no date", saved)
		}
		hours, err := workedHours(entry.EntryTime, entry.ExitTime)
		if err != nil {
			return saved, fmt.Errorf("activities: %s: %w", entry.Date.Format("2006-01-02"), err)
		}
		if err := s.store.UpsertDay(ctx, employeeID, entry, DayLetter(entry.Date), hours); err != nil {
			return saved, err
		}
		saved++
	}
	return saved, nil
}

func (s *Service) Month(ctx context.Context, employeeID string, year int, month time.Month) ([]Activity, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("activities: invalid month %d", month)
	}
	first, last := MonthWindow(year, month)
	return s.store.ListRange(ctx, employeeID, first, last)
}

func (s *Service) UpdateDay(ctx context.Context, employeeID, activityID string, entry DayEntry) error {
	hours, err := workedHours(entry.EntryTime, entry.ExitTime)
	if err != nil {
		return err
	}
	return s.store.UpdateDay(ctx, employeeID, activityID, entry, hours)
}

func (s *Service) DeleteDay(ctx context.Context, employeeID, activityID string) error {
	return s.store.DeleteDay(ctx, employeeID, activityID)
}

// workedHours derives the day's hours from the entry/exit pair. Days with an
// incomplete pair count zero hours, which keeps them out of the completed-day
// tally used by the reminder sweep.
func workedHours(entry, exit *string) (float64, error) {
	if entry == nil || exit == nil || *entry == "" || *exit == "" {
		return 0, nil
	}
	start, err := parseClock(*entry)
	if err != nil {
		return 0, fmt.Errorf("hora_entrada: %w", err)
	}
	end, err := parseClock(*exit)
	if err != nil {
		return 0, fmt.Errorf("hora_salida: %w", err)
	}
	hours := end.Sub(start).Hours()
	if hours < 0 {
		return 0, fmt.Errorf("hora_salida precedes hora_entrada")
	}
	return hours, nil
}

func parseClock(value string) (time.Time, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q", value)
}
