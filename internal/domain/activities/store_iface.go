package activities

import (
	"context"
	"time"
)

type StoreAPI interface {
	ListRange(ctx context.Context, employeeID string, from, to time.Time) ([]Activity, error)
	UpsertDay(ctx context.Context, employeeID string, entry DayEntry, dayLetter string, workedHours float64) error
	UpdateDay(ctx context.Context, employeeID, activityID string, entry DayEntry, workedHours float64) error
	DeleteDay(ctx context.Context, employeeID, activityID string) error
}
