package vacations

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// DefaultAnnualDays applies when an employee has no assigned position.
const DefaultAnnualDays = 12

type ResetEmployee struct {
	ID            string
	FullName      string
	AnnualDays    *int
	LastResetYear int
}

type ResetSummary struct {
	Year      int `json:"anio"`
	Processed int `json:"processed"`
	Updated   int `json:"updated"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

type ResetStore interface {
	ListActiveForReset(ctx context.Context) ([]ResetEmployee, error)
	// ApplyReset sets the balance and records the reset year atomically.
	ApplyReset(ctx context.Context, employeeID string, days float64, year int) error
}

// RunAnnualReset sets every active employee's vacation balance to the annual
// entitlement of their position. Carryover is not supported: the balance is
// overwritten, not incremented. Employees already reset in the current year
// are skipped, so an out-of-schedule invocation cannot restore days that were
// consumed since January 1. Per-employee failures are logged and do not stop
// the sweep.
func RunAnnualReset(ctx context.Context, store ResetStore, defaultDays float64, now time.Time) (ResetSummary, error) {
	year := now.Year()
	summary := ResetSummary{Year: year}
	if defaultDays <= 0 {
		defaultDays = DefaultAnnualDays
	}

	roster, err := store.ListActiveForReset(ctx)
	if err != nil {
		return summary, fmt.Errorf("roster lookup: %w", err)
	}

	for _, emp := range roster {
		summary.Processed++
		if emp.LastResetYear >= year {
			summary.Skipped++
			continue
		}

		days := defaultDays
		if emp.AnnualDays != nil && *emp.AnnualDays > 0 {
			days = float64(*emp.AnnualDays)
		}

		if err := store.ApplyReset(ctx, emp.ID, days, year); err != nil {
			summary.Failed++
			slog.Warn("annual vacation reset failed for employee", "empleadoId", emp.ID, "err", err)
			continue
		}
		summary.Updated++
	}

	slog.Info("annual vacation reset completed",
		"anio", year,
		"processed", summary.Processed,
		"updated", summary.Updated,
		"skipped", summary.Skipped,
		"failed", summary.Failed)
	return summary, nil
}
