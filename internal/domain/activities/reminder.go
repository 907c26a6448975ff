package activities

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"intranet/internal/domain/notifications"
)

const (
	OutcomeDelivered = "delivered"
	OutcomeFailed    = "failed"
	OutcomeNoEmail   = "no_email"
)

type ReminderTarget struct {
	EmployeeID string
	FullName   string
	Email      string
}

type ReminderOutcome struct {
	EmployeeID string `json:"empleadoId"`
	FullName   string `json:"nombre"`
	Status     string `json:"status"`
	Detail     string `json:"detail,omitempty"`
}

type ReminderSummary struct {
	WeekStart time.Time         `json:"semanaInicio"`
	WeekEnd   time.Time         `json:"semanaFin"`
	Targeted  int               `json:"targeted"`
	Delivered int               `json:"delivered"`
	Failed    int               `json:"failed"`
	NoEmail   int               `json:"noEmail"`
	Outcomes  []ReminderOutcome `json:"outcomes,omitempty"`
}

// ReminderStore is what the sweep needs from the data layer: the incomplete
// capture view and the notification audit trail.
type ReminderStore interface {
	ListIncompleteCapture(ctx context.Context, weekStart, weekEnd time.Time) ([]ReminderTarget, error)
	RecordReminder(ctx context.Context, employeeID, message string, sent bool) error
}

// RunWeeklyReminder sweeps the current capture week (anchored on now) and
// reminds every employee that has not completed it. One audit row is written
// per targeted employee regardless of delivery outcome. A failing fetch ends
// the run with no audit rows; per-recipient failures never stop the loop.
func RunWeeklyReminder(ctx context.Context, store ReminderStore, dispatcher notifications.Dispatcher, now time.Time) (ReminderSummary, error) {
	monday, friday := WeekWindow(now)
	summary := ReminderSummary{WeekStart: monday, WeekEnd: friday}

	targets, err := store.ListIncompleteCapture(ctx, monday, friday)
	if err != nil {
		return summary, fmt.Errorf("incomplete capture lookup: %w", err)
	}
	if len(targets) == 0 {
		slog.Info("weekly reminder: nothing to send, all capture complete")
		return summary, nil
	}

	week := FormatWeekRange(monday, friday)
	auditMessage := "Recordatorio enviado para semana " + week

	for _, target := range targets {
		summary.Targeted++
		outcome := ReminderOutcome{EmployeeID: target.EmployeeID, FullName: target.FullName}

		if strings.TrimSpace(target.Email) == "" {
			outcome.Status = OutcomeNoEmail
			summary.NoEmail++
			summary.Failed++
		} else {
			subject, body := reminderEmail(target.FullName, week)
			result := dispatcher.Send(ctx, target.Email, subject, body)
			if result.Delivered {
				outcome.Status = OutcomeDelivered
				summary.Delivered++
			} else {
				outcome.Status = OutcomeFailed
				outcome.Detail = result.Detail
				summary.Failed++
				slog.Warn("weekly reminder delivery failed", "empleadoId", target.EmployeeID, "detail", result.Detail)
			}
		}

		if err := store.RecordReminder(ctx, target.EmployeeID, auditMessage, outcome.Status == OutcomeDelivered); err != nil {
			slog.Warn("weekly reminder audit insert failed", "empleadoId", target.EmployeeID, "err", err)
		}
		summary.Outcomes = append(summary.Outcomes, outcome)
	}

	slog.Info("weekly reminder completed",
		"semana", week,
		"targeted", summary.Targeted,
		"delivered", summary.Delivered,
		"failed", summary.Failed)
	return summary, nil
}

func reminderEmail(name, week string) (subject, body string) {
	tpl := notifications.DefaultTemplates[notifications.TypeActivityReminder]
	return notifications.Render(tpl, map[string]string{
		"nombre": name,
		"semana": week,
	})
}
