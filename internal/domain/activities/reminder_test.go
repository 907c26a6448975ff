package activities

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"intranet/internal/domain/notifications"
)

type fakeReminderStore struct {
	targets   []ReminderTarget
	fetchErr  error
	recorded  []string
	sentFlags map[string]bool
}

func (f *fakeReminderStore) ListIncompleteCapture(ctx context.Context, weekStart, weekEnd time.Time) ([]ReminderTarget, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.targets, nil
}

func (f *fakeReminderStore) RecordReminder(ctx context.Context, employeeID, message string, sent bool) error {
	f.recorded = append(f.recorded, employeeID)
	if f.sentFlags == nil {
		f.sentFlags = map[string]bool{}
	}
	f.sentFlags[employeeID] = sent
	return nil
}

type fakeDispatcher struct {
	sent    []string
	failFor map[string]string
}

func (f *fakeDispatcher) Send(ctx context.Context, to, subject, htmlBody string) notifications.Result {
	f.sent = append(f.sent, to)
	if detail, ok := f.failFor[to]; ok {
		return notifications.Result{Delivered: false, Detail: detail}
	}
	return notifications.Result{Delivered: true, Detail: "ok"}
}

func TestRunWeeklyReminderAllComplete(t *testing.T) {
	store := &fakeReminderStore{}
	dispatcher := &fakeDispatcher{}
	now := time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC)

	summary, err := RunWeeklyReminder(context.Background(), store, dispatcher, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Targeted != 0 || len(dispatcher.sent) != 0 || len(store.recorded) != 0 {
		t.Fatalf("expected no-op sweep, got %+v", summary)
	}
	if summary.WeekStart != time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("unexpected week start %v", summary.WeekStart)
	}
	if summary.WeekEnd != time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("unexpected week end %v", summary.WeekEnd)
	}
}

func TestRunWeeklyReminderMissingEmail(t *testing.T) {
	store := &fakeReminderStore{targets: []ReminderTarget{
		{EmployeeID: "e1", FullName: "Ana Flores", Email: ""},
		{EmployeeID: "e2", FullName: "Luis Mora", Email: "   "},
		{EmployeeID: "e3", FullName: "Rosa Vega", Email: "rosa@example.com"},
	}}
	dispatcher := &fakeDispatcher{}

	summary, err := RunWeeklyReminder(context.Background(), store, dispatcher, time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Targeted != 3 || summary.Delivered != 1 || summary.NoEmail != 2 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	// No delivery attempt for addressless employees.
	if len(dispatcher.sent) != 1 || dispatcher.sent[0] != "rosa@example.com" {
		t.Fatalf("unexpected delivery attempts %v", dispatcher.sent)
	}
	// One audit row per targeted employee, even the addressless ones.
	if len(store.recorded) != 3 {
		t.Fatalf("expected 3 audit rows, got %d", len(store.recorded))
	}
	for _, outcome := range summary.Outcomes {
		if outcome.EmployeeID != "e3" && outcome.Status != OutcomeNoEmail {
			t.Fatalf("expected no_email outcome for %s, got %s", outcome.EmployeeID, outcome.Status)
		}
	}
}

func TestRunWeeklyReminderContinuesPastFailures(t *testing.T) {
	store := &fakeReminderStore{targets: []ReminderTarget{
		{EmployeeID: "e1", FullName: "Ana Flores", Email: "ana@example.com"},
		{EmployeeID: "e2", FullName: "Luis Mora", Email: "luis@example.com"},
		{EmployeeID: "e3", FullName: "Rosa Vega", Email: "rosa@example.com"},
	}}
	dispatcher := &fakeDispatcher{failFor: map[string]string{"luis@example.com": "mailbox full"}}

	summary, err := RunWeeklyReminder(context.Background(), store, dispatcher, time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Delivered != 2 || summary.Failed != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if len(dispatcher.sent) != 3 {
		t.Fatalf("expected all sends attempted, got %d", len(dispatcher.sent))
	}
	if !store.sentFlags["e1"] || store.sentFlags["e2"] || !store.sentFlags["e3"] {
		t.Fatalf("audit sent flags wrong: %+v", store.sentFlags)
	}
	var failed *ReminderOutcome
	for i := range summary.Outcomes {
		if summary.Outcomes[i].Status == OutcomeFailed {
			failed = &summary.Outcomes[i]
		}
	}
	if failed == nil || !strings.Contains(failed.Detail, "mailbox full") {
		t.Fatalf("expected failure detail preserved, got %+v", failed)
	}
}

func TestRunWeeklyReminderFetchFailure(t *testing.T) {
	store := &fakeReminderStore{fetchErr: errors.New("store offline")}
	dispatcher := &fakeDispatcher{}

	_, err := RunWeeklyReminder(context.Background(), store, dispatcher, time.Now())
	if err == nil {
		t.Fatal("expected error from failing fetch")
	}
	if len(store.recorded) != 0 {
		t.Fatalf("expected zero audit rows after fetch failure, got %d", len(store.recorded))
	}
}

func TestReminderEmailNamesWeek(t *testing.T) {
	subject, body := reminderEmail("Ana Flores", "11/03 al 15/03/2024")
	if !strings.Contains(subject, "11/03 al 15/03/2024") {
		t.Fatalf("subject missing week range: %q", subject)
	}
	if !strings.Contains(body, "Ana Flores") {
		t.Fatalf("body missing employee name: %q", body)
	}
}
