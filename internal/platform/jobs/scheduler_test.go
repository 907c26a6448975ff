package jobs

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWeeklyTriggerNext(t *testing.T) {
	// Thursday 2024-03-14 09:00.
	after := time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)
	trigger := Weekly{Weekday: time.Friday, Hour: 10}

	next := trigger.Next(after)
	want := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("expected %v, got %v", want, next)
	}

	// Friday after the fire time rolls to the next week.
	after = time.Date(2024, 3, 15, 11, 0, 0, 0, time.UTC)
	next = trigger.Next(after)
	want = time.Date(2024, 3, 22, 10, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("expected %v, got %v", want, next)
	}

	// Exactly at the fire time still rolls forward.
	after = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	next = trigger.Next(after)
	if !next.Equal(want) {
		t.Fatalf("expected %v, got %v", want, next)
	}
}

func TestAnnualTriggerNext(t *testing.T) {
	trigger := Annual{Month: time.January, Day: 1, Minute: 1}

	after := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	next := trigger.Next(after)
	want := time.Date(2026, 1, 1, 0, 1, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("expected %v, got %v", want, next)
	}

	after = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	next = trigger.Next(after)
	if !next.Equal(want) {
		t.Fatalf("expected %v, got %v", want, next)
	}
}

func TestRegisterReplacesSameID(t *testing.T) {
	s := NewScheduler()
	ran := ""
	s.Register(Job{ID: "j", Trigger: Weekly{Weekday: time.Friday}, Run: func(ctx context.Context) error {
		ran = "first"
		return nil
	}})
	s.Register(Job{ID: "j", Trigger: Weekly{Weekday: time.Friday}, Run: func(ctx context.Context) error {
		ran = "second"
		return nil
	}})

	if got := len(s.JobIDs()); got != 1 {
		t.Fatalf("expected 1 job after re-registration, got %d", got)
	}
	if err := s.RunNow(context.Background(), "j"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ran != "second" {
		t.Fatalf("expected replacement handler to run, got %q", ran)
	}
}

func TestRunNowUnknownJob(t *testing.T) {
	s := NewScheduler()
	if err := s.RunNow(context.Background(), "missing"); err == nil {
		t.Fatal("expected error for unknown job")
	}
}

func TestRunNowRecoversPanic(t *testing.T) {
	s := NewScheduler()
	s.Register(Job{ID: "boom", Trigger: Annual{Month: time.January, Day: 1}, Run: func(ctx context.Context) error {
		panic("broken handler")
	}})
	if err := s.RunNow(context.Background(), "boom"); err == nil {
		t.Fatal("expected panic to surface as error")
	}
}

func TestStopWithoutStart(t *testing.T) {
	s := NewScheduler()
	s.Stop() // must not panic with nothing registered

	s.Register(Job{ID: "j", Trigger: Weekly{Weekday: time.Monday}, Run: func(ctx context.Context) error {
		return errors.New("never runs")
	}})
	s.Stop()
	s.Stop()
}
