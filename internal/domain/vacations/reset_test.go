package vacations

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeResetStore struct {
	employees []ResetEmployee
	listErr   error
	applied   map[string]float64
	years     map[string]int
	failIDs   map[string]bool
}

func newFakeResetStore(emps ...ResetEmployee) *fakeResetStore {
	return &fakeResetStore{
		employees: emps,
		applied:   map[string]float64{},
		years:     map[string]int{},
		failIDs:   map[string]bool{},
	}
}

func (f *fakeResetStore) ListActiveForReset(ctx context.Context) ([]ResetEmployee, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.employees, nil
}

func (f *fakeResetStore) ApplyReset(ctx context.Context, employeeID string, days float64, year int) error {
	if f.failIDs[employeeID] {
		return errors.New("write failed")
	}
	f.applied[employeeID] = days
	f.years[employeeID] = year
	for i := range f.employees {
		if f.employees[i].ID == employeeID {
			f.employees[i].LastResetYear = year
		}
	}
	return nil
}

func intPtr(v int) *int { return &v }

func TestRunAnnualResetUsesPositionEntitlement(t *testing.T) {
	store := newFakeResetStore(
		ResetEmployee{ID: "e1", FullName: "Ana Ruiz", AnnualDays: intPtr(15)},
		ResetEmployee{ID: "e2", FullName: "Luis Mora"},
	)
	now := time.Date(2026, time.January, 1, 0, 1, 0, 0, time.UTC)

	sum, err := RunAnnualReset(context.Background(), store, 12, now)
	if err != nil {
		t.Fatalf("RunAnnualReset: %v", err)
	}
	if sum.Updated != 2 || sum.Skipped != 0 || sum.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
	if got := store.applied["e1"]; got != 15 {
		t.Fatalf("e1 days = %v, want 15", got)
	}
	if got := store.applied["e2"]; got != 12 {
		t.Fatalf("e2 days = %v, want default 12", got)
	}
	if store.years["e1"] != 2026 {
		t.Fatalf("reset year = %d, want 2026", store.years["e1"])
	}
}

func TestRunAnnualResetIdempotentSameYear(t *testing.T) {
	store := newFakeResetStore(
		ResetEmployee{ID: "e1", FullName: "Ana Ruiz", AnnualDays: intPtr(20)},
	)
	now := time.Date(2026, time.January, 1, 0, 1, 0, 0, time.UTC)

	if _, err := RunAnnualReset(context.Background(), store, 12, now); err != nil {
		t.Fatalf("first run: %v", err)
	}
	// Simulate days consumed during the year.
	store.applied["e1"] = 5

	sum, err := RunAnnualReset(context.Background(), store, 12, now.Add(90*24*time.Hour))
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if sum.Skipped != 1 || sum.Updated != 0 {
		t.Fatalf("second run summary: %+v", sum)
	}
	if store.applied["e1"] != 5 {
		t.Fatalf("second run restored balance: %v", store.applied["e1"])
	}
}

func TestRunAnnualResetNextYearResetsAgain(t *testing.T) {
	store := newFakeResetStore(
		ResetEmployee{ID: "e1", FullName: "Ana Ruiz", AnnualDays: intPtr(14), LastResetYear: 2026},
	)
	now := time.Date(2027, time.January, 1, 0, 1, 0, 0, time.UTC)

	sum, err := RunAnnualReset(context.Background(), store, 12, now)
	if err != nil {
		t.Fatalf("RunAnnualReset: %v", err)
	}
	if sum.Updated != 1 {
		t.Fatalf("summary: %+v", sum)
	}
	if store.applied["e1"] != 14 || store.years["e1"] != 2027 {
		t.Fatalf("applied=%v year=%d", store.applied["e1"], store.years["e1"])
	}
}

func TestRunAnnualResetContinuesPastFailure(t *testing.T) {
	store := newFakeResetStore(
		ResetEmployee{ID: "e1", FullName: "Ana Ruiz"},
		ResetEmployee{ID: "e2", FullName: "Luis Mora"},
		ResetEmployee{ID: "e3", FullName: "Sofia Leon"},
	)
	store.failIDs["e2"] = true
	now := time.Date(2026, time.January, 1, 0, 1, 0, 0, time.UTC)

	sum, err := RunAnnualReset(context.Background(), store, 12, now)
	if err != nil {
		t.Fatalf("RunAnnualReset: %v", err)
	}
	if sum.Updated != 2 || sum.Failed != 1 {
		t.Fatalf("summary: %+v", sum)
	}
	if _, ok := store.applied["e3"]; !ok {
		t.Fatal("employee after failure was not processed")
	}
}

func TestRunAnnualResetRosterError(t *testing.T) {
	store := newFakeResetStore()
	store.listErr = errors.New("db down")

	_, err := RunAnnualReset(context.Background(), store, 12, time.Now())
	if err == nil {
		t.Fatal("expected error")
	}
	if len(store.applied) != 0 {
		t.Fatalf("applied writes despite roster error: %v", store.applied)
	}
}
