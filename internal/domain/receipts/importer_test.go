package receipts

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"intranet/internal/platform/storage"
)

type fakeReceiptStore struct {
	roster    []RosterEntry
	rosterErr error
	inserted  []Receipt
	existing  map[string]bool
	nextID    int
}

func newFakeReceiptStore(roster ...RosterEntry) *fakeReceiptStore {
	return &fakeReceiptStore{roster: roster, existing: map[string]bool{}}
}

func targetKey(employeeID, period string, month, year int) string {
	return employeeID + "|" + period + "|" + strconv.Itoa(month) + "|" + strconv.Itoa(year)
}

func (f *fakeReceiptStore) ListActiveEmployees(ctx context.Context) ([]RosterEntry, error) {
	if f.rosterErr != nil {
		return nil, f.rosterErr
	}
	return f.roster, nil
}

func (f *fakeReceiptStore) Exists(ctx context.Context, employeeID, period string, month, year int) (bool, error) {
	return f.existing[targetKey(employeeID, period, month, year)], nil
}

func (f *fakeReceiptStore) Insert(ctx context.Context, r Receipt) (Receipt, error) {
	if f.existing[targetKey(r.EmployeeID, r.Period, r.Month, r.Year)] {
		return Receipt{}, ErrDuplicate
	}
	f.nextID++
	r.ID = "rec-" + strconv.Itoa(f.nextID)
	f.inserted = append(f.inserted, r)
	f.existing[targetKey(r.EmployeeID, r.Period, r.Month, r.Year)] = true
	return r, nil
}

func (f *fakeReceiptStore) Get(ctx context.Context, id string) (Receipt, error) {
	return Receipt{}, ErrNotFound
}

func (f *fakeReceiptStore) ListByEmployee(ctx context.Context, employeeID string, year int) ([]Receipt, error) {
	return nil, nil
}

func (f *fakeReceiptStore) ListAll(ctx context.Context, employeeID string, month, year int) ([]Detail, error) {
	return nil, nil
}

func (f *fakeReceiptStore) Delete(ctx context.Context, id string) (Receipt, error) {
	return Receipt{}, ErrNotFound
}

func (f *fakeReceiptStore) Stats(ctx context.Context) (Stats, error) {
	return Stats{}, nil
}

func testRoster() []RosterEntry {
	return []RosterEntry{
		{ID: "emp-1", FullName: "Ana Ruiz", Email: "ana@acme.mx", Code: "356"},
		{ID: "emp-2", FullName: "Luis Mora", Email: "luis@acme.mx", Code: "120"},
	}
}

func TestImporterUnknownCodeOnlyFailsThatFile(t *testing.T) {
	store := newFakeReceiptStore(testRoster()...)
	files := storage.NewMemory()
	im := NewImporter(store, files, nil, "Acme")

	batch := []ImportFile{
		{Name: "RE_3107_Quincenal_2026_1_356.pdf", Content: []byte("pdf-1")},
		{Name: "RE_3107_Quincenal_2026_1_999.pdf", Content: []byte("pdf-2")},
		{Name: "RE_3107_Quincenal_2026_2_120.pdf", Content: []byte("pdf-3")},
	}
	sum, err := im.Run(context.Background(), batch, "admin-1")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum.Total != 3 || sum.Succeeded != 2 || sum.Failed != 1 {
		t.Fatalf("summary = %+v", sum)
	}
	if len(store.inserted) != 2 {
		t.Fatalf("inserted %d rows, want 2", len(store.inserted))
	}
	if sum.Results[1].Status != StatusError || !strings.Contains(sum.Results[1].Detail, "999") {
		t.Fatalf("unknown-code result = %+v", sum.Results[1])
	}
	if files.Len() != 2 {
		t.Fatalf("stored %d files, want 2", files.Len())
	}
}

func TestImporterIntraBatchDuplicate(t *testing.T) {
	store := newFakeReceiptStore(testRoster()...)
	files := storage.NewMemory()
	im := NewImporter(store, files, nil, "Acme")

	batch := []ImportFile{
		{Name: "RE_3107_Quincenal_2026_5_356.pdf", Content: []byte("first")},
		{Name: "RE_3108_Quincenal_2026_5_356_extra.pdf", Content: []byte("second")},
	}
	sum, err := im.Run(context.Background(), batch, "")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum.Succeeded != 1 || sum.Failed != 1 {
		t.Fatalf("summary = %+v", sum)
	}
	if sum.Results[0].Status != StatusOK {
		t.Fatalf("first file should win: %+v", sum.Results[0])
	}
	if len(store.inserted) != 1 {
		t.Fatalf("inserted %d rows, want 1", len(store.inserted))
	}
}

func TestImporterSkipsAlreadyUploadedPeriod(t *testing.T) {
	store := newFakeReceiptStore(testRoster()...)
	store.existing[targetKey("emp-1", PeriodFirstHalf, 1, 2026)] = true
	im := NewImporter(store, storage.NewMemory(), nil, "Acme")

	sum, err := im.Run(context.Background(), []ImportFile{
		{Name: "RE_3107_Quincenal_2026_1_356.pdf", Content: []byte("pdf")},
	}, "")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum.Failed != 1 {
		t.Fatalf("summary = %+v", sum)
	}
	if !strings.Contains(sum.Results[0].Detail, "already uploaded") {
		t.Fatalf("detail = %q", sum.Results[0].Detail)
	}
}

func TestImporterMalformedNameContinues(t *testing.T) {
	store := newFakeReceiptStore(testRoster()...)
	im := NewImporter(store, storage.NewMemory(), nil, "Acme")

	sum, err := im.Run(context.Background(), []ImportFile{
		{Name: "nomina-enero.pdf", Content: []byte("x")},
		{Name: "RE_3107_Quincenal_2026_1_120.pdf", Content: []byte("y")},
	}, "")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum.Succeeded != 1 || sum.Failed != 1 {
		t.Fatalf("summary = %+v", sum)
	}
	if store.inserted[0].EmployeeID != "emp-2" {
		t.Fatalf("wrong employee persisted: %+v", store.inserted[0])
	}
}

func TestImporterRosterErrorAbortsBeforeWork(t *testing.T) {
	store := newFakeReceiptStore()
	store.rosterErr = errors.New("db down")
	files := storage.NewMemory()
	im := NewImporter(store, files, nil, "Acme")

	_, err := im.Run(context.Background(), []ImportFile{
		{Name: "RE_3107_Quincenal_2026_1_356.pdf", Content: []byte("pdf")},
	}, "")
	if err == nil {
		t.Fatal("expected error")
	}
	if files.Len() != 0 {
		t.Fatalf("files stored despite roster error: %d", files.Len())
	}
}

func TestImporterStorageKey(t *testing.T) {
	store := newFakeReceiptStore(testRoster()...)
	files := storage.NewMemory()
	im := NewImporter(store, files, nil, "Acme")

	sum, err := im.Run(context.Background(), []ImportFile{
		{Name: "RE_3107_Quincenal_2026_4_356.pdf", Content: []byte("pdf")},
	}, "")
	if err != nil || sum.Succeeded != 1 {
		t.Fatalf("Run: %v summary=%+v", err, sum)
	}
	content, ctype, err := files.Get(context.Background(), "emp-1/2026/02_2da_quincena.pdf")
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if string(content) != "pdf" || ctype != "application/pdf" {
		t.Fatalf("stored content=%q type=%q", content, ctype)
	}
}

func TestImporterSuccessEntryCarriesPeriod(t *testing.T) {
	store := newFakeReceiptStore(testRoster()...)
	files := storage.NewMemory()
	im := NewImporter(store, files, nil, "Acme")

	sum, err := im.Run(context.Background(), []ImportFile{
		{Name: "RE_3107_Quincenal_2026_4_356.pdf", Content: []byte("pdf")},
	}, "admin-1")
	if err != nil || sum.Succeeded != 1 {
		t.Fatalf("Run: %v summary=%+v", err, sum)
	}

	res := sum.Results[0]
	if res.Status != StatusOK || res.ReceiptID == "" {
		t.Fatalf("result = %+v", res)
	}
	if res.EmployeeName != "Ana Ruiz" || res.EmployeeCode != "356" {
		t.Fatalf("employee fields = %q %q", res.EmployeeName, res.EmployeeCode)
	}
	if res.Period != PeriodSecondHalf || res.Month != 2 || res.Year != 2026 {
		t.Fatalf("period fields = %q %d/%d", res.Period, res.Month, res.Year)
	}
}

func TestImporterMatchesPaddedStoredCode(t *testing.T) {
	store := newFakeReceiptStore(
		RosterEntry{ID: "emp-1", FullName: "Ana Ruiz", Email: "ana@acme.mx", Code: " 356 "},
		RosterEntry{ID: "emp-2", FullName: "Luis Mora", Email: "luis@acme.mx", Code: "\t"},
	)
	files := storage.NewMemory()
	im := NewImporter(store, files, nil, "Acme")

	sum, err := im.Run(context.Background(), []ImportFile{
		{Name: "RE_3107_Quincenal_2026_1_356.pdf", Content: []byte("pdf")},
	}, "")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum.Succeeded != 1 || sum.Failed != 0 {
		t.Fatalf("summary = %+v", sum)
	}
	if store.inserted[0].EmployeeID != "emp-1" {
		t.Fatalf("wrong employee persisted: %+v", store.inserted[0])
	}
}
