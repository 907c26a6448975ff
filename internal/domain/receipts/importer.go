package receipts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"intranet/internal/domain/notifications"
	"intranet/internal/platform/storage"
)

const (
	StatusOK    = "ok"
	StatusError = "error"
)

type ImportFile struct {
	Name    string
	Content []byte
}

type FileResult struct {
	FileName     string `json:"archivo"`
	Status       string `json:"estatus"`
	Detail       string `json:"detalle,omitempty"`
	ReceiptID    string `json:"reciboId,omitempty"`
	EmployeeName string `json:"empleado,omitempty"`
	EmployeeCode string `json:"numeroEmpleado,omitempty"`
	Period       string `json:"periodo,omitempty"`
	Month        int    `json:"mes,omitempty"`
	Year         int    `json:"anio,omitempty"`
}

type ImportSummary struct {
	Total     int          `json:"total"`
	Succeeded int          `json:"exitosos"`
	Failed    int          `json:"fallidos"`
	Results   []FileResult `json:"resultados"`
}

type Importer struct {
	store   StoreAPI
	files   storage.Store
	notify  *notifications.Service
	company string
}

func NewImporter(store StoreAPI, files storage.Store, notify *notifications.Service, companyName string) *Importer {
	return &Importer{store: store, files: files, notify: notify, company: companyName}
}

// Run processes a batch of receipt files sequentially. Each file is parsed,
// matched against the active roster by employee code, stored and recorded.
// A failing file never aborts the batch: it is reported in its FileResult
// and processing continues with the next one. uploadedBy may be empty when
// the batch comes from the CLI.
func (im *Importer) Run(ctx context.Context, batch []ImportFile, uploadedBy string) (ImportSummary, error) {
	summary := ImportSummary{Total: len(batch)}
	if len(batch) == 0 {
		return summary, nil
	}

	roster, err := im.store.ListActiveEmployees(ctx)
	if err != nil {
		return summary, fmt.Errorf("roster lookup: %w", err)
	}
	byCode := make(map[string]RosterEntry, len(roster))
	for _, e := range roster {
		// Stored codes may carry stray whitespace; match them the same
		// trimmed way the filename side is parsed.
		if code := strings.TrimSpace(e.Code); code != "" {
			byCode[code] = e
		}
	}

	seen := map[string]bool{}
	for _, f := range batch {
		res := im.importOne(ctx, f, byCode, seen, uploadedBy)
		if res.Status == StatusOK {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
		summary.Results = append(summary.Results, res)
	}

	slog.Info("receipt import finished",
		"total", summary.Total,
		"exitosos", summary.Succeeded,
		"fallidos", summary.Failed)
	return summary, nil
}

func (im *Importer) importOne(ctx context.Context, f ImportFile, byCode map[string]RosterEntry, seen map[string]bool, uploadedBy string) FileResult {
	fail := func(detail string) FileResult {
		return FileResult{FileName: f.Name, Status: StatusError, Detail: detail}
	}

	p, err := ParseFilename(f.Name)
	if err != nil {
		return fail(err.Error())
	}

	emp, ok := byCode[p.EmployeeCode]
	if !ok {
		return fail(fmt.Sprintf("no active employee with code %q", p.EmployeeCode))
	}

	target := fmt.Sprintf("%s|%s|%d|%d", emp.ID, p.Period, p.Month, p.Year)
	if seen[target] {
		return fail(fmt.Sprintf("duplicate of another file in this batch for %s %d/%d", p.Period, p.Month, p.Year))
	}

	exists, err := im.store.Exists(ctx, emp.ID, p.Period, p.Month, p.Year)
	if err != nil {
		return fail("duplicate check failed: " + err.Error())
	}
	if exists {
		return fail(fmt.Sprintf("receipt for %s %d/%d already uploaded", p.Period, p.Month, p.Year))
	}

	key := FileKey(emp.ID, p.Year, p.Month, p.Period)
	// A stale object can be left behind by a previously deleted row.
	if err := im.files.Remove(ctx, key); err != nil && !errors.Is(err, storage.ErrNotFound) {
		slog.Warn("stale receipt file removal failed", "key", key, "err", err)
	}
	if err := im.files.Put(ctx, key, f.Content, "application/pdf"); err != nil {
		return fail("file upload failed: " + err.Error())
	}

	r := Receipt{
		EmployeeID: emp.ID,
		Period:     p.Period,
		Month:      p.Month,
		Year:       p.Year,
		FileName:   f.Name,
		FileKey:    key,
		FileURL:    im.files.PublicURL(key),
		Notes:      "Carga masiva - " + time.Now().Format("2006-01-02 15:04"),
	}
	if uploadedBy != "" {
		r.UploadedBy = &uploadedBy
	}
	stored, err := im.store.Insert(ctx, r)
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			return fail(fmt.Sprintf("receipt for %s %d/%d already uploaded", p.Period, p.Month, p.Year))
		}
		return fail("insert failed: " + err.Error())
	}
	seen[target] = true

	if im.notify != nil {
		im.notify.NotifyTemplate(ctx, emp.ID, emp.Email, notifications.TypePayrollReceipt, map[string]string{
			"nombre":  emp.FullName,
			"periodo": p.Period,
			"mes":     notifications.MonthName(p.Month),
			"anio":    strconv.Itoa(p.Year),
			"empresa": im.company,
			"url":     stored.FileURL,
		})
	}

	return FileResult{
		FileName:     f.Name,
		Status:       StatusOK,
		ReceiptID:    stored.ID,
		EmployeeName: emp.FullName,
		EmployeeCode: p.EmployeeCode,
		Period:       p.Period,
		Month:        p.Month,
		Year:         p.Year,
	}
}
