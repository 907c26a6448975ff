package receipts

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"intranet/internal/domain/notifications"
	"intranet/internal/platform/storage"
)

type Service struct {
	store  StoreAPI
	files  storage.Store
	notify *notifications.Service
}

func NewService(store StoreAPI, files storage.Store, notify *notifications.Service) *Service {
	return &Service{store: store, files: files, notify: notify}
}

func (s *Service) MyReceipts(ctx context.Context, employeeID string, year int) ([]Receipt, error) {
	return s.store.ListByEmployee(ctx, employeeID, year)
}

func (s *Service) All(ctx context.Context, employeeID string, month, year int) ([]Detail, error) {
	return s.store.ListAll(ctx, employeeID, month, year)
}

func (s *Service) Get(ctx context.Context, id string) (Receipt, error) {
	return s.store.Get(ctx, id)
}

// Upload stores a single receipt for an explicit employee and period,
// bypassing the filename grammar used by the bulk importer.
func (s *Service) Upload(ctx context.Context, employeeID, period string, month, year int, fileName string, content []byte, uploadedBy, notes string) (Receipt, error) {
	if period != PeriodFirstHalf && period != PeriodSecondHalf {
		return Receipt{}, fmt.Errorf("receipts: invalid period %q", period)
	}
	if month < 1 || month > 12 {
		return Receipt{}, fmt.Errorf("receipts: invalid month %d", month)
	}

	exists, err := s.store.Exists(ctx, employeeID, period, month, year)
	if err != nil {
		return Receipt{}, err
	}
	if exists {
		return Receipt{}, ErrDuplicate
	}

	key := FileKey(employeeID, year, month, period)
	if err := s.files.Put(ctx, key, content, "application/pdf"); err != nil {
		return Receipt{}, fmt.Errorf("receipts: upload: %w", err)
	}

	r := Receipt{
		EmployeeID: employeeID,
		Period:     period,
		Month:      month,
		Year:       year,
		FileName:   fileName,
		FileKey:    key,
		FileURL:    s.files.PublicURL(key),
		Notes:      notes,
	}
	if uploadedBy != "" {
		r.UploadedBy = &uploadedBy
	}
	return s.store.Insert(ctx, r)
}

// Delete removes the row and then the stored file. A failed file removal
// is logged, not surfaced: the row is already gone.
func (s *Service) Delete(ctx context.Context, id string) error {
	r, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if err := s.files.Remove(ctx, r.FileKey); err != nil {
		slog.Warn("receipt file removal failed", "key", r.FileKey, "err", err)
	}
	return nil
}

// DownloadURL returns a short-lived signed link, falling back to the
// public URL when the backend cannot sign.
func (s *Service) DownloadURL(ctx context.Context, id string) (string, error) {
	r, err := s.store.Get(ctx, id)
	if err != nil {
		return "", err
	}
	url, err := s.files.SignedURL(r.FileKey, 15*time.Minute)
	if err != nil {
		return s.files.PublicURL(r.FileKey), nil
	}
	return url, nil
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	return s.store.Stats(ctx)
}
