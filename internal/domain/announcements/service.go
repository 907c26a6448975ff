package announcements

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"intranet/internal/platform/storage"
)

type Service struct {
	store StoreAPI
	files storage.Store
}

func NewService(store StoreAPI, files storage.Store) *Service {
	return &Service{store: store, files: files}
}

func (s *Service) Active(ctx context.Context) ([]Announcement, error) {
	return s.store.ListActive(ctx)
}

func (s *Service) All(ctx context.Context) ([]Announcement, error) {
	return s.store.ListAll(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (Announcement, error) {
	return s.store.Get(ctx, id)
}

// Create stores the optional banner image first so the row always points
// at an existing object.
func (s *Service) Create(ctx context.Context, a Announcement, image []byte, imageType string) (Announcement, error) {
	if strings.TrimSpace(a.Title) == "" {
		return Announcement{}, fmt.Errorf("announcements: titulo is required")
	}
	if a.StartDate != nil && a.EndDate != nil && a.EndDate.Before(*a.StartDate) {
		return Announcement{}, fmt.Errorf("announcements: fecha_fin precedes fecha_inicio")
	}

	if len(image) > 0 {
		key := "anuncios/" + uuid.NewString()
		if err := s.files.Put(ctx, key, image, imageType); err != nil {
			return Announcement{}, fmt.Errorf("announcements: image upload: %w", err)
		}
		a.ImageKey = key
		a.ImageURL = s.files.PublicURL(key)
	}
	return s.store.Create(ctx, a)
}

func (s *Service) Update(ctx context.Context, a Announcement, image []byte, imageType string) (Announcement, error) {
	if strings.TrimSpace(a.Title) == "" {
		return Announcement{}, fmt.Errorf("announcements: titulo is required")
	}
	current, err := s.store.Get(ctx, a.ID)
	if err != nil {
		return Announcement{}, err
	}

	a.ImageKey = current.ImageKey
	a.ImageURL = current.ImageURL
	if len(image) > 0 {
		key := "anuncios/" + uuid.NewString()
		if err := s.files.Put(ctx, key, image, imageType); err != nil {
			return Announcement{}, fmt.Errorf("announcements: image upload: %w", err)
		}
		a.ImageKey = key
		a.ImageURL = s.files.PublicURL(key)
		if current.ImageKey != "" {
			if err := s.files.Remove(ctx, current.ImageKey); err != nil {
				slog.Warn("announcement image removal failed", "key", current.ImageKey, "err", err)
			}
		}
	}
	return s.store.Update(ctx, a)
}

func (s *Service) Reorder(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return fmt.Errorf("announcements: empty order")
	}
	return s.store.Reorder(ctx, ids)
}

// Delete removes the row and then its image. A failed image removal is
// logged, not surfaced.
func (s *Service) Delete(ctx context.Context, id string) error {
	a, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if a.ImageKey != "" {
		if err := s.files.Remove(ctx, a.ImageKey); err != nil {
			slog.Warn("announcement image removal failed", "key", a.ImageKey, "err", err)
		}
	}
	return nil
}
