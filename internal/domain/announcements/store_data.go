package announcements

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("announcements: not found")

type StoreAPI interface {
	ListActive(ctx context.Context) ([]Announcement, error)
	ListAll(ctx context.Context) ([]Announcement, error)
	Get(ctx context.Context, id string) (Announcement, error)
	Create(ctx context.Context, a Announcement) (Announcement, error)
	Update(ctx context.Context, a Announcement) (Announcement, error)
	Reorder(ctx context.Context, ids []string) error
	Delete(ctx context.Context, id string) (Announcement, error)
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const announcementColumns = `id, titulo, contenido, COALESCE(imagen_key, ''), COALESCE(imagen_url, ''),
  activo, orden, fecha_inicio, fecha_fin, created_at, updated_at`

func scanAnnouncement(row pgx.Row) (Announcement, error) {
	var a Announcement
	err := row.Scan(&a.ID, &a.Title, &a.Content, &a.ImageKey, &a.ImageURL,
		&a.Active, &a.Order, &a.StartDate, &a.EndDate, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Announcement{}, ErrNotFound
	}
	return a, err
}

// ListActive returns the announcements visible today, ordered for display.
func (s *Store) ListActive(ctx context.Context) ([]Announcement, error) {
	return s.list(ctx, `
    SELECT `+announcementColumns+` FROM anuncios
    WHERE activo = true
      AND (fecha_inicio IS NULL OR fecha_inicio <= CURRENT_DATE)
      AND (fecha_fin IS NULL OR fecha_fin >= CURRENT_DATE)
    ORDER BY orden, created_at DESC
  `)
}

func (s *Store) ListAll(ctx context.Context) ([]Announcement, error) {
	return s.list(ctx, `SELECT `+announcementColumns+` FROM anuncios ORDER BY orden, created_at DESC`)
}

func (s *Store) list(ctx context.Context, query string) ([]Announcement, error) {
	rows, err := s.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Announcement
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (Announcement, error) {
	row := s.DB.QueryRow(ctx, "SELECT "+announcementColumns+" FROM anuncios WHERE id = $1", id)
	return scanAnnouncement(row)
}

func (s *Store) Create(ctx context.Context, a Announcement) (Announcement, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO anuncios (titulo, contenido, imagen_key, imagen_url, activo, orden, fecha_inicio, fecha_fin)
    VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5,
      COALESCE(NULLIF($6, 0), (SELECT COALESCE(MAX(orden), 0) + 1 FROM anuncios)),
      $7, $8)
    RETURNING `+announcementColumns+`
  `, a.Title, a.Content, a.ImageKey, a.ImageURL, a.Active, a.Order, a.StartDate, a.EndDate)
	return scanAnnouncement(row)
}

func (s *Store) Update(ctx context.Context, a Announcement) (Announcement, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE anuncios
    SET titulo = $1, contenido = $2, imagen_key = NULLIF($3, ''), imagen_url = NULLIF($4, ''),
        activo = $5, orden = $6, fecha_inicio = $7, fecha_fin = $8, updated_at = now()
    WHERE id = $9
    RETURNING `+announcementColumns+`
  `, a.Title, a.Content, a.ImageKey, a.ImageURL, a.Active, a.Order, a.StartDate, a.EndDate, a.ID)
	return scanAnnouncement(row)
}

// Reorder assigns orden 1..n following the given id sequence.
func (s *Store) Reorder(ctx context.Context, ids []string) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i, id := range ids {
		if _, err := tx.Exec(ctx, `UPDATE anuncios SET orden = $1, updated_at = now() WHERE id = $2`, i+1, id); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (s *Store) Delete(ctx context.Context, id string) (Announcement, error) {
	row := s.DB.QueryRow(ctx, `DELETE FROM anuncios WHERE id = $1 RETURNING `+announcementColumns, id)
	return scanAnnouncement(row)
}
