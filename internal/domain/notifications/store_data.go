package notifications

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrTemplateNotFound = errors.New("notifications: template not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) CreateNotification(ctx context.Context, employeeID, ntype, message string, sent bool) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO notificaciones (empleado_id, tipo, mensaje, enviado)
    VALUES ($1,$2,$3,$4)
  `, employeeID, ntype, message, sent)
	return err
}

func (s *Store) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.DB.Query(ctx, `
    SELECT id, empleado_id, tipo, mensaje, enviado, created_at
    FROM notificaciones
    WHERE empleado_id = $1
    ORDER BY created_at DESC
    LIMIT $2
  `, employeeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.EmployeeID, &n.Type, &n.Message, &n.Sent, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *Store) ListTemplates(ctx context.Context) ([]Template, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT codigo, nombre, asunto, cuerpo, updated_at
    FROM plantillas_correo
    ORDER BY codigo
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Template
	for rows.Next() {
		var t Template
		if err := rows.Scan(&t.Code, &t.Name, &t.Subject, &t.Body, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) GetTemplate(ctx context.Context, code string) (Template, error) {
	var t Template
	err := s.DB.QueryRow(ctx, `
    SELECT codigo, nombre, asunto, cuerpo, updated_at
    FROM plantillas_correo
    WHERE codigo = $1
  `, code).Scan(&t.Code, &t.Name, &t.Subject, &t.Body, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Template{}, ErrTemplateNotFound
	}
	if err != nil {
		return Template{}, err
	}
	return t, nil
}

func (s *Store) UpdateTemplate(ctx context.Context, code, subject, body string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE plantillas_correo
    SET asunto = $1, cuerpo = $2, updated_at = now()
    WHERE codigo = $3
  `, subject, body, code)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTemplateNotFound
	}
	return nil
}
