package activities

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("activities: record not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) ListRange(ctx context.Context, employeeID string, from, to time.Time) ([]Activity, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, empleado_id, fecha, dia_semana, hora_entrada::text, hora_salida::text,
           horas_trabajadas, COALESCE(descripcion, ''), ubicacion_id, created_at
    FROM actividades
    WHERE empleado_id = $1 AND fecha >= $2 AND fecha <= $3
    ORDER BY fecha
  `, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Activity
	for rows.Next() {
		var a Activity
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.Date, &a.DayLetter, &a.EntryTime, &a.ExitTime,
			&a.WorkedHours, &a.Description, &a.LocationID, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// UpsertDay relies on the unique (empleado_id, fecha) key so a re-saved week
// overwrites instead of duplicating.
func (s *Store) UpsertDay(ctx context.Context, employeeID string, entry DayEntry, dayLetter string, workedHours float64) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO actividades (empleado_id, fecha, dia_semana, hora_entrada, hora_salida, horas_trabajadas, descripcion, ubicacion_id)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    ON CONFLICT (empleado_id, fecha) DO UPDATE
      SET dia_semana = EXCLUDED.dia_semana,
          hora_entrada = EXCLUDED.hora_entrada,
          hora_salida = EXCLUDED.hora_salida,
          horas_trabajadas = EXCLUDED.horas_trabajadas,
          descripcion = EXCLUDED.descripcion,
          ubicacion_id = EXCLUDED.ubicacion_id
  `, employeeID, entry.Date, dayLetter, entry.EntryTime, entry.ExitTime, workedHours, entry.Description, entry.LocationID)
	return err
}

func (s *Store) UpdateDay(ctx context.Context, employeeID, activityID string, entry DayEntry, workedHours float64) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE actividades
    SET hora_entrada = $1, hora_salida = $2, horas_trabajadas = $3, descripcion = $4, ubicacion_id = $5
    WHERE id = $6 AND empleado_id = $7
  `, entry.EntryTime, entry.ExitTime, workedHours, entry.Description, entry.LocationID, activityID, employeeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteDay(ctx context.Context, employeeID, activityID string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM actividades WHERE id = $1 AND empleado_id = $2", activityID, employeeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListIncompleteCapture returns active employees with fewer than five
// positive-hour days captured inside the window. Employees without an
// assigned position (external accounts) are not expected to capture.
func (s *Store) ListIncompleteCapture(ctx context.Context, weekStart, weekEnd time.Time) ([]ReminderTarget, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT e.id, TRIM(e.nombre || ' ' || e.apellidos), COALESCE(e.email, '')
    FROM empleados e
    WHERE e.activo = TRUE
      AND e.puesto_id IS NOT NULL
      AND (
        SELECT COUNT(1) FROM actividades a
        WHERE a.empleado_id = e.id
          AND a.fecha >= $1 AND a.fecha <= $2
          AND a.horas_trabajadas > 0
      ) < 5
    ORDER BY e.apellidos, e.nombre
  `, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ReminderTarget
	for rows.Next() {
		var t ReminderTarget
		if err := rows.Scan(&t.EmployeeID, &t.FullName, &t.Email); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) RecordReminder(ctx context.Context, employeeID, message string, sent bool) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO notificaciones (empleado_id, tipo, mensaje, enviado)
    VALUES ($1, 'recordatorio_actividad', $2, $3)
  `, employeeID, message, sent)
	return err
}
