package vacations

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound         = errors.New("vacations: request not found")
	ErrAlreadyProcessed = errors.New("vacations: request already processed")
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const requestColumns = `
  v.id, v.empleado_id, v.fecha_inicio, v.fecha_fin, v.dias_solicitados,
  COALESCE(v.dias_especificos, '{}'), v.tipo_solicitud, COALESCE(v.motivo, ''),
  v.estatus, v.aprobado_por, COALESCE(v.comentario_admin, ''), v.created_at`

func scanRequest(row pgx.Row) (Request, error) {
	var r Request
	err := row.Scan(&r.ID, &r.EmployeeID, &r.StartDate, &r.EndDate, &r.RequestedDays,
		&r.SpecificDays, &r.Kind, &r.Reason, &r.Status, &r.ApprovedBy, &r.AdminComment, &r.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Request{}, ErrNotFound
	}
	return r, err
}

func (s *Store) ListByEmployee(ctx context.Context, employeeID, status string) ([]Request, error) {
	query := "SELECT " + requestColumns + " FROM vacaciones v WHERE v.empleado_id = $1"
	args := []any{employeeID}
	if status != "" {
		query += " AND v.estatus = $2"
		args = append(args, status)
	}
	query += " ORDER BY v.created_at DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Request
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) ListAll(ctx context.Context, status string) ([]Detail, error) {
	query := `
    SELECT ` + requestColumns + `, TRIM(e.nombre || ' ' || e.apellidos), COALESCE(e.numero_empleado, '')
    FROM vacaciones v
    JOIN empleados e ON e.id = v.empleado_id`
	args := []any{}
	if status != "" {
		query += " WHERE v.estatus = $1"
		args = append(args, status)
	}
	query += " ORDER BY v.created_at DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Detail
	for rows.Next() {
		var d Detail
		if err := rows.Scan(&d.ID, &d.EmployeeID, &d.StartDate, &d.EndDate, &d.RequestedDays,
			&d.SpecificDays, &d.Kind, &d.Reason, &d.Status, &d.ApprovedBy, &d.AdminComment,
			&d.CreatedAt, &d.EmployeeName, &d.EmployeeCode); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (Request, error) {
	row := s.DB.QueryRow(ctx, "SELECT "+requestColumns+" FROM vacaciones v WHERE v.id = $1", id)
	return scanRequest(row)
}

func (s *Store) GetDetail(ctx context.Context, id string) (Detail, error) {
	var d Detail
	err := s.DB.QueryRow(ctx, `
    SELECT `+requestColumns+`, TRIM(e.nombre || ' ' || e.apellidos), COALESCE(e.numero_empleado, '')
    FROM vacaciones v
    JOIN empleados e ON e.id = v.empleado_id
    WHERE v.id = $1
  `, id).Scan(&d.ID, &d.EmployeeID, &d.StartDate, &d.EndDate, &d.RequestedDays,
		&d.SpecificDays, &d.Kind, &d.Reason, &d.Status, &d.ApprovedBy, &d.AdminComment,
		&d.CreatedAt, &d.EmployeeName, &d.EmployeeCode)
	if errors.Is(err, pgx.ErrNoRows) {
		return Detail{}, ErrNotFound
	}
	return d, err
}

func (s *Store) Create(ctx context.Context, r Request) (Request, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO vacaciones (empleado_id, fecha_inicio, fecha_fin, dias_solicitados,
      dias_especificos, tipo_solicitud, motivo)
    VALUES ($1,$2,$3,$4,$5,$6,NULLIF($7,''))
    RETURNING `+requestColumnsBare+`
  `, r.EmployeeID, r.StartDate, r.EndDate, r.RequestedDays, r.SpecificDays, r.Kind, r.Reason)
	return scanRequest(row)
}

const requestColumnsBare = `
  id, empleado_id, fecha_inicio, fecha_fin, dias_solicitados,
  COALESCE(dias_especificos, '{}'), tipo_solicitud, COALESCE(motivo, ''),
  estatus, aprobado_por, COALESCE(comentario_admin, ''), created_at`

func (s *Store) VacationBalance(ctx context.Context, employeeID string) (float64, error) {
	var days float64
	err := s.DB.QueryRow(ctx, "SELECT dias_vacaciones FROM empleados WHERE id = $1", employeeID).Scan(&days)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	return days, err
}

func (s *Store) HasApprovedOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM vacaciones
    WHERE empleado_id = $1 AND estatus = 'aprobada'
      AND fecha_fin >= $2 AND fecha_inicio <= $3
  `, employeeID, start, end).Scan(&count)
	return count > 0, err
}

func (s *Store) Approve(ctx context.Context, id, approverID, comment string, decrementDays float64) (Request, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Request{}, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
    UPDATE vacaciones
    SET estatus = 'aprobada', aprobado_por = $1, comentario_admin = NULLIF($2, '')
    WHERE id = $3 AND estatus = 'pendiente'
    RETURNING `+requestColumnsBare+`
  `, approverID, comment, id)
	r, err := scanRequest(row)
	if errors.Is(err, ErrNotFound) {
		return Request{}, ErrAlreadyProcessed
	}
	if err != nil {
		return Request{}, err
	}

	if decrementDays > 0 {
		// GREATEST keeps the stored balance from dipping below zero when a
		// late approval exceeds what is left.
		if _, err := tx.Exec(ctx, `
      UPDATE empleados SET dias_vacaciones = GREATEST(dias_vacaciones - $1, 0), updated_at = now()
      WHERE id = $2
    `, decrementDays, r.EmployeeID); err != nil {
			return Request{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Request{}, err
	}
	return r, nil
}

func (s *Store) Reject(ctx context.Context, id, approverID, comment string) (Request, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE vacaciones
    SET estatus = 'rechazada', aprobado_por = $1, comentario_admin = $2
    WHERE id = $3 AND estatus = 'pendiente'
    RETURNING `+requestColumnsBare+`
  `, approverID, comment, id)
	r, err := scanRequest(row)
	if errors.Is(err, ErrNotFound) {
		return Request{}, ErrAlreadyProcessed
	}
	return r, err
}

func (s *Store) DeleteOwnPending(ctx context.Context, id, employeeID string) error {
	tag, err := s.DB.Exec(ctx, `
    DELETE FROM vacaciones WHERE id = $1 AND empleado_id = $2 AND estatus = 'pendiente'
  `, id, employeeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ListActiveForReset(ctx context.Context) ([]ResetEmployee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT e.id, e.nombre || ' ' || e.apellidos, p.dias_vacaciones_anuales, e.anio_reset_vacaciones
    FROM empleados e
    LEFT JOIN puestos p ON p.id = e.puesto_id
    WHERE e.activo = true
    ORDER BY e.apellidos, e.nombre
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ResetEmployee
	for rows.Next() {
		var e ResetEmployee
		if err := rows.Scan(&e.ID, &e.FullName, &e.AnnualDays, &e.LastResetYear); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) ApplyReset(ctx context.Context, employeeID string, days float64, year int) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE empleados
    SET dias_vacaciones = $1, anio_reset_vacaciones = $2, updated_at = now()
    WHERE id = $3 AND activo = true
  `, days, year, employeeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
