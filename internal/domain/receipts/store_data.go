package receipts

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound  = errors.New("receipts: not found")
	ErrDuplicate = errors.New("receipts: period already uploaded for employee")
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const receiptColumns = `r.id, r.empleado_id, r.periodo, r.mes, r.anio, r.archivo_nombre, r.archivo_key, r.archivo_url, r.subido_por, COALESCE(r.notas, ''), r.fecha_subida`

func scanReceipt(row pgx.Row) (Receipt, error) {
	var r Receipt
	err := row.Scan(&r.ID, &r.EmployeeID, &r.Period, &r.Month, &r.Year, &r.FileName, &r.FileKey, &r.FileURL, &r.UploadedBy, &r.Notes, &r.UploadedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Receipt{}, ErrNotFound
	}
	return r, err
}

func (s *Store) ListActiveEmployees(ctx context.Context) ([]RosterEntry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, TRIM(nombre || ' ' || apellidos), COALESCE(email, ''), COALESCE(numero_empleado, '')
    FROM empleados
    WHERE activo = true
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RosterEntry
	for rows.Next() {
		var e RosterEntry
		if err := rows.Scan(&e.ID, &e.FullName, &e.Email, &e.Code); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) Exists(ctx context.Context, employeeID, period string, month, year int) (bool, error) {
	var exists bool
	err := s.DB.QueryRow(ctx, `
    SELECT EXISTS(
      SELECT 1 FROM recibos_nomina
      WHERE empleado_id = $1 AND periodo = $2 AND mes = $3 AND anio = $4
    )
  `, employeeID, period, month, year).Scan(&exists)
	return exists, err
}

func (s *Store) Insert(ctx context.Context, r Receipt) (Receipt, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO recibos_nomina (empleado_id, periodo, mes, anio, archivo_nombre, archivo_key, archivo_url, subido_por, notas)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''))
    RETURNING id, fecha_subida
  `, r.EmployeeID, r.Period, r.Month, r.Year, r.FileName, r.FileKey, r.FileURL, r.UploadedBy, r.Notes)
	if err := row.Scan(&r.ID, &r.UploadedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Receipt{}, ErrDuplicate
		}
		return Receipt{}, err
	}
	return r, nil
}

func (s *Store) Get(ctx context.Context, id string) (Receipt, error) {
	row := s.DB.QueryRow(ctx, "SELECT "+receiptColumns+" FROM recibos_nomina r WHERE r.id = $1", id)
	return scanReceipt(row)
}

func (s *Store) ListByEmployee(ctx context.Context, employeeID string, year int) ([]Receipt, error) {
	query := "SELECT " + receiptColumns + " FROM recibos_nomina r WHERE r.empleado_id = $1"
	args := []any{employeeID}
	if year > 0 {
		query += " AND r.anio = $2"
		args = append(args, year)
	}
	query += " ORDER BY r.anio DESC, r.mes DESC, r.periodo"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Receipt
	for rows.Next() {
		r, err := scanReceipt(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) ListAll(ctx context.Context, employeeID string, month, year int) ([]Detail, error) {
	query := `
    SELECT ` + receiptColumns + `, TRIM(e.nombre || ' ' || e.apellidos), COALESCE(e.numero_empleado, '')
    FROM recibos_nomina r
    JOIN empleados e ON e.id = r.empleado_id
    WHERE 1=1`
	args := []any{}
	if employeeID != "" {
		args = append(args, employeeID)
		query += " AND r.empleado_id = $" + strconv.Itoa(len(args))
	}
	if month > 0 {
		args = append(args, month)
		query += " AND r.mes = $" + strconv.Itoa(len(args))
	}
	if year > 0 {
		args = append(args, year)
		query += " AND r.anio = $" + strconv.Itoa(len(args))
	}
	query += " ORDER BY r.anio DESC, r.mes DESC, e.apellidos"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Detail
	for rows.Next() {
		var d Detail
		if err := rows.Scan(&d.ID, &d.EmployeeID, &d.Period, &d.Month, &d.Year, &d.FileName,
			&d.FileKey, &d.FileURL, &d.UploadedBy, &d.UploadedAt, &d.EmployeeName, &d.EmployeeCode); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) Delete(ctx context.Context, id string) (Receipt, error) {
	row := s.DB.QueryRow(ctx, `
    DELETE FROM recibos_nomina WHERE id = $1
    RETURNING id, empleado_id, periodo, mes, anio, archivo_nombre, archivo_key, archivo_url, subido_por, fecha_subida
  `, id)
	return scanReceipt(row)
}

func (s *Store) Stats(ctx context.Context) (Stats, error) {
	st := Stats{ByYear: map[int]int{}, ByEmployee: map[string]int{}}

	if err := s.DB.QueryRow(ctx, `SELECT COUNT(*) FROM recibos_nomina`).Scan(&st.Total); err != nil {
		return st, err
	}
	if err := s.DB.QueryRow(ctx, `SELECT COUNT(*) FROM empleados WHERE activo = true`).Scan(&st.ActiveCount); err != nil {
		return st, err
	}
	if err := s.DB.QueryRow(ctx, `SELECT MAX(fecha_subida) FROM recibos_nomina`).Scan(&st.LastUpload); err != nil {
		return st, err
	}

	rows, err := s.DB.Query(ctx, `SELECT anio, COUNT(*) FROM recibos_nomina GROUP BY anio`)
	if err != nil {
		return st, err
	}
	defer rows.Close()
	for rows.Next() {
		var year, n int
		if err := rows.Scan(&year, &n); err != nil {
			return st, err
		}
		st.ByYear[year] = n
	}
	if err := rows.Err(); err != nil {
		return st, err
	}

	empRows, err := s.DB.Query(ctx, `
    SELECT TRIM(e.nombre || ' ' || e.apellidos), COUNT(*)
    FROM recibos_nomina r
    JOIN empleados e ON e.id = r.empleado_id
    GROUP BY e.id, e.nombre, e.apellidos
  `)
	if err != nil {
		return st, err
	}
	defer empRows.Close()
	for empRows.Next() {
		var name string
		var n int
		if err := empRows.Scan(&name, &n); err != nil {
			return st, err
		}
		st.ByEmployee[name] = n
	}
	return st, empRows.Err()
}
