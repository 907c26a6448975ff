package inventory

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound    = errors.New("inventory: equipment not found")
	ErrNotAssigned = errors.New("inventory: equipment is not assigned")
	ErrAssigned    = errors.New("inventory: equipment already assigned")
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const equipmentColumns = `q.id, q.tipo, COALESCE(q.marca, ''), COALESCE(q.modelo, ''),
  COALESCE(q.numero_serie, ''), COALESCE(q.numero_activo, ''), COALESCE(q.especificaciones, ''),
  q.estado, q.empleado_id, q.fecha_asignacion, q.fecha_compra, COALESCE(q.proveedor, ''),
  q.costo, COALESCE(q.notas, ''), q.created_at, q.updated_at`

func scanEquipment(row pgx.Row) (Equipment, error) {
	var e Equipment
	err := row.Scan(&e.ID, &e.Kind, &e.Brand, &e.Model, &e.SerialNumber, &e.AssetNumber,
		&e.Specs, &e.State, &e.EmployeeID, &e.AssignedAt, &e.PurchasedAt, &e.Vendor,
		&e.Cost, &e.Notes, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Equipment{}, ErrNotFound
	}
	return e, err
}

func (s *Store) List(ctx context.Context, state, kind string) ([]Detail, error) {
	query := `
    SELECT ` + equipmentColumns + `, COALESCE(TRIM(e.nombre || ' ' || e.apellidos), '')
    FROM equipos q
    LEFT JOIN empleados e ON e.id = q.empleado_id
    WHERE 1=1`
	args := []any{}
	if state != "" {
		args = append(args, state)
		query += " AND q.estado = $" + strconv.Itoa(len(args))
	}
	if kind != "" {
		args = append(args, kind)
		query += " AND q.tipo = $" + strconv.Itoa(len(args))
	}
	query += " ORDER BY q.tipo, q.created_at DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Detail
	for rows.Next() {
		var d Detail
		if err := rows.Scan(&d.ID, &d.Kind, &d.Brand, &d.Model, &d.SerialNumber, &d.AssetNumber,
			&d.Specs, &d.State, &d.EmployeeID, &d.AssignedAt, &d.PurchasedAt, &d.Vendor,
			&d.Cost, &d.Notes, &d.CreatedAt, &d.UpdatedAt, &d.EmployeeName); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) ListByEmployee(ctx context.Context, employeeID string) ([]Equipment, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+equipmentColumns+` FROM equipos q
    WHERE q.empleado_id = $1
    ORDER BY q.fecha_asignacion DESC
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Equipment
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (Equipment, error) {
	row := s.DB.QueryRow(ctx, "SELECT "+equipmentColumns+" FROM equipos q WHERE q.id = $1", id)
	return scanEquipment(row)
}

func (s *Store) Create(ctx context.Context, e Equipment) (Equipment, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO equipos (tipo, marca, modelo, numero_serie, numero_activo, especificaciones,
      estado, fecha_compra, proveedor, costo, notas)
    VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''),
      $7, $8, NULLIF($9, ''), $10, NULLIF($11, ''))
    RETURNING id, created_at, updated_at
  `, e.Kind, e.Brand, e.Model, e.SerialNumber, e.AssetNumber, e.Specs,
		e.State, e.PurchasedAt, e.Vendor, e.Cost, e.Notes)
	if err := row.Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return Equipment{}, err
	}
	return e, nil
}

func (s *Store) Update(ctx context.Context, e Equipment) (Equipment, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE equipos
    SET tipo = $1, marca = NULLIF($2, ''), modelo = NULLIF($3, ''),
        numero_serie = NULLIF($4, ''), numero_activo = NULLIF($5, ''),
        especificaciones = NULLIF($6, ''), estado = $7, fecha_compra = $8,
        proveedor = NULLIF($9, ''), costo = $10, notas = NULLIF($11, ''),
        updated_at = now()
    WHERE id = $12
  `, e.Kind, e.Brand, e.Model, e.SerialNumber, e.AssetNumber, e.Specs,
		e.State, e.PurchasedAt, e.Vendor, e.Cost, e.Notes, e.ID)
	if err != nil {
		return Equipment{}, err
	}
	if tag.RowsAffected() == 0 {
		return Equipment{}, ErrNotFound
	}
	return s.Get(ctx, e.ID)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, `DELETE FROM equipos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Assign(ctx context.Context, equipmentID, employeeID, notes string) (Equipment, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return Equipment{}, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
    UPDATE equipos
    SET estado = 'asignado', empleado_id = $1, fecha_asignacion = CURRENT_DATE, updated_at = now()
    WHERE id = $2 AND empleado_id IS NULL AND estado = 'disponible'
  `, employeeID, equipmentID)
	if err != nil {
		return Equipment{}, err
	}
	if tag.RowsAffected() == 0 {
		if _, err := s.Get(ctx, equipmentID); errors.Is(err, ErrNotFound) {
			return Equipment{}, ErrNotFound
		}
		return Equipment{}, ErrAssigned
	}

	if _, err := tx.Exec(ctx, `
    INSERT INTO historial_asignaciones (equipo_id, empleado_id, fecha_asignacion, notas)
    VALUES ($1, $2, CURRENT_DATE, NULLIF($3, ''))
  `, equipmentID, employeeID, notes); err != nil {
		return Equipment{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Equipment{}, err
	}
	return s.Get(ctx, equipmentID)
}

func (s *Store) Unassign(ctx context.Context, equipmentID, notes string) (Equipment, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return Equipment{}, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
    UPDATE equipos
    SET estado = 'disponible', empleado_id = NULL, fecha_asignacion = NULL, updated_at = now()
    WHERE id = $1 AND empleado_id IS NOT NULL
  `, equipmentID)
	if err != nil {
		return Equipment{}, err
	}
	if tag.RowsAffected() == 0 {
		if _, gerr := s.Get(ctx, equipmentID); errors.Is(gerr, ErrNotFound) {
			return Equipment{}, ErrNotFound
		}
		return Equipment{}, ErrNotAssigned
	}

	if _, err := tx.Exec(ctx, `
    UPDATE historial_asignaciones
    SET fecha_devolucion = CURRENT_DATE,
        notas = COALESCE(NULLIF($2, ''), notas)
    WHERE equipo_id = $1 AND fecha_devolucion IS NULL
  `, equipmentID, notes); err != nil {
		return Equipment{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Equipment{}, err
	}
	return s.Get(ctx, equipmentID)
}

func (s *Store) History(ctx context.Context, equipmentID string) ([]Assignment, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT h.id, h.equipo_id, h.empleado_id, TRIM(e.nombre || ' ' || e.apellidos),
           h.fecha_asignacion, h.fecha_devolucion, COALESCE(h.notas, '')
    FROM historial_asignaciones h
    JOIN empleados e ON e.id = h.empleado_id
    WHERE h.equipo_id = $1
    ORDER BY h.fecha_asignacion DESC
  `, equipmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Assignment
	for rows.Next() {
		var a Assignment
		if err := rows.Scan(&a.ID, &a.EquipmentID, &a.EmployeeID, &a.EmployeeName,
			&a.AssignedAt, &a.ReturnedAt, &a.Notes); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) Stats(ctx context.Context) (Stats, error) {
	st := Stats{ByState: map[string]int{}, ByKind: map[string]int{}}

	rows, err := s.DB.Query(ctx, `SELECT estado, COUNT(*) FROM equipos GROUP BY estado`)
	if err != nil {
		return st, err
	}
	defer rows.Close()
	for rows.Next() {
		var state string
		var n int
		if err := rows.Scan(&state, &n); err != nil {
			return st, err
		}
		st.ByState[state] = n
		st.Total += n
	}
	if err := rows.Err(); err != nil {
		return st, err
	}

	kindRows, err := s.DB.Query(ctx, `SELECT tipo, COUNT(*) FROM equipos GROUP BY tipo`)
	if err != nil {
		return st, err
	}
	defer kindRows.Close()
	for kindRows.Next() {
		var kind string
		var n int
		if err := kindRows.Scan(&kind, &n); err != nil {
			return st, err
		}
		st.ByKind[kind] = n
	}
	return st, kindRows.Err()
}
