package employees

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound       = errors.New("employees: not found")
	ErrDuplicateEmail = errors.New("employees: email already registered")
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const employeeColumns = `
  e.id, e.email, e.nombre, e.apellidos, COALESCE(e.numero_empleado, ''),
  e.puesto_id, e.supervisor_id, e.proyecto_id, e.fecha_ingreso,
  e.dias_vacaciones, e.anio_reset_vacaciones, e.rol, e.es_admin, e.activo,
  COALESCE(e.correo_personal, ''), COALESCE(e.telefono_personal, ''),
  COALESCE(e.rfc, ''), COALESCE(e.nss, ''), COALESCE(e.curp, ''),
  e.fecha_baja, e.created_at`

func scanEmployee(row pgx.Row) (Employee, error) {
	var e Employee
	err := row.Scan(&e.ID, &e.Email, &e.FirstName, &e.LastName, &e.EmployeeCode,
		&e.PositionID, &e.SupervisorID, &e.ProjectID, &e.HireDate,
		&e.VacationDays, &e.VacationResetYear, &e.Role, &e.IsAdmin, &e.Active,
		&e.PersonalEmail, &e.PersonalPhone,
		&e.RFC, &e.NSS, &e.CURP,
		&e.TerminationDate, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	return e, err
}

func (s *Store) List(ctx context.Context, includeInactive bool) ([]Detail, error) {
	query := `
    SELECT ` + employeeColumns + `,
      COALESCE(p.nombre, ''), COALESCE(sv.nombre, ''), COALESCE(pr.nombre, '')
    FROM empleados e
    LEFT JOIN puestos p ON p.id = e.puesto_id
    LEFT JOIN supervisores sv ON sv.id = e.supervisor_id
    LEFT JOIN proyectos pr ON pr.id = e.proyecto_id`
	if !includeInactive {
		query += " WHERE e.activo = TRUE"
	}
	query += " ORDER BY e.apellidos, e.nombre"

	rows, err := s.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Detail
	for rows.Next() {
		var d Detail
		if err := rows.Scan(&d.ID, &d.Email, &d.FirstName, &d.LastName, &d.EmployeeCode,
			&d.PositionID, &d.SupervisorID, &d.ProjectID, &d.HireDate,
			&d.VacationDays, &d.VacationResetYear, &d.Role, &d.IsAdmin, &d.Active,
			&d.PersonalEmail, &d.PersonalPhone, &d.RFC, &d.NSS, &d.CURP,
			&d.TerminationDate, &d.CreatedAt,
			&d.Position, &d.Supervisor, &d.Project); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (Employee, error) {
	row := s.DB.QueryRow(ctx, "SELECT "+employeeColumns+" FROM empleados e WHERE e.id = $1", id)
	return scanEmployee(row)
}

func (s *Store) GetDetail(ctx context.Context, id string) (Detail, error) {
	var d Detail
	err := s.DB.QueryRow(ctx, `
    SELECT `+employeeColumns+`,
      COALESCE(p.nombre, ''), COALESCE(sv.nombre, ''), COALESCE(pr.nombre, '')
    FROM empleados e
    LEFT JOIN puestos p ON p.id = e.puesto_id
    LEFT JOIN supervisores sv ON sv.id = e.supervisor_id
    LEFT JOIN proyectos pr ON pr.id = e.proyecto_id
    WHERE e.id = $1
  `, id).Scan(&d.ID, &d.Email, &d.FirstName, &d.LastName, &d.EmployeeCode,
		&d.PositionID, &d.SupervisorID, &d.ProjectID, &d.HireDate,
		&d.VacationDays, &d.VacationResetYear, &d.Role, &d.IsAdmin, &d.Active,
		&d.PersonalEmail, &d.PersonalPhone, &d.RFC, &d.NSS, &d.CURP,
		&d.TerminationDate, &d.CreatedAt,
		&d.Position, &d.Supervisor, &d.Project)
	if errors.Is(err, pgx.ErrNoRows) {
		return Detail{}, ErrNotFound
	}
	return d, err
}

func (s *Store) GetByEmail(ctx context.Context, email string) (Employee, error) {
	row := s.DB.QueryRow(ctx, "SELECT "+employeeColumns+" FROM empleados e WHERE lower(e.email) = lower($1)", email)
	return scanEmployee(row)
}

func (s *Store) Create(ctx context.Context, e Employee, passwordHash string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO empleados (email, password_hash, nombre, apellidos, numero_empleado,
      puesto_id, supervisor_id, proyecto_id, fecha_ingreso, dias_vacaciones,
      rol, es_admin, correo_personal, telefono_personal, rfc, nss, curp)
    VALUES ($1,$2,$3,$4,NULLIF($5,''),$6,$7,$8,$9,$10,$11,$12,
      NULLIF($13,''),NULLIF($14,''),NULLIF($15,''),NULLIF($16,''),NULLIF($17,''))
    RETURNING id
  `, e.Email, passwordHash, e.FirstName, e.LastName, strings.TrimSpace(e.EmployeeCode),
		e.PositionID, e.SupervisorID, e.ProjectID, e.HireDate, e.VacationDays,
		e.Role, e.IsAdmin, e.PersonalEmail, e.PersonalPhone, e.RFC, e.NSS, e.CURP).Scan(&id)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return "", ErrDuplicateEmail
	}
	return id, err
}

func (s *Store) Update(ctx context.Context, id string, patch Patch) error {
	sets := []string{"updated_at = now()"}
	args := []any{}
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.FirstName != nil {
		add("nombre", *patch.FirstName)
	}
	if patch.LastName != nil {
		add("apellidos", *patch.LastName)
	}
	if patch.EmployeeCode != nil {
		add("numero_empleado", nullIfEmpty(strings.TrimSpace(*patch.EmployeeCode)))
	}
	if patch.PositionID != nil {
		add("puesto_id", zeroToNull(*patch.PositionID))
	}
	if patch.SupervisorID != nil {
		add("supervisor_id", zeroToNull(*patch.SupervisorID))
	}
	if patch.ProjectID != nil {
		add("proyecto_id", zeroToNull(*patch.ProjectID))
	}
	if patch.VacationDays != nil {
		add("dias_vacaciones", *patch.VacationDays)
	}
	if patch.Role != nil {
		add("rol", *patch.Role)
	}
	if patch.IsAdmin != nil {
		add("es_admin", *patch.IsAdmin)
	}
	if patch.Active != nil {
		add("activo", *patch.Active)
	}
	if patch.PersonalEmail != nil {
		add("correo_personal", nullIfEmpty(*patch.PersonalEmail))
	}
	if patch.PersonalPhone != nil {
		add("telefono_personal", nullIfEmpty(*patch.PersonalPhone))
	}
	if patch.RFC != nil {
		add("rfc", nullIfEmpty(*patch.RFC))
	}
	if patch.NSS != nil {
		add("nss", nullIfEmpty(*patch.NSS))
	}
	if patch.CURP != nil {
		add("curp", nullIfEmpty(*patch.CURP))
	}
	if patch.TerminationDate != nil {
		add("fecha_baja", nullIfEmpty(*patch.TerminationDate))
	}
	if len(sets) == 1 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE empleados SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))
	tag, err := s.DB.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Deactivate is a soft delete: employees are never removed.
func (s *Store) Deactivate(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE empleados SET activo = FALSE, fecha_baja = COALESCE(fecha_baja, CURRENT_DATE), updated_at = now()
    WHERE id = $1
  `, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	tag, err := s.DB.Exec(ctx, "UPDATE empleados SET password_hash = $1, updated_at = now() WHERE id = $2", passwordHash, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) PasswordHash(ctx context.Context, id string) (string, error) {
	var hash string
	err := s.DB.QueryRow(ctx, "SELECT password_hash FROM empleados WHERE id = $1", id).Scan(&hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	return hash, err
}

func nullIfEmpty(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}

func zeroToNull(value int) any {
	if value == 0 {
		return nil
	}
	return value
}
