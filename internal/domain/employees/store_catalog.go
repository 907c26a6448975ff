package employees

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

func (s *Store) ListPositions(ctx context.Context, includeInactive bool) ([]Position, error) {
	query := "SELECT id, nombre, dias_vacaciones_anuales, activo FROM puestos"
	if !includeInactive {
		query += " WHERE activo = TRUE"
	}
	query += " ORDER BY nombre"

	rows, err := s.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Position
	for rows.Next() {
		var p Position
		if err := rows.Scan(&p.ID, &p.Name, &p.AnnualVacationDays, &p.Active); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) GetPosition(ctx context.Context, id int) (Position, error) {
	var p Position
	err := s.DB.QueryRow(ctx, "SELECT id, nombre, dias_vacaciones_anuales, activo FROM puestos WHERE id = $1", id).
		Scan(&p.ID, &p.Name, &p.AnnualVacationDays, &p.Active)
	if errors.Is(err, pgx.ErrNoRows) {
		return Position{}, ErrNotFound
	}
	return p, err
}

func (s *Store) CreatePosition(ctx context.Context, name string, annualVacationDays int) (Position, error) {
	var p Position
	err := s.DB.QueryRow(ctx, `
    INSERT INTO puestos (nombre, dias_vacaciones_anuales) VALUES ($1,$2)
    RETURNING id, nombre, dias_vacaciones_anuales, activo
  `, name, annualVacationDays).Scan(&p.ID, &p.Name, &p.AnnualVacationDays, &p.Active)
	return p, err
}

func (s *Store) UpdatePosition(ctx context.Context, id int, name string, annualVacationDays int, active bool) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE puestos SET nombre = $1, dias_vacaciones_anuales = $2, activo = $3 WHERE id = $4
  `, name, annualVacationDays, active, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ListSupervisors(ctx context.Context, includeInactive bool) ([]Supervisor, error) {
	query := "SELECT id, nombre, activo FROM supervisores"
	if !includeInactive {
		query += " WHERE activo = TRUE"
	}
	query += " ORDER BY nombre"

	rows, err := s.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Supervisor
	for rows.Next() {
		var v Supervisor
		if err := rows.Scan(&v.ID, &v.Name, &v.Active); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *Store) CreateSupervisor(ctx context.Context, name string) (Supervisor, error) {
	var v Supervisor
	err := s.DB.QueryRow(ctx, "INSERT INTO supervisores (nombre) VALUES ($1) RETURNING id, nombre, activo", name).
		Scan(&v.ID, &v.Name, &v.Active)
	return v, err
}

func (s *Store) ListLocations(ctx context.Context, includeInactive bool) ([]Location, error) {
	query := "SELECT id, codigo, nombre, activo FROM ubicaciones"
	if !includeInactive {
		query += " WHERE activo = TRUE"
	}
	query += " ORDER BY codigo"

	rows, err := s.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Location
	for rows.Next() {
		var l Location
		if err := rows.Scan(&l.ID, &l.Code, &l.Name, &l.Active); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *Store) CreateLocation(ctx context.Context, code, name string) (Location, error) {
	var l Location
	err := s.DB.QueryRow(ctx, "INSERT INTO ubicaciones (codigo, nombre) VALUES ($1,$2) RETURNING id, codigo, nombre, activo", code, name).
		Scan(&l.ID, &l.Code, &l.Name, &l.Active)
	return l, err
}

func (s *Store) ListProjects(ctx context.Context, includeInactive bool) ([]Project, error) {
	query := "SELECT id, nombre, activo FROM proyectos"
	if !includeInactive {
		query += " WHERE activo = TRUE"
	}
	query += " ORDER BY nombre"

	rows, err := s.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Active); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) CreateProject(ctx context.Context, name string) (Project, error) {
	var p Project
	err := s.DB.QueryRow(ctx, "INSERT INTO proyectos (nombre) VALUES ($1) RETURNING id, nombre, activo", name).
		Scan(&p.ID, &p.Name, &p.Active)
	return p, err
}
