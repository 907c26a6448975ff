// Package reports aggregates captured activity hours into weekly and
// monthly summaries for the admin dashboard and the employee's own view.
package reports

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"intranet/internal/domain/activities"
)

type EmployeeSummary struct {
	EmployeeID   string  `json:"empleadoId"`
	EmployeeName string  `json:"empleadoNombre"`
	Position     string  `json:"puesto,omitempty"`
	Supervisor   string  `json:"supervisor,omitempty"`
	Project      string  `json:"proyecto,omitempty"`
	TotalHours   float64 `json:"horasTotales"`
	DaysWorked   int     `json:"diasTrabajados"`
}

type Summary struct {
	From      time.Time         `json:"desde"`
	To        time.Time         `json:"hasta"`
	Employees []EmployeeSummary `json:"empleados"`
}

type Service struct {
	db *pgxpool.Pool
}

func NewService(db *pgxpool.Pool) *Service {
	return &Service{db: db}
}

// Weekly summarizes the Monday..Friday window containing ref, for every
// active employee expected to capture activity. employeeID narrows the
// report to one employee when non-empty.
func (s *Service) Weekly(ctx context.Context, ref time.Time, employeeID string) (Summary, error) {
	from, to := activities.WeekWindow(ref)
	return s.rangeSummary(ctx, from, to, employeeID)
}

func (s *Service) Monthly(ctx context.Context, year int, month time.Month, employeeID string) (Summary, error) {
	from, to := activities.MonthWindow(year, month)
	return s.rangeSummary(ctx, from, to, employeeID)
}

func (s *Service) rangeSummary(ctx context.Context, from, to time.Time, employeeID string) (Summary, error) {
	sum := Summary{From: from, To: to}

	query := `
    SELECT e.id, TRIM(e.nombre || ' ' || e.apellidos),
           COALESCE(p.nombre, ''), COALESCE(s.nombre, ''), COALESCE(pr.nombre, ''),
           COALESCE(SUM(a.horas_trabajadas), 0),
           COUNT(a.id) FILTER (WHERE a.horas_trabajadas > 0)
    FROM empleados e
    LEFT JOIN puestos p ON p.id = e.puesto_id
    LEFT JOIN supervisores s ON s.id = e.supervisor_id
    LEFT JOIN proyectos pr ON pr.id = e.proyecto_id
    LEFT JOIN actividades a ON a.empleado_id = e.id AND a.fecha BETWEEN $1 AND $2
    WHERE e.activo = true AND e.puesto_id IS NOT NULL`
	args := []any{from, to}
	if employeeID != "" {
		query += " AND e.id = $3"
		args = append(args, employeeID)
	}
	query += `
    GROUP BY e.id, e.nombre, e.apellidos, p.nombre, s.nombre, pr.nombre
    ORDER BY e.apellidos, e.nombre`

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return sum, err
	}
	defer rows.Close()

	for rows.Next() {
		var e EmployeeSummary
		if err := rows.Scan(&e.EmployeeID, &e.EmployeeName, &e.Position, &e.Supervisor,
			&e.Project, &e.TotalHours, &e.DaysWorked); err != nil {
			return sum, err
		}
		sum.Employees = append(sum.Employees, e)
	}
	return sum, rows.Err()
}
