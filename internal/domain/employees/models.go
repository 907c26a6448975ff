package employees

import "time"

const (
	RoleAdmin     = "admin"
	RoleInventory = "inventario"
	RoleUser      = "usuario"
)

type Employee struct {
	ID                string     `json:"id"`
	Email             string     `json:"email"`
	FirstName         string     `json:"nombre"`
	LastName          string     `json:"apellidos"`
	EmployeeCode      string     `json:"numeroEmpleado,omitempty"`
	PositionID        *int       `json:"puestoId,omitempty"`
	SupervisorID      *int       `json:"supervisorId,omitempty"`
	ProjectID         *int       `json:"proyectoId,omitempty"`
	HireDate          *time.Time `json:"fechaIngreso,omitempty"`
	VacationDays      float64    `json:"diasVacaciones"`
	VacationResetYear int        `json:"-"`
	Role              string     `json:"rol"`
	IsAdmin           bool       `json:"esAdmin"`
	Active            bool       `json:"activo"`
	PersonalEmail     string     `json:"correoPersonal,omitempty"`
	PersonalPhone     string     `json:"telefonoPersonal,omitempty"`
	RFC               string     `json:"rfc,omitempty"`
	NSS               string     `json:"nss,omitempty"`
	CURP              string     `json:"curp,omitempty"`
	TerminationDate   *time.Time `json:"fechaBaja,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
}

func (e Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// Detail is the employee joined with catalogue display names.
type Detail struct {
	Employee
	Position   string `json:"puesto,omitempty"`
	Supervisor string `json:"supervisor,omitempty"`
	Project    string `json:"proyecto,omitempty"`
}

// Patch carries optional field updates; nil means leave unchanged.
type Patch struct {
	FirstName       *string  `json:"nombre"`
	LastName        *string  `json:"apellidos"`
	EmployeeCode    *string  `json:"numeroEmpleado"`
	PositionID      *int     `json:"puestoId"`
	SupervisorID    *int     `json:"supervisorId"`
	ProjectID       *int     `json:"proyectoId"`
	VacationDays    *float64 `json:"diasVacaciones"`
	Role            *string  `json:"rol"`
	IsAdmin         *bool    `json:"esAdmin"`
	Active          *bool    `json:"activo"`
	PersonalEmail   *string  `json:"correoPersonal"`
	PersonalPhone   *string  `json:"telefonoPersonal"`
	RFC             *string  `json:"rfc"`
	NSS             *string  `json:"nss"`
	CURP            *string  `json:"curp"`
	TerminationDate *string  `json:"fechaBaja"`
}

type Position struct {
	ID                 int    `json:"id"`
	Name               string `json:"nombre"`
	AnnualVacationDays int    `json:"diasVacacionesAnuales"`
	Active             bool   `json:"activo"`
}

type Supervisor struct {
	ID     int    `json:"id"`
	Name   string `json:"nombre"`
	Active bool   `json:"activo"`
}

type Location struct {
	ID     int    `json:"id"`
	Code   string `json:"codigo"`
	Name   string `json:"nombre"`
	Active bool   `json:"activo"`
}

type Project struct {
	ID     int    `json:"id"`
	Name   string `json:"nombre"`
	Active bool   `json:"activo"`
}
