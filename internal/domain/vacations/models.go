package vacations

import "time"

const (
	StatusPending  = "pendiente"
	StatusApproved = "aprobada"
	StatusRejected = "rechazada"
)

const (
	KindUseDays       = "usar_dias"
	KindVacationBonus = "prima_vacacional"
	KindPaternity     = "paternidad"
)

type Request struct {
	ID            string    `json:"id"`
	EmployeeID    string    `json:"empleadoId"`
	StartDate     time.Time `json:"fechaInicio"`
	EndDate       time.Time `json:"fechaFin"`
	RequestedDays float64   `json:"diasSolicitados"`
	SpecificDays  []string  `json:"diasEspecificos,omitempty"`
	Kind          string    `json:"tipoSolicitud"`
	Reason        string    `json:"motivo,omitempty"`
	Status        string    `json:"estatus"`
	ApprovedBy    *string   `json:"aprobadoPor,omitempty"`
	AdminComment  string    `json:"comentarioAdmin,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Detail adds employee display fields for admin listings and the PDF form.
type Detail struct {
	Request
	EmployeeName string `json:"empleadoNombre"`
	EmployeeCode string `json:"numeroEmpleado,omitempty"`
}
