package inventory

import "time"

const (
	StateAvailable   = "disponible"
	StateAssigned    = "asignado"
	StateMaintenance = "en_reparacion"
	StateRetired     = "baja"
)

type Equipment struct {
	ID           string     `json:"id"`
	Kind         string     `json:"tipo"`
	Brand        string     `json:"marca,omitempty"`
	Model        string     `json:"modelo,omitempty"`
	SerialNumber string     `json:"numeroSerie,omitempty"`
	AssetNumber  string     `json:"numeroActivo,omitempty"`
	Specs        string     `json:"especificaciones,omitempty"`
	State        string     `json:"estado"`
	EmployeeID   *string    `json:"empleadoId,omitempty"`
	AssignedAt   *time.Time `json:"fechaAsignacion,omitempty"`
	PurchasedAt  *time.Time `json:"fechaCompra,omitempty"`
	Vendor       string     `json:"proveedor,omitempty"`
	Cost         *float64   `json:"costo,omitempty"`
	Notes        string     `json:"notas,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Detail adds the holder's display name for listings.
type Detail struct {
	Equipment
	EmployeeName string `json:"empleadoNombre,omitempty"`
}

type Assignment struct {
	ID           string     `json:"id"`
	EquipmentID  string     `json:"equipoId"`
	EmployeeID   string     `json:"empleadoId"`
	EmployeeName string     `json:"empleadoNombre,omitempty"`
	AssignedAt   time.Time  `json:"fechaAsignacion"`
	ReturnedAt   *time.Time `json:"fechaDevolucion,omitempty"`
	Notes        string     `json:"notas,omitempty"`
}

type Stats struct {
	Total   int            `json:"total"`
	ByState map[string]int `json:"porEstado"`
	ByKind  map[string]int `json:"porTipo"`
}

func validState(s string) bool {
	switch s {
	case StateAvailable, StateAssigned, StateMaintenance, StateRetired:
		return true
	}
	return false
}
