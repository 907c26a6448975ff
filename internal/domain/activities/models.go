package activities

import "time"

type Activity struct {
	ID          string    `json:"id"`
	EmployeeID  string    `json:"empleadoId"`
	Date        time.Time `json:"fecha"`
	DayLetter   string    `json:"diaSemana"`
	EntryTime   *string   `json:"horaEntrada,omitempty"`
	ExitTime    *string   `json:"horaSalida,omitempty"`
	WorkedHours float64   `json:"horasTrabajadas"`
	Description string    `json:"descripcion"`
	LocationID  *int      `json:"ubicacionId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DayEntry is one day of the weekly capture form.
type DayEntry struct {
	Date        time.Time `json:"fecha"`
	EntryTime   *string   `json:"horaEntrada,omitempty"`
	ExitTime    *string   `json:"horaSalida,omitempty"`
	Description string    `json:"descripcion"`
	LocationID  *int      `json:"ubicacionId,omitempty"`
}
