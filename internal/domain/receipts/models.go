package receipts

import "time"

const (
	PeriodFirstHalf  = "1ra Quincena"
	PeriodSecondHalf = "2da Quincena"
)

type Receipt struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"empleadoId"`
	Period     string    `json:"periodo"`
	Month      int       `json:"mes"`
	Year       int       `json:"anio"`
	FileName   string    `json:"nombreArchivo"`
	FileKey    string    `json:"-"`
	FileURL    string    `json:"urlArchivo"`
	UploadedBy *string   `json:"subidoPor,omitempty"`
	Notes      string    `json:"notas,omitempty"`
	UploadedAt time.Time `json:"fechaSubida"`
}

// Detail adds employee display fields for admin listings.
type Detail struct {
	Receipt
	EmployeeName string `json:"empleadoNombre"`
	EmployeeCode string `json:"numeroEmpleado,omitempty"`
}

type Stats struct {
	Total       int            `json:"total"`
	ByYear      map[int]int    `json:"porAnio"`
	ByEmployee  map[string]int `json:"porEmpleado"`
	LastUpload  *time.Time     `json:"ultimaSubida,omitempty"`
	ActiveCount int            `json:"empleadosActivos"`
}
