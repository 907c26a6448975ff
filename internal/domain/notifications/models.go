package notifications

import "time"

type Notification struct {
	ID         int64     `json:"id"`
	EmployeeID string    `json:"empleadoId"`
	Type       string    `json:"tipo"`
	Message    string    `json:"mensaje"`
	Sent       bool      `json:"enviado"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Template struct {
	Code      string    `json:"codigo"`
	Name      string    `json:"nombre"`
	Subject   string    `json:"asunto"`
	Body      string    `json:"cuerpo"`
	UpdatedAt time.Time `json:"updatedAt"`
}
