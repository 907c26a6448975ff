package announcements

import "time"

type Announcement struct {
	ID        string     `json:"id"`
	Title     string     `json:"titulo"`
	Content   string     `json:"contenido"`
	ImageKey  string     `json:"-"`
	ImageURL  string     `json:"imagenUrl,omitempty"`
	Active    bool       `json:"activo"`
	Order     int        `json:"orden"`
	StartDate *time.Time `json:"fechaInicio,omitempty"`
	EndDate   *time.Time `json:"fechaFin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
