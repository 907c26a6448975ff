package employees

import "context"

type StoreAPI interface {
	List(ctx context.Context, includeInactive bool) ([]Detail, error)
	Get(ctx context.Context, id string) (Employee, error)
	GetDetail(ctx context.Context, id string) (Detail, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)
	Create(ctx context.Context, e Employee, passwordHash string) (string, error)
	Update(ctx context.Context, id string, patch Patch) error
	Deactivate(ctx context.Context, id string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	PasswordHash(ctx context.Context, id string) (string, error)

	ListPositions(ctx context.Context, includeInactive bool) ([]Position, error)
	GetPosition(ctx context.Context, id int) (Position, error)
	CreatePosition(ctx context.Context, name string, annualVacationDays int) (Position, error)
	UpdatePosition(ctx context.Context, id int, name string, annualVacationDays int, active bool) error
	ListSupervisors(ctx context.Context, includeInactive bool) ([]Supervisor, error)
	CreateSupervisor(ctx context.Context, name string) (Supervisor, error)
	ListLocations(ctx context.Context, includeInactive bool) ([]Location, error)
	CreateLocation(ctx context.Context, code, name string) (Location, error)
	ListProjects(ctx context.Context, includeInactive bool) ([]Project, error)
	CreateProject(ctx context.Context, name string) (Project, error)
}
