package inventory

import "context"

type StoreAPI interface {
	List(ctx context.Context, state, kind string) ([]Detail, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Equipment, error)
	Get(ctx context.Context, id string) (Equipment, error)
	Create(ctx context.Context, e Equipment) (Equipment, error)
	Update(ctx context.Context, e Equipment) (Equipment, error)
	Delete(ctx context.Context, id string) error
	// Assign marks the equipment assigned and opens a history row in one
	// transaction. Unassign closes the open history row.
	Assign(ctx context.Context, equipmentID, employeeID, notes string) (Equipment, error)
	Unassign(ctx context.Context, equipmentID, notes string) (Equipment, error)
	History(ctx context.Context, equipmentID string) ([]Assignment, error)
	Stats(ctx context.Context) (Stats, error)
}
