package receipts

import "context"

// RosterEntry is the slice of an employee record the importer needs to
// resolve filename codes and send notifications.
type RosterEntry struct {
	ID       string
	FullName string
	Email    string
	Code     string
}

type StoreAPI interface {
	ListActiveEmployees(ctx context.Context) ([]RosterEntry, error)
	Exists(ctx context.Context, employeeID, period string, month, year int) (bool, error)
	Insert(ctx context.Context, r Receipt) (Receipt, error)
	Get(ctx context.Context, id string) (Receipt, error)
	ListByEmployee(ctx context.Context, employeeID string, year int) ([]Receipt, error)
	ListAll(ctx context.Context, employeeID string, month, year int) ([]Detail, error)
	Delete(ctx context.Context, id string) (Receipt, error)
	Stats(ctx context.Context) (Stats, error)
}
