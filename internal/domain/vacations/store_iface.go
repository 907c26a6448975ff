package vacations

import (
	"context"
	"time"
)

type StoreAPI interface {
	ListByEmployee(ctx context.Context, employeeID, status string) ([]Request, error)
	ListAll(ctx context.Context, status string) ([]Detail, error)
	Get(ctx context.Context, id string) (Request, error)
	GetDetail(ctx context.Context, id string) (Detail, error)
	Create(ctx context.Context, r Request) (Request, error)
	VacationBalance(ctx context.Context, employeeID string) (float64, error)
	HasApprovedOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error)
	// Approve flips a pending request and, for day-consuming kinds,
	// decrements the employee balance in the same transaction.
	Approve(ctx context.Context, id, approverID, comment string, decrementDays float64) (Request, error)
	Reject(ctx context.Context, id, approverID, comment string) (Request, error)
	DeleteOwnPending(ctx context.Context, id, employeeID string) error
}
