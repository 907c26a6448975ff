package notifications

import "context"

type StoreAPI interface {
	CreateNotification(ctx context.Context, employeeID, ntype, message string, sent bool) error
	ListByEmployee(ctx context.Context, employeeID string, limit int) ([]Notification, error)
	ListTemplates(ctx context.Context) ([]Template, error)
	GetTemplate(ctx context.Context, code string) (Template, error)
	UpdateTemplate(ctx context.Context, code, subject, body string) error
}
