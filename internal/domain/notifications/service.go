package notifications

import (
	"context"
	"fmt"
	"log/slog"
)

type Service struct {
	store      StoreAPI
	Dispatcher Dispatcher
}

func New(store StoreAPI, dispatcher Dispatcher) *Service {
	return &Service{store: store, Dispatcher: dispatcher}
}

// Notify records an audit row and attempts delivery when the employee has an
// email. Delivery failures are logged, never returned.
func (s *Service) Notify(ctx context.Context, employeeID, email, ntype, subject, body string) {
	sent := false
	if email != "" && s.Dispatcher != nil {
		result := s.Dispatcher.Send(ctx, email, subject, body)
		sent = result.Delivered
		if !result.Delivered {
			slog.Warn("notification delivery failed", "empleadoId", employeeID, "tipo", ntype, "detail", result.Detail)
		}
	}
	if err := s.store.CreateNotification(ctx, employeeID, ntype, subject, sent); err != nil {
		slog.Warn("notification record failed", "empleadoId", employeeID, "tipo", ntype, "err", err)
	}
}

// NotifyTemplate renders the stored template for code and delivers it.
// A missing template falls back to the compiled-in default.
func (s *Service) NotifyTemplate(ctx context.Context, employeeID, email, code string, values map[string]string) {
	tpl, err := s.store.GetTemplate(ctx, code)
	if err != nil {
		fallback, ok := DefaultTemplates[code]
		if !ok {
			slog.Warn("notification template missing", "codigo", code, "err", err)
			return
		}
		tpl = fallback
	}
	subject, body := Render(tpl, values)
	s.Notify(ctx, employeeID, email, code, subject, body)
}

func (s *Service) List(ctx context.Context, employeeID string, limit int) ([]Notification, error) {
	return s.store.ListByEmployee(ctx, employeeID, limit)
}

func (s *Service) Templates(ctx context.Context) ([]Template, error) {
	return s.store.ListTemplates(ctx)
}

func (s *Service) Template(ctx context.Context, code string) (Template, error) {
	return s.store.GetTemplate(ctx, code)
}

func (s *Service) UpdateTemplate(ctx context.Context, code, subject, body string) error {
	if subject == "" || body == "" {
		return fmt.Errorf("notifications: subject and body are required")
	}
	return s.store.UpdateTemplate(ctx, code, subject, body)
}

// RestoreTemplate puts the compiled-in default back.
func (s *Service) RestoreTemplate(ctx context.Context, code string) (Template, error) {
	tpl, ok := DefaultTemplates[code]
	if !ok {
		return Template{}, ErrTemplateNotFound
	}
	if err := s.store.UpdateTemplate(ctx, code, tpl.Subject, tpl.Body); err != nil {
		return Template{}, err
	}
	return s.store.GetTemplate(ctx, code)
}

// Preview renders a stored template against sample values without sending.
func (s *Service) Preview(ctx context.Context, code string, values map[string]string) (subject, body string, err error) {
	tpl, err := s.store.GetTemplate(ctx, code)
	if err != nil {
		return "", "", err
	}
	subject, body = Render(tpl, values)
	return subject, body, nil
}

// TestSend delivers a rendered template to an arbitrary address and reports
// the dispatcher result without recording an audit row.
func (s *Service) TestSend(ctx context.Context, code, to string, values map[string]string) (Result, error) {
	subject, body, err := s.Preview(ctx, code, values)
	if err != nil {
		return Result{}, err
	}
	if s.Dispatcher == nil {
		return Result{Delivered: false, Detail: "dispatcher not configured"}, nil
	}
	return s.Dispatcher.Send(ctx, to, subject, body), nil
}
