package vacations

import (
	"context"
	"fmt"
	"strings"

	"intranet/internal/domain/employees"
	"intranet/internal/domain/notifications"
)

type Service struct {
	store     StoreAPI
	employees employees.StoreAPI
	notify    *notifications.Service
}

func NewService(store StoreAPI, employeeStore employees.StoreAPI, notify *notifications.Service) *Service {
	return &Service{store: store, employees: employeeStore, notify: notify}
}

func (s *Service) MyRequests(ctx context.Context, employeeID, status string) ([]Request, error) {
	return s.store.ListByEmployee(ctx, employeeID, status)
}

func (s *Service) Pending(ctx context.Context) ([]Detail, error) {
	return s.store.ListAll(ctx, StatusPending)
}

func (s *Service) All(ctx context.Context, status string) ([]Detail, error) {
	return s.store.ListAll(ctx, status)
}

func (s *Service) Get(ctx context.Context, id string) (Request, error) {
	return s.store.Get(ctx, id)
}

// Create validates balance and overlap before inserting a pending request.
// Only day-consuming requests are checked against the balance.
func (s *Service) Create(ctx context.Context, r Request) (Request, error) {
	if r.EndDate.Before(r.StartDate) {
		return Request{}, fmt.Errorf("vacations: fecha_fin precedes fecha_inicio")
	}
	if r.RequestedDays <= 0 {
		return Request{}, fmt.Errorf("vacations: dias_solicitados must be positive")
	}
	if r.Kind == "" {
		r.Kind = KindUseDays
	}

	if r.Kind == KindUseDays {
		balance, err := s.store.VacationBalance(ctx, r.EmployeeID)
		if err != nil {
			return Request{}, err
		}
		if r.RequestedDays > balance {
			return Request{}, fmt.Errorf("vacations: insufficient balance, %.1f day(s) available", balance)
		}
	}

	overlap, err := s.store.HasApprovedOverlap(ctx, r.EmployeeID, r.StartDate, r.EndDate)
	if err != nil {
		return Request{}, err
	}
	if overlap {
		return Request{}, fmt.Errorf("vacations: approved vacation already covers those dates")
	}

	created, err := s.store.Create(ctx, r)
	if err != nil {
		return Request{}, err
	}

	if s.notify != nil {
		if emp, err := s.employees.Get(ctx, created.EmployeeID); err == nil {
			s.notify.NotifyTemplate(ctx, emp.ID, emp.Email, notifications.TypeVacationPending, map[string]string{
				"nombre":       emp.FullName(),
				"dias":         fmt.Sprintf("%.1f", created.RequestedDays),
				"fecha_inicio": created.StartDate.Format("02/01/2006"),
				"fecha_fin":    created.EndDate.Format("02/01/2006"),
			})
		}
	}
	return created, nil
}

func (s *Service) Approve(ctx context.Context, id, approverID, comment string) (Request, error) {
	current, err := s.store.Get(ctx, id)
	if err != nil {
		return Request{}, err
	}
	decrement := 0.0
	if current.Kind == KindUseDays {
		decrement = current.RequestedDays
	}

	approved, err := s.store.Approve(ctx, id, approverID, comment, decrement)
	if err != nil {
		return Request{}, err
	}
	s.notifyDecision(ctx, approved, notifications.TypeVacationApproved, comment)
	return approved, nil
}

func (s *Service) Reject(ctx context.Context, id, approverID, comment string) (Request, error) {
	if strings.TrimSpace(comment) == "" {
		return Request{}, fmt.Errorf("vacations: a comment is required to reject")
	}
	rejected, err := s.store.Reject(ctx, id, approverID, comment)
	if err != nil {
		return Request{}, err
	}
	s.notifyDecision(ctx, rejected, notifications.TypeVacationRejected, comment)
	return rejected, nil
}

func (s *Service) Cancel(ctx context.Context, id, employeeID string) error {
	return s.store.DeleteOwnPending(ctx, id, employeeID)
}

func (s *Service) notifyDecision(ctx context.Context, r Request, ntype, comment string) {
	if s.notify == nil {
		return
	}
	emp, err := s.employees.Get(ctx, r.EmployeeID)
	if err != nil {
		return
	}
	s.notify.NotifyTemplate(ctx, emp.ID, emp.Email, ntype, map[string]string{
		"nombre":       emp.FullName(),
		"fecha_inicio": r.StartDate.Format("02/01/2006"),
		"fecha_fin":    r.EndDate.Format("02/01/2006"),
		"comentario":   comment,
	})
}

// RequestForm renders the printable form for an existing request.
func (s *Service) RequestForm(ctx context.Context, id, companyName string) ([]byte, error) {
	d, err := s.store.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	return RequestPDF(d, companyName)
}
