package employees

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"intranet/internal/domain/notifications"
)

type Service struct {
	store       StoreAPI
	notify      *notifications.Service
	companyName string
}

var ErrWrongPassword = errors.New("employees: current password does not match")

func NewService(store StoreAPI, notify *notifications.Service, companyName string) *Service {
	return &Service{store: store, notify: notify, companyName: companyName}
}

func (s *Service) List(ctx context.Context, includeInactive bool) ([]Detail, error) {
	return s.store.List(ctx, includeInactive)
}

func (s *Service) Get(ctx context.Context, id string) (Detail, error) {
	return s.store.GetDetail(ctx, id)
}

type CreateInput struct {
	Employee
	Password string
}

func (s *Service) Create(ctx context.Context, input CreateInput) (Detail, error) {
	if strings.TrimSpace(input.Email) == "" || strings.TrimSpace(input.FirstName) == "" {
		return Detail{}, fmt.Errorf("employees: email and nombre are required")
	}
	if len(input.Password) < 8 {
		return Detail{}, fmt.Errorf("employees: password must be at least 8 characters")
	}
	if input.Role == "" {
		input.Role = RoleUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return Detail{}, err
	}

	id, err := s.store.Create(ctx, input.Employee, string(hash))
	if err != nil {
		return Detail{}, err
	}

	created, err := s.store.GetDetail(ctx, id)
	if err != nil {
		return Detail{}, err
	}

	if s.notify != nil {
		s.notify.NotifyTemplate(ctx, created.ID, created.Email, notifications.TypeWelcome, map[string]string{
			"nombre":  created.FullName(),
			"email":   created.Email,
			"empresa": s.companyName,
		})
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, patch Patch) (Detail, error) {
	if err := s.store.Update(ctx, id, patch); err != nil {
		return Detail{}, err
	}
	return s.store.GetDetail(ctx, id)
}

func (s *Service) Deactivate(ctx context.Context, id string) error {
	return s.store.Deactivate(ctx, id)
}

// ChangePassword sets a new password. When requireCurrent is true the caller
// must prove knowledge of the existing one (self-service flow); admins reset
// without it.
func (s *Service) ChangePassword(ctx context.Context, id, current, next string, requireCurrent bool) error {
	if len(next) < 8 {
		return fmt.Errorf("employees: password must be at least 8 characters")
	}
	if requireCurrent {
		hash, err := s.store.PasswordHash(ctx, id)
		if err != nil {
			return err
		}
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(current)) != nil {
			return ErrWrongPassword
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.store.UpdatePassword(ctx, id, string(hash)); err != nil {
		return err
	}

	if s.notify != nil {
		if emp, err := s.store.Get(ctx, id); err == nil {
			s.notify.NotifyTemplate(ctx, emp.ID, emp.Email, notifications.TypePasswordChanged, map[string]string{
				"nombre": emp.FullName(),
			})
		}
	}
	return nil
}

func (s *Service) Positions(ctx context.Context, includeInactive bool) ([]Position, error) {
	return s.store.ListPositions(ctx, includeInactive)
}

func (s *Service) CreatePosition(ctx context.Context, name string, annualVacationDays int) (Position, error) {
	if strings.TrimSpace(name) == "" {
		return Position{}, fmt.Errorf("employees: position name is required")
	}
	if annualVacationDays <= 0 {
		annualVacationDays = 12
	}
	return s.store.CreatePosition(ctx, name, annualVacationDays)
}

func (s *Service) UpdatePosition(ctx context.Context, id int, name string, annualVacationDays int, active bool) error {
	return s.store.UpdatePosition(ctx, id, name, annualVacationDays, active)
}

func (s *Service) Supervisors(ctx context.Context, includeInactive bool) ([]Supervisor, error) {
	return s.store.ListSupervisors(ctx, includeInactive)
}

func (s *Service) CreateSupervisor(ctx context.Context, name string) (Supervisor, error) {
	if strings.TrimSpace(name) == "" {
		return Supervisor{}, fmt.Errorf("employees: supervisor name is required")
	}
	return s.store.CreateSupervisor(ctx, name)
}

func (s *Service) Locations(ctx context.Context, includeInactive bool) ([]Location, error) {
	return s.store.ListLocations(ctx, includeInactive)
}

func (s *Service) CreateLocation(ctx context.Context, code, name string) (Location, error) {
	if strings.TrimSpace(code) == "" || strings.TrimSpace(name) == "" {
		return Location{}, fmt.Errorf("employees: location code and name are required")
	}
	return s.store.CreateLocation(ctx, code, name)
}

func (s *Service) Projects(ctx context.Context, includeInactive bool) ([]Project, error) {
	return s.store.ListProjects(ctx, includeInactive)
}

func (s *Service) CreateProject(ctx context.Context, name string) (Project, error) {
	if strings.TrimSpace(name) == "" {
		return Project{}, fmt.Errorf("employees: project name is required")
	}
	return s.store.CreateProject(ctx, name)
}
