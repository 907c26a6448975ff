package inventory

import (
	"context"
	"fmt"
	"strings"
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context, state, kind string) ([]Detail, error) {
	return s.store.List(ctx, state, kind)
}

func (s *Service) MyEquipment(ctx context.Context, employeeID string) ([]Equipment, error) {
	return s.store.ListByEmployee(ctx, employeeID)
}

func (s *Service) Get(ctx context.Context, id string) (Equipment, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, e Equipment) (Equipment, error) {
	e.Kind = strings.TrimSpace(e.Kind)
	if e.Kind == "" {
		return Equipment{}, fmt.Errorf("inventory: tipo is required")
	}
	if e.State == "" {
		e.State = StateAvailable
	}
	if !validState(e.State) {
		return Equipment{}, fmt.Errorf("inventory: invalid state %q", e.State)
	}
	return s.store.Create(ctx, e)
}

func (s *Service) Update(ctx context.Context, e Equipment) (Equipment, error) {
	if strings.TrimSpace(e.Kind) == "" {
		return Equipment{}, fmt.Errorf("inventory: tipo is required")
	}
	if !validState(e.State) {
		return Equipment{}, fmt.Errorf("inventory: invalid state %q", e.State)
	}
	current, err := s.store.Get(ctx, e.ID)
	if err != nil {
		return Equipment{}, err
	}
	// Assignment changes go through Assign/Unassign so the history stays
	// consistent.
	if current.EmployeeID != nil && e.State != StateAssigned {
		return Equipment{}, fmt.Errorf("inventory: unassign the equipment before changing its state")
	}
	return s.store.Update(ctx, e)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	current, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if current.EmployeeID != nil {
		return fmt.Errorf("inventory: unassign the equipment before deleting it")
	}
	return s.store.Delete(ctx, id)
}

func (s *Service) Assign(ctx context.Context, equipmentID, employeeID, notes string) (Equipment, error) {
	if employeeID == "" {
		return Equipment{}, fmt.Errorf("inventory: empleado_id is required")
	}
	return s.store.Assign(ctx, equipmentID, employeeID, notes)
}

func (s *Service) Unassign(ctx context.Context, equipmentID, notes string) (Equipment, error) {
	return s.store.Unassign(ctx, equipmentID, notes)
}

func (s *Service) History(ctx context.Context, equipmentID string) ([]Assignment, error) {
	return s.store.History(ctx, equipmentID)
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	return s.store.Stats(ctx)
}
