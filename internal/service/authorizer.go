package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/facegate/facegate/internal/entity"
)

// AreaPolicy decides whether an employee may enter an area, given that
// both exist and are active. The deployer selects one policy for the
// whole installation via AUTH_POLICY; it is applied uniformly.
type AreaPolicy func(e entity.Employee, a entity.Area) bool

// SameAreaPolicy permits only an employee's own assigned area.
func SameAreaPolicy(e entity.Employee, a entity.Area) bool {
	return e.AreaID == a.ID
}

// LevelPolicy permits any area whose access level the employee's
// clearance covers.
func LevelPolicy(e entity.Employee, a entity.Area) bool {
	return e.AccessLevel >= a.AccessLevel
}

func PolicyFromName(name string) AreaPolicy {
	if name == "level" {
		return LevelPolicy
	}

	return SameAreaPolicy
}

// Authorize evaluates the access rules for a resolved identity, in
// order; the first failing rule fixes the denial reason. It is a pure
// function of its inputs and the registry state, with no side effects:
// recording and actuation are the pipeline's job.
func (s *Service) Authorize(ctx context.Context, employeeID int64, areaID string, _ entity.AccessMethod) (entity.Verdict, error) {
	employee, err := s.employeeRepo.GetEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return entity.Deny(entity.DenialEmployeeNotFound), nil
		}

		return entity.Verdict{}, fmt.Errorf("get employee: %w", err)
	}

	if employee.Status != entity.EmployeeActive {
		return entity.Deny(entity.DenialEmployeeInactive), nil
	}

	area, err := s.areaRepo.GetArea(ctx, areaID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return entity.Deny(entity.DenialAreaNotFound), nil
		}

		return entity.Verdict{}, fmt.Errorf("get area: %w", err)
	}

	if !area.Active {
		return entity.Deny(entity.DenialAreaInactive), nil
	}

	if !s.authorize(employee, area) {
		return entity.Deny(entity.DenialNotAuthorizedForArea), nil
	}

	return entity.Permit(), nil
}
