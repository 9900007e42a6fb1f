package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/facegate/facegate/internal/entity"
)

// EnrollFace extracts, encrypts, and stores an employee's face template.
// Re-enrollment replaces the old template atomically; any failure before
// the store leaves the prior template untouched.
func (s *Service) EnrollFace(ctx context.Context, employeeID int64, image []byte) error {
	if _, err := s.employeeRepo.GetEmployee(ctx, employeeID); err != nil {
		return fmt.Errorf("get employee: %w", err)
	}

	extractCtx, cancel := context.WithTimeout(ctx, s.cfg.Matcher.ExtractTimeout)
	defer cancel()

	vec, err := s.extractor.Extract(extractCtx, image)
	if err != nil {
		return fmt.Errorf("extract embedding: %w", err)
	}

	cipherText, nonce, err := s.cipher.Encrypt(vec)
	if err != nil {
		return fmt.Errorf("encrypt template: %w", err)
	}

	tpl := entity.BiometricTemplate{
		EmployeeID: employeeID,
		CipherText: cipherText,
		Nonce:      nonce,
		EnrolledAt: time.Now().UTC(),
	}

	if err := s.templateRepo.StoreTemplate(ctx, tpl); err != nil {
		return fmt.Errorf("store template: %w", err)
	}

	slog.InfoContext(ctx, "face template enrolled", "enrolled_employee_id", employeeID)

	return nil
}

// UnenrollFace deletes an employee's stored template.
func (s *Service) UnenrollFace(ctx context.Context, employeeID int64) error {
	err := s.templateRepo.DeleteTemplate(ctx, employeeID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return entity.ErrNoTemplate
		}

		return fmt.Errorf("delete template: %w", err)
	}

	slog.InfoContext(ctx, "face template removed", "enrolled_employee_id", employeeID)

	return nil
}

type CreateEmployeeInput struct {
	FirstName   string
	LastName    string
	NationalID  string
	BirthDate   string
	Email       string
	Role        entity.EmployeeRole
	Status      entity.EmployeeStatus
	AreaID      string
	AccessLevel int
	PIN         string
}

func (s *Service) CreateEmployee(ctx context.Context, input CreateEmployeeInput) (entity.Employee, error) {
	if !input.Role.Valid() {
		return entity.Employee{}, entity.ErrInvalidRole
	}

	if !input.Status.Valid() {
		return entity.Employee{}, entity.ErrInvalidStatus
	}

	if input.AccessLevel < entity.AreaMinAccessLevel || input.AccessLevel > entity.AreaMaxAccessLevel {
		return entity.Employee{}, entity.ErrInvalidLevel
	}

	if _, err := s.areaRepo.GetArea(ctx, input.AreaID); err != nil {
		return entity.Employee{}, fmt.Errorf("get area: %w", err)
	}

	var pinHash []byte

	if input.PIN != "" {
		hash, err := HashPIN(input.PIN)
		if err != nil {
			return entity.Employee{}, err
		}

		pinHash = hash
	}

	employee := entity.Employee{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		NationalID:  input.NationalID,
		BirthDate:   input.BirthDate,
		Email:       input.Email,
		Role:        input.Role,
		Status:      input.Status,
		AreaID:      input.AreaID,
		AccessLevel: input.AccessLevel,
		PINHash:     pinHash,
		CreatedAt:   time.Now().UTC(),
	}

	id, err := s.employeeRepo.CreateEmployee(ctx, employee)
	if err != nil {
		return entity.Employee{}, fmt.Errorf("create employee: %w", err)
	}

	employee.ID = id

	return employee, nil
}

// DeleteEmployee removes an employee; the enrolled template goes with
// the row via the schema's cascade.
func (s *Service) DeleteEmployee(ctx context.Context, id int64) error {
	return s.employeeRepo.DeleteEmployee(ctx, id)
}
