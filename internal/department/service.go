package department

import (
	"errors"
	"log/slog"
	"time"
)

// Repository interface defines the data access methods for departments
type Repository interface {
	GetAll() ([]*Department, error)
	GetByID(id int64) (*Department, error)
	Create(dept *Department) error
	Update(dept *Department) error
	Delete(id int64) error
	CountEmployees(id int64) (int64, error)
}

// Service handles department business logic
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new department service
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListDepartments returns the selectable list for employee forms.
func (s *Service) ListDepartments() ([]DepartmentOption, error) {
	departments, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list departments", "error", err)
		return nil, err
	}

	options := make([]DepartmentOption, len(departments))
	for i, dept := range departments {
		options[i] = ToOption(dept)
	}
	return options, nil
}

func (s *Service) GetDepartment(id int64) (*Department, error) {
	dept, err := s.repo.GetByID(id)
	if err != nil {
		if !errors.Is(err, ErrDepartmentNotFound) {
			s.logger.Error("failed to get department", "error", err, "department_id", id)
		}
		return nil, err
	}
	return dept, nil
}

func (s *Service) CreateDepartment(dto DepartmentFormDTO) (*Department, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	dept := &Department{
		DepartmentName: dto.DepartmentName,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(dept); err != nil {
		s.logger.Error("failed to create department", "error", err)
		return nil, err
	}

	s.logger.Info("department created", "department_id", dept.ID)
	return dept, nil
}

func (s *Service) UpdateDepartment(id int64, dto DepartmentFormDTO) (*Department, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	dept, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	dept.DepartmentName = dto.DepartmentName
	dept.UpdatedAt = time.Now()

	if err := s.repo.Update(dept); err != nil {
		s.logger.Error("failed to update department", "error", err, "department_id", id)
		return nil, err
	}

	return dept, nil
}

// DeleteDepartment refuses to remove a department that still has
// employees; the employee's department reference is required, so
// orphaning rows is not an option. Deleting a missing id is a no-op.
func (s *Service) DeleteDepartment(id int64) error {
	count, err := s.repo.CountEmployees(id)
	if err != nil {
		s.logger.Error("failed to count employees", "error", err, "department_id", id)
		return err
	}
	if count > 0 {
		s.logger.Warn("department delete blocked", "department_id", id, "employee_count", count)
		return ErrDepartmentHasEmployees
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete department", "error", err, "department_id", id)
		return err
	}

	s.logger.Info("department deleted", "department_id", id)
	return nil
}
