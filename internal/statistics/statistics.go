package statistics

import "log/slog"

// DepartmentStatistics is one aggregate row per department. Departments
// without employees report zeros rather than being omitted.
type DepartmentStatistics struct {
	DepartmentID   int64   `json:"department_id"`
	DepartmentName string  `json:"department_name"`
	EmployeeCount  int64   `json:"employee_count"`
	TotalSalary    float64 `json:"total_salary"`
	FemaleCount    int64   `json:"female_count"`
}

// Repository interface defines the aggregate query
type Repository interface {
	DepartmentStatistics() ([]DepartmentStatistics, error)
}

// Service handles the statistics report
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// DepartmentStatistics runs the single read-only aggregation pass over
// the department/employee relationship.
func (s *Service) DepartmentStatistics() ([]DepartmentStatistics, error) {
	rows, err := s.repo.DepartmentStatistics()
	if err != nil {
		s.logger.Error("failed to compute department statistics", "error", err)
		return nil, err
	}
	return rows, nil
}
