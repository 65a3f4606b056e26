package employee

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/upload"
)

// Uploader persists a submitted photo and returns its public path.
type Uploader interface {
	Save(filename string, size int64, content io.Reader) (string, error)
}

// PhotoUpload is the submitted photo file, as received from the form.
type PhotoUpload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// Repository interface defines the data access methods for employees
type Repository interface {
	List(search string) ([]*Employee, error)
	GetByID(id int64) (*Employee, error)
	Create(emp *Employee) error
	Update(emp *Employee, loadedUpdatedAt time.Time) error
	Delete(id int64) error
	Exists(id int64) (bool, error)
	DepartmentExists(id int64) (bool, error)
}

// Service handles employee business logic
type Service struct {
	repo     Repository
	uploader Uploader
	logger   *slog.Logger
}

// NewService creates a new employee service
func NewService(repo Repository, uploader Uploader, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		uploader: uploader,
		logger:   logger,
	}
}

// ListEmployees returns summaries, optionally narrowed by a
// case-insensitive substring match on name, phone or email.
func (s *Service) ListEmployees(search string) ([]EmployeeSummary, error) {
	employees, err := s.repo.List(search)
	if err != nil {
		s.logger.Error("failed to list employees", "error", err, "search", search)
		return nil, err
	}

	summaries := make([]EmployeeSummary, len(employees))
	for i, emp := range employees {
		summaries[i] = ToSummary(emp)
	}
	return summaries, nil
}

// GetEmployee fetches one employee with its department attached.
func (s *Service) GetEmployee(id int64) (*Employee, error) {
	emp, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, ErrEmployeeNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("failed to get employee", "error", err, "employee_id", id)
		return nil, err
	}
	return emp, nil
}

// CreateEmployee validates the form, stores the photo if one was
// submitted and persists the new record. A photo failure is a field
// error; nothing is persisted in that case.
func (s *Service) CreateEmployee(dto EmployeeFormDTO, photo *PhotoUpload) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("employee validation failed", "error", err)
		return nil, err
	}

	if err := s.checkDepartment(dto.DepartmentID); err != nil {
		return nil, err
	}

	var photoPath *string
	if photo != nil {
		path, err := s.uploader.Save(photo.Filename, photo.Size, photo.Content)
		if err != nil {
			s.logger.Warn("photo upload rejected", "error", err, "filename", photo.Filename)
			return nil, mapUploadError(err)
		}
		photoPath = &path
	}

	now := time.Now()
	emp := &Employee{
		EmployeeName: dto.EmployeeName,
		Gender:       dto.Gender,
		DateOfBirth:  dto.DateOfBirth,
		Email:        dto.Email,
		Phone:        dto.Phone,
		Salary:       dto.Salary,
		PhotoPath:    photoPath,
		DepartmentID: dto.DepartmentID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(emp); err != nil {
		s.logger.Error("failed to create employee", "error", err)
		return nil, err
	}

	s.logger.Info("employee created",
		"employee_id", emp.ID,
		"department_id", emp.DepartmentID)

	return emp, nil
}

// UpdateEmployee replaces every mutable field from the form. The
// submitted id must match the route id. A concurrent modification
// between load and save surfaces as a conflict when the row still
// exists, and as not-found when it is gone.
func (s *Service) UpdateEmployee(id int64, dto EmployeeFormDTO, photo *PhotoUpload) (*Employee, error) {
	if dto.ID != id {
		s.logger.Warn("employee id mismatch", "route_id", id, "form_id", dto.ID)
		return nil, ErrEmployeeNotFound
	}

	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := dto.Validate(); err != nil {
		s.logger.Warn("employee validation failed", "error", err, "employee_id", id)
		return nil, err
	}

	if err := s.checkDepartment(dto.DepartmentID); err != nil {
		return nil, err
	}

	if photo != nil {
		path, err := s.uploader.Save(photo.Filename, photo.Size, photo.Content)
		if err != nil {
			s.logger.Warn("photo upload rejected", "error", err, "employee_id", id)
			return nil, mapUploadError(err)
		}
		// TODO: delete the replaced photo file from the upload dir
		existing.PhotoPath = &path
	}

	loadedAt := existing.UpdatedAt
	existing.EmployeeName = dto.EmployeeName
	existing.Gender = dto.Gender
	existing.DateOfBirth = dto.DateOfBirth
	existing.Email = dto.Email
	existing.Phone = dto.Phone
	existing.Salary = dto.Salary
	existing.DepartmentID = dto.DepartmentID

	if err := s.repo.Update(existing, loadedAt); err != nil {
		if errors.Is(err, ErrNoRowsUpdated) {
			stillThere, existsErr := s.repo.Exists(id)
			if existsErr != nil {
				return nil, existsErr
			}
			if !stillThere {
				return nil, ErrEmployeeNotFound
			}
			s.logger.Warn("concurrent employee modification detected", "employee_id", id)
			return nil, ErrEmployeeConflict
		}
		s.logger.Error("failed to update employee", "error", err, "employee_id", id)
		return nil, err
	}

	return s.repo.GetByID(id)
}

// DeleteEmployee removes the record; deleting a missing id is a no-op.
func (s *Service) DeleteEmployee(id int64) error {
	// TODO: remove the orphaned photo file from the upload dir
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete employee", "error", err, "employee_id", id)
		return err
	}
	s.logger.Info("employee deleted", "employee_id", id)
	return nil
}

func (s *Service) checkDepartment(departmentID int64) error {
	ok, err := s.repo.DepartmentExists(departmentID)
	if err != nil {
		s.logger.Error("failed to check department", "error", err, "department_id", departmentID)
		return err
	}
	if !ok {
		return internal.NewValidationFieldError("department_id", "department does not exist", internal.ErrCodeInvalidDepartment)
	}
	return nil
}

func mapUploadError(err error) error {
	switch {
	case errors.Is(err, upload.ErrUnsupportedType):
		return internal.NewValidationFieldError("photo", "only .jpg, .jpeg and .png images are supported", internal.ErrCodePhotoUnsupportedType)
	case errors.Is(err, upload.ErrTooLarge):
		return internal.NewValidationFieldError("photo", "image must not exceed 2 MiB", internal.ErrCodePhotoTooLarge)
	default:
		return err
	}
}
