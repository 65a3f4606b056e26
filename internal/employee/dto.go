package employee

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/core/common/validation"
)

// EmployeeFormDTO carries the submitted create/edit form. Updates are
// full-record replace: every mutable field is taken from the form.
type EmployeeFormDTO struct {
	ID           int64      `json:"id,omitempty"`
	EmployeeName string     `json:"employee_name"`
	Gender       Gender     `json:"gender"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty"`
	Email        *string    `json:"email,omitempty"`
	Phone        *string    `json:"phone,omitempty"`
	Salary       *float64   `json:"salary,omitempty"`
	DepartmentID int64      `json:"department_id"`
}

// Validate checks the field constraints and aggregates field errors.
func (dto EmployeeFormDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("employee_name", dto.EmployeeName).Required().MaxLength(100)
	v.Field("email", dto.Email).MaxLength(100)
	v.Field("phone", dto.Phone).MaxLength(20)
	v.Field("salary", dto.Salary).NonNegative(internal.ErrCodeInvalidSalary)
	v.Field("date_of_birth", dto.DateOfBirth).NotFuture()
	v.Field("department_id", dto.DepartmentID).Required()
	return v.Validate()
}

// ParseEmployeeForm reads the multipart/urlencoded form fields into a
// DTO. Malformed numeric or date values come back as field errors, not
// transport faults.
func ParseEmployeeForm(r *http.Request) (EmployeeFormDTO, *internal.AppError) {
	var dto EmployeeFormDTO

	if raw := strings.TrimSpace(r.FormValue("id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return dto, internal.NewValidationFieldError("id", "id must be an integer", internal.ErrCodeValidationFailed)
		}
		dto.ID = id
	}

	dto.EmployeeName = strings.TrimSpace(r.FormValue("employee_name"))
	dto.Gender = ParseGender(r.FormValue("gender"))

	if raw := strings.TrimSpace(r.FormValue("date_of_birth")); raw != "" {
		dob, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return dto, internal.NewValidationFieldError("date_of_birth", "date_of_birth must be YYYY-MM-DD", internal.ErrCodeInvalidDate)
		}
		dto.DateOfBirth = &dob
	}

	if raw := strings.TrimSpace(r.FormValue("email")); raw != "" {
		dto.Email = &raw
	}
	if raw := strings.TrimSpace(r.FormValue("phone")); raw != "" {
		dto.Phone = &raw
	}

	if raw := strings.TrimSpace(r.FormValue("salary")); raw != "" {
		salary, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return dto, internal.NewValidationFieldError("salary", "salary must be a number", internal.ErrCodeInvalidSalary)
		}
		dto.Salary = &salary
	}

	if raw := strings.TrimSpace(r.FormValue("department_id")); raw != "" {
		deptID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return dto, internal.NewValidationFieldError("department_id", "department_id must be an integer", internal.ErrCodeInvalidDepartment)
		}
		dto.DepartmentID = deptID
	}

	return dto, nil
}

// EmployeeSummary is the list projection: identity, display name, a
// rendered gender label, the owning department's name and the photo
// path.
type EmployeeSummary struct {
	ID             int64   `json:"id"`
	EmployeeName   string  `json:"employee_name"`
	Gender         string  `json:"gender"`
	DepartmentName string  `json:"department_name"`
	PhotoPath      *string `json:"photo_path,omitempty"`
}

// EmployeesResponse wraps the list endpoint payload.
type EmployeesResponse struct {
	Employees []EmployeeSummary `json:"employees"`
	Search    string            `json:"search,omitempty"`
}

func ToSummary(e *Employee) EmployeeSummary {
	return EmployeeSummary{
		ID:             e.ID,
		EmployeeName:   e.EmployeeName,
		Gender:         e.Gender.Label(),
		DepartmentName: e.DepartmentName(),
		PhotoPath:      e.PhotoPath,
	}
}
