package department

import (
	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/core/common/validation"
)

// DepartmentFormDTO carries the submitted create/rename form.
type DepartmentFormDTO struct {
	DepartmentName string `json:"department_name"`
}

func (dto DepartmentFormDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("department_name", dto.DepartmentName).Required().MaxLength(100)
	return v.Validate()
}

// DepartmentOption is the selectable-list projection for forms.
type DepartmentOption struct {
	ID             int64  `json:"id"`
	DepartmentName string `json:"department_name"`
}

type DepartmentsResponse struct {
	Departments []DepartmentOption `json:"departments"`
}

func ToOption(d *Department) DepartmentOption {
	return DepartmentOption{
		ID:             d.ID,
		DepartmentName: d.DepartmentName,
	}
}
