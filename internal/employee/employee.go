package employee

import (
	"errors"
	"strings"
	"time"

	"github.com/frahmantamala/employee-management/internal/department"
)

// Gender is a three-valued field; "unknown" is a legitimate state, not
// a data gap.
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = "unknown"
)

// ParseGender accepts the form value; anything unrecognized collapses
// to unknown.
func ParseGender(s string) Gender {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male":
		return GenderMale
	case "female":
		return GenderFemale
	default:
		return GenderUnknown
	}
}

// Label renders the gender for display.
func (g Gender) Label() string {
	switch g {
	case GenderMale:
		return "Male"
	case GenderFemale:
		return "Female"
	default:
		return "Unknown"
	}
}

// Employee is the main entity. Every employee belongs to exactly one
// department.
type Employee struct {
	ID           int64                  `json:"id" gorm:"primaryKey"`
	EmployeeName string                 `json:"employee_name" gorm:"column:employee_name;size:100;not null"`
	Gender       Gender                 `json:"gender" gorm:"column:gender;size:10;not null;default:unknown"`
	DateOfBirth  *time.Time             `json:"date_of_birth,omitempty" gorm:"column:date_of_birth;type:date"`
	Email        *string                `json:"email,omitempty" gorm:"column:email;size:100"`
	Phone        *string                `json:"phone,omitempty" gorm:"column:phone;size:20"`
	PhotoPath    *string                `json:"photo_path,omitempty" gorm:"column:photo_path;size:255"`
	Salary       *float64               `json:"salary,omitempty" gorm:"column:salary;type:decimal(10,2)"`
	DepartmentID int64                  `json:"department_id" gorm:"column:department_id;not null"`
	Department   *department.Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
	CreatedAt    time.Time              `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time              `json:"updated_at" gorm:"column:updated_at"`
}

// TableName returns the table name for GORM
func (Employee) TableName() string {
	return "employees"
}

// DepartmentName resolves the owning department's name for list
// projections; empty when the relation was not loaded.
func (e *Employee) DepartmentName() string {
	if e.Department == nil {
		return ""
	}
	return e.Department.DepartmentName
}

// Domain errors
var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmployeeConflict = errors.New("employee was modified concurrently")
	ErrNoRowsUpdated    = errors.New("no rows updated")
)
