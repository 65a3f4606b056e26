package department

import (
	"errors"
	"time"
)

// Department groups employees; one department has many employees.
type Department struct {
	ID             int64     `json:"id" gorm:"primaryKey"`
	DepartmentName string    `json:"department_name" gorm:"column:department_name;size:100;not null"`
	CreatedAt      time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"column:updated_at"`
}

// TableName returns the table name for GORM
func (Department) TableName() string {
	return "departments"
}

// Domain errors
var (
	ErrDepartmentNotFound     = errors.New("department not found")
	ErrDepartmentHasEmployees = errors.New("department still has employees")
)
