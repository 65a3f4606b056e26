package postgres

import (
	"errors"
	"strings"
	"time"

	"github.com/frahmantamala/employee-management/internal/department"
	"github.com/frahmantamala/employee-management/internal/employee"
	"gorm.io/gorm"
)

// EmployeeRepository implements the employee.Repository interface using GORM
type EmployeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *gorm.DB) employee.Repository {
	return &EmployeeRepository{db: db}
}

// List retrieves employees with their department eagerly loaded. When
// search is non-empty, rows match if name OR phone OR email contains
// the text case-insensitively. Ordering is storage order.
func (r *EmployeeRepository) List(search string) ([]*employee.Employee, error) {
	query := r.db.Preload("Department")

	if search != "" {
		pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
		query = query.Where(
			`LOWER(employee_name) LIKE ? ESCAPE '\' OR LOWER(phone) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern,
		)
	}

	var employees []*employee.Employee
	err := query.Find(&employees).Error
	return employees, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes LIKE wildcards so the search text only
// matches literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// GetByID retrieves an employee by its ID with the department attached
func (r *EmployeeRepository) GetByID(id int64) (*employee.Employee, error) {
	var emp employee.Employee
	err := r.db.Preload("Department").Where("id = ?", id).First(&emp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &emp, nil
}

// Create saves a new employee to the database
func (r *EmployeeRepository) Create(emp *employee.Employee) error {
	return r.db.Create(emp).Error
}

// Update replaces the mutable fields, guarded by the updated_at value
// read at load time. Zero rows affected means another writer got in
// between; the caller decides whether that is a conflict or a missing
// row.
func (r *EmployeeRepository) Update(emp *employee.Employee, loadedUpdatedAt time.Time) error {
	emp.UpdatedAt = time.Now()

	res := r.db.Model(&employee.Employee{}).
		Where("id = ? AND updated_at = ?", emp.ID, loadedUpdatedAt).
		Updates(map[string]interface{}{
			"employee_name": emp.EmployeeName,
			"gender":        emp.Gender,
			"date_of_birth": emp.DateOfBirth,
			"email":         emp.Email,
			"phone":         emp.Phone,
			"photo_path":    emp.PhotoPath,
			"salary":        emp.Salary,
			"department_id": emp.DepartmentID,
			"updated_at":    emp.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return employee.ErrNoRowsUpdated
	}
	return nil
}

// Delete removes an employee; deleting a missing id affects zero rows
// and is not an error.
func (r *EmployeeRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&employee.Employee{}).Error
}

// Exists reports whether the employee row is still present
func (r *EmployeeRepository) Exists(id int64) (bool, error) {
	var count int64
	err := r.db.Model(&employee.Employee{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// DepartmentExists reports whether the referenced department exists
func (r *EmployeeRepository) DepartmentExists(id int64) (bool, error) {
	var count int64
	err := r.db.Model(&department.Department{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
