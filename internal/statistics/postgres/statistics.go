package postgres

import (
	"github.com/frahmantamala/employee-management/internal/statistics"
	"gorm.io/gorm"
)

// StatisticsRepository implements the statistics.Repository interface using GORM
type StatisticsRepository struct {
	db *gorm.DB
}

// NewStatisticsRepository creates a new statistics repository
func NewStatisticsRepository(db *gorm.DB) statistics.Repository {
	return &StatisticsRepository{db: db}
}

// DepartmentStatistics aggregates headcount, total salary and female
// headcount per department. The LEFT JOIN keeps empty departments in
// the result with zeroed aggregates; NULL salaries count as zero.
func (r *StatisticsRepository) DepartmentStatistics() ([]statistics.DepartmentStatistics, error) {
	var rows []statistics.DepartmentStatistics

	err := r.db.Raw(`
		SELECT
			d.id AS department_id,
			d.department_name AS department_name,
			COUNT(e.id) AS employee_count,
			COALESCE(SUM(e.salary), 0) AS total_salary,
			COUNT(CASE WHEN e.gender = 'female' THEN 1 END) AS female_count
		FROM departments d
		LEFT JOIN employees e ON e.department_id = d.id
		GROUP BY d.id, d.department_name
		ORDER BY d.id`).
		Scan(&rows).Error

	return rows, err
}
