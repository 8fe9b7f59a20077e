package database

import (
	"database/sql"

	"github.com/Hassan-Macow/machad-darul-waxyi/app/models"
)

// GetDashboardStats returns the headline figures for the admin dashboard.
// MonthlyIncome is the roster projection: the sum of fee minus discount over
// active students, independent of what has actually been collected.
func GetDashboardStats(db *sql.DB) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	err := db.QueryRow(`
		SELECT COUNT(*),
			   COUNT(*) FILTER (WHERE status = 'active'),
			   COUNT(*) FILTER (WHERE status = 'inactive'),
			   COALESCE(SUM(fee - discount) FILTER (WHERE status = 'active'), 0)
		FROM students
	`).Scan(&stats.TotalStudents, &stats.ActiveStudents, &stats.InactiveStudents, &stats.MonthlyIncome)
	if err != nil {
		return nil, err
	}

	if err := db.QueryRow(`SELECT COUNT(*) FROM classes`).Scan(&stats.TotalClasses); err != nil {
		return nil, err
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM parents`).Scan(&stats.TotalParents); err != nil {
		return nil, err
	}
	return stats, nil
}

// GetMonthlyIncomeByClass projects per-class monthly income from the active
// roster.
func GetMonthlyIncomeByClass(db *sql.DB) ([]models.MonthlyIncome, error) {
	query := `SELECT c.name,
					 COUNT(s.id),
					 COALESCE(SUM(s.fee), 0),
					 COALESCE(SUM(s.discount), 0),
					 COALESCE(SUM(s.fee - s.discount), 0)
			  FROM classes c
			  LEFT JOIN students s ON s.class_id = c.id AND s.status = 'active'
			  GROUP BY c.id, c.name
			  ORDER BY c.name`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var incomes []models.MonthlyIncome
	for rows.Next() {
		var m models.MonthlyIncome
		if err := rows.Scan(&m.ClassName, &m.TotalStudents, &m.TotalFee,
			&m.TotalDiscount, &m.NetIncome); err != nil {
			return nil, err
		}
		incomes = append(incomes, m)
	}
	return incomes, rows.Err()
}
