package database

import (
	"database/sql"

	"github.com/Hassan-Macow/machad-darul-waxyi/app/models"
)

func GetClasses(db *sql.DB) ([]*models.Class, error) {
	query := `SELECT c.id, c.name, c.description, c.created_at,
			  COUNT(s.id) AS student_count
			  FROM classes c
			  LEFT JOIN students s ON s.class_id = c.id
			  GROUP BY c.id, c.name, c.description, c.created_at
			  ORDER BY c.created_at DESC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []*models.Class
	for rows.Next() {
		c := &models.Class{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.StudentCount); err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

func CreateClass(db *sql.DB, c *models.Class) error {
	query := `INSERT INTO classes (name, description)
			  VALUES ($1, $2) RETURNING id, created_at`
	return db.QueryRow(query, c.Name, c.Description).Scan(&c.ID, &c.CreatedAt)
}

func UpdateClass(db *sql.DB, c *models.Class) error {
	query := `UPDATE classes SET name = $2, description = $3
			  WHERE id = $1 RETURNING created_at`
	return db.QueryRow(query, c.ID, c.Name, c.Description).Scan(&c.CreatedAt)
}

func DeleteClass(db *sql.DB, id string) error {
	var students int
	if err := db.QueryRow(`SELECT COUNT(*) FROM students WHERE class_id = $1`, id).Scan(&students); err != nil {
		return err
	}
	if students > 0 {
		return ErrInUse
	}

	res, err := db.Exec(`DELETE FROM classes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
