package database

import (
	"database/sql"

	"github.com/Hassan-Macow/machad-darul-waxyi/app/models"
)

// GetStudentsWithDetails returns every student joined with parent and class
// for tabular display.
func GetStudentsWithDetails(db *sql.DB) ([]*models.Student, error) {
	query := `SELECT s.id, s.name, s.parent_id, s.class_id, s.fee, s.discount, s.status, s.created_at,
					 p.id, p.name, p.phone, p.address, p.created_at,
					 c.id, c.name, c.description, c.created_at
			  FROM students s
			  JOIN parents p ON s.parent_id = p.id
			  JOIN classes c ON s.class_id = c.id
			  ORDER BY s.created_at DESC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		s := &models.Student{Parent: &models.Parent{}, Class: &models.Class{}}
		var status string
		if err := rows.Scan(
			&s.ID, &s.Name, &s.ParentID, &s.ClassID, &s.Fee, &s.Discount, &status, &s.CreatedAt,
			&s.Parent.ID, &s.Parent.Name, &s.Parent.Phone, &s.Parent.Address, &s.Parent.CreatedAt,
			&s.Class.ID, &s.Class.Name, &s.Class.Description, &s.Class.CreatedAt,
		); err != nil {
			return nil, err
		}
		s.Status = models.StudentStatus(status)
		students = append(students, s)
	}
	return students, rows.Err()
}

func GetStudentByID(db *sql.DB, id string) (*models.Student, error) {
	s := &models.Student{}
	var status string
	query := `SELECT id, name, parent_id, class_id, fee, discount, status, created_at
			  FROM students WHERE id = $1`
	err := db.QueryRow(query, id).Scan(
		&s.ID, &s.Name, &s.ParentID, &s.ClassID, &s.Fee, &s.Discount, &status, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	s.Status = models.StudentStatus(status)
	return s, nil
}

func CreateStudent(db *sql.DB, s *models.Student) error {
	query := `INSERT INTO students (name, parent_id, class_id, fee, discount, status)
			  VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`
	return db.QueryRow(query,
		s.Name, s.ParentID, s.ClassID, s.Fee, s.Discount, string(s.Status),
	).Scan(&s.ID, &s.CreatedAt)
}

func UpdateStudent(db *sql.DB, s *models.Student) error {
	query := `UPDATE students
			  SET name = $2, parent_id = $3, class_id = $4, fee = $5, discount = $6, status = $7
			  WHERE id = $1 RETURNING created_at`
	return db.QueryRow(query,
		s.ID, s.Name, s.ParentID, s.ClassID, s.Fee, s.Discount, string(s.Status),
	).Scan(&s.CreatedAt)
}

// DeleteStudent removes a student who has no payment history. Students with
// payments on record should be marked inactive instead so the ledger keeps
// its references.
func DeleteStudent(db *sql.DB, id string) error {
	var payments int
	if err := db.QueryRow(`SELECT COUNT(*) FROM payments WHERE student_id = $1`, id).Scan(&payments); err != nil {
		return err
	}
	if payments > 0 {
		return ErrInUse
	}

	res, err := db.Exec(`DELETE FROM students WHERE id = $1`, id)
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
