package database

import (
	"database/sql"
	"errors"

	"github.com/Hassan-Macow/machad-darul-waxyi/app/models"
)

// ErrInUse is returned when a delete would orphan records that reference the
// target row.
var ErrInUse = errors.New("record is referenced by other records")

func GetParents(db *sql.DB) ([]*models.Parent, error) {
	query := `SELECT id, name, phone, address, created_at
			  FROM parents ORDER BY created_at DESC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var parents []*models.Parent
	for rows.Next() {
		p := &models.Parent{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Phone, &p.Address, &p.CreatedAt); err != nil {
			return nil, err
		}
		parents = append(parents, p)
	}
	return parents, rows.Err()
}

func CreateParent(db *sql.DB, p *models.Parent) error {
	query := `INSERT INTO parents (name, phone, address)
			  VALUES ($1, $2, $3) RETURNING id, created_at`
	return db.QueryRow(query, p.Name, p.Phone, p.Address).Scan(&p.ID, &p.CreatedAt)
}

func UpdateParent(db *sql.DB, p *models.Parent) error {
	query := `UPDATE parents SET name = $2, phone = $3, address = $4
			  WHERE id = $1 RETURNING created_at`
	return db.QueryRow(query, p.ID, p.Name, p.Phone, p.Address).Scan(&p.CreatedAt)
}

func DeleteParent(db *sql.DB, id string) error {
	var students int
	if err := db.QueryRow(`SELECT COUNT(*) FROM students WHERE parent_id = $1`, id).Scan(&students); err != nil {
		return err
	}
	if students > 0 {
		return ErrInUse
	}

	res, err := db.Exec(`DELETE FROM parents WHERE id = $1`, id)
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
