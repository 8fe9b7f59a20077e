package database

import (
	"database/sql"

	"github.com/Hassan-Macow/machad-darul-waxyi/app/models"
)

func GetAdminByEmail(db *sql.DB, email string) (*models.Admin, error) {
	a := &models.Admin{}
	query := `SELECT id, email, password, name, role, created_at, updated_at
			  FROM admins WHERE email = $1`
	err := db.QueryRow(query, email).Scan(
		&a.ID, &a.Email, &a.Password, &a.Name, &a.Role, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func GetAdminByID(db *sql.DB, id string) (*models.Admin, error) {
	a := &models.Admin{}
	query := `SELECT id, email, password, name, role, created_at, updated_at
			  FROM admins WHERE id = $1`
	err := db.QueryRow(query, id).Scan(
		&a.ID, &a.Email, &a.Password, &a.Name, &a.Role, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func CreateAdmin(db *sql.DB, a *models.Admin) error {
	query := `INSERT INTO admins (email, password, name, role)
			  VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at`
	return db.QueryRow(query, a.Email, a.Password, a.Name, a.Role).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func UpdateAdminPassword(db *sql.DB, id, hashedPassword string) error {
	res, err := db.Exec(`UPDATE admins SET password = $2, updated_at = NOW() WHERE id = $1`,
		id, hashedPassword)
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
