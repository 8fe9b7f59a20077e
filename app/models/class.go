package models

import "time"

// Class represents a school class that students belong to.
type Class struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	StudentCount int       `json:"student_count,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
