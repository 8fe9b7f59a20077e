package models

import "time"

// Student represents an enrolled student. Fee is the base monthly amount and
// Discount is subtracted from it at fee-generation time; only active students
// are billed.
type Student struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	ParentID  string        `json:"parent_id"`
	ClassID   string        `json:"class_id"`
	Fee       float64       `json:"fee"`
	Discount  float64       `json:"discount"`
	Status    StudentStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`

	Parent *Parent `json:"parent,omitempty"`
	Class  *Class  `json:"class,omitempty"`
}

// MonthlyAmount returns the amount the student owes for one month, clamped so
// an oversized discount never produces a negative charge.
func (s *Student) MonthlyAmount() float64 {
	amount := s.Fee - s.Discount
	if amount < 0 {
		return 0
	}
	return amount
}
