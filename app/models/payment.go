package models

import "time"

// Payment is one student's obligation for one month. Amount is a snapshot of
// fee minus discount taken at generation time and is not recomputed when the
// student's fee later changes. At most one payment exists per (student, month).
type Payment struct {
	ID          string        `json:"id"`
	StudentID   string        `json:"student_id"`
	Month       string        `json:"month"`
	Amount      float64       `json:"amount"`
	Status      PaymentStatus `json:"status"`
	PaymentDate *time.Time    `json:"payment_date,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

// PaymentDetails is the denormalized payment row used by the payments table
// and the outstanding-balance report.
type PaymentDetails struct {
	ID              string        `json:"id"`
	StudentID       string        `json:"student_id"`
	Month           string        `json:"month"`
	Amount          float64       `json:"amount"`
	Status          PaymentStatus `json:"status"`
	PaymentDate     *time.Time    `json:"payment_date,omitempty"`
	StudentName     string        `json:"student_name"`
	StudentFee      float64       `json:"student_fee"`
	StudentDiscount float64       `json:"student_discount"`
	ClassID         string        `json:"class_id"`
	ClassName       string        `json:"class_name"`
	ParentName      string        `json:"parent_name"`
	ParentPhone     string        `json:"parent_phone"`
}
