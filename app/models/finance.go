package models

import "time"

// FinanceSummary is the per-class, per-month aggregate of expected versus paid
// amounts. It is recomputed whenever fee generation or a payment status change
// touches the class and month it covers.
type FinanceSummary struct {
	ID            string        `json:"id"`
	ClassID       string        `json:"class_id"`
	Month         string        `json:"month"`
	TotalExpected float64       `json:"total_expected"`
	TotalPaid     float64       `json:"total_paid"`
	Balance       float64       `json:"balance"`
	Status        SummaryStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`

	Class *Class `json:"class,omitempty"`
}

// StudentOutstandingBalance aggregates a student's unpaid payments across all
// months. CurrentMonthStatus reports the student's standing for the reference
// month supplied by the caller, or no_record when no month was supplied or no
// payment exists for it.
type StudentOutstandingBalance struct {
	StudentID             string             `json:"student_id"`
	StudentName           string             `json:"student_name"`
	ParentName            string             `json:"parent_name"`
	ParentPhone           string             `json:"parent_phone"`
	ClassName             string             `json:"class_name"`
	TotalOutstanding      float64            `json:"total_outstanding"`
	UnpaidMonths          []string           `json:"unpaid_months"`
	CurrentMonthStatus    CurrentMonthStatus `json:"current_month_status"`
	CurrentMonthPaymentID string             `json:"current_month_payment_id,omitempty"`
}

// MonthlyFeeGenerationResult reports what a fee-generation run did.
type MonthlyFeeGenerationResult struct {
	PaymentsCreated       int    `json:"payments_created"`
	FinanceRecordsUpdated int    `json:"finance_records_updated"`
	Month                 string `json:"month"`
}

// PaymentUpdateResult reports the outcome of a payment status change.
type PaymentUpdateResult struct {
	Success   bool   `json:"success"`
	PaymentID string `json:"payment_id"`
	Status    string `json:"status"`
}
