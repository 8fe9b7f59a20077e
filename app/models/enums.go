package models

// StudentStatus defines whether a student is billable.
type StudentStatus string

const (
	StudentActive   StudentStatus = "active"
	StudentInactive StudentStatus = "inactive"
)

// PaymentStatus defines the status of a monthly payment.
type PaymentStatus string

const (
	PaymentPaid   PaymentStatus = "paid"
	PaymentUnpaid PaymentStatus = "unpaid"
)

// SummaryStatus defines the collection status of a class for a month.
type SummaryStatus string

const (
	SummaryPending   SummaryStatus = "pending"
	SummaryCompleted SummaryStatus = "completed"
)

// CurrentMonthStatus reports a student's standing for the reference month
// on an outstanding-balance row. Distinguishes "no payment record exists"
// from "record exists and is paid".
type CurrentMonthStatus string

const (
	CurrentMonthNoRecord CurrentMonthStatus = "no_record"
	CurrentMonthPaid     CurrentMonthStatus = "paid"
	CurrentMonthUnpaid   CurrentMonthStatus = "unpaid"
)
