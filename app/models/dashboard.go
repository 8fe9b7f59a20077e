package models

// DashboardStats carries the headline figures for the admin dashboard.
type DashboardStats struct {
	TotalStudents    int     `json:"total_students"`
	ActiveStudents   int     `json:"active_students"`
	InactiveStudents int     `json:"inactive_students"`
	TotalClasses     int     `json:"total_classes"`
	TotalParents     int     `json:"total_parents"`
	MonthlyIncome    float64 `json:"monthly_income"`
}

// MonthlyIncome is the projected monthly income for one class, derived from
// the current roster rather than the payment ledger.
type MonthlyIncome struct {
	ClassName     string  `json:"class_name"`
	TotalStudents int     `json:"total_students"`
	TotalFee      float64 `json:"total_fee"`
	TotalDiscount float64 `json:"total_discount"`
	NetIncome     float64 `json:"net_income"`
}
