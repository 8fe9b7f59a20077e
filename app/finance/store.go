package finance

import (
	"context"
	"time"

	"github.com/Hassan-Macow/machad-darul-waxyi/app/models"
)

// Store is the persistence boundary for the finance engine. Month arguments
// are canonical labels ("October 2025"); an empty month means "all months"
// on list operations. Implementations must enforce at most one payment per
// (student, month).
type Store interface {
	// ListActiveStudents returns every student eligible for fee generation.
	ListActiveStudents(ctx context.Context) ([]models.Student, error)

	// CreatePayment inserts p unless a payment already exists for the same
	// (student, month), in which case it reports created=false and changes
	// nothing. On success p.ID is populated.
	CreatePayment(ctx context.Context, p *models.Payment) (created bool, err error)

	// GetPaymentDetails loads one payment with its student, parent and class
	// display fields. Returns ErrNotFound when the id is unknown.
	GetPaymentDetails(ctx context.Context, id string) (*models.PaymentDetails, error)

	// SetPaymentStatus updates status and payment date of one payment.
	SetPaymentStatus(ctx context.Context, id string, status models.PaymentStatus, paymentDate *time.Time) error

	// ListPaymentDetails returns denormalized payments, optionally filtered
	// to one month.
	ListPaymentDetails(ctx context.Context, month string) ([]models.PaymentDetails, error)

	// ListUnpaidPaymentDetails returns every unpaid payment across all months.
	ListUnpaidPaymentDetails(ctx context.Context) ([]models.PaymentDetails, error)

	// ListClassPayments returns the payments of one class for one month.
	ListClassPayments(ctx context.Context, classID, month string) ([]models.Payment, error)

	// UpsertFinanceSummary creates or replaces the summary row keyed by
	// (class, month).
	UpsertFinanceSummary(ctx context.Context, s *models.FinanceSummary) error

	// ListFinanceSummaries returns summaries annotated with their class,
	// optionally filtered to one month.
	ListFinanceSummaries(ctx context.Context, month string) ([]models.FinanceSummary, error)

	// WithinTx runs fn atomically: either every store call made through the
	// Store passed to fn commits, or none do. Nested calls reuse the
	// enclosing transaction.
	WithinTx(ctx context.Context, fn func(Store) error) error
}
