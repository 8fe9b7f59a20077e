package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Hassan-Macow/machad-darul-waxyi/app/finance"
	"github.com/Hassan-Macow/machad-darul-waxyi/app/models"
)

// FinanceStore implements finance.Store on PostgreSQL. The zero tx means
// operations run directly on the pool; WithinTx hands out a copy bound to a
// transaction.
type FinanceStore struct {
	db *sql.DB
	tx *sql.Tx
}

var _ finance.Store = (*FinanceStore)(nil)

func NewFinanceStore(db *sql.DB) *FinanceStore {
	return &FinanceStore{db: db}
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func (s *FinanceStore) q() querier {
	if s.tx != nil {
		return s.tx
	}
	return s.db
}

func (s *FinanceStore) WithinTx(ctx context.Context, fn func(finance.Store) error) error {
	if s.tx != nil {
		return fn(s)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&FinanceStore{db: s.db, tx: tx}); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *FinanceStore) ListActiveStudents(ctx context.Context) ([]models.Student, error) {
	query := `SELECT id, name, parent_id, class_id, fee, discount, status, created_at
			  FROM students WHERE status = 'active'
			  ORDER BY name`

	rows, err := s.q().QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		var st models.Student
		if err := rows.Scan(&st.ID, &st.Name, &st.ParentID, &st.ClassID,
			&st.Fee, &st.Discount, &st.Status, &st.CreatedAt); err != nil {
			return nil, err
		}
		students = append(students, st)
	}
	return students, rows.Err()
}

// CreatePayment relies on the unique (student_id, month) index: a concurrent
// or repeated insert for the same pair hits the conflict clause and reports
// created=false instead of failing.
func (s *FinanceStore) CreatePayment(ctx context.Context, p *models.Payment) (bool, error) {
	query := `INSERT INTO payments (student_id, month, amount, status, payment_date)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (student_id, month) DO NOTHING
			  RETURNING id, created_at`

	err := s.q().QueryRowContext(ctx, query,
		p.StudentID, p.Month, p.Amount, string(p.Status), p.PaymentDate,
	).Scan(&p.ID, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

const paymentDetailsQuery = `
	SELECT p.id, p.student_id, p.month, p.amount, p.status, p.payment_date,
		   s.name, s.fee, s.discount, s.class_id,
		   c.name, par.name, par.phone
	FROM payments p
	JOIN students s ON p.student_id = s.id
	JOIN classes c ON s.class_id = c.id
	JOIN parents par ON s.parent_id = par.id`

func scanPaymentDetails(rows *sql.Rows) (models.PaymentDetails, error) {
	var d models.PaymentDetails
	var status string
	err := rows.Scan(&d.ID, &d.StudentID, &d.Month, &d.Amount, &status, &d.PaymentDate,
		&d.StudentName, &d.StudentFee, &d.StudentDiscount, &d.ClassID,
		&d.ClassName, &d.ParentName, &d.ParentPhone)
	d.Status = models.PaymentStatus(status)
	return d, err
}

func (s *FinanceStore) GetPaymentDetails(ctx context.Context, id string) (*models.PaymentDetails, error) {
	var d models.PaymentDetails
	var status string
	err := s.q().QueryRowContext(ctx, paymentDetailsQuery+" WHERE p.id = $1", id).Scan(
		&d.ID, &d.StudentID, &d.Month, &d.Amount, &status, &d.PaymentDate,
		&d.StudentName, &d.StudentFee, &d.StudentDiscount, &d.ClassID,
		&d.ClassName, &d.ParentName, &d.ParentPhone)
	if err == sql.ErrNoRows {
		return nil, finance.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	d.Status = models.PaymentStatus(status)
	return &d, nil
}

func (s *FinanceStore) SetPaymentStatus(ctx context.Context, id string, status models.PaymentStatus, paymentDate *time.Time) error {
	res, err := s.q().ExecContext(ctx,
		`UPDATE payments SET status = $2, payment_date = $3 WHERE id = $1`,
		id, string(status), paymentDate)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return finance.ErrNotFound
	}
	return nil
}

func (s *FinanceStore) ListPaymentDetails(ctx context.Context, month string) ([]models.PaymentDetails, error) {
	query := paymentDetailsQuery
	var args []interface{}
	if month != "" {
		query += " WHERE p.month = $1"
		args = append(args, month)
	}
	query += " ORDER BY c.name, s.name, p.month"

	return s.queryPaymentDetails(ctx, query, args...)
}

func (s *FinanceStore) ListUnpaidPaymentDetails(ctx context.Context) ([]models.PaymentDetails, error) {
	query := paymentDetailsQuery + " WHERE p.status = 'unpaid' ORDER BY s.id, p.created_at"
	return s.queryPaymentDetails(ctx, query)
}

func (s *FinanceStore) queryPaymentDetails(ctx context.Context, query string, args ...interface{}) ([]models.PaymentDetails, error) {
	rows, err := s.q().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []models.PaymentDetails
	for rows.Next() {
		d, err := scanPaymentDetails(rows)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func (s *FinanceStore) ListClassPayments(ctx context.Context, classID, month string) ([]models.Payment, error) {
	query := `SELECT p.id, p.student_id, p.month, p.amount, p.status, p.payment_date, p.created_at
			  FROM payments p
			  JOIN students s ON p.student_id = s.id
			  WHERE s.class_id = $1 AND p.month = $2`

	rows, err := s.q().QueryContext(ctx, query, classID, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var p models.Payment
		var status string
		if err := rows.Scan(&p.ID, &p.StudentID, &p.Month, &p.Amount,
			&status, &p.PaymentDate, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.Status = models.PaymentStatus(status)
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (s *FinanceStore) UpsertFinanceSummary(ctx context.Context, sum *models.FinanceSummary) error {
	query := `INSERT INTO finance_summary (class_id, month, total_expected, total_paid, balance, status)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  ON CONFLICT (class_id, month) DO UPDATE SET
				  total_expected = EXCLUDED.total_expected,
				  total_paid = EXCLUDED.total_paid,
				  balance = EXCLUDED.balance,
				  status = EXCLUDED.status
			  RETURNING id, created_at`

	return s.q().QueryRowContext(ctx, query,
		sum.ClassID, sum.Month, sum.TotalExpected, sum.TotalPaid, sum.Balance, string(sum.Status),
	).Scan(&sum.ID, &sum.CreatedAt)
}

func (s *FinanceStore) ListFinanceSummaries(ctx context.Context, month string) ([]models.FinanceSummary, error) {
	query := `SELECT f.id, f.class_id, f.month, f.total_expected, f.total_paid, f.balance, f.status, f.created_at,
					 c.id, c.name, c.description, c.created_at
			  FROM finance_summary f
			  JOIN classes c ON f.class_id = c.id`
	var args []interface{}
	if month != "" {
		query += " WHERE f.month = $1"
		args = append(args, month)
	}
	query += " ORDER BY c.name, f.month"

	rows, err := s.q().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []models.FinanceSummary
	for rows.Next() {
		var f models.FinanceSummary
		var c models.Class
		var status string
		if err := rows.Scan(&f.ID, &f.ClassID, &f.Month, &f.TotalExpected, &f.TotalPaid,
			&f.Balance, &status, &f.CreatedAt,
			&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, err
		}
		f.Status = models.SummaryStatus(status)
		f.Class = &c
		summaries = append(summaries, f)
	}
	return summaries, rows.Err()
}
