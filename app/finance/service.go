package finance

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"github.com/Hassan-Macow/machad-darul-waxyi/app/models"
)

// Service implements monthly fee generation, finance aggregation and payment
// status changes on top of a Store. It holds no state of its own, so a single
// instance can serve all requests.
type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// GenerateMonthlyFees creates one unpaid payment for every active student who
// does not already have one for the given month, then refreshes the finance
// summary of every class that received new payments. Safe to call repeatedly
// for the same month: existing payments are skipped, never duplicated or
// overwritten. The whole run is one transaction.
func (s *Service) GenerateMonthlyFees(ctx context.Context, month string) (*models.MonthlyFeeGenerationResult, error) {
	m, err := models.ParseMonth(month)
	if err != nil {
		return nil, &ValidationError{Field: "month", Message: err.Error()}
	}
	label := m.String()

	result := &models.MonthlyFeeGenerationResult{Month: label}
	err = s.store.WithinTx(ctx, func(tx Store) error {
		students, err := tx.ListActiveStudents(ctx)
		if err != nil {
			return storeErr("list active students", err)
		}

		touched := make(map[string]bool)
		for i := range students {
			st := &students[i]
			p := &models.Payment{
				StudentID: st.ID,
				Month:     label,
				Amount:    st.MonthlyAmount(),
				Status:    models.PaymentUnpaid,
			}
			created, err := tx.CreatePayment(ctx, p)
			if err != nil {
				return storeErr("create payment", err)
			}
			if created {
				result.PaymentsCreated++
				touched[st.ClassID] = true
			}
		}

		for classID := range touched {
			if err := refreshSummary(ctx, tx, classID, label); err != nil {
				return err
			}
			result.FinanceRecordsUpdated++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Fee generation for %s: %d payments created, %d summaries updated",
		label, result.PaymentsCreated, result.FinanceRecordsUpdated)
	return result, nil
}

// GetFinanceSummary returns per-class summaries, optionally restricted to one
// month. Month may be empty.
func (s *Service) GetFinanceSummary(ctx context.Context, month string) ([]models.FinanceSummary, error) {
	label, err := normalizeOptionalMonth(month)
	if err != nil {
		return nil, err
	}
	summaries, err := s.store.ListFinanceSummaries(ctx, label)
	if err != nil {
		return nil, storeErr("list finance summaries", err)
	}
	return summaries, nil
}

// GetPayments returns denormalized payment rows, optionally restricted to one
// month.
func (s *Service) GetPayments(ctx context.Context, month string) ([]models.PaymentDetails, error) {
	label, err := normalizeOptionalMonth(month)
	if err != nil {
		return nil, err
	}
	payments, err := s.store.ListPaymentDetails(ctx, label)
	if err != nil {
		return nil, storeErr("list payments", err)
	}
	return payments, nil
}

// MarkPaymentStatus transitions one payment between paid and unpaid. Marking
// paid stamps the payment date; marking unpaid clears it. The finance summary
// of the payment's class and month is recomputed in the same transaction so
// reads never observe a stale aggregate.
func (s *Service) MarkPaymentStatus(ctx context.Context, paymentID string, status models.PaymentStatus) (*models.PaymentUpdateResult, error) {
	if paymentID == "" {
		return nil, &ValidationError{Field: "payment_id", Message: "must not be empty"}
	}
	if status != models.PaymentPaid && status != models.PaymentUnpaid {
		return nil, &ValidationError{Field: "status", Message: "must be 'paid' or 'unpaid'"}
	}

	err := s.store.WithinTx(ctx, func(tx Store) error {
		p, err := tx.GetPaymentDetails(ctx, paymentID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return err
			}
			return storeErr("load payment", err)
		}

		var paymentDate *time.Time
		if status == models.PaymentPaid {
			t := s.now()
			paymentDate = &t
		}
		if err := tx.SetPaymentStatus(ctx, paymentID, status, paymentDate); err != nil {
			return storeErr("update payment status", err)
		}
		return refreshSummary(ctx, tx, p.ClassID, p.Month)
	})
	if err != nil {
		return nil, err
	}

	return &models.PaymentUpdateResult{
		Success:   true,
		PaymentID: paymentID,
		Status:    string(status),
	}, nil
}

// GetStudentOutstandingBalances aggregates every unpaid payment by student.
// Unpaid months are sorted chronologically and rows are ordered by student id
// for stable tabular display. When currentMonth is given, each row reports
// whether that student's payment for it is paid, unpaid or missing entirely.
func (s *Service) GetStudentOutstandingBalances(ctx context.Context, currentMonth string) ([]models.StudentOutstandingBalance, error) {
	curLabel, err := normalizeOptionalMonth(currentMonth)
	if err != nil {
		return nil, err
	}

	unpaid, err := s.store.ListUnpaidPaymentDetails(ctx)
	if err != nil {
		return nil, storeErr("list unpaid payments", err)
	}

	byStudent := make(map[string]*models.StudentOutstandingBalance)
	monthsByStudent := make(map[string][]models.Month)
	currentPaymentID := make(map[string]string)
	for i := range unpaid {
		p := &unpaid[i]
		row, ok := byStudent[p.StudentID]
		if !ok {
			row = &models.StudentOutstandingBalance{
				StudentID:          p.StudentID,
				StudentName:        p.StudentName,
				ParentName:         p.ParentName,
				ParentPhone:        p.ParentPhone,
				ClassName:          p.ClassName,
				CurrentMonthStatus: models.CurrentMonthNoRecord,
			}
			byStudent[p.StudentID] = row
		}
		row.TotalOutstanding += p.Amount

		pm, err := models.ParseMonth(p.Month)
		if err != nil {
			// Stored labels are written by the generator and should always
			// parse; skip rather than fail the whole report.
			log.Printf("Skipping payment %s with unparseable month %q", p.ID, p.Month)
			continue
		}
		monthsByStudent[p.StudentID] = append(monthsByStudent[p.StudentID], pm)
		if curLabel != "" && p.Month == curLabel {
			currentPaymentID[p.StudentID] = p.ID
		}
	}

	for id, row := range byStudent {
		ms := monthsByStudent[id]
		sort.Slice(ms, func(i, j int) bool { return ms[i].Before(ms[j]) })
		labels := make([]string, len(ms))
		for i, m := range ms {
			labels[i] = m.String()
		}
		row.UnpaidMonths = labels
	}

	if curLabel != "" && len(byStudent) > 0 {
		current, err := s.store.ListPaymentDetails(ctx, curLabel)
		if err != nil {
			return nil, storeErr("list current month payments", err)
		}
		statusByStudent := make(map[string]models.PaymentStatus, len(current))
		for _, p := range current {
			statusByStudent[p.StudentID] = p.Status
		}
		for id, row := range byStudent {
			switch statusByStudent[id] {
			case models.PaymentPaid:
				row.CurrentMonthStatus = models.CurrentMonthPaid
			case models.PaymentUnpaid:
				row.CurrentMonthStatus = models.CurrentMonthUnpaid
				row.CurrentMonthPaymentID = currentPaymentID[id]
			}
		}
	}

	result := make([]models.StudentOutstandingBalance, 0, len(byStudent))
	for _, row := range byStudent {
		result = append(result, *row)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StudentID < result[j].StudentID })
	return result, nil
}

// refreshSummary recomputes and upserts the finance summary for one class and
// month from the payments currently on record.
func refreshSummary(ctx context.Context, tx Store, classID, month string) error {
	payments, err := tx.ListClassPayments(ctx, classID, month)
	if err != nil {
		return storeErr("list class payments", err)
	}

	summary := &models.FinanceSummary{
		ClassID: classID,
		Month:   month,
		Status:  models.SummaryPending,
	}
	for _, p := range payments {
		summary.TotalExpected += p.Amount
		if p.Status == models.PaymentPaid {
			summary.TotalPaid += p.Amount
		}
	}
	summary.Balance = summary.TotalExpected - summary.TotalPaid
	if len(payments) > 0 && summary.Balance == 0 {
		summary.Status = models.SummaryCompleted
	}

	if err := tx.UpsertFinanceSummary(ctx, summary); err != nil {
		return storeErr("upsert finance summary", err)
	}
	return nil
}

// normalizeOptionalMonth validates and canonicalizes a month filter, keeping
// "" as the all-months sentinel.
func normalizeOptionalMonth(month string) (string, error) {
	if month == "" {
		return "", nil
	}
	m, err := models.ParseMonth(month)
	if err != nil {
		return "", &ValidationError{Field: "month", Message: err.Error()}
	}
	return m.String(), nil
}
