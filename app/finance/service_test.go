package finance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Hassan-Macow/machad-darul-waxyi/app/models"
)

type fixture struct {
	store *MemoryStore
	svc   *Service

	class  models.Class
	parent models.Parent
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := NewMemoryStore()
	svc := NewService(store)
	svc.now = func() time.Time { return time.Date(2025, time.October, 15, 12, 0, 0, 0, time.UTC) }

	return &fixture{
		store:  store,
		svc:    svc,
		class:  store.PutClass(models.Class{Name: "Grade 1"}),
		parent: store.PutParent(models.Parent{Name: "Amina Hassan", Phone: "0700123456"}),
	}
}

func (f *fixture) addStudent(t *testing.T, name string, fee, discount float64, status models.StudentStatus) models.Student {
	t.Helper()
	return f.store.PutStudent(models.Student{
		Name:     name,
		ParentID: f.parent.ID,
		ClassID:  f.class.ID,
		Fee:      fee,
		Discount: discount,
		Status:   status,
	})
}

func TestGenerateMonthlyFeesIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.addStudent(t, "Yusuf", 60, 10, models.StudentActive)
	f.addStudent(t, "Khadija", 55, 0, models.StudentActive)

	ctx := context.Background()
	first, err := f.svc.GenerateMonthlyFees(ctx, "October 2025")
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.PaymentsCreated != 2 {
		t.Errorf("first run created %d payments, want 2", first.PaymentsCreated)
	}
	if first.FinanceRecordsUpdated != 1 {
		t.Errorf("first run updated %d summaries, want 1", first.FinanceRecordsUpdated)
	}
	if first.Month != "October 2025" {
		t.Errorf("first run month = %q, want %q", first.Month, "October 2025")
	}

	second, err := f.svc.GenerateMonthlyFees(ctx, "October 2025")
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.PaymentsCreated != 0 {
		t.Errorf("second run created %d payments, want 0", second.PaymentsCreated)
	}
	if second.FinanceRecordsUpdated != 0 {
		t.Errorf("second run updated %d summaries, want 0", second.FinanceRecordsUpdated)
	}

	payments, err := f.svc.GetPayments(ctx, "October 2025")
	if err != nil {
		t.Fatalf("GetPayments: %v", err)
	}
	if len(payments) != 2 {
		t.Errorf("ledger holds %d payments, want 2", len(payments))
	}
}

func TestGenerateMonthlyFeesSnapshotsAmount(t *testing.T) {
	f := newFixture(t)
	student := f.addStudent(t, "Yusuf", 60, 10, models.StudentActive)

	ctx := context.Background()
	if _, err := f.svc.GenerateMonthlyFees(ctx, "October 2025"); err != nil {
		t.Fatal(err)
	}

	// Raising the fee afterwards must not touch the existing payment.
	student.Fee = 90
	f.store.PutStudent(student)

	payments, err := f.svc.GetPayments(ctx, "October 2025")
	if err != nil {
		t.Fatal(err)
	}
	if len(payments) != 1 {
		t.Fatalf("got %d payments, want 1", len(payments))
	}
	if payments[0].Amount != 50 {
		t.Errorf("payment amount = %v, want 50 (fee 60 - discount 10 at generation time)", payments[0].Amount)
	}
	if payments[0].Status != models.PaymentUnpaid {
		t.Errorf("new payment status = %q, want unpaid", payments[0].Status)
	}
	if payments[0].PaymentDate != nil {
		t.Error("new payment should have no payment date")
	}
}

func TestGenerateMonthlyFeesSkipsInactiveStudents(t *testing.T) {
	f := newFixture(t)
	f.addStudent(t, "Active", 60, 0, models.StudentActive)
	f.addStudent(t, "Left school", 60, 0, models.StudentInactive)

	ctx := context.Background()
	res, err := f.svc.GenerateMonthlyFees(ctx, "October 2025")
	if err != nil {
		t.Fatal(err)
	}
	if res.PaymentsCreated != 1 {
		t.Errorf("created %d payments, want 1 (inactive student excluded)", res.PaymentsCreated)
	}
}

func TestGenerateMonthlyFeesClampsNegativeAmounts(t *testing.T) {
	f := newFixture(t)
	f.addStudent(t, "Over-discounted", 40, 60, models.StudentActive)

	ctx := context.Background()
	if _, err := f.svc.GenerateMonthlyFees(ctx, "October 2025"); err != nil {
		t.Fatal(err)
	}

	payments, err := f.svc.GetPayments(ctx, "October 2025")
	if err != nil {
		t.Fatal(err)
	}
	if len(payments) != 1 || payments[0].Amount != 0 {
		t.Errorf("got %+v, want one payment of amount 0", payments)
	}
}

func TestGenerateMonthlyFeesRejectsBadMonth(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.GenerateMonthlyFees(context.Background(), "Octember 2025")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("got %v, want ValidationError", err)
	}
}

func TestFinanceSummaryAggregation(t *testing.T) {
	f := newFixture(t)
	a := f.addStudent(t, "A", 50, 0, models.StudentActive)
	f.addStudent(t, "B", 55, 0, models.StudentActive)

	ctx := context.Background()
	if _, err := f.svc.GenerateMonthlyFees(ctx, "October 2025"); err != nil {
		t.Fatal(err)
	}

	payments, err := f.svc.GetPayments(ctx, "October 2025")
	if err != nil {
		t.Fatal(err)
	}
	var paymentA, paymentB models.PaymentDetails
	for _, p := range payments {
		if p.StudentID == a.ID {
			paymentA = p
		} else {
			paymentB = p
		}
	}

	if _, err := f.svc.MarkPaymentStatus(ctx, paymentA.ID, models.PaymentPaid); err != nil {
		t.Fatal(err)
	}

	summaries, err := f.svc.GetFinanceSummary(ctx, "October 2025")
	if err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 1 {
		t.Fatalf("got %d summaries, want 1", len(summaries))
	}
	s := summaries[0]
	if s.TotalExpected != 105 || s.TotalPaid != 50 || s.Balance != 55 {
		t.Errorf("summary = expected %v paid %v balance %v, want 105/50/55",
			s.TotalExpected, s.TotalPaid, s.Balance)
	}
	if s.Status != models.SummaryPending {
		t.Errorf("summary status = %q, want pending", s.Status)
	}
	if s.Class == nil || s.Class.Name != "Grade 1" {
		t.Errorf("summary class annotation = %+v, want Grade 1", s.Class)
	}

	if _, err := f.svc.MarkPaymentStatus(ctx, paymentB.ID, models.PaymentPaid); err != nil {
		t.Fatal(err)
	}
	summaries, err = f.svc.GetFinanceSummary(ctx, "October 2025")
	if err != nil {
		t.Fatal(err)
	}
	s = summaries[0]
	if s.Balance != 0 || s.Status != models.SummaryCompleted {
		t.Errorf("after full payment: balance %v status %q, want 0/completed", s.Balance, s.Status)
	}
}

func TestMarkPaymentStatusRoundTrip(t *testing.T) {
	f := newFixture(t)
	f.addStudent(t, "A", 50, 0, models.StudentActive)

	ctx := context.Background()
	if _, err := f.svc.GenerateMonthlyFees(ctx, "October 2025"); err != nil {
		t.Fatal(err)
	}
	payments, _ := f.svc.GetPayments(ctx, "October 2025")
	id := payments[0].ID

	res, err := f.svc.MarkPaymentStatus(ctx, id, models.PaymentPaid)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Success || res.PaymentID != id || res.Status != "paid" {
		t.Errorf("unexpected result %+v", res)
	}

	payments, _ = f.svc.GetPayments(ctx, "October 2025")
	if payments[0].Status != models.PaymentPaid {
		t.Fatalf("status = %q, want paid", payments[0].Status)
	}
	if payments[0].PaymentDate == nil {
		t.Fatal("payment date should be set when marked paid")
	}

	if _, err := f.svc.MarkPaymentStatus(ctx, id, models.PaymentUnpaid); err != nil {
		t.Fatal(err)
	}
	payments, _ = f.svc.GetPayments(ctx, "October 2025")
	if payments[0].Status != models.PaymentUnpaid {
		t.Fatalf("status = %q, want unpaid after reversal", payments[0].Status)
	}
	if payments[0].PaymentDate != nil {
		t.Error("payment date should be cleared when marked unpaid")
	}

	// The summary must reflect the reversal.
	summaries, _ := f.svc.GetFinanceSummary(ctx, "October 2025")
	if summaries[0].Balance != 50 || summaries[0].Status != models.SummaryPending {
		t.Errorf("summary after reversal: balance %v status %q, want 50/pending",
			summaries[0].Balance, summaries[0].Status)
	}
}

func TestMarkPaymentStatusNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.MarkPaymentStatus(context.Background(), "no-such-payment", models.PaymentPaid)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestMarkPaymentStatusRejectsUnknownStatus(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.MarkPaymentStatus(context.Background(), "some-id", models.PaymentStatus("refunded"))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("got %v, want ValidationError", err)
	}
}

func TestStudentOutstandingBalances(t *testing.T) {
	f := newFixture(t)
	student := f.addStudent(t, "Yusuf", 60, 0, models.StudentActive)

	ctx := context.Background()

	// January unpaid (40), March unpaid (45), February paid.
	amounts := map[string]float64{"January 2025": 40, "February 2025": 60, "March 2025": 45}
	for month, amount := range amounts {
		p := &models.Payment{StudentID: student.ID, Month: month, Amount: amount, Status: models.PaymentUnpaid}
		if _, err := f.store.CreatePayment(ctx, p); err != nil {
			t.Fatal(err)
		}
		if month == "February 2025" {
			now := time.Now()
			if err := f.store.SetPaymentStatus(ctx, p.ID, models.PaymentPaid, &now); err != nil {
				t.Fatal(err)
			}
		}
	}

	rows, err := f.svc.GetStudentOutstandingBalances(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	row := rows[0]
	if row.TotalOutstanding != 85 {
		t.Errorf("total outstanding = %v, want 85", row.TotalOutstanding)
	}
	want := []string{"January 2025", "March 2025"}
	if len(row.UnpaidMonths) != 2 || row.UnpaidMonths[0] != want[0] || row.UnpaidMonths[1] != want[1] {
		t.Errorf("unpaid months = %v, want %v", row.UnpaidMonths, want)
	}
	if row.CurrentMonthStatus != models.CurrentMonthNoRecord {
		t.Errorf("current month status = %q, want no_record without a reference month", row.CurrentMonthStatus)
	}
	if row.StudentName != "Yusuf" || row.ParentName != "Amina Hassan" || row.ClassName != "Grade 1" {
		t.Errorf("display fields not populated: %+v", row)
	}
}

func TestStudentOutstandingBalancesSortsMonthsChronologically(t *testing.T) {
	f := newFixture(t)
	student := f.addStudent(t, "Yusuf", 60, 0, models.StudentActive)

	ctx := context.Background()
	// Lexical sort would put "April 2026" before "December 2025".
	for _, month := range []string{"April 2026", "December 2025", "November 2025"} {
		p := &models.Payment{StudentID: student.ID, Month: month, Amount: 10, Status: models.PaymentUnpaid}
		if _, err := f.store.CreatePayment(ctx, p); err != nil {
			t.Fatal(err)
		}
	}

	rows, err := f.svc.GetStudentOutstandingBalances(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"November 2025", "December 2025", "April 2026"}
	got := rows[0].UnpaidMonths
	if len(got) != len(want) {
		t.Fatalf("unpaid months = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unpaid months = %v, want %v", got, want)
		}
	}
}

func TestStudentOutstandingBalancesCurrentMonthStates(t *testing.T) {
	f := newFixture(t)
	unpaidNow := f.addStudent(t, "Unpaid now", 60, 0, models.StudentActive)
	paidNow := f.addStudent(t, "Paid now", 60, 0, models.StudentActive)
	noRecord := f.addStudent(t, "No record", 60, 0, models.StudentActive)

	ctx := context.Background()
	addPayment := func(studentID, month string, status models.PaymentStatus) string {
		t.Helper()
		p := &models.Payment{StudentID: studentID, Month: month, Amount: 60, Status: models.PaymentUnpaid}
		if _, err := f.store.CreatePayment(ctx, p); err != nil {
			t.Fatal(err)
		}
		if status == models.PaymentPaid {
			now := time.Now()
			if err := f.store.SetPaymentStatus(ctx, p.ID, status, &now); err != nil {
				t.Fatal(err)
			}
		}
		return p.ID
	}

	// All three owe September; their October standing differs.
	addPayment(unpaidNow.ID, "September 2025", models.PaymentUnpaid)
	addPayment(paidNow.ID, "September 2025", models.PaymentUnpaid)
	addPayment(noRecord.ID, "September 2025", models.PaymentUnpaid)
	currentID := addPayment(unpaidNow.ID, "October 2025", models.PaymentUnpaid)
	addPayment(paidNow.ID, "October 2025", models.PaymentPaid)

	rows, err := f.svc.GetStudentOutstandingBalances(ctx, "October 2025")
	if err != nil {
		t.Fatal(err)
	}
	byID := make(map[string]models.StudentOutstandingBalance)
	for _, r := range rows {
		byID[r.StudentID] = r
	}

	if r := byID[unpaidNow.ID]; r.CurrentMonthStatus != models.CurrentMonthUnpaid || r.CurrentMonthPaymentID != currentID {
		t.Errorf("unpaid-now row = %+v, want unpaid with payment id %s", r, currentID)
	}
	if r := byID[paidNow.ID]; r.CurrentMonthStatus != models.CurrentMonthPaid {
		t.Errorf("paid-now row status = %q, want paid", r.CurrentMonthStatus)
	}
	if r := byID[noRecord.ID]; r.CurrentMonthStatus != models.CurrentMonthNoRecord {
		t.Errorf("no-record row status = %q, want no_record", r.CurrentMonthStatus)
	}
}

func TestStudentOutstandingBalancesOrderedByStudentID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, name := range []string{"C", "A", "B"} {
		s := f.addStudent(t, name, 60, 0, models.StudentActive)
		p := &models.Payment{StudentID: s.ID, Month: "September 2025", Amount: 60, Status: models.PaymentUnpaid}
		if _, err := f.store.CreatePayment(ctx, p); err != nil {
			t.Fatal(err)
		}
	}

	rows, err := f.svc.GetStudentOutstandingBalances(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(rows); i++ {
		if rows[i-1].StudentID > rows[i].StudentID {
			t.Fatalf("rows not sorted by student id: %s > %s", rows[i-1].StudentID, rows[i].StudentID)
		}
	}
}

func TestGetPaymentsAcrossMonths(t *testing.T) {
	f := newFixture(t)
	f.addStudent(t, "A", 50, 0, models.StudentActive)

	ctx := context.Background()
	for _, month := range []string{"September 2025", "October 2025"} {
		if _, err := f.svc.GenerateMonthlyFees(ctx, month); err != nil {
			t.Fatal(err)
		}
	}

	all, err := f.svc.GetPayments(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("all months: got %d payments, want 2", len(all))
	}

	one, err := f.svc.GetPayments(ctx, "September 2025")
	if err != nil {
		t.Fatal(err)
	}
	if len(one) != 1 || one[0].Month != "September 2025" {
		t.Errorf("filtered: got %+v, want the September payment only", one)
	}
}
