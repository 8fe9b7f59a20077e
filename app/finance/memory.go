package finance

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Hassan-Macow/machad-darul-waxyi/app/models"
)

// MemoryStore is an in-memory Store. It backs the test suite and serves as a
// reference implementation of the Store contract. Every instance is fully
// isolated; nothing is shared process-wide.
type MemoryStore struct {
	mu   sync.Mutex
	data *memData
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: newMemData()}
}

// PutParent stores a parent, assigning an id when absent.
func (m *MemoryStore) PutParent(p models.Parent) models.Parent {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	m.data.parents[p.ID] = p
	return p
}

// PutClass stores a class, assigning an id when absent.
func (m *MemoryStore) PutClass(c models.Class) models.Class {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	m.data.classes[c.ID] = c
	return c
}

// PutStudent stores a student, assigning an id when absent.
func (m *MemoryStore) PutStudent(s models.Student) models.Student {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	m.data.students[s.ID] = s
	return s
}

func (m *MemoryStore) ListActiveStudents(ctx context.Context) ([]models.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.listActiveStudents()
}

func (m *MemoryStore) CreatePayment(ctx context.Context, p *models.Payment) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.createPayment(p)
}

func (m *MemoryStore) GetPaymentDetails(ctx context.Context, id string) (*models.PaymentDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.getPaymentDetails(id)
}

func (m *MemoryStore) SetPaymentStatus(ctx context.Context, id string, status models.PaymentStatus, paymentDate *time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.setPaymentStatus(id, status, paymentDate)
}

func (m *MemoryStore) ListPaymentDetails(ctx context.Context, month string) ([]models.PaymentDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.listPaymentDetails(month)
}

func (m *MemoryStore) ListUnpaidPaymentDetails(ctx context.Context) ([]models.PaymentDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.listUnpaidPaymentDetails()
}

func (m *MemoryStore) ListClassPayments(ctx context.Context, classID, month string) ([]models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.listClassPayments(classID, month)
}

func (m *MemoryStore) UpsertFinanceSummary(ctx context.Context, s *models.FinanceSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.upsertFinanceSummary(s)
}

func (m *MemoryStore) ListFinanceSummaries(ctx context.Context, month string) ([]models.FinanceSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.listFinanceSummaries(month)
}

// WithinTx runs fn against a snapshot of the store and swaps it in only when
// fn succeeds, so a failed run leaves no partial writes behind.
func (m *MemoryStore) WithinTx(ctx context.Context, fn func(Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot := m.data.clone()
	if err := fn(&memTx{d: snapshot}); err != nil {
		return err
	}
	m.data = snapshot
	return nil
}

// memTx exposes a memData as a Store without locking; the enclosing
// MemoryStore holds the lock for the whole transaction.
type memTx struct {
	d *memData
}

var _ Store = (*memTx)(nil)

func (t *memTx) ListActiveStudents(ctx context.Context) ([]models.Student, error) {
	return t.d.listActiveStudents()
}

func (t *memTx) CreatePayment(ctx context.Context, p *models.Payment) (bool, error) {
	return t.d.createPayment(p)
}

func (t *memTx) GetPaymentDetails(ctx context.Context, id string) (*models.PaymentDetails, error) {
	return t.d.getPaymentDetails(id)
}

func (t *memTx) SetPaymentStatus(ctx context.Context, id string, status models.PaymentStatus, paymentDate *time.Time) error {
	return t.d.setPaymentStatus(id, status, paymentDate)
}

func (t *memTx) ListPaymentDetails(ctx context.Context, month string) ([]models.PaymentDetails, error) {
	return t.d.listPaymentDetails(month)
}

func (t *memTx) ListUnpaidPaymentDetails(ctx context.Context) ([]models.PaymentDetails, error) {
	return t.d.listUnpaidPaymentDetails()
}

func (t *memTx) ListClassPayments(ctx context.Context, classID, month string) ([]models.Payment, error) {
	return t.d.listClassPayments(classID, month)
}

func (t *memTx) UpsertFinanceSummary(ctx context.Context, s *models.FinanceSummary) error {
	return t.d.upsertFinanceSummary(s)
}

func (t *memTx) ListFinanceSummaries(ctx context.Context, month string) ([]models.FinanceSummary, error) {
	return t.d.listFinanceSummaries(month)
}

func (t *memTx) WithinTx(ctx context.Context, fn func(Store) error) error {
	return fn(t)
}

type memData struct {
	parents    map[string]models.Parent
	classes    map[string]models.Class
	students   map[string]models.Student
	payments   map[string]models.Payment
	paymentKey map[string]string // studentID + "|" + month -> payment id
	summaries  map[string]models.FinanceSummary
}

func newMemData() *memData {
	return &memData{
		parents:    make(map[string]models.Parent),
		classes:    make(map[string]models.Class),
		students:   make(map[string]models.Student),
		payments:   make(map[string]models.Payment),
		paymentKey: make(map[string]string),
		summaries:  make(map[string]models.FinanceSummary),
	}
}

func (d *memData) clone() *memData {
	c := newMemData()
	for k, v := range d.parents {
		c.parents[k] = v
	}
	for k, v := range d.classes {
		c.classes[k] = v
	}
	for k, v := range d.students {
		c.students[k] = v
	}
	for k, v := range d.payments {
		c.payments[k] = v
	}
	for k, v := range d.paymentKey {
		c.paymentKey[k] = v
	}
	for k, v := range d.summaries {
		c.summaries[k] = v
	}
	return c
}

func (d *memData) listActiveStudents() ([]models.Student, error) {
	var out []models.Student
	for _, s := range d.students {
		if s.Status == models.StudentActive {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (d *memData) createPayment(p *models.Payment) (bool, error) {
	key := p.StudentID + "|" + p.Month
	if _, exists := d.paymentKey[key]; exists {
		return false, nil
	}
	stored := *p
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	d.payments[stored.ID] = stored
	d.paymentKey[key] = stored.ID
	p.ID = stored.ID
	return true, nil
}

func (d *memData) details(p models.Payment) models.PaymentDetails {
	det := models.PaymentDetails{
		ID:          p.ID,
		StudentID:   p.StudentID,
		Month:       p.Month,
		Amount:      p.Amount,
		Status:      p.Status,
		PaymentDate: p.PaymentDate,
	}
	if s, ok := d.students[p.StudentID]; ok {
		det.StudentName = s.Name
		det.StudentFee = s.Fee
		det.StudentDiscount = s.Discount
		det.ClassID = s.ClassID
		if c, ok := d.classes[s.ClassID]; ok {
			det.ClassName = c.Name
		}
		if par, ok := d.parents[s.ParentID]; ok {
			det.ParentName = par.Name
			det.ParentPhone = par.Phone
		}
	}
	return det
}

func (d *memData) getPaymentDetails(id string) (*models.PaymentDetails, error) {
	p, ok := d.payments[id]
	if !ok {
		return nil, ErrNotFound
	}
	det := d.details(p)
	return &det, nil
}

func (d *memData) setPaymentStatus(id string, status models.PaymentStatus, paymentDate *time.Time) error {
	p, ok := d.payments[id]
	if !ok {
		return ErrNotFound
	}
	p.Status = status
	p.PaymentDate = paymentDate
	d.payments[id] = p
	return nil
}

func (d *memData) listPaymentDetails(month string) ([]models.PaymentDetails, error) {
	var out []models.PaymentDetails
	for _, p := range d.payments {
		if month != "" && p.Month != month {
			continue
		}
		out = append(out, d.details(p))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StudentID != out[j].StudentID {
			return out[i].StudentID < out[j].StudentID
		}
		return out[i].Month < out[j].Month
	})
	return out, nil
}

func (d *memData) listUnpaidPaymentDetails() ([]models.PaymentDetails, error) {
	all, _ := d.listPaymentDetails("")
	out := all[:0:0]
	for _, p := range all {
		if p.Status == models.PaymentUnpaid {
			out = append(out, p)
		}
	}
	return out, nil
}

func (d *memData) listClassPayments(classID, month string) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range d.payments {
		if p.Month != month {
			continue
		}
		if s, ok := d.students[p.StudentID]; !ok || s.ClassID != classID {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StudentID < out[j].StudentID })
	return out, nil
}

func (d *memData) upsertFinanceSummary(s *models.FinanceSummary) error {
	key := s.ClassID + "|" + s.Month
	if existing, ok := d.summaries[key]; ok {
		s.ID = existing.ID
		s.CreatedAt = existing.CreatedAt
	} else {
		s.ID = uuid.NewString()
		s.CreatedAt = time.Now()
	}
	d.summaries[key] = *s
	return nil
}

func (d *memData) listFinanceSummaries(month string) ([]models.FinanceSummary, error) {
	var out []models.FinanceSummary
	for _, s := range d.summaries {
		if month != "" && s.Month != month {
			continue
		}
		if c, ok := d.classes[s.ClassID]; ok {
			cc := c
			s.Class = &cc
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ClassID != out[j].ClassID {
			return out[i].ClassID < out[j].ClassID
		}
		return out[i].Month < out[j].Month
	})
	return out, nil
}
