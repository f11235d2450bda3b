package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bpofinance/bpofinance/internal/domain"
)

// fixedClock pins "now" so overdue derivation is deterministic
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// fakePayableStore is an in-memory PayableStore
type fakePayableStore struct {
	records map[uuid.UUID]*domain.Payable
	updates int
}

func newFakePayableStore() *fakePayableStore {
	return &fakePayableStore{records: make(map[uuid.UUID]*domain.Payable)}
}

func (s *fakePayableStore) FindByID(_ context.Context, id uuid.UUID) (*domain.Payable, error) {
	p, ok := s.records[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (s *fakePayableStore) FindFiltered(_ context.Context, filter domain.PayableFilter) ([]domain.Payable, error) {
	var out []domain.Payable
	for _, p := range s.records {
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (s *fakePayableStore) Create(_ context.Context, p *domain.Payable) error {
	copied := *p
	s.records[p.ID] = &copied
	return nil
}

func (s *fakePayableStore) Update(_ context.Context, p *domain.Payable) error {
	copied := *p
	s.records[p.ID] = &copied
	s.updates++
	return nil
}

func (s *fakePayableStore) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	if _, ok := s.records[id]; !ok {
		return 0, nil
	}
	delete(s.records, id)
	return 1, nil
}

var testNow = time.Date(2026, 6, 10, 15, 0, 0, 0, time.UTC)

func testDate(offset int) time.Time {
	return time.Date(2026, 6, 10+offset, 0, 0, 0, 0, time.UTC)
}

func newTestPayableService(store *fakePayableStore) *PayableService {
	return NewPayableService(store, fixedClock{now: testNow})
}

func seedPayable(store *fakePayableStore, status domain.PayableStatus, dueDate time.Time) uuid.UUID {
	id := uuid.New()
	store.records[id] = &domain.Payable{
		ID:          id,
		Description: "x",
		Vendor:      "V",
		Amount:      decimal.RequireFromString("10.00"),
		DueDate:     dueDate,
		Status:      status,
		CreatedAt:   testNow.Add(-48 * time.Hour),
	}
	return id
}

func TestPayableService_List_DerivesOverdue(t *testing.T) {
	store := newFakePayableStore()
	seedPayable(store, domain.PayableStatusPending, testDate(-2))
	svc := newTestPayableService(store)

	result, err := svc.List(context.Background(), domain.PayableFilter{})
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("List() returned %d records, want 1", len(result))
	}
	if result[0].Status != domain.PayableStatusOverdue {
		t.Errorf("status = %s, want OVERDUE", result[0].Status)
	}

	// The stored status is not changed by the read
	for _, p := range store.records {
		if p.Status != domain.PayableStatusPending {
			t.Errorf("stored status = %s, want PENDING", p.Status)
		}
	}
}

func TestPayableService_List_PaidNeverOverdue(t *testing.T) {
	store := newFakePayableStore()
	seedPayable(store, domain.PayableStatusPaid, testDate(-30))
	svc := newTestPayableService(store)

	result, err := svc.List(context.Background(), domain.PayableFilter{})
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if result[0].Status != domain.PayableStatusPaid {
		t.Errorf("status = %s, want PAID", result[0].Status)
	}
}

func TestPayableService_FindByID(t *testing.T) {
	store := newFakePayableStore()
	id := seedPayable(store, domain.PayableStatusPending, testDate(-1))
	svc := newTestPayableService(store)

	p, err := svc.FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("FindByID() error: %v", err)
	}
	if p.Status != domain.PayableStatusOverdue {
		t.Errorf("status = %s, want OVERDUE", p.Status)
	}
}

func TestPayableService_FindByID_NotFound(t *testing.T) {
	svc := newTestPayableService(newFakePayableStore())

	_, err := svc.FindByID(context.Background(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("FindByID() error = %v, want ErrNotFound", err)
	}
}

func TestPayableService_Create_ForcesPending(t *testing.T) {
	store := newFakePayableStore()
	svc := newTestPayableService(store)

	category := "Software"
	p, err := svc.Create(context.Background(), PayableInput{
		Description: "Compra X",
		Vendor:      "Fornecedor A",
		Amount:      decimal.RequireFromString("150.50"),
		DueDate:     testDate(5),
		Category:    &category,
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	if p.ID == uuid.Nil {
		t.Error("Create() did not assign an ID")
	}
	if p.Status != domain.PayableStatusPending {
		t.Errorf("status = %s, want PENDING", p.Status)
	}
	if p.PaidAt != nil {
		t.Errorf("paidAt = %v, want nil", p.PaidAt)
	}
	if p.UpdatedAt != nil {
		t.Errorf("updatedAt = %v, want nil", p.UpdatedAt)
	}
	if p.CreatedAt.IsZero() {
		t.Error("createdAt not set")
	}
}

func TestPayableService_Update(t *testing.T) {
	store := newFakePayableStore()
	id := seedPayable(store, domain.PayableStatusPending, testDate(1))
	svc := newTestPayableService(store)

	category := "CatX"
	p, err := svc.Update(context.Background(), id, PayableInput{
		Description: "new desc",
		Vendor:      "V2",
		Amount:      decimal.RequireFromString("50.00"),
		DueDate:     testDate(10),
		Category:    &category,
	})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	if p.Description != "new desc" || p.Vendor != "V2" {
		t.Errorf("fields not overwritten: %+v", p)
	}
	if !p.Amount.Equal(decimal.RequireFromString("50.00")) {
		t.Errorf("amount = %s, want 50.00", p.Amount)
	}
	if p.UpdatedAt == nil {
		t.Error("updatedAt not refreshed")
	}
	if p.Status != domain.PayableStatusPending {
		t.Errorf("update touched status: %s", p.Status)
	}
	if p.PaidAt != nil {
		t.Errorf("update touched paidAt: %v", p.PaidAt)
	}
}

func TestPayableService_Update_NotFound(t *testing.T) {
	store := newFakePayableStore()
	svc := newTestPayableService(store)

	_, err := svc.Update(context.Background(), uuid.New(), PayableInput{Description: "d", Vendor: "v"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
	if store.updates != 0 {
		t.Errorf("Update() wrote %d records for a missing id", store.updates)
	}
}

func TestPayableService_Delete(t *testing.T) {
	store := newFakePayableStore()
	id := seedPayable(store, domain.PayableStatusPending, testDate(1))
	svc := newTestPayableService(store)

	if err := svc.Delete(context.Background(), id); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}

	_, err := svc.FindByID(context.Background(), id)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("FindByID() after delete = %v, want ErrNotFound", err)
	}
}

func TestPayableService_Delete_NotFound(t *testing.T) {
	svc := newTestPayableService(newFakePayableStore())

	if err := svc.Delete(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}

func TestPayableService_Pay(t *testing.T) {
	store := newFakePayableStore()
	id := seedPayable(store, domain.PayableStatusPending, testDate(1))
	svc := newTestPayableService(store)

	p, err := svc.Pay(context.Background(), id)
	if err != nil {
		t.Fatalf("Pay() error: %v", err)
	}

	if p.Status != domain.PayableStatusPaid {
		t.Errorf("status = %s, want PAID", p.Status)
	}
	if p.PaidAt == nil {
		t.Error("paidAt not set")
	}
	if p.UpdatedAt == nil {
		t.Error("updatedAt not set")
	}

	stored := store.records[id]
	if stored.Status != domain.PayableStatusPaid {
		t.Errorf("stored status = %s, want PAID", stored.Status)
	}
}

func TestPayableService_Pay_NotFound(t *testing.T) {
	svc := newTestPayableService(newFakePayableStore())

	_, err := svc.Pay(context.Background(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Pay() error = %v, want ErrNotFound", err)
	}
}

func TestPayableService_Pay_AlreadyPaid(t *testing.T) {
	store := newFakePayableStore()
	id := seedPayable(store, domain.PayableStatusPaid, testDate(1))
	svc := newTestPayableService(store)

	_, err := svc.Pay(context.Background(), id)
	if !errors.Is(err, ErrAlreadySettled) {
		t.Errorf("Pay() error = %v, want ErrAlreadySettled", err)
	}
}

func TestPayableService_Pay_OverduePayableStillPayable(t *testing.T) {
	store := newFakePayableStore()
	id := seedPayable(store, domain.PayableStatusPending, testDate(-3))
	svc := newTestPayableService(store)

	p, err := svc.Pay(context.Background(), id)
	if err != nil {
		t.Fatalf("Pay() error: %v", err)
	}
	if p.Status != domain.PayableStatusPaid {
		t.Errorf("status = %s, want PAID", p.Status)
	}
}
