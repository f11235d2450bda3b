package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bpofinance/bpofinance/internal/domain"
)

// ReceivableStore is the persistence boundary for receivables
type ReceivableStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Receivable, error)
	FindFiltered(ctx context.Context, filter domain.ReceivableFilter) ([]domain.Receivable, error)
	Create(ctx context.Context, rec *domain.Receivable) error
	Update(ctx context.Context, rec *domain.Receivable) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

// ReceivableInput carries the caller-supplied fields for create and update
type ReceivableInput struct {
	Description string
	Customer    string
	Amount      decimal.Decimal
	DueDate     time.Time
	Category    *string
}

// ReceivableService handles receivable business logic
type ReceivableService struct {
	store ReceivableStore
	clock Clock
}

// NewReceivableService creates a new receivable service
func NewReceivableService(store ReceivableStore, clock Clock) *ReceivableService {
	return &ReceivableService{store: store, clock: clock}
}

// List returns receivables matching the filter, with overdue status derived
// on every returned record
func (s *ReceivableService) List(ctx context.Context, filter domain.ReceivableFilter) ([]domain.Receivable, error) {
	receivables, err := s.store.FindFiltered(ctx, filter)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	for i := range receivables {
		receivables[i].Status = receivables[i].EffectiveStatus(now)
	}

	return receivables, nil
}

// FindByID returns a single receivable with overdue status derived
func (s *ReceivableService) FindByID(ctx context.Context, id uuid.UUID) (*domain.Receivable, error) {
	rec, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}

	rec.Status = rec.EffectiveStatus(s.clock.Now())
	return rec, nil
}

// Create stores a new receivable. Status is forced to PENDING and the
// received timestamp left unset regardless of input.
func (s *ReceivableService) Create(ctx context.Context, in ReceivableInput) (*domain.Receivable, error) {
	rec := &domain.Receivable{
		ID:          uuid.New(),
		Description: in.Description,
		Customer:    in.Customer,
		Amount:      in.Amount,
		DueDate:     domain.DateOnly(in.DueDate),
		Status:      domain.ReceivableStatusPending,
		Category:    in.Category,
		CreatedAt:   s.clock.Now().UTC(),
	}

	if err := s.store.Create(ctx, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

// Update overwrites the mutable fields of an existing receivable and
// refreshes updatedAt. Status and receivedAt are untouched.
func (s *ReceivableService) Update(ctx context.Context, id uuid.UUID, in ReceivableInput) (*domain.Receivable, error) {
	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	now := s.clock.Now().UTC()
	existing.Description = in.Description
	existing.Customer = in.Customer
	existing.Amount = in.Amount
	existing.DueDate = domain.DateOnly(in.DueDate)
	existing.Category = in.Category
	existing.UpdatedAt = &now

	if err := s.store.Update(ctx, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

// Delete removes a receivable by ID
func (s *ReceivableService) Delete(ctx context.Context, id uuid.UUID) error {
	rows, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// Receive transitions a PENDING receivable to RECEIVED, stamping receivedAt
// and updatedAt. A receivable that already left PENDING is rejected.
func (s *ReceivableService) Receive(ctx context.Context, id uuid.UUID) (*domain.Receivable, error) {
	rec, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	if rec.Status == domain.ReceivableStatusReceived {
		return nil, ErrAlreadySettled
	}

	now := s.clock.Now().UTC()
	rec.Status = domain.ReceivableStatusReceived
	rec.ReceivedAt = &now
	rec.UpdatedAt = &now

	if err := s.store.Update(ctx, rec); err != nil {
		return nil, err
	}

	return rec, nil
}
