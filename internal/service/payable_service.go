package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bpofinance/bpofinance/internal/domain"
)

// PayableStore is the persistence boundary for payables
type PayableStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Payable, error)
	FindFiltered(ctx context.Context, filter domain.PayableFilter) ([]domain.Payable, error)
	Create(ctx context.Context, p *domain.Payable) error
	Update(ctx context.Context, p *domain.Payable) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

// PayableInput carries the caller-supplied fields for create and update.
// Status and the paid timestamp are never caller-settable.
type PayableInput struct {
	Description string
	Vendor      string
	Amount      decimal.Decimal
	DueDate     time.Time
	Category    *string
}

// PayableService handles payable business logic
type PayableService struct {
	store PayableStore
	clock Clock
}

// NewPayableService creates a new payable service
func NewPayableService(store PayableStore, clock Clock) *PayableService {
	return &PayableService{store: store, clock: clock}
}

// List returns payables matching the filter, with overdue status derived on
// every returned record
func (s *PayableService) List(ctx context.Context, filter domain.PayableFilter) ([]domain.Payable, error) {
	payables, err := s.store.FindFiltered(ctx, filter)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	for i := range payables {
		payables[i].Status = payables[i].EffectiveStatus(now)
	}

	return payables, nil
}

// FindByID returns a single payable with overdue status derived
func (s *PayableService) FindByID(ctx context.Context, id uuid.UUID) (*domain.Payable, error) {
	p, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}

	p.Status = p.EffectiveStatus(s.clock.Now())
	return p, nil
}

// Create stores a new payable. Status is forced to PENDING and the paid
// timestamp left unset regardless of input.
func (s *PayableService) Create(ctx context.Context, in PayableInput) (*domain.Payable, error) {
	p := &domain.Payable{
		ID:          uuid.New(),
		Description: in.Description,
		Vendor:      in.Vendor,
		Amount:      in.Amount,
		DueDate:     domain.DateOnly(in.DueDate),
		Status:      domain.PayableStatusPending,
		Category:    in.Category,
		CreatedAt:   s.clock.Now().UTC(),
	}

	if err := s.store.Create(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// Update overwrites the mutable fields of an existing payable and refreshes
// updatedAt. Status and paidAt are untouched.
func (s *PayableService) Update(ctx context.Context, id uuid.UUID, in PayableInput) (*domain.Payable, error) {
	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	now := s.clock.Now().UTC()
	existing.Description = in.Description
	existing.Vendor = in.Vendor
	existing.Amount = in.Amount
	existing.DueDate = domain.DateOnly(in.DueDate)
	existing.Category = in.Category
	existing.UpdatedAt = &now

	if err := s.store.Update(ctx, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

// Delete removes a payable by ID
func (s *PayableService) Delete(ctx context.Context, id uuid.UUID) error {
	rows, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// Pay transitions a PENDING payable to PAID, stamping paidAt and updatedAt.
// A payable that already left PENDING is rejected.
func (s *PayableService) Pay(ctx context.Context, id uuid.UUID) (*domain.Payable, error) {
	p, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	if p.Status == domain.PayableStatusPaid {
		return nil, ErrAlreadySettled
	}

	now := s.clock.Now().UTC()
	p.Status = domain.PayableStatusPaid
	p.PaidAt = &now
	p.UpdatedAt = &now

	if err := s.store.Update(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}
