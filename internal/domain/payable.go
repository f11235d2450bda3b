package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayableStatus represents the lifecycle status of a payable
type PayableStatus string

const (
	PayableStatusPending PayableStatus = "PENDING"
	PayableStatusPaid    PayableStatus = "PAID"

	// PayableStatusOverdue is a read-time view over PENDING items past their
	// due date. It is never written to the store.
	PayableStatusOverdue PayableStatus = "OVERDUE"
)

// ParsePayableStatus parses a status name into a PayableStatus
func ParsePayableStatus(s string) (PayableStatus, error) {
	switch PayableStatus(s) {
	case PayableStatusPending, PayableStatusPaid, PayableStatusOverdue:
		return PayableStatus(s), nil
	}
	return "", fmt.Errorf("unknown payable status: %q", s)
}

// Payable represents money owed by the operator to a vendor
type Payable struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	Description string          `json:"description" db:"description"`
	Vendor      string          `json:"vendor" db:"vendor"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	DueDate     time.Time       `json:"dueDate" db:"due_date"`
	Status      PayableStatus   `json:"status" db:"status"`
	Category    *string         `json:"category" db:"category"`
	PaidAt      *time.Time      `json:"paidAt,omitempty" db:"paid_at"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   *time.Time      `json:"updatedAt,omitempty" db:"updated_at"`
}

// EffectiveStatus returns the status as presented to callers: a PENDING
// payable strictly past its due date reads as OVERDUE. The stored status is
// not changed; two reads on either side of midnight may disagree.
func (p *Payable) EffectiveStatus(today time.Time) PayableStatus {
	if p.Status == PayableStatusPending && p.DueDate.Before(DateOnly(today)) {
		return PayableStatusOverdue
	}
	return p.Status
}

// DateOnly truncates a timestamp to its calendar date in UTC
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
