package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceivableStatus represents the lifecycle status of a receivable
type ReceivableStatus string

const (
	ReceivableStatusPending  ReceivableStatus = "PENDING"
	ReceivableStatusReceived ReceivableStatus = "RECEIVED"

	// ReceivableStatusOverdue is a read-time view over PENDING items past
	// their due date. It is never written to the store.
	ReceivableStatusOverdue ReceivableStatus = "OVERDUE"
)

// ParseReceivableStatus parses a status name into a ReceivableStatus
func ParseReceivableStatus(s string) (ReceivableStatus, error) {
	switch ReceivableStatus(s) {
	case ReceivableStatusPending, ReceivableStatusReceived, ReceivableStatusOverdue:
		return ReceivableStatus(s), nil
	}
	return "", fmt.Errorf("unknown receivable status: %q", s)
}

// Receivable represents money owed to the operator by a customer
type Receivable struct {
	ID          uuid.UUID        `json:"id" db:"id"`
	Description string           `json:"description" db:"description"`
	Customer    string           `json:"customer" db:"customer"`
	Amount      decimal.Decimal  `json:"amount" db:"amount"`
	DueDate     time.Time        `json:"dueDate" db:"due_date"`
	Status      ReceivableStatus `json:"status" db:"status"`
	Category    *string          `json:"category" db:"category"`
	ReceivedAt  *time.Time       `json:"receivedAt,omitempty" db:"received_at"`
	CreatedAt   time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt   *time.Time       `json:"updatedAt,omitempty" db:"updated_at"`
}

// EffectiveStatus returns the status as presented to callers: a PENDING
// receivable strictly past its due date reads as OVERDUE.
func (r *Receivable) EffectiveStatus(today time.Time) ReceivableStatus {
	if r.Status == ReceivableStatusPending && r.DueDate.Before(DateOnly(today)) {
		return ReceivableStatusOverdue
	}
	return r.Status
}
