package bpofinance

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// APIError represents a structured error returned by the API
type APIError struct {
	StatusCode int     `json:"status"`
	Label      string  `json:"error"`
	Message    *string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message != nil {
		return fmt.Sprintf("%s (status %d): %s", e.Label, e.StatusCode, *e.Message)
	}
	return fmt.Sprintf("%s (status %d)", e.Label, e.StatusCode)
}

// Payable represents an account payable record
type Payable struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Vendor      string          `json:"vendor"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     string          `json:"dueDate"`
	Status      string          `json:"status"`
	Category    *string         `json:"category"`
	PaidAt      *string         `json:"paidAt"`
}

// Receivable represents an account receivable record
type Receivable struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Customer    string          `json:"customer"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     string          `json:"dueDate"`
	Status      string          `json:"status"`
	Category    *string         `json:"category"`
	ReceivedAt  *string         `json:"receivedAt"`
}

// PayableRequest is the payload for creating or updating a payable
type PayableRequest struct {
	Description string          `json:"description"`
	Vendor      string          `json:"vendor"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     string          `json:"dueDate"`
	Category    *string         `json:"category,omitempty"`
}

// ReceivableRequest is the payload for creating or updating a receivable
type ReceivableRequest struct {
	Description string          `json:"description"`
	Customer    string          `json:"customer"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     string          `json:"dueDate"`
	Category    *string         `json:"category,omitempty"`
}

// PayableListOptions filters a payable listing. Zero-value fields are omitted.
type PayableListOptions struct {
	Status  string
	Vendor  string
	DueFrom string
	DueTo   string
}

// ReceivableListOptions filters a receivable listing. Zero-value fields are omitted.
type ReceivableListOptions struct {
	Status   string
	Customer string
	DueFrom  string
	DueTo    string
}

// RateLimitInfo contains rate limit information from response headers
type RateLimitInfo struct {
	DailyLimit int
	DailyUsed  int
}
