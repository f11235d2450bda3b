package domain

import "time"

// PayableFilter defines optional filtering for payable list queries. Nil
// fields impose no constraint; provided fields combine conjunctively.
type PayableFilter struct {
	Status  *PayableStatus // exact match on stored status
	Vendor  *string        // case-insensitive substring match
	DueFrom *time.Time     // inclusive due date lower bound
	DueTo   *time.Time     // inclusive due date upper bound
}

// ReceivableFilter defines optional filtering for receivable list queries
type ReceivableFilter struct {
	Status   *ReceivableStatus // exact match on stored status
	Customer *string           // case-insensitive substring match
	DueFrom  *time.Time        // inclusive due date lower bound
	DueTo    *time.Time        // inclusive due date upper bound
}
