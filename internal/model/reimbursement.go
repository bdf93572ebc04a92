package model

import "time"

// ReimbursementStatus tracks a request through its lifecycle.
type ReimbursementStatus string

const (
	// ReimbursementPending is the initial status of every submitted request.
	ReimbursementPending ReimbursementStatus = "Pending"
	// ReimbursementApproved means the request was accepted and a debit was
	// recorded against its category.
	ReimbursementApproved ReimbursementStatus = "Approved"
	// ReimbursementRejected is terminal; a rejected request cannot be revived.
	ReimbursementRejected ReimbursementStatus = "Rejected"
	// ReimbursementPaid is terminal; payment itself has no budget effect.
	ReimbursementPaid ReimbursementStatus = "Paid"
)

// Valid reports whether s is one of the known statuses.
func (s ReimbursementStatus) Valid() bool {
	switch s {
	case ReimbursementPending, ReimbursementApproved, ReimbursementRejected, ReimbursementPaid:
		return true
	}
	return false
}

// NextStatuses returns the statuses a request in status s may legally move to.
// The result is empty for terminal statuses.
func (s ReimbursementStatus) NextStatuses() []ReimbursementStatus {
	switch s {
	case ReimbursementPending:
		return []ReimbursementStatus{ReimbursementApproved, ReimbursementRejected}
	case ReimbursementApproved:
		return []ReimbursementStatus{ReimbursementPaid}
	default:
		return nil
	}
}

// CanTransitionTo reports whether the edge s→next is permitted.
func (s ReimbursementStatus) CanTransitionTo(next ReimbursementStatus) bool {
	for _, n := range s.NextStatuses() {
		if n == next {
			return true
		}
	}
	return false
}

// Reimbursement is a request to be paid back for an out-of-pocket expense.
// Requests are created in Pending and only ever move forward; approval debits
// the request's category via a synthetic ledger transaction.
type Reimbursement struct {
	SubmittedAt    time.Time
	ID             string
	RequesterName  string
	RequesterEmail string
	Category       string
	Description    string
	ReceiptRef     string
	Status         ReimbursementStatus
	Amount         float64
}
