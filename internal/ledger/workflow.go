package ledger

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bursar-app/bursar/internal/common"
	"github.com/bursar-app/bursar/internal/model"
)

// ReimbursementWorkflow holds every submitted request and drives each through
// its status machine. Requests are never deleted, only transitioned forward.
// The workflow mutates budgets exclusively through the ledger: approving a
// request records a synthetic debit transaction, so the budget/ledger
// invariant holds uniformly no matter which path changed a budget.
type ReimbursementWorkflow struct {
	ledger   *TransactionLedger
	newID    func() string
	requests []model.Reimbursement // newest first
}

func newReimbursementWorkflow(ledger *TransactionLedger, existing []model.Reimbursement) *ReimbursementWorkflow {
	requests := make([]model.Reimbursement, len(existing))
	copy(requests, existing)
	return &ReimbursementWorkflow{
		ledger:   ledger,
		newID:    uuid.NewString,
		requests: requests,
	}
}

// Submit validates and creates a new request in Pending.
func (w *ReimbursementWorkflow) Submit(name, email string, amount float64, category, description, receiptRef string, ts time.Time) (model.Reimbursement, error) {
	switch {
	case strings.TrimSpace(name) == "":
		return model.Reimbursement{}, fmt.Errorf("%w: requester name is required", common.ErrInvalidEntry)
	case strings.TrimSpace(email) == "":
		return model.Reimbursement{}, fmt.Errorf("%w: requester email is required", common.ErrInvalidEntry)
	case strings.TrimSpace(description) == "":
		return model.Reimbursement{}, fmt.Errorf("%w: description is required", common.ErrInvalidEntry)
	case math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0:
		return model.Reimbursement{}, fmt.Errorf("%w: amount must be a positive number", common.ErrInvalidEntry)
	}
	if !w.ledger.budgets.contains(category) {
		return model.Reimbursement{}, fmt.Errorf("%w: %q", common.ErrInvalidCategory, category)
	}

	req := model.Reimbursement{
		ID:             w.newID(),
		RequesterName:  name,
		RequesterEmail: email,
		Amount:         amount,
		Category:       category,
		Description:    description,
		ReceiptRef:     receiptRef,
		SubmittedAt:    ts,
		Status:         model.ReimbursementPending,
	}
	w.requests = append([]model.Reimbursement{req}, w.requests...)
	return req, nil
}

// SetStatus moves the request along one of the legal edges: Pending→Approved,
// Pending→Rejected, Approved→Paid. Approving records the synthetic debit
// before the status flips, so a failed record leaves the request untouched.
// The returned transaction is non-nil only on approval.
func (w *ReimbursementWorkflow) SetStatus(id string, next model.ReimbursementStatus, ts time.Time) (model.Reimbursement, *model.Transaction, error) {
	if !next.Valid() {
		return model.Reimbursement{}, nil, fmt.Errorf("%w: unknown status %q", common.ErrInvalidTransition, next)
	}

	for i, req := range w.requests {
		if req.ID != id {
			continue
		}
		if !req.Status.CanTransitionTo(next) {
			return model.Reimbursement{}, nil, fmt.Errorf("%w: %s → %s", common.ErrInvalidTransition, req.Status, next)
		}

		var recorded *model.Transaction
		if next == model.ReimbursementApproved {
			description := fmt.Sprintf("Reimbursement: %s (%s)", req.Description, req.RequesterName)
			tx, err := w.ledger.Record(description, -req.Amount, req.Category, ts)
			if err != nil {
				return model.Reimbursement{}, nil, err
			}
			recorded = &tx
		}

		w.requests[i].Status = next
		return w.requests[i], recorded, nil
	}
	return model.Reimbursement{}, nil, fmt.Errorf("%w: reimbursement %s", common.ErrNotFound, id)
}

// Requests returns all requests newest-first. The slice is a copy.
func (w *ReimbursementWorkflow) Requests() []model.Reimbursement {
	out := make([]model.Reimbursement, len(w.requests))
	copy(out, w.requests)
	return out
}
