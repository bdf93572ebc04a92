package ledger

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bursar-app/bursar/internal/common"
	"github.com/bursar-app/bursar/internal/model"
)

// TransactionLedger is the append/remove-only log of signed entries, observed
// newest-first. It exclusively owns the list; every recorded or removed entry
// applies its paired budget adjustment in the same step, so the log is always
// the explanation for the budgets' current values.
type TransactionLedger struct {
	budgets *BudgetStore
	entries []model.Transaction // newest first
	nextID  int64
}

// newTransactionLedger hydrates a ledger from existing entries (newest-first).
// The budgets passed in already reflect those entries, so they are not
// re-applied. Ids resume above the highest ever seen so removal never frees
// an id for reuse.
func newTransactionLedger(budgets *BudgetStore, existing []model.Transaction) *TransactionLedger {
	entries := make([]model.Transaction, len(existing))
	copy(entries, existing)

	var maxID int64
	for _, tx := range entries {
		if tx.ID > maxID {
			maxID = tx.ID
		}
	}
	return &TransactionLedger{
		budgets: budgets,
		entries: entries,
		nextID:  maxID + 1,
	}
}

// Record validates and appends a new entry, adjusting the category's budget
// in the same step. The returned transaction carries the requested amount;
// when clamping reduced the applied delta the budget reflects the clamp, not
// the transaction.
func (l *TransactionLedger) Record(description string, amount float64, category string, ts time.Time) (model.Transaction, error) {
	if strings.TrimSpace(description) == "" {
		return model.Transaction{}, fmt.Errorf("%w: description is required", common.ErrInvalidEntry)
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return model.Transaction{}, fmt.Errorf("%w: amount must be finite", common.ErrInvalidEntry)
	}
	if !l.budgets.contains(category) {
		return model.Transaction{}, fmt.Errorf("%w: %q", common.ErrInvalidCategory, category)
	}

	if _, err := l.budgets.Adjust(category, amount); err != nil {
		return model.Transaction{}, err
	}

	tx := model.Transaction{
		ID:          l.nextID,
		Description: description,
		Amount:      amount,
		Category:    category,
		Timestamp:   ts,
	}
	l.nextID++
	l.entries = append([]model.Transaction{tx}, l.entries...)
	return tx, nil
}

// Remove deletes the entry with the given id and reverses its budget delta.
// If clamping occurred between record and removal the reversal may not
// restore the exact pre-record amount; that is the documented limitation of
// the zero floor, not something the ledger papers over.
func (l *TransactionLedger) Remove(id int64) (model.Transaction, error) {
	for i, tx := range l.entries {
		if tx.ID != id {
			continue
		}
		if _, err := l.budgets.Adjust(tx.Category, -tx.Amount); err != nil {
			return model.Transaction{}, err
		}
		l.entries = append(l.entries[:i], l.entries[i+1:]...)
		return tx, nil
	}
	return model.Transaction{}, fmt.Errorf("%w: transaction %d", common.ErrNotFound, id)
}

// Transactions returns entries newest-first, filtered by category when one is
// given. The returned slice is a copy; callers may not mutate the log.
func (l *TransactionLedger) Transactions(category string) []model.Transaction {
	out := make([]model.Transaction, 0, len(l.entries))
	for _, tx := range l.entries {
		if category != "" && tx.Category != category {
			continue
		}
		out = append(out, tx)
	}
	return out
}
