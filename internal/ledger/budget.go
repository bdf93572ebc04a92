// Package ledger implements the budget ledger engine: per-category budgets,
// the ordered transaction log, and the reimbursement workflow, kept mutually
// consistent by a single orchestrating Engine.
package ledger

import (
	"fmt"
	"math"

	"github.com/bursar-app/bursar/internal/common"
	"github.com/bursar-app/bursar/internal/model"
)

// CategoryAmount pairs a category with its current budget amount.
type CategoryAmount struct {
	Name   string
	Amount float64
}

// BudgetStore maps each configured category to a non-negative amount.
// Amounts never go below zero: any adjustment that would cross zero is
// clamped instead.
type BudgetStore struct {
	amounts    map[string]float64
	categories model.CategorySet
}

func newBudgetStore(categories model.CategorySet, defaults map[string]float64) *BudgetStore {
	amounts := make(map[string]float64, len(categories))
	for _, c := range categories {
		amount := defaults[c]
		if amount < 0 {
			amount = 0
		}
		amounts[c] = amount
	}
	return &BudgetStore{amounts: amounts, categories: categories}
}

// Adjust adds delta to the category's amount, flooring the result at zero.
// It returns the delta actually applied, which has smaller magnitude than the
// requested delta when clamping occurred. Clamping is silent; it is the one
// sanctioned break in additivity, so callers that later reverse an adjustment
// must work from the applied delta, not the requested one.
func (b *BudgetStore) Adjust(category string, delta float64) (float64, error) {
	current, ok := b.amounts[category]
	if !ok {
		return 0, fmt.Errorf("%w: %q", common.ErrInvalidCategory, category)
	}
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return 0, fmt.Errorf("%w: amount must be finite", common.ErrInvalidEntry)
	}

	next := current + delta
	if next < 0 {
		next = 0
	}
	b.amounts[category] = next
	return next - current, nil
}

// ApplyPreset replaces all amounts wholesale from the snapshot. Categories
// missing from the snapshot reset to zero. Presets are validated non-negative
// at load; a negative value that slips through is clamped rather than stored.
func (b *BudgetStore) ApplyPreset(snapshot map[string]float64) {
	for _, c := range b.categories {
		amount := snapshot[c]
		if amount < 0 || math.IsNaN(amount) {
			amount = 0
		}
		b.amounts[c] = amount
	}
}

// Amount returns the current amount for category, zero if unknown.
func (b *BudgetStore) Amount(category string) float64 {
	return b.amounts[category]
}

// Total is the sum of all current amounts. It is always derived from the
// store, never tracked independently.
func (b *BudgetStore) Total() float64 {
	var total float64
	for _, c := range b.categories {
		total += b.amounts[c]
	}
	return total
}

// Snapshot returns per-category amounts in configured order.
func (b *BudgetStore) Snapshot() []CategoryAmount {
	out := make([]CategoryAmount, len(b.categories))
	for i, c := range b.categories {
		out[i] = CategoryAmount{Name: c, Amount: b.amounts[c]}
	}
	return out
}

func (b *BudgetStore) contains(category string) bool {
	_, ok := b.amounts[category]
	return ok
}
