package ledger

import (
	"fmt"
	"sync"
	"time"

	"github.com/bursar-app/bursar/internal/common"
	"github.com/bursar-app/bursar/internal/model"
)

// BudgetSnapshot is the engine's outbound view of the budget store.
type BudgetSnapshot struct {
	Categories []CategoryAmount
	Total      float64
}

// SubmitReimbursement carries the user-entered fields of a new request. The
// receipt's content is never inspected here; only a reference string travels
// through the engine.
type SubmitReimbursement struct {
	Name        string
	Email       string
	Category    string
	Description string
	ReceiptRef  string
	Amount      float64
}

// Params configures a new Engine. Transactions and Reimbursements hydrate
// prior state (newest-first, as returned by storage); Budgets are the current
// amounts, which for hydrated state already include every transaction's
// effect.
type Params struct {
	Now            func() time.Time
	Budgets        map[string]float64
	Categories     model.CategorySet
	Presets        []model.Preset
	Transactions   []model.Transaction
	Reimbursements []model.Reimbursement
}

// Engine owns the budget store, transaction ledger, and reimbursement
// workflow, and serializes every operation behind one lock so the trio is
// never observed mid-mutation. Engines are plain injectable values: construct
// one per caller, no package-level instance exists.
type Engine struct {
	now      func() time.Time
	budgets  *BudgetStore
	ledger   *TransactionLedger
	workflow *ReimbursementWorkflow
	presets  []model.Preset
	mu       sync.Mutex
}

// New validates params and builds an engine.
func New(p Params) (*Engine, error) {
	if len(p.Categories) == 0 {
		return nil, fmt.Errorf("%w: at least one category is required", common.ErrInvalidConfig)
	}
	seen := make(map[string]bool, len(p.Categories))
	for _, c := range p.Categories {
		if c == "" {
			return nil, fmt.Errorf("%w: empty category name", common.ErrInvalidConfig)
		}
		if seen[c] {
			return nil, fmt.Errorf("%w: duplicate category %q", common.ErrInvalidConfig, c)
		}
		seen[c] = true
	}
	for name := range p.Budgets {
		if !seen[name] {
			return nil, fmt.Errorf("%w: budget for unknown category %q", common.ErrInvalidCategory, name)
		}
	}
	for _, preset := range p.Presets {
		for name := range preset.Budgets {
			if !seen[name] {
				return nil, fmt.Errorf("%w: preset %q references unknown category %q", common.ErrInvalidCategory, preset.Name, name)
			}
		}
	}

	now := p.Now
	if now == nil {
		now = time.Now
	}

	budgets := newBudgetStore(p.Categories, p.Budgets)
	txLedger := newTransactionLedger(budgets, p.Transactions)

	presets := make([]model.Preset, len(p.Presets))
	for i, preset := range p.Presets {
		presets[i] = model.Preset{Name: preset.Name, Budgets: preset.BudgetsCopy()}
	}

	return &Engine{
		budgets:  budgets,
		ledger:   txLedger,
		workflow: newReimbursementWorkflow(txLedger, p.Reimbursements),
		presets:  presets,
		now:      now,
	}, nil
}

// Budgets returns the current per-category amounts and derived total.
func (e *Engine) Budgets() BudgetSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return BudgetSnapshot{
		Categories: e.budgets.Snapshot(),
		Total:      e.budgets.Total(),
	}
}

// AdjustBudget applies a direct adjustment and returns the delta actually
// applied after clamping.
func (e *Engine) AdjustBudget(category string, delta float64) (float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.budgets.Adjust(category, delta)
}

// RecordTransaction appends a new ledger entry and applies its budget delta.
func (e *Engine) RecordTransaction(description string, amount float64, category string) (model.Transaction, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.Record(description, amount, category, e.now())
}

// RemoveTransaction deletes a ledger entry, reversing its budget delta, and
// returns the removed entry. Its id is retired permanently.
func (e *Engine) RemoveTransaction(id int64) (model.Transaction, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.Remove(id)
}

// Transactions lists ledger entries newest-first, optionally filtered by
// category (empty string means all).
func (e *Engine) Transactions(category string) []model.Transaction {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.Transactions(category)
}

// SubmitReimbursement creates a new request in Pending.
func (e *Engine) SubmitReimbursement(req SubmitReimbursement) (model.Reimbursement, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.workflow.Submit(req.Name, req.Email, req.Amount, req.Category, req.Description, req.ReceiptRef, e.now())
}

// SetReimbursementStatus transitions a request. On approval the returned
// transaction is the synthetic debit recorded against the request's category;
// it is nil for every other edge.
func (e *Engine) SetReimbursementStatus(id string, next model.ReimbursementStatus) (model.Reimbursement, *model.Transaction, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.workflow.SetStatus(id, next, e.now())
}

// Reimbursements lists all requests newest-first.
func (e *Engine) Reimbursements() []model.Reimbursement {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.workflow.Requests()
}

// Presets lists the configured preset snapshots.
func (e *Engine) Presets() []model.Preset {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]model.Preset, len(e.presets))
	copy(out, e.presets)
	return out
}

// ApplyPreset resets the budget baseline to the named snapshot. The
// transaction log and reimbursement state are untouched: removing a
// transaction recorded before the preset will not restore pre-preset values.
func (e *Engine) ApplyPreset(name string) (BudgetSnapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, preset := range e.presets {
		if preset.Name != name {
			continue
		}
		e.budgets.ApplyPreset(preset.Budgets)
		return BudgetSnapshot{
			Categories: e.budgets.Snapshot(),
			Total:      e.budgets.Total(),
		}, nil
	}
	return BudgetSnapshot{}, fmt.Errorf("%w: preset %q", common.ErrNotFound, name)
}
