package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bursar-app/bursar/internal/config"
	"github.com/bursar-app/bursar/internal/ledger"
	"github.com/bursar-app/bursar/internal/storage"
)

// openEngine loads configuration, opens storage, and hydrates the engine
// from persisted state. The caller must Close the returned storage.
func openEngine(ctx context.Context) (*ledger.Engine, *storage.SQLiteStorage, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return nil, nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	engine, err := hydrateEngine(ctx, cfg, store)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	return engine, store, nil
}

func hydrateEngine(ctx context.Context, cfg *config.Config, store *storage.SQLiteStorage) (*ledger.Engine, error) {
	budgets, err := store.LoadBudgets(ctx)
	if err != nil {
		return nil, err
	}
	transactions, err := store.LoadTransactions(ctx)
	if err != nil {
		return nil, err
	}
	reimbursements, err := store.LoadReimbursements(ctx)
	if err != nil {
		return nil, err
	}

	// First run: no persisted budgets, so the configured defaults apply.
	if len(budgets) == 0 {
		budgets = cfg.DefaultBudgets
	}

	// Reconfiguring the category set can strand persisted rows for
	// categories that no longer exist. They are dropped from the hydrated
	// store, not deleted from disk.
	for category := range budgets {
		if !cfg.Categories.Contains(category) {
			slog.Warn("ignoring budget for unconfigured category", "category", category)
			delete(budgets, category)
		}
	}

	return ledger.New(ledger.Params{
		Categories:     cfg.Categories,
		Budgets:        budgets,
		Presets:        cfg.Presets,
		Transactions:   transactions,
		Reimbursements: reimbursements,
	})
}

// persistBudgets writes the engine's current budget snapshot back to storage.
func persistBudgets(ctx context.Context, store *storage.SQLiteStorage, engine *ledger.Engine) error {
	snap := engine.Budgets()
	amounts := make(map[string]float64, len(snap.Categories))
	for _, c := range snap.Categories {
		amounts[c.Name] = c.Amount
	}
	return store.SaveBudgets(ctx, amounts)
}
