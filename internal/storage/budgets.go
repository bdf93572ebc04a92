package storage

import (
	"context"
	"fmt"
	"log/slog"
)

// SaveBudgets replaces the persisted budget amounts wholesale. The budget
// table always mirrors the engine's current store, so a full replace after
// each mutation keeps the two in step.
func (s *SQLiteStorage) SaveBudgets(ctx context.Context, amounts map[string]float64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM budgets"); err != nil {
		return fmt.Errorf("failed to clear budgets: %w", err)
	}
	for category, amount := range amounts {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO budgets (category, amount) VALUES (?, ?)",
			category, amount,
		); err != nil {
			return fmt.Errorf("failed to insert budget for %q: %w", category, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit budgets: %w", err)
	}

	slog.Debug("saved budgets", "categories", len(amounts))
	return nil
}

// LoadBudgets returns the persisted per-category amounts. An empty map means
// the database has no budget state yet and defaults should apply.
func (s *SQLiteStorage) LoadBudgets(ctx context.Context) (map[string]float64, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, "SELECT category, amount FROM budgets")
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer rows.Close()

	amounts := make(map[string]float64)
	for rows.Next() {
		var category string
		var amount float64
		if err := rows.Scan(&category, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		amounts[category] = amount
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgets: %w", err)
	}

	return amounts, nil
}
