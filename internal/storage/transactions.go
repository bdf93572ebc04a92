package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bursar-app/bursar/internal/model"
)

// SaveTransaction persists a newly recorded ledger entry.
func (s *SQLiteStorage) SaveTransaction(ctx context.Context, tx model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (id, description, amount, category, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		tx.ID, tx.Description, tx.Amount, tx.Category, tx.Timestamp,
	); err != nil {
		return fmt.Errorf("failed to insert transaction %d: %w", tx.ID, err)
	}

	slog.Debug("saved transaction", "id", tx.ID, "category", tx.Category, "amount", tx.Amount)
	return nil
}

// DeleteTransaction removes a ledger entry by id.
func (s *SQLiteStorage) DeleteTransaction(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deletion of transaction %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("transaction %d not persisted", id)
	}

	return nil
}

// LoadTransactions returns all persisted entries newest-first. Ids are
// strictly monotonic, so id order is insertion order.
func (s *SQLiteStorage) LoadTransactions(ctx context.Context) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, description, amount, category, created_at
		 FROM transactions ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []model.Transaction
	for rows.Next() {
		var tx model.Transaction
		if err := rows.Scan(&tx.ID, &tx.Description, &tx.Amount, &tx.Category, &tx.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}
