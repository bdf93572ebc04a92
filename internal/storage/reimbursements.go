package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bursar-app/bursar/internal/model"
)

// SaveReimbursement persists a newly submitted request.
func (s *SQLiteStorage) SaveReimbursement(ctx context.Context, req model.Reimbursement) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO reimbursements
		 (id, requester_name, requester_email, amount, category, description, receipt_ref, status, submitted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		req.ID, req.RequesterName, req.RequesterEmail, req.Amount,
		req.Category, req.Description, req.ReceiptRef, string(req.Status), req.SubmittedAt,
	); err != nil {
		return fmt.Errorf("failed to insert reimbursement %s: %w", req.ID, err)
	}

	slog.Debug("saved reimbursement", "id", req.ID, "category", req.Category, "amount", req.Amount)
	return nil
}

// UpdateReimbursementStatus persists a status transition.
func (s *SQLiteStorage) UpdateReimbursementStatus(ctx context.Context, id string, status model.ReimbursementStatus) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		"UPDATE reimbursements SET status = ? WHERE id = ?", string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update reimbursement %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update of reimbursement %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("reimbursement %s not persisted", id)
	}

	return nil
}

// LoadReimbursements returns all persisted requests newest-first.
func (s *SQLiteStorage) LoadReimbursements(ctx context.Context) ([]model.Reimbursement, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, requester_name, requester_email, amount, category, description,
		        COALESCE(receipt_ref, ''), status, submitted_at
		 FROM reimbursements ORDER BY submitted_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query reimbursements: %w", err)
	}
	defer rows.Close()

	var requests []model.Reimbursement
	for rows.Next() {
		var req model.Reimbursement
		var status string
		if err := rows.Scan(&req.ID, &req.RequesterName, &req.RequesterEmail, &req.Amount,
			&req.Category, &req.Description, &req.ReceiptRef, &status, &req.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reimbursement: %w", err)
		}
		req.Status = model.ReimbursementStatus(status)
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reimbursements: %w", err)
	}

	return requests, nil
}
