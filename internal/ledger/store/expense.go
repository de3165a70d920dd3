package store

import (
	"context"
	"fmt"

	"github.com/MrJamesThe3rd/fleetledger/internal/database"
	"github.com/MrJamesThe3rd/fleetledger/internal/ledger"
)

const expenseColumns = `id, number, date, amount, description, category_id, status, created_at`

func scanExpense(s scanner) (*ledger.Expense, error) {
	var e ledger.Expense

	if err := s.Scan(&e.ID, &e.Number, &e.Date, &e.Amount, &e.Description, &e.CategoryID, &e.Status, &e.CreatedAt); err != nil {
		return nil, err
	}

	return &e, nil
}

func (t *Tx) CreateExpense(ctx context.Context, e *ledger.Expense) error {
	query := `
		INSERT INTO expenses (number, date, amount, description, category_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err := t.tx.QueryRowContext(ctx, query,
		e.Number, e.Date, e.Amount, e.Description, e.CategoryID, e.Status,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating expense: %w", database.Translate(err))
	}

	return nil
}
