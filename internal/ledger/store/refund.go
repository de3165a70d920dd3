package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fleetledger/internal/database"
	"github.com/MrJamesThe3rd/fleetledger/internal/ledger"
)

const refundColumns = `id, number, invoice_id, client_id, amount, reason, date, status, created_at, updated_at`

func scanRefund(s scanner) (*ledger.Refund, error) {
	var r ledger.Refund

	if err := s.Scan(
		&r.ID, &r.Number, &r.InvoiceID, &r.ClientID, &r.Amount, &r.Reason, &r.Date, &r.Status,
		&r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &r, nil
}

func (t *Tx) CreateRefund(ctx context.Context, r *ledger.Refund) error {
	query := `
		INSERT INTO refunds (number, invoice_id, client_id, amount, reason, date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`

	err := t.tx.QueryRowContext(ctx, query,
		r.Number, r.InvoiceID, r.ClientID, r.Amount, r.Reason, r.Date, r.Status,
	).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating refund: %w", database.Translate(err))
	}

	return nil
}

func (t *Tx) LockRefund(ctx context.Context, id uuid.UUID) (*ledger.Refund, error) {
	query := `SELECT ` + refundColumns + ` FROM refunds WHERE id = $1 FOR UPDATE`

	r, err := scanRefund(t.tx.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err, "refund")
	}

	return r, nil
}

func (t *Tx) UpdateRefundStatus(ctx context.Context, id uuid.UUID, status ledger.RefundStatus) error {
	res, err := t.tx.ExecContext(ctx,
		`UPDATE refunds SET status = $1, updated_at = NOW() WHERE id = $2`, status, id,
	)
	if err != nil {
		return fmt.Errorf("updating refund status: %w", database.Translate(err))
	}

	return expectRow(res, "refund")
}
