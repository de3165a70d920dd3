package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fleetledger/internal/database"
	"github.com/MrJamesThe3rd/fleetledger/internal/ledger"
)

const paymentColumns = `id, number, invoice_id, client_id, amount, date, reference, created_at`

func scanPayment(s scanner) (*ledger.Payment, error) {
	var (
		p         ledger.Payment
		reference sql.NullString
	)

	if err := s.Scan(&p.ID, &p.Number, &p.InvoiceID, &p.ClientID, &p.Amount, &p.Date, &reference, &p.CreatedAt); err != nil {
		return nil, err
	}

	p.Reference = reference.String

	return &p, nil
}

func (t *Tx) CreatePayment(ctx context.Context, p *ledger.Payment) error {
	query := `
		INSERT INTO payments (number, invoice_id, client_id, amount, date, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NOW())
		RETURNING id, created_at
	`

	err := t.tx.QueryRowContext(ctx, query,
		p.Number, p.InvoiceID, p.ClientID, p.Amount, p.Date, p.Reference,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating payment: %w", database.Translate(err))
	}

	return nil
}

func (t *Tx) GetPayment(ctx context.Context, id uuid.UUID) (*ledger.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1 FOR UPDATE`

	p, err := scanPayment(t.tx.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err, "payment")
	}

	return p, nil
}

func (t *Tx) DeletePayment(ctx context.Context, id uuid.UUID) error {
	res, err := t.tx.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting payment: %w", database.Translate(err))
	}

	return expectRow(res, "payment")
}
