package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fleetledger/internal/database"
	"github.com/MrJamesThe3rd/fleetledger/internal/ledger"
)

const invoiceColumns = `id, number, client_id, rental_id, amount, paid_amount, status, details, date, created_at`

func scanInvoice(s scanner) (*ledger.Invoice, error) {
	var (
		inv      ledger.Invoice
		rentalID uuid.NullUUID
		details  []byte
	)

	if err := s.Scan(
		&inv.ID, &inv.Number, &inv.ClientID, &rentalID, &inv.Amount, &inv.PaidAmount,
		&inv.Status, &details, &inv.Date, &inv.CreatedAt,
	); err != nil {
		return nil, err
	}

	inv.RentalID = uuidPtr(rentalID)

	if len(details) > 0 {
		inv.Details = &ledger.InvoiceDetails{}
		if err := json.Unmarshal(details, inv.Details); err != nil {
			return nil, fmt.Errorf("decoding invoice %s details: %w", inv.Number, err)
		}
	}

	return &inv, nil
}

func encodeDetails(d *ledger.InvoiceDetails) ([]byte, error) {
	if d == nil {
		return nil, nil
	}

	return json.Marshal(d)
}

func (t *Tx) CreateInvoice(ctx context.Context, inv *ledger.Invoice) error {
	details, err := encodeDetails(inv.Details)
	if err != nil {
		return fmt.Errorf("encoding invoice details: %w", err)
	}

	query := `
		INSERT INTO invoices (number, client_id, rental_id, amount, paid_amount, status, details, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`

	err = t.tx.QueryRowContext(ctx, query,
		inv.Number, inv.ClientID, nullUUID(inv.RentalID), inv.Amount, inv.PaidAmount, inv.Status, details, inv.Date,
	).Scan(&inv.ID, &inv.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating invoice: %w", database.Translate(err))
	}

	return nil
}

func (t *Tx) LockInvoice(ctx context.Context, id uuid.UUID) (*ledger.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1 FOR UPDATE`

	inv, err := scanInvoice(t.tx.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err, "invoice")
	}

	return inv, nil
}

// RentalInvoice locks the booking invoice of a rental.
func (t *Tx) RentalInvoice(ctx context.Context, rentalID uuid.UUID) (*ledger.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE rental_id = $1 FOR UPDATE`

	inv, err := scanInvoice(t.tx.QueryRowContext(ctx, query, rentalID))
	if err != nil {
		return nil, notFound(err, "invoice")
	}

	return inv, nil
}

func (t *Tx) UpdateInvoicePaid(ctx context.Context, id uuid.UUID, paid int64, status ledger.InvoiceStatus) error {
	res, err := t.tx.ExecContext(ctx,
		`UPDATE invoices SET paid_amount = $1, status = $2 WHERE id = $3`, paid, status, id,
	)
	if err != nil {
		return fmt.Errorf("updating invoice balance: %w", database.Translate(err))
	}

	return expectRow(res, "invoice")
}

func (t *Tx) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	res, err := t.tx.ExecContext(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting invoice: %w", database.Translate(err))
	}

	return expectRow(res, "invoice")
}

func (t *Tx) CountPaymentsByInvoice(ctx context.Context, invoiceID uuid.UUID) (int64, error) {
	n, err := count(ctx, t.tx, `SELECT COUNT(*) FROM payments WHERE invoice_id = $1`, invoiceID)
	if err != nil {
		return 0, fmt.Errorf("counting invoice payments: %w", err)
	}

	return n, nil
}

func (t *Tx) CountRefundsByInvoice(ctx context.Context, invoiceID uuid.UUID) (int64, error) {
	n, err := count(ctx, t.tx, `SELECT COUNT(*) FROM refunds WHERE invoice_id = $1`, invoiceID)
	if err != nil {
		return 0, fmt.Errorf("counting invoice refunds: %w", err)
	}

	return n, nil
}
