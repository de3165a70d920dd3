package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fleetledger/internal/database"
	"github.com/MrJamesThe3rd/fleetledger/internal/ledger"
)

const payableColumns = `id, rental_id, type, beneficiary_name, beneficiary_dni, amount, status, date,
	released_by_payment_id, created_at, updated_at`

func scanPayable(s scanner) (*ledger.AccountPayable, error) {
	var (
		ap         ledger.AccountPayable
		dni        sql.NullString
		releasedBy uuid.NullUUID
	)

	if err := s.Scan(
		&ap.ID, &ap.RentalID, &ap.Type, &ap.BeneficiaryName, &dni, &ap.Amount, &ap.Status, &ap.Date,
		&releasedBy, &ap.CreatedAt, &ap.UpdatedAt,
	); err != nil {
		return nil, err
	}

	ap.BeneficiaryDNI = dni.String
	ap.ReleasedByPaymentID = uuidPtr(releasedBy)

	return &ap, nil
}

func listPayables(ctx context.Context, q querier, query string, args ...any) ([]*ledger.AccountPayable, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing payables: %w", err)
	}
	defer rows.Close()

	var payables []*ledger.AccountPayable

	for rows.Next() {
		ap, err := scanPayable(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning payable: %w", err)
		}

		payables = append(payables, ap)
	}

	return payables, rows.Err()
}

func (t *Tx) CreatePayable(ctx context.Context, ap *ledger.AccountPayable) error {
	query := `
		INSERT INTO account_payables (rental_id, type, beneficiary_name, beneficiary_dni, amount, status, date, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, NOW())
		RETURNING id, created_at
	`

	err := t.tx.QueryRowContext(ctx, query,
		ap.RentalID, ap.Type, ap.BeneficiaryName, ap.BeneficiaryDNI, ap.Amount, ap.Status, ap.Date,
	).Scan(&ap.ID, &ap.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating payable: %w", database.Translate(err))
	}

	return nil
}

func (t *Tx) LockPayable(ctx context.Context, id uuid.UUID) (*ledger.AccountPayable, error) {
	query := `SELECT ` + payableColumns + ` FROM account_payables WHERE id = $1 FOR UPDATE`

	ap, err := scanPayable(t.tx.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err, "account payable")
	}

	return ap, nil
}

// ListRentalPayables locks the rental's payables in any of statuses.
func (t *Tx) ListRentalPayables(
	ctx context.Context, rentalID uuid.UUID, statuses []ledger.PayableStatus,
) ([]*ledger.AccountPayable, error) {
	if len(statuses) == 0 {
		return nil, nil
	}

	args := []any{rentalID}
	placeholders := make([]string, 0, len(statuses))

	for _, status := range statuses {
		args = append(args, status)
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
	}

	query := `SELECT ` + payableColumns + ` FROM account_payables
		WHERE rental_id = $1 AND status IN (` + strings.Join(placeholders, ", ") + `)
		ORDER BY created_at ASC
		FOR UPDATE`

	return listPayables(ctx, t.tx, query, args...)
}

func (t *Tx) UpdatePayableAmount(ctx context.Context, id uuid.UUID, amount int64) error {
	res, err := t.tx.ExecContext(ctx,
		`UPDATE account_payables SET amount = $1, updated_at = NOW() WHERE id = $2`, amount, id,
	)
	if err != nil {
		return fmt.Errorf("updating payable amount: %w", database.Translate(err))
	}

	return expectRow(res, "account payable")
}

func (t *Tx) UpdatePayableStatus(ctx context.Context, id uuid.UUID, status ledger.PayableStatus) error {
	res, err := t.tx.ExecContext(ctx,
		`UPDATE account_payables SET status = $1, updated_at = NOW() WHERE id = $2`, status, id,
	)
	if err != nil {
		return fmt.Errorf("updating payable status: %w", database.Translate(err))
	}

	return expectRow(res, "account payable")
}

// ReleasePayables moves the rental's held payables to pending, stamping the
// payment that released them, and reports how many moved.
func (t *Tx) ReleasePayables(ctx context.Context, rentalID, paymentID uuid.UUID) (int64, error) {
	query := `
		UPDATE account_payables
		SET status = $1, released_by_payment_id = $2, updated_at = NOW()
		WHERE rental_id = $3 AND status = $4
	`

	res, err := t.tx.ExecContext(ctx, query, ledger.PayablePending, paymentID, rentalID, ledger.PayableHeld)
	if err != nil {
		return 0, database.Translate(err)
	}

	return res.RowsAffected()
}
