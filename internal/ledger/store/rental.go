package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fleetledger/internal/database"
	"github.com/MrJamesThe3rd/fleetledger/internal/ledger"
)

const rentalColumns = `id, vehicle_id, client_id, agent_id, agent_name, start_date, end_date, original_end_date,
	daily_rate, total_amount, status, created_at, updated_at`

func scanRental(s scanner) (*ledger.Rental, error) {
	var (
		r         ledger.Rental
		agentID   uuid.NullUUID
		agentName sql.NullString
	)

	if err := s.Scan(
		&r.ID, &r.VehicleID, &r.ClientID, &agentID, &agentName, &r.StartDate, &r.EndDate, &r.OriginalEndDate,
		&r.DailyRate, &r.TotalAmount, &r.Status, &r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		return nil, err
	}

	r.AgentID = uuidPtr(agentID)
	r.AgentName = agentName.String

	return &r, nil
}

func getRental(ctx context.Context, q querier, id uuid.UUID, lock bool) (*ledger.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	if lock {
		query += ` FOR UPDATE`
	}

	r, err := scanRental(q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err, "rental")
	}

	return r, nil
}

func (t *Tx) CreateRental(ctx context.Context, r *ledger.Rental) error {
	query := `
		INSERT INTO rentals (vehicle_id, client_id, agent_id, agent_name, start_date, end_date,
			daily_rate, total_amount, status, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, NOW())
		RETURNING id, created_at
	`

	err := t.tx.QueryRowContext(ctx, query,
		r.VehicleID, r.ClientID, nullUUID(r.AgentID), r.AgentName, r.StartDate, r.EndDate,
		r.DailyRate, r.TotalAmount, r.Status,
	).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating rental: %w", database.Translate(err))
	}

	return nil
}

func (t *Tx) LockRental(ctx context.Context, id uuid.UUID) (*ledger.Rental, error) {
	return getRental(ctx, t.tx, id, true)
}

// UpdateRental writes the fields finalization changes.
func (t *Tx) UpdateRental(ctx context.Context, r *ledger.Rental) error {
	query := `
		UPDATE rentals
		SET end_date = $1, original_end_date = $2, total_amount = $3, status = $4, updated_at = NOW()
		WHERE id = $5
	`

	res, err := t.tx.ExecContext(ctx, query, r.EndDate, r.OriginalEndDate, r.TotalAmount, r.Status, r.ID)
	if err != nil {
		return fmt.Errorf("updating rental: %w", database.Translate(err))
	}

	return expectRow(res, "rental")
}

// DeleteRental removes the rental. Its payables go with it through the
// foreign key cascade.
func (t *Tx) DeleteRental(ctx context.Context, id uuid.UUID) error {
	res, err := t.tx.ExecContext(ctx, `DELETE FROM rentals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting rental: %w", database.Translate(err))
	}

	return expectRow(res, "rental")
}

func (t *Tx) CountInvoicesByRental(ctx context.Context, rentalID uuid.UUID) (int64, error) {
	n, err := count(ctx, t.tx, `SELECT COUNT(*) FROM invoices WHERE rental_id = $1`, rentalID)
	if err != nil {
		return 0, fmt.Errorf("counting rental invoices: %w", err)
	}

	return n, nil
}
