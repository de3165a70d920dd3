package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fleetledger/internal/catalog"
	"github.com/MrJamesThe3rd/fleetledger/internal/database"
	"github.com/MrJamesThe3rd/fleetledger/internal/ledger"
)

type Tx struct {
	tx *sql.Tx
}

func (t *Tx) Commit() error {
	return database.Translate(t.tx.Commit())
}

// Rollback is a no-op once the transaction has been committed.
func (t *Tx) Rollback() error {
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}

	return nil
}

var documentTables = map[ledger.Document]string{
	ledger.DocInvoice: "invoices",
	ledger.DocPayment: "payments",
	ledger.DocRefund:  "refunds",
	ledger.DocExpense: "expenses",
}

// LastDocumentNumber returns the number of the most recently created document
// starting with prefix and ending with suffix, or "" when there is none.
func (t *Tx) LastDocumentNumber(ctx context.Context, doc ledger.Document, prefix, suffix string) (string, error) {
	table, ok := documentTables[doc]
	if !ok {
		return "", fmt.Errorf("unknown document %q", doc)
	}

	query := fmt.Sprintf(`
		SELECT number FROM %s
		WHERE number LIKE $1 AND number LIKE $2
		ORDER BY created_at DESC
		LIMIT 1
	`, table)

	var number string

	err := t.tx.QueryRowContext(ctx, query, prefix+"%", "%"+suffix).Scan(&number)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}

		return "", fmt.Errorf("reading last %s number: %w", table, err)
	}

	return number, nil
}

// NextSequence atomically advances the (prefix, year) counter past floor and
// returns the new value.
func (t *Tx) NextSequence(ctx context.Context, prefix, year string, floor int) (int, error) {
	query := `
		INSERT INTO document_sequences (prefix, year, value)
		VALUES ($1, $2, $3 + 1)
		ON CONFLICT (prefix, year)
		DO UPDATE SET value = GREATEST(document_sequences.value, $3) + 1
		RETURNING value
	`

	var next int

	if err := t.tx.QueryRowContext(ctx, query, prefix, year, floor).Scan(&next); err != nil {
		return 0, fmt.Errorf("advancing %s/%s sequence: %w", prefix, year, database.Translate(err))
	}

	return next, nil
}

func (t *Tx) GetVehicle(ctx context.Context, id uuid.UUID) (*catalog.Vehicle, error) {
	query := `
		SELECT id, name, plate, ownership, owner_name, owner_dni, daily_rate, status, created_at, updated_at
		FROM vehicles
		WHERE id = $1
		FOR UPDATE
	`

	var (
		v                   catalog.Vehicle
		ownerName, ownerDNI sql.NullString
	)

	err := t.tx.QueryRowContext(ctx, query, id).Scan(
		&v.ID, &v.Name, &v.Plate, &v.Ownership, &ownerName, &ownerDNI,
		&v.DailyRate, &v.Status, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err, "vehicle")
	}

	v.OwnerName = ownerName.String
	v.OwnerDNI = ownerDNI.String

	return &v, nil
}

// FindAgent resolves ref as an agent id first and as an exact name second.
func (t *Tx) FindAgent(ctx context.Context, ref string) (*catalog.Agent, error) {
	const columns = `id, name, dni, phone, email, created_at`

	if id, err := uuid.Parse(ref); err == nil {
		a, err := scanAgent(t.tx.QueryRowContext(ctx, `SELECT `+columns+` FROM commercial_agents WHERE id = $1`, id))
		if err == nil {
			return a, nil
		}

		if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
	}

	query := `SELECT ` + columns + ` FROM commercial_agents WHERE name = $1 ORDER BY created_at ASC LIMIT 1`

	a, err := scanAgent(t.tx.QueryRowContext(ctx, query, ref))
	if err != nil {
		return nil, notFound(err, "agent")
	}

	return a, nil
}

func scanAgent(s scanner) (*catalog.Agent, error) {
	var (
		a                 catalog.Agent
		dni, phone, email sql.NullString
	)

	if err := s.Scan(&a.ID, &a.Name, &dni, &phone, &email, &a.CreatedAt); err != nil {
		return nil, err
	}

	a.DNI = dni.String
	a.Phone = phone.String
	a.Email = email.String

	return &a, nil
}

func (t *Tx) SetVehicleStatus(ctx context.Context, id uuid.UUID, status catalog.VehicleStatus) error {
	res, err := t.tx.ExecContext(ctx,
		`UPDATE vehicles SET status = $1, updated_at = NOW() WHERE id = $2`, status, id,
	)
	if err != nil {
		return fmt.Errorf("updating vehicle status: %w", database.Translate(err))
	}

	return expectRow(res, "vehicle")
}

func (t *Tx) GetCategory(ctx context.Context, id uuid.UUID) (*catalog.ExpenseCategory, error) {
	query := `
		SELECT id, name, type, description, created_at
		FROM expense_categories
		WHERE id = $1
	`

	var (
		c    catalog.ExpenseCategory
		desc sql.NullString
	)

	err := t.tx.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Type, &desc, &c.CreatedAt)
	if err != nil {
		return nil, notFound(err, "expense category")
	}

	c.Description = desc.String

	return &c, nil
}

// EnsureCategory returns the expense category called name, creating it on
// first use.
func (t *Tx) EnsureCategory(ctx context.Context, name, description string) (*catalog.ExpenseCategory, error) {
	query := `
		INSERT INTO expense_categories (name, type, description, created_at)
		VALUES ($1, $2, NULLIF($3, ''), NOW())
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name, type, description, created_at
	`

	var (
		c    catalog.ExpenseCategory
		desc sql.NullString
	)

	err := t.tx.QueryRowContext(ctx, query, name, catalog.CategoryExpense, description).
		Scan(&c.ID, &c.Name, &c.Type, &desc, &c.CreatedAt)
	if err != nil {
		return nil, database.Translate(err)
	}

	c.Description = desc.String

	return &c, nil
}

var (
	_ ledger.Repository = (*Store)(nil)
	_ ledger.Tx         = (*Tx)(nil)
)
