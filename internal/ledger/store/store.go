// Package store implements ledger.Repository on PostgreSQL.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fleetledger/internal/apperr"
	"github.com/MrJamesThe3rd/fleetledger/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Begin opens a read-committed transaction. Rows read through the Lock*
// methods are held with SELECT ... FOR UPDATE until it ends.
func (s *Store) Begin(ctx context.Context) (ledger.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	return &Tx{tx: tx}, nil
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}

	return uuid.NullUUID{UUID: *id, Valid: true}
}

func uuidPtr(n uuid.NullUUID) *uuid.UUID {
	if !n.Valid {
		return nil
	}

	id := n.UUID

	return &id
}

// expectRow turns an update or delete that matched nothing into ErrNotFound.
func expectRow(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}

	if n == 0 {
		return apperr.NotFound(entity)
	}

	return nil
}

func count(ctx context.Context, q querier, query string, args ...any) (int64, error) {
	var n int64

	if err := q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}

	return n, nil
}

func notFound(err error, entity string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound(entity)
	}

	return err
}

func (s *Store) GetRental(ctx context.Context, id uuid.UUID) (*ledger.Rental, error) {
	r, err := getRental(ctx, s.db, id, false)
	if err != nil {
		return nil, fmt.Errorf("getting rental: %w", err)
	}

	return r, nil
}

func (s *Store) ListRentals(ctx context.Context, filter ledger.RentalFilter) ([]*ledger.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.ClientID != nil {
		query += fmt.Sprintf(" AND client_id = $%d", argIdx)

		args = append(args, *filter.ClientID)
	}

	query += ` ORDER BY start_date DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing rentals: %w", err)
	}
	defer rows.Close()

	var rentals []*ledger.Rental

	for rows.Next() {
		r, err := scanRental(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning rental: %w", err)
		}

		rentals = append(rentals, r)
	}

	return rentals, rows.Err()
}

func (s *Store) GetInvoice(ctx context.Context, id uuid.UUID) (*ledger.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`

	inv, err := scanInvoice(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("getting invoice: %w", notFound(err, "invoice"))
	}

	return inv, nil
}

func (s *Store) FindInvoiceByNumber(ctx context.Context, number string) (*ledger.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE number = $1`

	inv, err := scanInvoice(s.db.QueryRowContext(ctx, query, number))
	if err != nil {
		return nil, fmt.Errorf("finding invoice %s: %w", number, notFound(err, "invoice"))
	}

	return inv, nil
}

// OldestOpenInvoice returns the client's earliest invoice that is not fully paid.
func (s *Store) OldestOpenInvoice(ctx context.Context, clientID uuid.UUID) (*ledger.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE client_id = $1 AND status <> $2
		ORDER BY date ASC, created_at ASC
		LIMIT 1
	`

	inv, err := scanInvoice(s.db.QueryRowContext(ctx, query, clientID, ledger.InvoicePaid))
	if err != nil {
		return nil, fmt.Errorf("finding open invoice: %w", notFound(err, "invoice"))
	}

	return inv, nil
}

func (s *Store) ListInvoices(ctx context.Context, filter ledger.InvoiceFilter) ([]*ledger.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.ClientID != nil {
		query += fmt.Sprintf(" AND client_id = $%d", argIdx)

		args = append(args, *filter.ClientID)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
	}

	query += ` ORDER BY date DESC, number DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*ledger.Invoice

	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning invoice: %w", err)
		}

		invoices = append(invoices, inv)
	}

	return invoices, rows.Err()
}

func (s *Store) ListPayments(ctx context.Context, filter ledger.PaymentFilter) ([]*ledger.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments`

	var args []any

	if filter.InvoiceID != nil {
		query += ` WHERE invoice_id = $1`

		args = append(args, *filter.InvoiceID)
	}

	query += ` ORDER BY date ASC, created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer rows.Close()

	var payments []*ledger.Payment

	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}

		payments = append(payments, p)
	}

	return payments, rows.Err()
}

func (s *Store) PaymentReferenceExists(ctx context.Context, reference string) (bool, error) {
	var exists bool

	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM payments WHERE reference = $1)`, reference,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking payment reference: %w", err)
	}

	return exists, nil
}

func (s *Store) ListPayables(ctx context.Context, filter ledger.PayableFilter) ([]*ledger.AccountPayable, error) {
	query := `SELECT ` + payableColumns + ` FROM account_payables WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.RentalID != nil {
		query += fmt.Sprintf(" AND rental_id = $%d", argIdx)

		args = append(args, *filter.RentalID)
	}

	query += ` ORDER BY date DESC, created_at ASC`

	return listPayables(ctx, s.db, query, args...)
}

func (s *Store) ListRefunds(ctx context.Context, status *ledger.RefundStatus) ([]*ledger.Refund, error) {
	query := `SELECT ` + refundColumns + ` FROM refunds`

	var args []any

	if status != nil {
		query += ` WHERE status = $1`

		args = append(args, *status)
	}

	query += ` ORDER BY date DESC, created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing refunds: %w", err)
	}
	defer rows.Close()

	var refunds []*ledger.Refund

	for rows.Next() {
		r, err := scanRefund(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning refund: %w", err)
		}

		refunds = append(refunds, r)
	}

	return refunds, rows.Err()
}

func (s *Store) ListExpenses(ctx context.Context, filter ledger.ExpenseFilter) ([]*ledger.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.CategoryID != nil {
		query += fmt.Sprintf(" AND category_id = $%d", argIdx)

		args = append(args, *filter.CategoryID)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
	}

	query += ` ORDER BY date DESC, number DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*ledger.Expense

	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}

		expenses = append(expenses, e)
	}

	return expenses, rows.Err()
}
