package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fleetledger/internal/catalog"
)

// Document names a numbered document table.
type Document string

const (
	DocInvoice Document = "invoices"
	DocPayment Document = "payments"
	DocRefund  Document = "refunds"
	DocExpense Document = "expenses"
)

type RentalFilter struct {
	Status   *RentalStatus
	ClientID *uuid.UUID
}

type InvoiceFilter struct {
	Status    *InvoiceStatus
	ClientID  *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}

type PaymentFilter struct {
	InvoiceID *uuid.UUID
}

type PayableFilter struct {
	Status   *PayableStatus
	RentalID *uuid.UUID
}

type ExpenseFilter struct {
	CategoryID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

//go:generate mockgen -source=repository.go -destination=repository_mock.go -package=ledger
type Repository interface {
	Begin(ctx context.Context) (Tx, error)

	GetRental(ctx context.Context, id uuid.UUID) (*Rental, error)
	ListRentals(ctx context.Context, filter RentalFilter) ([]*Rental, error)
	GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error)
	ListInvoices(ctx context.Context, filter InvoiceFilter) ([]*Invoice, error)
	FindInvoiceByNumber(ctx context.Context, number string) (*Invoice, error)
	OldestOpenInvoice(ctx context.Context, clientID uuid.UUID) (*Invoice, error)
	ListPayments(ctx context.Context, filter PaymentFilter) ([]*Payment, error)
	PaymentReferenceExists(ctx context.Context, reference string) (bool, error)
	ListPayables(ctx context.Context, filter PayableFilter) ([]*AccountPayable, error)
	ListRefunds(ctx context.Context, status *RefundStatus) ([]*Refund, error)
	ListExpenses(ctx context.Context, filter ExpenseFilter) ([]*Expense, error)
}

// Tx is one unit of work. Lock* methods take a row lock held until Commit
// or Rollback.
type Tx interface {
	Commit() error
	Rollback() error

	LastDocumentNumber(ctx context.Context, doc Document, prefix, suffix string) (string, error)
	NextSequence(ctx context.Context, prefix, year string, floor int) (int, error)

	GetVehicle(ctx context.Context, id uuid.UUID) (*catalog.Vehicle, error)
	FindAgent(ctx context.Context, ref string) (*catalog.Agent, error)
	SetVehicleStatus(ctx context.Context, id uuid.UUID, status catalog.VehicleStatus) error

	CreateRental(ctx context.Context, rental *Rental) error
	LockRental(ctx context.Context, id uuid.UUID) (*Rental, error)
	UpdateRental(ctx context.Context, rental *Rental) error
	DeleteRental(ctx context.Context, id uuid.UUID) error
	CountInvoicesByRental(ctx context.Context, rentalID uuid.UUID) (int64, error)

	CreateInvoice(ctx context.Context, inv *Invoice) error
	LockInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error)
	RentalInvoice(ctx context.Context, rentalID uuid.UUID) (*Invoice, error)
	UpdateInvoicePaid(ctx context.Context, id uuid.UUID, paid int64, status InvoiceStatus) error
	DeleteInvoice(ctx context.Context, id uuid.UUID) error
	CountPaymentsByInvoice(ctx context.Context, invoiceID uuid.UUID) (int64, error)
	CountRefundsByInvoice(ctx context.Context, invoiceID uuid.UUID) (int64, error)

	CreatePayment(ctx context.Context, payment *Payment) error
	GetPayment(ctx context.Context, id uuid.UUID) (*Payment, error)
	DeletePayment(ctx context.Context, id uuid.UUID) error

	CreatePayable(ctx context.Context, ap *AccountPayable) error
	LockPayable(ctx context.Context, id uuid.UUID) (*AccountPayable, error)
	ListRentalPayables(ctx context.Context, rentalID uuid.UUID, statuses []PayableStatus) ([]*AccountPayable, error)
	UpdatePayableAmount(ctx context.Context, id uuid.UUID, amount int64) error
	UpdatePayableStatus(ctx context.Context, id uuid.UUID, status PayableStatus) error
	ReleasePayables(ctx context.Context, rentalID, paymentID uuid.UUID) (int64, error)

	CreateRefund(ctx context.Context, refund *Refund) error
	LockRefund(ctx context.Context, id uuid.UUID) (*Refund, error)
	UpdateRefundStatus(ctx context.Context, id uuid.UUID, status RefundStatus) error

	GetCategory(ctx context.Context, id uuid.UUID) (*catalog.ExpenseCategory, error)
	EnsureCategory(ctx context.Context, name, description string) (*catalog.ExpenseCategory, error)
	CreateExpense(ctx context.Context, expense *Expense) error
}
