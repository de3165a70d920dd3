// Package ledger keeps rentals, invoices, payments, third-party payables,
// refunds and expenses mutually consistent.
package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RentalStatus string

const (
	RentalActive   RentalStatus = "Activo"
	RentalFinished RentalStatus = "Finalizado"
)

// Rental is a contract for one vehicle over a date range. Amounts are in
// base currency units.
type Rental struct {
	ID              uuid.UUID
	VehicleID       uuid.UUID
	ClientID        uuid.UUID
	AgentID         *uuid.UUID
	AgentName       string // snapshot of the agent reference at booking
	StartDate       time.Time
	EndDate         time.Time
	OriginalEndDate *time.Time
	DailyRate       int64
	TotalAmount     int64
	Status          RentalStatus
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

type InvoiceStatus string

const (
	InvoicePending InvoiceStatus = "Pendiente"
	InvoicePartial InvoiceStatus = "Parcial"
	InvoicePaid    InvoiceStatus = "Pagado"
)

// InvoiceStatusFor derives the status from the paid amount. It is the only
// place an invoice status is computed.
func InvoiceStatusFor(paid, amount int64) InvoiceStatus {
	switch {
	case paid <= 0:
		return InvoicePending
	case paid >= amount:
		return InvoicePaid
	default:
		return InvoicePartial
	}
}

type Invoice struct {
	ID         uuid.UUID
	Number     string
	ClientID   uuid.UUID
	RentalID   *uuid.UUID
	Amount     int64
	PaidAmount int64
	Status     InvoiceStatus
	Details    *InvoiceDetails
	Date       time.Time
	CreatedAt  time.Time
}

func (i *Invoice) Outstanding() int64 {
	return i.Amount - i.PaidAmount
}

// InvoiceDetails is the free-form payload stored with an invoice.
type InvoiceDetails struct {
	Note string `json:"note,omitempty"`
	Days int    `json:"days,omitempty"`
	// DaysAdded is fractional when the billed amount is not a whole number
	// of days. It is encoded as a decimal string.
	DaysAdded       decimal.Decimal `json:"days_added,omitzero"`
	DailyRate       int64           `json:"daily_rate,omitempty"`
	StartDate       *time.Time      `json:"start_date,omitempty"`
	EndDate         *time.Time      `json:"end_date,omitempty"`
	OriginalEndDate *time.Time      `json:"original_end_date,omitempty"`
	ActualEndDate   *time.Time      `json:"actual_end_date,omitempty"`
	SourceRentalID  *uuid.UUID      `json:"source_rental_id,omitempty"`
}

type Payment struct {
	ID        uuid.UUID
	Number    string
	InvoiceID uuid.UUID
	ClientID  uuid.UUID
	Amount    int64
	Date      time.Time
	Reference string // bank statement fingerprint, empty for manual payments
	CreatedAt time.Time
}

type PayableType string

const (
	PayableOwner PayableType = "Propietario"
	PayableAgent PayableType = "Comercial"
)

type PayableStatus string

const (
	PayableHeld    PayableStatus = "Retenido"
	PayablePending PayableStatus = "Pendiente"
	PayablePaid    PayableStatus = "Pagado"
)

// AccountPayable is money the business owes a vehicle owner or agent for a rental.
type AccountPayable struct {
	ID                  uuid.UUID
	RentalID            uuid.UUID
	Type                PayableType
	BeneficiaryName     string
	BeneficiaryDNI      string
	Amount              int64
	Status              PayableStatus
	Date                time.Time
	ReleasedByPaymentID *uuid.UUID
	CreatedAt           time.Time
	UpdatedAt           *time.Time
}

type RefundStatus string

const (
	RefundPending  RefundStatus = "Pendiente"
	RefundRefunded RefundStatus = "Reembolsado"
)

type Refund struct {
	ID        uuid.UUID
	Number    string
	InvoiceID uuid.UUID
	ClientID  uuid.UUID
	Amount    int64
	Reason    string
	Date      time.Time
	Status    RefundStatus
	CreatedAt time.Time
	UpdatedAt *time.Time
}

const ExpensePaid = "Pagado"

type Expense struct {
	ID          uuid.UUID
	Number      string
	Date        time.Time
	Amount      int64
	Description string
	CategoryID  uuid.UUID
	Status      string
	CreatedAt   time.Time
}

// shortRef is the last 8 characters of an id, used in generated descriptions.
func shortRef(id uuid.UUID) string {
	s := id.String()
	return s[len(s)-8:]
}
