// Package resource renders ledger records as JSON response bodies.
package resource

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fleetledger/internal/ledger"
)

type Rental struct {
	ID              uuid.UUID           `json:"id"`
	VehicleID       uuid.UUID           `json:"vehicle_id"`
	ClientID        uuid.UUID           `json:"client_id"`
	AgentID         *uuid.UUID          `json:"agent_id,omitempty"`
	AgentName       string              `json:"agent_name,omitempty"`
	StartDate       time.Time           `json:"start_date"`
	EndDate         time.Time           `json:"end_date"`
	OriginalEndDate *time.Time          `json:"original_end_date,omitempty"`
	DailyRate       int64               `json:"daily_rate"`
	TotalAmount     int64               `json:"total_amount"`
	Status          ledger.RentalStatus `json:"status"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       *time.Time          `json:"updated_at,omitempty"`
}

type Invoice struct {
	ID          uuid.UUID              `json:"id"`
	Number      string                 `json:"number"`
	ClientID    uuid.UUID              `json:"client_id"`
	RentalID    *uuid.UUID             `json:"rental_id,omitempty"`
	Amount      int64                  `json:"amount"`
	PaidAmount  int64                  `json:"paid_amount"`
	Outstanding int64                  `json:"outstanding"`
	Status      ledger.InvoiceStatus   `json:"status"`
	Details     *ledger.InvoiceDetails `json:"details,omitempty"`
	Date        time.Time              `json:"date"`
	CreatedAt   time.Time              `json:"created_at"`
}

type Payment struct {
	ID        uuid.UUID `json:"id"`
	Number    string    `json:"number"`
	InvoiceID uuid.UUID `json:"invoice_id"`
	ClientID  uuid.UUID `json:"client_id"`
	Amount    int64     `json:"amount"`
	Date      time.Time `json:"date"`
	Reference string    `json:"reference,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Payable struct {
	ID                  uuid.UUID            `json:"id"`
	RentalID            uuid.UUID            `json:"rental_id"`
	Type                ledger.PayableType   `json:"type"`
	BeneficiaryName     string               `json:"beneficiary_name"`
	BeneficiaryDNI      string               `json:"beneficiary_dni,omitempty"`
	Amount              int64                `json:"amount"`
	Status              ledger.PayableStatus `json:"status"`
	Date                time.Time            `json:"date"`
	ReleasedByPaymentID *uuid.UUID           `json:"released_by_payment_id,omitempty"`
	CreatedAt           time.Time            `json:"created_at"`
	UpdatedAt           *time.Time           `json:"updated_at,omitempty"`
}

type Refund struct {
	ID        uuid.UUID           `json:"id"`
	Number    string              `json:"number"`
	InvoiceID uuid.UUID           `json:"invoice_id"`
	ClientID  uuid.UUID           `json:"client_id"`
	Amount    int64               `json:"amount"`
	Reason    string              `json:"reason"`
	Date      time.Time           `json:"date"`
	Status    ledger.RefundStatus `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt *time.Time          `json:"updated_at,omitempty"`
}

type Expense struct {
	ID          uuid.UUID `json:"id"`
	Number      string    `json:"number"`
	Date        time.Time `json:"date"`
	Amount      int64     `json:"amount"`
	Description string    `json:"description"`
	CategoryID  uuid.UUID `json:"category_id"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromRental(r *ledger.Rental) *Rental {
	if r == nil {
		return nil
	}

	return &Rental{
		ID:              r.ID,
		VehicleID:       r.VehicleID,
		ClientID:        r.ClientID,
		AgentID:         r.AgentID,
		AgentName:       r.AgentName,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		OriginalEndDate: r.OriginalEndDate,
		DailyRate:       r.DailyRate,
		TotalAmount:     r.TotalAmount,
		Status:          r.Status,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func FromInvoice(i *ledger.Invoice) *Invoice {
	if i == nil {
		return nil
	}

	return &Invoice{
		ID:          i.ID,
		Number:      i.Number,
		ClientID:    i.ClientID,
		RentalID:    i.RentalID,
		Amount:      i.Amount,
		PaidAmount:  i.PaidAmount,
		Outstanding: i.Outstanding(),
		Status:      i.Status,
		Details:     i.Details,
		Date:        i.Date,
		CreatedAt:   i.CreatedAt,
	}
}

func FromPayment(p *ledger.Payment) *Payment {
	if p == nil {
		return nil
	}

	return &Payment{
		ID:        p.ID,
		Number:    p.Number,
		InvoiceID: p.InvoiceID,
		ClientID:  p.ClientID,
		Amount:    p.Amount,
		Date:      p.Date,
		Reference: p.Reference,
		CreatedAt: p.CreatedAt,
	}
}

func FromPayable(ap *ledger.AccountPayable) *Payable {
	if ap == nil {
		return nil
	}

	return &Payable{
		ID:                  ap.ID,
		RentalID:            ap.RentalID,
		Type:                ap.Type,
		BeneficiaryName:     ap.BeneficiaryName,
		BeneficiaryDNI:      ap.BeneficiaryDNI,
		Amount:              ap.Amount,
		Status:              ap.Status,
		Date:                ap.Date,
		ReleasedByPaymentID: ap.ReleasedByPaymentID,
		CreatedAt:           ap.CreatedAt,
		UpdatedAt:           ap.UpdatedAt,
	}
}

func FromRefund(r *ledger.Refund) *Refund {
	if r == nil {
		return nil
	}

	return &Refund{
		ID:        r.ID,
		Number:    r.Number,
		InvoiceID: r.InvoiceID,
		ClientID:  r.ClientID,
		Amount:    r.Amount,
		Reason:    r.Reason,
		Date:      r.Date,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func FromExpense(e *ledger.Expense) *Expense {
	if e == nil {
		return nil
	}

	return &Expense{
		ID:          e.ID,
		Number:      e.Number,
		Date:        e.Date,
		Amount:      e.Amount,
		Description: e.Description,
		CategoryID:  e.CategoryID,
		Status:      e.Status,
		CreatedAt:   e.CreatedAt,
	}
}

// List maps every record with fn, returning an empty slice rather than nil.
func List[T, R any](items []T, fn func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}

	return out
}
