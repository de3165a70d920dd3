package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fleetledger/internal/actor"
	"github.com/MrJamesThe3rd/fleetledger/internal/apperr"
)

// Billing issues invoices and applies payments against them.
type Billing struct {
	*core
	rentals *Rentals
}

type IssueInvoiceParams struct {
	ClientID uuid.UUID
	RentalID *uuid.UUID
	Amount   int64
	Date     time.Time
	Details  *InvoiceDetails
}

func (b *Billing) IssueInvoice(ctx context.Context, p IssueInvoiceParams) (inv *Invoice, err error) {
	defer b.observe("issue_invoice", time.Now(), &err)

	if p.ClientID == uuid.Nil {
		return nil, apperr.Validation("missing client")
	}

	if p.Amount <= 0 {
		return nil, apperr.Validation("invoice amount must be positive")
	}

	now := b.now()
	if p.Date.IsZero() {
		p.Date = now
	}

	err = b.inTx(ctx, func(tx Tx) error {
		if p.RentalID != nil {
			rental, err := tx.LockRental(ctx, *p.RentalID)
			if err != nil {
				return err
			}

			if rental.ClientID != p.ClientID {
				return apperr.Validation("rental belongs to another client")
			}
		}

		number, err := b.seq.Next(ctx, tx, SeriesInvoice, now)
		if err != nil {
			return err
		}

		inv = &Invoice{
			Number:   number,
			ClientID: p.ClientID,
			RentalID: p.RentalID,
			Amount:   p.Amount,
			Status:   InvoicePending,
			Details:  p.Details,
			Date:     p.Date,
		}

		return tx.CreateInvoice(ctx, inv)
	})
	if err != nil {
		return nil, err
	}

	return inv, nil
}

type RecordPaymentParams struct {
	InvoiceID uuid.UUID
	Amount    int64
	Date      time.Time
	// Reference identifies the bank statement line the payment came from.
	Reference string
}

type PaymentResult struct {
	Payment          *Payment
	Invoice          *Invoice
	ReleasedPayables int64
}

// RecordPayment applies a payment to an invoice. When the payment settles the
// invoice of a rental, that rental's held payables are released.
func (b *Billing) RecordPayment(ctx context.Context, p RecordPaymentParams) (res *PaymentResult, err error) {
	defer b.observe("record_payment", time.Now(), &err)

	if p.InvoiceID == uuid.Nil {
		return nil, apperr.Validation("missing invoice")
	}

	if p.Amount <= 0 {
		return nil, apperr.Validation("payment amount must be positive")
	}

	now := b.now()
	if p.Date.IsZero() {
		p.Date = now
	}

	res = &PaymentResult{}

	err = b.inTx(ctx, func(tx Tx) error {
		inv, err := tx.LockInvoice(ctx, p.InvoiceID)
		if err != nil {
			return err
		}

		if p.Amount > inv.Outstanding() {
			return apperr.Validation("payment of %d exceeds outstanding balance %d on %s",
				p.Amount, inv.Outstanding(), inv.Number)
		}

		number, err := b.seq.Next(ctx, tx, SeriesPayment, now)
		if err != nil {
			return err
		}

		payment := &Payment{
			Number:    number,
			InvoiceID: inv.ID,
			ClientID:  inv.ClientID,
			Amount:    p.Amount,
			Date:      p.Date,
			Reference: p.Reference,
		}
		if err := tx.CreatePayment(ctx, payment); err != nil {
			return err
		}

		wasPaid := inv.Status == InvoicePaid
		inv.PaidAmount += p.Amount
		inv.Status = InvoiceStatusFor(inv.PaidAmount, inv.Amount)

		if err := tx.UpdateInvoicePaid(ctx, inv.ID, inv.PaidAmount, inv.Status); err != nil {
			return err
		}

		res.Payment = payment
		res.Invoice = inv

		if inv.Status != InvoicePaid || wasPaid {
			return nil
		}

		rentalID, err := settledRental(ctx, tx, inv)
		if err != nil || rentalID == nil {
			return err
		}

		res.ReleasedPayables, err = b.rentals.Release(ctx, tx, *rentalID, payment.ID)

		return err
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

// settledRental returns the rental whose payables a fully paid invoice
// releases: the rental it was issued for, or the source rental of a
// supplementary invoice when that rental was never invoiced at booking.
func settledRental(ctx context.Context, tx Tx, inv *Invoice) (*uuid.UUID, error) {
	if inv.RentalID != nil {
		return inv.RentalID, nil
	}

	if inv.Details == nil || inv.Details.SourceRentalID == nil {
		return nil, nil
	}

	_, err := tx.RentalInvoice(ctx, *inv.Details.SourceRentalID)
	switch {
	case err == nil:
		return nil, nil
	case errors.Is(err, apperr.ErrNotFound):
		return inv.Details.SourceRentalID, nil
	default:
		return nil, fmt.Errorf("getting rental invoice: %w", err)
	}
}

// DeletePayment removes a payment and takes it back off its invoice. Admin
// only. Payables released by the payment stay released.
func (b *Billing) DeletePayment(ctx context.Context, id uuid.UUID) (inv *Invoice, err error) {
	defer b.observe("delete_payment", time.Now(), &err)

	if err := actor.RequireAdmin(ctx, "deleting a payment"); err != nil {
		return nil, err
	}

	err = b.inTx(ctx, func(tx Tx) error {
		payment, err := tx.GetPayment(ctx, id)
		if err != nil {
			return err
		}

		inv, err = tx.LockInvoice(ctx, payment.InvoiceID)
		if err != nil && !errors.Is(err, apperr.ErrNotFound) {
			return err
		}

		if err := tx.DeletePayment(ctx, id); err != nil {
			return err
		}

		if inv == nil {
			return nil
		}

		inv.PaidAmount = max(inv.PaidAmount-payment.Amount, 0)
		inv.Status = InvoiceStatusFor(inv.PaidAmount, inv.Amount)

		return tx.UpdateInvoicePaid(ctx, inv.ID, inv.PaidAmount, inv.Status)
	})
	if err != nil {
		return nil, err
	}

	return inv, nil
}

// DeleteInvoice removes an invoice with no payments and no refunds. Admin only.
func (b *Billing) DeleteInvoice(ctx context.Context, id uuid.UUID) (err error) {
	defer b.observe("delete_invoice", time.Now(), &err)

	if err := actor.RequireAdmin(ctx, "deleting an invoice"); err != nil {
		return err
	}

	return b.inTx(ctx, func(tx Tx) error {
		if _, err := tx.LockInvoice(ctx, id); err != nil {
			return err
		}

		payments, err := tx.CountPaymentsByInvoice(ctx, id)
		if err != nil {
			return err
		}

		refunds, err := tx.CountRefundsByInvoice(ctx, id)
		if err != nil {
			return err
		}

		if err := apperr.Blocked("invoice", map[string]int64{"payments": payments, "refunds": refunds}); err != nil {
			return err
		}

		return tx.DeleteInvoice(ctx, id)
	})
}

func (b *Billing) GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return b.repo.GetInvoice(ctx, id)
}

func (b *Billing) ListInvoices(ctx context.Context, filter InvoiceFilter) ([]*Invoice, error) {
	return b.repo.ListInvoices(ctx, filter)
}

func (b *Billing) ListPayments(ctx context.Context, filter PaymentFilter) ([]*Payment, error) {
	return b.repo.ListPayments(ctx, filter)
}
