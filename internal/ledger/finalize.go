package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fleetledger/internal/apperr"
	"github.com/MrJamesThe3rd/fleetledger/internal/catalog"
)

// RefundReasonEarlyReturn is the reason recorded on refunds issued when a
// vehicle comes back before the booked end date.
const RefundReasonEarlyReturn = "Devolución anticipada de vehículo"

// Finalizer closes rentals and reconciles what was billed with what was used.
type Finalizer struct {
	*core
}

type FinalizeResult struct {
	Rental       *Rental
	ActualDays   int64
	ActualTotal  int64
	BilledAmount int64
	// Diff is ActualTotal minus BilledAmount: positive means the client owes
	// more, negative means the client is owed a refund.
	Diff             int64
	ExtraInvoice     *Invoice
	Refund           *Refund
	AdjustedPayables []*AccountPayable
	// UnissuedRefund is the refund that could not be recorded because the
	// rental has no invoice to refund against.
	UnissuedRefund int64
	Warnings       []string
}

// Finalize ends an active rental at actualEnd. In one transaction it closes
// the rental, frees the vehicle, issues an extra invoice or a refund for the
// difference against the booking invoice, and recomputes unpaid payables.
func (f *Finalizer) Finalize(ctx context.Context, rentalID uuid.UUID, actualEnd time.Time) (res *FinalizeResult, err error) {
	defer f.observe("finalize_rental", time.Now(), &err)

	if rentalID == uuid.Nil {
		return nil, apperr.Validation("missing rental")
	}

	if actualEnd.IsZero() {
		return nil, apperr.Validation("missing actual end date")
	}

	now := f.now()
	res = &FinalizeResult{}

	err = f.inTx(ctx, func(tx Tx) error {
		rental, err := tx.LockRental(ctx, rentalID)
		if err != nil {
			return err
		}

		if rental.Status == RentalFinished {
			return apperr.InvalidState("rental is already finalized")
		}

		res.Rental = rental
		res.ActualDays = BillableDays(rental.StartDate, actualEnd)
		res.ActualTotal = rental.DailyRate * res.ActualDays

		invoice, err := tx.RentalInvoice(ctx, rental.ID)
		if err != nil && !errors.Is(err, apperr.ErrNotFound) {
			return fmt.Errorf("getting rental invoice: %w", err)
		}

		if invoice != nil {
			res.BilledAmount = invoice.Amount
		}

		res.Diff = res.ActualTotal - res.BilledAmount

		bookedEnd := rental.EndDate
		if rental.OriginalEndDate == nil {
			rental.OriginalEndDate = &bookedEnd
		}

		rental.EndDate = actualEnd
		rental.Status = RentalFinished
		rental.TotalAmount = res.ActualTotal

		if err := tx.UpdateRental(ctx, rental); err != nil {
			return err
		}

		if err := tx.SetVehicleStatus(ctx, rental.VehicleID, catalog.VehicleAvailable); err != nil {
			return err
		}

		switch {
		case res.Diff > 0:
			inv, err := f.extraInvoice(ctx, tx, rental, res, bookedEnd, actualEnd, now)
			if err != nil {
				return err
			}

			res.ExtraInvoice = inv
		case res.Diff < 0 && invoice != nil:
			refund, err := f.refund(ctx, tx, rental, invoice, -res.Diff, now)
			if err != nil {
				return err
			}

			res.Refund = refund
		case res.Diff < 0:
			res.UnissuedRefund = -res.Diff
			res.Warnings = append(res.Warnings, fmt.Sprintf(
				"refund of %d not issued: rental %s has no invoice", -res.Diff, rental.ID))
		}

		adjusted, err := f.repricePayables(ctx, tx, rental.ID, res.ActualTotal)
		if err != nil {
			return err
		}

		res.AdjustedPayables = adjusted

		return nil
	})
	if err != nil {
		return nil, err
	}

	if res.UnissuedRefund > 0 {
		slog.Warn("refund not issued for rental without invoice",
			"rental_id", rentalID, "amount", res.UnissuedRefund)
	}

	return res, nil
}

func (f *Finalizer) extraInvoice(
	ctx context.Context, tx Tx, rental *Rental, res *FinalizeResult, bookedEnd, actualEnd, now time.Time,
) (*Invoice, error) {
	vehicle, err := tx.GetVehicle(ctx, rental.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("getting vehicle: %w", err)
	}

	number, err := f.seq.Next(ctx, tx, SeriesSupplementary, now)
	if err != nil {
		return nil, err
	}

	billedDays := decimal.NewFromInt(res.BilledAmount).Div(decimal.NewFromInt(rental.DailyRate))
	daysAdded := decimal.NewFromInt(res.ActualDays).Sub(billedDays).Round(2)
	rentalID := rental.ID

	inv := &Invoice{
		Number:   number,
		ClientID: rental.ClientID,
		Amount:   res.Diff,
		Status:   InvoicePending,
		Details: &InvoiceDetails{
			Note:            fmt.Sprintf("%s días excedidos de la renta %s", daysAdded.String(), vehicle.DisplayName()),
			DaysAdded:       daysAdded,
			DailyRate:       rental.DailyRate,
			OriginalEndDate: &bookedEnd,
			ActualEndDate:   &actualEnd,
			SourceRentalID:  &rentalID,
		},
		Date: now,
	}

	if err := tx.CreateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

func (f *Finalizer) refund(ctx context.Context, tx Tx, rental *Rental, invoice *Invoice, amount int64, now time.Time) (*Refund, error) {
	number, err := f.seq.Next(ctx, tx, SeriesRefund, now)
	if err != nil {
		return nil, err
	}

	refund := &Refund{
		Number:    number,
		InvoiceID: invoice.ID,
		ClientID:  rental.ClientID,
		Amount:    amount,
		Reason:    RefundReasonEarlyReturn,
		Date:      now,
		Status:    RefundPending,
	}

	if err := tx.CreateRefund(ctx, refund); err != nil {
		return nil, err
	}

	return refund, nil
}

// repricePayables reprices the rental's unpaid payables against total. Paid
// payables are never touched.
func (c *core) repricePayables(ctx context.Context, tx Tx, rentalID uuid.UUID, total int64) ([]*AccountPayable, error) {
	payables, err := tx.ListRentalPayables(ctx, rentalID, []PayableStatus{PayableHeld, PayablePending})
	if err != nil {
		return nil, fmt.Errorf("listing rental payables: %w", err)
	}

	var adjusted []*AccountPayable

	for _, ap := range payables {
		amount := c.payout.Amount(ap.Type, total)
		if amount == ap.Amount {
			continue
		}

		if err := tx.UpdatePayableAmount(ctx, ap.ID, amount); err != nil {
			return nil, err
		}

		ap.Amount = amount
		adjusted = append(adjusted, ap)
	}

	return adjusted, nil
}
