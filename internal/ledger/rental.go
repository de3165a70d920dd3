package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fleetledger/internal/actor"
	"github.com/MrJamesThe3rd/fleetledger/internal/apperr"
	"github.com/MrJamesThe3rd/fleetledger/internal/catalog"
)

// Rentals books rentals and the payables they generate.
type Rentals struct {
	*core
}

type CreateRentalParams struct {
	VehicleID uuid.UUID
	ClientID  uuid.UUID
	StartDate time.Time
	EndDate   time.Time
	DailyRate int64
	// Agent is an agent id or exact name. Unknown names are kept as free text.
	Agent string
	// IssueInvoice also issues the booking invoice for the rental total.
	IssueInvoice bool
}

// Booking is everything written when a rental is created.
type Booking struct {
	Rental   *Rental
	Payables []*AccountPayable
	Invoice  *Invoice
}

func (p CreateRentalParams) validate() error {
	var missing []string

	if p.VehicleID == uuid.Nil {
		missing = append(missing, "vehicle")
	}

	if p.ClientID == uuid.Nil {
		missing = append(missing, "client")
	}

	if p.StartDate.IsZero() {
		missing = append(missing, "start date")
	}

	if p.EndDate.IsZero() {
		missing = append(missing, "end date")
	}

	if p.DailyRate == 0 {
		missing = append(missing, "daily rate")
	}

	if len(missing) > 0 {
		return apperr.Validation("missing %s", strings.Join(missing, ", "))
	}

	if p.DailyRate < 0 {
		return apperr.Validation("daily rate must be positive")
	}

	if p.EndDate.Before(p.StartDate) {
		return apperr.Validation("end date is before start date")
	}

	return nil
}

// Create persists a rental priced at dailyRate times the started days, with
// its payables held until the rental is paid for. The vehicle is marked rented.
func (r *Rentals) Create(ctx context.Context, p CreateRentalParams) (booking *Booking, err error) {
	defer r.observe("create_rental", time.Now(), &err)

	if err := p.validate(); err != nil {
		return nil, err
	}

	now := r.now()
	days := BillableDays(p.StartDate, p.EndDate)

	rental := &Rental{
		VehicleID:   p.VehicleID,
		ClientID:    p.ClientID,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		DailyRate:   p.DailyRate,
		TotalAmount: p.DailyRate * days,
		Status:      RentalActive,
	}
	booking = &Booking{Rental: rental}

	err = r.inTx(ctx, func(tx Tx) error {
		vehicle, err := tx.GetVehicle(ctx, p.VehicleID)
		if err != nil {
			return fmt.Errorf("getting vehicle: %w", err)
		}

		agent, err := resolveAgent(ctx, tx, p.Agent)
		if err != nil {
			return err
		}

		if agent != nil {
			rental.AgentID = agent.ID
			rental.AgentName = agent.Name
		}

		if err := tx.CreateRental(ctx, rental); err != nil {
			return err
		}

		for _, share := range r.payout.Compute(rental.TotalAmount, vehicle, agent) {
			ap := &AccountPayable{
				RentalID:        rental.ID,
				Type:            share.Type,
				BeneficiaryName: share.BeneficiaryName,
				BeneficiaryDNI:  share.BeneficiaryDNI,
				Amount:          share.Amount,
				Status:          PayableHeld,
				Date:            now,
			}
			if err := tx.CreatePayable(ctx, ap); err != nil {
				return err
			}

			booking.Payables = append(booking.Payables, ap)
		}

		if p.IssueInvoice {
			inv, err := r.bookingInvoice(ctx, tx, rental, days, now)
			if err != nil {
				return err
			}

			booking.Invoice = inv
		}

		return tx.SetVehicleStatus(ctx, vehicle.ID, catalog.VehicleRented)
	})
	if err != nil {
		return nil, err
	}

	return booking, nil
}

func (r *Rentals) bookingInvoice(ctx context.Context, tx Tx, rental *Rental, days int64, now time.Time) (*Invoice, error) {
	number, err := r.seq.Next(ctx, tx, SeriesInvoice, now)
	if err != nil {
		return nil, err
	}

	start, end := rental.StartDate, rental.EndDate
	inv := &Invoice{
		Number:   number,
		ClientID: rental.ClientID,
		RentalID: &rental.ID,
		Amount:   rental.TotalAmount,
		Status:   InvoicePending,
		Details: &InvoiceDetails{
			Days:      int(days),
			DailyRate: rental.DailyRate,
			StartDate: &start,
			EndDate:   &end,
		},
		Date: now,
	}

	if err := tx.CreateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

// resolveAgent looks the reference up by id or exact name. A reference that
// matches no agent is kept as a free-text beneficiary with no DNI.
func resolveAgent(ctx context.Context, tx Tx, ref string) (*AgentRef, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, nil
	}

	agent, err := tx.FindAgent(ctx, ref)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return &AgentRef{Name: ref}, nil
		}

		return nil, fmt.Errorf("finding agent: %w", err)
	}

	return &AgentRef{ID: &agent.ID, Name: agent.Name, DNI: agent.DNI}, nil
}

// Release moves the rental's held payables to pending. It runs inside the
// caller's transaction and records which payment released them.
func (r *Rentals) Release(ctx context.Context, tx Tx, rentalID, paymentID uuid.UUID) (int64, error) {
	n, err := tx.ReleasePayables(ctx, rentalID, paymentID)
	if err != nil {
		return 0, fmt.Errorf("releasing payables: %w", err)
	}

	return n, nil
}

type UpdateRentalParams struct {
	// EndDate moves the booked end date. The first change keeps the booked
	// date in OriginalEndDate.
	EndDate *time.Time
	// Status may only move an active rental to Finalizado, which cancels it
	// without billing the difference.
	Status *RentalStatus
}

type RentalUpdate struct {
	Rental           *Rental
	AdjustedPayables []*AccountPayable
}

// Update extends, shortens or cancels a rental. A new end date reprices the
// rental total and its unpaid payables; invoices are left for Finalize to
// reconcile. Finalized rentals can only be corrected by an admin.
func (r *Rentals) Update(ctx context.Context, id uuid.UUID, p UpdateRentalParams) (res *RentalUpdate, err error) {
	defer r.observe("update_rental", time.Now(), &err)

	if p.EndDate == nil && p.Status == nil {
		return nil, apperr.Validation("nothing to update")
	}

	if p.Status != nil && *p.Status != RentalActive && *p.Status != RentalFinished {
		return nil, apperr.Validation("unknown rental status %q", *p.Status)
	}

	res = &RentalUpdate{}

	err = r.inTx(ctx, func(tx Tx) error {
		rental, err := tx.LockRental(ctx, id)
		if err != nil {
			return err
		}

		res.Rental = rental
		finished := rental.Status == RentalFinished

		if finished {
			if err := actor.RequireAdmin(ctx, "correcting a finalized rental"); err != nil {
				return err
			}

			if p.Status != nil && *p.Status == RentalActive {
				return apperr.InvalidState("a finalized rental cannot be reopened")
			}
		}

		if p.EndDate != nil && !p.EndDate.Equal(rental.EndDate) {
			if p.EndDate.Before(rental.StartDate) {
				return apperr.Validation("end date is before start date")
			}

			if rental.OriginalEndDate == nil {
				booked := rental.EndDate
				rental.OriginalEndDate = &booked
			}

			rental.EndDate = *p.EndDate
			rental.TotalAmount = rental.DailyRate * BillableDays(rental.StartDate, rental.EndDate)

			res.AdjustedPayables, err = r.repricePayables(ctx, tx, rental.ID, rental.TotalAmount)
			if err != nil {
				return err
			}
		}

		cancel := !finished && p.Status != nil && *p.Status == RentalFinished
		if cancel {
			rental.Status = RentalFinished
		}

		if err := tx.UpdateRental(ctx, rental); err != nil {
			return err
		}

		if cancel {
			return tx.SetVehicleStatus(ctx, rental.VehicleID, catalog.VehicleAvailable)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

// Cancel closes an active rental early and frees its vehicle. Unlike
// Finalize it issues no extra invoice or refund.
func (r *Rentals) Cancel(ctx context.Context, id uuid.UUID) (*RentalUpdate, error) {
	return r.Update(ctx, id, UpdateRentalParams{Status: new(RentalFinished)})
}

// Delete removes a rental that was never invoiced, along with its payables.
// Admin only.
func (r *Rentals) Delete(ctx context.Context, id uuid.UUID) (err error) {
	defer r.observe("delete_rental", time.Now(), &err)

	if err := actor.RequireAdmin(ctx, "deleting a rental"); err != nil {
		return err
	}

	return r.inTx(ctx, func(tx Tx) error {
		rental, err := tx.LockRental(ctx, id)
		if err != nil {
			return err
		}

		invoices, err := tx.CountInvoicesByRental(ctx, id)
		if err != nil {
			return err
		}

		if err := apperr.Blocked("rental", map[string]int64{"invoices": invoices}); err != nil {
			return err
		}

		if err := tx.DeleteRental(ctx, id); err != nil {
			return err
		}

		if rental.Status == RentalActive {
			return tx.SetVehicleStatus(ctx, rental.VehicleID, catalog.VehicleAvailable)
		}

		return nil
	})
}

func (r *Rentals) Get(ctx context.Context, id uuid.UUID) (*Rental, error) {
	return r.repo.GetRental(ctx, id)
}

func (r *Rentals) List(ctx context.Context, filter RentalFilter) ([]*Rental, error) {
	return r.repo.ListRentals(ctx, filter)
}

// Payables lists the payables spawned by a rental.
func (r *Rentals) Payables(ctx context.Context, id uuid.UUID) ([]*AccountPayable, error) {
	return r.repo.ListPayables(ctx, PayableFilter{RentalID: &id})
}
