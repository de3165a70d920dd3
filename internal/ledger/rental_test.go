package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/fleetledger/internal/apperr"
	"github.com/MrJamesThe3rd/fleetledger/internal/catalog"
	"github.com/MrJamesThe3rd/fleetledger/internal/ledger"
)

func TestRentals_Create(t *testing.T) {
	f := newFixture(t)

	booking := f.book(t, false)

	assert.Equal(t, int64(300000), booking.Rental.TotalAmount)
	assert.Equal(t, ledger.RentalActive, booking.Rental.Status)
	assert.Equal(t, &f.agent.ID, booking.Rental.AgentID)
	assert.Equal(t, f.agent.Name, booking.Rental.AgentName)
	assert.Nil(t, booking.Invoice)

	aps := payablesByType(f.store.Payables())
	require.Len(t, aps, 2)

	owner := aps[ledger.PayableOwner]
	assert.Equal(t, int64(240000), owner.Amount)
	assert.Equal(t, ledger.PayableHeld, owner.Status)
	assert.Equal(t, "Marta Pérez", owner.BeneficiaryName)
	assert.Equal(t, "001-0000001-1", owner.BeneficiaryDNI)

	agent := aps[ledger.PayableAgent]
	assert.Equal(t, int64(30000), agent.Amount)
	assert.Equal(t, ledger.PayableHeld, agent.Status)
	assert.Equal(t, "002-0000002-2", agent.BeneficiaryDNI)

	assert.Equal(t, catalog.VehicleRented, f.store.Vehicle(f.vehicle.ID).Status)
}

func TestRentals_Create_BookingInvoice(t *testing.T) {
	f := newFixture(t)

	booking := f.book(t, true)

	require.NotNil(t, booking.Invoice)
	assert.Equal(t, "FC-001/26", booking.Invoice.Number)
	assert.Equal(t, int64(300000), booking.Invoice.Amount)
	assert.Equal(t, ledger.InvoicePending, booking.Invoice.Status)
	assert.Equal(t, &booking.Rental.ID, booking.Invoice.RentalID)
	assert.Equal(t, 3, booking.Invoice.Details.Days)

	second, err := f.ledger.Billing.IssueInvoice(context.Background(), ledger.IssueInvoiceParams{
		ClientID: f.clientID,
		Amount:   5000,
	})
	require.NoError(t, err)
	assert.Equal(t, "FC-002/26", second.Number)
}

func TestRentals_Create_Agents(t *testing.T) {
	type testCase struct {
		name       string
		agent      string
		ownership  catalog.Ownership
		ownerName  string
		wantShares map[ledger.PayableType]string
		wantLinked bool
	}

	tests := []testCase{
		{
			name:       "FreeTextAgent",
			agent:      "Pedro",
			ownership:  catalog.OwnershipOwn,
			wantShares: map[ledger.PayableType]string{ledger.PayableAgent: "Pedro"},
		},
		{
			name:       "KnownAgentByName",
			agent:      "Luis Gómez",
			ownership:  catalog.OwnershipOwn,
			wantShares: map[ledger.PayableType]string{ledger.PayableAgent: "Luis Gómez"},
			wantLinked: true,
		},
		{
			name:       "UnknownOwner",
			ownership:  catalog.OwnershipThirdParty,
			wantShares: map[ledger.PayableType]string{ledger.PayableOwner: ledger.UnknownOwner},
		},
		{
			name:       "OwnVehicleNoAgent",
			ownership:  catalog.OwnershipOwn,
			wantShares: map[ledger.PayableType]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			vehicle := f.store.AddVehicle(catalog.Vehicle{
				Name:      "Hilux",
				Plate:     "L000001",
				Ownership: tt.ownership,
				OwnerName: tt.ownerName,
			})

			booking, err := f.ledger.Rentals.Create(context.Background(), ledger.CreateRentalParams{
				VehicleID: vehicle.ID,
				ClientID:  f.clientID,
				StartDate: days(0),
				EndDate:   days(2),
				DailyRate: 50000,
				Agent:     tt.agent,
			})
			require.NoError(t, err)

			got := make(map[ledger.PayableType]string)
			for _, ap := range booking.Payables {
				got[ap.Type] = ap.BeneficiaryName
			}

			assert.Equal(t, tt.wantShares, got)
			assert.Equal(t, tt.wantLinked, booking.Rental.AgentID != nil)
			assert.Equal(t, tt.agent, booking.Rental.AgentName)
		})
	}
}

func TestRentals_Create_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		params ledger.CreateRentalParams
	}{
		{name: "Empty", params: ledger.CreateRentalParams{}},
		{
			name: "EndBeforeStart",
			params: ledger.CreateRentalParams{
				VehicleID: f.vehicle.ID, ClientID: f.clientID, StartDate: days(3), EndDate: days(1), DailyRate: 1,
			},
		},
		{
			name: "NegativeRate",
			params: ledger.CreateRentalParams{
				VehicleID: f.vehicle.ID, ClientID: f.clientID, StartDate: days(0), EndDate: days(1), DailyRate: -5,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.ledger.Rentals.Create(context.Background(), tt.params)
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}

	assert.Empty(t, f.store.Payables())
}

func TestRentals_Create_UnknownVehicle(t *testing.T) {
	f := newFixture(t)

	_, err := f.ledger.Rentals.Create(context.Background(), ledger.CreateRentalParams{
		VehicleID: uuid.New(),
		ClientID:  f.clientID,
		StartDate: days(0),
		EndDate:   days(1),
		DailyRate: 100,
	})

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestRentals_Create_Atomic(t *testing.T) {
	f := newFixture(t)
	f.store.FailOn("CreatePayable", errors.New("disk full"))

	_, err := f.ledger.Rentals.Create(context.Background(), ledger.CreateRentalParams{
		VehicleID: f.vehicle.ID,
		ClientID:  f.clientID,
		StartDate: days(0),
		EndDate:   days(3),
		DailyRate: 100000,
	})
	require.Error(t, err)

	rentals, err := f.ledger.Rentals.List(context.Background(), ledger.RentalFilter{})
	require.NoError(t, err)
	assert.Empty(t, rentals)
	assert.Empty(t, f.store.Payables())
	assert.Equal(t, catalog.VehicleAvailable, f.store.Vehicle(f.vehicle.ID).Status)
}

func TestRentals_Create_RollsBackOnError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	tx := ledger.NewMockTx(ctrl)

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().GetVehicle(gomock.Any(), gomock.Any()).Return(nil, apperr.NotFound("vehicle"))
	tx.EXPECT().Rollback().Return(nil)

	_, err := ledger.New(repo).Rentals.Create(context.Background(), ledger.CreateRentalParams{
		VehicleID: uuid.New(),
		ClientID:  uuid.New(),
		StartDate: days(0),
		EndDate:   days(1),
		DailyRate: 100,
	})

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestRentals_Delete(t *testing.T) {
	t.Run("RequiresAdmin", func(t *testing.T) {
		f := newFixture(t)
		booking := f.book(t, false)

		err := f.ledger.Rentals.Delete(userCtx(), booking.Rental.ID)
		assert.ErrorIs(t, err, apperr.ErrPermission)
	})

	t.Run("BlockedByInvoice", func(t *testing.T) {
		f := newFixture(t)
		booking := f.book(t, true)

		err := f.ledger.Rentals.Delete(adminCtx(), booking.Rental.ID)
		require.ErrorIs(t, err, apperr.ErrIntegrity)

		var integrity *apperr.IntegrityError
		require.ErrorAs(t, err, &integrity)
		assert.Equal(t, map[string]int64{"invoices": 1}, integrity.Dependents)
	})

	t.Run("RemovesPayablesAndFreesVehicle", func(t *testing.T) {
		f := newFixture(t)
		booking := f.book(t, false)

		require.NoError(t, f.ledger.Rentals.Delete(adminCtx(), booking.Rental.ID))

		_, err := f.ledger.Rentals.Get(context.Background(), booking.Rental.ID)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
		assert.Empty(t, f.store.Payables())
		assert.Equal(t, catalog.VehicleAvailable, f.store.Vehicle(f.vehicle.ID).Status)
	})

	t.Run("NotFound", func(t *testing.T) {
		f := newFixture(t)

		err := f.ledger.Rentals.Delete(adminCtx(), uuid.New())
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestRentals_Update_Extends(t *testing.T) {
	f := newFixture(t)
	booking := f.book(t, true)

	res, err := f.ledger.Rentals.Update(context.Background(), booking.Rental.ID, ledger.UpdateRentalParams{
		EndDate: new(days(5)),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(500000), res.Rental.TotalAmount)
	assert.Equal(t, ledger.RentalActive, res.Rental.Status)
	require.NotNil(t, res.Rental.OriginalEndDate)
	assert.True(t, res.Rental.OriginalEndDate.Equal(days(3)))
	assert.Len(t, res.AdjustedPayables, 2)

	aps := payablesByType(f.store.Payables())
	assert.Equal(t, int64(400000), aps[ledger.PayableOwner].Amount)
	assert.Equal(t, int64(50000), aps[ledger.PayableAgent].Amount)
	assert.Equal(t, ledger.PayableHeld, aps[ledger.PayableOwner].Status)

	res, err = f.ledger.Rentals.Update(context.Background(), booking.Rental.ID, ledger.UpdateRentalParams{
		EndDate: new(days(6)),
	})
	require.NoError(t, err)

	stored := f.store.Rental(booking.Rental.ID)
	assert.Equal(t, int64(600000), stored.TotalAmount)
	assert.True(t, stored.EndDate.Equal(days(6)))
	assert.True(t, stored.OriginalEndDate.Equal(days(3)), "the first booked end date is kept")
	assert.Equal(t, int64(300000), f.store.Invoice(booking.Invoice.ID).Amount)

	fin, err := f.ledger.Finalizer.Finalize(context.Background(), booking.Rental.ID, days(6))
	require.NoError(t, err)
	assert.Equal(t, int64(300000), fin.Diff)
	require.NotNil(t, fin.ExtraInvoice)
	assert.Equal(t, int64(300000), fin.ExtraInvoice.Amount)
}

func TestRentals_Cancel(t *testing.T) {
	f := newFixture(t)
	booking := f.book(t, true)

	res, err := f.ledger.Rentals.Cancel(context.Background(), booking.Rental.ID)
	require.NoError(t, err)

	assert.Equal(t, ledger.RentalFinished, res.Rental.Status)
	assert.Equal(t, catalog.VehicleAvailable, f.store.Vehicle(f.vehicle.ID).Status)
	assert.Equal(t, int64(300000), f.store.Rental(booking.Rental.ID).TotalAmount)
	assert.Len(t, f.store.Invoices(), 1)
	assert.Empty(t, f.store.Refunds())

	_, err = f.ledger.Finalizer.Finalize(context.Background(), booking.Rental.ID, days(2))
	assert.ErrorIs(t, err, apperr.ErrInvalidState)

	_, err = f.ledger.Rentals.Cancel(userCtx(), booking.Rental.ID)
	assert.ErrorIs(t, err, apperr.ErrPermission)

	_, err = f.ledger.Rentals.Cancel(adminCtx(), booking.Rental.ID)
	assert.NoError(t, err)
}

func TestRentals_Update_Errors(t *testing.T) {
	tests := []struct {
		name     string
		finished bool
		ctx      context.Context
		id       func(booking *ledger.Booking) uuid.UUID
		params   ledger.UpdateRentalParams
		wantErr  error
	}{
		{name: "NothingToUpdate", wantErr: apperr.ErrValidation},
		{name: "UnknownStatus", params: ledger.UpdateRentalParams{Status: new(ledger.RentalStatus("Anulado"))}, wantErr: apperr.ErrValidation},
		{name: "EndBeforeStart", params: ledger.UpdateRentalParams{EndDate: new(days(-1))}, wantErr: apperr.ErrValidation},
		{
			name:    "NotFound",
			id:      func(*ledger.Booking) uuid.UUID { return uuid.New() },
			params:  ledger.UpdateRentalParams{EndDate: new(days(4))},
			wantErr: apperr.ErrNotFound,
		},
		{
			name:     "CorrectFinishedAsUser",
			finished: true,
			ctx:      userCtx(),
			params:   ledger.UpdateRentalParams{EndDate: new(days(4))},
			wantErr:  apperr.ErrPermission,
		},
		{
			name:     "ReopenFinished",
			finished: true,
			ctx:      adminCtx(),
			params:   ledger.UpdateRentalParams{Status: new(ledger.RentalActive)},
			wantErr:  apperr.ErrInvalidState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			booking := f.book(t, true)

			if tt.finished {
				_, err := f.ledger.Finalizer.Finalize(context.Background(), booking.Rental.ID, days(3))
				require.NoError(t, err)
			}

			ctx := tt.ctx
			if ctx == nil {
				ctx = context.Background()
			}

			id := booking.Rental.ID
			if tt.id != nil {
				id = tt.id(booking)
			}

			before := f.store.Rental(booking.Rental.ID)

			_, err := f.ledger.Rentals.Update(ctx, id, tt.params)
			require.ErrorIs(t, err, tt.wantErr)

			assert.Equal(t, before, f.store.Rental(booking.Rental.ID))
		})
	}
}

func TestRentals_Update_AdminCorrectsFinished(t *testing.T) {
	f := newFixture(t)
	booking := f.book(t, true)

	_, err := f.ledger.Finalizer.Finalize(context.Background(), booking.Rental.ID, days(3))
	require.NoError(t, err)

	res, err := f.ledger.Rentals.Update(adminCtx(), booking.Rental.ID, ledger.UpdateRentalParams{
		EndDate: new(days(2)),
	})
	require.NoError(t, err)

	assert.Equal(t, ledger.RentalFinished, res.Rental.Status)
	assert.Equal(t, int64(200000), res.Rental.TotalAmount)
	assert.Equal(t, int64(160000), payablesByType(f.store.Payables())[ledger.PayableOwner].Amount)
}

func TestRentals_ObservesOperations(t *testing.T) {
	f := newFixture(t)
	f.book(t, false)

	_, err := f.ledger.Rentals.Create(context.Background(), ledger.CreateRentalParams{})
	require.Error(t, err)

	require.Len(t, f.observer.seen, 2)
	assert.Equal(t, "create_rental", f.observer.seen[0].operation)
	assert.NoError(t, f.observer.seen[0].err)
	assert.ErrorIs(t, f.observer.seen[1].err, apperr.ErrValidation)
}
