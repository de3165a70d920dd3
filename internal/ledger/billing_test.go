package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/fleetledger/internal/apperr"
	"github.com/MrJamesThe3rd/fleetledger/internal/ledger"
)

func TestBilling_RecordPayment_FullPaymentReleasesPayables(t *testing.T) {
	f := newFixture(t)
	booking := f.book(t, true)

	res, err := f.ledger.Billing.RecordPayment(context.Background(), ledger.RecordPaymentParams{
		InvoiceID: booking.Invoice.ID,
		Amount:    300000,
	})
	require.NoError(t, err)

	assert.Equal(t, "P-001/26", res.Payment.Number)
	assert.Equal(t, f.clientID, res.Payment.ClientID)
	assert.Equal(t, ledger.InvoicePaid, res.Invoice.Status)
	assert.Equal(t, int64(300000), res.Invoice.PaidAmount)
	assert.Equal(t, int64(2), res.ReleasedPayables)

	for _, ap := range f.store.Payables() {
		assert.Equal(t, ledger.PayablePending, ap.Status)
		require.NotNil(t, ap.ReleasedByPaymentID)
		assert.Equal(t, res.Payment.ID, *ap.ReleasedByPaymentID)
	}
}

func TestBilling_RecordPayment_SupplementaryInvoice(t *testing.T) {
	tests := []struct {
		name         string
		issueInvoice bool
		wantAmount   int64
		wantReleased int64
		wantStatus   ledger.PayableStatus
	}{
		{name: "RentalNeverInvoiced", issueInvoice: false, wantAmount: 500000, wantReleased: 2, wantStatus: ledger.PayablePending},
		{name: "BookingInvoiceUnpaid", issueInvoice: true, wantAmount: 200000, wantReleased: 0, wantStatus: ledger.PayableHeld},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			booking := f.book(t, tt.issueInvoice)

			fin, err := f.ledger.Finalizer.Finalize(context.Background(), booking.Rental.ID, days(5))
			require.NoError(t, err)
			require.NotNil(t, fin.ExtraInvoice)
			require.Equal(t, tt.wantAmount, fin.ExtraInvoice.Amount)

			res, err := f.ledger.Billing.RecordPayment(context.Background(), ledger.RecordPaymentParams{
				InvoiceID: fin.ExtraInvoice.ID,
				Amount:    fin.ExtraInvoice.Amount,
			})
			require.NoError(t, err)

			assert.Equal(t, ledger.InvoicePaid, res.Invoice.Status)
			assert.Equal(t, tt.wantReleased, res.ReleasedPayables)

			for _, ap := range f.store.Payables() {
				assert.Equal(t, tt.wantStatus, ap.Status)
			}
		})
	}
}

func TestBilling_RecordPayment_Partial(t *testing.T) {
	f := newFixture(t)
	booking := f.book(t, true)

	steps := []struct {
		amount     int64
		wantStatus ledger.InvoiceStatus
		wantHeld   bool
	}{
		{amount: 100000, wantStatus: ledger.InvoicePartial, wantHeld: true},
		{amount: 150000, wantStatus: ledger.InvoicePartial, wantHeld: true},
		{amount: 50000, wantStatus: ledger.InvoicePaid, wantHeld: false},
	}

	for _, step := range steps {
		res, err := f.ledger.Billing.RecordPayment(context.Background(), ledger.RecordPaymentParams{
			InvoiceID: booking.Invoice.ID,
			Amount:    step.amount,
		})
		require.NoError(t, err)
		assert.Equal(t, step.wantStatus, res.Invoice.Status)

		for _, ap := range f.store.Payables() {
			assert.Equal(t, step.wantHeld, ap.Status == ledger.PayableHeld)
		}
	}

	payments, err := f.ledger.Billing.ListPayments(context.Background(), ledger.PaymentFilter{InvoiceID: &booking.Invoice.ID})
	require.NoError(t, err)
	require.Len(t, payments, 3)
	assert.Equal(t, "P-003/26", payments[2].Number)
}

func TestBilling_RecordPayment_Rejects(t *testing.T) {
	f := newFixture(t)
	booking := f.book(t, true)

	tests := []struct {
		name    string
		params  ledger.RecordPaymentParams
		wantErr error
	}{
		{
			name:    "Overpayment",
			params:  ledger.RecordPaymentParams{InvoiceID: booking.Invoice.ID, Amount: 300001},
			wantErr: apperr.ErrValidation,
		},
		{
			name:    "ZeroAmount",
			params:  ledger.RecordPaymentParams{InvoiceID: booking.Invoice.ID},
			wantErr: apperr.ErrValidation,
		},
		{
			name:    "MissingInvoice",
			params:  ledger.RecordPaymentParams{Amount: 10},
			wantErr: apperr.ErrValidation,
		},
		{
			name:    "UnknownInvoice",
			params:  ledger.RecordPaymentParams{InvoiceID: uuid.New(), Amount: 10},
			wantErr: apperr.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.ledger.Billing.RecordPayment(context.Background(), tt.params)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Empty(t, f.store.Payments())
	assert.Equal(t, ledger.InvoicePending, f.store.Invoice(booking.Invoice.ID).Status)
}

func TestBilling_RecordPayment_DuplicateReference(t *testing.T) {
	f := newFixture(t)
	booking := f.book(t, true)

	params := ledger.RecordPaymentParams{InvoiceID: booking.Invoice.ID, Amount: 1000, Reference: "cgd:abc"}

	_, err := f.ledger.Billing.RecordPayment(context.Background(), params)
	require.NoError(t, err)

	_, err = f.ledger.Billing.RecordPayment(context.Background(), params)
	require.ErrorIs(t, err, apperr.ErrIntegrity)

	assert.Equal(t, int64(1000), f.store.Invoice(booking.Invoice.ID).PaidAmount)
}

func TestBilling_RecordPayment_Atomic(t *testing.T) {
	f := newFixture(t)
	booking := f.book(t, true)
	f.store.FailOn("ReleasePayables", errors.New("deadlock detected"))

	_, err := f.ledger.Billing.RecordPayment(context.Background(), ledger.RecordPaymentParams{
		InvoiceID: booking.Invoice.ID,
		Amount:    300000,
	})
	require.Error(t, err)

	assert.Empty(t, f.store.Payments())
	assert.Zero(t, f.store.Invoice(booking.Invoice.ID).PaidAmount)

	for _, ap := range f.store.Payables() {
		assert.Equal(t, ledger.PayableHeld, ap.Status)
	}
}

func TestBilling_RecordPayment_NoCommitOnFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	tx := ledger.NewMockTx(ctrl)
	invoiceID := uuid.New()

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().LockInvoice(gomock.Any(), invoiceID).Return(&ledger.Invoice{ID: invoiceID, Amount: 500}, nil)
	tx.EXPECT().LastDocumentNumber(gomock.Any(), ledger.DocPayment, "P-", "/26").Return("", nil)
	tx.EXPECT().NextSequence(gomock.Any(), "P", "26", 0).Return(1, nil)
	tx.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return(errors.New("insert failed"))
	tx.EXPECT().Rollback().Return(nil)

	l := ledger.New(repo, ledger.WithClock(func() time.Time { return day0 }))

	_, err := l.Billing.RecordPayment(context.Background(), ledger.RecordPaymentParams{InvoiceID: invoiceID, Amount: 100})
	assert.EqualError(t, err, "insert failed")
}

func TestBilling_DeletePayment(t *testing.T) {
	f := newFixture(t)
	booking := f.book(t, true)

	first, err := f.ledger.Billing.RecordPayment(context.Background(), ledger.RecordPaymentParams{
		InvoiceID: booking.Invoice.ID,
		Amount:    100000,
	})
	require.NoError(t, err)

	second, err := f.ledger.Billing.RecordPayment(context.Background(), ledger.RecordPaymentParams{
		InvoiceID: booking.Invoice.ID,
		Amount:    200000,
	})
	require.NoError(t, err)

	_, err = f.ledger.Billing.DeletePayment(userCtx(), second.Payment.ID)
	require.ErrorIs(t, err, apperr.ErrPermission)

	inv, err := f.ledger.Billing.DeletePayment(adminCtx(), second.Payment.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100000), inv.PaidAmount)
	assert.Equal(t, ledger.InvoicePartial, inv.Status)

	// Released payables stay released.
	for _, ap := range f.store.Payables() {
		assert.Equal(t, ledger.PayablePending, ap.Status)
	}

	inv, err = f.ledger.Billing.DeletePayment(adminCtx(), first.Payment.ID)
	require.NoError(t, err)
	assert.Zero(t, inv.PaidAmount)
	assert.Equal(t, ledger.InvoicePending, inv.Status)
	assert.Empty(t, f.store.Payments())

	_, err = f.ledger.Billing.DeletePayment(adminCtx(), first.Payment.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestBilling_IssueInvoice(t *testing.T) {
	f := newFixture(t)
	booking := f.book(t, false)

	t.Run("ForRental", func(t *testing.T) {
		inv, err := f.ledger.Billing.IssueInvoice(context.Background(), ledger.IssueInvoiceParams{
			ClientID: f.clientID,
			RentalID: &booking.Rental.ID,
			Amount:   booking.Rental.TotalAmount,
		})
		require.NoError(t, err)
		assert.Equal(t, "FC-001/26", inv.Number)
		assert.True(t, inv.Date.Equal(day0))
	})

	t.Run("SecondInvoiceForRental", func(t *testing.T) {
		_, err := f.ledger.Billing.IssueInvoice(context.Background(), ledger.IssueInvoiceParams{
			ClientID: f.clientID,
			RentalID: &booking.Rental.ID,
			Amount:   10,
		})
		assert.ErrorIs(t, err, apperr.ErrIntegrity)
	})

	t.Run("OtherClientsRental", func(t *testing.T) {
		_, err := f.ledger.Billing.IssueInvoice(context.Background(), ledger.IssueInvoiceParams{
			ClientID: uuid.New(),
			RentalID: &booking.Rental.ID,
			Amount:   10,
		})
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("NonPositiveAmount", func(t *testing.T) {
		_, err := f.ledger.Billing.IssueInvoice(context.Background(), ledger.IssueInvoiceParams{ClientID: f.clientID})
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})
}

func TestBilling_DeleteInvoice(t *testing.T) {
	f := newFixture(t)
	booking := f.book(t, true)

	_, err := f.ledger.Billing.RecordPayment(context.Background(), ledger.RecordPaymentParams{
		InvoiceID: booking.Invoice.ID,
		Amount:    1000,
	})
	require.NoError(t, err)

	err = f.ledger.Billing.DeleteInvoice(userCtx(), booking.Invoice.ID)
	require.ErrorIs(t, err, apperr.ErrPermission)

	err = f.ledger.Billing.DeleteInvoice(adminCtx(), booking.Invoice.ID)
	require.ErrorIs(t, err, apperr.ErrIntegrity)
	assert.Contains(t, err.Error(), "1 payments")

	payment := f.store.Payments()[0]
	_, err = f.ledger.Billing.DeletePayment(adminCtx(), payment.ID)
	require.NoError(t, err)

	require.NoError(t, f.ledger.Billing.DeleteInvoice(adminCtx(), booking.Invoice.ID))

	_, err = f.ledger.Billing.GetInvoice(context.Background(), booking.Invoice.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
