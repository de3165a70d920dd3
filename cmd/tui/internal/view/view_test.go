package view

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/fleetledger/internal/catalog"
	"github.com/MrJamesThe3rd/fleetledger/internal/ledger"
	"github.com/MrJamesThe3rd/fleetledger/internal/ledger/ledgertest"
)

var day0 = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

// newBooking books a three-day rental of a third-party vehicle and issues
// its invoice for 300000.
func newBooking(t *testing.T) (*ledgertest.Store, *ledger.Ledger, *ledger.Booking) {
	t.Helper()

	store := ledgertest.New()
	l := ledger.New(store, ledger.WithClock(func() time.Time { return day0 }))

	vehicle := store.AddVehicle(catalog.Vehicle{
		Name:      "Corolla",
		Plate:     "A123456",
		Ownership: catalog.OwnershipThirdParty,
		OwnerName: "Marta Pérez",
		DailyRate: 100000,
	})

	booking, err := l.Rentals.Create(context.Background(), ledger.CreateRentalParams{
		VehicleID:    vehicle.ID,
		ClientID:     uuid.New(),
		StartDate:    day0,
		EndDate:      day0.AddDate(0, 0, 3),
		DailyRate:    100000,
		IssueInvoice: true,
	})
	require.NoError(t, err)

	return store, l, booking
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1.234.567", FormatAmount(1234567))
	assert.Equal(t, "0", FormatAmount(0))
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "300000", want: 300000},
		{in: " 100.000 ", want: 100000},
		{in: "1 500", want: 1500},
		{in: "", wantErr: true},
		{in: "-5", wantErr: true},
		{in: "0", wantErr: true},
		{in: "12,50", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPeriodRange(t *testing.T) {
	now := time.Date(2026, 3, 31, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		period    Period
		wantStart string
		wantEnd   string
	}{
		{period: PeriodThisMonth, wantStart: "2026-03-01", wantEnd: "2026-03-31"},
		{period: PeriodLastMonth, wantStart: "2026-02-01", wantEnd: "2026-02-28"},
		{period: PeriodThisYear, wantStart: "2026-01-01", wantEnd: "2026-03-31"},
		{period: PeriodLastYear, wantStart: "2025-01-01", wantEnd: "2025-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.period.String(), func(t *testing.T) {
			start, end := wholeDays(periodRange(tt.period, now))

			assert.Equal(t, tt.wantStart, FormatDate(start))
			assert.Equal(t, tt.wantEnd, FormatDate(end))
			assert.Equal(t, 23, end.Hour())
		})
	}
}

func TestPeriodPicker_All(t *testing.T) {
	m := NewPeriodPicker()

	for range PeriodAll {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	assert.Equal(t, PeriodSelectedMsg{All: true}, cmd())
	assert.True(t, m.IsSelecting())
}

func TestSortByDate(t *testing.T) {
	expenses := []*ledger.Expense{
		{Number: "G-002/26", Date: day0.AddDate(0, 0, 2)},
		{Number: "G-001/26", Date: day0},
		{Number: "G-003/26", Date: day0.AddDate(0, 0, 2)},
	}

	SortByDate(expenses, func(e *ledger.Expense) time.Time { return e.Date })

	assert.Equal(t, "G-001/26", expenses[0].Number)
	assert.Equal(t, "G-002/26", expenses[1].Number)
	assert.Equal(t, "G-003/26", expenses[2].Number)
}

func TestInvoiceModel_RecordsPayments(t *testing.T) {
	store, l, booking := newBooking(t)

	m := NewInvoiceModel(l.Billing)

	model, _ := m.Update(m.Init()())
	m = model.(InvoiceModel)

	require.NotNil(t, m.current)
	assert.Equal(t, booking.Invoice.ID, m.current.ID)
	assert.Equal(t, "300000", m.amountInput.Value())

	m.amountInput.SetValue("100.000")

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(InvoiceModel)
	require.NotNil(t, cmd)

	model, _ = m.Update(cmd())
	m = model.(InvoiceModel)

	require.NotNil(t, m.current, "a partially paid invoice stays on screen")
	assert.Equal(t, ledger.InvoicePartial, m.current.Status)
	assert.Equal(t, "200000", m.amountInput.Value())
	assert.Contains(t, m.status, "Parcial")

	model, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(InvoiceModel)
	require.NotNil(t, cmd)

	model, _ = m.Update(cmd())
	m = model.(InvoiceModel)

	assert.Nil(t, m.current)
	assert.Equal(t, ledger.InvoicePaid, store.Invoice(booking.Invoice.ID).Status)
	assert.Len(t, store.Payments(), 2)
}

func TestInvoiceModel_RejectsBadAmount(t *testing.T) {
	store, l, _ := newBooking(t)

	m := NewInvoiceModel(l.Billing)

	model, _ := m.Update(m.Init()())
	m = model.(InvoiceModel)
	m.amountInput.SetValue("abc")

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(InvoiceModel)

	model, _ = m.Update(cmd())
	m = model.(InvoiceModel)

	assert.Contains(t, m.status, "invalid amount")
	assert.NotNil(t, m.current)
	assert.Empty(t, store.Payments())
}

func TestSettleModel_PaysOutReleasedPayable(t *testing.T) {
	store, l, booking := newBooking(t)

	_, err := l.Billing.RecordPayment(context.Background(), ledger.RecordPaymentParams{
		InvoiceID: booking.Invoice.ID,
		Amount:    booking.Invoice.Amount,
		Date:      day0,
	})
	require.NoError(t, err)

	m := NewSettleModel(l.Settlement)

	model, _ := m.Update(m.Init()())
	m = model.(SettleModel)

	require.Len(t, m.payables, 1)
	assert.Equal(t, ledger.PayablePending, m.payables[0].Status)

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(SettleModel)
	require.NotNil(t, cmd)

	model, _ = m.Update(cmd())
	m = model.(SettleModel)

	assert.Contains(t, m.status, "Posted expense")
	assert.Equal(t, ledger.PayablePaid, store.Payables()[0].Status)
	assert.Len(t, store.Expenses(), 1)
}

func TestSettleModel_HeldPayableCannotBePaid(t *testing.T) {
	store, l, _ := newBooking(t)

	m := NewSettleModel(l.Settlement)

	model, _ := m.Update(m.Init()())
	m = model.(SettleModel)

	require.Len(t, m.payables, 1)
	assert.Equal(t, ledger.PayableHeld, m.payables[0].Status)

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(SettleModel)

	model, _ = m.Update(cmd())
	m = model.(SettleModel)

	assert.Contains(t, m.status, "held")
	assert.Empty(t, store.Expenses())
}

func TestFinalizeSummary(t *testing.T) {
	_, l, booking := newBooking(t)

	res, err := l.Finalizer.Finalize(context.Background(), booking.Rental.ID, day0.AddDate(0, 0, 5))
	require.NoError(t, err)

	summary := FinalizeSummary(res)

	assert.Contains(t, summary, "Finalized after 5 days")
	assert.Contains(t, summary, "Issued FCX-")
}
