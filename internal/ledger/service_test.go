package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/fleetledger/internal/apperr"
	"github.com/MrJamesThe3rd/fleetledger/internal/ledger"
)

func TestBillableDays(t *testing.T) {
	tests := []struct {
		name string
		end  time.Time
		want int64
	}{
		{name: "SameInstant", end: day0, want: 1},
		{name: "BeforeStart", end: day0.Add(-time.Hour), want: 1},
		{name: "OneHour", end: day0.Add(time.Hour), want: 1},
		{name: "ExactlyThreeDays", end: days(3), want: 3},
		{name: "ThreeDaysAndAMinute", end: days(3).Add(time.Minute), want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ledger.BillableDays(day0, tt.end))
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "DateOnly", input: "2026-03-10", want: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)},
		{name: "RFC3339", input: "2026-03-10T09:00:00Z", want: day0},
		{name: "Padded", input: "  2026-03-10 ", want: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)},
		{name: "Empty", input: "", wantErr: true},
		{name: "Garbage", input: "10/03/2026", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ledger.ParseDate("start_date", tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperr.ErrValidation)
				return
			}

			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestInvoiceStatusFor(t *testing.T) {
	assert.Equal(t, ledger.InvoicePending, ledger.InvoiceStatusFor(0, 100))
	assert.Equal(t, ledger.InvoicePartial, ledger.InvoiceStatusFor(1, 100))
	assert.Equal(t, ledger.InvoicePaid, ledger.InvoiceStatusFor(100, 100))
	assert.Equal(t, ledger.InvoicePaid, ledger.InvoiceStatusFor(150, 100))
}
