package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/fleetledger/internal/ledger"
)

func TestSeries_Format(t *testing.T) {
	tests := []struct {
		series ledger.Series
		n      int
		want   string
	}{
		{series: ledger.SeriesInvoice, n: 1, want: "FC-001/26"},
		{series: ledger.SeriesInvoice, n: 1234, want: "FC-1234/26"},
		{series: ledger.SeriesSupplementary, n: 7, want: "FCX-0007/26"},
		{series: ledger.SeriesExpense, n: 42, want: "G-042/26"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.series.Format(tt.n, "26"))
		})
	}
}

func TestSeries_Parse(t *testing.T) {
	tests := []struct {
		name   string
		number string
		want   int
		wantOK bool
	}{
		{name: "Padded", number: "FC-009/26", want: 9, wantOK: true},
		{name: "Overflowed", number: "FC-1000/26", want: 1000, wantOK: true},
		{name: "OtherYear", number: "FC-009/25"},
		{name: "OtherSeries", number: "FCX-0009/26"},
		{name: "Garbage", number: "FC-abc/26"},
		{name: "Empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ledger.SeriesInvoice.Parse(tt.number, "26")
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSequencer_Next(t *testing.T) {
	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	type testCase struct {
		name    string
		last    string
		next    int
		want    string
		wantErr bool
	}

	tests := []testCase{
		{name: "FirstOfYear", last: "", next: 1, want: "FC-001/26"},
		{name: "AfterLast", last: "FC-041/26", next: 42, want: "FC-042/26"},
		{name: "UnparsableLast", last: "FC-???/26", next: 1, want: "FC-001/26"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			floor, _ := ledger.SeriesInvoice.Parse(tt.last, "26")

			tx := ledger.NewMockTx(ctrl)
			tx.EXPECT().LastDocumentNumber(gomock.Any(), ledger.DocInvoice, "FC-", "/26").Return(tt.last, nil)
			tx.EXPECT().NextSequence(gomock.Any(), "FC", "26", floor).Return(tt.next, nil)

			got, err := ledger.NewSequencer(time.UTC).Next(context.Background(), tx, ledger.SeriesInvoice, at)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSequencer_Next_CounterError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tx := ledger.NewMockTx(ctrl)
	tx.EXPECT().LastDocumentNumber(gomock.Any(), ledger.DocRefund, "R-", "/26").Return("", nil)
	tx.EXPECT().NextSequence(gomock.Any(), "R", "26", 0).Return(0, errors.New("serialization failure"))

	_, err := ledger.NewSequencer(nil).Next(context.Background(), tx, ledger.SeriesRefund, day0)
	assert.ErrorContains(t, err, "allocating R number")
}

func TestSequencer_Year(t *testing.T) {
	newYearsEve := time.Date(2026, 12, 31, 23, 30, 0, 0, time.UTC)

	assert.Equal(t, "26", ledger.NewSequencer(time.UTC).Year(newYearsEve))
	assert.Equal(t, "27", ledger.NewSequencer(time.FixedZone("UTC+2", 2*60*60)).Year(newYearsEve))
}
