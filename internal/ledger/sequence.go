package ledger

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Series is a family of sequentially numbered documents, e.g. FC-001/26.
type Series struct {
	Prefix   string
	Width    int
	Document Document
}

var (
	SeriesInvoice = Series{Prefix: "FC", Width: 3, Document: DocInvoice}
	// SeriesSupplementary numbers the extra-charge invoices issued when a
	// rental runs past its booked end. It keeps the legacy 4-digit width.
	SeriesSupplementary = Series{Prefix: "FCX", Width: 4, Document: DocInvoice}
	SeriesPayment       = Series{Prefix: "P", Width: 3, Document: DocPayment}
	SeriesRefund        = Series{Prefix: "R", Width: 3, Document: DocRefund}
	SeriesExpense       = Series{Prefix: "G", Width: 3, Document: DocExpense}
)

// Format renders the n-th number of the series for a two-digit year.
// Numbers wider than the padding are printed in full.
func (s Series) Format(n int, yy string) string {
	return fmt.Sprintf("%s-%0*d/%s", s.Prefix, s.Width, n, yy)
}

// Parse extracts the sequence segment of a number in this series and year.
func (s Series) Parse(number, yy string) (int, bool) {
	head := s.Prefix + "-"
	tail := "/" + yy

	if !strings.HasPrefix(number, head) || !strings.HasSuffix(number, tail) {
		return 0, false
	}

	seq := strings.TrimSuffix(strings.TrimPrefix(number, head), tail)

	n, err := strconv.Atoi(seq)
	if err != nil || n < 0 {
		return 0, false
	}

	return n, true
}

// Sequencer allocates document numbers inside the caller's transaction.
// The highest number already issued for the year acts as a floor, and the
// number itself comes from an atomic per-(prefix, year) counter, so two
// concurrent transactions never receive the same value.
type Sequencer struct {
	loc *time.Location
}

func NewSequencer(loc *time.Location) *Sequencer {
	if loc == nil {
		loc = time.UTC
	}

	return &Sequencer{loc: loc}
}

// Year returns the two-digit year of t in the business time zone.
func (s *Sequencer) Year(t time.Time) string {
	return t.In(s.loc).Format("06")
}

func (s *Sequencer) Next(ctx context.Context, tx Tx, series Series, at time.Time) (string, error) {
	yy := s.Year(at)

	last, err := tx.LastDocumentNumber(ctx, series.Document, series.Prefix+"-", "/"+yy)
	if err != nil {
		return "", fmt.Errorf("reading last %s number: %w", series.Prefix, err)
	}

	floor, _ := series.Parse(last, yy)

	n, err := tx.NextSequence(ctx, series.Prefix, yy, floor)
	if err != nil {
		return "", fmt.Errorf("allocating %s number: %w", series.Prefix, err)
	}

	return series.Format(n, yy), nil
}
