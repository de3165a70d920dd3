// Package reconcile matches incoming bank statement credits to open
// invoices and records them as payments.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fleetledger/internal/apperr"
	"github.com/MrJamesThe3rd/fleetledger/internal/importer"
	"github.com/MrJamesThe3rd/fleetledger/internal/ledger"
	"github.com/MrJamesThe3rd/fleetledger/internal/statement"
)

type Outcome string

const (
	OutcomeMatched  Outcome = "matched"
	OutcomeRecorded Outcome = "recorded"
	OutcomeSkipped  Outcome = "skipped"
)

type MatchedBy string

const (
	ByInvoiceNumber MatchedBy = "invoice_number"
	ByPayer         MatchedBy = "payer"
)

const (
	reasonFractional    = "amount has a fractional part"
	reasonDuplicate     = "already imported"
	reasonNoMatch       = "no invoice number or known payer in description"
	reasonNoOpen        = "payer has no open invoice"
	reasonPaid          = "invoice already paid"
	reasonOverpayment   = "amount exceeds outstanding balance"
	reasonUnknownNumber = "invoice number not found"
)

var invoiceNumberRe = regexp.MustCompile(`(?i)\b(FCX?)[-\s]?(\d{3,})/(\d{2})\b`)

type Importer interface {
	Import(bank importer.Bank, r io.Reader) ([]statement.Line, error)
}

// Payer resolves the client behind a statement description.
type Payer interface {
	Suggest(ctx context.Context, rawDescription string) (uuid.UUID, bool, error)
}

type Recorder interface {
	RecordPayment(ctx context.Context, p ledger.RecordPaymentParams) (*ledger.PaymentResult, error)
}

// Invoices is the read side of the ledger used to pick a target invoice.
type Invoices interface {
	FindInvoiceByNumber(ctx context.Context, number string) (*ledger.Invoice, error)
	OldestOpenInvoice(ctx context.Context, clientID uuid.UUID) (*ledger.Invoice, error)
	PaymentReferenceExists(ctx context.Context, reference string) (bool, error)
}

type Match struct {
	Line      statement.Line `json:"line"`
	Reference string         `json:"reference"`
	Outcome   Outcome        `json:"outcome"`
	Reason    string         `json:"reason,omitempty"`
	MatchedBy MatchedBy      `json:"matched_by,omitempty"`
	Invoice   string         `json:"invoice,omitempty"`
	InvoiceID *uuid.UUID     `json:"invoice_id,omitempty"`
	Amount    int64          `json:"amount"`
	Payment   string         `json:"payment,omitempty"`
}

type Report struct {
	Bank     importer.Bank `json:"bank"`
	DryRun   bool          `json:"dry_run"`
	Lines    int           `json:"lines"`
	Credits  int           `json:"credits"`
	Matched  int           `json:"matched"`
	Recorded int           `json:"recorded"`
	Skipped  int           `json:"skipped"`
	Matches  []Match       `json:"matches"`
}

type Service struct {
	importer Importer
	invoices Invoices
	payer    Payer
	billing  Recorder
}

func NewService(imp Importer, invoices Invoices, payer Payer, billing Recorder) *Service {
	return &Service{
		importer: imp,
		invoices: invoices,
		payer:    payer,
		billing:  billing,
	}
}

// Import parses a statement and reconciles its credits. With dryRun set
// nothing is written.
func (s *Service) Import(ctx context.Context, bank importer.Bank, r io.Reader, dryRun bool) (*Report, error) {
	lines, err := s.importer.Import(bank, r)
	if err != nil {
		return nil, err
	}

	return s.Reconcile(ctx, bank, lines, dryRun)
}

func (s *Service) Reconcile(ctx context.Context, bank importer.Bank, lines []statement.Line, dryRun bool) (*Report, error) {
	report := &Report{Bank: bank, DryRun: dryRun, Lines: len(lines)}

	credits := statement.Credits(lines)
	report.Credits = len(credits)

	// Balances already claimed by earlier lines of this statement.
	claimed := make(map[uuid.UUID]int64)
	seen := make(map[string]int)

	for _, line := range credits {
		key := fingerprintKey(bank, line)
		seen[key]++

		m := Match{Line: line, Reference: Fingerprint(bank, line, seen[key])}

		if err := s.match(ctx, &m, claimed); err != nil {
			return report, err
		}

		if m.Outcome == OutcomeMatched && !dryRun {
			if err := s.record(ctx, &m); err != nil {
				return report, err
			}
		}

		switch m.Outcome {
		case OutcomeMatched:
			report.Matched++
			claimed[*m.InvoiceID] += m.Amount
		case OutcomeRecorded:
			report.Recorded++
		case OutcomeSkipped:
			report.Skipped++
		}

		report.Matches = append(report.Matches, m)
	}

	slog.Info("statement reconciled",
		"bank", bank,
		"dry_run", dryRun,
		"credits", report.Credits,
		"matched", report.Matched,
		"recorded", report.Recorded,
		"skipped", report.Skipped,
	)

	return report, nil
}

func (s *Service) match(ctx context.Context, m *Match, claimed map[uuid.UUID]int64) error {
	if !m.Line.Amount.IsInteger() {
		m.skip(reasonFractional)
		return nil
	}

	m.Amount = m.Line.Amount.IntPart()

	exists, err := s.invoices.PaymentReferenceExists(ctx, m.Reference)
	if err != nil {
		return fmt.Errorf("checking reference for row %d: %w", m.Line.Row, err)
	}

	if exists {
		m.skip(reasonDuplicate)
		return nil
	}

	inv, by, reason, err := s.target(ctx, m.Line.Description)
	if err != nil {
		return fmt.Errorf("matching row %d: %w", m.Line.Row, err)
	}

	if inv == nil {
		m.skip(reason)
		return nil
	}

	m.MatchedBy = by
	m.Invoice = inv.Number
	m.InvoiceID = &inv.ID

	outstanding := inv.Outstanding() - claimed[inv.ID]

	switch {
	case outstanding <= 0:
		m.skip(reasonPaid)
	case m.Amount > outstanding:
		m.skip(reasonOverpayment)
	default:
		m.Outcome = OutcomeMatched
	}

	return nil
}

// target finds the invoice a credit pays: an invoice number quoted in the
// description wins over the payer's oldest open invoice.
func (s *Service) target(ctx context.Context, description string) (*ledger.Invoice, MatchedBy, string, error) {
	if number, ok := InvoiceNumber(description); ok {
		inv, err := s.invoices.FindInvoiceByNumber(ctx, number)
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, "", reasonUnknownNumber, nil
		}

		if err != nil {
			return nil, "", "", err
		}

		return inv, ByInvoiceNumber, "", nil
	}

	clientID, ok, err := s.payer.Suggest(ctx, description)
	if err != nil {
		return nil, "", "", err
	}

	if !ok {
		return nil, "", reasonNoMatch, nil
	}

	inv, err := s.invoices.OldestOpenInvoice(ctx, clientID)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, "", reasonNoOpen, nil
	}

	if err != nil {
		return nil, "", "", err
	}

	return inv, ByPayer, "", nil
}

func (s *Service) record(ctx context.Context, m *Match) error {
	res, err := s.billing.RecordPayment(ctx, ledger.RecordPaymentParams{
		InvoiceID: *m.InvoiceID,
		Amount:    m.Amount,
		Date:      m.Line.Date,
		Reference: m.Reference,
	})
	if err != nil {
		switch apperr.Kind(err) {
		case apperr.ErrValidation, apperr.ErrInvalidState, apperr.ErrIntegrity, apperr.ErrNotFound:
			slog.Warn("statement line not recorded", "row", m.Line.Row, "error", err)
			m.skip(err.Error())

			return nil
		}

		return fmt.Errorf("recording row %d: %w", m.Line.Row, err)
	}

	m.Outcome = OutcomeRecorded
	m.Payment = res.Payment.Number

	return nil
}

func (m *Match) skip(reason string) {
	m.Outcome = OutcomeSkipped
	m.Reason = reason
}

// InvoiceNumber extracts an invoice number such as FC-001/26 from a
// statement description and returns it in canonical form.
func InvoiceNumber(description string) (string, bool) {
	sub := invoiceNumberRe.FindStringSubmatch(description)
	if sub == nil {
		return "", false
	}

	return fmt.Sprintf("%s-%s/%s", strings.ToUpper(sub[1]), sub[2], sub[3]), true
}

func fingerprintKey(bank importer.Bank, line statement.Line) string {
	return strings.Join([]string{
		string(bank),
		line.Date.Format("2006-01-02"),
		string(line.Direction),
		line.Amount.String(),
		strings.Join(strings.Fields(line.Description), " "),
	}, "|")
}

// Fingerprint identifies a statement line across imports. occurrence
// separates identical lines within one statement.
func Fingerprint(bank importer.Bank, line statement.Line, occurrence int) string {
	h := fnv.New64a()
	_, _ = fmt.Fprintf(h, "%s|%d", fingerprintKey(bank, line), occurrence)

	return fmt.Sprintf("%s:%016x", bank, h.Sum64())
}
