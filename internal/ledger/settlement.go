package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fleetledger/internal/apperr"
)

const (
	CategoryThirdPartyPayouts = "Pagos a Terceros"
	CategoryRefunds           = "Reembolsos"

	categoryThirdPartyPayoutsDesc = "Pagos a propietarios y comisiones de agentes"
	categoryRefundsDesc           = "Reembolsos y devoluciones a clientes"
)

// Settlement posts an expense when a payable is paid out or a refund is
// returned to the client. It also issues manual refunds and records other
// business expenses.
type Settlement struct {
	*core
}

type PayableSettlement struct {
	Payable *AccountPayable
	Expense *Expense
}

type RefundSettlement struct {
	Refund  *Refund
	Expense *Expense
}

// UpdatePayable changes a payable's status. Moving it to Pagado posts the
// matching expense; writing the current status again is a no-op.
//
// Retenido is owned by the ledger: payables enter it at booking and leave it
// only when the rental invoice is paid in full, so it can be neither set nor
// cleared here.
func (s *Settlement) UpdatePayable(ctx context.Context, id uuid.UUID, status PayableStatus) (res *PayableSettlement, err error) {
	defer s.observe("update_payable", time.Now(), &err)

	switch status {
	case PayableHeld, PayablePending, PayablePaid:
	default:
		return nil, apperr.Validation("unknown payable status %q", status)
	}

	res = &PayableSettlement{}

	err = s.inTx(ctx, func(tx Tx) error {
		ap, err := tx.LockPayable(ctx, id)
		if err != nil {
			return err
		}

		res.Payable = ap

		if ap.Status == status {
			return nil
		}

		switch {
		case ap.Status == PayablePaid:
			return apperr.InvalidState("payable is already paid")
		case status == PayableHeld:
			return apperr.InvalidState("payables are only held by booking")
		case ap.Status == PayableHeld:
			return apperr.InvalidState("payable is held until the rental invoice is paid")
		}

		if err := tx.UpdatePayableStatus(ctx, ap.ID, status); err != nil {
			return err
		}

		ap.Status = status

		if status != PayablePaid {
			return nil
		}

		res.Expense, err = s.post(ctx, tx, CategoryThirdPartyPayouts, categoryThirdPartyPayoutsDesc, ap.Amount,
			fmt.Sprintf("Pago de %s: %s (Ref: %s)", ap.Type, ap.BeneficiaryName, shortRef(ap.ID)))

		return err
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

// UpdateRefund changes a refund's status. Moving it to Reembolsado posts the
// matching expense; writing the current status again is a no-op.
func (s *Settlement) UpdateRefund(ctx context.Context, id uuid.UUID, status RefundStatus) (res *RefundSettlement, err error) {
	defer s.observe("update_refund", time.Now(), &err)

	if status != RefundPending && status != RefundRefunded {
		return nil, apperr.Validation("unknown refund status %q", status)
	}

	res = &RefundSettlement{}

	err = s.inTx(ctx, func(tx Tx) error {
		refund, err := tx.LockRefund(ctx, id)
		if err != nil {
			return err
		}

		res.Refund = refund

		if refund.Status == status {
			return nil
		}

		if refund.Status == RefundRefunded {
			return apperr.InvalidState("refund was already returned")
		}

		if err := tx.UpdateRefundStatus(ctx, refund.ID, status); err != nil {
			return err
		}

		refund.Status = status

		res.Expense, err = s.post(ctx, tx, CategoryRefunds, categoryRefundsDesc, refund.Amount,
			fmt.Sprintf("Reembolso Cliente: %s (Motivo: %s)", shortRef(refund.ID), refund.Reason))

		return err
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

type IssueRefundParams struct {
	InvoiceID uuid.UUID
	Amount    int64
	Reason    string
	Date      time.Time
}

// IssueRefund records money owed back to the client of an invoice. The
// refund starts Pendiente; no expense is posted until it is returned.
func (s *Settlement) IssueRefund(ctx context.Context, p IssueRefundParams) (refund *Refund, err error) {
	defer s.observe("issue_refund", time.Now(), &err)

	p.Reason = strings.TrimSpace(p.Reason)

	switch {
	case p.InvoiceID == uuid.Nil:
		return nil, apperr.Validation("missing invoice")
	case p.Amount <= 0:
		return nil, apperr.Validation("refund amount must be positive")
	case p.Reason == "":
		return nil, apperr.Validation("missing reason")
	}

	now := s.now()
	if p.Date.IsZero() {
		p.Date = now
	}

	err = s.inTx(ctx, func(tx Tx) error {
		inv, err := tx.LockInvoice(ctx, p.InvoiceID)
		if err != nil {
			return err
		}

		if p.Amount > inv.Amount {
			return apperr.Validation("refund of %d exceeds invoice %s amount %d", p.Amount, inv.Number, inv.Amount)
		}

		number, err := s.seq.Next(ctx, tx, SeriesRefund, now)
		if err != nil {
			return err
		}

		refund = &Refund{
			Number:    number,
			InvoiceID: inv.ID,
			ClientID:  inv.ClientID,
			Amount:    p.Amount,
			Reason:    p.Reason,
			Date:      p.Date,
			Status:    RefundPending,
		}

		return tx.CreateRefund(ctx, refund)
	})
	if err != nil {
		return nil, err
	}

	return refund, nil
}

type PostExpenseParams struct {
	CategoryID  uuid.UUID
	Amount      int64
	Description string
	Date        time.Time
}

// PostExpense records an expense the business paid outside of payouts and
// refunds, such as fuel or maintenance.
func (s *Settlement) PostExpense(ctx context.Context, p PostExpenseParams) (expense *Expense, err error) {
	defer s.observe("post_expense", time.Now(), &err)

	p.Description = strings.TrimSpace(p.Description)

	switch {
	case p.CategoryID == uuid.Nil:
		return nil, apperr.Validation("missing category")
	case p.Amount <= 0:
		return nil, apperr.Validation("expense amount must be positive")
	case p.Description == "":
		return nil, apperr.Validation("missing description")
	}

	if p.Date.IsZero() {
		p.Date = s.now()
	}

	err = s.inTx(ctx, func(tx Tx) error {
		cat, err := tx.GetCategory(ctx, p.CategoryID)
		if err != nil {
			return err
		}

		expense, err = s.record(ctx, tx, cat.ID, p.Amount, p.Description, p.Date)

		return err
	})
	if err != nil {
		return nil, err
	}

	return expense, nil
}

// post records a settlement expense under the named category, creating the
// category on first use.
func (s *Settlement) post(ctx context.Context, tx Tx, category, categoryDesc string, amount int64, description string) (*Expense, error) {
	cat, err := tx.EnsureCategory(ctx, category, categoryDesc)
	if err != nil {
		return nil, fmt.Errorf("ensuring category %q: %w", category, err)
	}

	return s.record(ctx, tx, cat.ID, amount, description, s.now())
}

func (s *Settlement) record(ctx context.Context, tx Tx, categoryID uuid.UUID, amount int64, description string, date time.Time) (*Expense, error) {
	number, err := s.seq.Next(ctx, tx, SeriesExpense, s.now())
	if err != nil {
		return nil, err
	}

	expense := &Expense{
		Number:      number,
		Date:        date,
		Amount:      amount,
		Description: description,
		CategoryID:  categoryID,
		Status:      ExpensePaid,
	}

	if err := tx.CreateExpense(ctx, expense); err != nil {
		return nil, err
	}

	return expense, nil
}

func (s *Settlement) ListPayables(ctx context.Context, filter PayableFilter) ([]*AccountPayable, error) {
	return s.repo.ListPayables(ctx, filter)
}

func (s *Settlement) ListRefunds(ctx context.Context, status *RefundStatus) ([]*Refund, error) {
	return s.repo.ListRefunds(ctx, status)
}

func (s *Settlement) ListExpenses(ctx context.Context, filter ExpenseFilter) ([]*Expense, error) {
	return s.repo.ListExpenses(ctx, filter)
}
