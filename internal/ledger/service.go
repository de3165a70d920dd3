package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fleetledger/internal/apperr"
)

// Observer is told about every ledger operation once it completes.
type Observer interface {
	Observe(operation string, started time.Time, err error)
}

type nopObserver struct{}

func (nopObserver) Observe(string, time.Time, error) {}

type Option func(*core)

func WithObserver(obs Observer) Option {
	return func(c *core) { c.obs = obs }
}

func WithPayoutRates(owner, agent decimal.Decimal) Option {
	return func(c *core) { c.payout = NewPayoutCalculator(owner, agent) }
}

// WithLocation sets the time zone used for document number years.
func WithLocation(loc *time.Location) Option {
	return func(c *core) { c.seq = NewSequencer(loc) }
}

func WithClock(now func() time.Time) Option {
	return func(c *core) { c.now = now }
}

// Ledger bundles the engines that share one repository.
type Ledger struct {
	Rentals    *Rentals
	Finalizer  *Finalizer
	Billing    *Billing
	Settlement *Settlement
}

func New(repo Repository, opts ...Option) *Ledger {
	c := &core{
		repo:   repo,
		seq:    NewSequencer(time.UTC),
		payout: NewPayoutCalculator(DefaultOwnerRate, DefaultAgentRate),
		obs:    nopObserver{},
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	rentals := &Rentals{core: c}

	return &Ledger{
		Rentals:    rentals,
		Finalizer:  &Finalizer{core: c},
		Billing:    &Billing{core: c, rentals: rentals},
		Settlement: &Settlement{core: c},
	}
}

type core struct {
	repo   Repository
	seq    *Sequencer
	payout *PayoutCalculator
	obs    Observer
	now    func() time.Time
}

func (c *core) observe(operation string, started time.Time, err *error) {
	c.obs.Observe(operation, started, *err)
}

// inTx runs fn in a single transaction, committing only when fn succeeds.
func (c *core) inTx(ctx context.Context, fn func(tx Tx) error) error {
	tx, err := c.repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

const day = 24 * time.Hour

// BillableDays counts started days between start and end, never fewer than one.
func BillableDays(start, end time.Time) int64 {
	d := end.Sub(start)
	if d <= 0 {
		return 1
	}

	days := int64(d / day)
	if d%day != 0 {
		days++
	}

	return days
}

// ParseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
func ParseDate(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, apperr.Validation("%s is required", field)
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}

	return time.Time{}, apperr.Validation("%s %q is not a valid date", field, s)
}
