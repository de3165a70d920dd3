// Package ledgertest provides an in-memory ledger.Repository for tests.
// Transactions are serialized by one store-wide lock and work on a copy of
// the data that replaces it on Commit, so it does not model row locking.
// Production code wires internal/ledger/store instead.
package ledgertest

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fleetledger/internal/apperr"
	"github.com/MrJamesThe3rd/fleetledger/internal/catalog"
	"github.com/MrJamesThe3rd/fleetledger/internal/ledger"
)

type data struct {
	vehicles   map[uuid.UUID]catalog.Vehicle
	agents     map[uuid.UUID]catalog.Agent
	rentals    map[uuid.UUID]ledger.Rental
	invoices   map[uuid.UUID]ledger.Invoice
	payments   map[uuid.UUID]ledger.Payment
	payables   map[uuid.UUID]ledger.AccountPayable
	refunds    map[uuid.UUID]ledger.Refund
	categories map[uuid.UUID]catalog.ExpenseCategory
	expenses   map[uuid.UUID]ledger.Expense
	sequences  map[string]int
	tick       int64
}

func (d *data) clone() *data {
	return &data{
		vehicles:   maps.Clone(d.vehicles),
		agents:     maps.Clone(d.agents),
		rentals:    maps.Clone(d.rentals),
		invoices:   maps.Clone(d.invoices),
		payments:   maps.Clone(d.payments),
		payables:   maps.Clone(d.payables),
		refunds:    maps.Clone(d.refunds),
		categories: maps.Clone(d.categories),
		expenses:   maps.Clone(d.expenses),
		sequences:  maps.Clone(d.sequences),
		tick:       d.tick,
	}
}

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// stamp returns a strictly increasing creation time.
func (d *data) stamp() time.Time {
	d.tick++
	return epoch.Add(time.Duration(d.tick) * time.Millisecond)
}

type Store struct {
	mu       sync.Mutex
	data     *data
	failures map[string]error
}

func New() *Store {
	return &Store{
		data: &data{
			vehicles:   map[uuid.UUID]catalog.Vehicle{},
			agents:     map[uuid.UUID]catalog.Agent{},
			rentals:    map[uuid.UUID]ledger.Rental{},
			invoices:   map[uuid.UUID]ledger.Invoice{},
			payments:   map[uuid.UUID]ledger.Payment{},
			payables:   map[uuid.UUID]ledger.AccountPayable{},
			refunds:    map[uuid.UUID]ledger.Refund{},
			categories: map[uuid.UUID]catalog.ExpenseCategory{},
			expenses:   map[uuid.UUID]ledger.Expense{},
			sequences:  map[string]int{},
		},
		failures: map[string]error{},
	}
}

// FailOn makes the named Tx method return err until cleared with a nil err.
func (s *Store) FailOn(method string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err == nil {
		delete(s.failures, method)
		return
	}

	s.failures[method] = err
}

func (s *Store) AddVehicle(v catalog.Vehicle) *catalog.Vehicle {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}

	if v.Status == "" {
		v.Status = catalog.VehicleAvailable
	}

	v.CreatedAt = s.data.stamp()
	s.data.vehicles[v.ID] = v

	return &v
}

func (s *Store) AddAgent(a catalog.Agent) *catalog.Agent {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	a.CreatedAt = s.data.stamp()
	s.data.agents[a.ID] = a

	return &a
}

func (s *Store) AddCategory(c catalog.ExpenseCategory) *catalog.ExpenseCategory {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	if c.Type == "" {
		c.Type = catalog.CategoryExpense
	}

	c.CreatedAt = s.data.stamp()
	s.data.categories[c.ID] = c

	return &c
}

func (s *Store) Vehicle(id uuid.UUID) catalog.Vehicle {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.data.vehicles[id]
}

func (s *Store) Rental(id uuid.UUID) ledger.Rental {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.data.rentals[id]
}

func (s *Store) Invoice(id uuid.UUID) ledger.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.data.invoices[id]
}

func (s *Store) Invoices() []ledger.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()

	return sortedValues(s.data.invoices, func(i ledger.Invoice) time.Time { return i.CreatedAt })
}

func (s *Store) Payments() []ledger.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()

	return sortedValues(s.data.payments, func(p ledger.Payment) time.Time { return p.CreatedAt })
}

func (s *Store) Payables() []ledger.AccountPayable {
	s.mu.Lock()
	defer s.mu.Unlock()

	return sortedValues(s.data.payables, func(ap ledger.AccountPayable) time.Time { return ap.CreatedAt })
}

func (s *Store) Refunds() []ledger.Refund {
	s.mu.Lock()
	defer s.mu.Unlock()

	return sortedValues(s.data.refunds, func(r ledger.Refund) time.Time { return r.CreatedAt })
}

func (s *Store) Expenses() []ledger.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()

	return sortedValues(s.data.expenses, func(e ledger.Expense) time.Time { return e.CreatedAt })
}

func (s *Store) Categories() []catalog.ExpenseCategory {
	s.mu.Lock()
	defer s.mu.Unlock()

	return sortedValues(s.data.categories, func(c catalog.ExpenseCategory) time.Time { return c.CreatedAt })
}

func sortedValues[K comparable, V any](m map[K]V, createdAt func(V) time.Time) []V {
	out := slices.Collect(maps.Values(m))
	slices.SortFunc(out, func(a, b V) int { return createdAt(a).Compare(createdAt(b)) })

	return out
}

// Begin blocks until no other transaction is open.
func (s *Store) Begin(ctx context.Context) (ledger.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()

	failures := maps.Clone(s.failures)

	return &tx{store: s, work: s.data.clone(), failures: failures}, nil
}

type tx struct {
	store    *Store
	work     *data
	failures map[string]error
	done     bool
}

func (t *tx) fail(method string) error {
	return t.failures[method]
}

func (t *tx) Commit() error {
	if t.done {
		return fmt.Errorf("transaction already closed")
	}

	if err := t.fail("Commit"); err != nil {
		return err
	}

	t.store.data = t.work
	t.done = true
	t.store.mu.Unlock()

	return nil
}

func (t *tx) Rollback() error {
	if t.done {
		return nil
	}

	t.done = true
	t.store.mu.Unlock()

	return nil
}

func (t *tx) LastDocumentNumber(_ context.Context, doc ledger.Document, prefix, suffix string) (string, error) {
	var (
		last    string
		lastAt  time.Time
		numbers []struct {
			number string
			at     time.Time
		}
	)

	add := func(number string, at time.Time) {
		numbers = append(numbers, struct {
			number string
			at     time.Time
		}{number, at})
	}

	switch doc {
	case ledger.DocInvoice:
		for _, v := range t.work.invoices {
			add(v.Number, v.CreatedAt)
		}
	case ledger.DocPayment:
		for _, v := range t.work.payments {
			add(v.Number, v.CreatedAt)
		}
	case ledger.DocRefund:
		for _, v := range t.work.refunds {
			add(v.Number, v.CreatedAt)
		}
	case ledger.DocExpense:
		for _, v := range t.work.expenses {
			add(v.Number, v.CreatedAt)
		}
	default:
		return "", fmt.Errorf("unknown document %q", doc)
	}

	for _, n := range numbers {
		if strings.HasPrefix(n.number, prefix) && strings.HasSuffix(n.number, suffix) && n.at.After(lastAt) {
			last, lastAt = n.number, n.at
		}
	}

	return last, nil
}

func (t *tx) NextSequence(_ context.Context, prefix, year string, floor int) (int, error) {
	if err := t.fail("NextSequence"); err != nil {
		return 0, err
	}

	key := prefix + "/" + year
	next := max(t.work.sequences[key], floor) + 1
	t.work.sequences[key] = next

	return next, nil
}

func (t *tx) GetVehicle(_ context.Context, id uuid.UUID) (*catalog.Vehicle, error) {
	v, ok := t.work.vehicles[id]
	if !ok {
		return nil, apperr.NotFound("vehicle")
	}

	return &v, nil
}

func (t *tx) FindAgent(_ context.Context, ref string) (*catalog.Agent, error) {
	if id, err := uuid.Parse(ref); err == nil {
		if a, ok := t.work.agents[id]; ok {
			return &a, nil
		}
	}

	for _, a := range t.work.agents {
		if a.Name == ref {
			return &a, nil
		}
	}

	return nil, apperr.NotFound("agent")
}

func (t *tx) SetVehicleStatus(_ context.Context, id uuid.UUID, status catalog.VehicleStatus) error {
	if err := t.fail("SetVehicleStatus"); err != nil {
		return err
	}

	v, ok := t.work.vehicles[id]
	if !ok {
		return apperr.NotFound("vehicle")
	}

	v.Status = status
	t.work.vehicles[id] = v

	return nil
}

func (t *tx) CreateRental(_ context.Context, r *ledger.Rental) error {
	if err := t.fail("CreateRental"); err != nil {
		return err
	}

	r.ID = uuid.New()
	r.CreatedAt = t.work.stamp()
	t.work.rentals[r.ID] = *r

	return nil
}

func (t *tx) LockRental(_ context.Context, id uuid.UUID) (*ledger.Rental, error) {
	r, ok := t.work.rentals[id]
	if !ok {
		return nil, apperr.NotFound("rental")
	}

	return &r, nil
}

func (t *tx) UpdateRental(_ context.Context, r *ledger.Rental) error {
	if err := t.fail("UpdateRental"); err != nil {
		return err
	}

	if _, ok := t.work.rentals[r.ID]; !ok {
		return apperr.NotFound("rental")
	}

	t.work.rentals[r.ID] = *r

	return nil
}

func (t *tx) DeleteRental(_ context.Context, id uuid.UUID) error {
	delete(t.work.rentals, id)

	for apID, ap := range t.work.payables {
		if ap.RentalID == id {
			delete(t.work.payables, apID)
		}
	}

	return nil
}

func (t *tx) CountInvoicesByRental(_ context.Context, rentalID uuid.UUID) (int64, error) {
	var n int64

	for _, inv := range t.work.invoices {
		if inv.RentalID != nil && *inv.RentalID == rentalID {
			n++
		}
	}

	return n, nil
}

func (t *tx) CreateInvoice(_ context.Context, inv *ledger.Invoice) error {
	if err := t.fail("CreateInvoice"); err != nil {
		return err
	}

	for _, existing := range t.work.invoices {
		if existing.Number == inv.Number {
			return fmt.Errorf("%w: duplicate invoice number %s", apperr.ErrIntegrity, inv.Number)
		}

		if inv.RentalID != nil && existing.RentalID != nil && *existing.RentalID == *inv.RentalID {
			return fmt.Errorf("%w: rental already invoiced", apperr.ErrIntegrity)
		}
	}

	inv.ID = uuid.New()
	inv.CreatedAt = t.work.stamp()
	t.work.invoices[inv.ID] = *inv

	return nil
}

func (t *tx) LockInvoice(_ context.Context, id uuid.UUID) (*ledger.Invoice, error) {
	inv, ok := t.work.invoices[id]
	if !ok {
		return nil, apperr.NotFound("invoice")
	}

	return &inv, nil
}

func (t *tx) RentalInvoice(_ context.Context, rentalID uuid.UUID) (*ledger.Invoice, error) {
	for _, inv := range t.work.invoices {
		if inv.RentalID != nil && *inv.RentalID == rentalID {
			return &inv, nil
		}
	}

	return nil, apperr.NotFound("invoice")
}

func (t *tx) UpdateInvoicePaid(_ context.Context, id uuid.UUID, paid int64, status ledger.InvoiceStatus) error {
	if err := t.fail("UpdateInvoicePaid"); err != nil {
		return err
	}

	inv, ok := t.work.invoices[id]
	if !ok {
		return apperr.NotFound("invoice")
	}

	if paid < 0 || paid > inv.Amount {
		return fmt.Errorf("%w: paid amount %d outside [0, %d]", apperr.ErrValidation, paid, inv.Amount)
	}

	inv.PaidAmount = paid
	inv.Status = status
	t.work.invoices[id] = inv

	return nil
}

func (t *tx) DeleteInvoice(_ context.Context, id uuid.UUID) error {
	delete(t.work.invoices, id)
	return nil
}

func (t *tx) CountPaymentsByInvoice(_ context.Context, invoiceID uuid.UUID) (int64, error) {
	var n int64

	for _, p := range t.work.payments {
		if p.InvoiceID == invoiceID {
			n++
		}
	}

	return n, nil
}

func (t *tx) CountRefundsByInvoice(_ context.Context, invoiceID uuid.UUID) (int64, error) {
	var n int64

	for _, r := range t.work.refunds {
		if r.InvoiceID == invoiceID {
			n++
		}
	}

	return n, nil
}

func (t *tx) CreatePayment(_ context.Context, p *ledger.Payment) error {
	if err := t.fail("CreatePayment"); err != nil {
		return err
	}

	for _, existing := range t.work.payments {
		if p.Reference != "" && existing.Reference == p.Reference {
			return fmt.Errorf("%w: duplicate payment reference", apperr.ErrIntegrity)
		}
	}

	p.ID = uuid.New()
	p.CreatedAt = t.work.stamp()
	t.work.payments[p.ID] = *p

	return nil
}

func (t *tx) GetPayment(_ context.Context, id uuid.UUID) (*ledger.Payment, error) {
	p, ok := t.work.payments[id]
	if !ok {
		return nil, apperr.NotFound("payment")
	}

	return &p, nil
}

func (t *tx) DeletePayment(_ context.Context, id uuid.UUID) error {
	delete(t.work.payments, id)
	return nil
}

func (t *tx) CreatePayable(_ context.Context, ap *ledger.AccountPayable) error {
	if err := t.fail("CreatePayable"); err != nil {
		return err
	}

	ap.ID = uuid.New()
	ap.CreatedAt = t.work.stamp()
	t.work.payables[ap.ID] = *ap

	return nil
}

func (t *tx) LockPayable(_ context.Context, id uuid.UUID) (*ledger.AccountPayable, error) {
	ap, ok := t.work.payables[id]
	if !ok {
		return nil, apperr.NotFound("account payable")
	}

	return &ap, nil
}

func (t *tx) ListRentalPayables(_ context.Context, rentalID uuid.UUID, statuses []ledger.PayableStatus) ([]*ledger.AccountPayable, error) {
	var out []*ledger.AccountPayable

	for _, ap := range sortedValues(t.work.payables, func(ap ledger.AccountPayable) time.Time { return ap.CreatedAt }) {
		if ap.RentalID == rentalID && slices.Contains(statuses, ap.Status) {
			out = append(out, &ap)
		}
	}

	return out, nil
}

func (t *tx) UpdatePayableAmount(_ context.Context, id uuid.UUID, amount int64) error {
	if err := t.fail("UpdatePayableAmount"); err != nil {
		return err
	}

	ap, ok := t.work.payables[id]
	if !ok {
		return apperr.NotFound("account payable")
	}

	ap.Amount = amount
	t.work.payables[id] = ap

	return nil
}

func (t *tx) UpdatePayableStatus(_ context.Context, id uuid.UUID, status ledger.PayableStatus) error {
	ap, ok := t.work.payables[id]
	if !ok {
		return apperr.NotFound("account payable")
	}

	ap.Status = status
	t.work.payables[id] = ap

	return nil
}

func (t *tx) ReleasePayables(_ context.Context, rentalID, paymentID uuid.UUID) (int64, error) {
	if err := t.fail("ReleasePayables"); err != nil {
		return 0, err
	}

	var n int64

	for id, ap := range t.work.payables {
		if ap.RentalID != rentalID || ap.Status != ledger.PayableHeld {
			continue
		}

		ap.Status = ledger.PayablePending
		ap.ReleasedByPaymentID = &paymentID
		t.work.payables[id] = ap
		n++
	}

	return n, nil
}

func (t *tx) CreateRefund(_ context.Context, r *ledger.Refund) error {
	if err := t.fail("CreateRefund"); err != nil {
		return err
	}

	r.ID = uuid.New()
	r.CreatedAt = t.work.stamp()
	t.work.refunds[r.ID] = *r

	return nil
}

func (t *tx) LockRefund(_ context.Context, id uuid.UUID) (*ledger.Refund, error) {
	r, ok := t.work.refunds[id]
	if !ok {
		return nil, apperr.NotFound("refund")
	}

	return &r, nil
}

func (t *tx) UpdateRefundStatus(_ context.Context, id uuid.UUID, status ledger.RefundStatus) error {
	r, ok := t.work.refunds[id]
	if !ok {
		return apperr.NotFound("refund")
	}

	r.Status = status
	t.work.refunds[id] = r

	return nil
}

func (t *tx) GetCategory(_ context.Context, id uuid.UUID) (*catalog.ExpenseCategory, error) {
	c, ok := t.work.categories[id]
	if !ok {
		return nil, apperr.NotFound("expense category")
	}

	return &c, nil
}

func (t *tx) EnsureCategory(_ context.Context, name, description string) (*catalog.ExpenseCategory, error) {
	for _, c := range t.work.categories {
		if c.Name == name {
			return &c, nil
		}
	}

	c := catalog.ExpenseCategory{
		ID:          uuid.New(),
		Name:        name,
		Type:        catalog.CategoryExpense,
		Description: description,
		CreatedAt:   t.work.stamp(),
	}
	t.work.categories[c.ID] = c

	return &c, nil
}

func (t *tx) CreateExpense(_ context.Context, e *ledger.Expense) error {
	if err := t.fail("CreateExpense"); err != nil {
		return err
	}

	e.ID = uuid.New()
	e.CreatedAt = t.work.stamp()
	t.work.expenses[e.ID] = *e

	return nil
}

func (s *Store) GetRental(_ context.Context, id uuid.UUID) (*ledger.Rental, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.data.rentals[id]
	if !ok {
		return nil, apperr.NotFound("rental")
	}

	return &r, nil
}

func (s *Store) ListRentals(_ context.Context, filter ledger.RentalFilter) ([]*ledger.Rental, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*ledger.Rental

	for _, r := range sortedValues(s.data.rentals, func(r ledger.Rental) time.Time { return r.CreatedAt }) {
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}

		if filter.ClientID != nil && r.ClientID != *filter.ClientID {
			continue
		}

		out = append(out, &r)
	}

	return out, nil
}

func (s *Store) GetInvoice(_ context.Context, id uuid.UUID) (*ledger.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, ok := s.data.invoices[id]
	if !ok {
		return nil, apperr.NotFound("invoice")
	}

	return &inv, nil
}

func (s *Store) ListInvoices(_ context.Context, filter ledger.InvoiceFilter) ([]*ledger.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*ledger.Invoice

	for _, inv := range sortedValues(s.data.invoices, func(i ledger.Invoice) time.Time { return i.CreatedAt }) {
		if filter.Status != nil && inv.Status != *filter.Status {
			continue
		}

		if filter.ClientID != nil && inv.ClientID != *filter.ClientID {
			continue
		}

		if filter.StartDate != nil && inv.Date.Before(*filter.StartDate) {
			continue
		}

		if filter.EndDate != nil && inv.Date.After(*filter.EndDate) {
			continue
		}

		out = append(out, &inv)
	}

	return out, nil
}

func (s *Store) FindInvoiceByNumber(_ context.Context, number string) (*ledger.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, inv := range s.data.invoices {
		if inv.Number == number {
			return &inv, nil
		}
	}

	return nil, apperr.NotFound("invoice")
}

func (s *Store) OldestOpenInvoice(_ context.Context, clientID uuid.UUID) (*ledger.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, inv := range sortedValues(s.data.invoices, func(i ledger.Invoice) time.Time { return i.Date }) {
		if inv.ClientID == clientID && inv.Status != ledger.InvoicePaid {
			return &inv, nil
		}
	}

	return nil, apperr.NotFound("invoice")
}

func (s *Store) ListPayments(_ context.Context, filter ledger.PaymentFilter) ([]*ledger.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*ledger.Payment

	for _, p := range sortedValues(s.data.payments, func(p ledger.Payment) time.Time { return p.CreatedAt }) {
		if filter.InvoiceID != nil && p.InvoiceID != *filter.InvoiceID {
			continue
		}

		out = append(out, &p)
	}

	return out, nil
}

func (s *Store) PaymentReferenceExists(_ context.Context, reference string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.data.payments {
		if p.Reference == reference {
			return true, nil
		}
	}

	return false, nil
}

func (s *Store) ListPayables(_ context.Context, filter ledger.PayableFilter) ([]*ledger.AccountPayable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*ledger.AccountPayable

	for _, ap := range sortedValues(s.data.payables, func(ap ledger.AccountPayable) time.Time { return ap.CreatedAt }) {
		if filter.Status != nil && ap.Status != *filter.Status {
			continue
		}

		if filter.RentalID != nil && ap.RentalID != *filter.RentalID {
			continue
		}

		out = append(out, &ap)
	}

	return out, nil
}

func (s *Store) ListRefunds(_ context.Context, status *ledger.RefundStatus) ([]*ledger.Refund, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*ledger.Refund

	for _, r := range sortedValues(s.data.refunds, func(r ledger.Refund) time.Time { return r.CreatedAt }) {
		if status != nil && r.Status != *status {
			continue
		}

		out = append(out, &r)
	}

	return out, nil
}

func (s *Store) ListExpenses(_ context.Context, filter ledger.ExpenseFilter) ([]*ledger.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*ledger.Expense

	for _, e := range sortedValues(s.data.expenses, func(e ledger.Expense) time.Time { return e.CreatedAt }) {
		if filter.CategoryID != nil && e.CategoryID != *filter.CategoryID {
			continue
		}

		if filter.StartDate != nil && e.Date.Before(*filter.StartDate) {
			continue
		}

		if filter.EndDate != nil && e.Date.After(*filter.EndDate) {
			continue
		}

		out = append(out, &e)
	}

	return out, nil
}
