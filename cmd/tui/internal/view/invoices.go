package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/fleetledger/internal/ledger"
)

// InvoiceModel walks the open invoices oldest first and records a payment
// against each one.
type InvoiceModel struct {
	CommonModel
	billing *ledger.Billing

	queue   []*ledger.Invoice
	current *ledger.Invoice

	amountInput textinput.Model

	loading    bool
	status     string
	totalCount int
}

func NewInvoiceModel(billing *ledger.Billing) InvoiceModel {
	ti := textinput.New()
	ti.Placeholder = "Amount received"
	ti.CharLimit = 15
	ti.Width = 20

	return InvoiceModel{
		billing:     billing,
		amountInput: ti,
		loading:     true,
	}
}

func (m InvoiceModel) Title() string { return "Open Invoices" }

func (m InvoiceModel) ShortHelp() string {
	return "Enter: record payment | s: skip | Esc: back"
}

func (m InvoiceModel) Init() tea.Cmd {
	return m.loadOpenCmd()
}

func (m InvoiceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "enter":
			if m.current != nil {
				return m, m.recordPaymentCmd(m.amountInput.Value())
			}
		case "s":
			if m.current != nil {
				m.status = fmt.Sprintf("Skipped %s.", m.current.Number)
				m.next()

				return m, nil
			}
		}

	case loadOpenMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.queue = msg.invoices
		m.totalCount = len(m.queue)
		m.next()

	case paymentRecordedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
			break
		}

		m.status = PaymentSummary(msg.result)

		// A partial payment leaves the invoice open; keep it on screen.
		if msg.result.Invoice.Status == ledger.InvoicePartial {
			m.current = msg.result.Invoice
			m.amountInput.SetValue(strconv.FormatInt(m.current.Outstanding(), 10))

			break
		}

		m.next()
	}

	m.amountInput, cmd = m.amountInput.Update(msg)

	return m, cmd
}

func (m InvoiceModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading open invoices...")
	}

	if m.current == nil {
		if m.totalCount == 0 {
			return lipgloss.NewStyle().Padding(2).Render("No open invoices.\n\n(Esc to back)")
		}

		return lipgloss.NewStyle().Padding(2).Render(m.status + "\n\n(Esc to back)")
	}

	inv := m.current
	info := fmt.Sprintf(
		"Number: %s\nDate: %s\nStatus: %s\nAmount: %s\nPaid: %s\nOutstanding: %s\n",
		inv.Number,
		FormatDate(inv.Date),
		inv.Status,
		FormatAmount(inv.Amount),
		FormatAmount(inv.PaidAmount),
		FormatAmount(inv.Outstanding()),
	)

	status := ""
	if m.status != "" {
		status = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n\n"
	}

	return lipgloss.NewStyle().Padding(2).Render(
		fmt.Sprintf("%sOpen Invoice (%d remaining)\n\n%s\nPayment amount:\n%s\n\n(Enter to record, 's' to skip, Esc to back)",
			status, len(m.queue)+1, info, m.amountInput.View()),
	)
}

func (m *InvoiceModel) next() {
	if len(m.queue) == 0 {
		m.current = nil
		m.status = "All done!"
		m.amountInput.SetValue("")

		return
	}

	m.current = m.queue[0]
	m.queue = m.queue[1:]
	m.amountInput.SetValue(strconv.FormatInt(m.current.Outstanding(), 10))
	m.amountInput.Focus()
}

// ParseAmount reads a whole-unit amount typed by the operator. Group
// separators are ignored.
func ParseAmount(s string) (int64, error) {
	s = strings.NewReplacer(".", "", " ", "", "_", "").Replace(strings.TrimSpace(s))
	if s == "" {
		return 0, errors.New("amount is required")
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	if n <= 0 {
		return 0, errors.New("amount must be positive")
	}

	return n, nil
}

// PaymentSummary describes a recorded payment.
func PaymentSummary(res *ledger.PaymentResult) string {
	s := fmt.Sprintf("Recorded %s of %s on %s (%s).",
		res.Payment.Number, FormatAmount(res.Payment.Amount), res.Invoice.Number, res.Invoice.Status)

	if res.ReleasedPayables > 0 {
		s += fmt.Sprintf(" Released %d payable(s).", res.ReleasedPayables)
	}

	return s
}

type loadOpenMsg struct {
	invoices []*ledger.Invoice
	err      error
}

func (m InvoiceModel) loadOpenCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		var open []*ledger.Invoice

		for _, status := range []ledger.InvoiceStatus{ledger.InvoicePartial, ledger.InvoicePending} {
			invoices, err := m.billing.ListInvoices(ctx, ledger.InvoiceFilter{Status: &status})
			if err != nil {
				return loadOpenMsg{err: err}
			}

			open = append(open, invoices...)
		}

		SortByDate(open, func(inv *ledger.Invoice) time.Time { return inv.Date })

		return loadOpenMsg{invoices: open}
	}
}

type paymentRecordedMsg struct {
	result *ledger.PaymentResult
	err    error
}

func (m InvoiceModel) recordPaymentCmd(raw string) tea.Cmd {
	id := m.current.ID

	return func() tea.Msg {
		amount, err := ParseAmount(raw)
		if err != nil {
			return paymentRecordedMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		res, err := m.billing.RecordPayment(ctx, ledger.RecordPaymentParams{
			InvoiceID: id,
			Amount:    amount,
			Date:      time.Now(),
		})

		return paymentRecordedMsg{result: res, err: err}
	}
}
