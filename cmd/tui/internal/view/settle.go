package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fleetledger/internal/ledger"
)

type settleTab int

const (
	settleTabPayables settleTab = iota
	settleTabRefunds
)

func (t settleTab) String() string {
	if t == settleTabRefunds {
		return "Refunds"
	}

	return "Payables"
}

// SettleModel pays out owner and agent payables and returns pending refunds.
type SettleModel struct {
	CommonModel
	settlement *ledger.Settlement

	tab      settleTab
	table    table.Model
	payables []*ledger.AccountPayable
	refunds  []*ledger.Refund

	loading bool
	status  string
}

func NewSettleModel(settlement *ledger.Settlement) SettleModel {
	t := table.New(
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return SettleModel{
		settlement: settlement,
		table:      t,
		loading:    true,
	}
}

func (m SettleModel) Title() string { return "Settle Payables and Refunds" }

func (m SettleModel) ShortHelp() string {
	if m.tab == settleTabRefunds {
		return "Esc: back | Tab: payables | Enter: mark refunded | r: refresh"
	}

	return "Esc: back | Tab: refunds | Enter: mark paid | r: refresh"
}

func (m SettleModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m SettleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadSettleMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.payables = msg.payables
		m.refunds = msg.refunds
		m.refreshTable()

		return m, nil

	case settledMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(msg.Height - 10)

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "tab":
			m.tab = (m.tab + 1) % 2
			m.refreshTable()

			return m, nil
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "enter":
			return m, m.settleCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m SettleModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading...")
	}

	header := fmt.Sprintf("[Tab] %s", activeStyle(m.tab.String()))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Render(m.table.View()),
	)

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *SettleModel) refreshTable() {
	// Old rows are cleared first so they never render against the new columns.
	m.table.SetRows(nil)

	if m.tab == settleTabRefunds {
		m.table.SetColumns([]table.Column{
			{Title: "Number", Width: 14},
			{Title: "Date", Width: 12},
			{Title: "Amount", Width: 12},
			{Title: "Status", Width: 12},
			{Title: "Reason", Width: 36},
		})

		rows := make([]table.Row, 0, len(m.refunds))
		for _, r := range m.refunds {
			rows = append(rows, table.Row{r.Number, FormatDate(r.Date), FormatAmount(r.Amount), string(r.Status), r.Reason})
		}

		m.table.SetRows(rows)

		return
	}

	m.table.SetColumns([]table.Column{
		{Title: "Type", Width: 12},
		{Title: "Beneficiary", Width: 24},
		{Title: "Date", Width: 12},
		{Title: "Amount", Width: 12},
		{Title: "Status", Width: 10},
	})

	rows := make([]table.Row, 0, len(m.payables))
	for _, ap := range m.payables {
		rows = append(rows, table.Row{string(ap.Type), ap.BeneficiaryName, FormatDate(ap.Date), FormatAmount(ap.Amount), string(ap.Status)})
	}

	m.table.SetRows(rows)
}

func (m SettleModel) cursorID() (uuid.UUID, bool) {
	idx := m.table.Cursor()

	if m.tab == settleTabRefunds {
		if idx < 0 || idx >= len(m.refunds) {
			return uuid.Nil, false
		}

		return m.refunds[idx].ID, true
	}

	if idx < 0 || idx >= len(m.payables) {
		return uuid.Nil, false
	}

	return m.payables[idx].ID, true
}

// Messages

type loadSettleMsg struct {
	payables []*ledger.AccountPayable
	refunds  []*ledger.Refund
	err      error
}

func (m SettleModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		var payables []*ledger.AccountPayable

		for _, status := range []ledger.PayableStatus{ledger.PayablePending, ledger.PayableHeld} {
			batch, err := m.settlement.ListPayables(ctx, ledger.PayableFilter{Status: &status})
			if err != nil {
				return loadSettleMsg{err: err}
			}

			payables = append(payables, batch...)
		}

		refunds, err := m.settlement.ListRefunds(ctx, new(ledger.RefundPending))
		if err != nil {
			return loadSettleMsg{err: err}
		}

		return loadSettleMsg{payables: payables, refunds: refunds}
	}
}

type settledMsg struct {
	status string
	err    error
}

func (m SettleModel) settleCmd() tea.Cmd {
	if m.tab == settleTabPayables {
		return m.payPayableCmd()
	}

	id, ok := m.cursorID()
	if !ok {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		res, err := m.settlement.UpdateRefund(ctx, id, ledger.RefundRefunded)
		if err != nil {
			return settledMsg{err: err}
		}

		return settledMsg{status: settlementStatus(res.Refund.Number, string(res.Refund.Status), res.Expense)}
	}
}

// payPayableCmd pays out the payable under the cursor. Held payables are
// rejected by the ledger until their rental invoice is paid.
func (m SettleModel) payPayableCmd() tea.Cmd {
	id, ok := m.cursorID()
	if !ok {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		res, err := m.settlement.UpdatePayable(ctx, id, ledger.PayablePaid)
		if err != nil {
			return settledMsg{err: err}
		}

		return settledMsg{status: settlementStatus(res.Payable.BeneficiaryName, string(res.Payable.Status), res.Expense)}
	}
}

func settlementStatus(subject, status string, expense *ledger.Expense) string {
	if expense == nil {
		return fmt.Sprintf("%s is now %s.", subject, status)
	}

	return fmt.Sprintf("%s is now %s. Posted expense %s for %s.", subject, status, expense.Number, FormatAmount(expense.Amount))
}
