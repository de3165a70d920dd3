package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/fleetledger/internal/ledger"
)

type rentalState int

const (
	rentalStateBrowse rentalState = iota
	rentalStateFinalize
	rentalStateDelete
)

var rentalStatusFilters = []*ledger.RentalStatus{
	nil,
	new(ledger.RentalActive),
	new(ledger.RentalFinished),
}

type RentalsModel struct {
	CommonModel
	rentals   *ledger.Rentals
	finalizer *ledger.Finalizer

	state   rentalState
	table   table.Model
	items   []*ledger.Rental
	form    *huh.Form
	loading bool
	err     error
	status  string

	statusFilterIdx int

	// Form bindings
	formEndDate string
	formConfirm bool
}

func NewRentalsModel(rentals *ledger.Rentals, finalizer *ledger.Finalizer) RentalsModel {
	columns := []table.Column{
		{Title: "Start", Width: 12},
		{Title: "End", Width: 12},
		{Title: "Status", Width: 11},
		{Title: "Rate", Width: 10},
		{Title: "Total", Width: 12},
		{Title: "Agent", Width: 20},
	}

	t := table.New(
		table.WithColumns(columns),
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

	return RentalsModel{
		rentals:         rentals,
		finalizer:       finalizer,
		table:           t,
		loading:         true,
		statusFilterIdx: 1,
	}
}

func (m RentalsModel) Title() string { return "Rentals" }

func (m RentalsModel) ShortHelp() string {
	if m.state != rentalStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | f: finalize | x: delete | s: status filter | r: refresh"
}

func (m RentalsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m RentalsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadRentalsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.items = msg.rentals
		m.refreshTable()

		return m, nil

	case rentalActionMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		m.state = rentalStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(msg.Height - 10)

		return m, nil
	}

	if m.state == rentalStateBrowse {
		return m.updateBrowse(msg)
	}

	return m.updateForm(msg)
}

func (m RentalsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "s":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % len(rentalStatusFilters)
			return m, m.loadCmd()
		case "f":
			return m.enterFinalize()
		case "x":
			return m.enterDelete()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m RentalsModel) selected() *ledger.Rental {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.items) {
		return nil
	}

	return m.items[idx]
}

func (m RentalsModel) enterFinalize() (tea.Model, tea.Cmd) {
	r := m.selected()
	if r == nil {
		return m, nil
	}

	if r.Status != ledger.RentalActive {
		m.status = "Only active rentals can be finalized."
		return m, nil
	}

	m.formEndDate = FormatDate(time.Now())
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("actual_end_date").
				Title("Actual return date").
				Placeholder("YYYY-MM-DD").
				Value(&m.formEndDate).
				Validate(func(s string) error {
					_, err := ledger.ParseDate("actual_end_date", strings.TrimSpace(s))
					return err
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = rentalStateFinalize
	m.table.Blur()

	return m, m.form.Init()
}

func (m RentalsModel) enterDelete() (tea.Model, tea.Cmd) {
	if m.selected() == nil {
		return m, nil
	}

	m.formConfirm = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title("Delete this rental?").
				Description("Rentals with invoices cannot be deleted.").
				Value(&m.formConfirm),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = rentalStateDelete
	m.table.Blur()

	return m, m.form.Init()
}

func (m RentalsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = rentalStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == rentalStateDelete {
		if !m.formConfirm {
			m.state = rentalStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}

		return m, m.deleteCmd()
	}

	return m, m.finalizeCmd()
}

func (m RentalsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading rentals...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v\n\n(Esc to back)", m.err))
	}

	label := "All"
	if f := rentalStatusFilters[m.statusFilterIdx]; f != nil {
		label = string(*f)
	}

	header := fmt.Sprintf("Filter: [s] Status: %s", activeStyle(label))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state != rentalStateBrowse && m.form != nil {
		title := "Finalize Rental"
		if m.state == rentalStateDelete {
			title = "Delete Rental"
		}

		detail := ""
		if r := m.selected(); r != nil {
			detail = fmt.Sprintf("Booked %s to %s at %s/day",
				FormatDate(r.StartDate), FormatDate(r.EndDate), FormatAmount(r.DailyRate))
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("%s\n\n%s\n\n%s", title, detail, m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m *RentalsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.items))
	for _, r := range m.items {
		rows = append(rows, table.Row{
			FormatDate(r.StartDate),
			FormatDate(r.EndDate),
			string(r.Status),
			FormatAmount(r.DailyRate),
			FormatAmount(r.TotalAmount),
			r.AgentName,
		})
	}

	m.table.SetRows(rows)
}

// FinalizeSummary describes the settlement a finalization produced.
func FinalizeSummary(res *ledger.FinalizeResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Finalized after %d days, total %s (billed %s).",
		res.ActualDays, FormatAmount(res.ActualTotal), FormatAmount(res.BilledAmount))

	switch {
	case res.ExtraInvoice != nil:
		fmt.Fprintf(&b, " Issued %s for %s.", res.ExtraInvoice.Number, FormatAmount(res.ExtraInvoice.Amount))
	case res.Refund != nil:
		fmt.Fprintf(&b, " Refund %s of %s pending.", res.Refund.Number, FormatAmount(res.Refund.Amount))
	}

	for _, w := range res.Warnings {
		fmt.Fprintf(&b, " Warning: %s.", w)
	}

	return b.String()
}

// Messages

type loadRentalsMsg struct {
	rentals []*ledger.Rental
	err     error
}

func (m RentalsModel) loadCmd() tea.Cmd {
	filter := ledger.RentalFilter{Status: rentalStatusFilters[m.statusFilterIdx]}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		rentals, err := m.rentals.List(ctx, filter)

		return loadRentalsMsg{rentals: rentals, err: err}
	}
}

type rentalActionMsg struct {
	status string
	err    error
}

func (m RentalsModel) finalizeCmd() tea.Cmd {
	r := m.selected()
	if r == nil {
		return nil
	}

	id := r.ID
	raw := strings.TrimSpace(m.formEndDate)

	return func() tea.Msg {
		actualEnd, err := ledger.ParseDate("actual_end_date", raw)
		if err != nil {
			return rentalActionMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		res, err := m.finalizer.Finalize(ctx, id, actualEnd)
		if err != nil {
			return rentalActionMsg{err: err}
		}

		return rentalActionMsg{status: FinalizeSummary(res)}
	}
}

func (m RentalsModel) deleteCmd() tea.Cmd {
	r := m.selected()
	if r == nil {
		return nil
	}

	id := r.ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.rentals.Delete(ctx, id); err != nil {
			return rentalActionMsg{err: err}
		}

		return rentalActionMsg{status: "Rental deleted."}
	}
}
