package view

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/fleetledger/internal/ledger"
)

type expenseState int

const (
	expenseStatePeriod expenseState = iota
	expenseStateList
)

type expenseItem struct {
	expense *ledger.Expense
}

func (i expenseItem) Title() string {
	return fmt.Sprintf("%s  %s  %s", FormatDate(i.expense.Date), i.expense.Number, FormatAmount(i.expense.Amount))
}

func (i expenseItem) Description() string { return i.expense.Description }
func (i expenseItem) FilterValue() string { return i.expense.Description }

// ExpensesModel lists the expenses posted by settlements over a period.
type ExpensesModel struct {
	CommonModel
	settlement *ledger.Settlement

	state        expenseState
	periodPicker PeriodPicker
	list         list.Model
	total        int64

	loading bool
	status  string
}

func NewExpensesModel(settlement *ledger.Settlement) ExpensesModel {
	l := list.New([]list.Item{}, expenseDelegate{}, 100, 20)
	l.Title = "Expenses"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	return ExpensesModel{
		settlement:   settlement,
		periodPicker: NewPeriodPicker(),
		list:         l,
	}
}

func (m ExpensesModel) Title() string { return "Expenses" }

func (m ExpensesModel) ShortHelp() string {
	if m.state == expenseStateList {
		return "Esc: period | /: filter"
	}

	return "Esc: back | Enter: select"
}

func (m ExpensesModel) Init() tea.Cmd {
	return m.periodPicker.Init()
}

func (m ExpensesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case PeriodSelectedMsg:
		m.loading = true
		m.state = expenseStateList

		filter := ledger.ExpenseFilter{}
		if !msg.All {
			filter.StartDate = &msg.Start
			filter.EndDate = &msg.End
		}

		return m, m.loadCmd(filter)

	case loadExpensesMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = ""
		m.total = 0

		items := make([]list.Item, len(msg.expenses))
		for i, e := range msg.expenses {
			items[i] = expenseItem{expense: e}
			m.total += e.Amount
		}

		return m, m.list.SetItems(items)

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-8)

		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			if m.state == expenseStateList && !m.list.SettingFilter() {
				m.state = expenseStatePeriod
				m.periodPicker.Reset()

				return m, nil
			}

			if m.state == expenseStatePeriod && m.periodPicker.IsSelecting() {
				return m, Back
			}
		}
	}

	var cmd tea.Cmd

	if m.state == expenseStatePeriod {
		m.periodPicker, cmd = m.periodPicker.Update(msg)
		return m, cmd
	}

	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m ExpensesModel) View() string {
	if m.state == expenseStatePeriod {
		return lipgloss.NewStyle().Padding(2).Render(m.periodPicker.View())
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading expenses...")
	}

	footer := fmt.Sprintf("Total: %s", activeStyle(FormatAmount(m.total)))
	if m.status != "" {
		footer = m.status
	}

	return lipgloss.NewStyle().Padding(1).Render(m.list.View() + "\n\n" + footer)
}

type loadExpensesMsg struct {
	expenses []*ledger.Expense
	err      error
}

func (m ExpensesModel) loadCmd(filter ledger.ExpenseFilter) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		expenses, err := m.settlement.ListExpenses(ctx, filter)
		if err != nil {
			return loadExpensesMsg{err: err}
		}

		SortByDate(expenses, func(e *ledger.Expense) time.Time { return e.Date })

		return loadExpensesMsg{expenses: expenses}
	}
}

type expenseDelegate struct{}

func (d expenseDelegate) Height() int                             { return 2 }
func (d expenseDelegate) Spacing() int                            { return 0 }
func (d expenseDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d expenseDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(expenseItem)
	if !ok {
		return
	}

	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}

	fmt.Fprintf(w, "%s%s\n    %s\n", cursor, item.Title(), lipgloss.NewStyle().Faint(true).Render(item.Description()))
}
