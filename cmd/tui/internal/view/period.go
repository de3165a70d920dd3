package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/fleetledger/internal/ledger"
)

// Period is a predefined or custom date range. Document series restart
// every year, so the yearly periods line up with a full series.
type Period int

const (
	PeriodThisMonth Period = iota
	PeriodLastMonth
	PeriodThisYear
	PeriodLastYear
	PeriodAll
	PeriodCustom
)

func (p Period) String() string {
	switch p {
	case PeriodThisMonth:
		return "This Month"
	case PeriodLastMonth:
		return "Last Month"
	case PeriodThisYear:
		return "This Year"
	case PeriodLastYear:
		return "Last Year"
	case PeriodAll:
		return "All Time"
	case PeriodCustom:
		return "Custom Range"
	}

	return "Unknown"
}

// periodRange returns the first and last day of p relative to now.
func periodRange(p Period, now time.Time) (time.Time, time.Time) {
	y, mo, _ := now.Date()
	loc := now.Location()

	switch p {
	case PeriodThisMonth:
		return time.Date(y, mo, 1, 0, 0, 0, 0, loc), now
	case PeriodLastMonth:
		start := time.Date(y, mo-1, 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 1, -1)
	case PeriodThisYear:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, loc), now
	case PeriodLastYear:
		return time.Date(y-1, time.January, 1, 0, 0, 0, 0, loc), time.Date(y-1, time.December, 31, 0, 0, 0, 0, loc)
	}

	return time.Time{}, time.Time{}
}

// wholeDays widens a range to whole days, matching ledger dates which are
// stored at midnight UTC.
func wholeDays(start, end time.Time) (time.Time, time.Time) {
	return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC),
		time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, time.UTC)
}

// PeriodSelectedMsg is emitted once a valid range is picked. Start and End
// are zero when All is set.
type PeriodSelectedMsg struct {
	Start time.Time
	End   time.Time
	All   bool
}

// PeriodPicker lets the operator pick a period from a list, or type a
// custom range into a form.
type PeriodPicker struct {
	cursor Period
	now    func() time.Time

	form      *huh.Form
	formStart string
	formEnd   string
}

func NewPeriodPicker() PeriodPicker {
	return PeriodPicker{now: time.Now}
}

func (m PeriodPicker) Init() tea.Cmd {
	return nil
}

func (m PeriodPicker) Update(msg tea.Msg) (PeriodPicker, tea.Cmd) {
	if m.form != nil {
		return m.updateCustom(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.Type {
	case tea.KeyUp:
		if m.cursor > PeriodThisMonth {
			m.cursor--
		}
	case tea.KeyDown:
		if m.cursor < PeriodCustom {
			m.cursor++
		}
	case tea.KeyEnter:
		return m.choose()
	}

	return m, nil
}

func (m PeriodPicker) choose() (PeriodPicker, tea.Cmd) {
	switch m.cursor {
	case PeriodAll:
		return m, func() tea.Msg { return PeriodSelectedMsg{All: true} }
	case PeriodCustom:
		m.formStart, m.formEnd = "", ""
		m.form = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().Key("start").Title("From").Placeholder("YYYY-MM-DD").
					Value(&m.formStart).Validate(validDate("from")),
				huh.NewInput().Key("end").Title("To").Placeholder("YYYY-MM-DD").
					Value(&m.formEnd).Validate(validDate("to")),
			),
		).WithWidth(30).WithShowHelp(false)

		return m, m.form.Init()
	}

	start, end := wholeDays(periodRange(m.cursor, m.now()))

	return m, func() tea.Msg { return PeriodSelectedMsg{Start: start, End: end} }
}

func (m PeriodPicker) updateCustom(msg tea.Msg) (PeriodPicker, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	start, _ := ledger.ParseDate("from", strings.TrimSpace(m.formStart))
	end, _ := ledger.ParseDate("to", strings.TrimSpace(m.formEnd))
	m.form = nil

	if end.Before(start) {
		start, end = end, start
	}

	start, end = wholeDays(start, end)

	return m, func() tea.Msg { return PeriodSelectedMsg{Start: start, End: end} }
}

func validDate(field string) func(string) error {
	return func(s string) error {
		_, err := ledger.ParseDate(field, strings.TrimSpace(s))
		return err
	}
}

func (m PeriodPicker) View() string {
	if m.form != nil {
		return "Custom Range\n\n" + m.form.View() + "\n\n(Esc to back)"
	}

	var b strings.Builder

	b.WriteString("Select Period:\n\n")

	for p := PeriodThisMonth; p <= PeriodCustom; p++ {
		cursor := " "
		label := p.String()

		if p == m.cursor {
			cursor = ">"
			label = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(label)
		}

		fmt.Fprintf(&b, "%s %s\n", cursor, label)
	}

	b.WriteString("\n(Enter to select, Esc to back)")

	return b.String()
}

// IsSelecting reports whether the picker shows the period list rather than
// the custom range form.
func (m PeriodPicker) IsSelecting() bool {
	return m.form == nil
}

// Reset returns the picker to the period list.
func (m *PeriodPicker) Reset() {
	m.form = nil
	m.cursor = PeriodThisMonth
}
