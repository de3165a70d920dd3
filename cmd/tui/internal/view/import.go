package view

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/fleetledger/internal/actor"
	"github.com/MrJamesThe3rd/fleetledger/internal/importer"
	"github.com/MrJamesThe3rd/fleetledger/internal/reconcile"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateBankSelect importState = iota
	importStateFilePick
	importStateImporting
	importStatePreview
	importStateResult
)

// ImportModel previews how a bank statement reconciles against open
// invoices and records the payments once confirmed.
type ImportModel struct {
	CommonModel
	reconciler *reconcile.Service

	state        importState
	filePicker   filepicker.Model
	selectedBank importer.Bank
	bankOptions  []importer.Bank
	bankCursor   int

	path    string
	report  *reconcile.Report
	preview list.Model

	status string
	err    error
}

func NewImportModel(reconciler *reconcile.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.AllowedTypes = []string{".csv", ".txt"}
	fp.SetHeight(15)

	return ImportModel{
		reconciler:  reconciler,
		filePicker:  fp,
		bankOptions: []importer.Bank{importer.BankCGD},
	}
}

func (m ImportModel) Title() string { return "Import Bank Statement" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStatePreview {
		return "a: apply | Esc: cancel"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStateBankSelect {
			return m.updateBankSelect(msg)
		}

		if m.state == importStatePreview {
			return m.updatePreview(msg)
		}

	case reconcileMsg:
		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		if !msg.report.DryRun {
			m.state = importStateResult
			m.report = msg.report
			m.status = ReportSummary(msg.report)

			return m, nil
		}

		m.report = msg.report
		m.state = importStatePreview
		m.preview = newPreviewList(msg.report)

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.path = path
		m.state = importStateImporting
		m.status = fmt.Sprintf("Reading %s...", path)

		return m, m.reconcileCmd(true)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateFilePick, importStateResult, importStatePreview:
		m.state = importStateBankSelect
		m.report = nil
		m.err = nil
		m.status = ""

		return m, nil
	}

	return m, Back
}

func (m ImportModel) updateBankSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.bankCursor > 0 {
			m.bankCursor--
		}
	case tea.KeyDown:
		if m.bankCursor < len(m.bankOptions)-1 {
			m.bankCursor++
		}
	case tea.KeyEnter:
		m.selectedBank = m.bankOptions[m.bankCursor]
		m.state = importStateFilePick

		return m, m.filePicker.Init()
	}

	return m, nil
}

func (m ImportModel) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "a" {
		if m.report.Matched == 0 {
			m.state = importStateResult
			m.status = "Nothing to record."

			return m, nil
		}

		m.state = importStateImporting
		m.status = "Recording payments..."

		return m, m.reconcileCmd(false)
	}

	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)

	return m, cmd
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateBankSelect:
		return m.viewBankSelect()
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select statement (%s):\n\n%s", m.selectedBank, m.filePicker.View()),
		)
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStatePreview:
		return lipgloss.NewStyle().Padding(1).Render(
			ReportSummary(m.report) + "\n\n" + m.preview.View() + "\n\n(a to apply, Esc to cancel)",
		)
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewBankSelect() string {
	s := "Select Bank:\n\n"

	for i, bank := range m.bankOptions {
		cursor := " "
		if i == m.bankCursor {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, string(bank))
	}

	return lipgloss.NewStyle().Padding(2).Render(s)
}

func (m ImportModel) viewResult() string {
	color := lipgloss.Color("46")
	if m.err != nil {
		color = lipgloss.Color("196")
	}

	return lipgloss.NewStyle().Padding(2).Render(
		lipgloss.NewStyle().Foreground(color).Render(m.status) + "\n\n(Esc to go back)",
	)
}

// ReportSummary counts what a reconciliation run did or would do.
func ReportSummary(r *reconcile.Report) string {
	if r.DryRun {
		return fmt.Sprintf("%d lines, %d credits: %d would be recorded, %d skipped.",
			r.Lines, r.Credits, r.Matched, r.Skipped)
	}

	return fmt.Sprintf("%d lines, %d credits: %d payments recorded, %d skipped.",
		r.Lines, r.Credits, r.Recorded, r.Skipped)
}

// Messages

type reconcileMsg struct {
	report *reconcile.Report
	err    error
}

func (m ImportModel) reconcileCmd(dryRun bool) tea.Cmd {
	path := m.path
	bank := m.selectedBank

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return reconcileMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(actor.WithActor(context.Background(), Operator), importTimeout)
		defer cancel()

		report, err := m.reconciler.Import(ctx, bank, f, dryRun)

		return reconcileMsg{report: report, err: err}
	}
}

// Preview list

type matchItem struct {
	match reconcile.Match
}

func (i matchItem) Title() string       { return i.match.Line.Description }
func (i matchItem) Description() string { return i.match.Reason }
func (i matchItem) FilterValue() string { return i.match.Line.Description }

func newPreviewList(r *reconcile.Report) list.Model {
	items := make([]list.Item, len(r.Matches))
	for i, match := range r.Matches {
		items[i] = matchItem{match: match}
	}

	l := list.New(items, matchDelegate{}, 100, 20)
	l.Title = "Statement Credits"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return l
}

type matchDelegate struct{}

func (d matchDelegate) Height() int                             { return 2 }
func (d matchDelegate) Spacing() int                            { return 0 }
func (d matchDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d matchDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(matchItem)
	if !ok {
		return
	}

	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}

	match := item.match
	line1 := fmt.Sprintf("%s%s  %s  %s",
		cursor,
		FormatDate(match.Line.Date),
		FormatAmount(match.Amount),
		match.Line.Description,
	)

	outcome := lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render(string(match.Outcome))
	detail := fmt.Sprintf("%s via %s", match.Invoice, match.MatchedBy)

	if match.Outcome == reconcile.OutcomeSkipped {
		outcome = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render(string(match.Outcome))
		detail = match.Reason
	}

	if match.Payment != "" {
		detail += " as " + match.Payment
	}

	fmt.Fprintf(w, "%s\n      %s  %s\n", line1, outcome, detail)
}
