package main

import (
	"errors"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/fleetledger/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/fleetledger/internal/config"
	"github.com/MrJamesThe3rd/fleetledger/internal/database"
	"github.com/MrJamesThe3rd/fleetledger/internal/encoding"
	"github.com/MrJamesThe3rd/fleetledger/internal/importer"
	"github.com/MrJamesThe3rd/fleetledger/internal/ledger"
	ledgerStore "github.com/MrJamesThe3rd/fleetledger/internal/ledger/store"
	"github.com/MrJamesThe3rd/fleetledger/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/fleetledger/internal/matching/store"
	"github.com/MrJamesThe3rd/fleetledger/internal/reconcile"
)

type model struct {
	appName    string
	books      *ledger.Ledger
	reconciler *reconcile.Service

	currentView View

	rentalsView  view.RentalsModel
	invoiceView  view.InvoiceModel
	settleView   view.SettleModel
	expensesView view.ExpensesModel
	importView   view.ImportModel
}

type View int

const (
	ViewMenu     View = 0
	ViewRentals  View = 1
	ViewInvoices View = 2
	ViewSettle   View = 3
	ViewExpenses View = 4
	ViewImport   View = 5
)

func initialModel() model {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ownerRate, agentRate, err := cfg.PayoutRates()
	if err != nil {
		slog.Error("invalid payout rates", "error", err)
		os.Exit(1)
	}

	loc, err := cfg.Location()
	if err != nil {
		slog.Error("invalid time zone", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString(), cfg.DB.MaxOpenConns)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	var decoderOpts []encoding.Option
	if charset, ok := encoding.Lookup(cfg.Import.FallbackCharset); ok {
		decoderOpts = append(decoderOpts, encoding.WithFallback(charset))
	}

	ledgerRepo := ledgerStore.New(db)
	books := ledger.New(ledgerRepo,
		ledger.WithPayoutRates(ownerRate, agentRate),
		ledger.WithLocation(loc),
	)

	reconciler := reconcile.NewService(
		importer.NewService(encoding.NewDecoder(decoderOpts...)),
		ledgerRepo,
		matching.NewService(matchingStore.New(db)),
		books.Billing,
	)

	return model{
		appName:     cfg.App.Name,
		books:       books,
		reconciler:  reconciler,
		currentView: ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewRentals
				m.rentalsView = view.NewRentalsModel(m.books.Rentals, m.books.Finalizer)

				return m, m.rentalsView.Init()
			case "2":
				m.currentView = ViewInvoices
				m.invoiceView = view.NewInvoiceModel(m.books.Billing)

				return m, m.invoiceView.Init()
			case "3":
				m.currentView = ViewSettle
				m.settleView = view.NewSettleModel(m.books.Settlement)

				return m, m.settleView.Init()
			case "4":
				m.currentView = ViewExpenses
				m.expensesView = view.NewExpensesModel(m.books.Settlement)

				return m, m.expensesView.Init()
			case "5":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.reconciler)

				return m, m.importView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewRentals:
		var newModel tea.Model
		newModel, cmd = m.rentalsView.Update(msg)
		m.rentalsView = newModel.(view.RentalsModel)
	case ViewInvoices:
		var newModel tea.Model
		newModel, cmd = m.invoiceView.Update(msg)
		m.invoiceView = newModel.(view.InvoiceModel)
	case ViewSettle:
		var newModel tea.Model
		newModel, cmd = m.settleView.Update(msg)
		m.settleView = newModel.(view.SettleModel)
	case ViewExpenses:
		var newModel tea.Model
		newModel, cmd = m.expensesView.Update(msg)
		m.expensesView = newModel.(view.ExpensesModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	}

	return m, cmd
}

func (m model) View() string {
	var current view.View

	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			m.appName + "\n\n" +
				"1. Rentals\n" +
				"2. Record Payments\n" +
				"3. Settle Payables and Refunds\n" +
				"4. Expenses\n" +
				"5. Import Bank Statement\n\n" +
				"q. Quit",
		)
	case ViewRentals:
		current = m.rentalsView
	case ViewInvoices:
		current = m.invoiceView
	case ViewSettle:
		current = m.settleView
	case ViewExpenses:
		current = m.expensesView
	case ViewImport:
		current = m.importView
	default:
		return "Unknown View"
	}

	help := lipgloss.NewStyle().Faint(true).PaddingLeft(1).Render(current.ShortHelp())

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Padding(1, 1, 0).Render(current.Title()),
		current.View(),
		help,
	)
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
