package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fieldwork/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/fieldwork/internal/billing"
	billingStore "github.com/MrJamesThe3rd/fieldwork/internal/billing/store"
	"github.com/MrJamesThe3rd/fieldwork/internal/config"
	"github.com/MrJamesThe3rd/fieldwork/internal/customer"
	customerStore "github.com/MrJamesThe3rd/fieldwork/internal/customer/store"
	"github.com/MrJamesThe3rd/fieldwork/internal/database"
	"github.com/MrJamesThe3rd/fieldwork/internal/export"
	"github.com/MrJamesThe3rd/fieldwork/internal/job"
	jobStore "github.com/MrJamesThe3rd/fieldwork/internal/job/store"
	"github.com/MrJamesThe3rd/fieldwork/internal/technician"
	technicianStore "github.com/MrJamesThe3rd/fieldwork/internal/technician/store"
)

type model struct {
	customerService   *customer.Service
	technicianService *technician.Service
	jobService        *job.Service
	billingService    *billing.Service
	exportService     *export.Service
	defaultTaxRate    decimal.Decimal

	currentView View
	active      view.View
}

type View int

const (
	ViewMenu        View = 0
	ViewJobs        View = 1
	ViewTechnicians View = 2
	ViewImport      View = 3
	ViewExport      View = 4
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString(), cfg.PoolOptions())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	customerSvc := customer.NewService(customerStore.New(db))
	technicianSvc := technician.NewService(technicianStore.New(db))
	billingSvc := billing.NewService(billingStore.New(db))

	return model{
		customerService:   customerSvc,
		technicianService: technicianSvc,
		jobService:        job.NewService(jobStore.New(db), customerSvc, technicianSvc),
		billingService:    billingSvc,
		exportService:     export.NewService(billingSvc),
		defaultTaxRate:    cfg.Billing.DefaultTaxRate,
		currentView:       ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				return m.open(ViewJobs, view.NewJobsModel(m.jobService, m.billingService, m.defaultTaxRate))
			case "2":
				return m.open(ViewTechnicians, view.NewTechniciansModel(m.technicianService))
			case "3":
				return m.open(ViewImport, view.NewImportModel(m.customerService))
			case "4":
				return m.open(ViewExport, view.NewExportModel(m.exportService))
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		m.active = nil

		return m, nil
	}

	if m.active == nil {
		return m, nil
	}

	newModel, cmd := m.active.Update(msg)
	if v, ok := newModel.(view.View); ok {
		m.active = v
	}

	return m, cmd
}

func (m model) open(v View, screen view.View) (tea.Model, tea.Cmd) {
	m.currentView = v
	m.active = screen

	return m, screen.Init()
}

func (m model) View() string {
	if m.currentView == ViewMenu || m.active == nil {
		return lipgloss.NewStyle().Padding(2).Render(
			"Fieldwork\n\n" +
				"1. Job Board\n" +
				"2. Technicians\n" +
				"3. Import Customers\n" +
				"4. Export Statements\n\n" +
				"q. Quit",
		)
	}

	title := lipgloss.NewStyle().Bold(true).PaddingLeft(1).Render(m.active.Title())

	return title + "\n" + m.active.View()
}

func main() {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
