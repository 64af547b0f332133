package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fieldwork/internal/billing"
	"github.com/MrJamesThe3rd/fieldwork/internal/job"
	"github.com/MrJamesThe3rd/fieldwork/internal/money"
)

type jobsState int

const (
	jobsStateBrowse jobsState = iota
	jobsStateDetail
	jobsStateStatus
	jobsStateInvoice
	jobsStatePayment
)

// jobFields backs the huh forms. It lives behind a pointer so the bindings
// survive the model being copied between updates.
type jobFields struct {
	status      string
	description string
	quantity    string
	unitPrice   string
	taxRate     string
	amount      string
	method      string
}

type JobsModel struct {
	CommonModel
	jobService     *job.Service
	billingService *billing.Service
	defaultTaxRate decimal.Decimal

	state   jobsState
	table   table.Model
	jobs    []*job.Job
	current *job.Job
	form    *huh.Form
	fields  *jobFields

	// 0 shows every status, otherwise job.Statuses[statusFilterIdx-1]
	statusFilterIdx int

	filter  job.ListFilter
	loading bool
	err     error
	status  string
}

func NewJobsModel(jobSvc *job.Service, billingSvc *billing.Service, defaultTaxRate decimal.Decimal) JobsModel {
	t := newTable([]table.Column{
		{Title: "Created", Width: 12},
		{Title: "Status", Width: 10},
		{Title: "Title", Width: 30},
		{Title: "Customer", Width: 20},
		{Title: "Technician", Width: 16},
	})

	return JobsModel{
		jobService:     jobSvc,
		billingService: billingSvc,
		defaultTaxRate: defaultTaxRate,
		table:          t,
		fields:         &jobFields{},
		loading:        true,
	}
}

func (m JobsModel) Title() string { return "Job Board" }

func (m JobsModel) ShortHelp() string {
	switch m.state {
	case jobsStateDetail:
		return "Esc: back | u: status | i: invoice | p: payment | r: refresh"
	case jobsStateStatus, jobsStateInvoice, jobsStatePayment:
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | Enter: open | s: status filter | r: refresh"
}

func (m JobsModel) Init() tea.Cmd {
	return m.loadJobsCmd()
}

func (m JobsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case jobsLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.jobs = msg.jobs
		m.refreshTable()

		return m, nil

	case jobLoadedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.current = msg.job
		m.state = jobsStateDetail

		return m, nil

	case jobActionMsg:
		m.form = nil
		m.state = jobsStateDetail

		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = msg.status

		return m, tea.Batch(m.loadJobCmd(), m.loadJobsCmd())

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-10, 5))

		return m, nil
	}

	switch m.state {
	case jobsStateBrowse:
		return m.updateBrowse(msg)
	case jobsStateDetail:
		return m.updateDetail(msg)
	default:
		return m.updateForm(msg)
	}
}

func (m JobsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadJobsCmd()
		case "s":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % (len(job.Statuses) + 1)
			m.applyFilter()

			return m, m.loadJobsCmd()
		case "enter":
			idx := m.table.Cursor()
			if idx < 0 || idx >= len(m.jobs) {
				return m, nil
			}

			m.status = ""
			m.current = m.jobs[idx]

			return m, m.loadJobCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m JobsModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		m.state = jobsStateBrowse
		m.current = nil
		m.status = ""

		return m, nil
	case "r":
		return m, m.loadJobCmd()
	case "u":
		m.fields.status = string(m.current.Status)
		m.form = m.buildStatusForm()
		m.state = jobsStateStatus

		return m, m.form.Init()
	case "i":
		if m.current.Invoice != nil {
			m.status = job.ErrHasInvoice.Error()
			return m, nil
		}

		*m.fields = jobFields{quantity: "1", taxRate: m.defaultTaxRate.String()}
		m.form = m.buildInvoiceForm()
		m.state = jobsStateInvoice

		return m, m.form.Init()
	case "p":
		inv := m.current.Invoice
		if inv == nil {
			m.status = "Job has no invoice yet"
			return m, nil
		}

		if inv.Settled() {
			m.status = "Invoice is already paid in full"
			return m, nil
		}

		*m.fields = jobFields{amount: inv.Balance.Decimal().StringFixed(2), method: string(billing.MethodCard)}
		m.form = m.buildPaymentForm()
		m.state = jobsStatePayment

		return m, m.form.Init()
	}

	return m, nil
}

func (m JobsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = jobsStateDetail
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

	switch m.state {
	case jobsStateStatus:
		return m, m.updateStatusCmd()
	case jobsStateInvoice:
		return m, m.createInvoiceCmd()
	case jobsStatePayment:
		return m, m.recordPaymentCmd()
	}

	return m, nil
}

func (m JobsModel) buildStatusForm() *huh.Form {
	options := make([]huh.Option[string], 0, len(job.Statuses))
	for _, s := range job.Statuses {
		options = append(options, huh.NewOption(string(s), string(s)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("status").
				Title("New status").
				Options(options...).
				Value(&m.fields.status),
		),
	).WithWidth(40).WithShowHelp(false)
}

func (m JobsModel) buildInvoiceForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("description").
				Title("Line item").
				Value(&m.fields.description).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return billing.ErrDescriptionMissing
					}
					return nil
				}),

			huh.NewInput().
				Key("quantity").
				Title("Quantity").
				Value(&m.fields.quantity).
				Validate(func(s string) error {
					_, err := parseQuantity(s)
					return err
				}),

			huh.NewInput().
				Key("unit_price").
				Title("Unit price").
				Placeholder("0.00").
				Value(&m.fields.unitPrice).
				Validate(func(s string) error {
					_, err := money.Parse(s)
					return err
				}),

			huh.NewInput().
				Key("tax_rate").
				Title("Tax rate").
				Description("Fraction between 0 and 1").
				Value(&m.fields.taxRate).
				Validate(func(s string) error {
					_, err := decimal.NewFromString(strings.TrimSpace(s))
					return err
				}),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m JobsModel) buildPaymentForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Amount").
				Value(&m.fields.amount).
				Validate(func(s string) error {
					_, err := money.Parse(s)
					return err
				}),

			huh.NewSelect[string]().
				Key("method").
				Title("Method").
				Options(
					huh.NewOption("Card", string(billing.MethodCard)),
					huh.NewOption("Cash", string(billing.MethodCash)),
					huh.NewOption("Check", string(billing.MethodCheck)),
				).
				Value(&m.fields.method),
		),
	).WithWidth(45).WithShowHelp(false)
}

func parseQuantity(s string) (int64, error) {
	qty, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || qty <= 0 {
		return 0, errors.New("quantity must be a positive whole number")
	}

	return qty, nil
}

func (m JobsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading jobs...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v\n\n(Esc to back)", m.err))
	}

	var content string

	switch m.state {
	case jobsStateBrowse:
		header := fmt.Sprintf("Filter: [s] Status: %s", activeStyle(m.filterLabel()))
		content = lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().PaddingBottom(1).Render(header),
			tableFrame(m.table),
		)
	case jobsStateDetail:
		content = m.viewDetail()
	default:
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(50).
			Render(m.formTitle() + "\n\n" + m.form.View())
		content = lipgloss.JoinHorizontal(lipgloss.Top, m.viewDetail(), panel)
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content + "\n\n" + faintStyle.Render(m.ShortHelp()))
}

func (m JobsModel) formTitle() string {
	switch m.state {
	case jobsStateStatus:
		return "Update Status"
	case jobsStateInvoice:
		return "Create Invoice"
	case jobsStatePayment:
		return "Record Payment"
	}

	return ""
}

func (m JobsModel) viewDetail() string {
	j := m.current
	if j == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(headerStyle.Render(j.Title) + "\n\n")
	fmt.Fprintf(&b, "Customer: %s\n", j.CustomerName)
	fmt.Fprintf(&b, "Status:   %s\n", activeStyle(string(j.Status)))
	fmt.Fprintf(&b, "Created:  %s\n", formatDate(j.CreatedAt))

	if j.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", j.Description)
	}

	b.WriteString("\n" + headerStyle.Render("Appointment") + "\n")

	if a := j.Appointment; a != nil {
		fmt.Fprintf(&b, "%s with %s\n", formatWindow(a.StartTime.Local(), a.EndTime.Local()), a.TechnicianName)
	} else {
		b.WriteString(faintStyle.Render("Not scheduled") + "\n")
	}

	b.WriteString("\n" + headerStyle.Render("Invoice") + "\n")

	if inv := j.Invoice; inv != nil {
		fmt.Fprintf(&b, "Total %s | Paid %s | Balance %s\n", inv.Total, inv.Paid(), inv.Balance)

		if inv.Settled() {
			b.WriteString(successStyle.Render("Paid in full") + "\n")
		}
	} else {
		b.WriteString(faintStyle.Render("None") + "\n")
	}

	if len(j.Activities) > 0 {
		b.WriteString("\n" + headerStyle.Render("Activity") + "\n")

		for _, a := range j.Activities {
			fmt.Fprintf(&b, "%s  %-17s %s\n", a.CreatedAt.Local().Format("Jan 02 15:04"), a.Action, a.Details)
		}
	}

	return lipgloss.NewStyle().Width(80).Render(b.String())
}

func (m JobsModel) filterLabel() string {
	if m.statusFilterIdx == 0 {
		return "All"
	}

	return string(job.Statuses[m.statusFilterIdx-1])
}

func (m *JobsModel) applyFilter() {
	if m.statusFilterIdx == 0 {
		m.filter.Status = nil
		return
	}

	m.filter.Status = new(job.Statuses[m.statusFilterIdx-1])
}

func (m *JobsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.jobs))
	for _, j := range m.jobs {
		technician := ""
		if j.Appointment != nil {
			technician = j.Appointment.TechnicianName
		}

		rows = append(rows, table.Row{
			formatDate(j.CreatedAt),
			string(j.Status),
			j.Title,
			j.CustomerName,
			technician,
		})
	}

	m.table.SetRows(rows)
}

// Messages

type jobsLoadedMsg struct {
	jobs []*job.Job
	err  error
}

type jobLoadedMsg struct {
	job *job.Job
	err error
}

type jobActionMsg struct {
	status string
	err    error
}

func (m JobsModel) loadJobsCmd() tea.Cmd {
	filter := m.filter

	return func() tea.Msg {
		ctx, cancel := dbCtx()
		defer cancel()

		jobs, err := m.jobService.List(ctx, filter)

		return jobsLoadedMsg{jobs: jobs, err: err}
	}
}

func (m JobsModel) loadJobCmd() tea.Cmd {
	id := m.current.ID

	return func() tea.Msg {
		ctx, cancel := dbCtx()
		defer cancel()

		j, err := m.jobService.Get(ctx, id)

		return jobLoadedMsg{job: j, err: err}
	}
}

func (m JobsModel) updateStatusCmd() tea.Cmd {
	id := m.current.ID
	status := job.Status(m.fields.status)

	return func() tea.Msg {
		ctx, cancel := dbCtx()
		defer cancel()

		if _, err := m.jobService.UpdateStatus(ctx, id, status); err != nil {
			return jobActionMsg{err: err}
		}

		return jobActionMsg{status: "Status changed to " + string(status)}
	}
}

func (m JobsModel) createInvoiceCmd() tea.Cmd {
	id := m.current.ID
	fields := *m.fields

	return func() tea.Msg {
		qty, err := parseQuantity(fields.quantity)
		if err != nil {
			return jobActionMsg{err: err}
		}

		price, err := money.Parse(fields.unitPrice)
		if err != nil {
			return jobActionMsg{err: err}
		}

		rate, err := decimal.NewFromString(strings.TrimSpace(fields.taxRate))
		if err != nil {
			return jobActionMsg{err: err}
		}

		ctx, cancel := dbCtx()
		defer cancel()

		inv, err := m.jobService.CreateInvoice(ctx, id, billing.InvoiceParams{
			LineItems: []billing.LineItemParams{
				{Description: fields.description, Quantity: qty, UnitPrice: price},
			},
			TaxRate: rate,
		})
		if err != nil {
			return jobActionMsg{err: err}
		}

		return jobActionMsg{status: "Invoice created for " + inv.Total.String()}
	}
}

func (m JobsModel) recordPaymentCmd() tea.Cmd {
	invoiceID := m.current.Invoice.ID
	fields := *m.fields

	return func() tea.Msg {
		amount, err := money.Parse(fields.amount)
		if err != nil {
			return jobActionMsg{err: err}
		}

		ctx, cancel := dbCtx()
		defer cancel()

		receipt, err := m.billingService.RecordPayment(ctx, invoiceID, billing.PaymentParams{
			Amount: amount,
			Method: billing.Method(fields.method),
		})
		if err != nil {
			return jobActionMsg{err: err}
		}

		return jobActionMsg{status: fmt.Sprintf("Payment of %s recorded. Balance: %s",
			receipt.Payment.Amount, receipt.Invoice.Balance)}
	}
}
