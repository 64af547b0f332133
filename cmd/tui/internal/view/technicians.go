package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/fieldwork/internal/technician"
)

type techniciansState int

const (
	techniciansStateBrowse techniciansState = iota
	techniciansStateSchedule
	techniciansStateCreate
)

type TechniciansModel struct {
	CommonModel
	technicianService *technician.Service

	state       techniciansState
	table       table.Model
	technicians []*technician.Technician

	selected *technician.Technician
	slots    []technician.Slot

	form *huh.Form
	name *string

	loading bool
	err     error
	status  string
}

func NewTechniciansModel(svc *technician.Service) TechniciansModel {
	t := newTable([]table.Column{
		{Title: "Name", Width: 30},
		{Title: "Appointments", Width: 14},
		{Title: "Since", Width: 12},
	})

	return TechniciansModel{
		technicianService: svc,
		table:             t,
		name:              new(string),
		loading:           true,
	}
}

func (m TechniciansModel) Title() string { return "Technicians" }

func (m TechniciansModel) ShortHelp() string {
	switch m.state {
	case techniciansStateSchedule:
		return "Esc: back"
	case techniciansStateCreate:
		return "Enter: save | Esc: cancel"
	}

	return "Esc: back | Enter: schedule | n: new technician | r: refresh"
}

func (m TechniciansModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m TechniciansModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case techniciansLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.technicians = msg.technicians
		m.refreshTable()

		return m, nil

	case scheduleLoadedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.selected = msg.technician
		m.slots = msg.slots
		m.state = techniciansStateSchedule

		return m, nil

	case technicianCreatedMsg:
		m.state = techniciansStateBrowse
		m.form = nil
		m.table.Focus()

		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = "Added " + msg.technician.Name

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-10, 5))

		return m, nil
	}

	switch m.state {
	case techniciansStateSchedule:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			m.state = techniciansStateBrowse
			m.selected = nil
			m.slots = nil
		}

		return m, nil
	case techniciansStateCreate:
		return m.updateCreate(msg)
	}

	return m.updateBrowse(msg)
}

func (m TechniciansModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "n":
			*m.name = ""
			m.form = huh.NewForm(
				huh.NewGroup(
					huh.NewInput().
						Key("name").
						Title("Name").
						Value(m.name).
						Validate(func(s string) error {
							if strings.TrimSpace(s) == "" {
								return technician.ErrNameRequired
							}
							return nil
						}),
				),
			).WithWidth(40).WithShowHelp(false)
			m.state = techniciansStateCreate
			m.table.Blur()

			return m, m.form.Init()
		case "enter":
			idx := m.table.Cursor()
			if idx < 0 || idx >= len(m.technicians) {
				return m, nil
			}

			m.status = ""

			return m, m.loadScheduleCmd(m.technicians[idx])
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m TechniciansModel) updateCreate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = techniciansStateBrowse
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

	return m, m.createCmd(*m.name)
}

func (m TechniciansModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading technicians...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v\n\n(Esc to back)", m.err))
	}

	var content string

	switch m.state {
	case techniciansStateSchedule:
		content = m.viewSchedule()
	case techniciansStateCreate:
		content = lipgloss.JoinHorizontal(lipgloss.Top,
			tableFrame(m.table),
			lipgloss.NewStyle().
				Padding(1, 2).
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("63")).
				Render("New Technician\n\n"+m.form.View()),
		)
	default:
		content = tableFrame(m.table)
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content + "\n\n" + faintStyle.Render(m.ShortHelp()))
}

func (m TechniciansModel) viewSchedule() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(m.selected.Name+"'s schedule") + "\n\n")

	if len(m.slots) == 0 {
		b.WriteString(faintStyle.Render("No appointments booked"))
		return b.String()
	}

	for _, s := range m.slots {
		fmt.Fprintf(&b, "%-32s %-30s %s\n", formatWindow(s.Start.Local(), s.End.Local()), s.JobTitle, s.JobStatus)
	}

	return b.String()
}

func (m *TechniciansModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.technicians))
	for _, t := range m.technicians {
		rows = append(rows, table.Row{
			t.Name,
			strconv.Itoa(t.AppointmentCount),
			formatDate(t.CreatedAt),
		})
	}

	m.table.SetRows(rows)
}

// Messages

type techniciansLoadedMsg struct {
	technicians []*technician.Technician
	err         error
}

type scheduleLoadedMsg struct {
	technician *technician.Technician
	slots      []technician.Slot
	err        error
}

type technicianCreatedMsg struct {
	technician *technician.Technician
	err        error
}

func (m TechniciansModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := dbCtx()
		defer cancel()

		technicians, err := m.technicianService.List(ctx)

		return techniciansLoadedMsg{technicians: technicians, err: err}
	}
}

func (m TechniciansModel) loadScheduleCmd(t *technician.Technician) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := dbCtx()
		defer cancel()

		tech, slots, err := m.technicianService.Schedule(ctx, t.ID)

		return scheduleLoadedMsg{technician: tech, slots: slots, err: err}
	}
}

func (m TechniciansModel) createCmd(name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := dbCtx()
		defer cancel()

		t, err := m.technicianService.Create(ctx, name)

		return technicianCreatedMsg{technician: t, err: err}
	}
}
