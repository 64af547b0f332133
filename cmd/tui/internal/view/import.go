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

	"github.com/MrJamesThe3rd/fieldwork/internal/customer"
	"github.com/MrJamesThe3rd/fieldwork/internal/importer"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateFilePick importState = iota
	importStateImporting
	importStateResult
)

type ImportModel struct {
	CommonModel
	customerService *customer.Service
	parser          *importer.Parser

	state       importState
	filePicker  filepicker.Model
	skippedList list.Model
	skipped     int

	status string
	err    error
}

func NewImportModel(svc *customer.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".txt"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		customerService: svc,
		parser:          importer.NewParser(),
		filePicker:      fp,
	}
}

func (m ImportModel) Title() string { return "Import Customers" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStateResult {
		return "Esc: pick another file"
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

	case importResultMsg:
		m.state = importStateResult

		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.status = fmt.Sprintf("Imported %d customers.", len(msg.result.Created))
		m.skipped = len(msg.result.Skipped)

		items := make([]list.Item, len(msg.result.Skipped))
		for i, s := range msg.result.Skipped {
			items[i] = skippedItem{skipped: s}
		}

		m.skippedList = list.New(items, skippedDelegate{}, 80, 20)
		m.skippedList.Title = fmt.Sprintf("Skipped rows (%d)", m.skipped)
		m.skippedList.SetShowStatusBar(false)
		m.skippedList.SetFilteringEnabled(false)
		m.skippedList.SetShowHelp(false)

		return m, nil
	}

	switch m.state {
	case importStateResult:
		if m.skipped == 0 {
			return m, nil
		}

		var cmd tea.Cmd
		m.skippedList, cmd = m.skippedList.Update(msg)

		return m, cmd
	case importStateImporting:
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateImporting
		m.status = fmt.Sprintf("Importing from %s...", path)

		return m, m.importCmd(path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	if m.state == importStateResult {
		m.state = importStateFilePick
		m.err = nil
		m.status = ""
		m.skipped = 0

		return m, m.filePicker.Init()
	}

	return m, Back
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select a customer CSV to import:\n\n%s", m.filePicker.View()),
		)
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)
	if m.err != nil {
		return style.Render(errorStyle.Render(m.status) + "\n\n(Esc to go back)")
	}

	content := successStyle.Render(m.status)
	if m.skipped > 0 {
		content += "\n\n" + m.skippedList.View()
	}

	return style.Render(content + "\n\n(Esc to go back)")
}

// Messages

type importResultMsg struct {
	result *customer.ImportResult
	err    error
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		rows, err := m.parser.Parse(f)
		if err != nil {
			return importResultMsg{err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		result, err := m.customerService.ImportBatch(ctx, importer.Params(rows))
		if err != nil {
			return importResultMsg{err: err}
		}

		return importResultMsg{result: result}
	}
}

// Skipped row list

type skippedItem struct {
	skipped customer.Skipped
}

func (i skippedItem) Title() string       { return i.skipped.Params.Name }
func (i skippedItem) Description() string { return i.skipped.Reason }
func (i skippedItem) FilterValue() string { return i.skipped.Params.Name }

type skippedDelegate struct{}

func (d skippedDelegate) Height() int                             { return 2 }
func (d skippedDelegate) Spacing() int                            { return 0 }
func (d skippedDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d skippedDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(skippedItem)
	if !ok {
		return
	}

	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}

	p := item.skipped.Params

	fmt.Fprintf(w, "%s%s <%s>\n    %s\n", cursor, p.Name, p.Email, errorStyle.Render(item.skipped.Reason))
}
