// Package tui is a terminal browser over a directory controller.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/locvowork/employee_directory/internal/directory"
	"github.com/locvowork/employee_directory/internal/domain"
)

const (
	cardWidth     = 30
	defaultWidth  = 100
	defaultHeight = 24
)

// sortKeys maps the number keys onto sortable columns in header order.
var sortKeys = map[string]domain.SortColumn{
	"1": domain.SortAge,
	"2": domain.SortLocation,
	"3": domain.SortSalary,
	"4": domain.SortDepartment,
}

// Model is the bubbletea model of the directory browser.
type Model struct {
	ctrl     *directory.Controller
	currency string
	styles   Styles

	table         table.Model
	searchInput   textinput.Model
	searchFocused bool

	width  int
	height int
	status string
}

// NewModel creates a browser over ctrl. Salaries are shown in currency.
func NewModel(ctrl *directory.Controller, currency string) Model {
	si := textinput.New()
	si.Placeholder = "Search any field..."
	si.Prompt = "/ "
	si.Width = 40
	si.SetValue(ctrl.SearchQuery())

	t := table.New(
		table.WithFocused(true),
		table.WithHeight(defaultHeight-10),
	)

	m := Model{
		ctrl:        ctrl,
		currency:    currency,
		styles:      DefaultStyles(),
		table:       t,
		searchInput: si,
		width:       defaultWidth,
		height:      defaultHeight,
	}
	m.refresh()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		if m.searchFocused {
			switch msg.Type {
			case tea.KeyEnter, tea.KeyEsc:
				m.searchFocused = false
				m.searchInput.Blur()
				return m, nil
			}
			m.searchInput, cmd = m.searchInput.Update(msg)
			m.ctrl.SetSearchQuery(m.searchInput.Value())
			m.refresh()
			return m, cmd
		}

		key := msg.String()
		if col, ok := sortKeys[key]; ok {
			m.status = ""
			if err := m.ctrl.HandleSort(string(col)); err != nil {
				m.status = err.Error()
			}
			m.refresh()
			return m, nil
		}

		switch key {
		case "q":
			return m, tea.Quit
		case "/":
			m.searchFocused = true
			return m, m.searchInput.Focus()
		case "d":
			m.ctrl.SetFilterDepartment(m.nextDepartment())
			m.refresh()
			return m, nil
		case "v":
			if err := m.ctrl.SetViewMode(m.ctrl.ViewMode().Toggle()); err != nil {
				m.status = err.Error()
			}
			m.refresh()
			return m, nil
		}
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// nextDepartment cycles all → each department in store order → all.
func (m Model) nextDepartment() string {
	options := domain.DepartmentOptions(m.ctrl.Departments())
	current := m.ctrl.FilterDepartment()
	for i, d := range options {
		if d == current {
			return options[(i+1)%len(options)]
		}
	}
	return domain.AllDepartments
}

// refresh copies the controller's visible records into the table.
func (m *Model) refresh() {
	state := m.ctrl.SortState()
	title := func(label string, col domain.SortColumn) string {
		if state.Column != col {
			return label
		}
		if state.Direction == domain.Descending {
			return label + " ▼"
		}
		return label + " ▲"
	}

	nameWidth := 16
	if m.width > defaultWidth {
		nameWidth += (m.width - defaultWidth) / 2
	}
	m.table.SetColumns([]table.Column{
		{Title: "ID", Width: 4},
		{Title: "Name", Width: nameWidth},
		{Title: title("Age", domain.SortAge), Width: 6},
		{Title: title("Location", domain.SortLocation), Width: 14},
		{Title: title("Salary", domain.SortSalary), Width: 14},
		{Title: title("Department", domain.SortDepartment), Width: 16},
	})

	records := m.ctrl.VisibleRecords()
	rows := make([]table.Row, 0, len(records))
	for _, e := range records {
		rows = append(rows, table.Row{
			strconv.Itoa(e.ID),
			e.Name,
			strconv.Itoa(e.Age),
			e.Location,
			domain.FormatSalary(e.Salary, m.currency),
			e.Department,
		})
	}
	m.table.SetRows(rows)

	if h := m.height - 10; h > 3 {
		m.table.SetHeight(h)
	}
}

// View renders the page.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render("Employee Directory"))
	sb.WriteString("\n")
	sb.WriteString(m.renderStatistics())
	sb.WriteString("\n\n")

	sb.WriteString(m.searchInput.View())
	sb.WriteString("\n")
	sb.WriteString(m.renderFilters())
	sb.WriteString("\n\n")

	if m.ctrl.ViewMode() == domain.ViewTable {
		sb.WriteString(m.table.View())
	} else {
		sb.WriteString(m.renderCards())
	}
	sb.WriteString("\n")

	if m.status != "" {
		sb.WriteString(m.styles.Error.Render(m.status))
		sb.WriteString("\n")
	}
	sb.WriteString(m.styles.Help.Render("/ search • d department • 1-4 sort age/location/salary/department • v view • q quit"))
	return sb.String()
}

func (m Model) renderStatistics() string {
	stats := m.ctrl.Statistics()
	items := []struct{ label, value string }{
		{"Employees", strconv.Itoa(stats.TotalEmployees)},
		{"Avg salary", domain.FormatAverage(stats.AverageSalary, m.currency)},
		{"Avg age", strconv.FormatInt(stats.AverageAge, 10)},
		{"Locations", strconv.Itoa(stats.Locations)},
	}

	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = m.styles.StatLabel.Render(it.label+": ") + m.styles.StatValue.Render(it.value)
	}
	return strings.Join(parts, "   ")
}

func (m Model) renderFilters() string {
	dept := m.ctrl.FilterDepartment()
	options := domain.DepartmentOptions(m.ctrl.Departments())
	rendered := make([]string, len(options))
	for i, d := range options {
		if d == dept {
			rendered[i] = m.styles.Active.Render("[" + d + "]")
		} else {
			rendered[i] = d
		}
	}

	sortLabel := "none"
	if s := m.ctrl.SortState(); s.Column != domain.SortUnset {
		sortLabel = fmt.Sprintf("%s %s", s.Column.Title(), s.Direction)
	}

	return m.styles.Label.Render("Department: ") + strings.Join(rendered, " ") +
		m.styles.Label.Render("   Sort: ") + sortLabel +
		m.styles.Label.Render("   View: ") + string(m.ctrl.ViewMode())
}

func (m Model) renderCards() string {
	records := m.ctrl.VisibleRecords()
	if len(records) == 0 {
		return m.styles.Label.Render("No employees match.")
	}

	perRow := m.width / (cardWidth + 4)
	if perRow < 1 {
		perRow = 1
	}

	var rows []string
	for start := 0; start < len(records); start += perRow {
		end := min(start+perRow, len(records))
		cards := make([]string, 0, end-start)
		for _, e := range records[start:end] {
			body := m.styles.CardName.Render(e.Name) + "\n" +
				fmt.Sprintf("#%d • %d yrs\n%s\n%s\n%s", e.ID, e.Age, e.Location, e.Department,
					domain.FormatSalary(e.Salary, m.currency))
			cards = append(cards, m.styles.Card.Render(body))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
