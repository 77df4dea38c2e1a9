package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/locvowork/employee_directory/internal/directory"
	"github.com/locvowork/employee_directory/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	store, err := directory.NewStore([]domain.Employee{
		{ID: 1, Name: "Nathanael", Age: 18, Location: "Sealiyur", Salary: 1000, Department: "Engineering"},
		{ID: 2, Name: "Jonathan", Age: 23, Location: "Bangalore", Salary: 2000, Department: "Design"},
		{ID: 3, Name: "Jeyakumari", Age: 46, Location: "Ambattur", Salary: 3000, Department: "Marketing"},
		{ID: 4, Name: "Cecil", Age: 47, Location: "Tambaram", Salary: 5000, Department: "Sales"},
	})
	require.NoError(t, err)
	return NewModel(directory.NewController(store), "USD")
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m, cmd
}

func TestModel_Initial(t *testing.T) {
	m := newTestModel(t)

	assert.Nil(t, m.Init())
	assert.Len(t, m.table.Rows(), 4)
	view := m.View()
	assert.Contains(t, view, "Employee Directory")
	assert.Contains(t, view, "$2,750.00")
	assert.Contains(t, view, "[all]")
	assert.Contains(t, view, "Nathanael")
	assert.Contains(t, view, "View: cards")
}

func TestModel_Search(t *testing.T) {
	m := newTestModel(t)

	m, cmd := send(t, m, runes("/"))
	assert.True(t, m.searchFocused)
	assert.NotNil(t, cmd)

	m, _ = send(t, m, runes("sea"))
	assert.Equal(t, "sea", m.ctrl.SearchQuery())
	require.Len(t, m.table.Rows(), 1)
	assert.Equal(t, "1", m.table.Rows()[0][0])

	// Keys that are commands elsewhere are plain text while searching.
	m, _ = send(t, m, runes("q"))
	assert.Equal(t, "seaq", m.ctrl.SearchQuery())
	assert.Empty(t, m.table.Rows())

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.searchFocused)
	assert.Equal(t, "sea", m.ctrl.SearchQuery())
}

func TestModel_LongSearchQuery(t *testing.T) {
	m := newTestModel(t)
	query := strings.Repeat("x", 100)

	m, _ = send(t, m, runes("/"), runes(query))
	assert.Equal(t, query, m.ctrl.SearchQuery())
	assert.Empty(t, m.table.Rows())
}

func TestModel_DepartmentCycle(t *testing.T) {
	m := newTestModel(t)

	want := []string{"Engineering", "Design", "Marketing", "Sales", domain.AllDepartments}
	for _, dept := range want {
		m, _ = send(t, m, runes("d"))
		assert.Equal(t, dept, m.ctrl.FilterDepartment())
	}

	m, _ = send(t, m, runes("d"), runes("d"))
	require.Len(t, m.table.Rows(), 1)
	assert.Equal(t, "Jonathan", m.table.Rows()[0][1])
	assert.Contains(t, m.View(), "[Design]")
}

func TestModel_SortKeys(t *testing.T) {
	m := newTestModel(t)

	m, _ = send(t, m, runes("3"))
	assert.Equal(t, domain.SortState{Column: domain.SortSalary, Direction: domain.Ascending}, m.ctrl.SortState())

	m, _ = send(t, m, runes("3"))
	assert.Equal(t, domain.Descending, m.ctrl.SortState().Direction)
	assert.Equal(t, "$5,000.00", m.table.Rows()[0][4])
	assert.Equal(t, "Salary ▼", m.table.Columns()[4].Title)

	m, _ = send(t, m, runes("2"))
	assert.Equal(t, domain.SortState{Column: domain.SortLocation, Direction: domain.Ascending}, m.ctrl.SortState())
	assert.Equal(t, "Ambattur", m.table.Rows()[0][3])
	assert.Equal(t, "Salary", m.table.Columns()[4].Title)
	assert.Contains(t, m.View(), "Location ascending")
}

func TestModel_ViewToggle(t *testing.T) {
	m := newTestModel(t)

	m, _ = send(t, m, runes("v"))
	assert.Equal(t, domain.ViewTable, m.ctrl.ViewMode())
	assert.Contains(t, m.View(), "Department")

	m, _ = send(t, m, runes("v"))
	assert.Equal(t, domain.ViewCards, m.ctrl.ViewMode())
}

func TestModel_EmptyCards(t *testing.T) {
	m := newTestModel(t)
	m.ctrl.SetSearchQuery("nobody")

	assert.Contains(t, m.View(), "No employees match.")
}

func TestModel_WindowSize(t *testing.T) {
	m := newTestModel(t)

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 160, Height: 40})
	assert.Equal(t, 160, m.width)
	assert.Greater(t, m.table.Columns()[1].Width, 16)

	cards := m.renderCards()
	assert.Equal(t, 1, strings.Count(cards, "Nathanael"))
}

func TestModel_Quit(t *testing.T) {
	for _, key := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		m := newTestModel(t)
		_, cmd := send(t, m, key)
		require.NotNil(t, cmd)
		assert.Equal(t, tea.QuitMsg{}, cmd())
	}
}
