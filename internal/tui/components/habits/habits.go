package habits

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/wellness/internal/models"
)

// AdjustHabitMsg asks the parent to change today's value by Delta
type AdjustHabitMsg struct {
	ID    string
	Delta float64
}

// CompleteHabitMsg asks the parent to set today's value to the target
type CompleteHabitMsg struct {
	ID string
}

// EditHabitMsg asks the parent to open the edit form for a habit
type EditHabitMsg struct {
	ID string
}

// DeleteHabitMsg asks the parent to confirm and delete a habit
type DeleteHabitMsg struct {
	ID string
}

type Row struct {
	Habit    models.Habit
	Progress models.HabitProgress
}

type KeyMap struct {
	Increment key.Binding
	Decrement key.Binding
	Complete  key.Binding
	Edit      key.Binding
	Delete    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Increment: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "add 1"),
		),
		Decrement: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "remove 1"),
		),
		Complete: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "complete"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	table table.Model
	keys  KeyMap
	rows  []Row
}

func New(rows []Row, width, height int) Model {
	t := table.New(
		table.WithColumns(columns(width)),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	m := Model{table: t, keys: DefaultKeyMap()}
	m.SetRows(rows)
	return m
}

func columns(width int) []table.Column {
	name := 24
	if width > 60 {
		name = width - 36
	}
	return []table.Column{
		{Title: "Habit", Width: name},
		{Title: "Today", Width: 20},
		{Title: "Done", Width: 6},
	}
}

func (m *Model) SetRows(rows []Row) {
	m.rows = rows
	trs := make([]table.Row, len(rows))
	for i, r := range rows {
		trs[i] = table.Row{
			r.Habit.Icon + " " + r.Habit.Name,
			fmt.Sprintf("%g / %g %s", r.Progress.Current, r.Progress.Target, r.Progress.Unit),
			fmt.Sprintf("%.0f%%", r.Progress.Progress),
		}
	}
	m.table.SetRows(trs)
	// an empty table leaves the cursor at -1
	if c := m.table.Cursor(); len(rows) > 0 && (c < 0 || c >= len(rows)) {
		m.table.SetCursor(max(0, min(c, len(rows)-1)))
	}
}

func (m *Model) SetSize(width, height int) {
	m.table.SetColumns(columns(width))
	m.table.SetHeight(height)
}

// Selected returns the habit under the cursor
func (m Model) Selected() (Row, bool) {
	c := m.table.Cursor()
	if c < 0 || c >= len(m.rows) {
		return Row{}, false
	}
	return m.rows[c], true
}

func (m Model) Keys() []key.Binding {
	return []key.Binding{m.keys.Increment, m.keys.Decrement, m.keys.Complete, m.keys.Edit, m.keys.Delete}
}

// Update handles the habit keys before the table sees them; the table binds
// d and u to half-page moves.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		row, selected := m.Selected()
		switch {
		case key.Matches(msg, m.keys.Increment):
			if selected {
				return m, func() tea.Msg { return AdjustHabitMsg{ID: row.Habit.ID, Delta: 1} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Decrement):
			if selected {
				return m, func() tea.Msg { return AdjustHabitMsg{ID: row.Habit.ID, Delta: -1} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Complete):
			if selected {
				return m, func() tea.Msg { return CompleteHabitMsg{ID: row.Habit.ID} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Edit):
			if selected {
				return m, func() tea.Msg { return EditHabitMsg{ID: row.Habit.ID} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if selected {
				return m, func() tea.Msg { return DeleteHabitMsg{ID: row.Habit.ID} }
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.rows) == 0 {
		return "No habits yet. Add one with 'wellness habit add'."
	}
	return m.table.View()
}
