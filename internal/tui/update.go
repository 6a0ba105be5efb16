package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/wellness/internal/constants"
	"github.com/julianstephens/wellness/internal/tui/components/habits"
	"github.com/julianstephens/wellness/internal/wellness"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.habitsModel.SetSize(msg.Width-4, max(msg.Height-10, 3))
		m.hydrationBar.Width = min(max(msg.Width-20, 10), 60)
		return m, nil

	case storeChangedMsg:
		m.store.Reload(m.ctx)
		m.refresh()
		m.message = "Reloaded after an external change"
		return m, waitForChange(m.changes)

	case habits.AdjustHabitMsg:
		current := m.store.HabitProgress(msg.ID).Current
		m.setHabit(msg.ID, max(current+msg.Delta, 0))
		return m, nil

	case habits.CompleteHabitMsg:
		m.setHabit(msg.ID, m.store.HabitProgress(msg.ID).Target)
		return m, nil

	case habits.EditHabitMsg:
		h, ok := m.store.Habit(msg.ID)
		if !ok {
			m.message = "Habit no longer exists"
			return m, nil
		}
		m.habitForm = &HabitFormModel{Name: h.Name, Icon: h.Icon, Target: strconv.FormatFloat(h.Target, 'f', -1, 64), Unit: h.Unit}
		m.editingID = h.ID
		return m.openForm(NewHabitForm(m.habitForm), constants.StateHabitForm)

	case habits.DeleteHabitMsg:
		h, ok := m.store.Habit(msg.ID)
		if !ok {
			m.message = "Habit no longer exists"
			return m, nil
		}
		m.deleteForm = &DeleteHabitFormModel{}
		m.editingID = h.ID
		return m.openForm(NewDeleteHabitForm(h.Icon+" "+h.Name, m.deleteForm), constants.StateConfirmDeleteHabit)
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(keyMsg, m.keys.Tab):
		m.state = nextTab(m.state, 1)
		m.message = ""
		return m, nil
	case key.Matches(keyMsg, m.keys.ShiftTab):
		m.state = nextTab(m.state, -1)
		m.message = ""
		return m, nil
	case key.Matches(keyMsg, m.keys.Reload):
		m.store.Reload(m.ctx)
		m.refresh()
		m.message = "Reloaded"
		return m, nil
	}

	switch m.state {
	case constants.StateHabits:
		var cmd tea.Cmd
		m.habitsModel, cmd = m.habitsModel.Update(keyMsg)
		return m, cmd
	case constants.StateMood:
		switch {
		case key.Matches(keyMsg, m.keys.AddMood):
			m.moodForm = &MoodFormModel{Mood: constants.DefaultMoodName}
			return m.openForm(NewMoodForm(m.moodForm), constants.StateMoodForm)
		case key.Matches(keyMsg, m.keys.EditMood):
			recent := m.store.RecentMoods(1)
			if len(recent) == 0 {
				m.message = "No mood to edit yet"
				return m, nil
			}
			e := recent[0]
			m.moodForm = &MoodFormModel{Mood: e.Mood, Rating: e.Rating, Note: e.Note}
			m.editingID = e.ID
			return m.openForm(NewMoodForm(m.moodForm), constants.StateMoodForm)
		}
	case constants.StateHydration, constants.StateDashboard:
		switch {
		case key.Matches(keyMsg, m.keys.Quick):
			n, _ := strconv.Atoi(keyMsg.String())
			m.addQuickAmount(n)
			return m, nil
		case key.Matches(keyMsg, m.keys.Custom) && m.state == constants.StateHydration:
			m.hydrationForm = &HydrationFormModel{Amount: "300"}
			return m.openForm(NewHydrationForm(m.hydrationForm), constants.StateHydrationForm)
		case key.Matches(keyMsg, m.keys.Remove) && m.state == constants.StateHydration:
			m.removeWater(constants.QuickAmountsML[0])
			return m, nil
		}
	}
	return m, nil
}

func (m Model) openForm(form *huh.Form, state constants.SessionState) (tea.Model, tea.Cmd) {
	m.form = form
	m.previousState = m.state
	m.state = state
	return m, m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		if m.state == constants.StateOnboarding {
			m.quitting = true
			return m, tea.Quit
		}
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m.submitForm()
	case huh.StateAborted:
		if m.state == constants.StateOnboarding {
			m.quitting = true
			return m, tea.Quit
		}
		m.closeForm()
		return m, nil
	}
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	switch m.state {
	case constants.StateOnboarding:
		if !m.onboardingForm.Ready {
			m.quitting = true
			return m, tea.Quit
		}
		m.completeOnboarding()
	case constants.StateMoodForm:
		if m.editingID != "" {
			m.updateMood(m.editingID, *m.moodForm)
		} else {
			m.recordMood(*m.moodForm)
		}
		m.closeForm()
	case constants.StateHabitForm:
		m.updateHabit(m.editingID, *m.habitForm)
		m.closeForm()
	case constants.StateConfirmDeleteHabit:
		if m.deleteForm.Confirm {
			m.deleteHabit(m.editingID)
		}
		m.closeForm()
	case constants.StateHydrationForm:
		n, err := strconv.Atoi(strings.TrimSpace(m.hydrationForm.Amount))
		m.closeForm()
		if err != nil {
			m.message = "Invalid amount"
			return m, nil
		}
		m.addWater(wellness.ClampCustomAmount(n))
	}
	return m, nil
}

func (m *Model) closeForm() {
	m.form = nil
	m.moodForm = nil
	m.hydrationForm = nil
	m.onboardingForm = nil
	m.habitForm = nil
	m.deleteForm = nil
	m.editingID = ""
	if m.state != constants.StateOnboarding {
		m.state = m.previousState
	}
}

func (m *Model) completeOnboarding() {
	m.store.CompleteOnboarding(m.ctx)
	m.form = nil
	m.onboardingForm = nil
	m.state = constants.StateDashboard
}

func (m *Model) recordMood(f MoodFormModel) {
	err := m.store.RecordMood(m.ctx, wellness.MoodInput{Mood: f.Mood, Rating: f.Rating, Note: strings.TrimSpace(f.Note)})
	if err != nil {
		m.message = "Error: " + err.Error()
		return
	}
	m.message = "Recorded " + f.Mood
}

// updateMood keeps the entry's emoji unless the label changed
func (m *Model) updateMood(id string, f MoodFormModel) {
	e, ok := m.store.Mood(id)
	if !ok {
		m.message = "Mood entry no longer exists"
		return
	}
	emoji := e.Emoji
	if f.Mood != e.Mood {
		emoji = ""
	}
	err := m.store.UpdateMood(m.ctx, id, wellness.MoodInput{Mood: f.Mood, Emoji: emoji, Rating: f.Rating, Note: strings.TrimSpace(f.Note)})
	if err != nil {
		m.message = "Error: " + err.Error()
		return
	}
	m.message = "Updated " + e.Date + " to " + f.Mood
}

func (m *Model) updateHabit(id string, f HabitFormModel) {
	target, err := strconv.ParseFloat(strings.TrimSpace(f.Target), 64)
	if err != nil {
		m.message = "Invalid target"
		return
	}
	h, _ := m.store.Habit(id)
	err = m.store.UpdateHabit(m.ctx, id, wellness.HabitInput{
		Name:   f.Name,
		Icon:   strings.TrimSpace(f.Icon),
		Color:  h.Color,
		Target: target,
		Unit:   strings.TrimSpace(f.Unit),
	})
	switch {
	case errors.Is(err, wellness.ErrUnknownHabit):
		m.message = "Habit no longer exists"
	case err != nil:
		m.message = "Error: " + err.Error()
	default:
		m.message = "Updated " + strings.TrimSpace(f.Name)
	}
	m.refresh()
}

func (m *Model) deleteHabit(id string) {
	h, _ := m.store.Habit(id)
	if err := m.store.DeleteHabit(m.ctx, id); err != nil {
		m.message = "Error: " + err.Error()
	} else {
		m.message = "Deleted " + h.Name
	}
	m.refresh()
}

func (m *Model) addQuickAmount(n int) {
	amount, err := wellness.QuickAmount(n)
	if err != nil {
		m.message = "Error: " + err.Error()
		return
	}
	m.addWater(amount)
}

func (m *Model) addWater(amount int) {
	if err := m.store.AddHydration(m.ctx, amount); err != nil {
		m.message = "Error: " + err.Error()
		return
	}
	p := m.store.HydrationProgress()
	m.message = fmt.Sprintf("Added %d ml (%d / %d ml)", amount, p.Total, p.Goal)
}

func (m *Model) removeWater(amount int) {
	before := m.store.TodayHydration()
	if before == 0 {
		m.message = "Nothing logged today"
		return
	}
	if err := m.store.RemoveHydration(m.ctx, amount); err != nil {
		m.message = "Error: " + err.Error()
		return
	}
	p := m.store.HydrationProgress()
	m.message = fmt.Sprintf("Removed %d ml (%d / %d ml)", before-p.Total, p.Total, p.Goal)
}

func (m *Model) setHabit(id string, value float64) {
	err := m.store.SetHabitProgress(m.ctx, id, value)
	switch {
	case errors.Is(err, wellness.ErrUnknownHabit):
		m.message = "Habit no longer exists"
	case err != nil:
		m.message = "Error: " + err.Error()
	default:
		m.message = ""
	}
	m.refresh()
}

func nextTab(current constants.SessionState, step int) constants.SessionState {
	for i, s := range tabs {
		if s == current {
			return tabs[(i+step+len(tabs))%len(tabs)]
		}
	}
	return tabs[0]
}
