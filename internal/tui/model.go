package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/wellness/internal/constants"
	"github.com/julianstephens/wellness/internal/tui/components/habits"
	"github.com/julianstephens/wellness/internal/wellness"
)

// storeChangedMsg reports that the backing file was modified outside the TUI
type storeChangedMsg struct{}

var tabs = []constants.SessionState{
	constants.StateDashboard,
	constants.StateHabits,
	constants.StateMood,
	constants.StateHydration,
}

var tabNames = map[constants.SessionState]string{
	constants.StateDashboard: "Dashboard",
	constants.StateHabits:    "Habits",
	constants.StateMood:      "Mood",
	constants.StateHydration: "Hydration",
}

type Option func(*Model)

// WithChanges makes the model reload the store whenever ch receives
func WithChanges(ch <-chan struct{}) Option {
	return func(m *Model) {
		m.changes = ch
	}
}

type Model struct {
	ctx            context.Context
	store          *wellness.Store
	state          constants.SessionState
	previousState  constants.SessionState
	keys           KeyMap
	help           help.Model
	habitsModel    habits.Model
	hydrationBar   progress.Model
	form           *huh.Form
	moodForm       *MoodFormModel
	hydrationForm  *HydrationFormModel
	onboardingForm *OnboardingFormModel
	habitForm      *HabitFormModel
	deleteForm     *DeleteHabitFormModel
	editingID      string
	changes        <-chan struct{}
	message        string
	quitting       bool
	width          int
	height         int
}

func New(ctx context.Context, store *wellness.Store, opts ...Option) Model {
	m := Model{
		ctx:          ctx,
		store:        store,
		state:        constants.StateDashboard,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		habitsModel:  habits.New(nil, 80, 10),
		hydrationBar: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.refresh()

	if !store.OnboardingCompleted(ctx) {
		m.onboardingForm = &OnboardingFormModel{Ready: true}
		m.form = NewOnboardingForm(m.onboardingForm)
		m.state = constants.StateOnboarding
	}
	return m
}

func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.form != nil {
		cmds = append(cmds, m.form.Init())
	}
	if m.changes != nil {
		cmds = append(cmds, waitForChange(m.changes))
	}
	return tea.Batch(cmds...)
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return storeChangedMsg{}
	}
}

// refresh rebuilds component state from the store
func (m *Model) refresh() {
	hs := m.store.Habits()
	rows := make([]habits.Row, len(hs))
	for i, h := range hs {
		rows[i] = habits.Row{Habit: h, Progress: m.store.HabitProgress(h.ID)}
	}
	m.habitsModel.SetRows(rows)
}

func (m Model) State() constants.SessionState {
	return m.state
}
