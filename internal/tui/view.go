package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/wellness/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.form != nil {
		return docStyle.Render(m.form.View())
	}

	var body string
	switch m.state {
	case constants.StateHabits:
		body = m.viewHabits()
	case constants.StateMood:
		body = m.viewMood()
	case constants.StateHydration:
		body = m.viewHydration()
	default:
		body = m.viewDashboard()
	}

	var b strings.Builder
	b.WriteString(m.viewTabs())
	b.WriteString("\n\n")
	b.WriteString(body)
	b.WriteString("\n\n")
	if m.message != "" {
		b.WriteString(warningStyle.Render(m.message))
		b.WriteString("\n")
	}
	b.WriteString(m.viewHelp())
	return docStyle.Render(b.String())
}

func (m Model) viewTabs() string {
	rendered := make([]string, len(tabs))
	for i, s := range tabs {
		if s == m.state {
			rendered[i] = activeTabStyle.Render(tabNames[s])
		} else {
			rendered[i] = inactiveTabStyle.Render(tabNames[s])
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) viewHelp() string {
	if m.help.ShowAll {
		groups := m.keys.FullHelp()
		if m.state == constants.StateHabits {
			groups = append(groups, m.habitsModel.Keys())
		}
		return m.help.FullHelpView(groups)
	}
	bindings := m.keys.ShortHelp()
	switch m.state {
	case constants.StateHabits:
		bindings = append(m.habitsModel.Keys(), bindings...)
	case constants.StateMood:
		bindings = append([]key.Binding{m.keys.AddMood, m.keys.EditMood}, bindings...)
	case constants.StateHydration:
		bindings = append([]key.Binding{m.keys.Quick, m.keys.Custom, m.keys.Remove}, bindings...)
	}
	return m.help.ShortHelpView(bindings)
}

func (m Model) viewDashboard() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Today, " + m.store.Today()))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Habits     %d%% complete", m.store.OverallCompletion())
	if streak := m.store.HabitStreak(); streak > 0 {
		fmt.Fprintf(&b, "  ·  %d day streak", streak)
	}
	b.WriteString("\n")

	p := m.store.HydrationProgress()
	fmt.Fprintf(&b, "Hydration  %s %d / %d ml\n", m.hydrationBar.ViewAs(p.Percent/100), p.Total, p.Goal)

	if mood, ok := m.store.TodayMood(); ok {
		fmt.Fprintf(&b, "Mood       %s %s\n", mood.Emoji, mood.Mood)
	} else {
		b.WriteString("Mood       " + mutedStyle.Render("not logged yet") + "\n")
	}
	return b.String()
}

func (m Model) viewHabits() string {
	return titleStyle.Render("Habits") + "\n\n" + m.habitsModel.View()
}

func (m Model) viewMood() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Mood journal"))
	b.WriteString("\n\n")

	stats := m.store.MoodStats()
	if stats.Count > 0 {
		fmt.Fprintf(&b, "Average %.1f/%d over %d rated entries, trend %s\n\n",
			stats.Average, constants.MaxMoodRating, stats.Count, stats.Trend)
	}

	moods := m.store.RecentMoods(constants.DefaultRecentWindow)
	if len(moods) == 0 {
		b.WriteString(mutedStyle.Render("No entries yet. Press a to log how you feel."))
		return b.String()
	}
	for _, e := range moods {
		fmt.Fprintf(&b, "%s  %s  %s %s", e.Date, e.Time().In(m.store.Location()).Format(constants.TimeFormat), e.Emoji, e.Mood)
		if e.Rating > 0 {
			fmt.Fprintf(&b, "  %s", strings.Repeat("★", e.Rating))
		}
		if e.Note != "" {
			b.WriteString("  " + mutedStyle.Render(e.Note))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) viewHydration() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Hydration"))
	b.WriteString("\n\n")

	p := m.store.HydrationProgress()
	b.WriteString(m.hydrationBar.ViewAs(p.Percent / 100))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%d / %d ml", p.Total, p.Goal)
	if p.Remaining > 0 {
		fmt.Fprintf(&b, "  ·  %d ml to go\n", p.Remaining)
	} else {
		b.WriteString("  ·  " + successStyle.Render("goal reached!") + "\n")
	}

	quick := make([]string, len(constants.QuickAmountsML))
	for i, a := range constants.QuickAmountsML {
		quick[i] = fmt.Sprintf("[%d] %d ml", i+1, a)
	}
	b.WriteString("\n" + strings.Join(quick, "   ") + "   [c] custom   [-] undo\n")

	if history := m.store.RecentHydration(constants.DefaultRecentWindow); len(history) > 0 {
		b.WriteString("\n")
		for _, h := range history {
			fmt.Fprintf(&b, "%s  %5d ml\n", h.Date, h.Amount)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
