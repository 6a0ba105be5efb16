package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Quit     key.Binding
	Help     key.Binding
	Reload   key.Binding
	AddMood  key.Binding
	EditMood key.Binding
	Quick    key.Binding
	Custom   key.Binding
	Remove   key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Reload, k.Quit, k.Help}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.Reload, k.Quit, k.Help},
		{k.AddMood, k.EditMood, k.Quick, k.Custom, k.Remove},
	}
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev tab"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		AddMood: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "log mood"),
		),
		EditMood: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit latest mood"),
		),
		Quick: key.NewBinding(
			key.WithKeys("1", "2", "3", "4"),
			key.WithHelp("1-4", "quick add water"),
		),
		Custom: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "custom amount"),
		),
		Remove: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "undo 250 ml"),
		),
	}
}
