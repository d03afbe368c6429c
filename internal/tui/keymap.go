package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the keybindings for the TUI. The menu and checklist views
// surface different subsets of it in the help footer.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Open     key.Binding
	Toggle   key.Binding
	Override key.Binding
	Notes    key.Binding
	Reset    key.Binding
	Back     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter", "l"),
			key.WithHelp("enter", "open"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle"),
		),
		Override: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "override"),
		),
		Notes: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "notes"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "h"),
			key.WithHelp("esc", "back"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (m Model) menuShortHelp() []key.Binding {
	return []key.Binding{m.keys.Up, m.keys.Down, m.keys.Open, m.keys.Help, m.keys.Quit}
}

func (m Model) menuFullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Up, m.keys.Down, m.keys.Open},
		{m.keys.Help, m.keys.Quit},
	}
}

func (m Model) checklistShortHelp() []key.Binding {
	return []key.Binding{m.keys.Toggle, m.keys.Override, m.keys.Notes, m.keys.Back, m.keys.Help}
}

func (m Model) checklistFullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Up, m.keys.Down, m.keys.Toggle, m.keys.Override},
		{m.keys.Notes, m.keys.Reset, m.keys.Back},
		{m.keys.Help, m.keys.Quit},
	}
}
