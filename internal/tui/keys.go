package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the guide key bindings.
type keyMap struct {
	NextStep key.Binding
	PrevStep key.Binding
	NextPart key.Binding
	PrevPart key.Binding
	First    key.Binding
	Last     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextStep: key.NewBinding(
			key.WithKeys("right", "l", "n"),
			key.WithHelp("→/n", "next step"),
		),
		PrevStep: key.NewBinding(
			key.WithKeys("left", "h", "p"),
			key.WithHelp("←/p", "prev step"),
		),
		NextPart: key.NewBinding(
			key.WithKeys("down", "j", "tab"),
			key.WithHelp("↓/tab", "next part"),
		),
		PrevPart: key.NewBinding(
			key.WithKeys("up", "k", "shift+tab"),
			key.WithHelp("↑/shift+tab", "prev part"),
		),
		First: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first step"),
		),
		Last: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last step"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevStep, k.NextStep, k.PrevPart, k.NextPart, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevStep, k.NextStep, k.First, k.Last},
		{k.PrevPart, k.NextPart},
		{k.Help, k.Quit},
	}
}
