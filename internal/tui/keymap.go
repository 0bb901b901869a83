package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the panel's key bindings.
type keyMap struct {
	Quit      key.Binding
	Toggle    key.Binding
	Edit      key.Binding
	Autostart key.Binding
	Theme     key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "toggle mute"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit hotkey"),
		),
		Autostart: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "run at startup"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// shortHelp lists the bindings shown in the footer for the current mode.
func (k keyMap) shortHelp(editing bool) []key.Binding {
	if editing {
		return []key.Binding{k.Confirm, k.Cancel}
	}
	return []key.Binding{k.Toggle, k.Edit, k.Autostart, k.Theme, k.Quit}
}
