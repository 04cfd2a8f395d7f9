package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Assemble key.Binding
	Open     key.Binding
	Cancel   key.Binding
	Save     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Assemble: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "assemble")),
		Open:     key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "load")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Save:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+q", "ctrl+c"), key.WithHelp("ctrl+q", "quit")),
	}
}
