package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit    key.Binding
	Prev    key.Binding
	Next    key.Binding
	Jump    key.Binding
	Panic   key.Binding
	Back    key.Binding
	Goto    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Dismiss key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Prev:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev tab")),
		Next:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next tab")),
		Jump:    key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "tab")),
		Panic:   key.NewBinding(key.WithKeys("p", "!"), key.WithHelp("p", "PANIC")),
		Back:    key.NewBinding(key.WithKeys("backspace", "b"), key.WithHelp("b", "back")),
		Goto:    key.NewBinding(key.WithKeys(":", "g"), key.WithHelp(":", "go to path")),
		Confirm: key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", "confirm emergency")),
		Cancel:  key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "cancel alert")),
		Dismiss: key.NewBinding(key.WithKeys("enter", "esc", " "), key.WithHelp("enter", "ok")),
	}
}

func (k keyMap) mainHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Jump, k.Goto, k.Back, k.Panic, k.Quit}
}
