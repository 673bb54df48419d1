package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the demo-level keybindings
type KeyMap struct {
	Next key.Binding
	Prev key.Binding
	Help key.Binding
	Copy key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default demo keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy selection"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Copy, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev},
		{k.Copy, k.Help, k.Quit},
	}
}

// combinedKeys shows demo keys next to the focused field's keys
type combinedKeys struct {
	demo  KeyMap
	field []key.Binding
}

func (c combinedKeys) ShortHelp() []key.Binding {
	return append(append([]key.Binding{}, c.field...), c.demo.ShortHelp()...)
}

func (c combinedKeys) FullHelp() [][]key.Binding {
	return append([][]key.Binding{c.field}, c.demo.FullHelp()...)
}
