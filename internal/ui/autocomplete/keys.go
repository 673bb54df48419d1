package autocomplete

import (
	"github.com/charmbracelet/bubbles/key"

	"autocomplete/internal/floating"
)

// KeyMap defines the keybindings of a field
type KeyMap struct {
	Navigation floating.ListNavigation
	Confirm    key.Binding
	Dismiss    key.Binding
}

// DefaultKeyMap returns the default field keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Navigation: floating.DefaultListNavigation(),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "toggle"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Navigation.Prev, k.Navigation.Next, k.Confirm, k.Dismiss}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Navigation.Prev, k.Navigation.Next},
		{k.Confirm, k.Dismiss},
	}
}
