package floating

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ListNavigation maps keys to steps through a list of rows
type ListNavigation struct {
	Prev key.Binding
	Next key.Binding
}

// DefaultListNavigation uses the arrow keys and their emacs equivalents
func DefaultListNavigation() ListNavigation {
	return ListNavigation{
		Prev: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "previous"),
		),
		Next: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "next"),
		),
	}
}

// Delta returns -1 or +1 when msg is a navigation key
func (n ListNavigation) Delta(msg tea.KeyMsg) (int, bool) {
	switch {
	case key.Matches(msg, n.Prev):
		return -1, true
	case key.Matches(msg, n.Next):
		return 1, true
	}
	return 0, false
}
