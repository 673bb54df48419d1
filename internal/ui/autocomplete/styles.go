package autocomplete

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains the style definitions of a field and its panel
type Styles struct {
	Label             lipgloss.Style
	Description       lipgloss.Style
	Input             lipgloss.Style
	InputFocused      lipgloss.Style
	Disabled          lipgloss.Style
	Panel             lipgloss.Style
	ActiveRow         lipgloss.Style
	OptionLabel       lipgloss.Style
	OptionDescription lipgloss.Style
	Checked           lipgloss.Style
	Unchecked         lipgloss.Style
	Placeholder       lipgloss.Style
	Spinner           lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Label:       lipgloss.NewStyle().Bold(true),
		Description: lipgloss.NewStyle().Faint(true),
		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")),
		InputFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")),
		Disabled: lipgloss.NewStyle().Faint(true),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")),
		ActiveRow: lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("120")), // light green
		OptionLabel:       lipgloss.NewStyle().Bold(true),
		OptionDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Checked:           lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		Unchecked:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Placeholder:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Spinner:           lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	}
}
