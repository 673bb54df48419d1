package views

import (
	"autocomplete/internal/domain"
)

// OptionSeparator sits between an option's label and description
const OptionSeparator = " · "

// RenderOption renders a row as the label followed by its description on
// the same line
func (s *Styles) RenderOption(opt domain.Option) string {
	if opt.Description == "" {
		return s.OptionLabel.Render(opt.Label)
	}
	return s.OptionLabel.Render(opt.Label) + s.OptionDetail.Render(OptionSeparator+opt.Description)
}
