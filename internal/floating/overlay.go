package floating

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Overlay draws panel over base with its top-left corner at x, y. Cells of
// base outside the panel are kept, including their styling.
func Overlay(base, panel string, x, y int) string {
	if panel == "" {
		return base
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	lines := strings.Split(base, "\n")
	panelLines := strings.Split(panel, "\n")
	for len(lines) < y+len(panelLines) {
		lines = append(lines, "")
	}

	for i, pl := range panelLines {
		row := y + i
		line := lines[row]
		w := ansi.StringWidth(pl)

		left := ansi.Truncate(line, x, "")
		if gap := x - ansi.StringWidth(left); gap > 0 {
			left += strings.Repeat(" ", gap)
		}
		right := ""
		if ansi.StringWidth(line) > x+w {
			right = ansi.TruncateLeft(line, x+w, "")
		}
		lines[row] = left + ansi.ResetStyle + pl + ansi.ResetStyle + right
	}
	return strings.Join(lines, "\n")
}
