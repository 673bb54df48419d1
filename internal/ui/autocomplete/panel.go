package autocomplete

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"autocomplete/internal/domain"
	"autocomplete/internal/floating"
)

const (
	loadingText   = "Loading..."
	noResultsText = "No results found"
	checkboxWidth = 4 // "[x] "
)

// rowSpan locates a filtered option within the panel's lines
type rowSpan struct {
	start  int
	height int
}

// Row describes one rendered option
type Row struct {
	Option domain.Option
	Props  floating.Props
}

// Rows returns the options currently listed by the panel with their
// role and state attributes
func (m *Model) Rows() []Row {
	if !m.engine.IsOpen() || m.Loading() {
		return nil
	}
	active, _ := m.engine.ActiveIndex()
	filtered := m.engine.Filtered()
	rows := make([]Row, len(filtered))
	for i, opt := range filtered {
		rows[i] = Row{
			Option: opt,
			Props:  m.layer.ItemProps(i, i == active, m.engine.IsSelected(opt)),
		}
	}
	return rows
}

func (m *Model) innerWidth() int {
	w := m.width - 2
	if w < 1 {
		w = 1
	}
	return w
}

// panelContent renders every line the panel would show if it had
// unlimited height, plus where each option's row starts
func (m *Model) panelContent() ([]string, []rowSpan) {
	if !m.engine.IsOpen() {
		return nil, nil
	}
	inner := m.innerWidth()

	if m.Loading() {
		return []string{ansi.Truncate(m.spinner.View()+" "+loadingText, inner, "…")}, nil
	}
	filtered := m.engine.Filtered()
	if len(filtered) == 0 {
		return []string{noResultsText}, nil
	}

	active, _ := m.engine.ActiveIndex()
	var lines []string
	spans := make([]rowSpan, len(filtered))
	for i, opt := range filtered {
		row := m.renderRow(opt, i == active, m.engine.IsSelected(opt), inner)
		spans[i] = rowSpan{start: len(lines), height: len(row)}
		lines = append(lines, row...)
	}
	return lines, spans
}

func (m *Model) renderRow(opt domain.Option, active, selected bool, inner int) []string {
	checkbox := m.styles.Unchecked.Render("[ ]")
	if selected {
		checkbox = m.styles.Checked.Render("[x]")
	}

	var content string
	if m.renderOption != nil {
		content = m.renderOption(opt)
	} else {
		content = m.defaultRow(opt, inner-checkboxWidth)
	}

	parts := strings.Split(content, "\n")
	lines := make([]string, len(parts))
	for j, part := range parts {
		prefix := strings.Repeat(" ", checkboxWidth)
		if j == 0 {
			prefix = checkbox + " "
		}
		line := ansi.Truncate(prefix+part, inner, "…")
		if active {
			line = m.styles.ActiveRow.Width(inner).Render(ansi.Strip(line))
		}
		lines[j] = line
	}
	return lines
}

// defaultRow shows the label emphasized over the description
func (m *Model) defaultRow(opt domain.Option, width int) string {
	if width < 1 {
		width = 1
	}
	label := runewidth.Truncate(opt.Label, width, "…")
	desc := runewidth.Truncate(opt.Description, width, "…")
	if desc == "" {
		return m.styles.OptionLabel.Render(label)
	}
	return m.styles.OptionLabel.Render(label) + "\n" + m.styles.OptionDescription.Render(desc)
}

// visibleLines is the number of content lines that fit the placed panel
func (m *Model) visibleLines() int {
	return m.layer.Placement().Height - 2
}

func (m *Model) ensureVisible(total int, spans []rowSpan) {
	visible := m.visibleLines()
	if visible <= 0 {
		m.offset = 0
		return
	}

	if active, ok := m.engine.ActiveIndex(); ok && active < len(spans) {
		span := spans[active]
		if span.start < m.offset {
			m.offset = span.start
		} else if span.start+span.height > m.offset+visible {
			m.offset = span.start + span.height - visible
		}
	}

	maxOffset := total - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.offset > maxOffset {
		m.offset = maxOffset
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// PanelView renders the open panel clipped to its placement, or "" when
// the panel is closed or has no room
func (m *Model) PanelView() string {
	if !m.engine.IsOpen() {
		return ""
	}
	visible := m.visibleLines()
	if visible <= 0 {
		return ""
	}

	lines, _ := m.panelContent()
	end := m.offset + visible
	if end > len(lines) {
		end = len(lines)
	}
	start := m.offset
	if start > end {
		start = end
	}
	return m.styles.Panel.Width(m.innerWidth()).Render(strings.Join(lines[start:end], "\n"))
}

// rowAt maps a screen cell to the index of the option drawn there
func (m *Model) rowAt(x, y int) (int, bool) {
	if m.Loading() {
		return 0, false
	}
	lx, ly, ok := m.layer.Hit(x, y)
	p := m.layer.Placement()
	if !ok || lx == 0 || lx == p.Width-1 || ly == 0 || ly == p.Height-1 {
		return 0, false
	}

	line := m.offset + ly - 1
	_, spans := m.panelContent()
	for i, span := range spans {
		if line >= span.start && line < span.start+span.height {
			return i, true
		}
	}
	return 0, false
}
