package autocomplete

import (
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"autocomplete/internal/domain"
	"autocomplete/internal/engine"
	"autocomplete/internal/floating"
)

const (
	defaultPlaceholder = "Search..."
	defaultWidth       = 40
)

// RenderFunc renders the content of one row
type RenderFunc func(domain.Option) string

// Config configures a field
type Config struct {
	SearchType  engine.SearchType
	Options     []domain.Option
	Multiple    bool
	Disabled    bool
	Loading     bool // forces the loading placeholder
	Placeholder string
	Label       string
	Description string

	Filter       engine.FilterFunc
	RenderOption RenderFunc
	Value        []domain.Option

	OnChange      func(engine.Value)
	OnInputChange func(string)

	Debounce time.Duration
	Width    int
	KeyMap   *KeyMap
	Styles   *Styles
}

// Model is an autocomplete field: a text input anchoring a floating panel
// of options
type Model struct {
	engine  *engine.Engine
	layer   *floating.Layer
	input   textinput.Model
	spinner spinner.Model
	keys    KeyMap
	styles  *Styles

	label           string
	description     string
	renderOption    RenderFunc
	externalLoading bool
	focused         bool
	width           int
	originX         int
	originY         int

	// panel scroll position, in lines
	offset int
}

// New creates a field from cfg
func New(cfg Config) *Model {
	keys := DefaultKeyMap()
	if cfg.KeyMap != nil {
		keys = *cfg.KeyMap
	}
	styles := cfg.Styles
	if styles == nil {
		styles = NewStyles()
	}
	width := cfg.Width
	if width <= 0 {
		width = defaultWidth
	}
	placeholder := cfg.Placeholder
	if placeholder == "" {
		placeholder = defaultPlaceholder
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.PlaceholderStyle = styles.Placeholder
	ti.CharLimit = 256

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = styles.Spinner

	m := &Model{
		engine: engine.New(engine.Config{
			SearchType:    cfg.SearchType,
			Options:       cfg.Options,
			Multiple:      cfg.Multiple,
			Disabled:      cfg.Disabled,
			Filter:        cfg.Filter,
			Value:         cfg.Value,
			Debounce:      cfg.Debounce,
			OnChange:      cfg.OnChange,
			OnInputChange: cfg.OnInputChange,
		}),
		layer:           floating.NewLayer(floating.DefaultOptions()),
		input:           ti,
		spinner:         sp,
		keys:            keys,
		styles:          styles,
		label:           cfg.Label,
		description:     cfg.Description,
		renderOption:    cfg.RenderOption,
		externalLoading: cfg.Loading,
	}
	m.layer.SetEscape(keys.Dismiss)
	m.layer.OnOpenChange = func(open bool) {
		if !open {
			m.engine.Dismiss()
		}
	}
	m.SetWidth(width)
	return m
}

// ID returns the unique id of the field
func (m *Model) ID() string {
	return m.layer.ID()
}

// Label returns the field label
func (m *Model) Label() string {
	return m.label
}

// Engine exposes the field's filter and selection state
func (m *Model) Engine() *engine.Engine {
	return m.engine
}

// Init returns the cursor blink command, and starts the spinner when the
// field begins in the loading state
func (m *Model) Init() tea.Cmd {
	if m.Loading() {
		return tea.Batch(textinput.Blink, m.spinner.Tick)
	}
	return textinput.Blink
}

// Focus gives the field keyboard focus. Sync fields open their panel with
// every option.
func (m *Model) Focus() tea.Cmd {
	if m.engine.Disabled() {
		return nil
	}
	cmd := m.focusInput()
	if m.engine.Focus() {
		m.offset = 0
	}
	m.sync()
	return cmd
}

func (m *Model) focusInput() tea.Cmd {
	m.focused = true
	return m.input.Focus()
}

// Blur removes keyboard focus and closes the panel. A filter still waiting
// for its debounce window is dropped.
func (m *Model) Blur() {
	m.focused = false
	m.input.Blur()
	m.engine.CancelPending()
	m.engine.Dismiss()
	m.sync()
}

// Focused reports whether the field has keyboard focus
func (m *Model) Focused() bool {
	return m.focused
}

// SetWidth sets the width of the field and its panel
func (m *Model) SetWidth(width int) {
	m.width = width
	// borders, padding and a cell for the cursor
	m.input.Width = width - 4
	m.sync()
}

// SetOrigin records where the parent draws the field on screen
func (m *Model) SetOrigin(x, y int) {
	m.originX, m.originY = x, y
	m.sync()
}

// SetViewport records the terminal size used for panel placement
func (m *Model) SetViewport(width, height int) {
	m.layer.SetViewport(floating.Size{Width: width, Height: height})
	m.sync()
}

// SetLoading forces or releases the loading placeholder. The returned
// command starts the spinner when the field enters the loading state.
func (m *Model) SetLoading(loading bool) tea.Cmd {
	wasLoading := m.Loading()
	m.externalLoading = loading
	m.sync()
	if !wasLoading && m.Loading() {
		return m.spinner.Tick
	}
	return nil
}

// SetDisabled enables or disables the field
func (m *Model) SetDisabled(disabled bool) {
	m.engine.SetDisabled(disabled)
	if disabled {
		m.focused = false
		m.input.Blur()
	}
	m.sync()
}

// Loading reports whether the panel shows the loading placeholder
func (m *Model) Loading() bool {
	return m.engine.Loading() || m.externalLoading
}

// Close tears the field down; pending filter work is dropped
func (m *Model) Close() {
	m.engine.Close()
	m.layer.SetOpen(false)
}

// Update handles messages for the field
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if m.engine.Disabled() {
		return m, nil
	}

	switch msg := msg.(type) {
	case debounceMsg:
		if msg.id != m.ID() {
			return m, nil
		}
		if m.engine.ApplyFilter(engine.FilterRequest{Seq: msg.seq, Text: msg.text}) {
			m.offset = 0
		}
		m.sync()
		return m, nil

	case spinner.TickMsg:
		if !m.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.SetViewport(msg.Width, msg.Height)
		return m, nil

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		return m, m.handleKey(msg)
	}

	if !m.focused {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.layer.Dismissal(msg) {
		m.logf("panel dismissed by %s", msg.String())
		m.sync()
		return nil
	}
	if delta, ok := m.keys.Navigation.Delta(msg); ok {
		m.engine.Navigate(engine.Direction(delta))
		m.sync()
		return nil
	}
	if key.Matches(msg, m.keys.Confirm) {
		m.engine.ConfirmActive()
		m.sync()
		return nil
	}

	wasLoading := m.Loading()
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds := []tea.Cmd{cmd}

	if after := m.input.Value(); after != before {
		m.offset = 0
		if req := m.engine.InputChanged(after); req != nil {
			cmds = append(cmds, m.scheduleFilter(*req))
			if !wasLoading {
				cmds = append(cmds, m.spinner.Tick)
			}
		}
	}
	m.sync()
	return tea.Batch(cmds...)
}

// scheduleFilter delivers req back to this field once the debounce window
// has passed; newer requests make it stale on arrival
func (m *Model) scheduleFilter(req engine.FilterRequest) tea.Cmd {
	id := m.ID()
	return tea.Tick(m.engine.Debounce(), func(time.Time) tea.Msg {
		return debounceMsg{id: id, seq: req.Seq, text: req.Text}
	})
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.layer.Dismissal(msg) {
		m.logf("panel dismissed by outside press at %d,%d", msg.X, msg.Y)
		m.sync()
		return nil
	}

	if tea.MouseEvent(msg).IsWheel() {
		return m.handleWheel(msg)
	}

	switch msg.Action {
	case tea.MouseActionMotion:
		if row, ok := m.rowAt(msg.X, msg.Y); ok {
			m.engine.SetActive(row)
			m.sync()
		}
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		if row, ok := m.rowAt(msg.X, msg.Y); ok {
			filtered := m.engine.Filtered()
			m.engine.Toggle(filtered[row])
			m.engine.SetActive(row)
			cmd := m.focusInput()
			m.sync()
			return cmd
		}
		if m.layer.InReference(msg.X, msg.Y) {
			return m.Focus()
		}
	}
	return nil
}

// handleWheel moves the active row when the wheel turns over the open panel
func (m *Model) handleWheel(msg tea.MouseMsg) tea.Cmd {
	if !m.PanelContains(msg.X, msg.Y) {
		return nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.engine.Navigate(engine.DirectionUp)
	case tea.MouseButtonWheelDown:
		m.engine.Navigate(engine.DirectionDown)
	default:
		return nil
	}
	m.sync()
	return nil
}

// Contains reports whether a screen cell lies on the field's text box
func (m *Model) Contains(x, y int) bool {
	return m.anchor().Contains(x, y)
}

// PanelContains reports whether a screen cell lies on the open panel
func (m *Model) PanelContains(x, y int) bool {
	_, _, ok := m.layer.Hit(x, y)
	return ok
}

// anchor is the screen rectangle of the bordered text box
func (m *Model) anchor() floating.Rect {
	y := m.originY
	if m.label != "" {
		y++
	}
	return floating.Rect{X: m.originX, Y: y, Width: m.width, Height: 3}
}

// sync mirrors engine state into the floating layer and keeps the active
// row scrolled into view
func (m *Model) sync() {
	m.layer.SetOpen(m.engine.IsOpen())
	m.layer.SetReference(m.anchor())
	lines, spans := m.panelContent()
	m.layer.Update(len(lines) + 2)
	m.ensureVisible(len(lines), spans)
}

// View renders the label, text box and description
func (m *Model) View() string {
	var b strings.Builder

	if m.label != "" {
		b.WriteString(m.styles.Label.Render(m.label))
		b.WriteString("\n")
	}

	box := m.styles.Input
	if m.focused {
		box = m.styles.InputFocused
	}
	field := box.Width(m.width - 2).Render(m.input.View())
	if m.engine.Disabled() {
		field = m.styles.Disabled.Render(field)
	}
	b.WriteString(field)

	if m.description != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Description.Render(m.description))
	}
	return b.String()
}

// Height returns the number of lines View occupies
func (m *Model) Height() int {
	return lipgloss.Height(m.View())
}

// Overlay draws the open panel on top of the parent's rendered frame
func (m *Model) Overlay(base string) string {
	panel := m.PanelView()
	if panel == "" {
		return base
	}
	p := m.layer.Placement()
	return floating.Overlay(base, panel, p.X, p.Y)
}

func (m *Model) logf(format string, args ...interface{}) {
	log.Printf("[%s] "+format, append([]interface{}{m.label}, args...)...)
}
