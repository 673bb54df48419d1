package ui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"autocomplete/internal/config"
	"autocomplete/internal/domain"
	"autocomplete/internal/engine"
	"autocomplete/internal/eventbus"
	"autocomplete/internal/ui/autocomplete"
	"autocomplete/internal/ui/views"
)

const (
	title         = "Autocomplete"
	statusTimeout = 4 * time.Second

	// top-left corner of the content inside the Main padding
	originX = 2
	originY = 1
)

// Model represents the demo screen: a column of autocomplete fields
type Model struct {
	bus    eventbus.EventBus
	config *config.Config

	fields    []*autocomplete.Model
	focus     int // index of the focused field, -1 for none
	keys      KeyMap
	fieldKeys autocomplete.KeyMap
	styles    *views.Styles

	width  int
	height int
	help   help.Model

	statusMessage string
	statusKind    views.StatusKind
	statusSeq     int

	helpOps        *HelpOps
	writeClipboard func(string) error

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates the demo model with one field per configured entry
func NewModel(bus eventbus.EventBus, cfg *config.Config, options []domain.Option) *Model {
	m := &Model{
		bus:       bus,
		config:    cfg,
		focus:     -1,
		keys:      DefaultKeyMap(),
		fieldKeys: autocomplete.DefaultKeyMap(),
		styles:    views.NewStyles(),
		help:      help.New(),
		helpOps:   NewHelpOps(nil),

		writeClipboard: clipboard.WriteAll,
	}

	for _, fc := range cfg.Fields {
		m.fields = append(m.fields, m.newField(fc, options))
	}
	m.layout()
	return m
}

// newField builds one field and routes its callbacks onto the bus
func (m *Model) newField(fc config.FieldConfig, options []domain.Option) *autocomplete.Model {
	searchType, err := engine.ParseSearchType(fc.SearchType)
	if err != nil {
		m.publishError(fmt.Sprintf("Field %q", fc.Label), err)
		searchType = engine.SearchSync
	}
	filter, err := engine.FilterByName(fc.Filter)
	if err != nil {
		m.publishError(fmt.Sprintf("Field %q", fc.Label), err)
		filter = engine.SubstringFilter
	}

	field := fc.Label
	return autocomplete.New(autocomplete.Config{
		SearchType:   searchType,
		Options:      options,
		Multiple:     fc.Multiple,
		Disabled:     fc.Disabled,
		Loading:      fc.Loading,
		Placeholder:  fc.Placeholder,
		Label:        fc.Label,
		Description:  fc.Description,
		Filter:       filter,
		RenderOption: m.styles.RenderOption,
		Value:        fc.ResolveValue(options),
		Debounce:     m.config.Debounce(),
		Width:        fc.Width,
		KeyMap:       &m.fieldKeys,
		OnChange: func(v engine.Value) {
			m.publish(eventbus.SelectionChangedEvent{Field: field, Multiple: v.Multiple, Selected: v.Items})
		},
		OnInputChange: func(text string) {
			m.publish(eventbus.InputChangedEvent{Field: field, Text: text})
		},
	})
}

func (m *Model) publish(e eventbus.DomainEvent) {
	if m.bus != nil {
		m.bus.Publish(e)
	}
}

func (m *Model) publishError(message string, err error) {
	log.Printf("%s: %v", message, err)
	m.publish(eventbus.ErrorEvent{Message: message, Err: err})
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps.SetProgram(p)
}

// Fields returns the demo's fields in display order
func (m *Model) Fields() []*autocomplete.Model {
	return m.fields
}

// Focused returns the focused field, or nil
func (m *Model) Focused() *autocomplete.Model {
	if m.focus < 0 || m.focus >= len(m.fields) {
		return nil
	}
	return m.fields[m.focus]
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.fields))
	for _, f := range m.fields {
		cmds = append(cmds, f.Init())
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		for _, f := range m.fields {
			f.SetViewport(msg.Width, msg.Height)
		}

	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	case tea.MouseMsg:
		cmd = m.handleMouse(msg)

	case EventMsg:
		cmd = m.handleEvent(msg.Event)

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.statusMessage = ""
		}

	case helpPagerMsg:
		if msg.err != nil {
			log.Printf("Help pager failed: %v", msg.err)
			cmd = m.setStatus(fmt.Sprintf("Help unavailable: %v", msg.err), views.StatusError)
		}

	case copiedMsg:
		if msg.err != nil {
			log.Printf("Clipboard write failed: %v", msg.err)
			cmd = m.setStatus(fmt.Sprintf("Copy failed: %v", msg.err), views.StatusError)
		} else {
			cmd = m.setStatus(fmt.Sprintf("Copied: %s", msg.text), views.StatusSuccess)
		}

	default:
		// debounce ticks, spinner frames and cursor blinks carry their own
		// field ids
		cmd = m.broadcast(msg)
	}

	m.layout()
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		for _, f := range m.fields {
			f.Close()
		}
		return tea.Quit

	case key.Matches(msg, m.keys.Next):
		return m.cycleFocus(1)

	case key.Matches(msg, m.keys.Prev):
		return m.cycleFocus(-1)

	case key.Matches(msg, m.keys.Help):
		content := NewHelpRenderer(m.keys, m.fieldKeys).RenderHelpContent()
		return m.fetchHelpPager(content)

	case key.Matches(msg, m.keys.Copy):
		return m.copySelection()
	}

	if f := m.Focused(); f != nil {
		_, cmd := f.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	// The open panel is drawn above the other fields and owns its cells
	if f := m.Focused(); f != nil && f.PanelContains(msg.X, msg.Y) {
		_, cmd := f.Update(msg)
		return cmd
	}

	var cmds []tea.Cmd
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		for i, f := range m.fields {
			if f.Contains(msg.X, msg.Y) && i != m.focus {
				cmds = append(cmds, m.setFocus(i))
				break
			}
		}
	}
	cmds = append(cmds, m.broadcast(msg))
	return tea.Batch(cmds...)
}

func (m *Model) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for _, f := range m.fields {
		if _, cmd := f.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	text, kind, ok := views.DescribeEvent(event)
	if !ok {
		return nil
	}
	log.Print(text)
	return m.setStatus(text, kind)
}

// setStatus shows a message and schedules its removal
func (m *Model) setStatus(text string, kind views.StatusKind) tea.Cmd {
	m.statusSeq++
	m.statusMessage = text
	m.statusKind = kind
	seq := m.statusSeq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

// cycleFocus moves focus to the next enabled field in direction delta
func (m *Model) cycleFocus(delta int) tea.Cmd {
	n := len(m.fields)
	if n == 0 {
		return nil
	}
	start := m.focus
	if start < 0 && delta < 0 {
		start = 0
	}
	for step := 1; step <= n; step++ {
		i := ((start+delta*step)%n + n) % n
		if !m.fields[i].Engine().Disabled() {
			return m.setFocus(i)
		}
	}
	return nil
}

func (m *Model) setFocus(index int) tea.Cmd {
	if m.fields[index].Engine().Disabled() {
		return nil
	}
	for i, f := range m.fields {
		if i != index {
			f.Blur()
		}
	}
	m.focus = index
	return m.fields[index].Focus()
}

func (m *Model) copySelection() tea.Cmd {
	f := m.Focused()
	if f == nil {
		return nil
	}
	text := domain.JoinLabels(f.Engine().Selected())
	if text == "" {
		return m.setStatus("Nothing selected", views.StatusInfo)
	}
	write := m.writeClipboard
	return func() tea.Msg {
		return copiedMsg{text: text, err: write(text)}
	}
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	return func() tea.Msg {
		return helpPagerMsg{
			err: m.helpOps.ShowHelpInPager(helpContent),
		}
	}
}

// layout places every field below the title, one blank line apart
func (m *Model) layout() {
	y := originY + lipgloss.Height(m.renderHeader()) + 1
	for _, f := range m.fields {
		f.SetOrigin(originX, y)
		y += f.Height() + 1
	}
}

func (m *Model) renderHeader() string {
	return m.styles.Title.Render(title)
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	parts := []string{m.renderHeader()}
	for _, f := range m.fields {
		parts = append(parts, f.View())
	}

	status := m.styles.Dim.Render("Ready")
	if m.statusMessage != "" {
		status = m.styles.RenderStatus(m.statusMessage, m.statusKind)
	}
	parts = append(parts, status, m.renderHelp())

	frame := m.styles.Main.Render(strings.Join(parts, "\n\n"))
	for _, f := range m.fields {
		frame = f.Overlay(frame)
	}
	return frame
}

func (m *Model) renderHelp() string {
	keys := combinedKeys{demo: m.keys}
	if m.Focused() != nil {
		keys.field = m.fieldKeys.ShortHelp()
	}
	return m.styles.Help.Render(m.help.View(keys))
}
