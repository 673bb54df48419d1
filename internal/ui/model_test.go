package ui

import (
	"errors"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autocomplete/internal/config"
	"autocomplete/internal/domain"
	"autocomplete/internal/engine"
	"autocomplete/internal/eventbus"
)

// recordingBus is a synchronous EventBus that remembers what was published
type recordingBus struct {
	mu     sync.Mutex
	events []eventbus.DomainEvent
}

func (b *recordingBus) Publish(event eventbus.DomainEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *recordingBus) Subscribe(eventbus.EventType, eventbus.EventHandler) func() {
	return func() {}
}

func (b *recordingBus) Close() {}

func (b *recordingBus) ofType(t eventbus.EventType) []eventbus.DomainEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []eventbus.DomainEvent
	for _, e := range b.events {
		if e.Type() == t {
			out = append(out, e)
		}
	}
	return out
}

func newDemo(t *testing.T, mutate func(*config.Config)) (*Model, *recordingBus) {
	t.Helper()
	cfg := config.DefaultConfig()
	if mutate != nil {
		mutate(cfg)
	}
	bus := &recordingBus{}
	m := NewModel(bus, cfg, domain.DefaultOptions())
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, bus
}

func send(m *Model, msg tea.Msg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func typeInto(m *Model, text string) {
	for _, r := range text {
		send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func plainView(m *Model) string {
	return ansi.Strip(m.View())
}

func TestNewModelBuildsConfiguredFields(t *testing.T) {
	m, _ := newDemo(t, nil)

	fields := m.Fields()
	require.Len(t, fields, 2)
	assert.Equal(t, "Sync Search", fields[0].Label())
	assert.Equal(t, engine.SearchSync, fields[0].Engine().SearchType())
	assert.Equal(t, "Async Search", fields[1].Label())
	assert.Equal(t, engine.SearchAsync, fields[1].Engine().SearchType())
	assert.Equal(t, engine.DefaultDebounce, fields[1].Engine().Debounce())
	assert.Nil(t, m.Focused())
}

func TestInitialValueFromConfig(t *testing.T) {
	m, _ := newDemo(t, func(cfg *config.Config) {
		cfg.Fields[0].Value = []string{"Banana", "Nope"}
	})

	assert.Equal(t, []string{"Banana"}, domain.Labels(m.Fields()[0].Engine().Selected()))
}

func TestTabCyclesFocus(t *testing.T) {
	m, _ := newDemo(t, nil)
	syncField, asyncField := m.Fields()[0], m.Fields()[1]

	send(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, syncField.Focused())
	assert.True(t, syncField.Engine().IsOpen(), "sync fields open on focus")

	send(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.False(t, syncField.Focused())
	assert.False(t, syncField.Engine().IsOpen())
	assert.True(t, asyncField.Focused())
	assert.False(t, asyncField.Engine().IsOpen(), "async fields wait for input")

	send(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.True(t, syncField.Focused())
	assert.False(t, asyncField.Focused())
}

func TestTabSkipsDisabledFields(t *testing.T) {
	m, _ := newDemo(t, func(cfg *config.Config) {
		cfg.Fields[1].Disabled = true
	})

	send(m, tea.KeyMsg{Type: tea.KeyTab})
	send(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Same(t, m.Fields()[0], m.Focused())
}

func TestSelectionPublishesEvents(t *testing.T) {
	m, bus := newDemo(t, nil)

	send(m, tea.KeyMsg{Type: tea.KeyTab})
	typeInto(m, "app")
	send(m, tea.KeyMsg{Type: tea.KeyEnter})

	inputs := bus.ofType(eventbus.EventInputChanged)
	require.Len(t, inputs, 3)
	assert.Equal(t, eventbus.InputChangedEvent{Field: "Sync Search", Text: "app"}, inputs[2])

	changes := bus.ofType(eventbus.EventSelectionChanged)
	require.Len(t, changes, 1)
	change := changes[0].(eventbus.SelectionChangedEvent)
	assert.Equal(t, "Sync Search", change.Field)
	assert.True(t, change.Multiple)
	assert.Equal(t, []string{"Apple"}, domain.Labels(change.Selected))
}

func TestEventMsgDrivesStatusLine(t *testing.T) {
	m, _ := newDemo(t, nil)
	apple := domain.DefaultOptions()[0]

	cmd := send(m, EventMsg{Event: eventbus.SelectionChangedEvent{
		Field: "Sync Search", Multiple: true, Selected: []domain.Option{apple},
	}})
	require.NotNil(t, cmd)
	assert.Contains(t, plainView(m), "Sync Search selected items: Apple")

	send(m, EventMsg{Event: eventbus.SelectionChangedEvent{Field: "Async Search"}})
	assert.Contains(t, plainView(m), "Async Search selected item: (none)")

	// the first message's timer must not clear the newer one
	send(m, clearStatusMsg{seq: 1})
	assert.Contains(t, plainView(m), "Async Search selected item")

	send(m, clearStatusMsg{seq: 2})
	assert.NotContains(t, plainView(m), "selected item")
	assert.Contains(t, plainView(m), "Ready")
}

func TestCopySelection(t *testing.T) {
	m, _ := newDemo(t, func(cfg *config.Config) {
		cfg.Fields[0].Value = []string{"Apple", "Banana"}
	})
	var copied string
	m.writeClipboard = func(s string) error {
		copied = s
		return nil
	}

	assert.Nil(t, send(m, tea.KeyMsg{Type: tea.KeyCtrlY}), "nothing focused")

	send(m, tea.KeyMsg{Type: tea.KeyTab})
	cmd := send(m, tea.KeyMsg{Type: tea.KeyCtrlY})
	require.NotNil(t, cmd)
	send(m, cmd())

	assert.Equal(t, "Apple, Banana", copied)
	assert.Equal(t, "Copied: Apple, Banana", m.statusMessage)
}

func TestCopyFailureIsReported(t *testing.T) {
	m, _ := newDemo(t, func(cfg *config.Config) {
		cfg.Fields[0].Value = []string{"Apple"}
	})
	m.writeClipboard = func(string) error { return errors.New("no clipboard") }

	send(m, tea.KeyMsg{Type: tea.KeyTab})
	cmd := send(m, tea.KeyMsg{Type: tea.KeyCtrlY})
	require.NotNil(t, cmd)
	send(m, cmd())

	assert.Equal(t, "Copy failed: no clipboard", m.statusMessage)
}

func TestQuitClosesFields(t *testing.T) {
	m, _ := newDemo(t, nil)

	cmd := send(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	for _, f := range m.Fields() {
		assert.True(t, f.Engine().Closed())
	}
}

func TestClickFocusesField(t *testing.T) {
	m, _ := newDemo(t, nil)

	// title on row 1, sync field rows 3-7, async label on row 9
	send(m, tea.MouseMsg{X: 5, Y: 11, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	assert.Same(t, m.Fields()[1], m.Focused())
	assert.False(t, m.Fields()[0].Focused())
}

func TestFocusedPanelIsOverlaid(t *testing.T) {
	m, _ := newDemo(t, nil)

	send(m, tea.KeyMsg{Type: tea.KeyTab})

	assert.Contains(t, plainView(m), "Apple · A sweet red")
}

func TestHelpLineFollowsFocus(t *testing.T) {
	m, _ := newDemo(t, nil)

	line := ansi.Strip(m.renderHelp())
	assert.Contains(t, line, "next field")
	assert.NotContains(t, line, "enter")

	send(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Contains(t, ansi.Strip(m.renderHelp()), "enter")
}

func TestHelpPagerErrorShowsStatus(t *testing.T) {
	m, _ := newDemo(t, nil)

	cmd := send(m, tea.KeyMsg{Type: tea.KeyF1})
	require.NotNil(t, cmd)
	// no program is attached in tests
	send(m, cmd())

	assert.Contains(t, plainView(m), "Help unavailable: program not set")
}

func TestHelpContentListsBindings(t *testing.T) {
	m, _ := newDemo(t, nil)

	content := ansi.Strip(NewHelpRenderer(m.keys, m.fieldKeys).RenderHelpContent())
	for _, want := range []string{"Autocomplete Help", "tab", "ctrl+y", "esc", "enter"} {
		assert.Contains(t, content, want)
	}
}
