package floating

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// Role is an accessibility role attached to the panel and its rows
type Role string

const (
	RoleListbox Role = "listbox"
	RoleOption  Role = "option"
)

// Props carries the role and state attributes of a panel element
type Props struct {
	ID       string
	Role     Role
	Selected bool // the row is highlighted
	Checked  bool // the row's option is part of the selection
}

// Layer anchors a floating panel to a reference element. It keeps the
// placement current as layout changes and detects dismissal.
type Layer struct {
	id        string
	opts      Options
	open      bool
	reference Rect
	viewport  Size
	placement Placement
	escape    key.Binding

	// OnOpenChange is called when the layer closes itself
	OnOpenChange func(open bool)
}

// NewLayer creates a closed layer
func NewLayer(opts Options) *Layer {
	return &Layer{
		id:   uuid.NewString(),
		opts: opts,
		escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
	}
}

// ID returns the unique id of this layer
func (l *Layer) ID() string {
	return l.id
}

// SetReference registers the reference element's screen rectangle
func (l *Layer) SetReference(r Rect) {
	l.reference = r
}

// SetViewport records the visible terminal size
func (l *Layer) SetViewport(s Size) {
	l.viewport = s
}

// SetOpen mirrors the owner's open state without notifying
func (l *Layer) SetOpen(open bool) {
	l.open = open
}

// IsOpen reports whether the panel is shown
func (l *Layer) IsOpen() bool {
	return l.open
}

// SetEscape overrides the key that dismisses the panel
func (l *Layer) SetEscape(b key.Binding) {
	l.escape = b
}

// Update recomputes the placement for a panel of contentHeight rows
func (l *Layer) Update(contentHeight int) Placement {
	l.placement = Compute(l.reference, contentHeight, l.viewport, l.opts)
	return l.placement
}

// Placement returns the last computed placement
func (l *Layer) Placement() Placement {
	return l.placement
}

// Dismissal reports whether msg closes the open panel: the escape key, or a
// button press outside both the panel and its reference. Wheel scrolling
// never dismisses. A dismissing message
// closes the layer and fires OnOpenChange.
func (l *Layer) Dismissal(msg tea.Msg) bool {
	if !l.open {
		return false
	}

	dismiss := false
	switch msg := msg.(type) {
	case tea.KeyMsg:
		dismiss = key.Matches(msg, l.escape)
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && !tea.MouseEvent(msg).IsWheel() {
			dismiss = !l.placement.Contains(msg.X, msg.Y) && !l.reference.Contains(msg.X, msg.Y)
		}
	}

	if dismiss {
		l.open = false
		if l.OnOpenChange != nil {
			l.OnOpenChange(false)
		}
	}
	return dismiss
}

// Hit translates a screen cell into panel-local coordinates
func (l *Layer) Hit(x, y int) (int, int, bool) {
	if !l.open || !l.placement.Contains(x, y) {
		return 0, 0, false
	}
	return x - l.placement.X, y - l.placement.Y, true
}

// InReference reports whether a screen cell lies on the reference element
func (l *Layer) InReference(x, y int) bool {
	return l.reference.Contains(x, y)
}

// FloatingProps returns the attributes of the panel itself
func (l *Layer) FloatingProps() Props {
	return Props{ID: l.id + "-listbox", Role: RoleListbox}
}

// ItemProps returns the attributes of the row at index
func (l *Layer) ItemProps(index int, active, selected bool) Props {
	return Props{
		ID:       fmt.Sprintf("%s-option-%d", l.id, index),
		Role:     RoleOption,
		Selected: active,
		Checked:  selected,
	}
}
