package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSelectionChanged EventType = "SelectionChanged"
	EventInputChanged     EventType = "InputChanged"
	EventError            EventType = "Error"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SelectionChangedEvent is emitted every time a field's selection is mutated
type SelectionChangedEvent struct {
	Field    string   // field label
	Multiple bool     // selection cardinality of the field
	Selected []Option // selection after the change, in selection order
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// InputChangedEvent is emitted on every raw text change of a field
type InputChangedEvent struct {
	Field string
	Text  string
}

func (e InputChangedEvent) Type() EventType { return EventInputChanged }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path   string
	Fields int
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
