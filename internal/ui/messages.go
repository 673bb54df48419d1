package ui

import (
	"autocomplete/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// clearStatusMsg clears the status line if no newer message replaced it
type clearStatusMsg struct {
	seq int
}

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// copiedMsg reports the outcome of a clipboard copy
type copiedMsg struct {
	text string
	err  error
}
