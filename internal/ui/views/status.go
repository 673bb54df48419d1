package views

import (
	"fmt"

	"autocomplete/internal/domain"
	"autocomplete/internal/eventbus"
)

// StatusKind tells the status line how to color a message
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusSuccess
	StatusError
)

// DescribeEvent turns a domain event into a status line message. The
// second result is false for events the status line ignores.
func DescribeEvent(event eventbus.DomainEvent) (string, StatusKind, bool) {
	switch e := event.(type) {
	case eventbus.SelectionChangedEvent:
		if !e.Multiple {
			label := "(none)"
			if len(e.Selected) > 0 {
				label = e.Selected[0].Label
			}
			return fmt.Sprintf("%s selected item: %s", e.Field, label), StatusSuccess, true
		}
		labels := domain.JoinLabels(e.Selected)
		if labels == "" {
			labels = "(none)"
		}
		return fmt.Sprintf("%s selected items: %s", e.Field, labels), StatusSuccess, true
	case eventbus.InputChangedEvent:
		return fmt.Sprintf("%s input: %q", e.Field, e.Text), StatusInfo, true
	case eventbus.ErrorEvent:
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Err), StatusError, true
		}
		return e.Message, StatusError, true
	case eventbus.ConfigLoadedEvent:
		if e.Path == "" {
			return fmt.Sprintf("Using built-in config (%d fields)", e.Fields), StatusInfo, true
		}
		return fmt.Sprintf("Loaded %s (%d fields)", e.Path, e.Fields), StatusInfo, true
	case eventbus.ConfigSavedEvent:
		return fmt.Sprintf("Saved %s", e.Path), StatusSuccess, true
	}
	return "", StatusInfo, false
}

// RenderStatus colors a status message by kind
func (s *Styles) RenderStatus(msg string, kind StatusKind) string {
	switch kind {
	case StatusError:
		return s.StatusError.Render(msg)
	case StatusSuccess:
		return s.StatusSuccess.Render(msg)
	}
	return s.Status.Render(msg)
}
