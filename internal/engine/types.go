package engine

import (
	"time"

	"autocomplete/internal/domain"
)

// DefaultDebounce is the quiet period async filtering waits for
const DefaultDebounce = 500 * time.Millisecond

// SearchType selects immediate or debounced filtering
type SearchType string

const (
	SearchSync  SearchType = "sync"
	SearchAsync SearchType = "async"
)

// ParseSearchType validates a configured search type
func ParseSearchType(s string) (SearchType, error) {
	switch SearchType(s) {
	case SearchSync, SearchAsync:
		return SearchType(s), nil
	case "":
		return SearchSync, nil
	default:
		return "", &UnknownSearchTypeError{Name: s}
	}
}

// UnknownSearchTypeError is returned for search types other than sync and async
type UnknownSearchTypeError struct {
	Name string
}

func (e *UnknownSearchTypeError) Error() string {
	return "unknown search type: " + e.Name
}

// Direction is a keyboard navigation step through the filtered view
type Direction int

const (
	DirectionUp   Direction = -1
	DirectionDown Direction = 1
)

// FilterFunc produces the filtered view for a query. Implementations may
// return any ordered subsequence (or reordering) of the options.
type FilterFunc func(options []domain.Option, text string) []domain.Option

// FilterRequest is a debounced filter pass waiting to be applied
type FilterRequest struct {
	Seq  uint64
	Text string
}

// Config configures an Engine
type Config struct {
	SearchType SearchType
	Options    []domain.Option
	Multiple   bool
	Disabled   bool
	Filter     FilterFunc      // nil means SubstringFilter
	Value      []domain.Option // initial selection; single mode keeps the first
	Debounce   time.Duration   // zero means DefaultDebounce

	OnChange      func(Value)
	OnInputChange func(string)
}

// Value is the caller-facing shape of a selection
type Value struct {
	Multiple bool
	Items    []domain.Option
}

// Single returns the selected option in single mode
func (v Value) Single() (domain.Option, bool) {
	if len(v.Items) == 0 {
		return domain.Option{}, false
	}
	return v.Items[0], true
}

// State holds the interaction state of one field
type State struct {
	Open        bool
	InputText   string
	Loading     bool
	Filtered    []domain.Option
	Searched    bool
	Selected    []domain.Option
	ActiveIndex int // -1 when nothing is highlighted
	PendingSeq  uint64
	Seq         uint64
	Closed      bool
}
