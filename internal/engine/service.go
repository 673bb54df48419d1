package engine

import (
	"log"
	"time"

	"autocomplete/internal/domain"
)

// Engine owns the filter and selection state of one autocomplete field.
// It has no rendering concerns and is driven by a single goroutine.
type Engine struct {
	state   *State
	options []domain.Option
	filter  FilterFunc

	searchType    SearchType
	multiple      bool
	disabled      bool
	debounce      time.Duration
	onChange      func(Value)
	onInputChange func(string)
}

// New creates an engine from cfg
func New(cfg Config) *Engine {
	searchType := cfg.SearchType
	if searchType == "" {
		searchType = SearchSync
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	filter := cfg.Filter
	if filter == nil {
		filter = SubstringFilter
	}
	options := append([]domain.Option(nil), cfg.Options...)

	return &Engine{
		state: &State{
			Filtered:    append([]domain.Option(nil), options...),
			Selected:    coerceValue(cfg.Value, cfg.Multiple),
			ActiveIndex: -1,
		},
		options:       options,
		filter:        filter,
		searchType:    searchType,
		multiple:      cfg.Multiple,
		disabled:      cfg.Disabled,
		debounce:      debounce,
		onChange:      cfg.OnChange,
		onInputChange: cfg.OnInputChange,
	}
}

// coerceValue turns the configured initial value into a selection of the
// right shape: duplicates are dropped and single mode keeps the first entry.
func coerceValue(value []domain.Option, multiple bool) []domain.Option {
	selected := make([]domain.Option, 0, len(value))
	for _, opt := range value {
		if domain.IndexOf(selected, opt) < 0 {
			selected = append(selected, opt)
		}
	}
	if !multiple && len(selected) > 1 {
		log.Printf("Initial value has %d options in single mode, keeping the first", len(selected))
		selected = selected[:1]
	}
	return selected
}

func (e *Engine) inactive() bool {
	return e.disabled || e.state.Closed
}

// InputChanged records new input text. In async mode it returns the filter
// request the caller must deliver back through ApplyFilter once the debounce
// window has elapsed; otherwise it returns nil.
func (e *Engine) InputChanged(text string) *FilterRequest {
	if e.inactive() {
		return nil
	}

	e.state.InputText = text
	if e.onInputChange != nil {
		e.onInputChange(text)
	}

	if text == "" {
		e.state.Open = false
		e.state.Filtered = e.allOptions()
		e.state.Searched = false
		e.cancelPending()
		e.normalize()
		return nil
	}

	e.state.Open = true
	e.state.ActiveIndex = 0
	req := e.search(text)
	e.normalize()
	return req
}

func (e *Engine) search(text string) *FilterRequest {
	if e.searchType == SearchSync {
		e.apply(text)
		return nil
	}

	// A newer request supersedes whatever is still waiting
	e.state.Loading = true
	e.state.Seq++
	e.state.PendingSeq = e.state.Seq
	return &FilterRequest{Seq: e.state.Seq, Text: text}
}

// ApplyFilter runs a debounced filter pass. Only the most recent request is
// applied; superseded, cancelled or post-teardown requests return false.
func (e *Engine) ApplyFilter(req FilterRequest) bool {
	if e.inactive() {
		return false
	}
	if req.Seq == 0 || req.Seq != e.state.PendingSeq {
		log.Printf("Dropping stale filter request %d for '%s'", req.Seq, req.Text)
		return false
	}

	e.state.PendingSeq = 0
	e.apply(req.Text)
	e.state.Loading = false
	e.normalize()
	return true
}

func (e *Engine) apply(text string) {
	e.state.Filtered = e.filter(e.allOptions(), text)
	e.state.Searched = true
	log.Printf("Filter completed for '%s': %d matches", text, len(e.state.Filtered))
}

// Focus opens the panel with the full option set so it can be browsed before
// typing. Only sync fields do this; it reports whether the panel opened.
func (e *Engine) Focus() bool {
	if e.inactive() || e.searchType != SearchSync {
		return false
	}
	e.state.Open = true
	e.state.Filtered = e.allOptions()
	e.state.Searched = false
	e.normalize()
	return true
}

// Toggle adds option to the selection or removes it when already selected
func (e *Engine) Toggle(option domain.Option) {
	if e.inactive() {
		return
	}

	if i := domain.IndexOf(e.state.Selected, option); i >= 0 {
		selected := make([]domain.Option, 0, len(e.state.Selected)-1)
		selected = append(selected, e.state.Selected[:i]...)
		e.state.Selected = append(selected, e.state.Selected[i+1:]...)
	} else if e.multiple {
		e.state.Selected = append(e.state.Selected, option)
	} else {
		e.state.Selected = []domain.Option{option}
	}

	if e.onChange != nil {
		e.onChange(e.Value())
	}
}

// Navigate moves the active index one step, wrapping at both ends
func (e *Engine) Navigate(direction Direction) {
	n := len(e.state.Filtered)
	if e.inactive() || !e.state.Open || n == 0 {
		return
	}

	step := 1
	if direction < 0 {
		step = -1
	}
	if e.state.ActiveIndex < 0 {
		if step > 0 {
			e.state.ActiveIndex = 0
		} else {
			e.state.ActiveIndex = n - 1
		}
		return
	}
	e.state.ActiveIndex = (e.state.ActiveIndex + step + n) % n
}

// SetActive highlights the row at index, typically under the pointer
func (e *Engine) SetActive(index int) {
	if e.inactive() || !e.state.Open || index < 0 || index >= len(e.state.Filtered) {
		return
	}
	e.state.ActiveIndex = index
}

// ConfirmActive toggles the highlighted option. It reports whether anything
// was toggled.
func (e *Engine) ConfirmActive() bool {
	if e.inactive() {
		return false
	}
	i := e.state.ActiveIndex
	if i < 0 || i >= len(e.state.Filtered) {
		return false
	}
	e.Toggle(e.state.Filtered[i])
	return true
}

// Dismiss closes the panel without touching the selection
func (e *Engine) Dismiss() {
	if e.inactive() {
		return
	}
	e.state.Open = false
	e.normalize()
}

// CancelPending drops any scheduled filter request
func (e *Engine) CancelPending() {
	e.cancelPending()
}

func (e *Engine) cancelPending() {
	e.state.PendingSeq = 0
	e.state.Loading = false
}

// Close tears the engine down. Requests delivered afterwards are ignored.
func (e *Engine) Close() {
	e.cancelPending()
	e.state.Closed = true
}

// SetDisabled toggles the disabled flag. Disabling closes the panel and
// cancels pending work.
func (e *Engine) SetDisabled(disabled bool) {
	e.disabled = disabled
	if disabled {
		e.cancelPending()
		e.state.Open = false
		e.normalize()
	}
}

// normalize keeps the active index inside the filtered view while the
// panel is open, and clears it otherwise
func (e *Engine) normalize() {
	n := len(e.state.Filtered)
	if !e.state.Open || n == 0 {
		e.state.ActiveIndex = -1
		return
	}
	if e.state.ActiveIndex < 0 {
		e.state.ActiveIndex = 0
	} else if e.state.ActiveIndex >= n {
		e.state.ActiveIndex = n - 1
	}
}

func (e *Engine) allOptions() []domain.Option {
	return append([]domain.Option(nil), e.options...)
}

// Value returns the selection in caller-facing shape
func (e *Engine) Value() Value {
	return Value{
		Multiple: e.multiple,
		Items:    append([]domain.Option(nil), e.state.Selected...),
	}
}

// IsOpen reports whether the panel is open
func (e *Engine) IsOpen() bool { return e.state.Open }

// InputText returns the current text
func (e *Engine) InputText() string { return e.state.InputText }

// Loading reports whether a debounced filter is in flight
func (e *Engine) Loading() bool { return e.state.Loading }

// Searched reports whether the filtered view is the result of a search
func (e *Engine) Searched() bool { return e.state.Searched }

// Filtered returns the current filtered view
func (e *Engine) Filtered() []domain.Option {
	return append([]domain.Option(nil), e.state.Filtered...)
}

// Selected returns the selection in selection order
func (e *Engine) Selected() []domain.Option {
	return append([]domain.Option(nil), e.state.Selected...)
}

// IsSelected reports whether option is part of the selection
func (e *Engine) IsSelected(option domain.Option) bool {
	return domain.IndexOf(e.state.Selected, option) >= 0
}

// ActiveIndex returns the highlighted row, or false when none is
func (e *Engine) ActiveIndex() (int, bool) {
	return e.state.ActiveIndex, e.state.ActiveIndex >= 0
}

// Pending returns the sequence of the request waiting to be applied, or 0
func (e *Engine) Pending() uint64 { return e.state.PendingSeq }

// Disabled reports whether input handling is suppressed
func (e *Engine) Disabled() bool { return e.disabled }

// Closed reports whether the engine has been shut down
func (e *Engine) Closed() bool { return e.state.Closed }

// Multiple reports the selection cardinality mode
func (e *Engine) Multiple() bool { return e.multiple }

// SearchType returns the filtering mode
func (e *Engine) SearchType() SearchType { return e.searchType }

// Debounce returns the async quiet period
func (e *Engine) Debounce() time.Duration { return e.debounce }
