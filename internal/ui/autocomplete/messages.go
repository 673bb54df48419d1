package autocomplete

// debounceMsg is delivered when an async filter's quiet period has elapsed
type debounceMsg struct {
	id   string
	seq  uint64
	text string
}
