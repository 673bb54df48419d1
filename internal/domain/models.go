package domain

import "strings"

// Option represents a candidate item offered by an autocomplete field.
// Options are compared by value: two options with the same label but a
// different description are distinct.
type Option struct {
	Label       string `toml:"label"`
	Description string `toml:"description"`
}

// String returns the label, which is also the search key
func (o Option) String() string {
	return o.Label
}

// Labels returns the labels of the given options in order
func Labels(options []Option) []string {
	labels := make([]string, len(options))
	for i, opt := range options {
		labels[i] = opt.Label
	}
	return labels
}

// JoinLabels renders a selection as a comma separated list of labels
func JoinLabels(options []Option) string {
	return strings.Join(Labels(options), ", ")
}

// IndexOf returns the position of opt in options, or -1
func IndexOf(options []Option, opt Option) int {
	for i, o := range options {
		if o == opt {
			return i
		}
	}
	return -1
}
