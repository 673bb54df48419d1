package engine

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	"autocomplete/internal/domain"
)

// Filter names accepted by FilterByName
const (
	FilterSubstring   = "substring"
	FilterFuzzy       = "fuzzy"
	FilterDescription = "description"
)

// SubstringFilter keeps options whose label contains text, ignoring case,
// in their original order
func SubstringFilter(options []domain.Option, text string) []domain.Option {
	query := strings.ToLower(text)
	results := make([]domain.Option, 0, len(options))
	for _, opt := range options {
		if strings.Contains(strings.ToLower(opt.Label), query) {
			results = append(results, opt)
		}
	}
	return results
}

// LabelOrDescriptionFilter matches text against label or description
func LabelOrDescriptionFilter(options []domain.Option, text string) []domain.Option {
	query := strings.ToLower(text)
	results := make([]domain.Option, 0, len(options))
	for _, opt := range options {
		if strings.Contains(strings.ToLower(opt.Label), query) ||
			strings.Contains(strings.ToLower(opt.Description), query) {
			results = append(results, opt)
		}
	}
	return results
}

// FuzzyFilter ranks options by fuzzy match quality of their labels. Options
// that do not match are dropped; the best match comes first.
func FuzzyFilter(options []domain.Option, text string) []domain.Option {
	query := strings.ToLower(strings.TrimSpace(text))
	if query == "" {
		return append([]domain.Option(nil), options...)
	}
	targets := make([]string, len(options))
	for i, opt := range options {
		targets[i] = strings.ToLower(opt.Label)
	}
	matches := fuzzy.Find(query, targets)
	results := make([]domain.Option, 0, len(matches))
	for _, match := range matches {
		if match.Index >= 0 && match.Index < len(options) {
			results = append(results, options[match.Index])
		}
	}
	return results
}

// FilterByName resolves a configured filter strategy
func FilterByName(name string) (FilterFunc, error) {
	switch name {
	case "", FilterSubstring:
		return SubstringFilter, nil
	case FilterFuzzy:
		return FuzzyFilter, nil
	case FilterDescription:
		return LabelOrDescriptionFilter, nil
	default:
		return nil, fmt.Errorf("unknown filter %q", name)
	}
}
