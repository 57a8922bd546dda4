package alerr

import "strings"

// WithSuggestion attaches a "did you mean" help line when input is close to one of options.
func (e *Error) WithSuggestion(input string, options []string) *Error {
	return e.WithHelp(SuggestSimilar(input, options))
}

// WithAllowed attaches the list of accepted values as a note.
func (e *Error) WithAllowed(options []string) *Error {
	return e.WithNote("allowed: " + strings.Join(options, ", "))
}
