package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoExamples is returned when the picker has nothing to offer.
	ErrNoExamples = errors.New("tui: no examples to pick from")
)
