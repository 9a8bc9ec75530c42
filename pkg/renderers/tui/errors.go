package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoOptions is returned when a choice prompt has nothing to pick.
	ErrNoOptions = errors.New("tui: choice field has no options")
	// ErrTooManyAttempts is returned when required fields are still empty
	// after the configured number of submit attempts.
	ErrTooManyAttempts = errors.New("tui: required fields still empty")
)
