package menu

import "errors"

// Sentinel errors for menu operations.
// Use errors.Is to check for these conditions.
var (
	// ErrInputClosed indicates the input stream ended before the user
	// answered. Seen when stdin is closed or a piped script runs out.
	ErrInputClosed = errors.New("menu: input closed")

	// ErrNoChoices indicates a selection was requested over an empty list.
	ErrNoChoices = errors.New("menu: no choices to select from")
)
