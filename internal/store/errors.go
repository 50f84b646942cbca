package store

import "errors"

// Domain errors for the store package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, store.ErrConfigUnreadable) {
//	    // offer wipe / retry / quit
//	}
var (
	// ErrConfigUnreadable is returned when the bindings file exists but
	// cannot be read or parsed. An absent file is not this error: it
	// loads as an empty configuration.
	ErrConfigUnreadable = errors.New("store: config unreadable")
)
