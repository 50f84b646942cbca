package input

import "errors"

// Domain errors for the input package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, input.ErrDeviceClosed) {
//	    // session over: shutdown or unplug
//	}
var (
	// ErrDeviceClosed is returned when a read fails because the device
	// went away: unplugged mid-session, or closed to end the session.
	ErrDeviceClosed = errors.New("input: device closed")

	// ErrNoDevices is returned when a probe has nothing to listen on.
	ErrNoDevices = errors.New("input: no devices available")
)
