package dispatch

import "errors"

// Domain errors for the dispatch package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, dispatch.ErrDeviceDisconnected) {
//	    // report it; other sessions keep running
//	}
var (
	// ErrDeviceDisconnected is returned when a session's device vanished
	// mid-session. The session is over; nothing else is affected.
	ErrDeviceDisconnected = errors.New("dispatch: device disconnected")
)
