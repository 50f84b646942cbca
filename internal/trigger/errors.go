package trigger

import "errors"

// Domain errors for the trigger package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, trigger.ErrInvocationFailed) {
//	    // log and keep dispatching
//	}
var (
	// ErrInvocationFailed is returned when a trigger could not be handed
	// to the automation daemon: binary missing, daemon unreachable, or
	// the CLI exited non-zero.
	ErrInvocationFailed = errors.New("trigger: invocation failed")
)
