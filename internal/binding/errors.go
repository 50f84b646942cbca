package binding

import "errors"

// Domain errors for the binding package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, binding.ErrInvalidBinding) {
//	    // reject the row
//	}
var (
	// ErrInvalidBinding is returned when a binding row fails validation.
	ErrInvalidBinding = errors.New("binding: invalid binding")

	// ErrInvalidEventType is returned for an unknown event type token.
	ErrInvalidEventType = errors.New("binding: invalid event type")

	// ErrInvalidTriggerType is returned for an unknown trigger type token.
	ErrInvalidTriggerType = errors.New("binding: invalid trigger type")

	// ErrIndexOutOfRange is returned when a table edit addresses a row
	// that does not exist.
	ErrIndexOutOfRange = errors.New("binding: index out of range")
)
