package device

import "errors"

// Domain errors for the device package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, device.ErrNotFound) {
//	    // handle not found case
//	}
var (
	// ErrNotFound is returned when a configured device is not present at
	// session start.
	ErrNotFound = errors.New("device: not found")

	// ErrAmbiguousMatch is returned when more than one stored record
	// accepts the same live device.
	ErrAmbiguousMatch = errors.New("device: ambiguous match")

	// ErrInvalidRecord is returned when record validation fails.
	ErrInvalidRecord = errors.New("device: invalid record")

	// ErrInvalidDetectionType is returned when a detection type value is
	// not recognised.
	ErrInvalidDetectionType = errors.New("device: invalid detection type")
)
