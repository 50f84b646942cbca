// Package input is the thin boundary over the kernel's event devices.
//
// Everything hardware-shaped lives here: enumeration, opening, exclusive
// grabs, the blocking read loop, and the press-identification probe. The
// rest of the program sees only device.Descriptor and Press values.
//
// # Key Types
//
//   - Keyboard: One opened event device (grab, read, close)
//   - Press: A key-down event carrying symbolic name and numeric code
//
// # Shutdown
//
// NextPress blocks inside a read with no timeout. To end a session, close
// the Keyboard from another goroutine; the pending read fails and
// NextPress returns ErrDeviceClosed. An unplugged device produces the
// same error, so the caller distinguishes the two by whether it initiated
// the close.
//
// # Usage
//
//	descriptors, err := input.ListKeyboards()
//	// pick one, or probe:
//	d, err := input.Probe(ctx, descriptors)
//
//	kb, err := input.Open(d.Path)
//	if err := kb.Grab(); err != nil { ... }
//	defer kb.Close()
//	for {
//	    press, err := kb.NextPress()
//	    ...
//	}
package input
