package input

import (
	"fmt"

	evdev "github.com/holoplot/go-evdev"

	"github.com/nerrad567/macropad-core/internal/device"
)

// Keyboard wraps one opened event device.
type Keyboard struct {
	dev  *evdev.InputDevice
	desc device.Descriptor
}

// ListKeyboards enumerates input devices that can emit key events and can
// be re-identified later. Devices without a physical topology string are
// skipped: they are virtual (uinput and friends, including the automation
// daemon's own synthetic keyboard) and have no stable identity to match a
// record against.
func ListKeyboards() ([]device.Descriptor, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, fmt.Errorf("list input devices: %w", err)
	}

	var descriptors []device.Descriptor
	for _, p := range paths {
		kb, err := Open(p.Path)
		if err != nil {
			continue // no permission or already gone
		}
		d := kb.Descriptor()
		keyCapable := len(kb.dev.CapableEvents(evdev.EV_KEY)) > 0
		kb.Close()

		if !keyCapable || d.Phys == "" {
			continue
		}
		descriptors = append(descriptors, d)
	}
	return descriptors, nil
}

// Open opens the event device at path and reads its live identity.
func Open(path string) (*Keyboard, error) {
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	name, err := dev.Name()
	if err != nil {
		name = ""
	}
	phys, err := dev.PhysicalLocation()
	if err != nil {
		phys = ""
	}

	return &Keyboard{
		dev:  dev,
		desc: device.Descriptor{Path: path, Name: name, Phys: phys},
	}, nil
}

// Descriptor returns the identity read when the device was opened.
func (k *Keyboard) Descriptor() device.Descriptor {
	return k.desc
}

// Grab takes exclusive hold of the device: events stop reaching the
// desktop and arrive here only.
func (k *Keyboard) Grab() error {
	if err := k.dev.Grab(); err != nil {
		return fmt.Errorf("grabbing %s: %w", k.desc.Path, err)
	}
	return nil
}

// Ungrab releases an exclusive hold.
func (k *Keyboard) Ungrab() error {
	return k.dev.Ungrab()
}

// Close releases the device. Closing unblocks a concurrent NextPress,
// which is how sessions are shut down.
func (k *Keyboard) Close() error {
	return k.dev.Close()
}

// NextPress blocks until the next key-down event and returns it. Releases
// and repeats are swallowed here. Any read failure wraps ErrDeviceClosed:
// the device was unplugged, or Close was called to end the session. The
// caller tells the two apart by whether it asked for the shutdown.
func (k *Keyboard) NextPress() (Press, error) {
	for {
		ev, err := k.dev.ReadOne()
		if err != nil {
			return Press{}, fmt.Errorf("%w: %v", ErrDeviceClosed, err)
		}
		if p, ok := pressFromEvent(ev); ok {
			return p, nil
		}
	}
}
