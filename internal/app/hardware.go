package app

import (
	"context"

	"github.com/nerrad567/macropad-core/internal/device"
	"github.com/nerrad567/macropad-core/internal/dispatch"
	"github.com/nerrad567/macropad-core/internal/input"
)

// Hardware is the slice of the input layer the wizard and run flows use.
// The evdev implementation is the only one outside tests.
type Hardware interface {
	// Keyboards lists every key-capable input device currently present.
	Keyboards() ([]device.Descriptor, error)

	// Probe watches the given devices and returns the first one a key is
	// pressed on.
	Probe(ctx context.Context, descriptors []device.Descriptor) (device.Descriptor, error)

	// Capture waits for a single key press on one device.
	Capture(ctx context.Context, d device.Descriptor) (input.Press, error)

	// Acquire opens and grabs a device for exclusive dispatch.
	Acquire(d device.Descriptor) (dispatch.Device, error)
}

// evdevHardware is the real input layer.
type evdevHardware struct{}

// NewHardware returns the evdev-backed Hardware implementation.
func NewHardware() Hardware {
	return evdevHardware{}
}

func (evdevHardware) Keyboards() ([]device.Descriptor, error) {
	return input.ListKeyboards()
}

func (evdevHardware) Probe(ctx context.Context, descriptors []device.Descriptor) (device.Descriptor, error) {
	return input.Probe(ctx, descriptors)
}

func (evdevHardware) Capture(ctx context.Context, d device.Descriptor) (input.Press, error) {
	return input.Capture(ctx, d)
}

func (evdevHardware) Acquire(d device.Descriptor) (dispatch.Device, error) {
	kb, err := input.Open(d.Path)
	if err != nil {
		return nil, err
	}
	if err := kb.Grab(); err != nil {
		kb.Close()
		return nil, err
	}
	return kb, nil
}
