package store

import (
	"github.com/nerrad567/macropad-core/internal/binding"
	"github.com/nerrad567/macropad-core/internal/device"
)

// DeviceConfig pairs one configured device with its ordered bindings.
type DeviceConfig struct {
	Record   device.Record
	Bindings []binding.Binding
}

// Clone returns a deep copy of the device config.
func (dc DeviceConfig) Clone() DeviceConfig {
	cpy := dc
	cpy.Bindings = make([]binding.Binding, len(dc.Bindings))
	copy(cpy.Bindings, dc.Bindings)
	return cpy
}

// State is the whole persisted configuration: every configured device in
// file order. The zero value is a valid empty configuration.
type State struct {
	Devices []DeviceConfig
}

// Clone returns a deep copy of the state. The edit wizard clones before
// changing anything so that cancel can restore the original.
func (s State) Clone() State {
	out := State{Devices: make([]DeviceConfig, len(s.Devices))}
	for i, dc := range s.Devices {
		out.Devices[i] = dc.Clone()
	}
	return out
}

// Records returns the device records in file order.
func (s State) Records() []device.Record {
	records := make([]device.Record, len(s.Devices))
	for i, dc := range s.Devices {
		records[i] = dc.Record
	}
	return records
}
