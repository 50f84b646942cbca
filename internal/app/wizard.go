package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/nerrad567/macropad-core/internal/binding"
	"github.com/nerrad567/macropad-core/internal/device"
	"github.com/nerrad567/macropad-core/internal/store"
)

// addDevice runs the add-device wizard: pick a detection policy, identify
// the device by a key press, confirm any clash with existing entries, then
// drop straight into the binding editor for the new device.
func (a *App) addDevice(ctx context.Context, st *store.State) (state, error) {
	types := device.AllDetectionTypes()
	labels := make([]string, len(types))
	for i, dt := range types {
		labels[i] = dt.Label()
	}

	idx, err := a.menu.Select("How should this device be detected?", labels, 0)
	if err != nil {
		return 0, err
	}
	detection := types[idx]

	keyboards, err := a.hardware.Keyboards()
	if err != nil {
		return 0, fmt.Errorf("listing keyboards: %w", err)
	}
	if len(keyboards) == 0 {
		a.menu.Say("No keyboards present.")
		return stateMain, nil
	}

	a.menu.Say("Press a key on the device to be added:")
	a.settle()

	probeCtx, cancel := a.boundedCtx(ctx)
	d, err := a.hardware.Probe(probeCtx, keyboards)
	cancel()
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			a.menu.Say("No key press seen. Nothing added.")
			return stateMain, nil
		}
		return 0, err
	}
	a.menu.Say("%s %s %s", d.Path, d.Name, d.Phys)

	if hits := device.Conflicts(st.Records(), d); len(hits) > 0 {
		for _, h := range hits {
			if h.ReportedName == d.Name && h.ReportedPhys == d.Phys {
				a.menu.Say("Existing entry %s is indistinguishable from this device.", h.Identity())
			} else {
				a.menu.Say("Existing entry %s also matches this device.", h.Identity())
			}
		}
		ok, err := a.menu.Confirm("Add it anyway?", false)
		if err != nil {
			return 0, err
		}
		if !ok {
			a.menu.Say("Nothing added.")
			return stateMain, nil
		}
	}

	st.Devices = append(st.Devices, store.DeviceConfig{
		Record: device.Record{
			FormatVersion: device.CurrentFormatVersion,
			Detection:     detection,
			ReportedName:  d.Name,
			ReportedPhys:  d.Phys,
		},
	})
	a.logger.Info("device added", "name", d.Name, "phys", d.Phys, "detection", string(detection))

	return a.editDeviceAt(ctx, st, len(st.Devices)-1)
}

// editDevice shows the device picker, then runs the binding editor.
func (a *App) editDevice(ctx context.Context, st *store.State) (state, error) {
	if len(st.Devices) == 0 {
		a.menu.Say("No devices configured.")
		return stateMain, nil
	}

	labels := append(device.DisplayNames(st.Records()), "Cancel")
	idx, err := a.menu.SelectPage("Choose the device to edit:", labels)
	if err != nil {
		return 0, err
	}
	if idx == len(labels)-1 {
		return stateMain, nil
	}

	return a.editDeviceAt(ctx, st, idx)
}

// editDeviceAt runs the binding editor for one device. OK keeps the edits
// in memory; Cancel restores the snapshot taken on entry. Nothing touches
// the disk either way.
func (a *App) editDeviceAt(ctx context.Context, st *store.State, idx int) (state, error) {
	dc := &st.Devices[idx]
	name := device.DisplayNames(st.Records())[idx]
	backup := dc.Clone()

	for {
		prompt := fmt.Sprintf("Editing %s, %d binding(s) assigned.", name, len(dc.Bindings))
		choice, err := a.menu.Select(prompt, []string{
			"Add Binding",
			"Remove Binding",
			"OK",
			"Cancel",
		}, 0)
		if err != nil {
			return 0, err
		}

		switch choice {
		case 0:
			if err := a.addBinding(ctx, dc); err != nil {
				return 0, err
			}
		case 1:
			if err := a.removeBinding(dc); err != nil {
				return 0, err
			}
		case 2:
			return stateMain, nil
		default:
			*dc = backup
			a.menu.Say("Changes discarded.")
			return stateMain, nil
		}
	}
}

// addBinding runs the add-binding wizard: pick what the key should do,
// name the target, capture the key, pick the layer.
func (a *App) addBinding(ctx context.Context, dc *store.DeviceConfig) error {
	kinds := binding.AllTriggerTypes()
	labels := make([]string, 0, len(kinds)+1)
	for _, k := range kinds {
		labels = append(labels, k.Label())
	}
	labels = append(labels, "Cancel")

	idx, err := a.menu.Select("What should the key do?", labels, 0)
	if err != nil {
		return err
	}
	if idx == len(kinds) {
		return nil
	}
	kind := kinds[idx]

	value, err := a.askTriggerValue(kind)
	if err != nil {
		return err
	}

	keyboards, err := a.hardware.Keyboards()
	if err != nil {
		return fmt.Errorf("listing keyboards: %w", err)
	}
	d, present := findLive(dc.Record, keyboards)
	if !present {
		a.menu.Say("The device is not present; cannot capture a key.")
		return nil
	}

	a.menu.Say("Press the key to bind:")
	a.settle()

	capCtx, cancel := a.boundedCtx(ctx)
	press, err := a.hardware.Capture(capCtx, d)
	cancel()
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			a.menu.Say("No key press seen. Nothing added.")
			return nil
		}
		return err
	}

	b := binding.Binding{
		TriggerType:  kind,
		TriggerValue: value,
	}
	// a press the driver cannot name is stored by its numeric code
	if press.Key != "" {
		b.EventType = binding.EventKeyDown
		b.EventValue = press.Key
	} else {
		b.EventType = binding.EventScanDown
		b.EventValue = strconv.Itoa(int(press.Code))
	}

	layer, err := a.menu.Ask(`Enter the layer this binding is active in (hit enter for "default")`, binding.DefaultLayer)
	if err != nil {
		return err
	}
	b.Layer = layer

	if err := binding.ValidateBinding(b); err != nil {
		a.menu.Say("Invalid binding: %v", err)
		return nil
	}

	dc.Bindings = append(dc.Bindings, b)
	a.menu.Say("%s", b.String())
	a.logger.Info("binding added", "binding", b.String())
	return nil
}

// askTriggerValue prompts for the trigger target. The example defaults
// match AutoKey's stock sample artifacts.
func (a *App) askTriggerValue(kind binding.TriggerType) (string, error) {
	switch kind {
	case binding.TriggerPhrase:
		return a.menu.Ask(`Enter the title of the phrase in AutoKey (e.g "First phrase")`, "First phrase")
	case binding.TriggerFolder:
		return a.menu.Ask(`Enter the title of the folder in AutoKey (e.g "My Phrases")`, "My Phrases")
	case binding.TriggerScript:
		return a.menu.Ask(`Enter the title of the script in AutoKey (e.g "List Menu")`, "List Menu")
	default:
		return a.menu.Ask(`Enter the layer to switch the device to (e.g "default")`, binding.DefaultLayer)
	}
}

// removeBinding shows the paginated binding picker and removes the chosen
// row.
func (a *App) removeBinding(dc *store.DeviceConfig) error {
	if len(dc.Bindings) == 0 {
		a.menu.Say("No bindings to remove.")
		return nil
	}

	labels := make([]string, 0, len(dc.Bindings)+1)
	for _, b := range dc.Bindings {
		labels = append(labels, b.String())
	}
	labels = append(labels, "Cancel")

	idx, err := a.menu.SelectPage("Choose the binding to remove:", labels)
	if err != nil {
		return err
	}
	if idx == len(labels)-1 {
		return nil
	}

	dc.Bindings = append(dc.Bindings[:idx], dc.Bindings[idx+1:]...)
	return nil
}

// removeDevice shows the paginated device picker and drops the chosen
// device from the working state. The removal becomes durable on save.
func (a *App) removeDevice(st *store.State) (state, error) {
	if len(st.Devices) == 0 {
		a.menu.Say("No devices configured.")
		return stateMain, nil
	}

	labels := append(device.DisplayNames(st.Records()), "Cancel")
	idx, err := a.menu.SelectPage("Choose the device to remove:", labels)
	if err != nil {
		return 0, err
	}
	if idx == len(labels)-1 {
		return stateMain, nil
	}

	removed := labels[idx]
	st.Devices = append(st.Devices[:idx], st.Devices[idx+1:]...)
	a.menu.Say("Removed %s.", removed)
	a.logger.Info("device removed", "name", removed)
	return stateMain, nil
}

// findLive locates the live descriptor a stored record matches.
func findLive(rec device.Record, present []device.Descriptor) (device.Descriptor, bool) {
	for _, d := range present {
		if rec.Matches(d) {
			return d, true
		}
	}
	return device.Descriptor{}, false
}
