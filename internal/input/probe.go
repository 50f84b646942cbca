package input

import (
	"context"
	"sync"

	"github.com/nerrad567/macropad-core/internal/device"
)

// Probe identifies a device by a key press: it grabs every descriptor,
// waits for the first key-down on any of them, and returns that device's
// identity. All grabs are released before returning, win or lose.
//
// The context bounds the wait; a cancelled or expired context returns its
// error. Descriptors that cannot be opened or grabbed are silently left
// out, so a probe can succeed even when some devices are busy.
func Probe(ctx context.Context, descriptors []device.Descriptor) (device.Descriptor, error) {
	keyboards := make([]*Keyboard, 0, len(descriptors))
	for _, d := range descriptors {
		kb, err := Open(d.Path)
		if err != nil {
			continue
		}
		if err := kb.Grab(); err != nil {
			kb.Close()
			continue
		}
		keyboards = append(keyboards, kb)
	}
	if len(keyboards) == 0 {
		return device.Descriptor{}, ErrNoDevices
	}

	hits := make(chan device.Descriptor, len(keyboards))
	var wg sync.WaitGroup
	for _, kb := range keyboards {
		wg.Add(1)
		go func(kb *Keyboard) {
			defer wg.Done()
			if _, err := kb.NextPress(); err != nil {
				return // closed under us, probe is over
			}
			hits <- kb.Descriptor()
		}(kb)
	}

	closeAll := func() {
		for _, kb := range keyboards {
			_ = kb.Ungrab()
			_ = kb.Close()
		}
	}

	select {
	case d := <-hits:
		closeAll()
		wg.Wait()
		return d, nil
	case <-ctx.Done():
		closeAll()
		wg.Wait()
		return device.Descriptor{}, ctx.Err()
	}
}

// Capture grabs a single device and waits for one key press on it, used by
// the binding wizard to learn which key the user wants bound. The grab is
// released before returning. A cancelled or expired context returns its
// error.
func Capture(ctx context.Context, d device.Descriptor) (Press, error) {
	kb, err := Open(d.Path)
	if err != nil {
		return Press{}, err
	}
	if err := kb.Grab(); err != nil {
		kb.Close()
		return Press{}, err
	}

	type result struct {
		press Press
		err   error
	}
	done := make(chan result, 1)
	go func() {
		p, err := kb.NextPress()
		done <- result{p, err}
	}()

	select {
	case r := <-done:
		_ = kb.Ungrab()
		_ = kb.Close()
		return r.press, r.err
	case <-ctx.Done():
		// closing unblocks the reader
		_ = kb.Ungrab()
		_ = kb.Close()
		<-done
		return Press{}, ctx.Err()
	}
}
