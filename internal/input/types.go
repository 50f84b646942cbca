package input

import (
	"strings"

	evdev "github.com/holoplot/go-evdev"
)

// Key event values as reported by the kernel.
const (
	keyRelease = 0
	keyPress   = 1
	keyRepeat  = 2
)

// Press is one key-down event with both representations a binding may
// target: the symbolic code name and the numeric code.
type Press struct {
	// Key is the symbolic code name, e.g. "KEY_KP7". Empty when the
	// driver has no name for the code.
	Key string

	// Code is the numeric event code.
	Code uint16
}

// pressFromEvent projects a raw event onto a Press. Only key-down events
// qualify: releases, repeats, and non-key events report false.
func pressFromEvent(ev *evdev.InputEvent) (Press, bool) {
	if ev.Type != evdev.EV_KEY || ev.Value != keyPress {
		return Press{}, false
	}

	key := ev.CodeName()
	if key == "" || strings.HasPrefix(key, "UNKNOWN") {
		// No symbolic name for this code; scandown bindings still work.
		key = ""
	}
	return Press{Key: key, Code: uint16(ev.Code)}, true
}
