package binding

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseEventType converts a persisted token to an EventType.
func ParseEventType(s string) (EventType, error) {
	switch EventType(s) {
	case EventKeyDown, EventScanDown:
		return EventType(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidEventType, s)
	}
}

// ParseTriggerType converts a persisted token to a TriggerType.
func ParseTriggerType(s string) (TriggerType, error) {
	switch TriggerType(s) {
	case TriggerScript, TriggerPhrase, TriggerFolder, TriggerLayerSwitch:
		return TriggerType(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTriggerType, s)
	}
}

// ValidateBinding checks a binding row before it is accepted into a table
// or persisted. Returns the first problem found.
func ValidateBinding(b Binding) error {
	if strings.TrimSpace(b.Layer) == "" {
		return fmt.Errorf("%w: layer cannot be empty", ErrInvalidBinding)
	}
	if _, err := ParseEventType(string(b.EventType)); err != nil {
		return err
	}
	if b.EventValue == "" {
		return fmt.Errorf("%w: event value cannot be empty", ErrInvalidBinding)
	}
	if b.EventType == EventScanDown {
		if _, err := strconv.ParseUint(b.EventValue, 10, 16); err != nil {
			return fmt.Errorf("%w: scandown value %q is not a decimal event code",
				ErrInvalidBinding, b.EventValue)
		}
	}
	if _, err := ParseTriggerType(string(b.TriggerType)); err != nil {
		return err
	}
	if b.TriggerValue == "" {
		return fmt.Errorf("%w: trigger value cannot be empty", ErrInvalidBinding)
	}
	return nil
}
