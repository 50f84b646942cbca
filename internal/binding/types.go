package binding

import "fmt"

// DefaultLayer is the layer every dispatch session starts on.
const DefaultLayer = "default"

// Binding maps one key event on one layer to a trigger. A binding is a
// plain row: the same five fields that are persisted, nothing derived.
type Binding struct {
	// Layer this binding belongs to. Dispatch only considers rows on the
	// session's current layer.
	Layer string

	// EventType selects which representation of a key press EventValue
	// is compared against.
	EventType EventType

	// EventValue is the exact-match value: a symbolic code name for
	// keydown (e.g. "KEY_KP7"), a decimal event code for scandown.
	EventValue string

	// TriggerType selects what firing this binding does.
	TriggerType TriggerType

	// TriggerValue is the automation artifact title, or the destination
	// layer name for layer_switch.
	TriggerValue string
}

// String renders the binding the way menus list it.
func (b Binding) String() string {
	return fmt.Sprintf("[%s] %s %s -> %s %s",
		b.Layer, b.EventType, b.EventValue, b.TriggerType, b.TriggerValue)
}

// Signal is the key-press projection of one hardware input event, carrying
// both representations a binding may target.
type Signal struct {
	// Key is the symbolic code name reported by the driver. Empty when
	// the driver has no name for the code.
	Key string

	// Code is the numeric event code.
	Code uint16
}

// EventType selects how a binding identifies a key press.
type EventType string

// EventType constants. The values are the strings written to the
// binding file.
const (
	// EventKeyDown matches on the symbolic code name of a press.
	EventKeyDown EventType = "keydown"

	// EventScanDown matches on the numeric event code of a press. Useful
	// for keys the driver has no name for.
	EventScanDown EventType = "scandown"
)

// AllEventTypes returns all valid event type values.
func AllEventTypes() []EventType {
	return []EventType{EventKeyDown, EventScanDown}
}

// Label returns the wording the add-binding wizard shows for this type.
func (et EventType) Label() string {
	switch et {
	case EventKeyDown:
		return "Symbolic key name (keydown)"
	case EventScanDown:
		return "Numeric scan code (scandown)"
	default:
		return string(et)
	}
}

// TriggerType selects what firing a binding does.
type TriggerType string

// TriggerType constants. The values are the strings written to the
// binding file.
const (
	// TriggerScript runs an automation script by title.
	TriggerScript TriggerType = "script"

	// TriggerPhrase types an automation phrase by title.
	TriggerPhrase TriggerType = "phrase"

	// TriggerFolder shows an automation folder popup by title.
	TriggerFolder TriggerType = "folder"

	// TriggerLayerSwitch changes the session's current layer instead of
	// invoking the automation daemon.
	TriggerLayerSwitch TriggerType = "layer_switch"
)

// AllTriggerTypes returns all valid trigger type values.
func AllTriggerTypes() []TriggerType {
	return []TriggerType{
		TriggerScript,
		TriggerPhrase,
		TriggerFolder,
		TriggerLayerSwitch,
	}
}

// Label returns the wording the add-binding wizard shows for this type.
func (tt TriggerType) Label() string {
	switch tt {
	case TriggerScript:
		return "Run a script"
	case TriggerPhrase:
		return "Type a phrase"
	case TriggerFolder:
		return "Show a folder popup"
	case TriggerLayerSwitch:
		return "Switch layer"
	default:
		return string(tt)
	}
}
