// Package store persists the device and binding configuration as one CSV
// file per user.
//
// The file is line oriented. A device row opens a block; binding rows
// attach to the most recent device row:
//
//	device,1,name_and_local_address,FooPad,usb-0000:00:14.0-3/input0
//	binding,default,keydown,KEY_KP7,phrase,home address
//	binding,default,keydown,KEY_KP8,layer_switch,nav
//	device,1,full_address,BarPad,usb-0000:00:14.0-7/input1
//
// Values containing commas, quotes, or newlines are quoted the standard
// CSV way (RFC 4180), so automation titles are unrestricted.
//
// # Strictness
//
// Parsing rejects anything it does not fully understand: an unknown row
// token, a wrong field count, a bad enum value, a non-numeric scandown
// value, or a binding row before any device row. All of it surfaces as
// ErrConfigUnreadable. Dropping rows silently would fire the wrong macros
// later, which is worse than making the user decide.
//
// A missing file is different from an unreadable one: it loads as an
// empty configuration.
//
// # Atomicity
//
// Save encodes to memory, writes a temp file next to the target, and
// renames it into place. A crash leaves the old file or the new one,
// never a half-written mix.
//
// # Usage
//
//	st := store.New(cfg.BindingsPath())
//	state, err := st.Load()
//	if errors.Is(err, store.ErrConfigUnreadable) {
//	    // wipe / retry / quit prompt
//	}
package store
