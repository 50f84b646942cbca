// Package binding holds the per-device binding tables that map key events
// to automation triggers.
//
// A binding is one row: on layer L, when event E arrives, fire trigger T.
// Rows live in an ordered Table per device; dispatch walks the table top
// to bottom and fires every row that matches, in order. Order is authored
// by the user and survives load/save untouched.
//
// Event selectors:
//
//	keydown   exact match on the symbolic code name ("KEY_KP7")
//	scandown  exact match on the numeric event code ("71")
//
// Trigger kinds:
//
//	script, phrase, folder  invoke the automation daemon by artifact title
//	layer_switch            change the session's current layer
//
// # Key Types
//
//   - Binding: One persisted row (layer, event selector, trigger)
//   - Table: Ordered rows for one device, with edit and resolve operations
//   - Signal: Key-press projection carrying both symbolic and numeric codes
//
// # Thread Safety
//
// Tables are not synchronised. Each dispatch session owns its table; the
// edit wizard only runs while no session is live.
//
// # Usage
//
//	table := binding.NewTable(cfg.Bindings)
//	matches := table.Resolve("default", binding.Signal{Key: "KEY_KP7", Code: 71})
//	for _, b := range matches {
//	    // fire b in order
//	}
package binding
