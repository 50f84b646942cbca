// Package dispatch runs the per-device event loops that turn key presses
// into trigger invocations.
//
// One Session per live device, one goroutine per Session:
//
//	┌────────────────────────────────────────────────┐
//	│ Session (one per grabbed device)               │
//	│                                                │
//	│   NextPress ──▶ snapshot layer                 │
//	│                 resolve batch on snapshot      │
//	│                 fire matches in table order:   │
//	│                   layer_switch ─▶ set layer    │
//	│                   others ──────▶ Invoker       │
//	│                 record outcomes (best effort)  │
//	│                 back to NextPress              │
//	└────────────────────────────────────────────────┘
//
// # Layer Semantics
//
// The current layer is per-session, starts as "default", and is never
// persisted. Each press resolves its whole batch against the layer as it
// was when the press arrived; a layer_switch takes effect for subsequent
// presses, not for the remainder of the batch that contained it. Firing
// order within a batch is strict table order, and a failed invocation
// never suppresses the rest.
//
// # Shutdown
//
// Run blocks in device reads. Cancelling the context closes the device,
// which unblocks the read; Run then returns nil. A read failure without
// cancellation is a disconnect and returns ErrDeviceDisconnected for that
// session only.
package dispatch
