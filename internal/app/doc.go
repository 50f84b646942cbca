// Package app drives the interactive configurator: a menu loop for
// managing devices and their bindings, and the run mode that turns the
// saved configuration into live dispatch sessions.
//
// The loop is a small state machine over the main menu:
//
//	                ┌──────────────────────────────┐
//	                │          Main menu           │
//	                └──────────────────────────────┘
//	                  │     │       │      │    │
//	     Save and Run │ Add │  Edit │Rm   │    │ Quit without saving
//	                  ▼     ▼       ▼      ▼    ▼
//	            sessions  wizard  editor  pick  exit (no write)
//	                  │     │       │      │
//	                  └─────┴───┬───┴──────┘
//	                            ▼
//	                        Main menu
//
// All edits happen on a working copy of the persisted state. Nothing is
// written until Save and Run or Save and quit; Quit without saving and
// Ctrl+C discard everything since the last save.
//
// # Hardware
//
// The wizard and run flows reach the input layer through the Hardware
// interface, so the whole state machine is testable with a scripted menu
// and fake devices. NewHardware returns the evdev-backed implementation
// used outside tests.
//
// # Usage
//
//	a := app.New(app.Config{}, m, st, app.NewHardware(), invoker, hist)
//	a.SetLogger(log)
//	if err := a.Run(ctx); err != nil {
//	    return err
//	}
package app
