// Package autokeyd provides management of the AutoKey desktop daemon process.
//
// AutoKey owns macro execution: scripts, phrases and folder popups all run
// inside its desktop process. This package optionally manages that daemon
// as a subprocess, providing:
//
//   - Configuration-driven startup (binary and arguments from config.yaml)
//   - Automatic restart on failure
//   - Graceful shutdown coordination
//
// Management is opt-in. By default the daemon is expected to be running
// already, started by the desktop session, and this package does nothing.
//
// Example configuration (in config.yaml):
//
//	autokey:
//	  managed: true
//	  daemon_binary: "autokey-gtk"
//	  restart_on_failure: true
//
// When management is enabled the daemon is spawned at startup, monitored
// for the lifetime of the session, and stopped when the menu exits.
package autokeyd
