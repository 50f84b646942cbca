// Package process provides generic subprocess lifecycle management.
//
// This package manages long-running child processes that macropad depends
// on, such as the AutoKey desktop daemon when it runs in managed mode.
//
// Features:
//   - Start/stop subprocess with graceful shutdown (SIGTERM, then SIGKILL)
//   - Automatic restart on failure with configurable delay and cap
//   - Log capture from subprocess stdout/stderr
//   - Process-group signalling so children go down with the parent
//
// Example usage:
//
//	mgr := process.NewManager(process.Config{
//	    Name:               "autokey",
//	    Binary:             "autokey-gtk",
//	    RestartOnFailure:   true,
//	    RestartDelay:       5 * time.Second,
//	    MaxRestartAttempts: 3,
//	})
//
//	if err := mgr.Start(); err != nil {
//	    log.Fatal(err)
//	}
//	defer mgr.Stop()
package process
