package autokeyd

import (
	"errors"
	"fmt"
	"time"
)

// Defaults applied by NewManager for zero-valued fields.
const (
	defaultBinary          = "autokey-gtk"
	defaultRestartDelay    = 5 * time.Second
	defaultMaxRestarts     = 3
	defaultGracefulTimeout = 10 * time.Second
	defaultStartupGrace    = 2 * time.Second
)

// Config holds settings for the managed AutoKey desktop daemon.
type Config struct {
	// Managed indicates whether the daemon lifecycle is owned by this
	// process. When false the daemon is expected to be started externally
	// (usually by the desktop session) and Start/Stop are no-ops.
	Managed bool

	// Binary is the daemon executable. Default: "autokey-gtk".
	Binary string

	// Args are extra command-line arguments passed to the daemon.
	Args []string

	// RestartOnFailure enables automatic restart if the daemon exits.
	RestartOnFailure bool

	// RestartDelay is the pause before a restart attempt. Default: 5s.
	RestartDelay time.Duration

	// MaxRestartAttempts caps restart attempts. Default: 3.
	MaxRestartAttempts int

	// GracefulTimeout is how long to wait after SIGTERM before the daemon
	// is killed. Default: 10s.
	GracefulTimeout time.Duration

	// StartupGrace is how long the daemon must stay up after launch before
	// Start reports success. Default: 2s.
	StartupGrace time.Duration
}

// DefaultConfig returns a configuration suitable for a stock AutoKey
// install. Management is off: most users already run the daemon as part
// of their desktop session.
func DefaultConfig() Config {
	return Config{
		Managed:            false,
		Binary:             defaultBinary,
		RestartOnFailure:   true,
		RestartDelay:       defaultRestartDelay,
		MaxRestartAttempts: defaultMaxRestarts,
		GracefulTimeout:    defaultGracefulTimeout,
		StartupGrace:       defaultStartupGrace,
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Managed && c.Binary == "" {
		return errors.New("daemon binary is required in managed mode")
	}
	if c.RestartDelay < 0 {
		return fmt.Errorf("restart delay cannot be negative: %v", c.RestartDelay)
	}
	if c.MaxRestartAttempts < 0 {
		return fmt.Errorf("max restart attempts cannot be negative: %d", c.MaxRestartAttempts)
	}
	if c.GracefulTimeout < 0 {
		return fmt.Errorf("graceful timeout cannot be negative: %v", c.GracefulTimeout)
	}
	if c.StartupGrace < 0 {
		return fmt.Errorf("startup grace cannot be negative: %v", c.StartupGrace)
	}
	return nil
}
