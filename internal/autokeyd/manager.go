package autokeyd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nerrad567/macropad-core/internal/process"
)

// settlePollInterval is how often the startup grace loop checks that the
// daemon is still alive.
const settlePollInterval = 100 * time.Millisecond

// Logger defines the logging interface for the daemon manager.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Manager manages the AutoKey desktop daemon process.
type Manager struct {
	config  Config
	process *process.Manager
	logger  Logger
}

// NewManager creates a new daemon manager.
func NewManager(cfg Config) (*Manager, error) {
	// Apply defaults for zero values
	if cfg.Binary == "" {
		cfg.Binary = defaultBinary
	}
	if cfg.RestartDelay == 0 {
		cfg.RestartDelay = defaultRestartDelay
	}
	if cfg.MaxRestartAttempts == 0 {
		cfg.MaxRestartAttempts = defaultMaxRestarts
	}
	if cfg.GracefulTimeout == 0 {
		cfg.GracefulTimeout = defaultGracefulTimeout
	}
	if cfg.StartupGrace == 0 {
		cfg.StartupGrace = defaultStartupGrace
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid autokey daemon config: %w", err)
	}

	return &Manager{
		config: cfg,
		logger: noopLogger{},
	}, nil
}

// SetLogger sets the logger for the manager.
func (m *Manager) SetLogger(logger Logger) {
	m.logger = logger
}

// Start launches the AutoKey daemon and waits out a short grace period to
// confirm it did not exit immediately. In unmanaged mode it does nothing.
func (m *Manager) Start(ctx context.Context) error {
	if !m.config.Managed {
		m.logger.Info("autokey daemon management disabled, expecting external daemon")
		return nil
	}

	m.logger.Info("starting autokey daemon",
		"binary", m.config.Binary,
		"args", m.config.Args,
	)

	procConfig := process.Config{
		Name:               "autokey",
		Binary:             m.config.Binary,
		Args:               m.config.Args,
		RestartOnFailure:   m.config.RestartOnFailure,
		RestartDelay:       m.config.RestartDelay,
		MaxRestartAttempts: m.config.MaxRestartAttempts,
		GracefulTimeout:    m.config.GracefulTimeout,
		OnStart: func() {
			m.logger.Info("autokey daemon started", "pid", m.process.PID())
		},
		OnStop: func(err error) {
			if err != nil {
				m.logger.Warn("autokey daemon stopped", "error", err)
			} else {
				m.logger.Info("autokey daemon stopped")
			}
		},
		OnRestart: func(attempt int) {
			m.logger.Info("autokey daemon restarting", "attempt", attempt)
		},
	}

	m.process = process.NewManager(procConfig)
	m.process.SetLogger(m.logger)

	if err := m.process.Start(); err != nil {
		return fmt.Errorf("starting autokey daemon: %w", err)
	}

	if err := m.waitForSettle(ctx); err != nil {
		// Stop the process so a restart loop cannot resurrect it
		if stopErr := m.process.Stop(); stopErr != nil {
			m.logger.Warn("error stopping autokey daemon after failed startup", "error", stopErr)
		}
		return fmt.Errorf("autokey daemon failed to start: %w", err)
	}

	m.logger.Info("autokey daemon ready", "pid", m.process.PID())

	return nil
}

// waitForSettle confirms the daemon survives its startup grace period.
// The daemon exposes no readiness endpoint to poll, so staying alive while
// its desktop service registers is the best available signal.
func (m *Manager) waitForSettle(ctx context.Context) error {
	deadline := time.Now().Add(m.config.StartupGrace)

	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled while waiting for autokey daemon: %w", ctx.Err())
		case <-time.After(settlePollInterval):
		}

		if !m.process.IsRunning() {
			if lastErr := m.process.LastError(); lastErr != nil {
				return fmt.Errorf("daemon exited during startup: %w", lastErr)
			}
			return errors.New("daemon exited during startup")
		}
	}

	return nil
}

// Stop gracefully stops the daemon. In unmanaged mode it does nothing.
func (m *Manager) Stop() error {
	if !m.config.Managed || m.process == nil {
		return nil
	}

	m.logger.Info("stopping autokey daemon")

	return m.process.Stop()
}

// IsRunning reports whether the daemon is currently running. In unmanaged
// mode an external daemon is assumed to be up; trigger invocations surface
// their own failures if it is not.
func (m *Manager) IsRunning() bool {
	if !m.config.Managed {
		return true
	}
	if m.process == nil {
		return false
	}
	return m.process.IsRunning()
}

// IsManaged returns true if this manager owns the daemon lifecycle.
func (m *Manager) IsManaged() bool {
	return m.config.Managed
}

// PID returns the daemon's process ID, or 0 if it is not running under
// this manager.
func (m *Manager) PID() int {
	if m.process == nil {
		return 0
	}
	return m.process.PID()
}
