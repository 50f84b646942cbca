package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for macropad.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Data    DataConfig    `yaml:"data"`
	Input   InputConfig   `yaml:"input"`
	AutoKey AutoKeyConfig `yaml:"autokey"`
	History HistoryConfig `yaml:"history"`
	Logging LoggingConfig `yaml:"logging"`
}

// DataConfig locates the per-user data directory holding the binding file.
type DataConfig struct {
	// Dir is the data directory. Empty means <user config dir>/macropad
	// (~/.config/macropad on most Linux systems). A leading "~/" is
	// expanded to the user's home directory.
	Dir string `yaml:"dir"`
}

// InputConfig contains input-device timing settings.
type InputConfig struct {
	// SettleMillis is the pause before grabbing devices, so the keystroke
	// that selected a menu entry drains to its normal consumer first.
	SettleMillis int `yaml:"settle_millis"`

	// ProbeTimeoutSeconds bounds how long the add-device probe waits for a
	// key press. 0 waits indefinitely.
	ProbeTimeoutSeconds int `yaml:"probe_timeout_seconds"`
}

// AutoKeyConfig contains settings for the AutoKey automation daemon.
type AutoKeyConfig struct {
	// Binary is the trigger invocation executable.
	// Default: "autokey-run"
	Binary string `yaml:"binary"`

	// Managed indicates whether macropad should manage the desktop daemon's
	// lifecycle. If false, the daemon is expected to be running externally
	// (e.g. started by the desktop session).
	Managed bool `yaml:"managed"`

	// DaemonBinary is the desktop daemon executable used in managed mode.
	// Default: "autokey-gtk"
	DaemonBinary string `yaml:"daemon_binary"`

	// RestartOnFailure enables automatic restart if the managed daemon exits.
	// Default: true
	RestartOnFailure bool `yaml:"restart_on_failure"`

	// RestartDelaySeconds is the time to wait before restarting (in seconds).
	// Default: 5
	RestartDelaySeconds int `yaml:"restart_delay_seconds"`

	// MaxRestartAttempts limits restart attempts. 0 means unlimited.
	// Default: 3
	MaxRestartAttempts int `yaml:"max_restart_attempts"`

	// GracefulTimeoutSeconds is how long to wait after SIGTERM before the
	// managed daemon is killed. Default: 10
	GracefulTimeoutSeconds int `yaml:"graceful_timeout_seconds"`
}

// HistoryConfig contains invocation-history database settings.
type HistoryConfig struct {
	Enabled bool `yaml:"enabled"`

	// Path is the SQLite file. Empty means <data dir>/history.db.
	Path string `yaml:"path"`

	// RetentionDays is how long invocation records are kept before pruning.
	// 0 disables pruning.
	RetentionDays int `yaml:"retention_days"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// A missing file is not an error: the tool is usable with zero configuration,
// so defaults plus environment variables apply. Any other read or parse
// failure is reported.
//
// Environment variables follow the pattern: MACROPAD_SECTION_KEY
// For example: MACROPAD_DATA_DIR, MACROPAD_AUTOKEY_BINARY
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If the file cannot be parsed or validation fails
func Load(path string) (*Config, error) {
	// Start with defaults
	cfg := defaultConfig()

	// Read and parse YAML file
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Resolve paths that depend on the user's home
	if err := resolvePaths(cfg); err != nil {
		return nil, fmt.Errorf("resolving paths: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			SettleMillis:        500,
			ProbeTimeoutSeconds: 60,
		},
		AutoKey: AutoKeyConfig{
			Binary:                 "autokey-run",
			DaemonBinary:           "autokey-gtk",
			RestartOnFailure:       true,
			RestartDelaySeconds:    5,
			MaxRestartAttempts:     3,
			GracefulTimeoutSeconds: 10,
		},
		History: HistoryConfig{
			Enabled:       true,
			RetentionDays: 30,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: MACROPAD_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	// Data
	if v := os.Getenv("MACROPAD_DATA_DIR"); v != "" {
		cfg.Data.Dir = v
	}

	// AutoKey
	if v := os.Getenv("MACROPAD_AUTOKEY_BINARY"); v != "" {
		cfg.AutoKey.Binary = v
	}
	if v := os.Getenv("MACROPAD_AUTOKEY_DAEMON_BINARY"); v != "" {
		cfg.AutoKey.DaemonBinary = v
	}

	// History
	if v := os.Getenv("MACROPAD_HISTORY_PATH"); v != "" {
		cfg.History.Path = v
	}

	// Logging
	if v := os.Getenv("MACROPAD_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("MACROPAD_LOGGING_OUTPUT"); v != "" {
		cfg.Logging.Output = v
	}
}

// resolvePaths fills in home-relative defaults once overrides are settled.
func resolvePaths(cfg *Config) error {
	if cfg.Data.Dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return fmt.Errorf("locating user config dir: %w", err)
		}
		cfg.Data.Dir = filepath.Join(base, "macropad")
	} else {
		dir, err := expandHome(cfg.Data.Dir)
		if err != nil {
			return err
		}
		cfg.Data.Dir = dir
	}

	if cfg.History.Path == "" {
		cfg.History.Path = filepath.Join(cfg.Data.Dir, "history.db")
	} else {
		path, err := expandHome(cfg.History.Path)
		if err != nil {
			return err
		}
		cfg.History.Path = path
	}

	return nil
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home dir: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// Validate checks the configuration for errors.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	// Data validation
	if c.Data.Dir == "" {
		errs = append(errs, "data.dir is required")
	}

	// Input validation
	if c.Input.SettleMillis < 0 {
		errs = append(errs, "input.settle_millis must not be negative")
	}
	if c.Input.ProbeTimeoutSeconds < 0 {
		errs = append(errs, "input.probe_timeout_seconds must not be negative")
	}

	// AutoKey validation
	if c.AutoKey.Binary == "" {
		errs = append(errs, "autokey.binary is required")
	}
	if c.AutoKey.Managed && c.AutoKey.DaemonBinary == "" {
		errs = append(errs, "autokey.daemon_binary is required when autokey.managed is true")
	}
	if c.AutoKey.RestartDelaySeconds < 0 {
		errs = append(errs, "autokey.restart_delay_seconds must not be negative")
	}
	if c.AutoKey.MaxRestartAttempts < 0 {
		errs = append(errs, "autokey.max_restart_attempts must not be negative")
	}
	if c.AutoKey.GracefulTimeoutSeconds < 1 {
		errs = append(errs, "autokey.graceful_timeout_seconds must be at least 1")
	}

	// History validation
	if c.History.Enabled && c.History.Path == "" {
		errs = append(errs, "history.path is required when history.enabled is true")
	}
	if c.History.RetentionDays < 0 {
		errs = append(errs, "history.retention_days must not be negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// BindingsPath returns the persisted binding file location.
func (c *Config) BindingsPath() string {
	return filepath.Join(c.Data.Dir, "bindings.csv")
}

// GetSettleDelay returns the pre-grab settle pause as a Duration.
func (c *Config) GetSettleDelay() time.Duration {
	return time.Duration(c.Input.SettleMillis) * time.Millisecond
}

// GetProbeTimeout returns the add-device probe timeout as a Duration.
// Zero means no timeout.
func (c *Config) GetProbeTimeout() time.Duration {
	return time.Duration(c.Input.ProbeTimeoutSeconds) * time.Second
}

// GetRestartDelay returns the managed daemon restart delay as a Duration.
func (c *Config) GetRestartDelay() time.Duration {
	return time.Duration(c.AutoKey.RestartDelaySeconds) * time.Second
}

// GetGracefulTimeout returns the managed daemon stop timeout as a Duration.
func (c *Config) GetGracefulTimeout() time.Duration {
	return time.Duration(c.AutoKey.GracefulTimeoutSeconds) * time.Second
}

// GetRetention returns the history retention window as a Duration.
// Zero means pruning is disabled.
func (c *Config) GetRetention() time.Duration {
	return time.Duration(c.History.RetentionDays) * 24 * time.Hour
}
