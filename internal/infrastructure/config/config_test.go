package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_ValidConfig(t *testing.T) {
	// Create a temporary config file
	content := `
data:
  dir: "/tmp/macropad-test"
input:
  settle_millis: 250
autokey:
  binary: "/usr/local/bin/autokey-run"
  managed: true
history:
  enabled: false
logging:
  level: "debug"
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Data.Dir != "/tmp/macropad-test" {
		t.Errorf("Data.Dir = %q, want %q", cfg.Data.Dir, "/tmp/macropad-test")
	}

	if cfg.Input.SettleMillis != 250 {
		t.Errorf("Input.SettleMillis = %d, want 250", cfg.Input.SettleMillis)
	}

	if cfg.AutoKey.Binary != "/usr/local/bin/autokey-run" {
		t.Errorf("AutoKey.Binary = %q, want %q", cfg.AutoKey.Binary, "/usr/local/bin/autokey-run")
	}

	if !cfg.AutoKey.Managed {
		t.Error("AutoKey.Managed = false, want true")
	}

	if cfg.History.Enabled {
		t.Error("History.Enabled = true, want false")
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v, want defaults for missing file", err)
	}

	if cfg.AutoKey.Binary != "autokey-run" {
		t.Errorf("AutoKey.Binary = %q, want default %q", cfg.AutoKey.Binary, "autokey-run")
	}

	if cfg.Data.Dir == "" {
		t.Error("expected Data.Dir to be resolved to the user config dir")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("invalid: [yaml: content"), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	content := `
data:
  dir: "/tmp/macropad-test"
input:
  settle_millis: -1
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("Load() expected validation error for negative settle_millis, got nil")
	}
}

func TestLoad_ResolvesHistoryPath(t *testing.T) {
	content := `
data:
  dir: "/tmp/macropad-test"
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := filepath.Join("/tmp/macropad-test", "history.db")
	if cfg.History.Path != want {
		t.Errorf("History.Path = %q, want %q", cfg.History.Path, want)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		cfg := defaultConfig()
		cfg.Data.Dir = "/tmp/macropad-test"
		cfg.History.Path = "/tmp/macropad-test/history.db"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "missing data dir",
			mutate:  func(c *Config) { c.Data.Dir = "" },
			wantErr: true,
		},
		{
			name:    "negative settle",
			mutate:  func(c *Config) { c.Input.SettleMillis = -10 },
			wantErr: true,
		},
		{
			name:    "negative probe timeout",
			mutate:  func(c *Config) { c.Input.ProbeTimeoutSeconds = -1 },
			wantErr: true,
		},
		{
			name:    "missing autokey binary",
			mutate:  func(c *Config) { c.AutoKey.Binary = "" },
			wantErr: true,
		},
		{
			name: "managed without daemon binary",
			mutate: func(c *Config) {
				c.AutoKey.Managed = true
				c.AutoKey.DaemonBinary = ""
			},
			wantErr: true,
		},
		{
			name:    "graceful timeout too small",
			mutate:  func(c *Config) { c.AutoKey.GracefulTimeoutSeconds = 0 },
			wantErr: true,
		},
		{
			name: "history enabled without path",
			mutate: func(c *Config) {
				c.History.Enabled = true
				c.History.Path = ""
			},
			wantErr: true,
		},
		{
			name:    "negative retention",
			mutate:  func(c *Config) { c.History.RetentionDays = -1 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Durations(t *testing.T) {
	cfg := &Config{
		Input: InputConfig{
			SettleMillis:        500,
			ProbeTimeoutSeconds: 60,
		},
		AutoKey: AutoKeyConfig{
			RestartDelaySeconds:    5,
			GracefulTimeoutSeconds: 10,
		},
		History: HistoryConfig{
			RetentionDays: 2,
		},
	}

	if got := cfg.GetSettleDelay().Milliseconds(); got != 500 {
		t.Errorf("GetSettleDelay() = %vms, want 500", got)
	}

	if got := cfg.GetProbeTimeout().Seconds(); got != 60 {
		t.Errorf("GetProbeTimeout() = %vs, want 60", got)
	}

	if got := cfg.GetRestartDelay().Seconds(); got != 5 {
		t.Errorf("GetRestartDelay() = %vs, want 5", got)
	}

	if got := cfg.GetGracefulTimeout().Seconds(); got != 10 {
		t.Errorf("GetGracefulTimeout() = %vs, want 10", got)
	}

	if got := cfg.GetRetention().Hours(); got != 48 {
		t.Errorf("GetRetention() = %vh, want 48", got)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	cfg := defaultConfig()

	// Set environment variables
	t.Setenv("MACROPAD_DATA_DIR", "/custom/data")
	t.Setenv("MACROPAD_AUTOKEY_BINARY", "/opt/autokey/autokey-run")
	t.Setenv("MACROPAD_AUTOKEY_DAEMON_BINARY", "autokey-qt")
	t.Setenv("MACROPAD_HISTORY_PATH", "/custom/history.db")
	t.Setenv("MACROPAD_LOGGING_LEVEL", "debug")
	t.Setenv("MACROPAD_LOGGING_OUTPUT", "/custom/macropad.log")

	applyEnvOverrides(cfg)

	if cfg.Data.Dir != "/custom/data" {
		t.Errorf("Data.Dir = %q, want %q", cfg.Data.Dir, "/custom/data")
	}

	if cfg.AutoKey.Binary != "/opt/autokey/autokey-run" {
		t.Errorf("AutoKey.Binary = %q, want %q", cfg.AutoKey.Binary, "/opt/autokey/autokey-run")
	}

	if cfg.AutoKey.DaemonBinary != "autokey-qt" {
		t.Errorf("AutoKey.DaemonBinary = %q, want %q", cfg.AutoKey.DaemonBinary, "autokey-qt")
	}

	if cfg.History.Path != "/custom/history.db" {
		t.Errorf("History.Path = %q, want %q", cfg.History.Path, "/custom/history.db")
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}

	if cfg.Logging.Output != "/custom/macropad.log" {
		t.Errorf("Logging.Output = %q, want %q", cfg.Logging.Output, "/custom/macropad.log")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir available: %v", err)
	}

	got, err := expandHome("~/macropad-data")
	if err != nil {
		t.Fatalf("expandHome() error = %v", err)
	}

	if !strings.HasPrefix(got, home) {
		t.Errorf("expandHome() = %q, want prefix %q", got, home)
	}

	passthrough, err := expandHome("/absolute/path")
	if err != nil {
		t.Fatalf("expandHome() error = %v", err)
	}

	if passthrough != "/absolute/path" {
		t.Errorf("expandHome() = %q, want unchanged path", passthrough)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.AutoKey.Binary != "autokey-run" {
		t.Errorf("defaultConfig AutoKey.Binary = %q, want %q", cfg.AutoKey.Binary, "autokey-run")
	}

	if !cfg.History.Enabled {
		t.Error("defaultConfig should enable history")
	}

	if cfg.Input.SettleMillis != 500 {
		t.Errorf("defaultConfig Input.SettleMillis = %d, want 500", cfg.Input.SettleMillis)
	}

	if cfg.Logging.Output != "stderr" {
		t.Errorf("defaultConfig Logging.Output = %q, want %q", cfg.Logging.Output, "stderr")
	}
}
