// macropad - secondary-keyboard macro mapper
//
// This is the main entry point for the macropad application. macropad
// turns a spare keyboard or keypad into a macro board: it grabs the
// device away from the desktop, maps key presses to AutoKey scripts,
// phrases, and folders through a layered binding table, and provides the
// interactive menu for configuring it all.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	_ "github.com/nerrad567/macropad-core/migrations"

	"github.com/nerrad567/macropad-core/internal/app"
	"github.com/nerrad567/macropad-core/internal/autokeyd"
	"github.com/nerrad567/macropad-core/internal/history"
	"github.com/nerrad567/macropad-core/internal/infrastructure/config"
	"github.com/nerrad567/macropad-core/internal/infrastructure/database"
	"github.com/nerrad567/macropad-core/internal/infrastructure/logging"
	"github.com/nerrad567/macropad-core/internal/menu"
	"github.com/nerrad567/macropad-core/internal/store"
	"github.com/nerrad567/macropad-core/internal/trigger"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

func main() {
	configPath := flag.String("config", "", "path to the configuration file")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("macropad %s (commit %s, built %s)\n", version, commit, date)
		return
	}

	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, *configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
func run(ctx context.Context, configFlag string) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting macropad",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	configPath := getConfigPath(configFlag)
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)

	// Open the invocation history store (optional)
	var hist history.Repository = history.NoopRepository{}
	if cfg.History.Enabled {
		db, err := database.Open(database.DefaultConfig(cfg.History.Path))
		if err != nil {
			return fmt.Errorf("opening history database: %w", err)
		}
		defer func() {
			log.Info("closing history database")
			if closeErr := db.Close(); closeErr != nil {
				log.Error("error closing history database", "error", closeErr)
			}
		}()
		log.Info("history database connected", "path", cfg.History.Path)

		if err := db.Migrate(ctx); err != nil {
			return fmt.Errorf("running history migrations: %w", err)
		}

		repo := history.NewSQLiteRepository(db.DB)
		if cfg.History.RetentionDays > 0 {
			pruned, pruneErr := repo.Prune(ctx, time.Now().UTC().Add(-cfg.GetRetention()))
			if pruneErr != nil {
				log.Warn("history prune failed", "error", pruneErr)
			} else if pruned > 0 {
				log.Info("history pruned",
					"removed", pruned,
					"retention_days", cfg.History.RetentionDays,
				)
			}
		}
		hist = repo
	} else {
		log.Info("invocation history disabled")
	}

	// Start the AutoKey desktop daemon (if managed)
	if cfg.AutoKey.Managed {
		akManager, err := startAutoKey(ctx, cfg, log)
		if err != nil {
			return fmt.Errorf("starting autokey daemon: %w", err)
		}
		defer func() {
			log.Info("stopping autokey daemon")
			if stopErr := akManager.Stop(); stopErr != nil {
				log.Error("error stopping autokey daemon", "error", stopErr)
			}
		}()
	} else {
		log.Info("autokey daemon unmanaged, assuming it is already running")
	}

	st := store.New(cfg.BindingsPath())
	log.Info("binding file", "path", st.Path())

	invoker := trigger.NewAutoKey(cfg.AutoKey.Binary)

	a := app.New(app.Config{
		Settle:       cfg.GetSettleDelay(),
		ProbeTimeout: cfg.GetProbeTimeout(),
	}, menu.New(os.Stdin, os.Stdout), st, app.NewHardware(), invoker, hist)
	a.SetLogger(log)

	if err := a.Run(ctx); err != nil {
		return err
	}

	log.Info("macropad stopped")
	return nil
}

// getConfigPath returns the configuration file path. Priority order:
// --config flag, MACROPAD_CONFIG environment variable, then the per-user
// default. A missing file is fine; defaults apply.
func getConfigPath(configFlag string) string {
	if configFlag != "" {
		return configFlag
	}
	if path := os.Getenv("MACROPAD_CONFIG"); path != "" {
		return path
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(base, "macropad", "config.yaml")
}

// startAutoKey initialises and starts the managed AutoKey desktop daemon.
func startAutoKey(ctx context.Context, cfg *config.Config, log *logging.Logger) (*autokeyd.Manager, error) {
	akCfg := autokeyd.Config{
		Managed:            cfg.AutoKey.Managed,
		Binary:             cfg.AutoKey.DaemonBinary,
		RestartOnFailure:   cfg.AutoKey.RestartOnFailure,
		RestartDelay:       cfg.GetRestartDelay(),
		MaxRestartAttempts: cfg.AutoKey.MaxRestartAttempts,
		GracefulTimeout:    cfg.GetGracefulTimeout(),
	}

	manager, err := autokeyd.NewManager(akCfg)
	if err != nil {
		return nil, fmt.Errorf("creating autokey daemon manager: %w", err)
	}
	manager.SetLogger(log)

	log.Info("starting autokey daemon", "binary", akCfg.Binary)
	if err := manager.Start(ctx); err != nil {
		return nil, err
	}
	log.Info("autokey daemon started", "pid", manager.PID())

	return manager, nil
}
