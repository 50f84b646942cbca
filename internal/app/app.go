package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nerrad567/macropad-core/internal/device"
	"github.com/nerrad567/macropad-core/internal/history"
	"github.com/nerrad567/macropad-core/internal/menu"
	"github.com/nerrad567/macropad-core/internal/store"
	"github.com/nerrad567/macropad-core/internal/trigger"
)

// Logger defines the logging interface for the application.
// This allows different logging implementations to be used.
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

// state identifies where the menu-driven session currently is.
type state int

const (
	stateMain state = iota
	stateAddDevice
	stateEditDevice
	stateRemoveDevice
	stateRun
	stateSaveQuit
	stateQuitNoSave
)

// Config holds the tunable timings for the interactive flows.
type Config struct {
	// Settle is the pause before grabbing devices, giving the keystroke
	// that drove the menu time to drain to its old consumer.
	Settle time.Duration

	// ProbeTimeout bounds how long a probe or key capture waits for a
	// press. Zero waits indefinitely.
	ProbeTimeout time.Duration
}

// App is the interactive application: an explicit state machine over the
// menus, the persisted state, and the hardware. Edits accumulate in memory
// and become durable only on "Save and Run" or "Save and quit".
type App struct {
	cfg      Config
	menu     *menu.Menu
	store    *store.Store
	hardware Hardware
	invoker  trigger.Invoker
	history  history.Repository
	logger   Logger
}

// New creates the application.
func New(cfg Config, m *menu.Menu, st *store.Store, hw Hardware, inv trigger.Invoker, hist history.Repository) *App {
	return &App{
		cfg:      cfg,
		menu:     m,
		store:    st,
		hardware: hw,
		invoker:  inv,
		history:  hist,
		logger:   noopLogger{},
	}
}

// SetLogger sets the logger for the application.
func (a *App) SetLogger(logger Logger) {
	a.logger = logger
}

// Run drives the menu session until the user quits, the input stream
// ends, or the context is cancelled. All three are clean exits; the only
// errors are an unrecoverable binding file and save failures.
func (a *App) Run(ctx context.Context) error {
	working, err := a.loadOrRecover()
	if err != nil {
		return err
	}

	current := stateMain
	for {
		select {
		case <-ctx.Done():
			a.logger.Info("interrupted")
			return nil
		default:
		}

		var err error
		switch current {
		case stateMain:
			current, err = a.mainMenu(working)
		case stateAddDevice:
			current, err = a.addDevice(ctx, working)
		case stateEditDevice:
			current, err = a.editDevice(ctx, working)
		case stateRemoveDevice:
			current, err = a.removeDevice(working)
		case stateRun:
			current, err = a.runSessions(ctx, working)
		case stateSaveQuit:
			if err := a.store.Save(*working); err != nil {
				return fmt.Errorf("saving on quit: %w", err)
			}
			a.menu.Say("Saved %d device(s).", len(working.Devices))
			a.menu.Say("Done")
			return nil
		case stateQuitNoSave:
			a.menu.Say("Done. No save was made.")
			return nil
		}

		if err != nil {
			switch {
			case errors.Is(err, context.Canceled):
				a.logger.Info("interrupted")
				return nil
			case errors.Is(err, menu.ErrInputClosed):
				a.logger.Info("input stream closed, exiting without saving")
				return nil
			default:
				return err
			}
		}
	}
}

// mainMenu shows the device summary and the top-level choices.
func (a *App) mainMenu(st *store.State) (state, error) {
	if len(st.Devices) > 0 {
		names := device.DisplayNames(st.Records())
		a.menu.Say("Devices found:\n%s", strings.Join(names, "\n"))
	} else {
		a.menu.Say("No devices configured.")
	}

	idx, err := a.menu.Select("", []string{
		"Save and Run",
		"Add Device",
		"Edit Device",
		"Remove Device",
		"Save and quit",
		"Quit without saving",
	}, 0)
	if err != nil {
		return 0, err
	}

	switch idx {
	case 0:
		return stateRun, nil
	case 1:
		return stateAddDevice, nil
	case 2:
		return stateEditDevice, nil
	case 3:
		return stateRemoveDevice, nil
	case 4:
		return stateSaveQuit, nil
	default:
		return stateQuitNoSave, nil
	}
}

// loadOrRecover loads the persisted state. An unreadable binding file
// offers the recovery menu: wipe it, retry the load, or quit. Quitting
// with the file still unreadable is the only path that refuses to start.
func (a *App) loadOrRecover() (*store.State, error) {
	for {
		st, err := a.store.Load()
		if err == nil {
			return &st, nil
		}
		if !errors.Is(err, store.ErrConfigUnreadable) {
			return nil, err
		}

		a.logger.Error("binding file unreadable", "path", a.store.Path(), "error", err)
		a.menu.Say("The binding file %s could not be read:\n  %v", a.store.Path(), err)

		idx, merr := a.menu.Select("What should happen to it?", []string{
			"Wipe it and start fresh",
			"Retry reading it",
			"Quit",
		}, 2)
		if merr != nil {
			return nil, fmt.Errorf("no recovery chosen: %w", err)
		}

		switch idx {
		case 0:
			if werr := a.store.Wipe(); werr != nil {
				return nil, fmt.Errorf("wiping binding file: %w", werr)
			}
			a.menu.Say("Wiped. Starting fresh.")
			a.logger.Warn("binding file wiped", "path", a.store.Path())
			return &store.State{}, nil
		case 1:
			continue
		default:
			return nil, err
		}
	}
}

// settle pauses before a grab so the keystroke that drove the menu drains
// to its old consumer instead of arriving as the first captured event.
func (a *App) settle() {
	if a.cfg.Settle > 0 {
		time.Sleep(a.cfg.Settle)
	}
}

// boundedCtx derives the wait context for probes and captures.
func (a *App) boundedCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.cfg.ProbeTimeout > 0 {
		return context.WithTimeout(ctx, a.cfg.ProbeTimeout)
	}
	return context.WithCancel(ctx)
}
