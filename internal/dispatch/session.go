package dispatch

import (
	"context"
	"fmt"

	"github.com/nerrad567/macropad-core/internal/binding"
	"github.com/nerrad567/macropad-core/internal/history"
	"github.com/nerrad567/macropad-core/internal/input"
	"github.com/nerrad567/macropad-core/internal/trigger"
)

// Logger defines the logging interface used by sessions.
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

// Device is the press source a session drains. *input.Keyboard satisfies
// it; tests substitute a scripted source.
type Device interface {
	NextPress() (input.Press, error)
	Close() error
}

// Session runs one device's dispatch loop: read a key press, resolve it
// against the binding table on the current layer, fire every match in
// order. The current layer is session state: it starts on the default
// layer and dies with the session, never persisted.
//
// A session is single-threaded. Nothing here is synchronised; each live
// device gets its own Session on its own goroutine, sharing only the
// invoker and the history repository.
type Session struct {
	deviceName string
	dev        Device
	table      *binding.Table
	invoker    trigger.Invoker
	history    history.Repository
	logger     Logger
	layer      string
}

// NewSession creates a session for one grabbed device.
func NewSession(deviceName string, dev Device, table *binding.Table, invoker trigger.Invoker, hist history.Repository) *Session {
	return &Session{
		deviceName: deviceName,
		dev:        dev,
		table:      table,
		invoker:    invoker,
		history:    hist,
		logger:     noopLogger{},
		layer:      binding.DefaultLayer,
	}
}

// SetLogger sets the logger for the session.
func (s *Session) SetLogger(logger Logger) {
	s.logger = logger
}

// Layer returns the session's current layer.
func (s *Session) Layer() string {
	return s.layer
}

// Run drains the device until shutdown or disconnect. Cancelling the
// context ends the session cleanly (nil); the device vanishing under us
// returns ErrDeviceDisconnected so the caller can report it without
// touching other sessions.
func (s *Session) Run(ctx context.Context) error {
	defer s.dev.Close()

	// The pending read has no timeout; closing the device is the only
	// way to unblock it.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			s.dev.Close()
		case <-done:
		}
	}()

	s.logger.Info("session started", "device", s.deviceName)
	for {
		press, err := s.dev.NextPress()
		if err != nil {
			if ctx.Err() != nil {
				s.logger.Info("session stopped", "device", s.deviceName)
				return nil
			}
			s.logger.Warn("device disconnected", "device", s.deviceName, "error", err)
			return fmt.Errorf("%w: %s", ErrDeviceDisconnected, s.deviceName)
		}
		s.HandleEvent(ctx, press)
	}
}

// HandleEvent resolves one key press and fires everything it matches.
// The layer is snapshotted first and the whole batch resolves against the
// snapshot, so a layer_switch inside the batch affects future presses
// only. It never re-routes or suppresses the rest of its own batch.
func (s *Session) HandleEvent(ctx context.Context, press input.Press) {
	layer := s.layer
	matches := s.table.Resolve(layer, binding.Signal{Key: press.Key, Code: press.Code})

	for _, b := range matches {
		if b.TriggerType == binding.TriggerLayerSwitch {
			s.layer = b.TriggerValue
			s.logger.Info("layer switched",
				"device", s.deviceName, "from", layer, "to", b.TriggerValue)
			continue
		}
		s.invoke(ctx, layer, b)
	}
}

// invoke fires one binding and records the outcome. Failures are logged
// and recorded; they never stop the batch or the loop.
func (s *Session) invoke(ctx context.Context, layer string, b binding.Binding) {
	err := s.invoker.Invoke(ctx, b.TriggerType, b.TriggerValue)

	inv := &history.Invocation{
		Device:       s.deviceName,
		Layer:        layer,
		EventType:    string(b.EventType),
		EventValue:   b.EventValue,
		TriggerType:  string(b.TriggerType),
		TriggerValue: b.TriggerValue,
		Status:       history.StatusOK,
	}
	if err != nil {
		inv.Status = history.StatusFailed
		inv.Error = err.Error()
		s.logger.Error("invocation failed",
			"device", s.deviceName, "binding", b.String(), "error", err)
	} else {
		s.logger.Debug("invocation ok", "device", s.deviceName, "binding", b.String())
	}

	if herr := s.history.Record(ctx, inv); herr != nil {
		s.logger.Warn("history write failed", "device", s.deviceName, "error", herr)
	}
}
