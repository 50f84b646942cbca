package store

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/nerrad567/macropad-core/internal/binding"
	"github.com/nerrad567/macropad-core/internal/device"
)

// Row tokens and field counts. The token is always the first CSV field.
const (
	deviceToken  = "device"
	bindingToken = "binding"

	deviceFieldCount  = 5 // device,<version>,<detection>,<name>,<phys>
	bindingFieldCount = 6 // binding,<layer>,<etype>,<evalue>,<ttype>,<tvalue>
)

// File permissions.
const (
	dirPermissions  = 0750
	filePermissions = 0600 // bindings reveal what the user has automated
)

// Store persists the configuration at a fixed path.
type Store struct {
	path string
}

// New creates a store for the given bindings file path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the bindings file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the whole configuration. A missing file is not an error: a
// first run has nothing saved yet and returns an empty state. A file that
// exists but cannot be read or parsed wraps ErrConfigUnreadable so that
// callers can offer the wipe/retry/quit recovery prompt.
func (s *Store) Load() (State, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return State{}, nil
	}
	if err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrConfigUnreadable, err)
	}
	defer f.Close()

	return decode(f)
}

// Save atomically rewrites the whole configuration: encode to memory,
// write a temp file alongside the target, rename over it. A crash mid-save
// leaves either the old file or the new one, never a partial write.
func (s *Store) Save(state State) error {
	if err := os.MkdirAll(filepath.Dir(s.path), dirPermissions); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	var buf bytes.Buffer
	if err := encode(&buf, state); err != nil {
		return fmt.Errorf("encoding bindings: %w", err)
	}

	tmpPath := fmt.Sprintf("%s.tmp.%d", s.path, time.Now().UTC().UnixNano())
	if err := os.WriteFile(tmpPath, buf.Bytes(), filePermissions); err != nil {
		return fmt.Errorf("write temp file %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file %s: %w", s.path, err)
	}
	return nil
}

// Wipe removes the persisted file. This is the recovery path when the user
// declines to keep an unreadable file. A missing file is fine.
func (s *Store) Wipe() error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// decode parses the CSV stream into a State. Parsing is strict: any row
// the current version does not fully understand makes the whole file
// unreadable rather than silently dropping bindings.
func decode(r io.Reader) (State, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // device and binding rows differ in width

	var state State
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return State{}, fmt.Errorf("%w: %v", ErrConfigUnreadable, err)
		}
		line, _ := cr.FieldPos(0)

		switch row[0] {
		case deviceToken:
			if len(row) != deviceFieldCount {
				return State{}, fmt.Errorf("%w: line %d: device row has %d fields, want %d",
					ErrConfigUnreadable, line, len(row), deviceFieldCount)
			}
			record, err := parseDeviceRow(row)
			if err != nil {
				return State{}, fmt.Errorf("%w: line %d: %v", ErrConfigUnreadable, line, err)
			}
			state.Devices = append(state.Devices, DeviceConfig{Record: record})

		case bindingToken:
			if len(state.Devices) == 0 {
				return State{}, fmt.Errorf("%w: line %d: binding row before any device row",
					ErrConfigUnreadable, line)
			}
			if len(row) != bindingFieldCount {
				return State{}, fmt.Errorf("%w: line %d: binding row has %d fields, want %d",
					ErrConfigUnreadable, line, len(row), bindingFieldCount)
			}
			b, err := parseBindingRow(row)
			if err != nil {
				return State{}, fmt.Errorf("%w: line %d: %v", ErrConfigUnreadable, line, err)
			}
			last := len(state.Devices) - 1
			state.Devices[last].Bindings = append(state.Devices[last].Bindings, b)

		default:
			return State{}, fmt.Errorf("%w: line %d: unknown row type %q",
				ErrConfigUnreadable, line, row[0])
		}
	}
	return state, nil
}

// parseDeviceRow converts a device row into a validated Record. The
// format version is kept as read so an untouched save round-trips.
func parseDeviceRow(row []string) (device.Record, error) {
	version, err := strconv.Atoi(row[1])
	if err != nil {
		return device.Record{}, fmt.Errorf("format version %q is not numeric", row[1])
	}

	detection, err := device.ParseDetectionType(row[2])
	if err != nil {
		return device.Record{}, err
	}

	record := device.Record{
		FormatVersion: version,
		Detection:     detection,
		ReportedName:  row[3],
		ReportedPhys:  row[4],
	}
	if err := device.ValidateRecord(record); err != nil {
		return device.Record{}, err
	}
	return record, nil
}

// parseBindingRow converts a binding row into a validated Binding.
func parseBindingRow(row []string) (binding.Binding, error) {
	b := binding.Binding{
		Layer:        row[1],
		EventType:    binding.EventType(row[2]),
		EventValue:   row[3],
		TriggerType:  binding.TriggerType(row[4]),
		TriggerValue: row[5],
	}
	if err := binding.ValidateBinding(b); err != nil {
		return binding.Binding{}, err
	}
	return b, nil
}

// encode writes the state as CSV rows in state order. encoding/csv quotes
// only fields that need it, so files written here stay stable byte for
// byte across an untouched load/save cycle.
func encode(w io.Writer, state State) error {
	cw := csv.NewWriter(w)
	for _, dc := range state.Devices {
		row := []string{
			deviceToken,
			strconv.Itoa(dc.Record.FormatVersion),
			string(dc.Record.Detection),
			dc.Record.ReportedName,
			dc.Record.ReportedPhys,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
		for _, b := range dc.Bindings {
			row := []string{
				bindingToken,
				b.Layer,
				string(b.EventType),
				b.EventValue,
				string(b.TriggerType),
				b.TriggerValue,
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
