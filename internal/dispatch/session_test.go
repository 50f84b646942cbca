package dispatch

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/nerrad567/macropad-core/internal/binding"
	"github.com/nerrad567/macropad-core/internal/history"
	"github.com/nerrad567/macropad-core/internal/input"
)

// ─── Mock Dependencies ──────────────────────────────────────────────────────

// fakeDevice feeds scripted presses, then reports closed. Close is safe
// to call twice, as sessions do on shutdown.
type fakeDevice struct {
	mu     sync.Mutex
	events chan input.Press
	closed bool
}

func newFakeDevice(presses ...input.Press) *fakeDevice {
	d := &fakeDevice{events: make(chan input.Press, len(presses)+1)}
	for _, p := range presses {
		d.events <- p
	}
	return d
}

func (d *fakeDevice) NextPress() (input.Press, error) {
	p, ok := <-d.events
	if !ok {
		return input.Press{}, input.ErrDeviceClosed
	}
	return p, nil
}

func (d *fakeDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.closed {
		d.closed = true
		close(d.events)
	}
	return nil
}

// fakeInvoker records invocations in order and fails on demand.
type fakeInvoker struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]error
}

func (f *fakeInvoker) Invoke(_ context.Context, kind binding.TriggerType, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, string(kind)+" "+value)
	if err, ok := f.fail[value]; ok {
		return err
	}
	return nil
}

func (f *fakeInvoker) invoked() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// fakeHistory collects invocation records and fails on demand.
type fakeHistory struct {
	mu      sync.Mutex
	records []history.Invocation
	err     error
}

func (f *fakeHistory) Record(_ context.Context, inv *history.Invocation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, *inv)
	return nil
}

func (f *fakeHistory) Recent(context.Context, int) ([]history.Invocation, error) {
	return nil, nil
}

func (f *fakeHistory) Prune(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeHistory) recorded() []history.Invocation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]history.Invocation(nil), f.records...)
}

// ─── Helpers ────────────────────────────────────────────────────────────────

func newTestSession(t *testing.T, rows []binding.Binding) (*Session, *fakeInvoker, *fakeHistory) {
	t.Helper()
	invoker := &fakeInvoker{}
	hist := &fakeHistory{}
	s := NewSession("FooPad", newFakeDevice(), binding.NewTable(rows), invoker, hist)
	return s, invoker, hist
}

func press(key string, code uint16) input.Press {
	return input.Press{Key: key, Code: code}
}

// ─── HandleEvent ────────────────────────────────────────────────────────────

func TestSession_LayerRouting(t *testing.T) {
	s, invoker, _ := newTestSession(t, []binding.Binding{
		{Layer: "default", EventType: binding.EventKeyDown, EventValue: "KEY_KP7",
			TriggerType: binding.TriggerPhrase, TriggerValue: "home address"},
		{Layer: "default", EventType: binding.EventKeyDown, EventValue: "KEY_KP8",
			TriggerType: binding.TriggerLayerSwitch, TriggerValue: "nav"},
		{Layer: "nav", EventType: binding.EventKeyDown, EventValue: "KEY_KP7",
			TriggerType: binding.TriggerScript, TriggerValue: "up"},
	})
	ctx := context.Background()

	s.HandleEvent(ctx, press("KEY_KP7", 71))
	if s.Layer() != "default" {
		t.Errorf("layer = %q after plain invocation, want default", s.Layer())
	}

	s.HandleEvent(ctx, press("KEY_KP8", 72))
	if s.Layer() != "nav" {
		t.Errorf("layer = %q after switch, want nav", s.Layer())
	}

	s.HandleEvent(ctx, press("KEY_KP7", 71))

	want := []string{"phrase home address", "script up"}
	if got := invoker.invoked(); !reflect.DeepEqual(got, want) {
		t.Errorf("invocations = %v, want %v", got, want)
	}
}

func TestSession_LayerSwitchAppliesToLaterPressesOnly(t *testing.T) {
	// Both rows match the same press, the switch first. The phrase is on
	// the snapshot layer and must still fire; only the next press sees
	// the new layer.
	s, invoker, _ := newTestSession(t, []binding.Binding{
		{Layer: "default", EventType: binding.EventKeyDown, EventValue: "KEY_A",
			TriggerType: binding.TriggerLayerSwitch, TriggerValue: "alt"},
		{Layer: "default", EventType: binding.EventKeyDown, EventValue: "KEY_A",
			TriggerType: binding.TriggerPhrase, TriggerValue: "hello"},
	})

	s.HandleEvent(context.Background(), press("KEY_A", 30))

	if got := invoker.invoked(); !reflect.DeepEqual(got, []string{"phrase hello"}) {
		t.Errorf("invocations = %v, want the phrase despite the earlier switch", got)
	}
	if s.Layer() != "alt" {
		t.Errorf("layer = %q, want alt for subsequent presses", s.Layer())
	}
}

func TestSession_LastLayerSwitchInBatchWins(t *testing.T) {
	s, _, _ := newTestSession(t, []binding.Binding{
		{Layer: "default", EventType: binding.EventKeyDown, EventValue: "KEY_A",
			TriggerType: binding.TriggerLayerSwitch, TriggerValue: "one"},
		{Layer: "default", EventType: binding.EventKeyDown, EventValue: "KEY_A",
			TriggerType: binding.TriggerLayerSwitch, TriggerValue: "two"},
	})

	s.HandleEvent(context.Background(), press("KEY_A", 30))

	if s.Layer() != "two" {
		t.Errorf("layer = %q, want two", s.Layer())
	}
}

func TestSession_AllMatchesFireInOrder(t *testing.T) {
	s, invoker, _ := newTestSession(t, []binding.Binding{
		{Layer: "default", EventType: binding.EventKeyDown, EventValue: "KEY_A",
			TriggerType: binding.TriggerScript, TriggerValue: "first"},
		{Layer: "default", EventType: binding.EventScanDown, EventValue: "30",
			TriggerType: binding.TriggerScript, TriggerValue: "second"},
		{Layer: "default", EventType: binding.EventKeyDown, EventValue: "KEY_A",
			TriggerType: binding.TriggerPhrase, TriggerValue: "third"},
	})

	s.HandleEvent(context.Background(), press("KEY_A", 30))

	want := []string{"script first", "script second", "phrase third"}
	if got := invoker.invoked(); !reflect.DeepEqual(got, want) {
		t.Errorf("invocations = %v, want %v", got, want)
	}
}

func TestSession_UnboundPressIsNoop(t *testing.T) {
	s, invoker, hist := newTestSession(t, []binding.Binding{
		{Layer: "default", EventType: binding.EventKeyDown, EventValue: "KEY_A",
			TriggerType: binding.TriggerScript, TriggerValue: "something"},
	})

	s.HandleEvent(context.Background(), press("KEY_Z", 44))

	if got := invoker.invoked(); len(got) != 0 {
		t.Errorf("invocations = %v, want none", got)
	}
	if got := hist.recorded(); len(got) != 0 {
		t.Errorf("history = %v, want none", got)
	}
}

func TestSession_FailureDoesNotStopBatch(t *testing.T) {
	s, invoker, hist := newTestSession(t, []binding.Binding{
		{Layer: "default", EventType: binding.EventKeyDown, EventValue: "KEY_A",
			TriggerType: binding.TriggerScript, TriggerValue: "broken"},
		{Layer: "default", EventType: binding.EventKeyDown, EventValue: "KEY_A",
			TriggerType: binding.TriggerScript, TriggerValue: "working"},
	})
	invoker.fail = map[string]error{"broken": errors.New("exit status 1")}

	s.HandleEvent(context.Background(), press("KEY_A", 30))

	want := []string{"script broken", "script working"}
	if got := invoker.invoked(); !reflect.DeepEqual(got, want) {
		t.Errorf("invocations = %v, want %v", got, want)
	}

	records := hist.recorded()
	if len(records) != 2 {
		t.Fatalf("history = %d records, want 2", len(records))
	}
	if records[0].Status != history.StatusFailed || records[0].Error == "" {
		t.Errorf("first record = %+v, want failed with error", records[0])
	}
	if records[1].Status != history.StatusOK {
		t.Errorf("second record = %+v, want ok", records[1])
	}
}

func TestSession_HistoryCarriesSnapshotLayer(t *testing.T) {
	// The switch lands before the script in the same batch; the record
	// must name the layer the batch resolved on, not the new one.
	s, _, hist := newTestSession(t, []binding.Binding{
		{Layer: "default", EventType: binding.EventKeyDown, EventValue: "KEY_A",
			TriggerType: binding.TriggerLayerSwitch, TriggerValue: "alt"},
		{Layer: "default", EventType: binding.EventKeyDown, EventValue: "KEY_A",
			TriggerType: binding.TriggerScript, TriggerValue: "up"},
	})

	s.HandleEvent(context.Background(), press("KEY_A", 30))

	records := hist.recorded()
	if len(records) != 1 {
		t.Fatalf("history = %d records, want 1 (switches are not recorded)", len(records))
	}
	r := records[0]
	if r.Layer != "default" {
		t.Errorf("recorded layer = %q, want the snapshot layer", r.Layer)
	}
	if r.Device != "FooPad" || r.EventType != "keydown" || r.EventValue != "KEY_A" ||
		r.TriggerType != "script" || r.TriggerValue != "up" {
		t.Errorf("record = %+v", r)
	}
}

func TestSession_HistoryFailureDoesNotStopDispatch(t *testing.T) {
	s, invoker, hist := newTestSession(t, []binding.Binding{
		{Layer: "default", EventType: binding.EventKeyDown, EventValue: "KEY_A",
			TriggerType: binding.TriggerScript, TriggerValue: "up"},
	})
	hist.err = errors.New("disk full")
	ctx := context.Background()

	s.HandleEvent(ctx, press("KEY_A", 30))
	s.HandleEvent(ctx, press("KEY_A", 30))

	if got := invoker.invoked(); len(got) != 2 {
		t.Errorf("invocations = %v, want 2 despite history failures", got)
	}
}

// ─── Run ────────────────────────────────────────────────────────────────────

func TestSession_Run_DispatchesUntilDisconnect(t *testing.T) {
	dev := newFakeDevice(press("KEY_KP7", 71), press("KEY_KP8", 72))
	dev.Close() // queued presses still drain, then the device is gone

	invoker := &fakeInvoker{}
	table := binding.NewTable([]binding.Binding{
		{Layer: "default", EventType: binding.EventKeyDown, EventValue: "KEY_KP7",
			TriggerType: binding.TriggerScript, TriggerValue: "one"},
		{Layer: "default", EventType: binding.EventKeyDown, EventValue: "KEY_KP8",
			TriggerType: binding.TriggerScript, TriggerValue: "two"},
	})
	s := NewSession("FooPad", dev, table, invoker, &fakeHistory{})

	err := s.Run(context.Background())
	if !errors.Is(err, ErrDeviceDisconnected) {
		t.Fatalf("Run() error = %v, want ErrDeviceDisconnected", err)
	}

	want := []string{"script one", "script two"}
	if got := invoker.invoked(); !reflect.DeepEqual(got, want) {
		t.Errorf("invocations = %v, want %v", got, want)
	}
}

func TestSession_Run_CancelledContextStopsCleanly(t *testing.T) {
	dev := newFakeDevice() // never produces a press
	s := NewSession("FooPad", dev, binding.NewTable(nil), &fakeInvoker{}, &fakeHistory{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Run(ctx); err != nil {
		t.Errorf("Run() after cancel error = %v, want nil", err)
	}
}
