package trigger

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/nerrad567/macropad-core/internal/binding"
)

// ─── Fake Runner ────────────────────────────────────────────────────────────

type fakeRunner struct {
	calls [][]string
	out   []byte
	err   error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return f.out, f.err
}

// ─── Tests ──────────────────────────────────────────────────────────────────

func TestAutoKey_Invoke_CommandPerKind(t *testing.T) {
	tests := []struct {
		kind binding.TriggerType
		want []string
	}{
		{binding.TriggerScript, []string{"autokey-run", "--script", "volume up"}},
		{binding.TriggerPhrase, []string{"autokey-run", "--phrase", "volume up"}},
		{binding.TriggerFolder, []string{"autokey-run", "--folder", "volume up"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			runner := &fakeRunner{}
			inv := NewAutoKeyWithRunner("autokey-run", runner)

			if err := inv.Invoke(context.Background(), tt.kind, "volume up"); err != nil {
				t.Fatalf("Invoke() error: %v", err)
			}
			if len(runner.calls) != 1 {
				t.Fatalf("runner called %d times, want 1", len(runner.calls))
			}
			if !reflect.DeepEqual(runner.calls[0], tt.want) {
				t.Errorf("command = %v, want %v", runner.calls[0], tt.want)
			}
		})
	}
}

func TestAutoKey_Invoke_FailureCarriesOutput(t *testing.T) {
	runner := &fakeRunner{
		out: []byte("ERROR: No phrase found with that name\n"),
		err: errors.New("exit status 1"),
	}
	inv := NewAutoKeyWithRunner("autokey-run", runner)

	err := inv.Invoke(context.Background(), binding.TriggerPhrase, "missing")
	if !errors.Is(err, ErrInvocationFailed) {
		t.Fatalf("error = %v, want ErrInvocationFailed", err)
	}
	if !strings.Contains(err.Error(), "No phrase found") {
		t.Errorf("error %q does not carry the CLI output", err)
	}
}

func TestAutoKey_Invoke_FailureWithoutOutput(t *testing.T) {
	runner := &fakeRunner{err: errors.New("executable file not found in $PATH")}
	inv := NewAutoKeyWithRunner("autokey-run", runner)

	err := inv.Invoke(context.Background(), binding.TriggerScript, "up")
	if !errors.Is(err, ErrInvocationFailed) {
		t.Fatalf("error = %v, want ErrInvocationFailed", err)
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("error %q does not carry the cause", err)
	}
}

func TestAutoKey_Invoke_LayerSwitchRejected(t *testing.T) {
	runner := &fakeRunner{}
	inv := NewAutoKeyWithRunner("autokey-run", runner)

	err := inv.Invoke(context.Background(), binding.TriggerLayerSwitch, "nav")
	if !errors.Is(err, ErrInvocationFailed) {
		t.Fatalf("error = %v, want ErrInvocationFailed", err)
	}
	if len(runner.calls) != 0 {
		t.Errorf("runner called %d times for layer_switch, want 0", len(runner.calls))
	}
}

func TestOSRunner(t *testing.T) {
	out, err := OSRunner{}.Run(context.Background(), "echo", "hi")
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if strings.TrimSpace(string(out)) != "hi" {
		t.Errorf("Run() output = %q, want %q", out, "hi")
	}
}
