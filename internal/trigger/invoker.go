package trigger

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/nerrad567/macropad-core/internal/binding"
)

// Runner executes one external command and returns its combined output.
// It exists so tests can substitute a fake for the real binary.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// OSRunner runs commands on the host.
type OSRunner struct{}

func (OSRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}

// Invoker fires one trigger and reports whether the handoff succeeded.
type Invoker interface {
	Invoke(ctx context.Context, kind binding.TriggerType, value string) error
}

// AutoKey invokes automation artifacts through the autokey-run CLI.
type AutoKey struct {
	binary string
	runner Runner
}

// NewAutoKey creates an invoker that shells out to the given binary,
// normally "autokey-run".
func NewAutoKey(binary string) *AutoKey {
	return &AutoKey{
		binary: binary,
		runner: OSRunner{},
	}
}

// NewAutoKeyWithRunner creates an invoker with a custom runner.
func NewAutoKeyWithRunner(binary string, runner Runner) *AutoKey {
	a := NewAutoKey(binary)
	a.runner = runner
	return a
}

// Invoke runs the automation artifact named by value. It waits for the
// CLI to finish so failures are observable, but applies no deadline of
// its own: the context is the session's, and macro execution time belongs
// to the automation daemon, not to us.
//
// A missing binary, an unreachable daemon, and a non-zero exit all come
// back wrapping ErrInvocationFailed with the CLI's output attached.
func (a *AutoKey) Invoke(ctx context.Context, kind binding.TriggerType, value string) error {
	flag, err := runFlag(kind)
	if err != nil {
		return err
	}

	out, err := a.runner.Run(ctx, a.binary, flag, value)
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%w: %s %s %q: %v: %s",
				ErrInvocationFailed, a.binary, flag, value, err, msg)
		}
		return fmt.Errorf("%w: %s %s %q: %v",
			ErrInvocationFailed, a.binary, flag, value, err)
	}
	return nil
}

// runFlag maps a trigger type to its autokey-run mode flag. layer_switch
// never reaches the CLI; dispatch consumes it before invoking.
func runFlag(kind binding.TriggerType) (string, error) {
	switch kind {
	case binding.TriggerScript:
		return "--script", nil
	case binding.TriggerPhrase:
		return "--phrase", nil
	case binding.TriggerFolder:
		return "--folder", nil
	default:
		return "", fmt.Errorf("%w: trigger type %q is not invokable", ErrInvocationFailed, kind)
	}
}
