package detect

import (
	"context"
	"os/exec"
	"time"
)

// probeTimeout bounds each version probe. An unresponsive binary must not
// stall a whole scan; a timeout reads the same as a non-zero exit.
const probeTimeout = 3 * time.Second

// Runner executes a version-reporting command and returns its combined
// stdout+stderr. ok is false on non-zero exit, timeout, or a missing binary;
// detectors treat all three identically.
type Runner interface {
	Run(name string, args ...string) (output string, ok bool)
}

type execRunner struct {
	timeout time.Duration
}

// NewRunner returns a Runner that executes real subprocesses with the given
// per-call timeout. A timeout of 0 uses the default.
func NewRunner(timeout time.Duration) Runner {
	if timeout <= 0 {
		timeout = probeTimeout
	}
	return &execRunner{timeout: timeout}
}

func (r *execRunner) Run(name string, args ...string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return "", false
	}
	return string(out), true
}
