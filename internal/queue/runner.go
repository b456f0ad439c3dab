package queue

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds a single command execution.
const DefaultTimeout = 30 * time.Second

// Runner executes one job command and classifies the outcome.
type Runner interface {
	Run(command string) Result
}

// ShellRunner runs commands through `sh -c` with a bounded timeout.
// It deliberately ignores external cancellation: an in-flight command
// finishes on its own or hits the timeout, it is never killed mid-run
// by a worker shutdown.
type ShellRunner struct {
	Timeout time.Duration
}

func (r ShellRunner) Run(command string) Result {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	out, err := cmd.CombinedOutput()
	output := strings.TrimSpace(string(out))

	if err == nil {
		return Result{Outcome: Succeeded, Output: output}
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return Result{Outcome: TimedOut, Output: output, Err: err}
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return Result{Outcome: Failed, Output: output, Err: err}
	}
	// Could not spawn the command at all (environment fault).
	return Result{Outcome: Faulted, Output: output, Err: err}
}
