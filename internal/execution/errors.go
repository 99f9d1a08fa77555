package execution

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors.
var (
	ErrEmptyCommand = errors.New("empty command")
	ErrNonZeroExit  = errors.New("command exited with non-zero status")
	ErrNoOutput     = errors.New("task produced no usable output")
)

// ExecutionError reports a failed pipeline task. It carries the task's
// identity and, for external tools, the exit code and a stderr tail for
// diagnostics. It is fatal: the runner aborts the remaining chain.
type ExecutionError struct {
	Task     string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ExecutionError) Error() string {
	msg := fmt.Sprintf("task %s: %v", e.Task, e.Err)
	if e.ExitCode != 0 {
		msg = fmt.Sprintf("%s (exit code %d)", msg, e.ExitCode)
	}
	if tail := stderrTail(e.Stderr, 5); tail != "" {
		msg = msg + "\n" + tail
	}
	return msg
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// stderrTail returns the last n non-empty lines of captured stderr.
func stderrTail(stderr string, n int) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return ""
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
