package execution

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
)

// LocalRuntime executes commands as local processes.
type LocalRuntime struct{}

// Run executes a command locally, blocking until it terminates.
func (r *LocalRuntime) Run(ctx context.Context, spec RunSpec) (*RunResult, error) {
	if len(spec.Command) == 0 {
		return nil, ErrEmptyCommand
	}

	if spec.WorkDir != "" {
		if err := os.MkdirAll(spec.WorkDir, 0o755); err != nil {
			return nil, fmt.Errorf("create workdir: %w", err)
		}
	}

	cmd := exec.CommandContext(ctx, spec.Command[0], spec.Command[1:]...)
	cmd.Dir = spec.WorkDir

	cmd.Env = os.Environ()
	for k, v := range spec.Env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}

	var stdoutBuf bytes.Buffer
	if spec.Stdout != "" {
		stdoutFile, err := os.Create(spec.Stdout)
		if err != nil {
			return nil, fmt.Errorf("create stdout file: %w", err)
		}
		defer stdoutFile.Close()
		cmd.Stdout = stdoutFile
	} else {
		cmd.Stdout = &stdoutBuf
	}

	var stderrBuf bytes.Buffer
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			// Launch failures (binary not found, permission) are returned directly.
			return nil, fmt.Errorf("run command %s: %w", spec.Command[0], err)
		}
	}

	return &RunResult{
		ExitCode: exitCode,
		Stdout:   stdoutBuf.String(),
		Stderr:   stderrBuf.String(),
	}, nil
}
