// Package execution runs the external bioinformatics tools the pipeline
// depends on as local processes.
package execution

import "context"

// Runtime abstracts how an external command is executed. Tasks hold a
// Runtime so tests can swap in fakes without spawning processes.
type Runtime interface {
	// Run executes a command and returns the result. A non-zero exit
	// code is reported in RunResult, not as an error; err is reserved
	// for failures to launch or complete the process itself.
	Run(ctx context.Context, spec RunSpec) (*RunResult, error)
}

// RunSpec describes what to execute.
type RunSpec struct {
	Command []string          // command and arguments
	WorkDir string            // working directory (optional; created if set)
	Env     map[string]string // extra environment variables
	Stdout  string            // path to capture stdout (optional)
}

// RunResult holds the result of a command execution.
type RunResult struct {
	ExitCode int
	Stdout   string // captured stdout (if not redirected to a file)
	Stderr   string // captured stderr, surfaced on failure for diagnostics
}
