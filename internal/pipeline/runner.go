package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/chris-rands/phigaro/internal/execution"
)

// Chain executes tasks strictly sequentially in the order given. The
// list is pre-ordered by construction: each task only reads outputs of
// tasks before it. No two stages ever run concurrently; parallelism, if
// any, lives inside a single external-tool invocation.
type Chain struct {
	logger *slog.Logger
	tasks  []Task
	states map[string]TaskState
}

// NewChain builds a chain over the given tasks.
func NewChain(logger *slog.Logger, tasks ...Task) *Chain {
	states := make(map[string]TaskState, len(tasks))
	for _, t := range tasks {
		states[t.Name()] = StatePending
	}
	return &Chain{
		logger: logger.With("component", "runner"),
		tasks:  tasks,
		states: states,
	}
}

// State returns the recorded state of a stage.
func (c *Chain) State(name string) TaskState {
	return c.states[name]
}

func (c *Chain) transition(t Task, next TaskState) {
	cur := c.states[t.Name()]
	if !cur.CanTransitionTo(next) {
		// Recorded anyway; the transition table exists to catch runner bugs in tests.
		c.logger.Warn("invalid state transition", "task", t.Name(), "from", cur, "to", next)
	}
	c.states[t.Name()] = next
}

// Run walks the chain. A task whose output already exists as a
// non-empty file is skipped, so re-invoking a run with the same sample
// id re-executes nothing that already completed. The first failure
// aborts the remaining stages. On success the final task's output path
// is returned.
func (c *Chain) Run(ctx context.Context) (string, error) {
	if len(c.tasks) == 0 {
		return "", errors.New("empty task chain")
	}

	for _, t := range c.tasks {
		if OutputValid(t.Output()) {
			c.transition(t, StateSkipped)
			c.logger.Info("reusing cached output", "task", t.Name(), "output", t.Output())
			continue
		}

		c.transition(t, StateRunning)
		c.logger.Info("running task", "task", t.Name())

		if err := t.Run(ctx); err != nil {
			c.transition(t, StateFailed)
			return "", err
		}
		if !OutputValid(t.Output()) {
			c.transition(t, StateFailed)
			return "", &execution.ExecutionError{Task: t.Name(), Err: execution.ErrNoOutput}
		}
		c.transition(t, StateSuccess)
	}

	return c.tasks[len(c.tasks)-1].Output(), nil
}

// Clean invokes every task's Clean step. Failures are logged as
// warnings and never change the run's outcome: the primary output has
// already been produced by the time cleanup runs.
func (c *Chain) Clean() {
	for _, t := range c.tasks {
		if err := t.Clean(); err != nil {
			c.logger.Warn("cleanup failed", "task", t.Name(), "error", err)
		}
	}
}

// OutputValid reports whether path holds a usable cached artifact: an
// existing, non-empty regular file.
func OutputValid(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Size() > 0
}
