package pipeline

import "context"

// DummyTask substitutes a user-supplied precomputed file for a stage's
// computed output, short-circuiting execution of that stage.
type DummyTask struct {
	name string
	path string
}

// NewDummyTask wraps path as the completed output of the named task.
// The path is not checked for existence here: it is validated lazily
// when a downstream task consumes it.
func NewDummyTask(path, name string) *DummyTask {
	return &DummyTask{name: name, path: path}
}

func (t *DummyTask) Name() string {
	return t.name
}

func (t *DummyTask) Output() string {
	return t.path
}

// Run is a no-op: the output already exists.
func (t *DummyTask) Run(ctx context.Context) error {
	return nil
}

// Clean is a no-op: user-owned files are never deleted.
func (t *DummyTask) Clean() error {
	return nil
}
