// Package pipeline implements the task chain at the heart of phigaro:
// a fixed linear sequence of stages, each producible either by running
// its real implementation or by substituting a precomputed file, with
// output caching keyed by the sample id.
package pipeline

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/chris-rands/phigaro/internal/config"
)

// Task is one stage of the pipeline chain. Tasks are assembled before
// any execution and are immutable afterwards, except for the side
// effect of materializing their output artifact on disk.
type Task interface {
	// Name identifies the task's role within a run ("prodigal", "hmmer", ...).
	Name() string

	// Output returns the artifact path. For real tasks it is derived
	// from the sample id and task name and doubles as the cache key.
	Output() string

	// Run produces the artifact at Output(). It blocks until done.
	Run(ctx context.Context) error

	// Clean removes the task's intermediate artifact. Cleanup across
	// tasks must be commutative: removing one task's artifact never
	// touches another's.
	Clean() error
}

// Base carries what every real task shares: the run context and the
// scratch output path derived from sample id, task name and extension.
type Base struct {
	Ctx      *config.Context
	TaskName string
	Ext      string
}

// Name returns the task's role identifier.
func (b *Base) Name() string {
	return b.TaskName
}

// Output returns proc/<sample>/<task_name><ext>.
func (b *Base) Output() string {
	return filepath.Join(b.Ctx.ScratchDir(), b.TaskName+b.Ext)
}

// EnsureScratch creates the sample scratch directory.
func (b *Base) EnsureScratch() error {
	return os.MkdirAll(b.Ctx.ScratchDir(), 0o755)
}

// Clean removes the task's artifact. A missing artifact is not an error.
func (b *Base) Clean() error {
	err := os.Remove(b.Output())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
