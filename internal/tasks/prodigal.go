package tasks

import (
	"context"
	"os"

	"github.com/chris-rands/phigaro/internal/config"
	"github.com/chris-rands/phigaro/internal/execution"
	"github.com/chris-rands/phigaro/internal/pipeline"
)

// ProdigalTask predicts genes on the preprocessed assembly by running
// the external prodigal binary in metagenomic mode. Its artifact is the
// protein FASTA (-a), which carries coordinates and GC content in the
// headers; the gene coordinate report itself is discarded.
type ProdigalTask struct {
	pipeline.Base
	preprocess pipeline.Task
	runtime    execution.Runtime
}

// NewProdigal creates the gene-prediction stage reading the preprocess
// stage's output.
func NewProdigal(rctx *config.Context, preprocess pipeline.Task) *ProdigalTask {
	return &ProdigalTask{
		Base:       pipeline.Base{Ctx: rctx, TaskName: NameProdigal, Ext: ".faa"},
		preprocess: preprocess,
		runtime:    &execution.LocalRuntime{},
	}
}

func (t *ProdigalTask) Run(ctx context.Context) error {
	if err := t.EnsureScratch(); err != nil {
		return &execution.ExecutionError{Task: t.Name(), Err: err}
	}

	bin := t.Ctx.Config.Prodigal.Bin
	if bin == "" {
		bin = "prodigal"
	}

	result, err := t.runtime.Run(ctx, execution.RunSpec{
		Command: []string{
			bin,
			"-i", t.preprocess.Output(),
			"-a", t.Output(),
			"-o", os.DevNull,
			"-p", "meta",
			"-q",
		},
	})
	if err != nil {
		return &execution.ExecutionError{Task: t.Name(), Err: err}
	}
	if result.ExitCode != 0 {
		return &execution.ExecutionError{
			Task:     t.Name(),
			ExitCode: result.ExitCode,
			Stderr:   result.Stderr,
			Err:      execution.ErrNonZeroExit,
		}
	}
	return nil
}
