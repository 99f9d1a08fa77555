package tasks

import (
	"context"
	"os"
	"strconv"

	"github.com/chris-rands/phigaro/internal/config"
	"github.com/chris-rands/phigaro/internal/execution"
	"github.com/chris-rands/phigaro/internal/pipeline"
)

// HmmerTask matches the predicted proteins against the pVOG profile
// database with hmmsearch. The artifact is the --tblout table; the
// human-readable alignment report goes to /dev/null. This is the only
// stage with internal parallelism: hmmsearch gets the run's thread
// count via --cpu, opaque to the chain runner.
type HmmerTask struct {
	pipeline.Base
	prodigal pipeline.Task
	runtime  execution.Runtime
}

// NewHmmer creates the profile-search stage reading the gene-prediction
// stage's output.
func NewHmmer(rctx *config.Context, prodigal pipeline.Task) *HmmerTask {
	return &HmmerTask{
		Base:     pipeline.Base{Ctx: rctx, TaskName: NameHmmer, Ext: ".tblout"},
		prodigal: prodigal,
		runtime:  &execution.LocalRuntime{},
	}
}

func (t *HmmerTask) Run(ctx context.Context) error {
	if err := t.EnsureScratch(); err != nil {
		return &execution.ExecutionError{Task: t.Name(), Err: err}
	}

	cfg := t.Ctx.Config.Hmmer
	bin := cfg.Bin
	if bin == "" {
		bin = "hmmsearch"
	}
	threads := t.Ctx.Threads
	if threads < 1 {
		threads = 1
	}

	result, err := t.runtime.Run(ctx, execution.RunSpec{
		Command: []string{
			bin,
			"--cpu", strconv.Itoa(threads),
			"-E", strconv.FormatFloat(cfg.EValueThreshold, 'g', -1, 64),
			"--tblout", t.Output(),
			"--noali",
			cfg.PVOGPath,
			t.prodigal.Output(),
		},
		// The full alignment report on stdout can be huge; drop it.
		Stdout: os.DevNull,
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
