package tasks

import (
	"context"
	"fmt"
	"os"

	"github.com/chris-rands/phigaro/internal/config"
	"github.com/chris-rands/phigaro/internal/execution"
	"github.com/chris-rands/phigaro/internal/finder"
	"github.com/chris-rands/phigaro/internal/pipeline"
	"github.com/chris-rands/phigaro/internal/report"
)

// ClassifyTask runs the prophage-region classifier over the gene
// predictions and profile hits and writes the primary TSV table. Unlike
// the other real stages it is an in-process computation, but it plays
// by the same rules: one output artifact, cache-skippable, fatal
// ExecutionError on failure.
type ClassifyTask struct {
	pipeline.Base
	prodigal pipeline.Task
	hmmer    pipeline.Task
}

// NewClassify creates the classification stage reading both upstream
// artifacts.
func NewClassify(rctx *config.Context, prodigal, hmmer pipeline.Task) *ClassifyTask {
	return &ClassifyTask{
		Base:     pipeline.Base{Ctx: rctx, TaskName: NameClassify, Ext: ".tsv"},
		prodigal: prodigal,
		hmmer:    hmmer,
	}
}

func (t *ClassifyTask) Run(ctx context.Context) error {
	if err := t.EnsureScratch(); err != nil {
		return &execution.ExecutionError{Task: t.Name(), Err: err}
	}

	f, err := t.newFinder()
	if err != nil {
		return &execution.ExecutionError{Task: t.Name(), Err: err}
	}

	genes, err := finder.ReadGenes(t.prodigal.Output())
	if err != nil {
		return &execution.ExecutionError{Task: t.Name(), Err: err}
	}
	hits, err := finder.ReadTable(t.hmmer.Output(), t.Ctx.Config.Hmmer.EValueThreshold)
	if err != nil {
		return &execution.ExecutionError{Task: t.Name(), Err: err}
	}

	regions := f.Find(genes, hits)

	out, err := os.Create(t.Output())
	if err != nil {
		return &execution.ExecutionError{Task: t.Name(), Err: fmt.Errorf("create output: %w", err)}
	}
	defer out.Close()

	if err := report.WriteTSV(out, regions, t.Ctx.PrintVOGs); err != nil {
		return &execution.ExecutionError{Task: t.Name(), Err: err}
	}
	return out.Close()
}

// newFinder assembles the classifier from the configuration document
// and the run context.
func (t *ClassifyTask) newFinder() (*finder.Finder, error) {
	cfg := t.Ctx.Config
	minThreshold, maxThreshold, err := cfg.Thresholds(t.Ctx.Mode)
	if err != nil {
		return nil, err
	}

	var annotations map[string]finder.Annotation
	if path := cfg.Hmmer.PVOGAnnotations; path != "" {
		annotations, err = finder.LoadAnnotations(path)
		if err != nil {
			return nil, err
		}
	}

	return finder.New(finder.Options{
		Mode:         t.Ctx.Mode,
		WindowLen:    cfg.Phigaro.WindowLen,
		MinThreshold: minThreshold,
		MaxThreshold: maxThreshold,
		MeanGC:       cfg.Phigaro.MeanGC,
		PenaltyBlack: cfg.Phigaro.PenaltyBlack,
		PenaltyWhite: cfg.Phigaro.PenaltyWhite,
		Threads:      t.Ctx.Threads,
		Annotations:  annotations,
	}), nil
}
