package tasks

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chris-rands/phigaro/internal/config"
	"github.com/chris-rands/phigaro/internal/execution"
	"github.com/chris-rands/phigaro/internal/logging"
	"github.com/chris-rands/phigaro/internal/pipeline"
)

// fakeRuntime records the RunSpec and returns a scripted result. When
// outputFile is set, the file is created to mimic a tool writing its
// artifact.
type fakeRuntime struct {
	spec       execution.RunSpec
	result     *execution.RunResult
	err        error
	outputFile string
}

func (r *fakeRuntime) Run(ctx context.Context, spec execution.RunSpec) (*execution.RunResult, error) {
	r.spec = spec
	if r.err != nil {
		return nil, r.err
	}
	if r.outputFile != "" {
		if err := os.WriteFile(r.outputFile, []byte("fake tool output\n"), 0o644); err != nil {
			return nil, err
		}
	}
	if r.result != nil {
		return r.result, nil
	}
	return &execution.RunResult{}, nil
}

func discardLogger() *slog.Logger {
	return logging.Discard()
}

func testContext(t *testing.T) *config.Context {
	t.Helper()
	return &config.Context{
		Sample: "sample-test",
		Config: &config.Config{
			Hmmer: config.HmmerConfig{
				Bin:             "/opt/hmmer/hmmsearch",
				EValueThreshold: 0.00445,
				PVOGPath:        "/data/allpvoghmms",
			},
			Prodigal: config.ProdigalConfig{Bin: "/opt/prodigal/prodigal"},
			Phigaro: config.PhigaroConfig{
				WindowLen:             8,
				MeanGC:                0.46,
				ThresholdMinWithoutGC: 30,
				ThresholdMaxWithoutGC: 50,
			},
		},
		Threads:     4,
		Mode:        "without_gc",
		ScratchRoot: filepath.Join(t.TempDir(), "proc"),
	}
}

func TestProdigalTask_Command(t *testing.T) {
	rctx := testContext(t)
	pre := pipeline.NewDummyTask("/data/cleaned.fasta", NamePreprocess)

	task := NewProdigal(rctx, pre)
	rt := &fakeRuntime{outputFile: task.Output()}
	task.runtime = rt

	if err := task.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	cmd := strings.Join(rt.spec.Command, " ")
	for _, want := range []string{
		"/opt/prodigal/prodigal",
		"-i /data/cleaned.fasta",
		"-a " + task.Output(),
		"-p meta",
	} {
		if !strings.Contains(cmd, want) {
			t.Errorf("command %q missing %q", cmd, want)
		}
	}
	if !pipeline.OutputValid(task.Output()) {
		t.Error("prodigal artifact not materialized")
	}
}

func TestProdigalTask_NonZeroExit(t *testing.T) {
	rctx := testContext(t)
	task := NewProdigal(rctx, pipeline.NewDummyTask("/data/in.fasta", NamePreprocess))
	task.runtime = &fakeRuntime{result: &execution.RunResult{
		ExitCode: 2,
		Stderr:   "Error: invalid sequence\n",
	}}

	err := task.Run(context.Background())
	var execErr *execution.ExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("error type = %T, want *execution.ExecutionError", err)
	}
	if execErr.Task != NameProdigal || execErr.ExitCode != 2 {
		t.Errorf("ExecutionError = %+v, want task prodigal exit 2", execErr)
	}
	if !strings.Contains(err.Error(), "invalid sequence") {
		t.Errorf("error %q does not surface stderr", err)
	}
}

func TestHmmerTask_Command(t *testing.T) {
	rctx := testContext(t)
	prod := pipeline.NewDummyTask("/data/genes.faa", NameProdigal)

	task := NewHmmer(rctx, prod)
	rt := &fakeRuntime{outputFile: task.Output()}
	task.runtime = rt

	if err := task.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	cmd := strings.Join(rt.spec.Command, " ")
	for _, want := range []string{
		"/opt/hmmer/hmmsearch",
		"--cpu 4",
		"-E 0.00445",
		"--tblout " + task.Output(),
		"/data/allpvoghmms /data/genes.faa",
	} {
		if !strings.Contains(cmd, want) {
			t.Errorf("command %q missing %q", cmd, want)
		}
	}
	if rt.spec.Stdout != os.DevNull {
		t.Errorf("hmmsearch stdout goes to %q, want %q", rt.spec.Stdout, os.DevNull)
	}
}

func TestHmmerTask_LaunchFailure(t *testing.T) {
	rctx := testContext(t)
	task := NewHmmer(rctx, pipeline.NewDummyTask("/data/genes.faa", NameProdigal))
	task.runtime = &fakeRuntime{err: errors.New("exec: hmmsearch: not found")}

	err := task.Run(context.Background())
	var execErr *execution.ExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("error type = %T, want *execution.ExecutionError", err)
	}
	if execErr.Task != NameHmmer {
		t.Errorf("failing task = %q, want hmmer", execErr.Task)
	}
}

func TestTaskNamesAndOutputs(t *testing.T) {
	rctx := testContext(t)
	pre := NewPreprocess(rctx)
	prod := NewProdigal(rctx, pre)
	hm := NewHmmer(rctx, prod)
	cls := NewClassify(rctx, prod, hm)

	tests := []struct {
		task pipeline.Task
		name string
		file string
	}{
		{pre, "preprocess", "preprocess.fasta"},
		{prod, "prodigal", "prodigal.faa"},
		{hm, "hmmer", "hmmer.tblout"},
		{cls, "phigaro", "phigaro.tsv"},
	}
	for _, tt := range tests {
		if tt.task.Name() != tt.name {
			t.Errorf("Name() = %q, want %q", tt.task.Name(), tt.name)
		}
		want := filepath.Join(rctx.ScratchDir(), tt.file)
		if tt.task.Output() != want {
			t.Errorf("Output() = %q, want %q", tt.task.Output(), want)
		}
	}
}
