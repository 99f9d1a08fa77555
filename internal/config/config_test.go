package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chris-rands/phigaro/pkg/model"
)

const testConfig = `
hmmer:
  bin: /usr/bin/hmmsearch
  e_value_threshold: 0.00445
  pvog_path: /data/pvogs/allpvoghmms
prodigal:
  bin: /usr/bin/prodigal
phigaro:
  window_len: 32
  mean_gc: 0.46354823
  threshold_min_basic: 45.39
  threshold_max_basic: 46.0
  threshold_min_abs: 52.32
  threshold_max_abs: 65.8
  threshold_min_without_gc: 11.42
  threshold_max_without_gc: 20.8
  penalty_black: 2.2
  penalty_white: 0.7
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, testConfig))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Hmmer.Bin != "/usr/bin/hmmsearch" {
		t.Errorf("Hmmer.Bin = %q, want /usr/bin/hmmsearch", cfg.Hmmer.Bin)
	}
	if cfg.Hmmer.EValueThreshold != 0.00445 {
		t.Errorf("EValueThreshold = %v, want 0.00445", cfg.Hmmer.EValueThreshold)
	}
	if cfg.Phigaro.WindowLen != 32 {
		t.Errorf("WindowLen = %d, want 32", cfg.Phigaro.WindowLen)
	}
	if cfg.Phigaro.PenaltyBlack != 2.2 {
		t.Errorf("PenaltyBlack = %v, want 2.2", cfg.Phigaro.PenaltyBlack)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err == nil {
		t.Fatal("Load on missing file returned nil error")
	}
	var cerr *Error
	if !errors.As(err, &cerr) {
		t.Fatalf("error type = %T, want *config.Error", err)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "phigaro: [unbalanced"))
	if err == nil {
		t.Fatal("Load on malformed YAML returned nil error")
	}
	var cerr *Error
	if !errors.As(err, &cerr) {
		t.Fatalf("error type = %T, want *config.Error", err)
	}
}

func TestLoad_MissingEValueThreshold(t *testing.T) {
	const noThreshold = `
hmmer:
  bin: /usr/bin/hmmsearch
  pvog_path: /data/pvogs/allpvoghmms
prodigal:
  bin: /usr/bin/prodigal
`
	_, err := Load(writeConfig(t, noThreshold))
	if err == nil {
		t.Fatal("config without e_value_threshold accepted")
	}
	var cerr *Error
	if !errors.As(err, &cerr) {
		t.Fatalf("error type = %T, want *config.Error", err)
	}
	if !strings.Contains(err.Error(), "e_value_threshold") {
		t.Errorf("error %q does not name the offending key", err)
	}
}

func TestThresholds(t *testing.T) {
	cfg, err := Load(writeConfig(t, testConfig))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		mode    model.Mode
		wantMin float64
		wantMax float64
		wantErr bool
	}{
		{model.ModeBasic, 45.39, 46.0, false},
		{model.ModeAbs, 52.32, 65.8, false},
		{model.ModeWithoutGC, 11.42, 20.8, false},
		{model.Mode("fancy"), 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			min, max, err := cfg.Thresholds(tt.mode)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error for unknown mode")
				}
				return
			}
			if err != nil {
				t.Fatalf("Thresholds returned error: %v", err)
			}
			if min != tt.wantMin || max != tt.wantMax {
				t.Errorf("Thresholds = (%v, %v), want (%v, %v)", min, max, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestSampleName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/data/genomes/ecoli.fasta", "ecoli"},
		{"scaffolds.fa", "scaffolds"},
		{"plain", "plain"},
		{"./a/b/assembly.v2.fna", "assembly.v2"},
	}
	for _, tt := range tests {
		if got := SampleName(tt.in); got != tt.want {
			t.Errorf("SampleName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestContext_ScratchDir(t *testing.T) {
	ctx := &Context{Sample: "ecoli-abc123"}
	want := filepath.Join("proc", "ecoli-abc123")
	if got := ctx.ScratchDir(); got != want {
		t.Errorf("ScratchDir() = %q, want %q", got, want)
	}

	ctx.ScratchRoot = "/tmp/work"
	want = filepath.Join("/tmp/work", "ecoli-abc123")
	if got := ctx.ScratchDir(); got != want {
		t.Errorf("ScratchDir() with root = %q, want %q", got, want)
	}
}
