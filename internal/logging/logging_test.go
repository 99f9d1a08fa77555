package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewWithWriter_VerboseLogsInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(true, &buf)

	logger.Info("running task", "task", "prodigal")

	output := buf.String()
	if !strings.Contains(output, "running task") {
		t.Errorf("expected 'running task' in output, got: %s", output)
	}
	if !strings.Contains(output, "task=prodigal") {
		t.Errorf("expected 'task=prodigal' in output, got: %s", output)
	}
}

func TestNewWithWriter_QuietFiltersInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(false, &buf)

	logger.Info("should not appear")
	logger.Warn("should appear")

	output := buf.String()
	if strings.Contains(output, "should not appear") {
		t.Errorf("INFO message should be filtered without -v, got: %s", output)
	}
	if !strings.Contains(output, "should appear") {
		t.Errorf("WARN message should always appear, got: %s", output)
	}
}

func TestNewWithWriter_ChildLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(true, &buf)
	child := logger.With("component", "runner")

	child.Info("chain start", "sample", "genome-abc123")

	output := buf.String()
	if !strings.Contains(output, "component=runner") {
		t.Errorf("expected component in output, got: %s", output)
	}
	if !strings.Contains(output, "sample=genome-abc123") {
		t.Errorf("expected sample in output, got: %s", output)
	}
}

func TestDiscard(t *testing.T) {
	// Must not panic and must accept records at any level.
	logger := Discard()
	logger.Debug("dropped")
	logger.Error("dropped too")
}
