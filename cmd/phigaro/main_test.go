package main

import (
	"io"
	"testing"
)

func TestRootCmd_RejectsPositionalArgs(t *testing.T) {
	// A space-separated extension list like "-e tsv stdout" leaves
	// "stdout" as a positional argument; it must fail loudly instead of
	// being dropped.
	cmd := newRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"-f", "assembly.fasta", "-e", "tsv", "stdout"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("stray positional argument accepted")
	}
}

func TestRootCmd_ExtensionListForms(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"comma separated", []string{"-e", "tsv,stdout"}, []string{"tsv", "stdout"}},
		{"repeated flag", []string{"-e", "tsv", "-e", "stdout"}, []string{"tsv", "stdout"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCmd()
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatalf("ParseFlags returned error: %v", err)
			}
			got, err := cmd.Flags().GetStringSlice("extension")
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("extensions = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("extensions[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
