// Package tasks holds the concrete pipeline stages: preprocess, gene
// prediction, profile search and classification.
package tasks

import (
	"context"
	"fmt"
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"github.com/chris-rands/phigaro/internal/config"
	"github.com/chris-rands/phigaro/internal/execution"
	"github.com/chris-rands/phigaro/internal/pipeline"
)

// Stage identifiers, also the names accepted by -S substitutions.
const (
	NamePreprocess = "preprocess"
	NameProdigal   = "prodigal"
	NameHmmer      = "hmmer"
	NameClassify   = "phigaro"
)

// fastaWidth is the line width of the normalized FASTA.
const fastaWidth = 80

// PreprocessTask normalizes the input FASTA into the scratch directory:
// sequence letters are uppercased and, when the delete-shorts option is
// on, sequences shorter than config.MinSequenceLen are dropped.
type PreprocessTask struct {
	pipeline.Base
}

// NewPreprocess creates the preprocess stage for the run's input file.
func NewPreprocess(rctx *config.Context) *PreprocessTask {
	return &PreprocessTask{
		Base: pipeline.Base{Ctx: rctx, TaskName: NamePreprocess, Ext: ".fasta"},
	}
}

func (t *PreprocessTask) Run(ctx context.Context) error {
	if err := t.EnsureScratch(); err != nil {
		return &execution.ExecutionError{Task: t.Name(), Err: err}
	}

	in, err := os.Open(t.Ctx.Filename)
	if err != nil {
		return &execution.ExecutionError{Task: t.Name(), Err: fmt.Errorf("open input: %w", err)}
	}
	defer in.Close()

	out, err := os.Create(t.Output())
	if err != nil {
		return &execution.ExecutionError{Task: t.Name(), Err: fmt.Errorf("create output: %w", err)}
	}
	defer out.Close()

	template := linear.NewSeq("", nil, alphabet.DNAredundant)
	sc := seqio.NewScanner(fasta.NewReader(in, template))
	fw := fasta.NewWriter(out, fastaWidth)

	kept := 0
	for sc.Next() {
		s := sc.Seq().(*linear.Seq)
		if t.Ctx.DeleteShorts && s.Len() < config.MinSequenceLen {
			continue
		}
		upper(s.Seq)
		if _, err := fw.Write(s); err != nil {
			return &execution.ExecutionError{Task: t.Name(), Err: fmt.Errorf("write sequence %s: %w", s.Name(), err)}
		}
		kept++
	}
	if err := sc.Error(); err != nil {
		return &execution.ExecutionError{Task: t.Name(), Err: fmt.Errorf("parse input FASTA: %w", err)}
	}
	if kept == 0 {
		return &execution.ExecutionError{Task: t.Name(), Err: fmt.Errorf("no sequences kept from %s: %w", t.Ctx.Filename, execution.ErrNoOutput)}
	}
	return out.Close()
}

// upper uppercases sequence letters in place.
func upper(letters alphabet.Letters) {
	for i, l := range letters {
		if l >= 'a' && l <= 'z' {
			letters[i] = l - 'a' + 'A'
		}
	}
}
