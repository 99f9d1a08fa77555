// phigaro predicts phages and prophages in nucleic acid sequences.
package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/chris-rands/phigaro/internal/config"
	"github.com/chris-rands/phigaro/internal/logging"
	"github.com/chris-rands/phigaro/internal/pipeline"
	"github.com/chris-rands/phigaro/internal/report"
	"github.com/chris-rands/phigaro/internal/tasks"
	"github.com/chris-rands/phigaro/pkg/model"
)

var (
	fastaFile    string
	configPath   string
	verbose      bool
	printVOGs    bool
	extensions   []string
	outputPath   string
	notOpen      bool
	threads      int
	noCleanup    bool
	substitute   []string
	deleteShorts bool
	mode         string
)

const version = "2.4.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "phigaro",
		Short:   "Scalable prophage prediction from nucleic acid sequences",
		Version: version,
		Long: `Phigaro is a scalable command-line tool for predictions phages and
prophages from nucleic acid sequences.

Examples:
  # Predict prophages and write an HTML report
  phigaro -f assembly.fasta -o results/assembly

  # TSV plus stdout, 8 threads, short sequences removed
  phigaro -f assembly.fasta -e tsv,stdout -o results/assembly -t 8 -d

  # Reuse precomputed prodigal and hmmer outputs
  phigaro -f assembly.fasta -o out -S prodigal:genes.faa -S hmmer:hits.tblout
`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         run,
	}

	rootCmd.Flags().StringVarP(&fastaFile, "fasta-file", "f", "", "Assembly scaffolds/contigs or full genomes, required")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultPath(), "Path to the config file")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.Flags().BoolVarP(&printVOGs, "print-vogs", "p", false, "Print phage vogs for each region")
	rootCmd.Flags().StringSliceVarP(&extensions, "extension", "e", []string{"html"}, "Output types: html, tsv, gff, bed or stdout (repeatable)")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output filename base; required unless the only output type is stdout")
	rootCmd.Flags().BoolVar(&notOpen, "not-open", false, "Do not open the HTML report automatically")
	rootCmd.Flags().IntVarP(&threads, "threads", "t", runtime.NumCPU(), "Number of threads")
	rootCmd.Flags().BoolVar(&noCleanup, "no-cleanup", false, "Keep intermediate artifacts")
	rootCmd.Flags().StringArrayVarP(&substitute, "substitute-output", "S", nil,
		"Use a precomputed stage output, format task:path (task is prodigal or hmmer; repeatable)")
	rootCmd.Flags().BoolVarP(&deleteShorts, "delete-shorts", "d", false, "Exclude sequences with length < 20000 automatically")
	rootCmd.Flags().StringVarP(&mode, "mode", "m", "basic", "Classification mode: basic, abs or without_gc")

	cobra.CheckErr(rootCmd.MarkFlagRequired("fasta-file"))
	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	logger := logging.New(verbose)

	for i, ext := range extensions {
		extensions[i] = strings.ToLower(ext)
		if !report.ValidFormat(extensions[i]) {
			return config.Errorf("unknown output type %q, expected one of: %s",
				ext, strings.Join(report.Formats, ", "))
		}
	}
	stdoutOnly := len(extensions) == 1 && extensions[0] == "stdout"
	if outputPath == "" && !stdoutOnly {
		return config.Errorf("argument -o/--output is required, or change the output type to stdout only")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger.Info("using config file", "path", configPath)

	runMode := model.Mode(mode)
	if !runMode.Valid() {
		return config.Errorf("unknown mode %q, expected basic, abs or without_gc", mode)
	}

	// Sample identity: input basename plus a fresh UUID, so concurrent
	// runs never share a scratch directory.
	uid := uuid.New()
	rctx := &config.Context{
		Sample:       config.SampleName(fastaFile) + "-" + hex.EncodeToString(uid[:]),
		Config:       cfg,
		Threads:      threads,
		Filename:     fastaFile,
		Mode:         runMode,
		PrintVOGs:    printVOGs,
		DeleteShorts: deleteShorts,
	}

	if outputPath != "" {
		if dir := filepath.Dir(outputPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return config.Errorf("create output directory %s: %v", dir, err)
			}
		}
	}

	subs, err := pipeline.ParseSubstitutions(substitute, []string{tasks.NameProdigal, tasks.NameHmmer})
	if err != nil {
		return err
	}

	preprocessTask := pipeline.Task(tasks.NewPreprocess(rctx))
	prodigalTask := pipeline.Resolve(subs, logger, tasks.NewProdigal(rctx, preprocessTask))
	hmmerTask := pipeline.Resolve(subs, logger, tasks.NewHmmer(rctx, prodigalTask))
	classifyTask := tasks.NewClassify(rctx, prodigalTask, hmmerTask)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Warn("interrupted, aborting pipeline")
		cancel()
	}()

	chain := pipeline.NewChain(logger, preprocessTask, prodigalTask, hmmerTask, classifyTask)
	finalOutput, err := chain.Run(ctx)
	if err != nil {
		// Scratch artifacts are deliberately kept on failure so the
		// completed stages can be substituted on a retry.
		return err
	}

	if err := renderOutputs(logger, rctx, finalOutput); err != nil {
		return err
	}

	if !noCleanup {
		chain.Clean()
		pipeline.CleanScratch(logger, rctx)
	}
	return nil
}

// renderOutputs fans the final region table out into the requested
// formats.
func renderOutputs(logger *slog.Logger, rctx *config.Context, finalOutput string) error {
	var regions []model.Region
	needsRegions := false
	for _, ext := range extensions {
		if ext == "html" || ext == "gff" || ext == "bed" {
			needsRegions = true
		}
	}
	if needsRegions {
		var err error
		regions, err = report.ReadTSV(finalOutput)
		if err != nil {
			return err
		}
	}

	for _, ext := range extensions {
		switch ext {
		case "stdout":
			if err := report.Dump(finalOutput, os.Stdout); err != nil {
				return err
			}
		case "tsv":
			dst := outputPath + ".tsv"
			if err := report.CopyFile(finalOutput, dst); err != nil {
				return err
			}
			logger.Info("wrote region table", "path", dst)
		case "html":
			dst := outputPath + ".html"
			if err := writeHTMLReport(dst, rctx, regions); err != nil {
				return err
			}
			logger.Info("wrote HTML report", "path", dst)
			if !notOpen && isatty.IsTerminal(os.Stderr.Fd()) {
				if err := report.OpenBrowser(dst); err != nil {
					logger.Warn("could not open report", "error", err)
				}
			}
		case "gff":
			dst := outputPath + ".gff"
			if err := writeTrack(dst, regions, report.WriteGFF); err != nil {
				return err
			}
			logger.Info("wrote GFF track", "path", dst)
		case "bed":
			dst := outputPath + ".bed"
			if err := writeTrack(dst, regions, report.WriteBED); err != nil {
				return err
			}
			logger.Info("wrote BED track", "path", dst)
		}
	}
	return nil
}

func writeHTMLReport(dst string, rctx *config.Context, regions []model.Region) error {
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	defer f.Close()
	if err := report.WriteHTML(f, rctx.Sample, regions, rctx.PrintVOGs); err != nil {
		return err
	}
	return f.Close()
}

func writeTrack(dst string, regions []model.Region, write func(w io.Writer, rs []model.Region) error) error {
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	defer f.Close()
	if err := write(f, regions); err != nil {
		return err
	}
	return f.Close()
}
