package pipeline

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/chris-rands/phigaro/internal/config"
)

// CleanScratch removes the run's scratch directory after per-task
// cleanup, but only when it holds no files at all: a directory with a
// leftover file anywhere in it is preserved entirely rather than
// force-deleted. The scratch root itself is then removed iff empty.
// Failures are logged as warnings; the run's exit status is unaffected.
func CleanScratch(logger *slog.Logger, rctx *config.Context) {
	sample := rctx.ScratchDir()

	hasFiles, err := dirHasFiles(sample)
	switch {
	case err != nil:
		logger.Warn("scratch inspection failed", "dir", sample, "error", err)
	case hasFiles:
		logger.Warn("scratch directory not empty, leaving in place", "dir", sample)
	default:
		if err := os.RemoveAll(sample); err != nil {
			logger.Warn("scratch removal failed", "dir", sample, "error", err)
		}
	}

	root := rctx.Root()
	entries, err := os.ReadDir(root)
	if err == nil && len(entries) == 0 {
		if err := os.Remove(root); err != nil {
			logger.Warn("scratch root removal failed", "dir", root, "error", err)
		}
	}
}

// dirHasFiles reports whether any regular file exists under root,
// transitively. A missing root counts as empty.
func dirHasFiles(root string) (bool, error) {
	found := false
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			found = true
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return found, err
	}
	return found, nil
}
