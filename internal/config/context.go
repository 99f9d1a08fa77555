package config

import (
	"path/filepath"

	"github.com/chris-rands/phigaro/pkg/model"
)

// ScratchRootName is the conventional name of the working directory
// holding in-process artifacts, one subdirectory per sample.
const ScratchRootName = "proc"

// Context carries the per-run settings read by every task. It is built
// once at startup and treated as immutable for the lifetime of the run.
type Context struct {
	Sample  string  // unique run identity: input basename + run UUID
	Config  *Config // parsed configuration document
	Threads int     // thread count handed to external tools

	Filename     string     // input FASTA path
	Mode         model.Mode // classifier mode
	PrintVOGs    bool       // include per-region pVOG lists in output
	DeleteShorts bool       // drop sequences shorter than MinSequenceLen

	ScratchRoot string // defaults to ScratchRootName
}

// MinSequenceLen is the shortest input sequence kept when the
// delete-shorts option is enabled.
const MinSequenceLen = 20000

// ScratchDir returns this run's scratch directory, namespaced by the
// sample id so concurrent invocations never collide.
func (c *Context) ScratchDir() string {
	root := c.ScratchRoot
	if root == "" {
		root = ScratchRootName
	}
	return filepath.Join(root, c.Sample)
}

// Root returns the scratch root directory.
func (c *Context) Root() string {
	if c.ScratchRoot == "" {
		return ScratchRootName
	}
	return c.ScratchRoot
}
