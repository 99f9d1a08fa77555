// Package model holds the domain types shared across the pipeline:
// predicted genes, profile hits and prophage regions.
package model

// Mode selects the threshold set used by the region classifier.
type Mode string

const (
	ModeBasic     Mode = "basic"
	ModeAbs       Mode = "abs"
	ModeWithoutGC Mode = "without_gc"
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	return string(m)
}

// Valid reports whether m is one of the supported modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeBasic, ModeAbs, ModeWithoutGC:
		return true
	}
	return false
}

// Gene is one coding sequence predicted by the gene-prediction stage.
// Coordinates are 1-based inclusive, as emitted by prodigal.
type Gene struct {
	ID       string  // prodigal record id, e.g. "scaffold_3_17"
	Scaffold string  // scaffold the gene lies on
	Begin    int     // genomic start
	End      int     // genomic end
	Strand   int     // +1 or -1
	GC       float64 // GC content of the coding sequence, 0..1
}

// Hit is one significant profile match from the profile-search stage.
type Hit struct {
	GeneID string  // matched gene
	VOG    string  // phage orthologous group the profile belongs to
	EValue float64 // full-sequence E-value
	Score  float64 // full-sequence bit score
}

// Region is one predicted prophage region.
type Region struct {
	Scaffold     string
	Begin        int // 1-based inclusive
	End          int // 1-based inclusive
	Transposable bool
	Taxonomy     string
	VOGs         []string // phage VOGs hit inside the region, in gene order
	GC           float64  // mean GC content of the region's genes
}

// Length returns the region span in base pairs.
func (r Region) Length() int {
	return r.End - r.Begin + 1
}
