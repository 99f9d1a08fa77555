package finder

import (
	"sort"

	"github.com/exascience/pargo/parallel"

	"github.com/chris-rands/phigaro/pkg/model"
)

// hitWeight is the raw signal contributed by a gene with a significant
// profile hit, before class penalties. Smoothed scores therefore live
// roughly on a 0..100 scale and the configured thresholds are
// percentages of a fully phage-like window.
const hitWeight = 100.0

// Options parameterizes the classifier. Thresholds and window length
// come from the configuration document; the mode from the CLI.
type Options struct {
	Mode         model.Mode
	WindowLen    int     // smoothing window, in genes
	MinThreshold float64 // hysteresis: keep extending while above
	MaxThreshold float64 // hysteresis: open a region when reached
	MeanGC       float64 // expected host GC content (basic mode)
	PenaltyBlack float64 // divisor for black-listed (mobile element) VOG hits
	PenaltyWhite float64 // divisor for white-listed (high confidence) VOG hits
	Threads      int     // scaffold-level parallelism

	Annotations map[string]Annotation // optional pVOG annotations
}

// Finder calls prophage regions from genes and profile hits.
type Finder struct {
	opt Options
}

// New creates a Finder. Zero options get workable defaults.
func New(opt Options) *Finder {
	if opt.WindowLen <= 0 {
		opt.WindowLen = 32
	}
	if opt.Threads <= 0 {
		opt.Threads = 1
	}
	if opt.PenaltyBlack <= 0 {
		opt.PenaltyBlack = 1
	}
	if opt.PenaltyWhite <= 0 {
		opt.PenaltyWhite = 1
	}
	return &Finder{opt: opt}
}

// Find classifies all scaffolds. Genes must be in genomic order per
// scaffold, as prodigal emits them. Scaffolds are processed in
// parallel, bounded by Options.Threads; output order is deterministic
// regardless of thread count.
func (f *Finder) Find(genes []model.Gene, hits []model.Hit) []model.Region {
	hitsByGene := make(map[string][]model.Hit, len(hits))
	for _, h := range hits {
		hitsByGene[h.GeneID] = append(hitsByGene[h.GeneID], h)
	}

	if len(genes) == 0 {
		return nil
	}

	var order []string
	byScaffold := make(map[string][]model.Gene)
	for _, g := range genes {
		if _, seen := byScaffold[g.Scaffold]; !seen {
			order = append(order, g.Scaffold)
		}
		byScaffold[g.Scaffold] = append(byScaffold[g.Scaffold], g)
	}

	perScaffold := make([][]model.Region, len(order))
	parallel.Range(0, len(order), f.opt.Threads, func(low, high int) {
		for i := low; i < high; i++ {
			perScaffold[i] = f.findScaffold(byScaffold[order[i]], hitsByGene)
		}
	})

	var regions []model.Region
	for _, rs := range perScaffold {
		regions = append(regions, rs...)
	}
	return regions
}

// findScaffold scores one scaffold's genes, smooths the signal and
// calls regions with hysteresis thresholds.
func (f *Finder) findScaffold(genes []model.Gene, hits map[string][]model.Hit) []model.Region {
	signal := make([]float64, len(genes))
	for i, g := range genes {
		signal[i] = f.geneSignal(g, hits[g.ID])
	}
	smoothed := smooth(signal, f.opt.WindowLen)

	var regions []model.Region
	start := -1
	for i, s := range smoothed {
		switch {
		case start < 0 && s >= f.opt.MaxThreshold:
			start = i
		case start >= 0 && s < f.opt.MinThreshold:
			if r, ok := f.makeRegion(genes[start:i], hits); ok {
				regions = append(regions, r)
			}
			start = -1
		}
	}
	if start >= 0 {
		if r, ok := f.makeRegion(genes[start:], hits); ok {
			regions = append(regions, r)
		}
	}
	return regions
}

// geneSignal computes the raw per-gene phage signal.
func (f *Finder) geneSignal(g model.Gene, hs []model.Hit) float64 {
	if len(hs) == 0 {
		return 0
	}

	w := hitWeight
	switch f.hitClass(hs) {
	case classBlack:
		w /= f.opt.PenaltyBlack
	case classWhite:
		w /= f.opt.PenaltyWhite
	}

	switch f.opt.Mode {
	case model.ModeAbs:
		// Absolute mode: the bit score of the best hit drives the
		// signal directly, capped to keep one hot gene from carrying a
		// whole window.
		best := 0.0
		for _, h := range hs {
			if h.Score > best {
				best = h.Score
			}
		}
		if best > 2*hitWeight {
			best = 2 * hitWeight
		}
		return best
	case model.ModeWithoutGC:
		return w
	default:
		// Basic mode: GC enrichment relative to the host mean adds to
		// the signal. Phage regions tend to deviate upward.
		gcTerm := hitWeight * (g.GC - f.opt.MeanGC)
		if gcTerm < 0 {
			gcTerm = 0
		}
		return w + gcTerm
	}
}

// hitClass returns the dominant annotation class of a gene's hits:
// white if any hit is white-listed, black if all hits are black-listed.
func (f *Finder) hitClass(hs []model.Hit) string {
	if len(f.opt.Annotations) == 0 {
		return ""
	}
	allBlack := true
	for _, h := range hs {
		switch f.opt.Annotations[h.VOG].Class {
		case classWhite:
			return classWhite
		case classBlack:
		default:
			allBlack = false
		}
	}
	if allBlack {
		return classBlack
	}
	return ""
}

// smooth applies a triangular window of the given length: a gene's
// neighbours contribute with linearly decaying weight. The window is
// clipped at scaffold boundaries.
func smooth(signal []float64, windowLen int) []float64 {
	half := windowLen / 2
	if half < 1 {
		half = 1
	}
	out := make([]float64, len(signal))
	for i := range signal {
		var sum, wsum float64
		for k := -half; k <= half; k++ {
			j := i + k
			if j < 0 || j >= len(signal) {
				continue
			}
			w := float64(half + 1 - abs(k))
			sum += w * signal[j]
			wsum += w
		}
		out[i] = sum / wsum
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// makeRegion builds a Region from a called gene span. The span is
// trimmed to its first and last genes with hits; spans without any hit
// gene are discarded as smoothing artifacts.
func (f *Finder) makeRegion(genes []model.Gene, hits map[string][]model.Hit) (model.Region, bool) {
	first, last := -1, -1
	for i, g := range genes {
		if len(hits[g.ID]) > 0 {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return model.Region{}, false
	}
	genes = genes[first : last+1]

	var (
		vogs         []string
		gcSum        float64
		transposable bool
		taxCounts    = make(map[string]int)
	)
	for _, g := range genes {
		gcSum += g.GC
		for _, h := range hits[g.ID] {
			vogs = append(vogs, h.VOG)
			ann := f.opt.Annotations[h.VOG]
			if ann.Transposable {
				transposable = true
			}
			if ann.Taxonomy != "" {
				taxCounts[ann.Taxonomy]++
			}
		}
	}

	return model.Region{
		Scaffold:     genes[0].Scaffold,
		Begin:        genes[0].Begin,
		End:          genes[len(genes)-1].End,
		Transposable: transposable,
		Taxonomy:     dominantTaxonomy(taxCounts),
		VOGs:         vogs,
		GC:           gcSum / float64(len(genes)),
	}, true
}

// dominantTaxonomy picks the most frequent annotated taxonomy, ties
// broken lexicographically for determinism.
func dominantTaxonomy(counts map[string]int) string {
	if len(counts) == 0 {
		return "unknown"
	}
	taxa := make([]string, 0, len(counts))
	for t := range counts {
		taxa = append(taxa, t)
	}
	sort.Strings(taxa)
	best := taxa[0]
	for _, t := range taxa[1:] {
		if counts[t] > counts[best] {
			best = t
		}
	}
	return best
}
