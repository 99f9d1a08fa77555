// Package finder implements the prophage-region classifier: it parses
// the gene-prediction and profile-search outputs, scores genes,
// smooths the signal along each scaffold and calls regions.
package finder

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chris-rands/phigaro/pkg/model"
)

// ReadGenes parses a prodigal protein FASTA. Only the headers matter:
// prodigal encodes coordinates, strand and GC content there, e.g.
//
//	>scaffold_3_17 # 15806 # 16288 # -1 # ID=3_17;partial=00;start_type=ATG;rbs_motif=GGA;gc_cont=0.483
//
// Genes are returned in file order, which prodigal guarantees to be
// genomic order per scaffold.
func ReadGenes(path string) ([]model.Gene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open genes file: %w", err)
	}
	defer f.Close()

	var genes []model.Gene
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, ">") {
			continue
		}
		g, err := parseHeader(line)
		if err != nil {
			return nil, err
		}
		genes = append(genes, g)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read genes file: %w", err)
	}
	return genes, nil
}

// parseHeader parses one prodigal FASTA header line.
func parseHeader(line string) (model.Gene, error) {
	fields := strings.Split(strings.TrimPrefix(line, ">"), " # ")
	if len(fields) < 5 {
		return model.Gene{}, fmt.Errorf("malformed prodigal header %q", line)
	}

	ids := strings.Fields(fields[0])
	if len(ids) == 0 {
		return model.Gene{}, fmt.Errorf("malformed prodigal header %q", line)
	}
	id := ids[0]
	begin, err := strconv.Atoi(fields[1])
	if err != nil {
		return model.Gene{}, fmt.Errorf("prodigal header %q: bad begin: %w", line, err)
	}
	end, err := strconv.Atoi(fields[2])
	if err != nil {
		return model.Gene{}, fmt.Errorf("prodigal header %q: bad end: %w", line, err)
	}
	strand, err := strconv.Atoi(fields[3])
	if err != nil {
		return model.Gene{}, fmt.Errorf("prodigal header %q: bad strand: %w", line, err)
	}

	gc := 0.0
	for _, attr := range strings.Split(fields[4], ";") {
		if v, ok := strings.CutPrefix(attr, "gc_cont="); ok {
			gc, err = strconv.ParseFloat(v, 64)
			if err != nil {
				return model.Gene{}, fmt.Errorf("prodigal header %q: bad gc_cont: %w", line, err)
			}
		}
	}

	return model.Gene{
		ID:       id,
		Scaffold: scaffoldOf(id),
		Begin:    begin,
		End:      end,
		Strand:   strand,
		GC:       gc,
	}, nil
}

// scaffoldOf strips the trailing per-scaffold gene index from a
// prodigal record id: "scaffold_3_17" belongs to "scaffold_3".
func scaffoldOf(geneID string) string {
	i := strings.LastIndex(geneID, "_")
	if i <= 0 {
		return geneID
	}
	if _, err := strconv.Atoi(geneID[i+1:]); err != nil {
		return geneID
	}
	return geneID[:i]
}
