package finder

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chris-rands/phigaro/pkg/model"
)

// ReadTable parses hmmsearch --tblout output, keeping hits at or below
// maxEValue. Columns are whitespace-separated; the ones that matter:
//
//	0  target name (the gene)
//	2  query name (the pVOG profile)
//	4  full sequence E-value
//	5  full sequence bit score
//
// Comment lines start with '#'.
func ReadTable(path string, maxEValue float64) ([]model.Hit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open profile table: %w", err)
	}
	defer f.Close()

	var hits []model.Hit
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 6 {
			return nil, fmt.Errorf("malformed table line %q", line)
		}

		eValue, err := strconv.ParseFloat(fields[4], 64)
		if err != nil {
			return nil, fmt.Errorf("table line %q: bad E-value: %w", line, err)
		}
		if eValue > maxEValue {
			continue
		}
		score, err := strconv.ParseFloat(fields[5], 64)
		if err != nil {
			return nil, fmt.Errorf("table line %q: bad score: %w", line, err)
		}

		hits = append(hits, model.Hit{
			GeneID: fields[0],
			VOG:    fields[2],
			EValue: eValue,
			Score:  score,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read profile table: %w", err)
	}
	return hits, nil
}
