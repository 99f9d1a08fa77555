package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/chris-rands/phigaro/pkg/model"
)

// WriteGFF writes the regions as GFF3 prophage features. Coordinates
// stay 1-based inclusive, as in the primary table.
func WriteGFF(w io.Writer, regions []model.Region) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "##gff-version 3")

	for i, r := range regions {
		attrs := fmt.Sprintf("ID=prophage_%d;taxonomy=%s;transposable=%t;gc_cont=%.4f",
			i+1, r.Taxonomy, r.Transposable, r.GC)
		fmt.Fprintf(bw, "%s\tphigaro\tprophage\t%d\t%d\t.\t.\t.\t%s\n",
			r.Scaffold, r.Begin, r.End, attrs)
	}
	return bw.Flush()
}

// WriteBED writes the regions as a browser track. BED is 0-based
// half-open, so begin shifts down by one.
func WriteBED(w io.Writer, regions []model.Region) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, `track name=phigaro description="Prophage regions"`)

	for i, r := range regions {
		fmt.Fprintf(bw, "%s\t%d\t%d\tprophage_%d\n", r.Scaffold, r.Begin-1, r.End, i+1)
	}
	return bw.Flush()
}
