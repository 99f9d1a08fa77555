// Package report renders the classifier's region table into the
// requested output formats: the primary tab-separated table, a stdout
// mirror, an HTML report, GFF3 and BED tracks.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chris-rands/phigaro/pkg/model"
)

// Known output format names accepted by the -e flag.
var Formats = []string{"tsv", "html", "gff", "bed", "stdout"}

// ValidFormat reports whether name is a recognized output format.
func ValidFormat(name string) bool {
	for _, f := range Formats {
		if f == name {
			return true
		}
	}
	return false
}

// WriteTSV writes the primary region table. With vogs enabled a final
// column lists each region's pVOG hits, space-separated.
func WriteTSV(w io.Writer, regions []model.Region, vogs bool) error {
	bw := bufio.NewWriter(w)

	header := "scaffold\tbegin\tend\ttransposable\ttaxonomy\tgc"
	if vogs {
		header += "\tvogs"
	}
	fmt.Fprintln(bw, header)

	for _, r := range regions {
		fmt.Fprintf(bw, "%s\t%d\t%d\t%t\t%s\t%.4f",
			r.Scaffold, r.Begin, r.End, r.Transposable, r.Taxonomy, r.GC)
		if vogs {
			fmt.Fprintf(bw, "\t%s", strings.Join(r.VOGs, " "))
		}
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}

// ReadTSV parses a region table written by WriteTSV (or a compatible
// user-substituted one).
func ReadTSV(path string) ([]model.Region, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open region table: %w", err)
	}
	defer f.Close()

	var regions []model.Region
	sc := bufio.NewScanner(f)
	first := true
	for sc.Scan() {
		line := sc.Text()
		if first {
			first = false
			if strings.HasPrefix(line, "scaffold\t") {
				continue
			}
		}
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 6 {
			return nil, fmt.Errorf("malformed region line %q", line)
		}

		begin, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("region line %q: bad begin: %w", line, err)
		}
		end, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("region line %q: bad end: %w", line, err)
		}
		transposable, err := strconv.ParseBool(fields[3])
		if err != nil {
			return nil, fmt.Errorf("region line %q: bad transposable flag: %w", line, err)
		}
		gc, err := strconv.ParseFloat(fields[5], 64)
		if err != nil {
			return nil, fmt.Errorf("region line %q: bad gc: %w", line, err)
		}

		r := model.Region{
			Scaffold:     fields[0],
			Begin:        begin,
			End:          end,
			Transposable: transposable,
			Taxonomy:     fields[4],
			GC:           gc,
		}
		if len(fields) > 6 && fields[6] != "" {
			r.VOGs = strings.Fields(fields[6])
		}
		regions = append(regions, r)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read region table: %w", err)
	}
	return regions, nil
}

// CopyFile mirrors the final table into a user-named file.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}
	return out.Close()
}

// Dump streams the final table to w (the stdout output format).
func Dump(src string, w io.Writer) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	_, err = io.Copy(w, in)
	return err
}
