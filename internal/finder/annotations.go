package finder

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Annotation describes a pVOG from the optional annotation table.
type Annotation struct {
	Taxonomy     string
	Class        string // "white", "black" or ""
	Transposable bool
}

const (
	classWhite = "white"
	classBlack = "black"
)

// LoadAnnotations reads the tab-separated pVOG annotation table:
// vog, taxonomy, class. Black-listed VOGs (mobile-element profiles)
// are treated as transposable. Lines starting with '#' are skipped.
func LoadAnnotations(path string) (map[string]Annotation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open annotation table: %w", err)
	}
	defer f.Close()

	ann := make(map[string]Annotation)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			return nil, fmt.Errorf("malformed annotation line %q", line)
		}
		a := Annotation{Taxonomy: fields[1]}
		if len(fields) > 2 {
			a.Class = strings.ToLower(fields[2])
			a.Transposable = a.Class == classBlack
		}
		ann[fields[0]] = a
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read annotation table: %w", err)
	}
	return ann, nil
}
